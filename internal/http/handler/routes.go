package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"droneapi/internal/repository"
	"droneapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin: parse, delegate, serialize.
func RegisterRoutes(app *fiber.App, db *sql.DB, store repository.DocumentStore, appts service.AppointmentService, gallery service.GalleryService) {
	app.Get("/", Root())
	app.Get("/api/hello", Hello())

	app.Get("/test", Diagnostics(db, store))
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/api/appointments", CreateAppointment(appts))
	app.Get("/api/appointments", ListAppointments(appts))

	app.Get("/api/gallery", BrowseGallery(gallery))
	app.Post("/api/gallery", AddGalleryImage(gallery))
	app.Post("/api/gallery/upload", UploadGalleryImage(gallery))

	app.Get("/schema", Schemas())
}
