package handler

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"droneapi/internal/model"
	"droneapi/internal/repository"
	"droneapi/internal/service"
)

// createResponse is returned by the document-creating endpoints.
type createResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// uploadResponse is returned by the gallery upload endpoint.
type uploadResponse struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Message string `json:"message"`
}

// Root answers the bare liveness message the front-end pings.
func Root() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Drone Services Backend is running"})
	}
}

// Hello is the API-prefixed liveness message.
func Hello() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Hello from the Drone Services API"})
	}
}

// HealthCheck reports DB connectivity: 200 when the store answers a ping,
// 503 otherwise.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a bare liveness probe.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// Diagnostics reports best-effort status of the store connection and the
// DATABASE_URL/DATABASE_NAME environment variables. Every check is contained:
// a failing check degrades to a truncated message in its own field, and the
// response is always HTTP 200.
func Diagnostics(db *sql.DB, store repository.DocumentStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resp := fiber.Map{
			"backend":           "running",
			"database":          "not available",
			"database_url":      presence("DATABASE_URL"),
			"database_name":     presence("DATABASE_NAME"),
			"connection_status": "not connected",
			"collections":       []string{},
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			resp["database"] = "error: " + truncate(err.Error(), 50)
			return c.JSON(resp)
		}

		resp["database"] = "connected"
		resp["connection_status"] = "connected"

		names, err := store.Collections(ctx)
		if err != nil {
			resp["database"] = "connected but error: " + truncate(err.Error(), 50)
			return c.JSON(resp)
		}
		if len(names) > 10 {
			names = names[:10]
		}
		resp["collections"] = names
		resp["database"] = "connected & working"

		return c.JSON(resp)
	}
}

// CreateAppointment validates and persists an appointment request.
func CreateAppointment(svc service.AppointmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var appt model.Appointment
		if err := c.BodyParser(&appt); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body is not valid JSON")
		}
		if err := appt.Validate(); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		}

		id, err := svc.Create(c.UserContext(), appt)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "STORE_ERROR", err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(createResponse{
			ID:      id,
			Message: "Appointment request received",
		})
	}
}

// ListAppointments returns every stored appointment, normalized.
func ListAppointments(svc service.AppointmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docs, err := svc.List(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "STORE_ERROR", err.Error())
		}
		return c.JSON(docs)
	}
}

// BrowseGallery returns stored images or the default showcase; it never fails.
func BrowseGallery(svc service.GalleryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(svc.Browse(c.UserContext()))
	}
}

// AddGalleryImage validates and persists a gallery image by URL.
func AddGalleryImage(svc service.GalleryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var img model.GalleryImage
		if err := c.BodyParser(&img); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body is not valid JSON")
		}
		if err := img.Validate(); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		}

		id, err := svc.Add(c.UserContext(), img)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "STORE_ERROR", err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(createResponse{
			ID:      id,
			Message: "Image added",
		})
	}
}

// UploadGalleryImage accepts a multipart image (field name: file) plus title
// and category form fields, stores the binary in object storage and records
// the resulting URL as a gallery document.
func UploadGalleryImage(svc service.GalleryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		id, url, err := svc.Upload(c.UserContext(), f, fh.Filename, ct, fh.Size,
			c.FormValue("title"), c.FormValue("category"))
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotImage):
				return writeError(c, fiber.StatusBadRequest, "NOT_AN_IMAGE", err.Error())
			case errors.Is(err, service.ErrStorageUnavailable):
				return writeError(c, fiber.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", err.Error())
			default:
				return writeError(c, fiber.StatusInternalServerError, "UPLOAD_ERROR", err.Error())
			}
		}
		return c.Status(fiber.StatusCreated).JSON(uploadResponse{
			ID:      id,
			URL:     url,
			Message: "Image uploaded",
		})
	}
}

// Schemas serves the JSON Schema documents for the four entity types.
func Schemas() fiber.Handler {
	schemas := model.Schemas()
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"schemas": schemas})
	}
}

func presence(envKey string) string {
	if os.Getenv(envKey) != "" {
		return "set"
	}
	return "not set"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
