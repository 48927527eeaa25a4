package service

import (
	"context"

	"droneapi/internal/model"
	"droneapi/internal/repository"
)

// AppointmentService defines the use cases for appointment requests.
type AppointmentService interface {
	// Create persists a validated appointment and returns the assigned id.
	Create(ctx context.Context, appt model.Appointment) (string, error)

	// List returns every stored appointment, normalized for transport.
	List(ctx context.Context) ([]model.Document, error)
}

type appointmentService struct {
	store repository.DocumentStore
}

// NewAppointmentService constructs a new AppointmentService.
func NewAppointmentService(store repository.DocumentStore) AppointmentService {
	return &appointmentService{store: store}
}

func (s *appointmentService) Create(ctx context.Context, appt model.Appointment) (string, error) {
	return s.store.Insert(ctx, model.CollectionAppointment, appt.Fields())
}

func (s *appointmentService) List(ctx context.Context) ([]model.Document, error) {
	docs, err := s.store.List(ctx, model.CollectionAppointment)
	if err != nil {
		return nil, err
	}

	out := make([]model.Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, model.Normalize(d))
	}
	return out, nil
}
