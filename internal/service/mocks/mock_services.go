package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"droneapi/internal/model"
	"droneapi/internal/service"
)

type MockAppointmentService struct {
	mock.Mock
}

func (m *MockAppointmentService) Create(ctx context.Context, appt model.Appointment) (string, error) {
	args := m.Called(ctx, appt)
	return args.String(0), args.Error(1)
}

func (m *MockAppointmentService) List(ctx context.Context) ([]model.Document, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

type MockGalleryService struct {
	mock.Mock
}

func (m *MockGalleryService) Add(ctx context.Context, img model.GalleryImage) (string, error) {
	args := m.Called(ctx, img)
	return args.String(0), args.Error(1)
}

func (m *MockGalleryService) Browse(ctx context.Context) *service.GalleryResult {
	args := m.Called(ctx)
	return args.Get(0).(*service.GalleryResult)
}

func (m *MockGalleryService) Upload(ctx context.Context, r io.Reader, originalFilename, contentType string, size int64, title, category string) (string, string, error) {
	args := m.Called(ctx, r, originalFilename, contentType, size, title, category)
	return args.String(0), args.String(1), args.Error(2)
}
