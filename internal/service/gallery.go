package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"droneapi/internal/model"
	"droneapi/internal/repository"
	"droneapi/internal/storage"
)

var (
	ErrNotImage           = errors.New("uploaded file is not an image")
	ErrStorageUnavailable = errors.New("object storage is not configured")
)

// Gallery source tags reported to the front-end.
const (
	SourceDatabase = "database"
	SourceDefault  = "default"
)

// DefaultGallery is the built-in showcase served whenever the store has no
// gallery images or cannot be reached. The front-end relies on these four
// items always being available.
var DefaultGallery = []model.Document{
	{
		"url":      "https://images.unsplash.com/photo-1504194104404-433180773017?q=80&w=1200&auto=format&fit=crop",
		"title":    "Coastal Cliffs",
		"category": "Nature",
	},
	{
		"url":      "https://images.unsplash.com/photo-1501785888041-af3ef285b470?q=80&w=1200&auto=format&fit=crop",
		"title":    "Mountain Range",
		"category": "Landscapes",
	},
	{
		"url":      "https://images.unsplash.com/photo-1500530855697-b586d89ba3ee?q=80&w=1200&auto=format&fit=crop",
		"title":    "City From Above",
		"category": "Real Estate",
	},
	{
		"url":      "https://images.unsplash.com/photo-1477959858617-67f85cf4f1df?q=80&w=1200&auto=format&fit=crop",
		"title":    "Golden Fields",
		"category": "Agriculture",
	},
}

// GalleryResult is the transport shape of the gallery read path.
type GalleryResult struct {
	Items  []model.Document `json:"items"`
	Count  int              `json:"count"`
	Source string           `json:"source"`
}

// GalleryService defines the use cases for the image showcase.
type GalleryService interface {
	// Add persists a validated gallery image and returns the assigned id.
	Add(ctx context.Context, img model.GalleryImage) (string, error)

	// Browse returns the stored images normalized for transport, or the
	// built-in default showcase when the collection is empty or the store
	// cannot be reached. It never fails: backend unavailability is
	// deliberately masked so a dependent front-end keeps working.
	Browse(ctx context.Context) *GalleryResult

	// Upload streams an image into object storage and records the resulting
	// public URL as a gallery document. Returns the document id and the URL.
	Upload(ctx context.Context, r io.Reader, originalFilename, contentType string, size int64, title, category string) (string, string, error)
}

type galleryService struct {
	store repository.DocumentStore
	objs  storage.Storage // nil when uploads are not configured
}

// NewGalleryService constructs a new GalleryService. objs may be nil, in
// which case Upload reports ErrStorageUnavailable.
func NewGalleryService(store repository.DocumentStore, objs storage.Storage) GalleryService {
	return &galleryService{store: store, objs: objs}
}

func (s *galleryService) Add(ctx context.Context, img model.GalleryImage) (string, error) {
	return s.store.Insert(ctx, model.CollectionGalleryImage, img.Fields())
}

func (s *galleryService) Browse(ctx context.Context) *GalleryResult {
	docs, err := s.store.List(ctx, model.CollectionGalleryImage)
	if err != nil || len(docs) == 0 {
		return &GalleryResult{
			Items:  DefaultGallery,
			Count:  len(DefaultGallery),
			Source: SourceDefault,
		}
	}

	items := make([]model.Document, 0, len(docs))
	for _, d := range docs {
		items = append(items, model.Normalize(d))
	}
	return &GalleryResult{
		Items:  items,
		Count:  len(items),
		Source: SourceDatabase,
	}
}

func (s *galleryService) Upload(ctx context.Context, r io.Reader, originalFilename, contentType string, size int64, title, category string) (string, string, error) {
	if s.objs == nil {
		return "", "", ErrStorageUnavailable
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", "", ErrNotImage
	}

	ext := filepath.Ext(originalFilename)
	key := "gallery/" + uuid.New().String() + ext

	_, err := s.objs.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return "", "", fmt.Errorf("upload to storage: %w", err)
	}

	img := model.GalleryImage{
		URL:      s.objs.PublicURL(key),
		Title:    title,
		Category: category,
	}
	if err := img.Validate(); err != nil {
		// Bad metadata; remove the orphaned object before reporting.
		if delErr := s.objs.Delete(ctx, key); delErr != nil {
			return "", "", fmt.Errorf("invalid image: %v; cleanup failed: %v", err, delErr)
		}
		return "", "", err
	}

	id, err := s.store.Insert(ctx, model.CollectionGalleryImage, img.Fields())
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.objs.Delete(ctx, key); delErr != nil {
			return "", "", fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return "", "", fmt.Errorf("db save failed: %w", err)
	}

	return id, img.URL, nil
}
