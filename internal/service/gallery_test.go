package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"droneapi/internal/model"
	repoMocks "droneapi/internal/repository/mocks"
	"droneapi/internal/storage"
	storeMocks "droneapi/internal/storage/mocks"
)

func TestGalleryService_Browse(t *testing.T) {
	ctx := context.Background()

	t.Run("non-empty store tags database source", func(t *testing.T) {
		mStore := new(repoMocks.MockDocumentStore)
		mStore.On("List", ctx, model.CollectionGalleryImage).Return([]model.Document{
			{model.IDKey: uuid.New(), "url": "https://cdn.example.com/a.jpg", "title": "A"},
		}, nil)

		svc := NewGalleryService(mStore, nil)
		res := svc.Browse(ctx)

		assert.Equal(t, SourceDatabase, res.Source)
		assert.Equal(t, 1, res.Count)
		assert.Len(t, res.Items, 1)
		assert.Contains(t, res.Items[0], "id", "items are normalized")
		mStore.AssertExpectations(t)
	})

	t.Run("empty store falls back to defaults", func(t *testing.T) {
		mStore := new(repoMocks.MockDocumentStore)
		mStore.On("List", ctx, model.CollectionGalleryImage).Return([]model.Document{}, nil)

		svc := NewGalleryService(mStore, nil)
		res := svc.Browse(ctx)

		assert.Equal(t, SourceDefault, res.Source)
		assert.Equal(t, 4, res.Count)
		assert.Equal(t, DefaultGallery, res.Items)
	})

	t.Run("store fault falls back to defaults", func(t *testing.T) {
		mStore := new(repoMocks.MockDocumentStore)
		mStore.On("List", ctx, model.CollectionGalleryImage).
			Return(nil, errors.New("connection refused"))

		svc := NewGalleryService(mStore, nil)
		res := svc.Browse(ctx)

		assert.Equal(t, SourceDefault, res.Source)
		assert.Equal(t, 4, res.Count)
	})
}

func TestGalleryService_Add(t *testing.T) {
	ctx := context.Background()

	img := model.GalleryImage{
		URL:      "https://cdn.example.com/cliffs.jpg",
		Title:    "Coastal Cliffs",
		Category: "Nature",
	}

	mStore := new(repoMocks.MockDocumentStore)
	mStore.On("Insert", ctx, model.CollectionGalleryImage, mock.MatchedBy(func(fields model.Document) bool {
		return fields["url"] == img.URL && fields["title"] == img.Title
	})).Return("gen-id", nil)

	svc := NewGalleryService(mStore, nil)
	id, err := svc.Add(ctx, img)

	assert.NoError(t, err)
	assert.Equal(t, "gen-id", id)
	mStore.AssertExpectations(t)
}

func TestGalleryService_Upload(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		contentType string
		title       string
		setupMocks  func(mObjs *storeMocks.MockStorage, mStore *repoMocks.MockDocumentStore) io.Reader
		noStorage   bool
		wantErr     error
		wantErrMsg  string
	}{
		{
			name:        "happy path",
			contentType: "image/jpeg",
			title:       "Coastal Cliffs",
			setupMocks: func(mObjs *storeMocks.MockStorage, mStore *repoMocks.MockDocumentStore) io.Reader {
				r := strings.NewReader("jpegbytes")
				mObjs.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "gallery/") && strings.HasSuffix(key, ".jpg")
				}), r, mock.Anything).Return(storage.ObjectInfo{Key: "gallery/x.jpg"}, nil)
				mObjs.On("PublicURL", mock.Anything).Return("https://cdn.example.com/gallery/x.jpg")
				mStore.On("Insert", ctx, model.CollectionGalleryImage, mock.MatchedBy(func(fields model.Document) bool {
					return fields["url"] == "https://cdn.example.com/gallery/x.jpg" &&
						fields["title"] == "Coastal Cliffs"
				})).Return("gen-id", nil)
				return r
			},
		},
		{
			name:        "storage not configured",
			contentType: "image/jpeg",
			title:       "x",
			noStorage:   true,
			setupMocks: func(mObjs *storeMocks.MockStorage, mStore *repoMocks.MockDocumentStore) io.Reader {
				return strings.NewReader("jpegbytes")
			},
			wantErr: ErrStorageUnavailable,
		},
		{
			name:        "rejects non-image content",
			contentType: "application/pdf",
			title:       "x",
			setupMocks: func(mObjs *storeMocks.MockStorage, mStore *repoMocks.MockDocumentStore) io.Reader {
				return strings.NewReader("pdfbytes")
			},
			wantErr: ErrNotImage,
		},
		{
			name:        "storage error",
			contentType: "image/png",
			title:       "x",
			setupMocks: func(mObjs *storeMocks.MockStorage, mStore *repoMocks.MockDocumentStore) io.Reader {
				r := strings.NewReader("pngbytes")
				mObjs.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("storage fail"))
				return r
			},
			wantErrMsg: "upload to storage: storage fail",
		},
		{
			name:        "missing title removes the orphaned object",
			contentType: "image/png",
			title:       "",
			setupMocks: func(mObjs *storeMocks.MockStorage, mStore *repoMocks.MockDocumentStore) io.Reader {
				r := strings.NewReader("pngbytes")
				mObjs.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{Key: "gallery/x.png"}, nil)
				mObjs.On("PublicURL", mock.Anything).Return("https://cdn.example.com/gallery/x.png")
				mObjs.On("Delete", ctx, mock.Anything).Return(nil)
				return r
			},
			wantErrMsg: "Title",
		},
		{
			name:        "db error rolls back the object",
			contentType: "image/png",
			title:       "Golden Fields",
			setupMocks: func(mObjs *storeMocks.MockStorage, mStore *repoMocks.MockDocumentStore) io.Reader {
				r := strings.NewReader("pngbytes")
				mObjs.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{Key: "gallery/x.png"}, nil)
				mObjs.On("PublicURL", mock.Anything).Return("https://cdn.example.com/gallery/x.png")
				mStore.On("Insert", ctx, model.CollectionGalleryImage, mock.Anything).
					Return("", errors.New("db fail"))
				mObjs.On("Delete", ctx, mock.Anything).Return(nil)
				return r
			},
			wantErrMsg: "db save failed: db fail",
		},
		{
			name:        "db error with failed rollback reports both",
			contentType: "image/png",
			title:       "Golden Fields",
			setupMocks: func(mObjs *storeMocks.MockStorage, mStore *repoMocks.MockDocumentStore) io.Reader {
				r := strings.NewReader("pngbytes")
				mObjs.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{Key: "gallery/x.png"}, nil)
				mObjs.On("PublicURL", mock.Anything).Return("https://cdn.example.com/gallery/x.png")
				mStore.On("Insert", ctx, model.CollectionGalleryImage, mock.Anything).
					Return("", errors.New("db fail"))
				mObjs.On("Delete", ctx, mock.Anything).Return(errors.New("delete fail"))
				return r
			},
			wantErrMsg: "rollback delete failed: delete fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mObjs := new(storeMocks.MockStorage)
			mStore := new(repoMocks.MockDocumentStore)

			var svc GalleryService
			if tt.noStorage {
				svc = NewGalleryService(mStore, nil)
			} else {
				svc = NewGalleryService(mStore, mObjs)
			}

			r := tt.setupMocks(mObjs, mStore)

			id, url, err := svc.Upload(ctx, r, "photo.jpg", tt.contentType, 9, tt.title, "Nature")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else if tt.wantErrMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "gen-id", id)
				assert.Equal(t, "https://cdn.example.com/gallery/x.jpg", url)
			}

			mObjs.AssertExpectations(t)
			mStore.AssertExpectations(t)
		})
	}
}
