package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/tomazk/bucketlist/internal/domain"
	"github.com/tomazk/bucketlist/internal/service"
)

// PhotoHandler handles photo upload and removal for items
type PhotoHandler struct {
	images *service.ImageService
	items  *service.ItemService
}

// NewPhotoHandler creates a new PhotoHandler
func NewPhotoHandler(images *service.ImageService, items *service.ItemService) *PhotoHandler {
	return &PhotoHandler{images: images, items: items}
}

// PhotoUploadResponse carries the updated item plus per-file warnings for
// files that were skipped within an accepted batch.
type PhotoUploadResponse struct {
	Item     *domain.Item            `json:"item"`
	Warnings []service.UploadWarning `json:"warnings,omitempty"`
}

// UploadPhotos handles POST /api/v1/items/:id/photos
// Expects a multipart form with one or more files under the "photos" field.
func (h *PhotoHandler) UploadPhotos(c echo.Context) error {
	id := c.Param("id")

	form, err := c.MultipartForm()
	if err != nil {
		return NewValidationError(c, "Invalid multipart form", nil)
	}

	files := form.File["photos"]
	if len(files) == 0 {
		return NewValidationError(c, "No photos in upload", []ValidationError{
			{Field: "photos", Message: "At least one file is required"},
		})
	}

	uploads := make([]service.PhotoUpload, 0, len(files))
	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			return NewValidationError(c, "Unreadable upload: "+fh.Filename, nil)
		}
		data, err := io.ReadAll(io.LimitReader(src, service.MaxImageBytes+1))
		src.Close()
		if err != nil {
			return NewValidationError(c, "Unreadable upload: "+fh.Filename, nil)
		}
		uploads = append(uploads, service.PhotoUpload{Filename: fh.Filename, Data: data})
	}

	item, warnings, err := h.images.AttachPhotos(id, uploads)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return NewNotFoundError(c, "Item not found")
		}
		if errors.Is(err, domain.ErrPhotoLimitExceeded) {
			return NewValidationError(c, "Photo limit exceeded", []ValidationError{
				{Field: "photos", Message: "Batch would exceed the photo limit; no photos were added"},
			})
		}
		if errors.Is(err, domain.ErrStorageWrite) {
			return NewStorageError(c, "Photos added in memory but could not be persisted")
		}
		log.Error().Err(err).Str("item_id", id).Msg("Failed to upload photos")
		return NewInternalError(c, "Failed to upload photos")
	}

	log.Info().Str("item_id", id).Int("photo_count", len(item.Photos)).Int("skipped", len(warnings)).Msg("Photos uploaded")

	return c.JSON(http.StatusOK, PhotoUploadResponse{Item: item, Warnings: warnings})
}

// RemovePhoto handles DELETE /api/v1/items/:id/photos/:index
func (h *PhotoHandler) RemovePhoto(c echo.Context) error {
	id := c.Param("id")

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return NewValidationError(c, "Invalid photo index", nil)
	}

	item, err := h.items.RemovePhoto(id, index)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return NewNotFoundError(c, "Item not found")
		}
		if errors.Is(err, domain.ErrPhotoNotFound) {
			return NewNotFoundError(c, "Photo not found")
		}
		if errors.Is(err, domain.ErrStorageWrite) {
			return NewStorageError(c, "Photo removed in memory but could not be persisted")
		}
		log.Error().Err(err).Str("item_id", id).Int("index", index).Msg("Failed to remove photo")
		return NewInternalError(c, "Failed to remove photo")
	}

	return c.JSON(http.StatusOK, item)
}
