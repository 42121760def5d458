package service

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"net/http"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/disintegration/imaging"
	"github.com/tomazk/bucketlist/internal/domain"
)

const (
	// MaxImageBytes caps a single uploaded file.
	MaxImageBytes = 5 * 1024 * 1024 // 5MB
	// DefaultMaxPhotoSize is the longest allowed output dimension.
	DefaultMaxPhotoSize = 800
	// DefaultJPEGQuality is the re-encode quality on jpeg's 1-100 scale.
	DefaultJPEGQuality = 80
)

var (
	ErrNotAnImage    = errors.New("file is not a supported image")
	ErrImageTooLarge = errors.New("file too large. Maximum size is 5MB")
)

// allowedImageTypes are the sniffed MIME types accepted for upload. The
// type is detected from the bytes, not taken from client headers.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadWarning reports a file skipped within an accepted batch.
type UploadWarning struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// PhotoUpload is one file from an upload batch.
type PhotoUpload struct {
	Filename string
	Data     []byte
}

// ImageService downsizes uploaded photos and enforces the per-item photo
// budget before handing encoded results to the store.
type ImageService struct {
	store        *ItemService
	maxDimension int
	quality      int
}

// NewImageService creates an ImageService attached to the given store.
// Non-positive maxDimension or quality fall back to the defaults.
func NewImageService(store *ItemService, maxDimension, quality int) *ImageService {
	if maxDimension <= 0 {
		maxDimension = DefaultMaxPhotoSize
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	return &ImageService{store: store, maxDimension: maxDimension, quality: quality}
}

// Resize decodes raw image bytes, downscales so neither dimension exceeds
// the configured maximum (aspect ratio preserved exactly, never upscaling)
// and returns the result re-encoded as a JPEG data URI. Images already
// within bounds are re-encoded at the same quality without resizing.
func (s *ImageService) Resize(data []byte) (string, error) {
	if len(data) > MaxImageBytes {
		return "", ErrImageTooLarge
	}
	if !allowedImageTypes[http.DetectContentType(data)] {
		return "", ErrNotAnImage
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", ErrNotAnImage
	}

	bounds := img.Bounds()
	if bounds.Dx() > s.maxDimension || bounds.Dy() > s.maxDimension {
		// Fixing the longer side and passing 0 for the other keeps the
		// aspect ratio and scales both dimensions by the same ratio.
		if bounds.Dx() >= bounds.Dy() {
			img = imaging.Resize(img, s.maxDimension, 0, imaging.Lanczos)
		} else {
			img = imaging.Resize(img, 0, s.maxDimension, imaging.Lanczos)
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: s.quality}); err != nil {
		return "", fmt.Errorf("encoding photo: %w", err)
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// AttachPhotos processes an upload batch for one item. A batch that would
// push the item past its photo budget is rejected whole and adds nothing.
// Within an accepted batch, files that are not decodable images are skipped
// with a per-file warning and the rest proceed.
func (s *ImageService) AttachPhotos(id string, uploads []PhotoUpload) (*domain.Item, []UploadWarning, error) {
	item, err := s.store.Get(id)
	if err != nil {
		return nil, nil, err
	}
	if len(item.Photos)+len(uploads) > s.store.MaxPhotos() {
		return nil, nil, domain.ErrPhotoLimitExceeded
	}

	var photos []string
	var warnings []UploadWarning
	for _, upload := range uploads {
		encoded, err := s.Resize(upload.Data)
		if err != nil {
			if errors.Is(err, ErrNotAnImage) || errors.Is(err, ErrImageTooLarge) {
				warnings = append(warnings, UploadWarning{Filename: upload.Filename, Reason: err.Error()})
				continue
			}
			return nil, warnings, err
		}
		photos = append(photos, encoded)
	}

	updated, err := s.store.AppendPhotos(id, photos)
	if err != nil {
		return nil, warnings, err
	}
	return updated, warnings, nil
}
