package service

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/tomazk/bucketlist/internal/domain"
	"github.com/tomazk/bucketlist/internal/testutil"
)

// createTestImage creates a test image of the specified size and format
func createTestImage(t *testing.T, width, height int, format string) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: 0, B: 0, A: 255})
		}
	}

	var buf bytes.Buffer
	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			t.Fatalf("encoding test png: %v", err)
		}
	default:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
			t.Fatalf("encoding test jpeg: %v", err)
		}
	}
	return buf.Bytes()
}

// decodeDataURI decodes a jpeg data URI back into an image
func decodeDataURI(t *testing.T, uri string) image.Image {
	t.Helper()

	const prefix = "data:image/jpeg;base64,"
	if !strings.HasPrefix(uri, prefix) {
		t.Fatalf("expected jpeg data URI, got %q", uri[:min(len(uri), 40)])
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	if err != nil {
		t.Fatalf("decoding base64 payload: %v", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decoding embedded image: %v", err)
	}
	return img
}

func newTestImageService(t *testing.T, maxPhotos int) (*ImageService, *ItemService) {
	t.Helper()
	store := NewItemService(testutil.NewMockGateway(), maxPhotos)
	return NewImageService(store, DefaultMaxPhotoSize, DefaultJPEGQuality), store
}

func TestResize_SmallImageKeepsDimensions(t *testing.T) {
	svc, _ := newTestImageService(t, 3)
	data := createTestImage(t, 400, 300, "jpeg")

	uri, err := svc.Resize(data)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	out := decodeDataURI(t, uri)
	if out.Bounds().Dx() != 400 || out.Bounds().Dy() != 300 {
		t.Errorf("expected 400x300, got %dx%d", out.Bounds().Dx(), out.Bounds().Dy())
	}
}

func TestResize_WideImageLongerSideHitsLimit(t *testing.T) {
	svc, _ := newTestImageService(t, 3)
	data := createTestImage(t, 1600, 1200, "jpeg")

	uri, err := svc.Resize(data)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	out := decodeDataURI(t, uri)
	w, h := out.Bounds().Dx(), out.Bounds().Dy()
	if w != DefaultMaxPhotoSize {
		t.Errorf("expected width %d, got %d", DefaultMaxPhotoSize, w)
	}
	// 1600x1200 scaled by 0.5 keeps the 4:3 ratio
	if h < 599 || h > 601 {
		t.Errorf("expected height 600±1, got %d", h)
	}
}

func TestResize_TallImageLongerSideHitsLimit(t *testing.T) {
	svc, _ := newTestImageService(t, 3)
	data := createTestImage(t, 1200, 1600, "png")

	uri, err := svc.Resize(data)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	out := decodeDataURI(t, uri)
	w, h := out.Bounds().Dx(), out.Bounds().Dy()
	if h != DefaultMaxPhotoSize {
		t.Errorf("expected height %d, got %d", DefaultMaxPhotoSize, h)
	}
	if w < 599 || w > 601 {
		t.Errorf("expected width 600±1, got %d", w)
	}
}

func TestResize_PNGInputBecomesJPEGDataURI(t *testing.T) {
	svc, _ := newTestImageService(t, 3)
	data := createTestImage(t, 100, 100, "png")

	uri, err := svc.Resize(data)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/jpeg;base64,") {
		t.Errorf("expected jpeg data URI prefix, got %q", uri[:min(len(uri), 40)])
	}
}

func TestResize_NotAnImage(t *testing.T) {
	svc, _ := newTestImageService(t, 3)

	_, err := svc.Resize([]byte("definitely not pixels"))
	if err != ErrNotAnImage {
		t.Errorf("expected ErrNotAnImage, got %v", err)
	}
}

func TestResize_TooLarge(t *testing.T) {
	svc, _ := newTestImageService(t, 3)

	_, err := svc.Resize(make([]byte, MaxImageBytes+1))
	if err != ErrImageTooLarge {
		t.Errorf("expected ErrImageTooLarge, got %v", err)
	}
}

func TestAttachPhotos_Success(t *testing.T) {
	svc, store := newTestImageService(t, 3)
	created, err := store.Create(domain.Draft{Title: "Photogenic", WhoAdded: "Ana"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	uploads := []PhotoUpload{
		{Filename: "one.jpg", Data: createTestImage(t, 100, 100, "jpeg")},
		{Filename: "two.png", Data: createTestImage(t, 100, 100, "png")},
	}

	item, warnings, err := svc.AttachPhotos(created.ID, uploads)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
	if len(item.Photos) != 2 {
		t.Errorf("expected 2 photos, got %d", len(item.Photos))
	}
}

func TestAttachPhotos_BatchOverBudgetAddsNothing(t *testing.T) {
	svc, store := newTestImageService(t, 3)
	created, err := store.Create(domain.Draft{
		Title:    "Nearly full",
		WhoAdded: "Ana",
		Photos:   []string{"existing1", "existing2"},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	uploads := []PhotoUpload{
		{Filename: "one.jpg", Data: createTestImage(t, 100, 100, "jpeg")},
		{Filename: "two.jpg", Data: createTestImage(t, 100, 100, "jpeg")},
	}

	_, _, err = svc.AttachPhotos(created.ID, uploads)
	if err != domain.ErrPhotoLimitExceeded {
		t.Fatalf("expected ErrPhotoLimitExceeded, got %v", err)
	}

	current, err := store.Get(created.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(current.Photos) != 2 {
		t.Errorf("expected photos unchanged, got %d", len(current.Photos))
	}
}

func TestAttachPhotos_SkipsNonImagesWithWarning(t *testing.T) {
	svc, store := newTestImageService(t, 3)
	created, err := store.Create(domain.Draft{Title: "Mixed batch", WhoAdded: "Ana"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	uploads := []PhotoUpload{
		{Filename: "good.jpg", Data: createTestImage(t, 100, 100, "jpeg")},
		{Filename: "notes.txt", Data: []byte("some text file")},
	}

	item, warnings, err := svc.AttachPhotos(created.ID, uploads)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(warnings) != 1 || warnings[0].Filename != "notes.txt" {
		t.Errorf("expected one warning for notes.txt, got %v", warnings)
	}
	if len(item.Photos) != 1 {
		t.Errorf("expected 1 photo, got %d", len(item.Photos))
	}
}

func TestAttachPhotos_ItemNotFound(t *testing.T) {
	svc, _ := newTestImageService(t, 3)

	_, _, err := svc.AttachPhotos("missing", []PhotoUpload{
		{Filename: "one.jpg", Data: createTestImage(t, 100, 100, "jpeg")},
	})
	if err != domain.ErrItemNotFound {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
}
