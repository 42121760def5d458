package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/tomazk/bucketlist/internal/domain"
	"github.com/tomazk/bucketlist/internal/service"
)

// maxImportBytes caps the size of an accepted import document.
const maxImportBytes = 50 * 1024 * 1024

// TransferHandler handles export and import of the full collection
type TransferHandler struct {
	transfer *service.TransferService
}

// NewTransferHandler creates a new TransferHandler
func NewTransferHandler(transfer *service.TransferService) *TransferHandler {
	return &TransferHandler{transfer: transfer}
}

// ExportItems handles GET /api/v1/items/export
// Responds with the pretty-printed export document as a file download.
func (h *TransferHandler) ExportItems(c echo.Context) error {
	data, err := h.transfer.Export()
	if err != nil {
		log.Error().Err(err).Msg("Failed to export items")
		return NewInternalError(c, "Failed to export items")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+h.transfer.ExportFilename()+`"`)
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}

// ImportItems handles POST /api/v1/items/import
// The request body is the export-shaped JSON document. Importing replaces
// the entire collection; callers confirm destructive intent before invoking.
func (h *TransferHandler) ImportItems(c echo.Context) error {
	data, err := io.ReadAll(io.LimitReader(c.Request().Body, maxImportBytes))
	if err != nil {
		return NewValidationError(c, "Unreadable request body", nil)
	}

	items, err := h.transfer.Import(data)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidImportDocument) {
			return NewValidationError(c, "Import failed", []ValidationError{
				{Field: "items", Message: "Document must contain an items array"},
			})
		}
		if errors.Is(err, domain.ErrStorageWrite) {
			return NewStorageError(c, "Collection replaced in memory but could not be persisted")
		}
		log.Error().Err(err).Msg("Failed to import items")
		return NewInternalError(c, "Failed to import items")
	}

	log.Info().Int("count", len(items)).Msg("Items imported")

	return c.JSON(http.StatusOK, items)
}
