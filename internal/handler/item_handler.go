package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/tomazk/bucketlist/internal/domain"
	"github.com/tomazk/bucketlist/internal/service"
)

// ItemHandler handles item-related HTTP requests
type ItemHandler struct {
	items *service.ItemService
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(items *service.ItemService) *ItemHandler {
	return &ItemHandler{items: items}
}

// ItemDraftRequest represents the create/update item request body
type ItemDraftRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	WhoAdded    string   `json:"whoAdded"`
	Location    string   `json:"location"`
	Photos      []string `json:"photos"`
}

func (r ItemDraftRequest) toDraft() domain.Draft {
	return domain.Draft{
		Title:       r.Title,
		Description: r.Description,
		WhoAdded:    r.WhoAdded,
		Location:    r.Location,
		Photos:      r.Photos,
	}
}

// CreateItem handles POST /api/v1/items
func (h *ItemHandler) CreateItem(c echo.Context) error {
	var req ItemDraftRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	item, err := h.items.Create(req.toDraft())
	if err != nil {
		if mapped := mapDraftError(c, err); mapped != nil {
			return mapped
		}
		log.Error().Err(err).Msg("Failed to create item")
		return NewInternalError(c, "Failed to create item")
	}

	log.Info().Str("item_id", item.ID).Str("title", item.Title).Msg("Item created")

	return c.JSON(http.StatusCreated, item)
}

// ListItems handles GET /api/v1/items
func (h *ItemHandler) ListItems(c echo.Context) error {
	filter := service.ParseFilter(c.QueryParam("filter"))
	order := service.ParseSort(c.QueryParam("sort"))
	query := c.QueryParam("q")

	items := service.View(h.items.Items(), filter, order, query)
	return c.JSON(http.StatusOK, items)
}

// GetItem handles GET /api/v1/items/:id
func (h *ItemHandler) GetItem(c echo.Context) error {
	item, err := h.items.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return NewNotFoundError(c, "Item not found")
		}
		log.Error().Err(err).Str("item_id", c.Param("id")).Msg("Failed to get item")
		return NewInternalError(c, "Failed to get item")
	}

	return c.JSON(http.StatusOK, item)
}

// UpdateItem handles PUT /api/v1/items/:id
func (h *ItemHandler) UpdateItem(c echo.Context) error {
	var req ItemDraftRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	item, err := h.items.Update(c.Param("id"), req.toDraft())
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return NewNotFoundError(c, "Item not found")
		}
		if mapped := mapDraftError(c, err); mapped != nil {
			return mapped
		}
		log.Error().Err(err).Str("item_id", c.Param("id")).Msg("Failed to update item")
		return NewInternalError(c, "Failed to update item")
	}

	log.Info().Str("item_id", item.ID).Msg("Item updated")

	return c.JSON(http.StatusOK, item)
}

// DeleteItem handles DELETE /api/v1/items/:id
func (h *ItemHandler) DeleteItem(c echo.Context) error {
	if err := h.items.Delete(c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return NewNotFoundError(c, "Item not found")
		}
		if errors.Is(err, domain.ErrStorageWrite) {
			return NewStorageError(c, "Item deleted in memory but could not be persisted")
		}
		log.Error().Err(err).Str("item_id", c.Param("id")).Msg("Failed to delete item")
		return NewInternalError(c, "Failed to delete item")
	}

	log.Info().Str("item_id", c.Param("id")).Msg("Item deleted")

	return c.NoContent(http.StatusNoContent)
}

// ToggleComplete handles PATCH /api/v1/items/:id/toggle-complete
func (h *ItemHandler) ToggleComplete(c echo.Context) error {
	item, err := h.items.ToggleComplete(c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return NewNotFoundError(c, "Item not found")
		}
		if errors.Is(err, domain.ErrStorageWrite) {
			return NewStorageError(c, "Completion state changed in memory but could not be persisted")
		}
		log.Error().Err(err).Str("item_id", c.Param("id")).Msg("Failed to toggle item completion")
		return NewInternalError(c, "Failed to toggle item completion")
	}

	return c.JSON(http.StatusOK, item)
}

// GetStats handles GET /api/v1/items/stats
func (h *ItemHandler) GetStats(c echo.Context) error {
	return c.JSON(http.StatusOK, service.ComputeStats(h.items.Items()))
}

// mapDraftError maps draft validation and storage failures to responses.
// Returns nil for errors it does not recognize.
func mapDraftError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrTitleRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "title", Message: "Title is required"},
		})
	case errors.Is(err, domain.ErrTitleTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "title", Message: "Title must be 255 characters or less"},
		})
	case errors.Is(err, domain.ErrWhoAddedRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "whoAdded", Message: "Who added is required"},
		})
	case errors.Is(err, domain.ErrPhotoLimitExceeded):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "photos", Message: "Too many photos for one item"},
		})
	case errors.Is(err, domain.ErrStorageWrite):
		return NewStorageError(c, "Change applied in memory but could not be persisted")
	default:
		return nil
	}
}
