package handler

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, itemHandler *ItemHandler, photoHandler *PhotoHandler, transferHandler *TransferHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Item routes
	items := api.Group("/items")
	items.POST("", itemHandler.CreateItem)
	items.GET("", itemHandler.ListItems)
	items.GET("/stats", itemHandler.GetStats)
	items.GET("/export", transferHandler.ExportItems)
	items.POST("/import", transferHandler.ImportItems)
	items.GET("/:id", itemHandler.GetItem)
	items.PUT("/:id", itemHandler.UpdateItem)
	items.DELETE("/:id", itemHandler.DeleteItem)
	items.PATCH("/:id/toggle-complete", itemHandler.ToggleComplete)

	// Photo routes
	items.POST("/:id/photos", photoHandler.UploadPhotos)
	items.DELETE("/:id/photos/:index", photoHandler.RemovePhoto)
}
