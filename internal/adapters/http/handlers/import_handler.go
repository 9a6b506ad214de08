package handlers

import (
	"libralend/internal/core/services"
	"libralend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ImportHandler handles catalog import endpoints
type ImportHandler struct {
	importService *services.ImportService
}

// NewImportHandler creates a new import handler
func NewImportHandler(importService *services.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// Import imports a batch of externally-sourced book descriptors
// @Summary Import books
// @Description Merge a batch of book descriptors into the catalog by ISBN
// @Tags Books
// @Accept json
// @Produce json
// @Param body body []services.BookDescriptor true "Book descriptors"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /books/import [post]
func (h *ImportHandler) Import(c *fiber.Ctx) error {
	var descriptors []services.BookDescriptor
	if err := c.BodyParser(&descriptors); err != nil {
		// A single descriptor object is accepted as a batch of one.
		var single services.BookDescriptor
		if err := c.BodyParser(&single); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
		descriptors = []services.BookDescriptor{single}
	}

	result, err := h.importService.ImportBatch(c.Context(), descriptors)
	if err != nil {
		return response.InternalServerError(c, "Import failed")
	}

	return response.Success(c, result.Message, result)
}
