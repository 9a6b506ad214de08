package handlers

import (
	"strconv"

	"libralend/internal/adapters/persistence/models"
	"libralend/internal/core/services"
	"libralend/internal/pkg/pagination"
	"libralend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BookHandler handles book catalog endpoints
type BookHandler struct {
	catalogService *services.CatalogService
}

// NewBookHandler creates a new book handler
func NewBookHandler(catalogService *services.CatalogService) *BookHandler {
	return &BookHandler{catalogService: catalogService}
}

// CreateBookRequest represents create book request
type CreateBookRequest struct {
	Title     string  `json:"title"`
	Author    string  `json:"author"`
	ISBN      string  `json:"isbn"`
	Publisher *string `json:"publisher,omitempty"`
	Stock     int     `json:"stock"`
}

// Create creates a new book
// @Summary Create book
// @Description Add a book to the catalog
// @Tags Books
// @Accept json
// @Produce json
// @Param body body CreateBookRequest true "Book data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /books [post]
func (h *BookHandler) Create(c *fiber.Ctx) error {
	var req CreateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.CreateBookInput{
		Title:     req.Title,
		Author:    req.Author,
		ISBN:      req.ISBN,
		Publisher: req.Publisher,
		Stock:     req.Stock,
	}

	book, err := h.catalogService.Create(c.Context(), input)
	if err != nil {
		return mapDomainError(c, err)
	}

	return response.Created(c, "Book created successfully", fiber.Map{
		"book": book.ToResponse(),
	})
}

// List lists books
// @Summary List books
// @Description List books in the catalog
// @Tags Books
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /books [get]
func (h *BookHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	result, err := h.catalogService.List(c.Context(), params.Page, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list books")
	}

	books := make([]*models.BookResponse, 0, len(result.Books))
	for _, b := range result.Books {
		books = append(books, b.ToResponse())
	}

	return response.Success(c, "Books retrieved successfully", fiber.Map{
		"books":       books,
		"total":       result.Total,
		"page":        result.Page,
		"limit":       result.Limit,
		"total_pages": result.TotalPages,
	})
}

// GetByID gets a book by ID
// @Summary Get book by ID
// @Description Get a single catalog entry
// @Tags Books
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [get]
func (h *BookHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid book ID")
	}

	book, err := h.catalogService.GetByID(c.Context(), uint(id))
	if err != nil {
		return mapDomainError(c, err)
	}

	return response.Success(c, "Book retrieved successfully", fiber.Map{
		"book": book.ToResponse(),
	})
}

// UpdateBookRequest represents update book request
type UpdateBookRequest struct {
	Title     *string `json:"title,omitempty"`
	Author    *string `json:"author,omitempty"`
	ISBN      *string `json:"isbn,omitempty"`
	Publisher *string `json:"publisher,omitempty"`
	Stock     *int    `json:"stock,omitempty"`
}

// Update updates a book
// @Summary Update book
// @Description Update catalog fields; absent fields are unchanged
// @Tags Books
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Param body body UpdateBookRequest true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [put]
func (h *BookHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid book ID")
	}

	var req UpdateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.UpdateBookInput{
		Title:     req.Title,
		Author:    req.Author,
		ISBN:      req.ISBN,
		Publisher: req.Publisher,
		Stock:     req.Stock,
	}

	book, err := h.catalogService.Update(c.Context(), uint(id), input)
	if err != nil {
		return mapDomainError(c, err)
	}

	return response.Success(c, "Book updated successfully", fiber.Map{
		"book": book.ToResponse(),
	})
}

// Delete deletes a book
// @Summary Delete book
// @Description Remove a book; refused while copies are on loan
// @Tags Books
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /books/{id} [delete]
func (h *BookHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid book ID")
	}

	if err := h.catalogService.Delete(c.Context(), uint(id)); err != nil {
		return mapDomainError(c, err)
	}

	return response.Success(c, "Book deleted successfully", nil)
}
