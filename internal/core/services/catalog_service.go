package services

import (
	"context"

	"libralend/internal/adapters/persistence/models"
	"libralend/internal/adapters/persistence/repositories"
	"libralend/internal/core/domain"
	"libralend/internal/pkg/validation"

	"gorm.io/gorm"
)

// CatalogService handles book catalog business logic
type CatalogService struct {
	db       *gorm.DB
	bookRepo *repositories.BookRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{
		db:       db,
		bookRepo: repositories.NewBookRepository(db),
	}
}

// CreateBookInput represents create book input
type CreateBookInput struct {
	Title     string  `json:"title"`
	Author    string  `json:"author"`
	ISBN      string  `json:"isbn"`
	Publisher *string `json:"publisher,omitempty"`
	Stock     int     `json:"stock"`
}

// Create creates a new book
func (s *CatalogService) Create(ctx context.Context, input *CreateBookInput) (*models.Book, error) {
	if input.Title == "" {
		return nil, domain.ErrMissingTitle
	}
	if input.Author == "" {
		return nil, domain.ErrMissingAuthor
	}
	if !validation.IsValidISBN(input.ISBN) {
		return nil, domain.ErrInvalidISBN
	}
	if input.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}

	book := &models.Book{
		Title:     input.Title,
		Author:    input.Author,
		ISBN:      input.ISBN,
		Publisher: input.Publisher,
		Stock:     input.Stock,
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

// GetByID gets a book by ID
func (s *CatalogService) GetByID(ctx context.Context, id uint) (*models.Book, error) {
	return s.bookRepo.GetByID(ctx, id)
}

// UpdateBookInput represents partial book update input
type UpdateBookInput struct {
	Title     *string `json:"title,omitempty"`
	Author    *string `json:"author,omitempty"`
	ISBN      *string `json:"isbn,omitempty"`
	Publisher *string `json:"publisher,omitempty"`
	Stock     *int    `json:"stock,omitempty"`
}

// Update updates a book's fields. Absent fields keep their current value.
func (s *CatalogService) Update(ctx context.Context, id uint, input *UpdateBookInput) (*models.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, domain.ErrMissingTitle
		}
		book.Title = *input.Title
	}
	if input.Author != nil {
		if *input.Author == "" {
			return nil, domain.ErrMissingAuthor
		}
		book.Author = *input.Author
	}
	if input.ISBN != nil {
		if !validation.IsValidISBN(*input.ISBN) {
			return nil, domain.ErrInvalidISBN
		}
		book.ISBN = *input.ISBN
	}
	if input.Publisher != nil {
		book.Publisher = input.Publisher
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, domain.ErrInvalidInput
		}
		book.Stock = *input.Stock
	}

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

// Delete deletes a book. Books that are currently on loan cannot be
// deleted, symmetric with the member outstanding-debt rule. The guard
// and the delete run in one transaction so a loan opened concurrently
// cannot slip between them.
func (s *CatalogService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bookRepo := repositories.NewBookRepository(tx)
		if _, err := bookRepo.GetByID(ctx, id); err != nil {
			return err
		}

		active, err := repositories.NewTransactionRepository(tx).CountActiveByBook(ctx, id)
		if err != nil {
			return err
		}
		if active > 0 {
			return &domain.ActiveLoansError{BookID: id, ActiveLoans: active}
		}

		return bookRepo.Delete(ctx, id)
	})
}

// BookListOutput represents paginated book list output
type BookListOutput struct {
	Books      []*models.Book `json:"books"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

// List lists books
func (s *CatalogService) List(ctx context.Context, page, limit int) (*BookListOutput, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	offset := (page - 1) * limit
	books, total, err := s.bookRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}

	return &BookListOutput{
		Books:      books,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}
