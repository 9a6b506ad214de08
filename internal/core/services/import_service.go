package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"libralend/internal/adapters/persistence/models"
	"libralend/internal/adapters/persistence/repositories"
	"libralend/internal/core/domain"
	"libralend/internal/pkg/validation"

	"github.com/google/uuid"
)

// ImportService reconciles externally-fetched book descriptors into the
// catalog by ISBN. The external catalog provider is an opaque data source:
// descriptors arrive already filtered, this service only merges them.
type ImportService struct {
	bookRepo *repositories.BookRepository
}

// NewImportService creates a new import service
func NewImportService(bookRepo *repositories.BookRepository) *ImportService {
	return &ImportService{bookRepo: bookRepo}
}

// BookDescriptor is one externally-sourced book record
type BookDescriptor struct {
	Title     string `json:"title"`
	Authors   string `json:"authors"`
	ISBN      string `json:"isbn"`
	Publisher string `json:"publisher"`
}

// ImportResult summarizes a batch import
type ImportResult struct {
	Message  string   `json:"message"`
	Imported int      `json:"imported"`
	Merged   int      `json:"merged"`
	Skipped  int      `json:"skipped"`
	Total    int      `json:"total"`
	Errors   []string `json:"errors,omitempty"`
}

// ImportBatch processes descriptors in input order. A descriptor whose
// ISBN is already cataloged adds one copy to that book's stock; a new
// ISBN creates a book with stock 1; a malformed ISBN is skipped. One bad
// item never aborts the batch, and imported == 0 is not an error.
func (s *ImportService) ImportBatch(ctx context.Context, descriptors []BookDescriptor) (*ImportResult, error) {
	batchID := uuid.NewString()
	result := &ImportResult{Total: len(descriptors)}

	for _, d := range descriptors {
		isbn := strings.TrimSpace(d.ISBN)
		if !validation.IsValidISBN(isbn) {
			result.Skipped++
			continue
		}

		merged, err := s.importOne(ctx, d, isbn)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("isbn %s: %v", isbn, err))
			continue
		}
		if merged {
			result.Merged++
		} else {
			result.Imported++
		}
	}

	result.Message = fmt.Sprintf("Imported %d new books, merged %d existing, skipped %d invalid",
		result.Imported, result.Merged, result.Skipped)

	log.Printf("📦 Import batch %s: %s (%d items, %d errors)",
		batchID, result.Message, result.Total, len(result.Errors))

	return result, nil
}

// importOne merges a single descriptor. Returns merged=true when the ISBN
// already existed and one copy was added instead of a new record.
func (s *ImportService) importOne(ctx context.Context, d BookDescriptor, isbn string) (bool, error) {
	existing, err := s.bookRepo.GetByISBN(ctx, isbn)
	if err == nil {
		if _, err := s.bookRepo.AdjustStock(ctx, existing.ID, 1); err != nil {
			return false, err
		}
		return true, nil
	}
	if !errors.Is(err, domain.ErrBookNotFound) {
		return false, err
	}

	book := &models.Book{
		Title:  truncate(d.Title, 200),
		Author: truncate(d.Authors, 500),
		ISBN:   isbn,
		Stock:  1,
	}
	if p := truncate(d.Publisher, 200); p != "" {
		book.Publisher = &p
	}

	err = s.bookRepo.Create(ctx, book)
	if errors.Is(err, domain.ErrDuplicateISBN) {
		// Lost a creation race against a concurrent import of the same
		// ISBN; retry once as a merge.
		racer, err := s.bookRepo.GetByISBN(ctx, isbn)
		if err != nil {
			return false, err
		}
		if _, err := s.bookRepo.AdjustStock(ctx, racer.ID, 1); err != nil {
			return false, err
		}
		return true, nil
	}
	if err != nil {
		return false, err
	}

	return false, nil
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max]
}
