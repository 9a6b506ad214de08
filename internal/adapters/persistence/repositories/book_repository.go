package repositories

import (
	"context"
	"errors"

	"libralend/internal/adapters/persistence/models"
	"libralend/internal/core/domain"

	"gorm.io/gorm"
)

// BookRepository handles catalog data access
type BookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *gorm.DB) *BookRepository {
	return &BookRepository{db: db}
}

// Create creates a new book
func (r *BookRepository) Create(ctx context.Context, book *models.Book) error {
	err := r.db.WithContext(ctx).Create(book).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateISBN
	}
	return err
}

// GetByID gets a book by ID
func (r *BookRepository) GetByID(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetByISBN gets a book by ISBN (dedup lookup for the import reconciler)
func (r *BookRepository) GetByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).Where("isbn = ?", isbn).First(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// List lists books with pagination
func (r *BookRepository) List(ctx context.Context, offset, limit int) ([]*models.Book, int64, error) {
	var books []*models.Book
	var total int64

	r.db.WithContext(ctx).Model(&models.Book{}).Count(&total)

	err := r.db.WithContext(ctx).
		Order("title ASC").
		Offset(offset).
		Limit(limit).
		Find(&books).Error

	return books, total, err
}

// Update updates a book
func (r *BookRepository) Update(ctx context.Context, book *models.Book) error {
	err := r.db.WithContext(ctx).Save(book).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateISBN
	}
	return err
}

// Delete deletes a book
func (r *BookRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Book{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}

// AdjustStock atomically changes a book's stock by delta. The update is
// guarded so that stock never goes below zero: concurrent callers racing
// for the last copy serialize at the database and exactly one wins.
func (r *BookRepository) AdjustStock(ctx context.Context, id uint, delta int) (*models.Book, error) {
	res := r.db.WithContext(ctx).Model(&models.Book{}).
		Where("id = ? AND stock + ? >= 0", id, delta).
		Update("stock", gorm.Expr("stock + ?", delta))
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		// Either the book doesn't exist or the guard refused the change.
		book, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, &domain.OutOfStockError{BookID: id, Stock: book.Stock}
	}

	return r.GetByID(ctx, id)
}
