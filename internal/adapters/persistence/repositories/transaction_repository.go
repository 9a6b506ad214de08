package repositories

import (
	"context"
	"errors"
	"time"

	"libralend/internal/adapters/persistence/models"
	"libralend/internal/core/domain"

	"gorm.io/gorm"
)

// TransactionRepository handles the loan ledger. Transactions are append
// and close only; nothing here deletes a row.
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create opens a new transaction
func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// GetByID gets a transaction with its book and member loaded
func (r *TransactionRepository) GetByID(ctx context.Context, id uint) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Book").
		Preload("Member").
		First(&tx, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// ListActive lists all open transactions, oldest loan first. Book and
// member snapshots are joined at query time for the display view.
func (r *TransactionRepository) ListActive(ctx context.Context) ([]*models.Transaction, error) {
	var txs []*models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Book").
		Preload("Member").
		Where("return_date IS NULL").
		Order("issue_date ASC").
		Find(&txs).Error
	return txs, err
}

// ListOverdue lists open transactions issued before the cutoff
func (r *TransactionRepository) ListOverdue(ctx context.Context, cutoff time.Time) ([]*models.Transaction, error) {
	var txs []*models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Book").
		Preload("Member").
		Where("return_date IS NULL AND issue_date < ?", cutoff).
		Order("issue_date ASC").
		Find(&txs).Error
	return txs, err
}

// Close finalizes a transaction exactly once. The update is guarded on
// return_date IS NULL so a concurrent or repeated close of the same
// transaction cannot double-apply.
func (r *TransactionRepository) Close(ctx context.Context, id uint, returnDate time.Time, fee float64) error {
	res := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("id = ? AND return_date IS NULL", id).
		Updates(map[string]interface{}{
			"return_date": returnDate,
			"fee":         fee,
		})
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		var tx models.Transaction
		if err := r.db.WithContext(ctx).First(&tx, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrTransactionNotFound
			}
			return err
		}
		return domain.ErrAlreadyReturned
	}

	return nil
}

// CountActiveByBook counts open transactions referencing a book
func (r *TransactionRepository) CountActiveByBook(ctx context.Context, bookID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("book_id = ? AND return_date IS NULL", bookID).
		Count(&count).Error
	return count, err
}

// CountActiveByMember counts open transactions held by a member
func (r *TransactionRepository) CountActiveByMember(ctx context.Context, memberID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("member_id = ? AND return_date IS NULL", memberID).
		Count(&count).Error
	return count, err
}
