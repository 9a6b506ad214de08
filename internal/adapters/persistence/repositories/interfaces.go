package repositories

import (
	"context"
	"time"

	"libralend/internal/adapters/persistence/models"
)

// CatalogStore defines the catalog store contract
type CatalogStore interface {
	Create(ctx context.Context, book *models.Book) error
	GetByID(ctx context.Context, id uint) (*models.Book, error)
	GetByISBN(ctx context.Context, isbn string) (*models.Book, error)
	List(ctx context.Context, offset, limit int) ([]*models.Book, int64, error)
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id uint) error
	AdjustStock(ctx context.Context, id uint, delta int) (*models.Book, error)
}

// MembershipStore defines the membership store contract
type MembershipStore interface {
	Create(ctx context.Context, member *models.Member) error
	GetByID(ctx context.Context, id uint) (*models.Member, error)
	List(ctx context.Context, offset, limit int) ([]*models.Member, int64, error)
	Update(ctx context.Context, member *models.Member) error
	Delete(ctx context.Context, id uint) error
	AdjustDebt(ctx context.Context, id uint, delta float64) (*models.Member, error)
}

// TransactionLedger defines the loan ledger contract
type TransactionLedger interface {
	Create(ctx context.Context, tx *models.Transaction) error
	GetByID(ctx context.Context, id uint) (*models.Transaction, error)
	ListActive(ctx context.Context) ([]*models.Transaction, error)
	ListOverdue(ctx context.Context, cutoff time.Time) ([]*models.Transaction, error)
	Close(ctx context.Context, id uint, returnDate time.Time, fee float64) error
	CountActiveByBook(ctx context.Context, bookID uint) (int64, error)
	CountActiveByMember(ctx context.Context, memberID uint) (int64, error)
}

var (
	_ CatalogStore      = (*BookRepository)(nil)
	_ MembershipStore   = (*MemberRepository)(nil)
	_ TransactionLedger = (*TransactionRepository)(nil)
)
