package repositories

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"libralend/internal/adapters/persistence/models"
	"libralend/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Serialize sqlite access; the production target is MySQL.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, models.AutoMigrate(db))
	return db
}

func seedBook(t *testing.T, db *gorm.DB, isbn string, stock int) *models.Book {
	t.Helper()
	book := &models.Book{Title: "Test Book", Author: "Test Author", ISBN: isbn, Stock: stock}
	require.NoError(t, db.Create(book).Error)
	return book
}

func seedMember(t *testing.T, db *gorm.DB, email string, debt float64) *models.Member {
	t.Helper()
	member := &models.Member{Name: "Test Member", Email: email, OutstandingDebt: debt}
	require.NoError(t, db.Create(member).Error)
	return member
}

func TestBookRepositoryCreateDuplicateISBN(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)
	ctx := context.Background()

	first := &models.Book{Title: "A", Author: "B", ISBN: "1111111111111", Stock: 1}
	require.NoError(t, repo.Create(ctx, first))

	second := &models.Book{Title: "C", Author: "D", ISBN: "1111111111111", Stock: 1}
	err := repo.Create(ctx, second)
	assert.ErrorIs(t, err, domain.ErrDuplicateISBN)
}

func TestBookRepositoryGetByISBN(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)
	ctx := context.Background()

	seeded := seedBook(t, db, "9781234567897", 3)

	found, err := repo.GetByISBN(ctx, "9781234567897")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, found.ID)

	_, err = repo.GetByISBN(ctx, "0000000000000")
	assert.ErrorIs(t, err, domain.ErrBookNotFound)
}

func TestBookRepositoryAdjustStock(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)
	ctx := context.Background()

	book := seedBook(t, db, "1111111111111", 1)

	updated, err := repo.AdjustStock(ctx, book.ID, -1)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Stock)

	// Stock is 0: the guard must refuse another decrement.
	_, err = repo.AdjustStock(ctx, book.ID, -1)
	var outOfStock *domain.OutOfStockError
	require.ErrorAs(t, err, &outOfStock)
	assert.Equal(t, 0, outOfStock.Stock)

	updated, err = repo.AdjustStock(ctx, book.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Stock)
}

func TestBookRepositoryAdjustStockNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)

	_, err := repo.AdjustStock(context.Background(), 9999, -1)
	assert.ErrorIs(t, err, domain.ErrBookNotFound)
}

func TestMemberRepositoryAdjustDebt(t *testing.T) {
	db := newTestDB(t)
	repo := NewMemberRepository(db)
	ctx := context.Background()

	member := seedMember(t, db, "a@example.com", 0)

	updated, err := repo.AdjustDebt(ctx, member.ID, 50)
	require.NoError(t, err)
	assert.Equal(t, 50.0, updated.OutstandingDebt)

	// Debt may never go negative.
	_, err = repo.AdjustDebt(ctx, member.ID, -100)
	assert.ErrorIs(t, err, domain.ErrDebtWouldGoNegative)

	updated, err = repo.AdjustDebt(ctx, member.ID, -50)
	require.NoError(t, err)
	assert.Equal(t, 0.0, updated.OutstandingDebt)
}

func TestMemberRepositoryCreateDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewMemberRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Member{Name: "A", Email: "dup@example.com"}))
	err := repo.Create(ctx, &models.Member{Name: "B", Email: "dup@example.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestTransactionRepositoryCloseOnce(t *testing.T) {
	db := newTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	book := seedBook(t, db, "1111111111111", 1)
	member := seedMember(t, db, "a@example.com", 0)

	loan := &models.Transaction{BookID: book.ID, MemberID: member.ID, IssueDate: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, loan))

	returnDate := time.Now().UTC()
	require.NoError(t, repo.Close(ctx, loan.ID, returnDate, 30))

	// Second close of the same transaction must refuse.
	err := repo.Close(ctx, loan.ID, returnDate, 30)
	assert.ErrorIs(t, err, domain.ErrAlreadyReturned)

	closed, err := repo.GetByID(ctx, loan.ID)
	require.NoError(t, err)
	require.NotNil(t, closed.Fee)
	assert.Equal(t, 30.0, *closed.Fee)
}

func TestTransactionRepositoryCloseNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewTransactionRepository(db)

	err := repo.Close(context.Background(), 9999, time.Now(), 0)
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestTransactionRepositoryListActive(t *testing.T) {
	db := newTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	book := seedBook(t, db, "1111111111111", 2)
	member := seedMember(t, db, "a@example.com", 0)

	open := &models.Transaction{BookID: book.ID, MemberID: member.ID, IssueDate: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, open))

	closedLoan := &models.Transaction{BookID: book.ID, MemberID: member.ID, IssueDate: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, closedLoan))
	require.NoError(t, repo.Close(ctx, closedLoan.ID, time.Now().UTC(), 0))

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, open.ID, active[0].ID)

	// Book and member snapshots are joined in for display.
	require.NotNil(t, active[0].Book)
	require.NotNil(t, active[0].Member)
	assert.Equal(t, book.Title, active[0].Book.Title)
	assert.Equal(t, member.Name, active[0].Member.Name)
}

func TestTransactionRepositoryListOverdue(t *testing.T) {
	db := newTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	book := seedBook(t, db, "1111111111111", 2)
	member := seedMember(t, db, "a@example.com", 0)

	old := &models.Transaction{BookID: book.ID, MemberID: member.ID, IssueDate: time.Now().UTC().AddDate(0, 0, -20)}
	require.NoError(t, repo.Create(ctx, old))

	recent := &models.Transaction{BookID: book.ID, MemberID: member.ID, IssueDate: time.Now().UTC().AddDate(0, 0, -2)}
	require.NoError(t, repo.Create(ctx, recent))

	cutoff := time.Now().UTC().AddDate(0, 0, -14)
	overdue, err := repo.ListOverdue(ctx, cutoff)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, old.ID, overdue[0].ID)
}

func TestTransactionRepositoryCountActiveByBook(t *testing.T) {
	db := newTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	book := seedBook(t, db, "1111111111111", 2)
	member := seedMember(t, db, "a@example.com", 0)

	count, err := repo.CountActiveByBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	loan := &models.Transaction{BookID: book.ID, MemberID: member.ID, IssueDate: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, loan))

	count, err = repo.CountActiveByBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
