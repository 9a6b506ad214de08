package services

import (
	"context"
	"time"

	"libralend/internal/adapters/persistence/models"
	"libralend/internal/adapters/persistence/repositories"
	"libralend/internal/config"
	"libralend/internal/core/domain"

	"gorm.io/gorm"
)

// LendingService is the only component allowed to mutate stock and debt
// jointly. Both two-store updates (issue: stock decrement + ledger insert,
// return: stock increment + debt increment + ledger close) run inside a
// single database transaction.
type LendingService struct {
	db     *gorm.DB
	policy config.LendingConfig
	now    func() time.Time
}

// NewLendingService creates a new lending service
func NewLendingService(db *gorm.DB, policy config.LendingConfig) *LendingService {
	return &LendingService{
		db:     db,
		policy: policy,
		now:    time.Now,
	}
}

// IssueOutput represents issue book output
type IssueOutput struct {
	Transaction *models.Transaction `json:"transaction"`
	// DebtWarning is set when the member is still eligible but their
	// outstanding debt has crossed the warning threshold.
	DebtWarning bool `json:"debt_warning"`
}

// IssueBook issues a book to a member. Eligibility (stock available, debt
// under the limit) is checked first; the stock decrement and ledger insert
// then commit as a unit. A last-copy race is resolved by the guarded stock
// update: the loser's transaction rolls back and surfaces OutOfStock.
func (s *LendingService) IssueBook(ctx context.Context, bookID, memberID uint) (*IssueOutput, error) {
	bookRepo := repositories.NewBookRepository(s.db)
	memberRepo := repositories.NewMemberRepository(s.db)

	book, err := bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book.Stock <= 0 {
		return nil, &domain.OutOfStockError{BookID: bookID, Stock: book.Stock}
	}

	member, err := memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member.OutstandingDebt >= s.policy.DebtLimit {
		return nil, &domain.DebtLimitError{
			MemberID: memberID,
			Debt:     member.OutstandingDebt,
			Limit:    s.policy.DebtLimit,
		}
	}

	loan := &models.Transaction{
		BookID:    bookID,
		MemberID:  memberID,
		IssueDate: s.now().UTC(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updated, err := repositories.NewBookRepository(tx).AdjustStock(ctx, bookID, -1)
		if err != nil {
			return err
		}
		book = updated
		return repositories.NewTransactionRepository(tx).Create(ctx, loan)
	})
	if err != nil {
		return nil, err
	}

	loan.Book = book
	loan.Member = member

	return &IssueOutput{
		Transaction: loan,
		DebtWarning: member.OutstandingDebt >= s.policy.DebtWarning,
	}, nil
}

// ReturnOutput represents return book output
type ReturnOutput struct {
	Transaction *models.Transaction `json:"transaction"`
	Fee         float64             `json:"fee"`
	TotalDebt   float64             `json:"total_debt"`
}

// ReturnBook closes a transaction: the book comes back to stock and the
// member's debt grows by the computed fee. The fee charges the daily rate
// per full day on loan; a same-day return costs nothing.
func (s *LendingService) ReturnBook(ctx context.Context, transactionID uint) (*ReturnOutput, error) {
	txRepo := repositories.NewTransactionRepository(s.db)

	loan, err := txRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !loan.IsActive() {
		return nil, domain.ErrAlreadyReturned
	}

	returnDate := s.now().UTC()
	fee := s.computeFee(loan.IssueDate, returnDate)

	var member *models.Member
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The guarded close makes a concurrent double-return lose here,
		// before any stock or debt change is applied.
		if err := repositories.NewTransactionRepository(tx).Close(ctx, transactionID, returnDate, fee); err != nil {
			return err
		}
		if _, err := repositories.NewBookRepository(tx).AdjustStock(ctx, loan.BookID, 1); err != nil {
			return err
		}

		memberRepo := repositories.NewMemberRepository(tx)
		if fee > 0 {
			member, err = memberRepo.AdjustDebt(ctx, loan.MemberID, fee)
			return err
		}
		member, err = memberRepo.GetByID(ctx, loan.MemberID)
		return err
	})
	if err != nil {
		return nil, err
	}

	closed, err := txRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	return &ReturnOutput{
		Transaction: closed,
		Fee:         fee,
		TotalDebt:   member.OutstandingDebt,
	}, nil
}

// computeFee charges DailyFee per elapsed full day, clamped at zero.
func (s *LendingService) computeFee(issueDate, returnDate time.Time) float64 {
	days := int(returnDate.Sub(issueDate).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return float64(days) * s.policy.DailyFee
}

// ListActive lists all open loans with book and member snapshots
func (s *LendingService) ListActive(ctx context.Context) ([]*models.Transaction, error) {
	return repositories.NewTransactionRepository(s.db).ListActive(ctx)
}

// GetTransaction gets a single transaction
func (s *LendingService) GetTransaction(ctx context.Context, id uint) (*models.Transaction, error) {
	return repositories.NewTransactionRepository(s.db).GetByID(ctx, id)
}
