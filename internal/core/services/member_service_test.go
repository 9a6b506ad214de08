package services

import (
	"context"
	"testing"

	"libralend/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMemberService(db *gorm.DB) *MemberService {
	return NewMemberService(db)
}

func TestMemberCreate(t *testing.T) {
	db := newTestDB(t)
	svc := newMemberService(db)
	ctx := context.Background()

	member, err := svc.Create(ctx, &CreateMemberInput{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.NotZero(t, member.ID)
	assert.Equal(t, 0.0, member.OutstandingDebt)

	_, err = svc.Create(ctx, &CreateMemberInput{Name: "", Email: "x@example.com"})
	assert.ErrorIs(t, err, domain.ErrMissingName)

	_, err = svc.Create(ctx, &CreateMemberInput{Name: "Bob", Email: "not-an-email"})
	assert.ErrorIs(t, err, domain.ErrMissingEmail)

	_, err = svc.Create(ctx, &CreateMemberInput{Name: "Alice Again", Email: "alice@example.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestMemberUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := newMemberService(db)
	ctx := context.Background()

	member := seedMember(t, db, "a@example.com", 120)

	name := "Renamed"
	updated, err := svc.Update(ctx, member.ID, &UpdateMemberInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	// Debt is engine-owned; a profile update cannot touch it.
	assert.Equal(t, 120.0, updated.OutstandingDebt)

	_, err = svc.Update(ctx, 9999, &UpdateMemberInput{Name: &name})
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
}

func TestMemberDeleteDebtGuard(t *testing.T) {
	db := newTestDB(t)
	svc := newMemberService(db)
	ctx := context.Background()

	indebted := seedMember(t, db, "owes@example.com", 75)
	err := svc.Delete(ctx, indebted.ID)
	var outstanding *domain.OutstandingDebtError
	require.ErrorAs(t, err, &outstanding)
	assert.Equal(t, 75.0, outstanding.Debt)

	// Member still exists after the refused delete.
	_, err = svc.GetByID(ctx, indebted.ID)
	require.NoError(t, err)

	clear := seedMember(t, db, "clear@example.com", 0)
	require.NoError(t, svc.Delete(ctx, clear.ID))
	_, err = svc.GetByID(ctx, clear.ID)
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
}

func TestMemberDeleteBlockedWhileHoldingLoan(t *testing.T) {
	db := newTestDB(t)
	svc := newMemberService(db)
	lending := NewLendingService(db, testPolicy())
	ctx := context.Background()

	book := seedBook(t, db, "1111111111111", 1)
	member := seedMember(t, db, "borrower@example.com", 0)

	out, err := lending.IssueBook(ctx, book.ID, member.ID)
	require.NoError(t, err)

	// No debt, but an open loan: delete must refuse or the copy could
	// never come back to stock.
	err = svc.Delete(ctx, member.ID)
	var activeLoans *domain.MemberActiveLoansError
	require.ErrorAs(t, err, &activeLoans)
	assert.Equal(t, int64(1), activeLoans.ActiveLoans)

	_, err = svc.GetByID(ctx, member.ID)
	require.NoError(t, err)

	// The loan is still returnable and the copy comes home.
	_, err = lending.ReturnBook(ctx, out.Transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, getBook(t, db, book.ID).Stock)

	// With the loan closed the delete goes through.
	require.NoError(t, svc.Delete(ctx, member.ID))
	_, err = svc.GetByID(ctx, member.ID)
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
}

func TestMemberList(t *testing.T) {
	db := newTestDB(t)
	svc := newMemberService(db)
	ctx := context.Background()

	seedMember(t, db, "a@example.com", 0)
	seedMember(t, db, "b@example.com", 0)

	out, err := svc.List(ctx, 1, 20)
	require.NoError(t, err)
	assert.Len(t, out.Members, 2)
	assert.Equal(t, int64(2), out.Total)
}
