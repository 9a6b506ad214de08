package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternalServer = errors.New("internal server error")
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// Validation errors: the caller fixes its input, never retried
var (
	ErrInvalidISBN   = errors.New("isbn must be exactly 13 digits")
	ErrMissingTitle  = errors.New("title is required")
	ErrMissingAuthor = errors.New("author is required")
	ErrMissingName   = errors.New("name is required")
	ErrMissingEmail  = errors.New("email is required")
)

// Not-found errors
var (
	ErrBookNotFound        = errors.New("book not found")
	ErrMemberNotFound      = errors.New("member not found")
	ErrTransactionNotFound = errors.New("transaction not found")
)

// Conflict errors
var (
	ErrDuplicateISBN   = errors.New("a book with this isbn already exists")
	ErrDuplicateEmail  = errors.New("a member with this email already exists")
	ErrAlreadyReturned = errors.New("book already returned")
)

// ErrDebtWouldGoNegative guards the outstanding_debt >= 0 invariant.
var ErrDebtWouldGoNegative = errors.New("adjustment would make outstanding debt negative")

// OutOfStockError is returned when issuing a book with no available copies.
type OutOfStockError struct {
	BookID uint
	Stock  int
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("book %d is out of stock (stock: %d)", e.BookID, e.Stock)
}

// DebtLimitError is returned when a member's outstanding debt blocks borrowing.
type DebtLimitError struct {
	MemberID uint
	Debt     float64
	Limit    float64
}

func (e *DebtLimitError) Error() string {
	return fmt.Sprintf("member %d has outstanding debt %.2f (limit: %.2f)", e.MemberID, e.Debt, e.Limit)
}

// OutstandingDebtError blocks deleting a member who still owes fees.
type OutstandingDebtError struct {
	MemberID uint
	Debt     float64
}

func (e *OutstandingDebtError) Error() string {
	return fmt.Sprintf("member %d has outstanding debt %.2f and cannot be deleted", e.MemberID, e.Debt)
}

// ActiveLoansError blocks deleting a book that is currently on loan.
type ActiveLoansError struct {
	BookID      uint
	ActiveLoans int64
}

func (e *ActiveLoansError) Error() string {
	return fmt.Sprintf("book %d has %d active loans and cannot be deleted", e.BookID, e.ActiveLoans)
}

// MemberActiveLoansError blocks deleting a member who still holds
// borrowed books. Without it the member's open transactions could never
// be returned and the loaned copies would be lost from stock.
type MemberActiveLoansError struct {
	MemberID    uint
	ActiveLoans int64
}

func (e *MemberActiveLoansError) Error() string {
	return fmt.Sprintf("member %d has %d active loans and cannot be deleted", e.MemberID, e.ActiveLoans)
}
