package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Catalog
// ============================================================

// Book represents the books table
type Book struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Author    string    `gorm:"size:500;not null" json:"author"`
	ISBN      string    `gorm:"column:isbn;uniqueIndex;size:13;not null" json:"isbn"`
	Publisher *string   `gorm:"size:200" json:"publisher"`
	Stock     int       `gorm:"not null;default:0" json:"stock"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

// BookResponse DTO
type BookResponse struct {
	ID        uint    `json:"id"`
	Title     string  `json:"title"`
	Author    string  `json:"author"`
	ISBN      string  `json:"isbn"`
	Publisher *string `json:"publisher"`
	Stock     int     `json:"stock"`
}

func (b *Book) ToResponse() *BookResponse {
	return &BookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		ISBN:      b.ISBN,
		Publisher: b.Publisher,
		Stock:     b.Stock,
	}
}

// ============================================================
// Membership
// ============================================================

// Member represents the members table
type Member struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"size:100;not null" json:"name"`
	Email           string    `gorm:"uniqueIndex;size:120;not null" json:"email"`
	OutstandingDebt float64   `gorm:"not null;default:0" json:"outstanding_debt"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Member) TableName() string {
	return "members"
}

// MemberResponse DTO
type MemberResponse struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	OutstandingDebt float64 `json:"outstanding_debt"`
}

func (m *Member) ToResponse() *MemberResponse {
	return &MemberResponse{
		ID:              m.ID,
		Name:            m.Name,
		Email:           m.Email,
		OutstandingDebt: m.OutstandingDebt,
	}
}

// ============================================================
// Transaction Ledger
// ============================================================

// Transaction represents the transactions table.
// A transaction is active while ReturnDate is NULL. Transactions are
// never deleted; they are the audit trail of every loan.
type Transaction struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	BookID     uint       `gorm:"not null;index" json:"book_id"`
	MemberID   uint       `gorm:"not null;index" json:"member_id"`
	IssueDate  time.Time  `gorm:"not null" json:"issue_date"`
	ReturnDate *time.Time `gorm:"index" json:"return_date"`
	Fee        *float64   `json:"fee"`

	// Relations
	Book   *Book   `gorm:"foreignKey:BookID" json:"book,omitempty"`
	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// IsActive reports whether the book is still out on loan.
func (t *Transaction) IsActive() bool {
	return t.ReturnDate == nil
}

// TransactionResponse DTO with embedded book/member snapshots
type TransactionResponse struct {
	ID         uint            `json:"id"`
	BookID     uint            `json:"book_id"`
	MemberID   uint            `json:"member_id"`
	IssueDate  time.Time       `json:"issue_date"`
	ReturnDate *time.Time      `json:"return_date"`
	Fee        *float64        `json:"fee"`
	Book       *BookResponse   `json:"book,omitempty"`
	Member     *MemberResponse `json:"member,omitempty"`
}

func (t *Transaction) ToResponse() *TransactionResponse {
	resp := &TransactionResponse{
		ID:         t.ID,
		BookID:     t.BookID,
		MemberID:   t.MemberID,
		IssueDate:  t.IssueDate,
		ReturnDate: t.ReturnDate,
		Fee:        t.Fee,
	}

	if t.Book != nil {
		resp.Book = t.Book.ToResponse()
	}
	if t.Member != nil {
		resp.Member = t.Member.ToResponse()
	}

	return resp
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Book{},
		&Member{},
		&Transaction{},
	)
}
