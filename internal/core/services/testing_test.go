package services

import (
	"path/filepath"
	"testing"

	"libralend/internal/adapters/persistence/models"
	"libralend/internal/config"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testPolicy() config.LendingConfig {
	return config.LendingConfig{
		DebtLimit:        500,
		DebtWarning:      400,
		DailyFee:         10,
		OverdueAfterDays: 14,
	}
}

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

func getBook(t *testing.T, db *gorm.DB, id uint) *models.Book {
	t.Helper()
	var book models.Book
	require.NoError(t, db.First(&book, id).Error)
	return &book
}

func getMember(t *testing.T, db *gorm.DB, id uint) *models.Member {
	t.Helper()
	var member models.Member
	require.NoError(t, db.First(&member, id).Error)
	return &member
}
