package services

import (
	"context"
	"testing"

	"libralend/internal/adapters/persistence/models"
	"libralend/internal/adapters/persistence/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newImportService(db *gorm.DB) *ImportService {
	return NewImportService(repositories.NewBookRepository(db))
}

func TestImportBatchNewAndExisting(t *testing.T) {
	db := newTestDB(t)
	svc := newImportService(db)
	ctx := context.Background()

	// One ISBN already cataloged, one new.
	existing := seedBook(t, db, "1111111111111", 2)

	batch := []BookDescriptor{
		{Title: "Known Book", Authors: "Someone", ISBN: "1111111111111"},
		{Title: "New Book", Authors: "Someone Else", ISBN: "2222222222222", Publisher: "Acme"},
	}

	result, err := svc.ImportBatch(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Merged)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 2, result.Total)
	assert.Empty(t, result.Errors)

	// The merge added one physical copy instead of a new record.
	assert.Equal(t, 3, getBook(t, db, existing.ID).Stock)

	var created models.Book
	require.NoError(t, db.Where("isbn = ?", "2222222222222").First(&created).Error)
	assert.Equal(t, 1, created.Stock)
	require.NotNil(t, created.Publisher)
	assert.Equal(t, "Acme", *created.Publisher)

	// Re-importing the same batch merges everything and creates nothing.
	result, err = svc.ImportBatch(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Imported)
	assert.Equal(t, 2, result.Merged)

	var count int64
	require.NoError(t, db.Model(&models.Book{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestImportBatchSkipsInvalidISBN(t *testing.T) {
	db := newTestDB(t)
	svc := newImportService(db)

	batch := []BookDescriptor{
		{Title: "Too Short", Authors: "X", ISBN: "12345"},
		{Title: "Not Digits", Authors: "X", ISBN: "12345678901ab"},
		{Title: "Missing", Authors: "X", ISBN: ""},
		{Title: "Fine", Authors: "X", ISBN: "3333333333333"},
	}

	result, err := svc.ImportBatch(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 0, result.Merged)
	assert.Equal(t, 3, result.Skipped)
	assert.Equal(t, 4, result.Total)
}

func TestImportBatchEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := newImportService(db)

	// Nothing new is still a success; the caller reads the counts.
	result, err := svc.ImportBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Imported)
	assert.Equal(t, 0, result.Total)
	assert.NotEmpty(t, result.Message)
}

func TestImportBatchTruncatesLongFields(t *testing.T) {
	db := newTestDB(t)
	svc := newImportService(db)

	long := make([]byte, 600)
	for i := range long {
		long[i] = 'a'
	}

	batch := []BookDescriptor{
		{Title: string(long), Authors: string(long), ISBN: "4444444444444"},
	}

	result, err := svc.ImportBatch(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)

	var created models.Book
	require.NoError(t, db.Where("isbn = ?", "4444444444444").First(&created).Error)
	assert.Len(t, created.Title, 200)
	assert.Len(t, created.Author, 500)
}
