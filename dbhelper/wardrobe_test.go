package dbhelper

import (
	"context"
	"testing"

	"auraapi/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestListByOwner(t *testing.T) {
	db := SetupTestDB()
	cleaner := SetupCleaner(db)
	defer cleaner()

	items := []models.WardrobeItem{
		{ID: uuid.NewString(), UserID: "user-1", Kategori: strPtr("Pantolon"), Renk: strPtr("Siyah")},
		{ID: uuid.NewString(), UserID: "user-2", Kategori: strPtr("Etek")},
		{ID: uuid.NewString(), UserID: "user-1", Kategori: strPtr("Gömlek"), Kumas: strPtr("Keten")},
	}
	require.NoError(t, db.Create(&items).Error)

	repo := NewWardrobeRepository(db, "")
	got, err := repo.ListByOwner(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Pantolon", *got[0].Kategori)
	assert.Equal(t, "Gömlek", *got[1].Kategori)
	assert.Nil(t, got[1].Renk)
	assert.Equal(t, "Keten", *got[1].Kumas)
}

func TestListByOwnerEmpty(t *testing.T) {
	db := SetupTestDB()
	cleaner := SetupCleaner(db)
	defer cleaner()

	got, err := NewWardrobeRepository(db, models.WardrobeItem{}.TableName()).ListByOwner(context.Background(), "nobody")

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListByOwnerUnknownTable(t *testing.T) {
	db := SetupTestDB()

	_, err := NewWardrobeRepository(db, "missing_table").ListByOwner(context.Background(), "user-1")

	assert.Error(t, err)
}

func TestListByOwnerCanceledContext(t *testing.T) {
	db := SetupTestDB()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewWardrobeRepository(db, "").ListByOwner(ctx, "user-1")

	assert.Error(t, err)
}

func TestSetupDBRejectsUnknownScheme(t *testing.T) {
	for _, dsn := range []string{"", "redis://localhost:6379", "host=localhost user=postgres"} {
		_, err := SetupDB(dsn)
		assert.Error(t, err, dsn)
	}
}
