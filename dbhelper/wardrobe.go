package dbhelper

import (
	"context"

	"auraapi/models"

	"gorm.io/gorm"
)

// WardrobeRepository reads wardrobe rows from a table shaped like
// models.WardrobeItem.
type WardrobeRepository struct {
	db    *gorm.DB
	table string
}

func NewWardrobeRepository(db *gorm.DB, table string) *WardrobeRepository {
	if table == "" {
		table = models.WardrobeItem{}.TableName()
	}
	return &WardrobeRepository{db: db, table: table}
}

// ListByOwner returns every item of the owner in the order the database
// yields them, without pagination.
func (r *WardrobeRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.WardrobeItem, error) {
	var items []models.WardrobeItem
	if err := r.db.WithContext(ctx).Table(r.table).Where("user_id = ?", ownerID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
