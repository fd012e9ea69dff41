package models

import (
	"encoding/json"
	"time"
)

// ClothingAttributeKeys are the keys the vision model has to return, in the
// order the instruction lists them.
var ClothingAttributeKeys = []string{"kategori", "renk", "desen", "stil", "mevsim", "kumas"}

// ClothingAttributes is the model's description of one garment. It is kept
// exactly as the model wrote it, only the presence of ClothingAttributeKeys
// is checked.
type ClothingAttributes json.RawMessage

func (a ClothingAttributes) MarshalJSON() ([]byte, error) {
	if len(a) == 0 {
		return []byte("null"), nil
	}
	return []byte(a), nil
}

// WardrobeItem is a row of the wardrobe table. Rows are written by the
// client application, this service only reads them.
type WardrobeItem struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index" json:"user_id"`
	Kategori  *string   `json:"kategori"`
	Renk      *string   `json:"renk"`
	Desen     *string   `json:"desen"`
	Stil      *string   `json:"stil"`
	Mevsim    *string   `json:"mevsim"`
	Kumas     *string   `json:"kumas"`
	CreatedAt time.Time `json:"created_at"`
}

func (WardrobeItem) TableName() string {
	return "kiyafetler"
}
