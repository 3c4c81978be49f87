package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MenuItem is a product on the lounge menu. Image holds either a URL or an
// encoded blob (data URI) and is passed through untouched.
type MenuItem struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" gorm:"not null"`
	Description *string   `json:"description"`
	Image       *string   `json:"image"`
	Price       float64   `json:"price" gorm:"not null;default:0;check:price >= 0"`
	Available   bool      `json:"available" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
