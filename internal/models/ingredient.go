package models

import (
	"time"

	"github.com/google/uuid"
)

// Ingredient is a pantry entry. ID is the remote catalog id, unique per user.
type Ingredient struct {
	UserID    uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"-"`
	ID        int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Quantity  float64   `gorm:"not null" json:"quantity"`
	Unit      string    `gorm:"size:16;not null" json:"unit"`
	Image     string    `gorm:"size:255" json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}
