package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// IngredientUsage is one line of a recipe's ingredient list.
type IngredientUsage struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
	Image  string  `json:"image,omitempty"`
}

// InstructionStep is a numbered preparation step.
type InstructionStep struct {
	Number int    `json:"number"`
	Step   string `json:"step"`
}

// Recipe is a locally stored copy of a remote recipe. ID is the remote id.
type Recipe struct {
	UserID         uuid.UUID                            `gorm:"type:varchar(36);primaryKey" json:"-"`
	ID             int64                                `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Title          string                               `gorm:"size:255;not null" json:"title"`
	Image          string                               `gorm:"size:255" json:"image"`
	Bookmarked     bool                                 `gorm:"not null" json:"bookmarked"`
	ReadyInMinutes int                                  `json:"ready_in_minutes"`
	Servings       int                                  `json:"servings"`
	Nutrients      datatypes.JSONSlice[Nutrient]        `gorm:"not null" json:"nutrients"`
	Ingredients    datatypes.JSONSlice[IngredientUsage] `gorm:"not null" json:"ingredients"`
	Instructions   datatypes.JSONSlice[InstructionStep] `gorm:"not null" json:"instructions"`
	CreatedAt      time.Time                            `json:"created_at"`
	UpdatedAt      time.Time                            `json:"updated_at"`
}

func (Recipe) TableName() string {
	return "recipes"
}
