package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DateLayout is the calendar key format of DailyEats rows.
const DateLayout = "2006-01-02"

// DailyEats is the running nutrient total of one user for one calendar date.
type DailyEats struct {
	UserID    uuid.UUID                     `gorm:"type:varchar(36);primaryKey" json:"-"`
	Date      string                        `gorm:"type:varchar(10);primaryKey" json:"date"`
	Nutrients datatypes.JSONSlice[Nutrient] `gorm:"not null" json:"nutrients"`
	Recipes   []DailyRecipe                 `gorm:"foreignKey:UserID,Date;references:UserID,Date;constraint:OnDelete:CASCADE" json:"recipes,omitempty"`
	CreatedAt time.Time                     `json:"created_at"`
	UpdatedAt time.Time                     `json:"updated_at"`
}

func (DailyEats) TableName() string {
	return "daily_eats"
}

// DailyRecipe links a date to a recipe eaten that day. Amount counts the
// eating events; a second event on the same day increments it.
type DailyRecipe struct {
	UserID   uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"-"`
	Date     string    `gorm:"type:varchar(10);primaryKey" json:"date"`
	RecipeID int64     `gorm:"primaryKey;autoIncrement:false" json:"recipe_id"`
	Amount   int       `gorm:"not null" json:"amount"`
	Recipe   *Recipe   `gorm:"foreignKey:UserID,RecipeID;references:UserID,ID;constraint:OnDelete:CASCADE" json:"recipe,omitempty"`
}

func (DailyRecipe) TableName() string {
	return "daily_recipes"
}
