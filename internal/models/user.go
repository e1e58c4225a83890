package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account together with the profile fields mirrored to the
// cloud document users/<id>.
type User struct {
	ID               uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	Email            string    `gorm:"uniqueIndex;not null" json:"email"`
	Name             string    `gorm:"not null" json:"name"`
	PhotoURL         string    `gorm:"size:255" json:"photo_url"`
	DailyCalorieGoal float64   `json:"daily_calorie_goal"`
	PasswordHash     string    `gorm:"not null" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Ingredient{},
		&Recipe{},
		&DailyEats{},
		&DailyRecipe{},
	}
}
