package testhelpers

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/pageza/recipe-tracker/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TestPassword is the clear-text password of users made by CreateTestUser.
const TestPassword = "testpassword123"

// CreateTestUser creates a user with a unique email and TestPassword.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	id := uuid.New()
	user := &models.User{
		ID:           id,
		Name:         "Test User",
		Email:        fmt.Sprintf("testuser+%s@example.com", id),
		PasswordHash: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// SampleRecipe returns an unsaved recipe with a small nutrient panel.
func SampleRecipe(userID uuid.UUID, id int64, nutrients ...models.Nutrient) *models.Recipe {
	if len(nutrients) == 0 {
		nutrients = []models.Nutrient{
			{Name: "Protein", Amount: 10, Unit: "g"},
			{Name: "Carbs", Amount: 30, Unit: "g"},
		}
	}
	return &models.Recipe{
		UserID:         userID,
		ID:             id,
		Title:          fmt.Sprintf("Recipe %d", id),
		Image:          fmt.Sprintf("https://img.example.com/recipes/%d.jpg", id),
		ReadyInMinutes: 20,
		Servings:       2,
		Nutrients:      datatypes.NewJSONSlice(nutrients),
		Ingredients: datatypes.NewJSONSlice([]models.IngredientUsage{
			{ID: 1001, Name: "egg", Amount: 2, Unit: "pcs"},
		}),
		Instructions: datatypes.NewJSONSlice([]models.InstructionStep{
			{Number: 1, Step: "Cook."},
		}),
	}
}
