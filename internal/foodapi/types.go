package foodapi

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/recipe-tracker/backend/internal/models"
	"github.com/pageza/recipe-tracker/backend/internal/nutrition"
	"gorm.io/datatypes"
)

const ingredientImageBase = "https://spoonacular.com/cdn/ingredients_100x100/"

// RecipeResult is one hit of a recipe search.
type RecipeResult struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Image     string `json:"image"`
	ImageType string `json:"imageType,omitempty"`
}

// IngredientResult is one hit of an ingredient search.
type IngredientResult struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// ImageURL expands the bare file name the API returns for ingredients.
func (r IngredientResult) ImageURL() string {
	if r.Image == "" || strings.HasPrefix(r.Image, "http") {
		return r.Image
	}
	return ingredientImageBase + r.Image
}

type recipeSearchResponse struct {
	Results      []RecipeResult `json:"results"`
	TotalResults int            `json:"totalResults"`
}

type ingredientSearchResponse struct {
	Results      []IngredientResult `json:"results"`
	TotalResults int                `json:"totalResults"`
}

// RecipeInformation is the detail payload of a single recipe.
type RecipeInformation struct {
	ID                  int64  `json:"id"`
	Title               string `json:"title"`
	Image               string `json:"image"`
	ReadyInMinutes      int    `json:"readyInMinutes"`
	Servings            int    `json:"servings"`
	ExtendedIngredients []struct {
		ID     int64   `json:"id"`
		Name   string  `json:"name"`
		Amount float64 `json:"amount"`
		Unit   string  `json:"unit"`
		Image  string  `json:"image"`
	} `json:"extendedIngredients"`
	AnalyzedInstructions []struct {
		Name  string `json:"name"`
		Steps []struct {
			Number int    `json:"number"`
			Step   string `json:"step"`
		} `json:"steps"`
	} `json:"analyzedInstructions"`
	Nutrition struct {
		Nutrients []models.Nutrient `json:"nutrients"`
	} `json:"nutrition"`
}

// ToRecipe maps the payload onto a recipe owned by userID. Instruction
// steps of every section are renumbered into one sequence.
func (r *RecipeInformation) ToRecipe(userID uuid.UUID) *models.Recipe {
	usages := make([]models.IngredientUsage, 0, len(r.ExtendedIngredients))
	for _, ing := range r.ExtendedIngredients {
		usages = append(usages, models.IngredientUsage{
			ID:     ing.ID,
			Name:   ing.Name,
			Amount: ing.Amount,
			Unit:   ing.Unit,
			Image:  IngredientResult{Image: ing.Image}.ImageURL(),
		})
	}

	var steps []models.InstructionStep
	for _, section := range r.AnalyzedInstructions {
		for _, s := range section.Steps {
			steps = append(steps, models.InstructionStep{Number: len(steps) + 1, Step: s.Step})
		}
	}

	nutrients := nutrition.Normalize(r.Nutrition.Nutrients)
	if steps == nil {
		steps = []models.InstructionStep{}
	}

	return &models.Recipe{
		UserID:         userID,
		ID:             r.ID,
		Title:          r.Title,
		Image:          r.Image,
		ReadyInMinutes: r.ReadyInMinutes,
		Servings:       r.Servings,
		Nutrients:      datatypes.NewJSONSlice(nutrients),
		Ingredients:    datatypes.NewJSONSlice(usages),
		Instructions:   datatypes.NewJSONSlice(steps),
	}
}
