package types

import (
	"github.com/pageza/recipe-tracker/backend/internal/models"
)

// RegisterRequest represents the request body for creating an account
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest represents the request body for signing in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// AddIngredientRequest adds a search result to the pantry. Zero quantity
// and empty unit are filled in from the ingredient name.
type AddIngredientRequest struct {
	ID       int64   `json:"id" binding:"required"`
	Name     string  `json:"name" binding:"required"`
	Image    string  `json:"image"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// UpdateQuantityRequest changes the quantity of one pantry entry
type UpdateQuantityRequest struct {
	Quantity *float64 `json:"quantity" binding:"required"`
}

// SetBookmarkRequest is the optional body of PUT /recipes/:id/bookmark
type SetBookmarkRequest struct {
	Bookmarked *bool `json:"bookmarked"`
}

// RecipeHit is a recipe search result annotated with local state
type RecipeHit struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Image      string `json:"image"`
	Bookmarked bool   `json:"bookmarked"`
}

// IngredientHit is an ingredient search result annotated with local state
type IngredientHit struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Image    string `json:"image"`
	Unit     string `json:"unit"`
	InPantry bool   `json:"in_pantry"`
}
