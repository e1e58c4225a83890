package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/recipe-tracker/backend/internal/foodapi"
	"github.com/pageza/recipe-tracker/backend/internal/models"
	"github.com/pageza/recipe-tracker/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, email, password, name string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.User, error)
	Update(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.User, error)
	PullFromCloud(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// IIngredientService defines the interface for pantry operations
type IIngredientService interface {
	Add(ctx context.Context, userID uuid.UUID, ingredient *models.Ingredient) (*models.Ingredient, error)
	AddFromSearch(ctx context.Context, userID uuid.UUID, req *types.AddIngredientRequest) (*models.Ingredient, error)
	Get(ctx context.Context, userID uuid.UUID, id int64) (*models.Ingredient, error)
	Exists(ctx context.Context, userID uuid.UUID, id int64) (bool, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.Ingredient, error)
	UpdateQuantity(ctx context.Context, userID uuid.UUID, id int64, quantity float64) (*models.Ingredient, error)
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
	Clear(ctx context.Context, userID uuid.UUID) error
	SyncFromCloud(ctx context.Context, userID uuid.UUID) ([]models.Ingredient, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	Upsert(ctx context.Context, userID uuid.UUID, recipe *models.Recipe) (*models.Recipe, error)
	Get(ctx context.Context, userID uuid.UUID, id int64) (*models.Recipe, error)
	Resolve(ctx context.Context, userID uuid.UUID, id int64) (*models.Recipe, error)
	Exists(ctx context.Context, userID uuid.UUID, id int64) (bool, error)
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
	List(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error)
	Bookmarked(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error)
	SetBookmark(ctx context.Context, userID uuid.UUID, id int64, bookmarked bool) (*models.Recipe, error)
	ToggleBookmark(ctx context.Context, userID uuid.UUID, id int64) (*models.Recipe, error)
	FetchDetails(ctx context.Context, userID uuid.UUID, id int64) (*models.Recipe, error)
}

// IDailyEatsService defines the interface for the nutrition tracker
type IDailyEatsService interface {
	RecordConsumption(ctx context.Context, userID uuid.UUID, recipe *models.Recipe) (*models.DailyEats, error)
	Today() string
	Day(ctx context.Context, userID uuid.UUID, date string) (*models.DailyEats, error)
	History(ctx context.Context, userID uuid.UUID, from, to string) ([]models.DailyEats, error)
	RemoveDay(ctx context.Context, userID uuid.UUID, date string) error
}

// ISearchService defines the interface for catalog searches
type ISearchService interface {
	Recipes(ctx context.Context, userID uuid.UUID, query string, number int) ([]types.RecipeHit, error)
	Ingredients(ctx context.Context, userID uuid.UUID, query string, number int) ([]types.IngredientHit, error)
}

// Catalog is the remote food API.
type Catalog interface {
	SearchRecipes(ctx context.Context, query string, number int) ([]foodapi.RecipeResult, error)
	SearchIngredients(ctx context.Context, query string, number int) ([]foodapi.IngredientResult, error)
	RecipeInformation(ctx context.Context, id int64) (*foodapi.RecipeInformation, error)
}

// Broadcaster pushes messages to a user's live connections.
type Broadcaster interface {
	Broadcast(ctx context.Context, userID uuid.UUID, messageType string, data any)
}

var (
	_ IAuthService       = (*AuthService)(nil)
	_ IProfileService    = (*ProfileService)(nil)
	_ IIngredientService = (*IngredientService)(nil)
	_ IRecipeService     = (*RecipeService)(nil)
	_ IDailyEatsService  = (*DailyEatsService)(nil)
	_ ISearchService     = (*SearchService)(nil)
	_ Catalog            = (*foodapi.Client)(nil)
)
