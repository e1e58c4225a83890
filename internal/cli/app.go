// Package cli is the interactive terminal client of the recipe tracker.
package cli

import (
	"bufio"
	"context"
	"io"

	"github.com/pageza/recipe-tracker/backend/internal/models"
	"github.com/pageza/recipe-tracker/backend/internal/session"
	"github.com/pageza/recipe-tracker/backend/internal/types"
)

// API is the part of the HTTP client the commands use.
type API interface {
	session.Authenticator
	SetToken(token string)
	Profile(ctx context.Context) (*models.User, error)
	SearchRecipes(ctx context.Context, query string, number int) ([]types.RecipeHit, error)
	SearchIngredients(ctx context.Context, query string, number int) ([]types.IngredientHit, error)
	Pantry(ctx context.Context) ([]models.Ingredient, error)
	AddIngredient(ctx context.Context, req types.AddIngredientRequest) (*models.Ingredient, error)
	UpdateQuantity(ctx context.Context, id int64, quantity float64) (*models.Ingredient, error)
	RemoveIngredient(ctx context.Context, id int64) error
	Recipe(ctx context.Context, id int64) (*models.Recipe, error)
	Bookmarks(ctx context.Context) ([]models.Recipe, error)
	ToggleBookmark(ctx context.Context, id int64) (*models.Recipe, error)
	Eat(ctx context.Context, id int64) (*models.DailyEats, error)
	Today(ctx context.Context) (*models.DailyEats, error)
	History(ctx context.Context, from, to string) ([]models.DailyEats, error)
}

// App wires the session to the API and the terminal.
type App struct {
	api     API
	session *session.Session
	in      *bufio.Reader
	out     io.Writer
}

// New creates the app. The session's token is pushed into api on every
// state change.
func New(api API, creds session.CredentialStore, in io.Reader, out io.Writer) *App {
	s := session.New(api, creds)
	s.Subscribe(func(st session.Status) {
		api.SetToken(s.Token())
	})
	return &App{api: api, session: s, in: bufio.NewReader(in), out: out}
}

func (a *App) loggedIn() bool {
	return a.session.Status().State == session.Authenticated
}
