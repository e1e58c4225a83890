package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-tracker/backend/internal/client"
	"github.com/pageza/recipe-tracker/backend/internal/models"
	"github.com/pageza/recipe-tracker/backend/internal/session"
	"github.com/pageza/recipe-tracker/backend/internal/types"
)

// fakeAPI answers every call from memory and records the token it holds.
type fakeAPI struct {
	token    string
	password string
	eaten    []int64
	todayErr error
}

func (f *fakeAPI) Login(_ context.Context, email, password string) (*types.AuthResponse, error) {
	if password != f.password {
		return nil, &client.Error{Status: 401, Message: "invalid credentials"}
	}
	tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("k"))
	return &types.AuthResponse{Token: tok, User: &models.User{Email: email}}, nil
}

func (f *fakeAPI) Register(ctx context.Context, email, password, _ string) (*types.AuthResponse, error) {
	return f.Login(ctx, email, password)
}

func (f *fakeAPI) SetToken(token string) { f.token = token }

func (f *fakeAPI) Profile(context.Context) (*models.User, error) {
	return &models.User{Name: "Ada", Email: "ada@example.com", DailyCalorieGoal: 2000}, nil
}

func (f *fakeAPI) SearchRecipes(_ context.Context, q string, _ int) ([]types.RecipeHit, error) {
	return []types.RecipeHit{{ID: 1, Title: "Pasta " + q, Bookmarked: true}}, nil
}

func (f *fakeAPI) SearchIngredients(context.Context, string, int) ([]types.IngredientHit, error) {
	return nil, nil
}

func (f *fakeAPI) Pantry(context.Context) ([]models.Ingredient, error) {
	return []models.Ingredient{{ID: 1123, Name: "egg", Quantity: 6, Unit: "pcs"}}, nil
}

func (f *fakeAPI) AddIngredient(_ context.Context, req types.AddIngredientRequest) (*models.Ingredient, error) {
	return &models.Ingredient{ID: req.ID, Name: req.Name, Quantity: 100, Unit: "g"}, nil
}

func (f *fakeAPI) UpdateQuantity(_ context.Context, id int64, q float64) (*models.Ingredient, error) {
	return &models.Ingredient{ID: id, Name: "egg", Quantity: q, Unit: "pcs"}, nil
}

func (f *fakeAPI) RemoveIngredient(context.Context, int64) error { return nil }

func (f *fakeAPI) Recipe(_ context.Context, id int64) (*models.Recipe, error) {
	return &models.Recipe{ID: id, Title: "Soup"}, nil
}

func (f *fakeAPI) Bookmarks(context.Context) ([]models.Recipe, error) { return nil, nil }

func (f *fakeAPI) ToggleBookmark(_ context.Context, id int64) (*models.Recipe, error) {
	return &models.Recipe{ID: id, Title: "Soup", Bookmarked: true}, nil
}

func (f *fakeAPI) Eat(_ context.Context, id int64) (*models.DailyEats, error) {
	f.eaten = append(f.eaten, id)
	return &models.DailyEats{Date: "2024-03-10", Nutrients: []models.Nutrient{{Name: "Calories", Amount: 250, Unit: "kcal"}}}, nil
}

func (f *fakeAPI) Today(context.Context) (*models.DailyEats, error) {
	if f.todayErr != nil {
		return nil, f.todayErr
	}
	return &models.DailyEats{Date: "2024-03-10"}, nil
}

func (f *fakeAPI) History(context.Context, string, string) ([]models.DailyEats, error) {
	return []models.DailyEats{{Date: "2024-03-10", Nutrients: []models.Nutrient{{Name: "Calories", Amount: 500, Unit: "kcal"}}}}, nil
}

func stubPassword(t *testing.T, pw string) {
	orig := readPassword
	readPassword = func(int) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { readPassword = orig })
}

func run(t *testing.T, api *fakeAPI, creds session.CredentialStore, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	app := New(api, creds, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)
	require.NoError(t, app.Run(context.Background()))
	return out.String()
}

func TestCommandsNeedLogin(t *testing.T) {
	api := &fakeAPI{password: "pw"}
	out := run(t, api, session.FileStore{Path: filepath.Join(t.TempDir(), "c.json")}, "pantry", "bogus", "exit")

	assert.Contains(t, out, "Please login first.")
	assert.Contains(t, out, "Unknown command: bogus")
	assert.Contains(t, out, "Bye!")
}

func TestLoginEatAndRestore(t *testing.T) {
	stubPassword(t, "pw")
	api := &fakeAPI{password: "pw"}
	creds := session.FileStore{Path: filepath.Join(t.TempDir(), "c.json")}

	out := run(t, api, creds, "login", "ada@example.com", "eat 42", "pantry", "search soup", "history")
	assert.Contains(t, out, "Signed in as ada@example.com.")
	assert.Contains(t, out, "Recorded. Totals for 2024-03-10:")
	assert.Contains(t, out, "egg")
	assert.Contains(t, out, "Pasta soup")
	assert.Contains(t, out, "500 kcal")
	assert.Equal(t, []int64{42}, api.eaten)
	assert.NotEmpty(t, api.token)

	// a second run starts signed in from the cached credential
	api2 := &fakeAPI{}
	out = run(t, api2, creds, "profile")
	assert.Contains(t, out, "tracker (authenticated)>")
	assert.Contains(t, out, "Ada <ada@example.com>")
	assert.NotEmpty(t, api2.token)
}

func TestWrongPasswordAndExpiry(t *testing.T) {
	stubPassword(t, "nope")
	api := &fakeAPI{password: "pw"}
	creds := session.FileStore{Path: filepath.Join(t.TempDir(), "c.json")}

	out := run(t, api, creds, "login", "ada@example.com")
	assert.Contains(t, out, "Error: api error 401: invalid credentials")

	stubPassword(t, "pw")
	api.todayErr = &client.Error{Status: 401, Message: "invalid or expired token"}
	out = run(t, api, creds, "login", "ada@example.com", "today", "today")
	assert.Contains(t, out, "Session expired, please login again.")
	assert.Contains(t, out, "Please login first.")
	assert.Empty(t, api.token)
}
