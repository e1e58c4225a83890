package foodapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalog serves both the key service and the catalog endpoints.
type fakeCatalog struct {
	keyHits   atomic.Int32
	keys      []string
	validKey  string
	lastQuery atomic.Value
}

func (f *fakeCatalog) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/key", func(w http.ResponseWriter, r *http.Request) {
		n := int(f.keyHits.Add(1)) - 1
		if n >= len(f.keys) {
			n = len(f.keys) - 1
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"apiKey": f.keys[n]})
	})
	auth := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			f.lastQuery.Store(r.URL.Query())
			if r.URL.Query().Get("apiKey") != f.validKey {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message":"invalid key"}`))
				return
			}
			next(w, r)
		}
	}
	mux.HandleFunc("/recipes/complexSearch", auth(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[{"id":1,"title":"Pasta","image":"p.jpg"},{"id":2,"title":"Pizza","image":"z.jpg"}],"totalResults":2}`))
	}))
	mux.HandleFunc("/food/ingredients/search", auth(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[{"id":9003,"name":"apple","image":"apple.jpg"}],"totalResults":1}`))
	}))
	mux.HandleFunc("/recipes/716429/information", auth(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"id": 716429, "title": "Pasta with Garlic", "image": "https://img/716429.jpg",
			"readyInMinutes": 45, "servings": 2,
			"extendedIngredients": [{"id": 1001, "name": "butter", "amount": 1, "unit": "tbsp", "image": "butter.png"}],
			"analyzedInstructions": [
				{"name": "", "steps": [{"number": 1, "step": "Boil water."}]},
				{"name": "Sauce", "steps": [{"number": 1, "step": "Melt butter."}]}
			],
			"nutrition": {"nutrients": [{"name": "Calories", "amount": 584, "unit": "kcal"}, {"name": "Protein", "amount": 19, "unit": "g"}]}
		}`))
	}))
	mux.HandleFunc("/recipes/1/information", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`quota exceeded`))
	})
	return mux
}

func newTestClient(t *testing.T, f *fakeCatalog) *Client {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	keys := NewKeyProvider(srv.URL+"/key", "", srv.Client(), NewMemoryKeyCache(time.Hour))
	return New(srv.URL, keys, 0)
}

func TestSearchRecipesReusesKey(t *testing.T) {
	f := &fakeCatalog{keys: []string{"k1"}, validKey: "k1"}
	c := newTestClient(t, f)
	ctx := context.Background()

	results, err := c.SearchRecipes(ctx, "pasta", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Pasta", results[0].Title)

	_, err = c.SearchRecipes(ctx, "pizza", 0)
	require.NoError(t, err)

	assert.Equal(t, int32(1), f.keyHits.Load())
	q := f.lastQuery.Load().(url.Values)
	assert.Equal(t, []string{"pizza"}, q["query"])
	assert.Equal(t, []string{fmt.Sprint(DefaultNumber)}, q["number"])
}

func TestRejectedKeyIsRefreshedOnce(t *testing.T) {
	f := &fakeCatalog{keys: []string{"stale", "fresh"}, validKey: "fresh"}
	c := newTestClient(t, f)

	results, err := c.SearchIngredients(context.Background(), "apple", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "apple", results[0].Name)
	assert.Equal(t, "https://spoonacular.com/cdn/ingredients_100x100/apple.jpg", results[0].ImageURL())
	assert.Equal(t, int32(2), f.keyHits.Load())
}

func TestRejectedKeyGivesUpAfterOneRetry(t *testing.T) {
	f := &fakeCatalog{keys: []string{"bad"}, validKey: "good"}
	c := newTestClient(t, f)

	_, err := c.SearchRecipes(context.Background(), "x", 1)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, int32(2), f.keyHits.Load())
}

func TestNon2xxBecomesAPIError(t *testing.T) {
	f := &fakeCatalog{keys: []string{"k"}, validKey: "k"}
	c := newTestClient(t, f)

	_, err := c.RecipeInformation(context.Background(), 1)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusPaymentRequired, apiErr.Status)
	assert.Equal(t, "quota exceeded", apiErr.Body)
}

func TestRecipeInformationToRecipe(t *testing.T) {
	f := &fakeCatalog{keys: []string{"k"}, validKey: "k"}
	c := newTestClient(t, f)

	info, err := c.RecipeInformation(context.Background(), 716429)
	require.NoError(t, err)
	q := f.lastQuery.Load().(url.Values)
	assert.Equal(t, []string{"true"}, q["includeNutrition"])

	userID := uuid.New()
	recipe := info.ToRecipe(userID)
	assert.Equal(t, userID, recipe.UserID)
	assert.Equal(t, int64(716429), recipe.ID)
	assert.Equal(t, 45, recipe.ReadyInMinutes)
	require.Len(t, recipe.Nutrients, 2)
	assert.Equal(t, "kcal", recipe.Nutrients[0].Unit)
	require.Len(t, recipe.Ingredients, 1)
	assert.Equal(t, "https://spoonacular.com/cdn/ingredients_100x100/butter.png", recipe.Ingredients[0].Image)
	require.Len(t, recipe.Instructions, 2)
	assert.Equal(t, 2, recipe.Instructions[1].Number)
	assert.Equal(t, "Melt butter.", recipe.Instructions[1].Step)
	assert.False(t, recipe.Bookmarked)
}

func TestKeyProvider(t *testing.T) {
	t.Run("static key skips the key service", func(t *testing.T) {
		p := NewKeyProvider("http://127.0.0.1:1/unused", "static", nil, NewMemoryKeyCache(time.Hour))
		key, err := p.Key(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "static", key)
		assert.False(t, p.Invalidate(context.Background()))
	})

	t.Run("no url and no cached key", func(t *testing.T) {
		p := NewKeyProvider("", "", nil, NewMemoryKeyCache(time.Hour))
		_, err := p.Key(context.Background())
		assert.ErrorIs(t, err, ErrKeyUnavailable)
	})

	t.Run("key service failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		p := NewKeyProvider(srv.URL, "", srv.Client(), NewMemoryKeyCache(time.Hour))
		_, err := p.Key(context.Background())
		assert.True(t, errors.Is(err, ErrKeyUnavailable))
	})
}

func TestMemoryKeyCacheExpires(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryKeyCache(time.Minute)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k"))
	key, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "k", key)

	now = now.Add(2 * time.Minute)
	_, ok, _ = c.Get(ctx)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k2"))
	require.NoError(t, c.Invalidate(ctx))
	_, ok, _ = c.Get(ctx)
	assert.False(t, ok)
}

func TestToRecipeFoldsRepeatedNutrients(t *testing.T) {
	var info RecipeInformation
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": 7,
		"title": "Stew",
		"nutrition": {"nutrients": [
			{"name": "Protein", "amount": 10, "unit": "g"},
			{"name": "Protein", "amount": 5, "unit": "g"},
			{"name": "Calories", "amount": 200, "unit": "kcal"}
		]}
	}`), &info))

	recipe := info.ToRecipe(uuid.New())
	require.Len(t, recipe.Nutrients, 2)
	assert.Equal(t, "Protein", recipe.Nutrients[0].Name)
	assert.Equal(t, 15.0, recipe.Nutrients[0].Amount)
	assert.Equal(t, "Calories", recipe.Nutrients[1].Name)
	assert.NotNil(t, recipe.Instructions)
}
