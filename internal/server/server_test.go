package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-tracker/backend/config"
	"github.com/pageza/recipe-tracker/backend/internal/logging"
	"github.com/pageza/recipe-tracker/backend/internal/models"
	"github.com/pageza/recipe-tracker/backend/internal/testhelpers"
	"github.com/pageza/recipe-tracker/backend/internal/types"
)

const recipeInformation = `{
	"id": 9, "title": "Porridge", "readyInMinutes": 5, "servings": 1,
	"extendedIngredients": [{"id": 8120, "name": "oats", "amount": 50, "unit": "g", "image": "oats.jpg"}],
	"analyzedInstructions": [{"name": "", "steps": [{"number": 1, "step": "Boil."}]}],
	"nutrition": {"nutrients": [
		{"name": "Calories", "amount": 190, "unit": "kcal"},
		{"name": "Protein", "amount": 6.5, "unit": "g"}
	]}
}`

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	catalog := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recipes/9/information" || r.URL.Query().Get("apiKey") != "static-key" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(recipeInformation))
	}))
	t.Cleanup(catalog.Close)

	cfg := &config.Config{
		Env:             config.Test,
		ServerHost:      "localhost",
		ServerPort:      "0",
		JWTSecret:       "test-secret",
		FoodAPIBaseURL:  catalog.URL,
		FoodAPIKey:      "static-key",
		FoodAPITimeout:  5 * time.Second,
		SearchRateLimit: 60,
		DocumentStore:   config.DocumentStoreRedis,
		TimeZone:        "UTC",
	}

	srv, err := New(context.Background(), cfg, testhelpers.SetupTestDB(t), logging.Discard(), Options{SkipRedis: true})
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func call(t *testing.T, ts *httptest.Server, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func register(t *testing.T, ts *httptest.Server) types.AuthResponse {
	t.Helper()
	resp := call(t, ts, http.MethodPost, "/api/v1/auth/register", "", types.RegisterRequest{
		Email:    "cook@example.com",
		Password: "secret123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var auth types.AuthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&auth))
	require.NotEmpty(t, auth.Token)
	return auth
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t)
	resp := call(t, ts, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestEatingFlow(t *testing.T) {
	_, ts := newTestServer(t)
	auth := register(t, ts)
	assert.Equal(t, "cook", auth.User.Name)

	resp := call(t, ts, http.MethodGet, "/api/v1/recipes/9", auth.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var recipe models.Recipe
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&recipe))
	assert.Equal(t, "Porridge", recipe.Title)
	assert.Equal(t, "https://spoonacular.com/cdn/ingredients_100x100/oats.jpg", recipe.Ingredients[0].Image)

	resp = call(t, ts, http.MethodPost, "/api/v1/recipes/9/bookmark", auth.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for i := 0; i < 2; i++ {
		resp = call(t, ts, http.MethodPost, "/api/v1/recipes/9/eat", auth.Token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp = call(t, ts, http.MethodGet, "/api/v1/tracker/today", auth.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var day models.DailyEats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&day))

	totals := map[string]float64{}
	for _, n := range day.Nutrients {
		totals[n.Name] = n.Amount
	}
	assert.Equal(t, 380.0, totals["Calories"])
	assert.Equal(t, 13.0, totals["Protein"])
	require.Len(t, day.Recipes, 1)
	assert.Equal(t, 2, day.Recipes[0].Amount)
	assert.True(t, day.Recipes[0].Recipe.Bookmarked, "eating keeps the bookmark")

	resp = call(t, ts, http.MethodGet, "/api/v1/recipes/404", auth.Token, nil)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestTrackerWebsocket(t *testing.T) {
	srv, ts := newTestServer(t)
	auth := register(t, ts)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/tracker/ws?token=" + auth.Token
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	userID := auth.User.ID
	require.Eventually(t, func() bool { return srv.hub.Count(userID) == 1 }, 2*time.Second, 10*time.Millisecond)

	resp := call(t, ts, http.MethodPost, "/api/v1/recipes/9/eat", auth.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg struct {
		Type string           `json:"type"`
		Data models.DailyEats `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "day_updated", msg.Type)
	assert.Len(t, msg.Data.Recipes, 1)

	_, _, err = websocket.DefaultDialer.Dial(strings.Split(wsURL, "?")[0]+"?token=nope", nil)
	assert.Error(t, err)
	assert.Equal(t, 1, srv.hub.Count(userID))
	assert.Zero(t, srv.hub.Count(uuid.New()))
}
