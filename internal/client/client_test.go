package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-tracker/backend/internal/models"
	"github.com/pageza/recipe-tracker/backend/internal/types"
)

func TestLoginAndAuthorizedCalls(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/login":
			var req types.LoginRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.Password != "pw" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"invalid credentials"}`))
				return
			}
			_ = json.NewEncoder(w).Encode(types.AuthResponse{Token: "tok", User: &models.User{Email: req.Email}})
		case "/api/v1/ingredients/7":
			gotAuth = r.Header.Get("Authorization")
			var req types.UpdateQuantityRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			_ = json.NewEncoder(w).Encode(models.Ingredient{ID: 7, Quantity: *req.Quantity})
		case "/api/v1/search/recipes":
			assert.Equal(t, "pasta bake", r.URL.Query().Get("q"))
			assert.Equal(t, "3", r.URL.Query().Get("number"))
			_ = json.NewEncoder(w).Encode([]types.RecipeHit{{ID: 1}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL+"/", nil)
	ctx := context.Background()

	_, err := c.Login(ctx, "a@b.c", "bad")
	assert.ErrorIs(t, err, ErrUnauthorized)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid credentials", apiErr.Message)

	auth, err := c.Login(ctx, "a@b.c", "pw")
	require.NoError(t, err)
	c.SetToken(auth.Token)

	ing, err := c.UpdateQuantity(ctx, 7, 3)
	require.NoError(t, err)
	assert.Equal(t, 3.0, ing.Quantity)
	assert.Equal(t, "Bearer tok", gotAuth)

	hits, err := c.SearchRecipes(ctx, "pasta bake", 3)
	require.NoError(t, err)
	assert.Len(t, hits, 1)

	_, err = c.Today(ctx)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.False(t, errors.Is(err, ErrUnauthorized))
}
