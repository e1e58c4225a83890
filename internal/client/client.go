// Package client is a typed HTTP client for the recipe tracker API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pageza/recipe-tracker/backend/internal/models"
	"github.com/pageza/recipe-tracker/backend/internal/types"
)

// ErrUnauthorized is returned for 401 responses.
var ErrUnauthorized = errors.New("unauthorized")

// Error is a non-2xx response.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses.
func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// Client talks to one API server. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// New creates a client for the server at baseURL. A nil httpClient gets a
// 15 second timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// SetToken sets the bearer token sent with every request.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.mu.RLock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.mu.RUnlock()

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(raw, &e) != nil || e.Error == "" {
			e.Error = strings.TrimSpace(string(raw))
		}
		return &Error{Status: resp.StatusCode, Message: e.Error}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) Register(ctx context.Context, email, password, name string) (*types.AuthResponse, error) {
	var out types.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", types.RegisterRequest{Email: email, Password: password, Name: name}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*types.AuthResponse, error) {
	var out types.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", types.LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var out models.User
	return &out, c.do(ctx, http.MethodGet, "/api/v1/profile", nil, &out)
}

func (c *Client) UpdateProfile(ctx context.Context, req types.UpdateProfileRequest) (*models.User, error) {
	var out models.User
	return &out, c.do(ctx, http.MethodPut, "/api/v1/profile", req, &out)
}

func searchPath(kind, query string, number int) string {
	q := url.Values{"q": {query}}
	if number > 0 {
		q.Set("number", strconv.Itoa(number))
	}
	return "/api/v1/search/" + kind + "?" + q.Encode()
}

func (c *Client) SearchRecipes(ctx context.Context, query string, number int) ([]types.RecipeHit, error) {
	var out []types.RecipeHit
	return out, c.do(ctx, http.MethodGet, searchPath("recipes", query, number), nil, &out)
}

func (c *Client) SearchIngredients(ctx context.Context, query string, number int) ([]types.IngredientHit, error) {
	var out []types.IngredientHit
	return out, c.do(ctx, http.MethodGet, searchPath("ingredients", query, number), nil, &out)
}

func (c *Client) Pantry(ctx context.Context) ([]models.Ingredient, error) {
	var out []models.Ingredient
	return out, c.do(ctx, http.MethodGet, "/api/v1/ingredients", nil, &out)
}

func (c *Client) AddIngredient(ctx context.Context, req types.AddIngredientRequest) (*models.Ingredient, error) {
	var out models.Ingredient
	return &out, c.do(ctx, http.MethodPost, "/api/v1/ingredients", req, &out)
}

func (c *Client) UpdateQuantity(ctx context.Context, id int64, quantity float64) (*models.Ingredient, error) {
	var out models.Ingredient
	path := "/api/v1/ingredients/" + strconv.FormatInt(id, 10)
	return &out, c.do(ctx, http.MethodPatch, path, types.UpdateQuantityRequest{Quantity: &quantity}, &out)
}

func (c *Client) RemoveIngredient(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/ingredients/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *Client) Recipe(ctx context.Context, id int64) (*models.Recipe, error) {
	var out models.Recipe
	return &out, c.do(ctx, http.MethodGet, "/api/v1/recipes/"+strconv.FormatInt(id, 10), nil, &out)
}

func (c *Client) Bookmarks(ctx context.Context) ([]models.Recipe, error) {
	var out []models.Recipe
	return out, c.do(ctx, http.MethodGet, "/api/v1/recipes?bookmarked=true", nil, &out)
}

func (c *Client) ToggleBookmark(ctx context.Context, id int64) (*models.Recipe, error) {
	var out models.Recipe
	path := "/api/v1/recipes/" + strconv.FormatInt(id, 10) + "/bookmark"
	return &out, c.do(ctx, http.MethodPost, path, nil, &out)
}

// Eat records one eating event and returns the updated day.
func (c *Client) Eat(ctx context.Context, id int64) (*models.DailyEats, error) {
	var out models.DailyEats
	path := "/api/v1/recipes/" + strconv.FormatInt(id, 10) + "/eat"
	return &out, c.do(ctx, http.MethodPost, path, nil, &out)
}

func (c *Client) Today(ctx context.Context) (*models.DailyEats, error) {
	var out models.DailyEats
	return &out, c.do(ctx, http.MethodGet, "/api/v1/tracker/today", nil, &out)
}

func (c *Client) History(ctx context.Context, from, to string) ([]models.DailyEats, error) {
	q := url.Values{}
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}
	path := "/api/v1/tracker"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out []models.DailyEats
	return out, c.do(ctx, http.MethodGet, path, nil, &out)
}
