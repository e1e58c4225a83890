// Package foodapi talks to the third-party recipe and ingredient catalog.
package foodapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultNumber is the result count used when a caller asks for none.
const DefaultNumber = 10

// APIError is a non-2xx answer from the catalog.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("food api error %d: %s", e.Status, e.Body)
}

// Keys supplies API keys to the client.
type Keys interface {
	Key(ctx context.Context) (string, error)
	Invalidate(ctx context.Context) bool
}

// Client calls the catalog endpoints.
type Client struct {
	baseURL string
	keys    Keys
	client  *http.Client
}

// New creates a Client. A zero timeout means 10 seconds.
func New(baseURL string, keys Keys, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		keys:    keys,
		client:  &http.Client{Timeout: timeout},
	}
}

// SearchRecipes runs a free-text recipe search.
func (c *Client) SearchRecipes(ctx context.Context, query string, number int) ([]RecipeResult, error) {
	var out recipeSearchResponse
	if err := c.get(ctx, "/recipes/complexSearch", searchParams(query, number), &out); err != nil {
		return nil, err
	}
	if out.Results == nil {
		out.Results = []RecipeResult{}
	}
	return out.Results, nil
}

// SearchIngredients runs a free-text ingredient search.
func (c *Client) SearchIngredients(ctx context.Context, query string, number int) ([]IngredientResult, error) {
	var out ingredientSearchResponse
	if err := c.get(ctx, "/food/ingredients/search", searchParams(query, number), &out); err != nil {
		return nil, err
	}
	if out.Results == nil {
		out.Results = []IngredientResult{}
	}
	return out.Results, nil
}

// RecipeInformation loads a recipe's details including its nutrients.
func (c *Client) RecipeInformation(ctx context.Context, id int64) (*RecipeInformation, error) {
	params := url.Values{}
	params.Set("includeNutrition", "true")

	var out RecipeInformation
	if err := c.get(ctx, fmt.Sprintf("/recipes/%d/information", id), params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func searchParams(query string, number int) url.Values {
	if number <= 0 {
		number = DefaultNumber
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("number", strconv.Itoa(number))
	return params
}

// get performs the request, refreshing the key once when the catalog
// rejects it.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	err := c.do(ctx, path, params, out)

	var apiErr *APIError
	if errors.As(err, &apiErr) && (apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden) {
		if c.keys.Invalidate(ctx) {
			err = c.do(ctx, path, params, out)
		}
	}
	return err
}

func (c *Client) do(ctx context.Context, path string, params url.Values, out any) error {
	key, err := c.keys.Key(ctx)
	if err != nil {
		return err
	}

	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("apiKey", key)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call food api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read food api response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse food api JSON: %w", err)
	}
	return nil
}
