package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-tracker/backend/internal/foodapi"
	"github.com/pageza/recipe-tracker/backend/internal/logging"
	"github.com/pageza/recipe-tracker/backend/internal/middleware"
	"github.com/pageza/recipe-tracker/backend/internal/service"
)

const maxSearchResults = 100

type SearchHandler struct {
	search  service.ISearchService
	limiter *middleware.RateLimiter
	log     logging.Logger
}

func NewSearchHandler(search service.ISearchService, limiter *middleware.RateLimiter, log logging.Logger) *SearchHandler {
	return &SearchHandler{search: search, limiter: limiter, log: log}
}

func (h *SearchHandler) RegisterRoutes(router *gin.RouterGroup) {
	search := router.Group("/search")
	if h.limiter != nil {
		search.Use(h.limiter.Middleware())
	}
	{
		search.GET("/recipes", h.Recipes)
		search.GET("/ingredients", h.Ingredients)
	}
}

// number reads ?number=, defaulting and capping it.
func number(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("number"))
	if err != nil || n <= 0 {
		return foodapi.DefaultNumber
	}
	if n > maxSearchResults {
		return maxSearchResults
	}
	return n
}

func (h *SearchHandler) Recipes(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	hits, err := h.search.Recipes(c.Request.Context(), userID, c.Query("q"), number(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, hits)
}

func (h *SearchHandler) Ingredients(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	hits, err := h.search.Ingredients(c.Request.Context(), userID, c.Query("q"), number(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, hits)
}
