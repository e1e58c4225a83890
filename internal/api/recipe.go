package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-tracker/backend/internal/logging"
	"github.com/pageza/recipe-tracker/backend/internal/models"
	"github.com/pageza/recipe-tracker/backend/internal/service"
	"github.com/pageza/recipe-tracker/backend/internal/types"
)

// RecipeHandler serves stored recipes, bookmarks and eating events.
type RecipeHandler struct {
	recipes service.IRecipeService
	tracker service.IDailyEatsService
	log     logging.Logger
}

func NewRecipeHandler(recipes service.IRecipeService, tracker service.IDailyEatsService, log logging.Logger) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, tracker: tracker, log: log}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.List)
		recipes.GET("/:id", h.Get)
		recipes.HEAD("/:id", h.Exists)
		recipes.PUT("/:id", h.Save)
		recipes.DELETE("/:id", h.Delete)
		recipes.POST("/:id/refresh", h.Refresh)
		recipes.POST("/:id/bookmark", h.ToggleBookmark)
		recipes.PUT("/:id/bookmark", h.SetBookmark)
		recipes.DELETE("/:id/bookmark", h.RemoveBookmark)
		recipes.POST("/:id/eat", h.Eat)
	}
}

// List returns stored recipes, only bookmarked ones with ?bookmarked=true.
func (h *RecipeHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var (
		list []models.Recipe
		err  error
	)
	if c.Query("bookmarked") == "true" {
		list, err = h.recipes.Bookmarked(c.Request.Context(), userID)
	} else {
		list, err = h.recipes.List(c.Request.Context(), userID)
	}
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get returns the local copy, fetching it from the catalog when missing.
func (h *RecipeHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := paramID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	recipe, err := h.recipes.Resolve(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) Exists(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := paramID(c)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	exists, err := h.recipes.Exists(c.Request.Context(), userID, id)
	switch {
	case err != nil:
		h.log.Error(c.Request.Context(), "recipe lookup failed", "error", err)
		c.Status(http.StatusInternalServerError)
	case exists:
		c.Status(http.StatusOK)
	default:
		c.Status(http.StatusNotFound)
	}
}

// Save stores the posted recipe under the id of the path.
func (h *RecipeHandler) Save(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := paramID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var recipe models.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	recipe.ID = id

	saved, err := h.recipes.Upsert(c.Request.Context(), userID, &recipe)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := paramID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	if err := h.recipes.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Refresh reloads the recipe from the catalog.
func (h *RecipeHandler) Refresh(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := paramID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	recipe, err := h.recipes.FetchDetails(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) ToggleBookmark(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := paramID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	recipe, err := h.recipes.ToggleBookmark(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// SetBookmark bookmarks the recipe. An optional {"bookmarked": false} body
// clears the flag instead.
func (h *RecipeHandler) SetBookmark(c *gin.Context) {
	var req types.SetBookmarkRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}
	flag := req.Bookmarked == nil || *req.Bookmarked
	h.setBookmark(c, flag)
}

func (h *RecipeHandler) RemoveBookmark(c *gin.Context) {
	h.setBookmark(c, false)
}

func (h *RecipeHandler) setBookmark(c *gin.Context, flag bool) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := paramID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	recipe, err := h.recipes.SetBookmark(c.Request.Context(), userID, id, flag)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// Eat records one eating event of the recipe today and returns the
// updated day.
func (h *RecipeHandler) Eat(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := paramID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	recipe, err := h.recipes.Resolve(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	day, err := h.tracker.RecordConsumption(c.Request.Context(), userID, recipe)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, day)
}
