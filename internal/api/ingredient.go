package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-tracker/backend/internal/logging"
	"github.com/pageza/recipe-tracker/backend/internal/service"
	"github.com/pageza/recipe-tracker/backend/internal/types"
)

// IngredientHandler serves the pantry.
type IngredientHandler struct {
	ingredients service.IIngredientService
	log         logging.Logger
}

func NewIngredientHandler(ingredients service.IIngredientService, log logging.Logger) *IngredientHandler {
	return &IngredientHandler{ingredients: ingredients, log: log}
}

func (h *IngredientHandler) RegisterRoutes(router *gin.RouterGroup) {
	pantry := router.Group("/ingredients")
	{
		pantry.GET("", h.List)
		pantry.POST("", h.Add)
		pantry.DELETE("", h.Clear)
		pantry.POST("/sync", h.Sync)
		pantry.GET("/:id", h.Get)
		pantry.HEAD("/:id", h.Exists)
		pantry.PATCH("/:id", h.UpdateQuantity)
		pantry.DELETE("/:id", h.Delete)
	}
}

func (h *IngredientHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	list, err := h.ingredients.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *IngredientHandler) Add(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.AddIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ingredient, err := h.ingredients.AddFromSearch(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, ingredient)
}

func (h *IngredientHandler) Clear(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.ingredients.Clear(c.Request.Context(), userID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Sync replaces the pantry with the cloud copy.
func (h *IngredientHandler) Sync(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	list, err := h.ingredients.SyncFromCloud(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *IngredientHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := paramID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	ingredient, err := h.ingredients.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

func (h *IngredientHandler) Exists(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := paramID(c)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	exists, err := h.ingredients.Exists(c.Request.Context(), userID, id)
	switch {
	case err != nil:
		h.log.Error(c.Request.Context(), "pantry lookup failed", "error", err)
		c.Status(http.StatusInternalServerError)
	case exists:
		c.Status(http.StatusOK)
	default:
		c.Status(http.StatusNotFound)
	}
}

func (h *IngredientHandler) UpdateQuantity(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := paramID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req types.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ingredient, err := h.ingredients.UpdateQuantity(c.Request.Context(), userID, id, *req.Quantity)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

func (h *IngredientHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := paramID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	if err := h.ingredients.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
