package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"gorm.io/datatypes"

	"github.com/pageza/recipe-tracker/backend/internal/logging"
	"github.com/pageza/recipe-tracker/backend/internal/models"
	"github.com/pageza/recipe-tracker/backend/internal/service"
)

// LiveFeed takes over an upgraded connection until the client leaves.
type LiveFeed interface {
	Serve(userID uuid.UUID, conn *websocket.Conn)
}

// TrackerHandler serves the daily nutrition totals.
type TrackerHandler struct {
	tracker  service.IDailyEatsService
	feed     LiveFeed
	upgrader websocket.Upgrader
	log      logging.Logger
}

func NewTrackerHandler(tracker service.IDailyEatsService, feed LiveFeed, log logging.Logger) *TrackerHandler {
	return &TrackerHandler{
		tracker: tracker,
		feed:    feed,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// the token is checked before the upgrade
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: log,
	}
}

func (h *TrackerHandler) RegisterRoutes(router *gin.RouterGroup) {
	tracker := router.Group("/tracker")
	{
		tracker.GET("", h.History)
		tracker.GET("/today", h.Today)
		tracker.GET("/:date", h.Day)
		tracker.DELETE("/:date", h.RemoveDay)
	}
}

// Today returns today's totals. A day with nothing eaten yet comes back
// empty rather than 404.
func (h *TrackerHandler) Today(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	date := h.tracker.Today()
	day, err := h.tracker.Day(c.Request.Context(), userID, date)
	if errors.Is(err, service.ErrNotFound) {
		day = &models.DailyEats{
			UserID:    userID,
			Date:      date,
			Nutrients: datatypes.JSONSlice[models.Nutrient]{},
			Recipes:   []models.DailyRecipe{},
		}
		err = nil
	}
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

func (h *TrackerHandler) Day(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	day, err := h.tracker.Day(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

// History lists days between ?from= and ?to=, newest first.
func (h *TrackerHandler) History(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	days, err := h.tracker.History(c.Request.Context(), userID, c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, days)
}

func (h *TrackerHandler) RemoveDay(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.tracker.RemoveDay(c.Request.Context(), userID, c.Param("date")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Subscribe upgrades to a websocket that receives a day snapshot after
// every recorded meal.
func (h *TrackerHandler) Subscribe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already answered the client
		h.log.Warn(c.Request.Context(), "websocket upgrade failed", "user_id", userID, "error", err)
		return
	}
	h.feed.Serve(userID, conn)
}
