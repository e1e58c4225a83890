package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/recipe-tracker/backend/internal/logging"
	"github.com/pageza/recipe-tracker/backend/internal/models"
	"github.com/pageza/recipe-tracker/backend/internal/nutrition"
	"github.com/pageza/recipe-tracker/backend/internal/store"
)

// MessageDayUpdated is the realtime message type carrying a day snapshot.
const MessageDayUpdated = "day_updated"

// DailyEatsService records eating events and reads back per-day totals.
type DailyEatsService struct {
	store *store.Store
	hub   Broadcaster
	loc   *time.Location
	now   func() time.Time
	log   logging.Logger
}

// NewDailyEatsService creates the tracker. Days are cut in loc; a nil loc
// means UTC. hub may be nil.
func NewDailyEatsService(s *store.Store, hub Broadcaster, loc *time.Location, log logging.Logger) *DailyEatsService {
	if loc == nil {
		loc = time.UTC
	}
	return &DailyEatsService{store: s, hub: hub, loc: loc, now: time.Now, log: log}
}

// SetClock replaces the time source.
func (s *DailyEatsService) SetClock(now func() time.Time) {
	s.now = now
}

// Today returns the date key for the current moment.
func (s *DailyEatsService) Today() string {
	return s.now().In(s.loc).Format(models.DateLayout)
}

// RecordConsumption records one eating event of recipe today. Every call
// adds the recipe's nutrients to the day's total; calling twice counts twice.
func (s *DailyEatsService) RecordConsumption(ctx context.Context, userID uuid.UUID, recipe *models.Recipe) (*models.DailyEats, error) {
	date := s.Today()
	recipe.UserID = userID
	fillEmptyLists(recipe)

	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		if err := tx.Recipes().Upsert(ctx, recipe); err != nil {
			return err
		}

		// Concurrent events for the same day serialise on the day row.
		days := tx.DailyEats()
		if err := days.CreateIfMissing(ctx, &models.DailyEats{UserID: userID, Date: date}); err != nil {
			return err
		}
		day, err := days.GetForUpdate(ctx, userID, date)
		if err != nil {
			return fmt.Errorf("load day %s: %w", date, err)
		}

		_, err = days.GetLink(ctx, userID, date, recipe.ID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			err = days.CreateLink(ctx, &models.DailyRecipe{UserID: userID, Date: date, RecipeID: recipe.ID, Amount: 1})
		case err == nil:
			err = days.IncrementLink(ctx, userID, date, recipe.ID)
		}
		if err != nil {
			return err
		}

		total := nutrition.MergeNutrients(day.Nutrients, recipe.Nutrients)
		return days.UpdateNutrients(ctx, userID, date, total)
	})
	if err != nil {
		return nil, fmt.Errorf("record consumption of recipe %d: %w", recipe.ID, err)
	}

	day, err := s.store.DailyEats().Get(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	if s.hub != nil {
		s.hub.Broadcast(ctx, userID, MessageDayUpdated, day)
	}
	s.log.Info(ctx, "consumption recorded", "user_id", userID, "recipe_id", recipe.ID, "date", date)
	return day, nil
}

// Day returns the aggregate for date with its linked recipes.
func (s *DailyEatsService) Day(ctx context.Context, userID uuid.UUID, date string) (*models.DailyEats, error) {
	if err := validDate(date); err != nil {
		return nil, err
	}
	return s.store.DailyEats().Get(ctx, userID, date)
}

// History returns the aggregates between from and to inclusive, newest
// first. Either bound may be empty.
func (s *DailyEatsService) History(ctx context.Context, userID uuid.UUID, from, to string) ([]models.DailyEats, error) {
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if err := validDate(d); err != nil {
			return nil, err
		}
	}
	return s.store.DailyEats().List(ctx, userID, from, to)
}

// RemoveDay deletes the aggregate for date and its linkage rows.
func (s *DailyEatsService) RemoveDay(ctx context.Context, userID uuid.UUID, date string) error {
	if err := validDate(date); err != nil {
		return err
	}
	return s.store.Transaction(ctx, func(tx *store.Store) error {
		return tx.DailyEats().Delete(ctx, userID, date)
	})
}

func validDate(date string) error {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return ErrInvalidDate
	}
	return nil
}
