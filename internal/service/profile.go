package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/recipe-tracker/backend/internal/cloud"
	"github.com/pageza/recipe-tracker/backend/internal/logging"
	"github.com/pageza/recipe-tracker/backend/internal/models"
	"github.com/pageza/recipe-tracker/backend/internal/store"
	"github.com/pageza/recipe-tracker/backend/internal/types"
)

// ProfileService handles user profile operations
type ProfileService struct {
	store *store.Store
	cloud cloudMirror
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(s *store.Store, docs cloud.DocumentStore, log logging.Logger) *ProfileService {
	return &ProfileService{
		store: s,
		cloud: cloudMirror{docs: docs, log: log},
	}
}

// Get retrieves a user's profile
func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.store.Users().GetByID(ctx, userID)
}

// Update changes the provided fields and merges them into the cloud document
func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.User, error) {
	users := s.store.Users()
	user, err := users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	changed := map[string]any{}
	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
		changed[cloud.FieldName] = user.Name
	}
	if req.PhotoURL != nil {
		user.PhotoURL = strings.TrimSpace(*req.PhotoURL)
		changed[cloud.FieldPhotoURL] = user.PhotoURL
	}
	if req.DailyCalorieGoal != nil {
		if !validQuantity(*req.DailyCalorieGoal) {
			return nil, ErrInvalidQuantity
		}
		user.DailyCalorieGoal = *req.DailyCalorieGoal
		changed[cloud.FieldCalorieGoal] = user.DailyCalorieGoal
	}
	if len(changed) == 0 {
		return user, nil
	}

	if err := users.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	s.cloud.push(ctx, userID, changed)
	return users.GetByID(ctx, userID)
}

// PullFromCloud overwrites the local profile fields with the cloud document.
// Fields missing from the document keep their local value.
func (s *ProfileService) PullFromCloud(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	users := s.store.Users()
	user, err := users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	doc, err := s.cloud.fetch(ctx, userID)
	if errors.Is(err, cloud.ErrNotFound) {
		return nil, ErrNoCloudProfile
	}
	if err != nil {
		return nil, fmt.Errorf("fetch cloud profile: %w", err)
	}

	if _, err := doc.Decode(cloud.FieldName, &user.Name); err != nil {
		return nil, err
	}
	if _, err := doc.Decode(cloud.FieldPhotoURL, &user.PhotoURL); err != nil {
		return nil, err
	}
	if _, err := doc.Decode(cloud.FieldCalorieGoal, &user.DailyCalorieGoal); err != nil {
		return nil, err
	}

	if err := users.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return users.GetByID(ctx, userID)
}
