package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/recipe-tracker/backend/internal/cloud"
	"github.com/pageza/recipe-tracker/backend/internal/logging"
)

// cloudMirror merges fields into the user's cloud document. Push failures
// are logged and swallowed; the local write has already succeeded.
type cloudMirror struct {
	docs cloud.DocumentStore
	log  logging.Logger
}

func (m cloudMirror) push(ctx context.Context, userID uuid.UUID, fields map[string]any) {
	if m.docs == nil {
		return
	}
	if err := m.docs.Merge(ctx, cloud.UsersCollection, userID.String(), fields); err != nil {
		m.log.Warn(ctx, "cloud document push failed",
			"user_id", userID, "fields", fieldNames(fields), "error", err)
	}
}

func (m cloudMirror) fetch(ctx context.Context, userID uuid.UUID) (cloud.Document, error) {
	if m.docs == nil {
		return nil, cloud.ErrNotFound
	}
	return m.docs.Get(ctx, cloud.UsersCollection, userID.String())
}

func fieldNames(fields map[string]any) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	return names
}
