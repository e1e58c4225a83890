package cloud

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/recipe-tracker/backend/config"
)

// KeyPrefix namespaces document hashes in a shared Redis.
const KeyPrefix = "docs:"

// New opens the backend selected by cfg.DocumentStore. The Redis backend
// needs rdb; it returns nil, nil when rdb is nil so callers run without
// cloud mirroring.
func New(ctx context.Context, cfg *config.Config, rdb redis.Cmdable) (DocumentStore, error) {
	switch cfg.DocumentStore {
	case "", config.DocumentStoreRedis:
		if rdb == nil {
			return nil, nil
		}
		return NewRedisStore(rdb, KeyPrefix), nil
	case config.DocumentStoreS3:
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("s3 document store: %w", err)
		}
		return NewS3Store(s3cfg.Client, s3cfg.BucketName), nil
	default:
		return nil, fmt.Errorf("unknown document store %q", cfg.DocumentStore)
	}
}
