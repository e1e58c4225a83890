package cloud

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each document in a hash named "<collection>:<id>" with
// one JSON-encoded value per field.
type RedisStore struct {
	client redis.Cmdable
	prefix string
}

// NewRedisStore creates a RedisStore. prefix namespaces every key.
func NewRedisStore(client redis.Cmdable, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(collection, id string) string {
	return fmt.Sprintf("%s%s:%s", s.prefix, collection, id)
}

func (s *RedisStore) Merge(ctx context.Context, collection, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	encoded, err := encodeFields(fields)
	if err != nil {
		return err
	}

	values := make(map[string]interface{}, len(encoded))
	for name, raw := range encoded {
		values[name] = string(raw)
	}
	if err := s.client.HSet(ctx, s.key(collection, id), values).Err(); err != nil {
		return fmt.Errorf("merge %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, collection, id string) (Document, error) {
	values, err := s.client.HGetAll(ctx, s.key(collection, id)).Result()
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	if len(values) == 0 {
		return nil, ErrNotFound
	}

	doc := make(Document, len(values))
	for name, v := range values {
		doc[name] = json.RawMessage(v)
	}
	return doc, nil
}
