package foodapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrKeyUnavailable is returned when no API key can be obtained.
var ErrKeyUnavailable = errors.New("food api key unavailable")

// KeyCache remembers the last key handed out by the key service.
type KeyCache interface {
	Get(ctx context.Context) (string, bool, error)
	Set(ctx context.Context, key string) error
	Invalidate(ctx context.Context) error
}

// MemoryKeyCache is a process-local KeyCache.
type MemoryKeyCache struct {
	mu      sync.Mutex
	key     string
	expires time.Time
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryKeyCache(ttl time.Duration) *MemoryKeyCache {
	return &MemoryKeyCache{ttl: ttl, now: time.Now}
}

func (c *MemoryKeyCache) Get(context.Context) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.key == "" || !c.now().Before(c.expires) {
		return "", false, nil
	}
	return c.key, true, nil
}

func (c *MemoryKeyCache) Set(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.key = key
	c.expires = c.now().Add(c.ttl)
	return nil
}

func (c *MemoryKeyCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.key = ""
	return nil
}

// RedisKeyCache shares the key between API replicas.
type RedisKeyCache struct {
	client redis.Cmdable
	name   string
	ttl    time.Duration
}

func NewRedisKeyCache(client redis.Cmdable, ttl time.Duration) *RedisKeyCache {
	return &RedisKeyCache{client: client, name: "foodapi:key", ttl: ttl}
}

func (c *RedisKeyCache) Get(ctx context.Context) (string, bool, error) {
	key, err := c.client.Get(ctx, c.name).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return key, true, nil
}

func (c *RedisKeyCache) Set(ctx context.Context, key string) error {
	return c.client.Set(ctx, c.name, key, c.ttl).Err()
}

func (c *RedisKeyCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, c.name).Err()
}

// KeyProvider hands out the API key, asking the key service only when the
// cache is empty.
type KeyProvider struct {
	url       string
	staticKey string
	client    *http.Client
	cache     KeyCache

	mu sync.Mutex
}

// NewKeyProvider creates a provider backed by the key service at url.
// A non-empty staticKey short-circuits the key service entirely.
func NewKeyProvider(url, staticKey string, client *http.Client, cache KeyCache) *KeyProvider {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &KeyProvider{url: url, staticKey: staticKey, client: client, cache: cache}
}

type keyResponse struct {
	APIKey string `json:"apiKey"`
}

// Key returns a usable API key.
func (p *KeyProvider) Key(ctx context.Context) (string, error) {
	if p.staticKey != "" {
		return p.staticKey, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if key, ok, err := p.cache.Get(ctx); err == nil && ok {
		return key, nil
	}
	if p.url == "" {
		return "", ErrKeyUnavailable
	}

	key, err := p.fetch(ctx)
	if err != nil {
		return "", err
	}
	// a cache write failure only costs another fetch next time
	_ = p.cache.Set(ctx, key)
	return key, nil
}

// Invalidate forgets the cached key so the next Key call fetches a new one.
// It reports whether a refetch can produce a different key.
func (p *KeyProvider) Invalidate(ctx context.Context) bool {
	if p.staticKey != "" {
		return false
	}
	_ = p.cache.Invalidate(ctx)
	return true
}

func (p *KeyProvider) fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create key request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrKeyUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrKeyUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: key service returned %d", ErrKeyUnavailable, resp.StatusCode)
	}

	var kr keyResponse
	if err := json.Unmarshal(body, &kr); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrKeyUnavailable, err)
	}
	if kr.APIKey == "" {
		return "", fmt.Errorf("%w: empty key", ErrKeyUnavailable)
	}
	return kr.APIKey, nil
}
