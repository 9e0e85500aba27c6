// Package redis holds the Redis-backed stores used by the HTTP layer.
package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResponseTTL is how long replayed responses are kept. Webhook
// redeliveries arrive within hours; a day covers provider retry backoff.
const ResponseTTL = 24 * time.Hour

const responseCachePrefix = "idempotency:"

// CachedResponse is a stored HTTP response for idempotent replay.
type CachedResponse struct {
	StatusCode int             `json:"status_code"`
	Body       json.RawMessage `json:"body"`
}

// ResponseCache stores responses to mutating requests keyed by their
// idempotency key, so redeliveries can be answered without reprocessing.
type ResponseCache struct {
	client *redis.Client
}

// NewResponseCache creates a new ResponseCache.
func NewResponseCache(client *redis.Client) *ResponseCache {
	return &ResponseCache{client: client}
}

// Get retrieves the cached response for a key. A cache miss returns
// (nil, nil).
func (s *ResponseCache) Get(ctx context.Context, key string) (*CachedResponse, error) {
	data, err := s.client.Get(ctx, responseCachePrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var response CachedResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// Set stores a response under a key.
func (s *ResponseCache) Set(ctx context.Context, key string, response *CachedResponse) error {
	data, err := json.Marshal(response)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, responseCachePrefix+key, data, ResponseTTL).Err()
}
