package cache

import (
	"time"
)

// CacheService stores rendered pages between fetches so that identical
// URLs within the TTL do not spend another rendering-API call.
type CacheService interface {
	// Get retrieves a value from the cache
	Get(key string) ([]byte, error)

	// Set stores a value in the cache with an expiration time
	Set(key string, value []byte, expiration time.Duration) error

	// Delete removes a value from the cache
	Delete(key string) error
}
