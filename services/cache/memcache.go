package cache

import (
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

// Memcache implements CacheService on a memcached instance.
type Memcache struct {
	client *memcache.Client
}

// NewMemcache creates a page cache backed by the memcached server at
// serverAddr.
func NewMemcache(serverAddr string) *Memcache {
	return &Memcache{
		client: memcache.New(serverAddr),
	}
}

// Get retrieves a cached page body. Returns memcache.ErrCacheMiss when
// the key is absent or expired.
func (m *Memcache) Get(key string) ([]byte, error) {
	item, err := m.client.Get(key)
	if err != nil {
		return nil, err
	}
	return item.Value, nil
}

// Set stores a page body with the given TTL.
func (m *Memcache) Set(key string, value []byte, expiration time.Duration) error {
	return m.client.Set(&memcache.Item{
		Key:        key,
		Value:      value,
		Expiration: int32(expiration.Seconds()),
	})
}

// Delete evicts a cached page.
func (m *Memcache) Delete(key string) error {
	return m.client.Delete(key)
}
