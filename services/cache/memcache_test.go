package cache

import (
	"testing"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/stretchr/testify/assert"
)

// This test requires a running memcached instance and is skipped when
// none is available.
func TestMemcachePageCache(t *testing.T) {
	mc := NewMemcache("localhost:11211")

	_, err := mc.client.Get("probe")
	if err != nil && err != memcache.ErrCacheMiss {
		t.Skip("memcached is not available, skipping test")
	}

	page := []byte("<html><body>rendered page</body></html>")

	err = mc.Set("page:test", page, 1*time.Second)
	assert.NoError(t, err)

	value, err := mc.Get("page:test")
	assert.NoError(t, err)
	assert.Equal(t, page, value)

	err = mc.Delete("page:test")
	assert.NoError(t, err)

	_, err = mc.Get("page:test")
	assert.Error(t, err)
}
