package publisher

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// This test requires a running Redis instance and is skipped when none is
// available.
func TestRedisPublisher(t *testing.T) {
	ctx := context.Background()

	probe := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	if err := probe.Ping(ctx).Err(); err != nil {
		t.Skip("redis is not available, skipping test")
	}
	defer probe.Close()

	const stream = "huispedia:test"
	probe.Del(ctx, stream)
	defer probe.Del(ctx, stream)

	pub := NewRedisPublisher("localhost:6379", 0, stream, 100)
	defer pub.Close()

	record := map[string]string{"url": "https://huispedia.nl/amsterdam/1012ab/damstraat/1"}
	payload, err := json.Marshal(record)
	assert.NoError(t, err)

	assert.NoError(t, pub.Publish(ctx, payload))

	entries, err := probe.XRange(ctx, stream, "-", "+").Result()
	assert.NoError(t, err)
	assert.Len(t, entries, 1)

	encoded, ok := entries[0].Values["property"].(string)
	assert.True(t, ok)

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	assert.NoError(t, err)

	var got map[string]string
	assert.NoError(t, json.Unmarshal(decoded, &got))
	assert.Equal(t, record["url"], got["url"])
}
