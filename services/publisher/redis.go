package publisher

import (
	"context"
	"encoding/base64"

	"github.com/redis/go-redis/v9"

	"huispedia-scraper/pkg/errors"
)

// RedisPublisher implements Publisher on a Redis Stream. Payloads are
// base64 encoded and the stream is trimmed to a maximum length on write.
type RedisPublisher struct {
	client *redis.Client
	stream string
	maxLen int64
}

// NewRedisPublisher creates a publisher appending to the given stream.
func NewRedisPublisher(addr string, db int, stream string, maxLen int) *RedisPublisher {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	return &RedisPublisher{
		client: client,
		stream: stream,
		maxLen: int64(maxLen),
	}
}

// Publish appends one record payload to the stream
func (p *RedisPublisher) Publish(ctx context.Context, payload []byte) error {
	encoded := base64.StdEncoding.EncodeToString(payload)

	err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"property": encoded,
		},
	}).Err()
	if err != nil {
		return errors.NewPublish("redis", "XADD to "+p.stream+" failed", err)
	}
	return nil
}

// Close closes the Redis connection
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
