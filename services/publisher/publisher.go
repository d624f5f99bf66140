package publisher

import "context"

// Publisher delivers scraped property payloads to downstream consumers.
type Publisher interface {
	// Publish appends one record payload to the stream
	Publish(ctx context.Context, payload []byte) error

	// Close releases the underlying connection
	Close() error
}
