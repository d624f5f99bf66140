package fetcher

import "context"

// Fetcher returns rendered HTML for a URL. waitFor is a CSS selector the
// rendering backend should wait for before returning the page; it may be
// empty. A failed fetch is terminal: nothing in this codebase retries.
type Fetcher interface {
	Fetch(ctx context.Context, url, waitFor string) (string, error)
}
