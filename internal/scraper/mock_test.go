package scraper

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// mockFetcher is an in-memory fetcher.Fetcher serving canned pages.
type mockFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	calls []string
}

func newMockFetcher() *mockFetcher {
	return &mockFetcher{pages: make(map[string]string)}
}

func (m *mockFetcher) Fetch(_ context.Context, url, _ string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, url)
	m.mu.Unlock()

	page, ok := m.pages[url]
	if !ok {
		return "", fmt.Errorf("no page for %s", url)
	}
	return page, nil
}

func (m *mockFetcher) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// listingPage builds a results page with count cards and an optional
// pagination nav line.
func listingPage(count int, window string) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 1; i <= count; i++ {
		fmt.Fprintf(&b, `
			<article>
				<a href="/amsterdam/1012ab/teststraat/%d">Bekijk</a>
				<h2>Teststraat %d</h2>
				<div>1012 AB Amsterdam</div>
				<div>€ 310.000 k.k.</div>
				<div>112 m²</div>
				<div>4 kamers</div>
			</article>
		`, i, i)
	}
	if window != "" {
		fmt.Fprintf(&b, "<nav>%s</nav>", window)
	}
	b.WriteString("</body></html>")
	return b.String()
}
