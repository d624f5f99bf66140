package fetcher

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"

	"huispedia-scraper/logger"
	"huispedia-scraper/pkg/errors"
	"huispedia-scraper/services/cache"
)

// ScrapingAnt fetches pages through the ScrapingAnt rendering API with
// browser rendering enabled. Responses are normalized to UTF-8 and,
// when a cache service is configured, reused for identical URLs within
// the cache TTL.
type ScrapingAnt struct {
	apiURL   string
	apiKey   string
	client   *http.Client
	cache    cache.CacheService
	cacheTTL time.Duration
	log      *logger.Logger
}

// NewScrapingAnt creates a client for the ScrapingAnt API. cacheSvc may
// be nil to disable page caching.
func NewScrapingAnt(apiURL, apiKey string, timeout time.Duration, cacheSvc cache.CacheService, cacheTTL time.Duration) *ScrapingAnt {
	return &ScrapingAnt{
		apiURL:   apiURL,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
		cache:    cacheSvc,
		cacheTTL: cacheTTL,
		log:      logger.ForFetcher(),
	}
}

// Fetch returns the rendered HTML for target. The render-wait hint is
// passed through to the API.
func (s *ScrapingAnt) Fetch(ctx context.Context, target, waitFor string) (string, error) {
	cacheKey := pageKey(target)
	if s.cache != nil {
		if body, err := s.cache.Get(cacheKey); err == nil {
			s.log.Debug().Str("url", target).Msg("Page served from cache")
			return string(body), nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL, nil)
	if err != nil {
		return "", errors.NewNetwork("scrapingant", "failed to create request", err)
	}

	q := req.URL.Query()
	q.Set("url", target)
	q.Set("x-api-key", s.apiKey)
	q.Set("browser", "true")
	if waitFor != "" {
		q.Set("wait_for_selector", waitFor)
	}
	req.URL.RawQuery = q.Encode()

	s.log.Debug().Str("url", target).Msg("Fetching")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", errors.NewNetwork("scrapingant", "request failed for "+target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.NewNetwork("scrapingant", "unexpected status "+resp.Status+" for "+target, nil)
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.NewNetwork("scrapingant", "failed to read response body", err)
	}

	body, err := toUTF8(bodyBytes, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", errors.NewParsing("scrapingant", "charset conversion failed", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(cacheKey, body, s.cacheTTL); err != nil {
			s.log.Warn().Err(err).Str("url", target).Msg("Page cache write failed")
		}
	}

	return string(body), nil
}

// toUTF8 converts a response body to UTF-8 based on the Content-Type
// header and the body content.
func toUTF8(bodyBytes []byte, contentType string) ([]byte, error) {
	encoding, name, _ := charset.DetermineEncoding(bodyBytes, contentType)
	if name == "utf-8" || name == "UTF-8" {
		return bodyBytes, nil
	}

	utf8Reader := encoding.NewDecoder().Reader(bytes.NewReader(bodyBytes))
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, utf8Reader); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// pageKey hashes a URL into a memcache-safe key (max 250 bytes, no
// spaces).
func pageKey(url string) string {
	sum := sha1.Sum([]byte(url))
	return "page:" + hex.EncodeToString(sum[:])
}
