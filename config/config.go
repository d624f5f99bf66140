package config

import (
	"os"
	"strconv"
	"time"

	"huispedia-scraper/pkg/errors"
)

// Config represents the application configuration
type Config struct {
	// ScrapingAnt API configuration
	APIKey string
	APIURL string

	// Huispedia URLs
	BaseURL   string
	SearchURL string

	// Scrape behaviour
	MaxWorkers     int
	RequestTimeout time.Duration
	PageDelay      time.Duration

	// Page cache (empty MemcacheAddr disables caching)
	MemcacheAddr string
	PageCacheTTL time.Duration

	// Redis publishing (empty RedisAddr disables publishing)
	RedisAddr      string
	RedisDB        int
	RedisStream    string
	RedisStreamMax int

	// PostgreSQL output (required only for the postgres output format)
	PostgresDSN string

	// Environment
	Environment string
}

// Locations maps supported Dutch city keys to their URL slugs.
var Locations = map[string]string{
	"amsterdam":  "amsterdam",
	"rotterdam":  "rotterdam",
	"den-haag":   "den-haag",
	"utrecht":    "utrecht",
	"eindhoven":  "eindhoven",
	"groningen":  "groningen",
	"tilburg":    "tilburg",
	"almere":     "almere",
	"breda":      "breda",
	"nijmegen":   "nijmegen",
	"haarlem":    "haarlem",
	"arnhem":     "arnhem",
	"enschede":   "enschede",
	"amersfoort": "amersfoort",
	"zaanstad":   "zaanstad",
	"apeldoorn":  "apeldoorn",
	"hoofddorp":  "hoofddorp",
	"maastricht": "maastricht",
	"leiden":     "leiden",
	"dordrecht":  "dordrecht",
	"zoetermeer": "zoetermeer",
	"zwolle":     "zwolle",
	"deventer":   "deventer",
	"delft":      "delft",
	"alkmaar":    "alkmaar",
}

// PropertyTypes maps a property type key to its URL filter segment.
var PropertyTypes = map[string]string{
	"all":       "",
	"apartment": "appartement",
	"house":     "woonhuis",
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	maxWorkers, _ := strconv.Atoi(getEnv("MAX_WORKERS", "5"))
	timeout, _ := strconv.Atoi(getEnv("REQUEST_TIMEOUT_SECONDS", "60"))
	pageDelay, _ := strconv.Atoi(getEnv("PAGE_DELAY_MS", "500"))
	cacheTTL, _ := strconv.Atoi(getEnv("PAGE_CACHE_TTL_SECONDS", "900"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	streamMax, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAXLEN", "10000"))

	baseURL := getEnv("HUISPEDIA_BASE_URL", "https://huispedia.nl")

	return &Config{
		APIKey:         getEnv("SCRAPINGANT_API_KEY", ""),
		APIURL:         getEnv("SCRAPINGANT_API_URL", "https://api.scrapingant.com/v2/general"),
		BaseURL:        baseURL,
		SearchURL:      baseURL + "/koopwoningen",
		MaxWorkers:     maxWorkers,
		RequestTimeout: time.Duration(timeout) * time.Second,
		PageDelay:      time.Duration(pageDelay) * time.Millisecond,
		MemcacheAddr:   getEnv("MEMCACHE_ADDR", ""),
		PageCacheTTL:   time.Duration(cacheTTL) * time.Second,
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisDB:        redisDB,
		RedisStream:    getEnv("REDIS_STREAM", "huispedia:properties"),
		RedisStreamMax: streamMax,
		PostgresDSN:    getEnv("POSTGRES_DSN", ""),
		Environment:    getEnv("HUISPEDIA_ENVIRONMENT", "development"),
	}
}

// Validate checks that the configuration is usable. A missing API key is a
// hard failure: nothing can be fetched without it.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.NewConfiguration("SCRAPINGANT_API_KEY is required", nil)
	}
	if c.MaxWorkers < 1 {
		return errors.NewConfiguration("MAX_WORKERS must be at least 1", nil)
	}
	return nil
}

// LocationSlug resolves a location key to its URL slug. Unknown keys are
// returned as-is; the caller decides whether to warn.
func LocationSlug(key string) (string, bool) {
	slug, ok := Locations[key]
	if !ok {
		return key, false
	}
	return slug, true
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
