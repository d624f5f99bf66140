package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"huispedia-scraper/config"
	"huispedia-scraper/internal/scraper"
	"huispedia-scraper/logger"
	"huispedia-scraper/models"
	"huispedia-scraper/pkg/errors"
	"huispedia-scraper/services/cache"
	"huispedia-scraper/services/fetcher"
	"huispedia-scraper/services/publisher"
	"huispedia-scraper/storage"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	location := flag.String("location", "amsterdam", "city to search")
	propertyType := flag.String("type", "all", "property type filter (all, apartment, house)")
	maxPages := flag.Int("max-pages", 0, "maximum number of result pages (0 = no limit)")
	limit := flag.Int("limit", 0, "maximum number of records (0 = no limit)")
	noDetails := flag.Bool("no-details", false, "skip detail-page enrichment")
	output := flag.String("output", "output/properties.csv", "output file path")
	format := flag.String("format", "csv", "output format (csv, json or postgres)")
	flag.Parse()

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("location", *location).
		Str("property_type", *propertyType).
		Msg("Starting scrape run")

	// Set up context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Optional page cache in front of the rendering API
	var cacheSvc cache.CacheService
	if cfg.MemcacheAddr != "" {
		cacheSvc = cache.NewMemcache(cfg.MemcacheAddr)
		log.Info().Str("addr", cfg.MemcacheAddr).Msg("Page cache enabled")
	}

	ant := fetcher.NewScrapingAnt(cfg.APIURL, cfg.APIKey, cfg.RequestTimeout, cacheSvc, cfg.PageCacheTTL)
	s := scraper.New(cfg, ant)

	props, err := s.Scrape(ctx, scraper.Options{
		Location:     *location,
		PropertyType: *propertyType,
		MaxPages:     *maxPages,
		Limit:        *limit,
		FetchDetails: !*noDetails,
	})
	if err != nil {
		log.Error().Err(err).Msg("Scrape ended early")
	}
	if len(props) == 0 {
		log.Fatal().Msg("No properties were scraped")
	}

	log.Info().Int("count", len(props)).Msg("Scrape finished")

	writer, err := newWriter(*format, *output, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("path", *output).Msg("Failed to create output writer")
	}
	if err := writer.Write(props); err != nil {
		log.Error().Err(err).Msg("Output write failed")
	}
	if err := writer.Close(); err != nil {
		log.Error().Err(err).Msg("Output close failed")
	} else {
		log.Info().Str("path", *output).Msg("Records written")
	}

	if cfg.RedisAddr != "" {
		publishAll(ctx, cfg, props)
	}
}

// newWriter picks the output backend for the requested format.
func newWriter(format, path string, cfg *config.Config) (storage.PropertyWriter, error) {
	switch format {
	case "json":
		return storage.NewJSONWriter(path)
	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, errors.NewConfiguration("POSTGRES_DSN is required for the postgres output format", nil)
		}
		return storage.NewPostgresWriter(cfg.PostgresDSN)
	default:
		return storage.NewCSVWriter(path)
	}
}

// publishAll appends every record to the configured Redis stream. A
// failed publish is logged and does not stop the rest.
func publishAll(ctx context.Context, cfg *config.Config, props []*models.Property) {
	log := logger.ForPublisher()

	pub := publisher.NewRedisPublisher(cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream, cfg.RedisStreamMax)
	defer pub.Close()

	published := 0
	for _, prop := range props {
		payload, err := json.Marshal(prop)
		if err != nil {
			log.Error().Err(err).Str("url", prop.URL).Msg("Record marshal failed")
			continue
		}
		if err := pub.Publish(ctx, payload); err != nil {
			log.Error().Err(err).Str("url", prop.URL).Msg("Publish failed")
			continue
		}
		published++
	}

	log.Info().
		Int("published", published).
		Str("stream", cfg.RedisStream).
		Msg("Records published")
}
