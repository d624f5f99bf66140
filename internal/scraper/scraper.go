package scraper

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"huispedia-scraper/config"
	"huispedia-scraper/logger"
	"huispedia-scraper/models"
	"huispedia-scraper/services/fetcher"
)

// lastPageSize is the assumed card count of a full results page; a page
// with fewer cards is treated as the last one.
// TODO: re-measure if Huispedia changes its page size; this constant
// under- or over-terminates pagination when it drifts.
const lastPageSize = 10

// Scraper paginates through Huispedia search results and enriches
// listings from their detail pages. A Scraper carries no state between
// runs.
type Scraper struct {
	cfg     *config.Config
	fetcher fetcher.Fetcher
	log     *logger.Logger
}

// New creates a Scraper using the given transport.
func New(cfg *config.Config, f fetcher.Fetcher) *Scraper {
	return &Scraper{
		cfg:     cfg,
		fetcher: f,
		log:     logger.ForScraper(),
	}
}

// Scrape collects listings for the given options. Page fetching is
// sequential; detail enrichment fans out over a bounded worker pool. A
// failed page fetch ends pagination gracefully, a failed detail fetch
// drops only that record.
func (s *Scraper) Scrape(ctx context.Context, opts Options) ([]*models.Property, error) {
	locationKey := strings.ToLower(strings.ReplaceAll(opts.Location, " ", "-"))
	slug, known := config.LocationSlug(locationKey)
	if !known {
		s.log.Warn().Str("location", opts.Location).Msg("Location not in predefined list, using as-is")
	}
	propFilter := config.PropertyTypes[opts.PropertyType]

	s.log.Info().
		Str("location", slug).
		Str("property_type", opts.PropertyType).
		Msg("Starting scrape")

	summaries, err := s.collectSummaries(ctx, slug, propFilter, opts)
	if err != nil {
		return nil, err
	}

	if opts.Limit > 0 && len(summaries) > opts.Limit {
		summaries = summaries[:opts.Limit]
	}

	s.log.Info().Int("count", len(summaries)).Msg("Listing collection finished")

	if !opts.FetchDetails || len(summaries) == 0 {
		props := make([]*models.Property, 0, len(summaries))
		for _, sum := range summaries {
			props = append(props, newPropertyFromSummary(sum))
		}
		return props, nil
	}

	return s.enrichAll(ctx, summaries), nil
}

// collectSummaries drives the page loop and accumulates card summaries
// until a stop condition fires.
func (s *Scraper) collectSummaries(ctx context.Context, slug, propFilter string, opts Options) ([]ListingSummary, error) {
	var summaries []ListingSummary

	for page := 1; ; page++ {
		if opts.MaxPages > 0 && page > opts.MaxPages {
			s.log.Info().Int("max_pages", opts.MaxPages).Msg("Reached max pages limit")
			break
		}
		if opts.Limit > 0 && len(summaries) >= opts.Limit {
			s.log.Info().Int("limit", opts.Limit).Msg("Reached record limit")
			break
		}

		url := s.listURL(slug, page, propFilter)
		s.log.Info().Int("page", page).Str("url", url).Msg("Fetching results page")

		pageHTML, err := s.fetcher.Fetch(ctx, url, "article")
		if err != nil {
			s.log.Warn().Err(err).Int("page", page).Msg("Page fetch failed, stopping pagination")
			break
		}

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
		if err != nil {
			s.log.Warn().Err(err).Int("page", page).Msg("Page unparsable, stopping pagination")
			break
		}

		cards := parseCards(doc, s.cfg.BaseURL)
		if len(cards) == 0 {
			s.log.Info().Int("page", page).Msg("No listings on page, stopping")
			break
		}
		summaries = append(summaries, cards...)

		window := ParseWindow(doc)
		if window.Total > 0 {
			s.log.Info().
				Int("start", window.Start).
				Int("end", window.End).
				Int("total", window.Total).
				Msg("Pagination window")
		}

		if window.End >= window.Total || len(cards) < lastPageSize {
			s.log.Info().Int("page", page).Msg("Reached last page")
			break
		}

		select {
		case <-ctx.Done():
			return summaries, ctx.Err()
		case <-time.After(s.cfg.PageDelay):
		}
	}

	return summaries, nil
}

// enrichAll fetches every listing's detail page through a bounded worker
// pool. Workers mutate only their own record; results are collected after
// all tasks settle and carry no particular order.
func (s *Scraper) enrichAll(ctx context.Context, summaries []ListingSummary) []*models.Property {
	s.log.Info().
		Int("count", len(summaries)).
		Int("workers", s.cfg.MaxWorkers).
		Msg("Fetching detail pages")

	results := make(chan *models.Property, len(summaries))
	sem := make(chan struct{}, s.cfg.MaxWorkers)
	var wg sync.WaitGroup

	for _, sum := range summaries {
		wg.Add(1)
		go func(sum ListingSummary) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			prop, err := s.fetchDetails(ctx, sum)
			if err != nil {
				s.log.Warn().Err(err).Str("url", sum.URL).Msg("Dropping listing after detail fetch failure")
				return
			}
			results <- prop
		}(sum)
	}

	wg.Wait()
	close(results)

	props := make([]*models.Property, 0, len(summaries))
	for prop := range results {
		props = append(props, prop)
	}
	return props
}

// fetchDetails retrieves one detail page and enriches the summary-seeded
// record with it.
func (s *Scraper) fetchDetails(ctx context.Context, sum ListingSummary) (*models.Property, error) {
	pageHTML, err := s.fetcher.Fetch(ctx, sum.URL, "main")
	if err != nil {
		return nil, err
	}

	prop := newPropertyFromSummary(sum)
	applyLocation(prop, sum.Location)
	EnrichFromDetail(pageHTML, prop, s.cfg.BaseURL)
	return prop, nil
}

// listURL builds the results-page URL; page 1 carries no pagination
// suffix, later pages append the "/N_p" marker.
func (s *Scraper) listURL(location string, page int, propFilter string) string {
	url := s.cfg.SearchURL + "/" + location
	if propFilter != "" {
		url += "/" + propFilter
	}
	if page > 1 {
		url += fmt.Sprintf("/%d_p", page)
	}
	return url
}

// newPropertyFromSummary seeds a record with the card-stage fields.
func newPropertyFromSummary(sum ListingSummary) *models.Property {
	prop := models.New(sum.URL)
	prop.ListingID = sum.ListingID
	prop.StreetAddress = sum.StreetAddress
	prop.Price = sum.Price
	prop.PriceType = sum.PriceType
	prop.LivingArea = sum.LivingArea
	prop.PlotSize = sum.PlotSize
	prop.Rooms = sum.Rooms
	prop.ValueComparison = sum.ValueComparison
	prop.AgentName = sum.AgentName
	return prop
}

// applyLocation splits a raw "1012 AB Amsterdam" location string into
// postal code and city.
func applyLocation(prop *models.Property, location string) {
	parts := strings.Fields(location)
	if len(parts) >= 3 {
		prop.PostalCode = strings.Join(parts[:2], " ")
		prop.City = strings.Join(parts[2:], " ")
	}
}
