package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"huispedia-scraper/models"
)

// PostgresWriter persists property records to PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema
// migrations, and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS properties (
			id               SERIAL PRIMARY KEY,
			url              TEXT        UNIQUE NOT NULL,
			listing_id       VARCHAR(255) NOT NULL DEFAULT '',
			street_address   TEXT        NOT NULL DEFAULT '',
			postal_code      VARCHAR(16) NOT NULL DEFAULT '',
			city             VARCHAR(128) NOT NULL DEFAULT '',
			price            INTEGER,
			price_per_sqm    INTEGER,
			price_type       VARCHAR(16) NOT NULL DEFAULT '',
			value_comparison VARCHAR(32) NOT NULL DEFAULT '',
			living_area      INTEGER,
			plot_size        INTEGER,
			rooms            INTEGER,
			bedrooms         INTEGER,
			year_built       INTEGER,
			energy_label     VARCHAR(8)  NOT NULL DEFAULT '',
			agent_name       TEXT        NOT NULL DEFAULT '',
			description      TEXT        NOT NULL DEFAULT '',
			date_scraped     TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_properties_city        ON properties(city);
		CREATE INDEX IF NOT EXISTS idx_properties_price       ON properties(price);
		CREATE INDEX IF NOT EXISTS idx_properties_postal_code ON properties(postal_code);
	`)
	return err
}

// Write batch-inserts all records; listings already stored keep their
// first-seen row (url is the identity key).
func (pw *PostgresWriter) Write(props []*models.Property) error {
	if len(props) == 0 {
		return nil
	}

	const batchSize = 50
	for i := 0; i < len(props); i += batchSize {
		end := i + batchSize
		if end > len(props) {
			end = len(props)
		}
		if err := pw.insertBatch(props[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(batch []*models.Property) error {
	const cols = 18
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, p := range batch {
		base := idx * cols
		placeholders := make([]string, 0, cols)
		for j := 1; j <= cols; j++ {
			placeholders = append(placeholders, fmt.Sprintf("$%d", base+j))
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			p.URL, p.ListingID, p.StreetAddress, p.PostalCode, p.City,
			nullableInt(p.Price), nullableInt(p.PricePerSqm), p.PriceType,
			p.ValueComparison, nullableInt(p.LivingArea), nullableInt(p.PlotSize),
			nullableInt(p.Rooms), nullableInt(p.Bedrooms), nullableInt(p.YearBuilt),
			p.EnergyLabel, p.AgentName, p.Description, p.DateScraped)
	}

	query := fmt.Sprintf(`
		INSERT INTO properties (
			url, listing_id, street_address, postal_code, city,
			price, price_per_sqm, price_type, value_comparison,
			living_area, plot_size, rooms, bedrooms, year_built,
			energy_label, agent_name, description, date_scraped
		)
		VALUES %s
		ON CONFLICT (url) DO NOTHING
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

// Close closes the database connection.
func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

func nullableInt(p *int) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
