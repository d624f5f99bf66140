package storage

import "huispedia-scraper/models"

// PropertyWriter is the interface any output backend must satisfy.
type PropertyWriter interface {
	Write(props []*models.Property) error
	Close() error
}
