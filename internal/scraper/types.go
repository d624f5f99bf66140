package scraper

// Price qualifiers as printed on Huispedia.
const (
	// PriceTypeKK marks "kosten koper": transfer costs are paid by the buyer.
	PriceTypeKK = "k.k."
	// PriceTypeVON marks "vrij op naam": transfer costs are included.
	PriceTypeVON = "v.o.n."
)

// valueComparisons are the fixed phrases Huispedia uses to relate the
// asking price to its value estimate. First match wins.
var valueComparisons = []string{
	"Onder de waarde",
	"Binnen de waarde",
	"Boven de waarde",
}

// ListingSummary is the lightweight record parsed from one card on a
// search results page. It is promoted to a models.Property either directly
// or after detail-page enrichment, and is never persisted on its own.
type ListingSummary struct {
	URL             string
	ListingID       string
	StreetAddress   string
	Location        string // raw "1012 AB Amsterdam" style string
	Price           *int
	PriceType       string
	LivingArea      *int
	PlotSize        *int
	Rooms           *int
	ValueComparison string
	AgentName       string
}

// PageWindow describes where a result page sits in the full result set,
// e.g. "Resultaten 51-58 van 58.480" gives {51, 58, 58480}.
type PageWindow struct {
	Start int
	End   int
	Total int
}

// Options control a single scrape run.
type Options struct {
	Location     string
	PropertyType string // all, apartment, house
	MaxPages     int    // 0 means no page limit
	Limit        int    // 0 means no record limit
	FetchDetails bool
}
