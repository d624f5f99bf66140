package scraper

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Text patterns for field extraction. Extraction never fails loudly: a
// missing match yields nil (or an empty string), not an error.
var (
	euroRe        = regexp.MustCompile(`€\s*([\d.]+)`)
	areaRe        = regexp.MustCompile(`(\d+)\s*m[²2]`)
	volumeRe      = regexp.MustCompile(`(\d+)\s*m[³3]`)
	roomsRe       = regexp.MustCompile(`(\d+)\s*kamer`)
	bedroomsRe    = regexp.MustCompile(`(\d+)\s*slaapkamer`)
	bathroomsRe   = regexp.MustCompile(`(\d+)\s*badkamer`)
	floorsRe      = regexp.MustCompile(`(\d+)\s*woonla`)
	yearRe        = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
	energyLabelRe = regexp.MustCompile(`\b([A-G](\+{1,3})?)\b`)
	postalCodeRe  = regexp.MustCompile(`(\d{4}\s*[A-Z]{2})`)
	cadastralRe   = regexp.MustCompile(`^[A-Z]+ [A-Z] \d+`)
)

// ParsePrice extracts a whole-euro price and its qualifier from text like
// "€ 310.000 k.k.". The qualifier is classified even when no numeric value
// is present.
func ParsePrice(text string) (*int, string) {
	if text == "" {
		return nil, ""
	}

	priceType := ""
	lower := strings.ToLower(text)
	if strings.Contains(lower, "k.k.") {
		priceType = PriceTypeKK
	} else if strings.Contains(lower, "v.o.n.") {
		priceType = PriceTypeVON
	}

	// Commas are treated as thousands separators, same as dots.
	m := euroRe.FindStringSubmatch(strings.ReplaceAll(text, ",", "."))
	if m != nil {
		if v, err := strconv.Atoi(strings.ReplaceAll(m[1], ".", "")); err == nil {
			return &v, priceType
		}
	}

	return nil, priceType
}

// ParseEuroAmount extracts a bare currency-prefixed amount, e.g. the
// "€ 5.350" in a price-per-m² line.
func ParseEuroAmount(text string) *int {
	m := euroRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v, err := strconv.Atoi(strings.ReplaceAll(m[1], ".", ""))
	if err != nil {
		return nil
	}
	return &v
}

// ParseArea extracts an area in m² from text like "112 m²" or "112 m2".
func ParseArea(text string) *int {
	return firstInt(areaRe, text)
}

// ParseVolume extracts a volume in m³ from text like "380 m³".
func ParseVolume(text string) *int {
	return firstInt(volumeRe, text)
}

// ParseRooms extracts the room count from text like "4 kamers (3 slaapkamers)".
func ParseRooms(text string) *int {
	return firstInt(roomsRe, text)
}

// ParseBedrooms extracts the bedroom count. It is independent of
// ParseRooms; a bedroom count is never derived from a room count.
func ParseBedrooms(text string) *int {
	return firstInt(bedroomsRe, text)
}

// ParseBathrooms extracts the bathroom count.
func ParseBathrooms(text string) *int {
	return firstInt(bathroomsRe, text)
}

// ParseFloors extracts the number of floors ("woonlagen").
func ParseFloors(text string) *int {
	return firstInt(floorsRe, text)
}

// ParseYear extracts the first 4-digit year in 1900-2099 from text. The
// caller supplies context-filtered text to avoid cross-field collisions
// (e.g. a boiler-year line when extracting the build year).
func ParseYear(text string) *int {
	return firstInt(yearRe, text)
}

// ParseEnergyLabel extracts an energy label (A+++ through G) from text.
func ParseEnergyLabel(text string) string {
	m := energyLabelRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// ExtractListingID derives a stable identifier from a listing URL path by
// joining the first four non-empty segments with dashes. Shorter paths
// fall back to the full cleaned path.
func ExtractListingID(rawURL string) string {
	if rawURL == "" {
		return ""
	}

	path := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		path = u.Path
	}

	trimmed := strings.Trim(path, "/")
	var parts []string
	for _, p := range strings.Split(trimmed, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) >= 4 {
		return strings.Join(parts[:4], "-")
	}

	return strings.ReplaceAll(trimmed, "/", "-")
}

func firstInt(re *regexp.Regexp, text string) *int {
	if text == "" {
		return nil
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &v
}
