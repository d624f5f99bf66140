package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"huispedia-scraper/logger"
	"huispedia-scraper/models"
)

const maxDescriptionLen = 2000

// descriptionWords mark a long text block as a housing description.
var descriptionWords = []string{"woning", "kamer", "keuken", "tuin", "badkamer"}

var dutchTitle = cases.Title(language.Dutch)

// EnrichFromDetail fills extended attributes on prop from a detail page.
// Label matching is substring-based and best-effort: a line item may feed
// several fields, a missing label leaves the field untouched. The record
// is never discarded; whatever was filled before a fault is kept.
func EnrichFromDetail(pageHTML string, prop *models.Property, baseURL string) {
	defer func() {
		if r := recover(); r != nil {
			logger.ForScraper().Error().
				Interface("panic", r).
				Str("url", prop.URL).
				Msg("Detail enrichment aborted, keeping partial record")
		}
	}()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		logger.ForScraper().Error().Err(err).Str("url", prop.URL).Msg("Detail page parse failed")
		return
	}

	prop.Title = strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find("li").Each(func(_ int, item *goquery.Selection) {
		applyLineItem(itemText(item), prop)
	})

	extractDescription(doc, prop)
	extractAgent(doc, prop, baseURL)
	extractCity(doc, prop)
	extractPostalCode(doc, prop)
}

// applyLineItem matches one feature line against the known labels and
// assigns whatever it recognizes.
func applyLineItem(text string, prop *models.Property) {
	lower := strings.ToLower(text)

	// Price details
	if strings.Contains(text, "Vraagprijs") && strings.Contains(text, "€") {
		if price, priceType := ParsePrice(text); price != nil {
			prop.Price = price
			prop.PriceType = priceType
		}
	}
	if strings.Contains(text, "Vraagprijs per m") {
		if v := ParseEuroAmount(text); v != nil {
			prop.PricePerSqm = v
		}
	}

	// Status
	if strings.Contains(text, "Aangeboden sinds") {
		prop.ListedSince = stripLabel(text, "Aangeboden sinds")
	}
	if strings.Contains(text, "Status") {
		prop.Status = stripLabel(text, "Status")
	}
	if strings.Contains(text, "Aanvaarding") {
		prop.Acceptance = stripLabel(text, "Aanvaarding")
	}

	// Building info
	if strings.Contains(text, "Soort woonhuis") {
		parts := strings.Split(stripLabel(text, "Soort woonhuis"), ",")
		if len(parts) > 0 {
			prop.PropertyType = strings.TrimSpace(parts[0])
			if len(parts) > 1 {
				prop.HouseType = strings.TrimSpace(parts[1])
			}
		}
	}
	if strings.Contains(text, "Soort bouw") {
		prop.BuildType = stripLabel(text, "Soort bouw")
	}
	// A boiler year line also says "Bouwjaar"; it must not win here.
	if strings.Contains(text, "Bouwjaar") && !strings.Contains(text, "Cv-ketel") {
		prop.YearBuilt = ParseYear(text)
	}
	if strings.Contains(text, "Renovatiejaar") {
		prop.RenovationYear = ParseYear(text)
	}
	if strings.Contains(text, "Soort dak") {
		prop.RoofType = stripLabel(text, "Soort dak")
	}

	// Energy
	if strings.Contains(text, "Energielabel") {
		if label := ParseEnergyLabel(stripLabel(text, "Energielabel")); label != "" {
			prop.EnergyLabel = label
		}
	}
	if strings.Contains(text, "Isolatie") {
		prop.Insulation = stripLabel(text, "Isolatie")
	}
	if strings.Contains(text, "Verwarming") {
		prop.Heating = stripLabel(text, "Verwarming")
	}
	if strings.Contains(text, "Cv-ketel bouwjaar") {
		prop.CVYear = ParseYear(text)
	}

	// Dimensions
	if strings.Contains(text, "Woonoppervlakte") {
		prop.LivingArea = ParseArea(text)
	}
	if strings.Contains(text, "Perceeloppervlakte") {
		prop.PlotSize = ParseArea(text)
	}
	if strings.Contains(text, "Inhoud") {
		prop.Volume = ParseVolume(text)
	}

	// Rooms
	if strings.Contains(text, "Aantal kamers") {
		prop.Rooms = ParseRooms(text)
		prop.Bedrooms = ParseBedrooms(text)
	}
	if strings.Contains(text, "Aantal badkamers") {
		prop.Bathrooms = ParseBathrooms(text)
	}
	if strings.Contains(text, "Aantal woonlagen") {
		prop.Floors = ParseFloors(text)
	}

	// Kitchen and bathroom
	if strings.Contains(text, "Keuken") && !strings.Contains(lower, "voorzieningen") {
		prop.KitchenType = stripLabel(text, "Keuken")
	}
	if strings.Contains(text, "Keukenvoorzieningen") {
		prop.KitchenAmenities = stripLabel(text, "Keukenvoorzieningen")
	}
	if strings.Contains(text, "Badkamervoorzieningen") {
		prop.BathroomAmenities = stripLabel(text, "Badkamervoorzieningen")
	}

	// Surroundings
	if strings.Contains(text, "Ligging woning") {
		prop.LocationType = stripLabel(text, "Ligging woning")
	}
	if strings.Contains(text, "Soort parkeergelegenheid") {
		prop.ParkingType = stripLabel(text, "Soort parkeergelegenheid")
	}

	// Maintenance condition, distinguished by prefix only
	if strings.HasPrefix(text, "Binnen") && !strings.Contains(text, "Buiten") {
		prop.MaintenanceInside = stripLabel(text, "Binnen")
	}
	if strings.HasPrefix(text, "Buiten") {
		prop.MaintenanceOutside = stripLabel(text, "Buiten")
	}

	// Cadastral lines have no label; they look like "AMSTERDAM B 1234".
	if !strings.Contains(text, "Oppervlakte") && cadastralRe.MatchString(text) {
		prop.CadastralInfo = text
	}
}

// extractDescription takes the first long free-text block that is not a
// list or navigation structure and mentions at least one housing word.
func extractDescription(doc *goquery.Document, prop *models.Property) {
	doc.Find("div").EachWithBreak(func(_ int, div *goquery.Selection) bool {
		text := itemText(div)
		if len([]rune(text)) <= 500 || div.Find("ul").Length() > 0 || div.Find("nav").Length() > 0 {
			return true
		}
		lower := strings.ToLower(text)
		for _, word := range descriptionWords {
			if strings.Contains(lower, word) {
				prop.Description = truncate(text, maxDescriptionLen)
				return false
			}
		}
		return true
	})
}

// extractAgent reads the agent office link, overwriting any name guessed
// at the card stage.
func extractAgent(doc *goquery.Document, prop *models.Property, baseURL string) {
	agentLink := doc.Find("a[href*='/makelaars/kantoor/']").First()
	if agentLink.Length() == 0 {
		return
	}
	prop.AgentName = strings.TrimSpace(agentLink.Text())
	if href, ok := agentLink.Attr("href"); ok {
		prop.AgentURL = baseURL + href
	}
}

// extractCity re-derives the city from the breadcrumb navigation.
func extractCity(doc *goquery.Document, prop *models.Property) {
	doc.Find("nav[aria-label] a").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		if !strings.Contains(href, "/koopwoningen/") {
			return
		}
		city := strings.Trim(strings.Replace(href, "/koopwoningen/", "", 1), "/")
		if city != "" && city != "provincie-" {
			prop.City = dutchTitle.String(strings.ReplaceAll(city, "-", " "))
		}
	})
}

// extractPostalCode picks the first postal-code-shaped text on the page.
func extractPostalCode(doc *goquery.Document, prop *models.Property) {
	for _, t := range textNodes(doc.Selection) {
		if m := postalCodeRe.FindStringSubmatch(t); m != nil {
			prop.PostalCode = m[1]
			return
		}
	}
}

// itemText renders an element's text with single-space separators between
// its text nodes.
func itemText(sel *goquery.Selection) string {
	return strings.Join(textNodes(sel), " ")
}

func stripLabel(text, label string) string {
	return strings.TrimSpace(strings.ReplaceAll(text, label, ""))
}

func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
