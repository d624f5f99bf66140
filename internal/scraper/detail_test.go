package scraper

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"huispedia-scraper/models"
)

func detailPage(description string) string {
	return fmt.Sprintf(`
		<html>
		<head><title>Damstraat 1, Amsterdam | Huispedia</title></head>
		<body>
		<nav aria-label="breadcrumb">
			<a href="/">Home</a>
			<a href="/koopwoningen/den-haag">Den Haag</a>
		</nav>
		<div>2511 CS Den Haag</div>
		<ul>
			<li>Vraagprijs per m² € 2.812</li>
			<li>Vraagprijs € 315.000 k.k.</li>
			<li>Aangeboden sinds 3 maanden</li>
			<li>Status Beschikbaar</li>
			<li>Aanvaarding In overleg</li>
			<li>Soort woonhuis Eengezinswoning, Tussenwoning</li>
			<li>Soort bouw Bestaande bouw</li>
			<li>Bouwjaar 1931</li>
			<li>Soort dak Zadeldak</li>
			<li>Energielabel C</li>
			<li>Isolatie Dubbel glas</li>
			<li>Verwarming Cv-ketel</li>
			<li>Cv-ketel bouwjaar 2019</li>
			<li>Woonoppervlakte 112 m²</li>
			<li>Perceeloppervlakte 145 m²</li>
			<li>Inhoud 380 m³</li>
			<li>Aantal kamers 4 kamers (3 slaapkamers)</li>
			<li>Aantal badkamers 1 badkamer</li>
			<li>Aantal woonlagen 3 woonlagen</li>
			<li>Keuken Open keuken</li>
			<li>Keukenvoorzieningen Vaatwasser</li>
			<li>Badkamervoorzieningen Ligbad en douche</li>
			<li>Ligging woning Aan rustige weg</li>
			<li>Soort parkeergelegenheid Openbaar parkeren</li>
			<li>Binnen Goed</li>
			<li>Buiten Redelijk</li>
			<li>SGRAVENHAGE B 5731</li>
		</ul>
		<div>%s</div>
		<a href="/makelaars/kantoor/de-gracht">Makelaardij De Gracht</a>
		</body>
		</html>
	`, description)
}

func TestEnrichFromDetail(t *testing.T) {
	description := strings.Repeat("De woning ligt aan een rustige gracht in het centrum van de stad. ", 12)
	prop := models.New("https://huispedia.nl/den-haag/2511cs/spui/7")

	EnrichFromDetail(detailPage(description), prop, baseURL)

	assert.Equal(t, "Damstraat 1, Amsterdam | Huispedia", prop.Title)

	assert.Equal(t, intp(315000), prop.Price)
	assert.Equal(t, "k.k.", prop.PriceType)
	assert.Equal(t, intp(2812), prop.PricePerSqm)

	assert.Equal(t, "3 maanden", prop.ListedSince)
	assert.Equal(t, "Beschikbaar", prop.Status)
	assert.Equal(t, "In overleg", prop.Acceptance)

	assert.Equal(t, "Eengezinswoning", prop.PropertyType)
	assert.Equal(t, "Tussenwoning", prop.HouseType)
	assert.Equal(t, "Bestaande bouw", prop.BuildType)
	assert.Equal(t, intp(1931), prop.YearBuilt)
	assert.Equal(t, "Zadeldak", prop.RoofType)

	assert.Equal(t, "C", prop.EnergyLabel)
	assert.Equal(t, "Dubbel glas", prop.Insulation)
	assert.Equal(t, "Cv-ketel", prop.Heating)
	assert.Equal(t, intp(2019), prop.CVYear)

	assert.Equal(t, intp(112), prop.LivingArea)
	assert.Equal(t, intp(145), prop.PlotSize)
	assert.Equal(t, intp(380), prop.Volume)

	assert.Equal(t, intp(4), prop.Rooms)
	assert.Equal(t, intp(3), prop.Bedrooms)
	assert.Equal(t, intp(1), prop.Bathrooms)
	assert.Equal(t, intp(3), prop.Floors)

	assert.Equal(t, "Open keuken", prop.KitchenType)
	assert.Equal(t, "Vaatwasser", prop.KitchenAmenities)
	assert.Equal(t, "Ligbad en douche", prop.BathroomAmenities)

	assert.Equal(t, "Aan rustige weg", prop.LocationType)
	assert.Equal(t, "Openbaar parkeren", prop.ParkingType)

	assert.Equal(t, "Goed", prop.MaintenanceInside)
	assert.Equal(t, "Redelijk", prop.MaintenanceOutside)

	assert.Equal(t, "SGRAVENHAGE B 5731", prop.CadastralInfo)

	assert.Equal(t, strings.TrimSpace(description), prop.Description)

	assert.Equal(t, "Makelaardij De Gracht", prop.AgentName)
	assert.Equal(t, "https://huispedia.nl/makelaars/kantoor/de-gracht", prop.AgentURL)

	assert.Equal(t, "Den Haag", prop.City)
	assert.Equal(t, "2511 CS", prop.PostalCode)
}

func TestEnrichFromDetailBoilerYearGuard(t *testing.T) {
	html := `
		<html><body><ul>
			<li>Bouwjaar 1950 Cv-ketel vervangen</li>
		</ul></body></html>
	`
	prop := models.New("https://huispedia.nl/x")
	EnrichFromDetail(html, prop, baseURL)

	// The build-year label is suppressed when the line also mentions the
	// boiler.
	assert.Nil(t, prop.YearBuilt)
}

func TestEnrichFromDetailDescriptionNeedsHousingWord(t *testing.T) {
	long := strings.Repeat("Lorem ipsum dolor sit amet, consectetur adipiscing elit sed. ", 12)
	html := fmt.Sprintf(`<html><body><div>%s</div></body></html>`, long)

	prop := models.New("https://huispedia.nl/x")
	EnrichFromDetail(html, prop, baseURL)

	assert.Equal(t, "", prop.Description)
}

func TestEnrichFromDetailTruncatesDescription(t *testing.T) {
	long := strings.Repeat("Ruime woning met tuin en moderne keuken op een toplocatie. ", 60)
	html := fmt.Sprintf(`<html><body><div>%s</div></body></html>`, long)

	prop := models.New("https://huispedia.nl/x")
	EnrichFromDetail(html, prop, baseURL)

	assert.Equal(t, 2000, len([]rune(prop.Description)))
}

func TestEnrichFromDetailKeepsSummaryFieldsOnEmptyPage(t *testing.T) {
	prop := models.New("https://huispedia.nl/x")
	prop.StreetAddress = "Damstraat 1"
	prop.Price = intp(310000)

	EnrichFromDetail("<html><body></body></html>", prop, baseURL)

	assert.Equal(t, "Damstraat 1", prop.StreetAddress)
	assert.Equal(t, intp(310000), prop.Price)
}
