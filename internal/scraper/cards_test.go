package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const baseURL = "https://huispedia.nl"

func TestParseCards(t *testing.T) {
	html := `
		<html><body>
		<article>
			<div>Advertentie</div>
			<a href="/amsterdam/1017ab/reclamestraat/9">Gesponsord</a>
		</article>
		<article>
			<a href="/amsterdam/1012ab/damstraat/1">Bekijk woning</a>
			<h2>Damstraat 1</h2>
			<div>1012 AB Amsterdam</div>
			<div>€ 310.000 k.k.</div>
			<div>112 m²</div>
			<div>145 m² perceel</div>
			<div>4 kamers (3 slaapkamers)</div>
			<div>Onder de waarde</div>
			<div>Makelaardij De Gracht</div>
		</article>
		<article>
			<span>Geen link naar een woning hier</span>
		</article>
		</body></html>
	`

	summaries, err := ParseCards(html, baseURL)
	assert.NoError(t, err)
	assert.Len(t, summaries, 1)

	sum := summaries[0]
	assert.Equal(t, "https://huispedia.nl/amsterdam/1012ab/damstraat/1", sum.URL)
	assert.Equal(t, "amsterdam-1012ab-damstraat-1", sum.ListingID)
	assert.Equal(t, "Damstraat 1", sum.StreetAddress)
	assert.Equal(t, "1012 AB Amsterdam", sum.Location)
	assert.Equal(t, intp(310000), sum.Price)
	assert.Equal(t, "k.k.", sum.PriceType)
	assert.Equal(t, intp(112), sum.LivingArea)
	assert.Equal(t, intp(145), sum.PlotSize)
	assert.Equal(t, intp(4), sum.Rooms)
	assert.Equal(t, "Onder de waarde", sum.ValueComparison)
	assert.Equal(t, "Makelaardij De Gracht", sum.AgentName)
}

func TestParseCardsSkipsCardsWithoutDetailLink(t *testing.T) {
	html := `
		<article>
			<a href="https://elders.nl/pagina">Externe link</a>
			<h2>Geen woning</h2>
		</article>
	`

	summaries, err := ParseCards(html, baseURL)
	assert.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestParseCardsKeepsDocumentOrder(t *testing.T) {
	html := `
		<article>
			<a href="/utrecht/3511ab/oudegracht/10">a</a>
			<h2>Oudegracht 10</h2>
		</article>
		<article>
			<a href="/utrecht/3511ab/oudegracht/12">b</a>
			<h2>Oudegracht 12</h2>
		</article>
	`

	summaries, err := ParseCards(html, baseURL)
	assert.NoError(t, err)
	assert.Len(t, summaries, 2)
	assert.Equal(t, "Oudegracht 10", summaries[0].StreetAddress)
	assert.Equal(t, "Oudegracht 12", summaries[1].StreetAddress)
}

func TestParseCardsMissingOptionalFields(t *testing.T) {
	html := `
		<article>
			<a href="/leiden/2311gj/breestraat/5">Bekijk</a>
			<h2>Breestraat 5</h2>
		</article>
	`

	summaries, err := ParseCards(html, baseURL)
	assert.NoError(t, err)
	assert.Len(t, summaries, 1)

	sum := summaries[0]
	assert.Nil(t, sum.Price)
	assert.Nil(t, sum.LivingArea)
	assert.Nil(t, sum.PlotSize)
	assert.Nil(t, sum.Rooms)
	assert.Equal(t, "", sum.PriceType)
	assert.Equal(t, "", sum.ValueComparison)
	assert.Equal(t, "", sum.AgentName)
}

func TestGuessAgentNameSkipsDisqualifiedBlocks(t *testing.T) {
	html := `
		<article>
			<a href="/delft/2611ab/markt/3">Bekijk</a>
			<h2>Markt 3</h2>
			<div>Hollandse Huizen BV</div>
			<div>Nieuw in verkoop</div>
			<div>€ 450.000</div>
			<div>98 m²</div>
			<div>3 kamers</div>
		</article>
	`

	summaries, err := ParseCards(html, baseURL)
	assert.NoError(t, err)
	assert.Len(t, summaries, 1)
	// Reverse scan: price, area and "kamer"/"nieuw" blocks are all
	// disqualified, leaving the actual agency.
	assert.Equal(t, "Hollandse Huizen BV", summaries[0].AgentName)
}
