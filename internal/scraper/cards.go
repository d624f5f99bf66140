package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// detailLinkRe matches a listing detail path: /<city>/<postal>/... .
var detailLinkRe = regexp.MustCompile(`^/[a-z\-]+/\d+[a-z]+/`)

// agentSkipWords disqualify a text block from being read as an agent name.
var agentSkipWords = []string{"kamer", "waarde", "prijs", "nieuw"}

// ParseCards extracts listing summaries from a search results page, in
// document order. Advertisement cards and cards without a detail link are
// skipped; a card that cannot be parsed is dropped without affecting the
// rest of the page.
func ParseCards(pageHTML, baseURL string) ([]ListingSummary, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, err
	}
	return parseCards(doc, baseURL), nil
}

func parseCards(doc *goquery.Document, baseURL string) []ListingSummary {
	var summaries []ListingSummary
	doc.Find("article").Each(func(_ int, card *goquery.Selection) {
		if sum := parseCard(card, baseURL); sum != nil {
			summaries = append(summaries, *sum)
		}
	})
	return summaries
}

// parseCard parses one card element. A nil return means the card is not a
// listing (advertisement, missing link) or could not be parsed.
func parseCard(card *goquery.Selection, baseURL string) (sum *ListingSummary) {
	// Parse faults stay isolated to this card.
	defer func() {
		if recover() != nil {
			sum = nil
		}
	}()

	cardText := card.Text()
	if strings.Contains(strings.ToLower(cardText), "advertentie") {
		return nil
	}

	var href string
	card.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		h, _ := a.Attr("href")
		if detailLinkRe.MatchString(h) {
			href = h
			return false
		}
		return true
	})
	if href == "" {
		return nil
	}

	sum = &ListingSummary{
		URL:           baseURL + href,
		ListingID:     ExtractListingID(href),
		StreetAddress: strings.TrimSpace(card.Find("h2").First().Text()),
	}

	texts := textNodes(card)

	for _, t := range texts {
		if postalCodeRe.MatchString(t) {
			sum.Location = t
			break
		}
	}

	for _, t := range texts {
		if euroRe.MatchString(t) {
			sum.Price, sum.PriceType = ParsePrice(t)
			break
		}
	}

	// First area is the living area; the second is the plot size when it
	// carries a "perceel" marker or simply by position.
	areaIdx := 0
	for _, t := range texts {
		if !areaRe.MatchString(t) {
			continue
		}
		v := ParseArea(t)
		if v == nil {
			continue
		}
		if areaIdx == 0 {
			sum.LivingArea = v
		} else if strings.Contains(strings.ToLower(t), "perceel") || areaIdx == 1 {
			sum.PlotSize = v
		}
		areaIdx++
	}

	for _, t := range texts {
		if roomsRe.MatchString(t) {
			sum.Rooms = ParseRooms(t)
			break
		}
	}

	lowerCard := strings.ToLower(cardText)
	for _, phrase := range valueComparisons {
		if strings.Contains(lowerCard, strings.ToLower(phrase)) {
			sum.ValueComparison = phrase
			break
		}
	}

	sum.AgentName = guessAgentName(card)

	return sum
}

// guessAgentName scans the card's div blocks in reverse document order and
// picks the last plausible label: non-empty, longer than 3 characters, not
// a price, not an area, and free of the disqualifying words. This is a
// heuristic; the card carries no labeled agent field.
func guessAgentName(card *goquery.Selection) string {
	divs := card.Find("div")
	for i := divs.Length() - 1; i >= 0; i-- {
		text := strings.TrimSpace(divs.Eq(i).Text())
		if len(text) <= 3 || strings.HasPrefix(text, "€") || strings.Contains(text, "m²") {
			continue
		}
		lower := strings.ToLower(text)
		skip := false
		for _, word := range agentSkipWords {
			if strings.Contains(lower, word) {
				skip = true
				break
			}
		}
		if !skip {
			return text
		}
	}
	return ""
}

// textNodes returns the trimmed text of every non-empty text node under
// the selection, in document order.
func textNodes(sel *goquery.Selection) []string {
	var out []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				out = append(out, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return out
}
