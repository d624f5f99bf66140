package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	windowRe   = regexp.MustCompile(`Resultaten?\s*(\d+)-(\d+)\s*van\s*([\d.]+)`)
	headingRe  = regexp.MustCompile(`([\d.]+)\s*Koopwoningen`)
	navTotalRe = regexp.MustCompile(`van\s*([\d.]+)`)
)

// ParseWindow extracts the "Resultaten 1-10 van 58.480" pagination window
// from a results page. A page without one yields the zero window.
func ParseWindow(doc *goquery.Document) PageWindow {
	var w PageWindow
	doc.Find("nav").EachWithBreak(func(_ int, nav *goquery.Selection) bool {
		m := windowRe.FindStringSubmatch(nav.Text())
		if m == nil {
			return true
		}
		w.Start, _ = strconv.Atoi(m[1])
		w.End, _ = strconv.Atoi(m[2])
		w.Total, _ = strconv.Atoi(strings.ReplaceAll(m[3], ".", ""))
		return false
	})
	return w
}

// TotalCount reads the overall result count from the page heading
// ("58.480 Koopwoningen in Amsterdam"), falling back to the pagination
// nav. Returns 0 when neither is present.
func TotalCount(doc *goquery.Document) int {
	if m := headingRe.FindStringSubmatch(doc.Find("h1").First().Text()); m != nil {
		if v, err := strconv.Atoi(strings.ReplaceAll(m[1], ".", "")); err == nil {
			return v
		}
	}

	if m := navTotalRe.FindStringSubmatch(doc.Find("nav").First().Text()); m != nil {
		if v, err := strconv.Atoi(strings.ReplaceAll(m[1], ".", "")); err == nil {
			return v
		}
	}

	return 0
}
