package extract

import (
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/eventscribe/backend/internal/page"
	"golang.org/x/net/html"
)

// FindLocation returns the most likely physical location of an event.
// Strategy order: structured postal-address markup, known location classes,
// regional postal-code shapes in free text, then explicit "location:" style
// labels. A miss is "".
func FindLocation(p *page.Page) string {
	if loc := locationFromStructuredAddress(p); loc != "" {
		return loc
	}
	if loc := locationFromClassedElements(p); loc != "" {
		return loc
	}
	if loc := locationFromPostalCode(p); loc != "" {
		return loc
	}
	return locationFromLabel(p)
}

// locationFromStructuredAddress assembles an address from microdata
// sub-fields (street, locality, region, postal code) joined by commas,
// falling back to the container's cleaned full text.
func locationFromStructuredAddress(p *page.Page) string {
	var out string
	p.XPathEach(structuredAddressXPath, func(n *html.Node) bool {
		var parts []string
		for _, prop := range []string{"streetAddress", "addressLocality", "addressRegion", "postalCode"} {
			if child := htmlquery.FindOne(n, `.//*[@itemprop="`+prop+`"]`); child != nil {
				if text := strings.TrimSpace(htmlquery.InnerText(child)); text != "" {
					parts = append(parts, text)
				}
			}
		}
		if len(parts) > 0 {
			out = strings.Join(parts, ", ")
			return false
		}

		if text := cleanAddressText(htmlquery.InnerText(n)); len(text) > 5 {
			out = text
			return false
		}
		return true
	})
	return out
}

func locationFromClassedElements(p *page.Page) string {
	for _, selector := range locationClassSelectors {
		if text := cleanAddressText(p.First(selector)); len(text) > 3 {
			return text
		}
	}
	return ""
}

// locationFromPostalCode scans short text blocks for UK/US/Canada postal
// code shapes. Blocks of 200+ characters are skipped so a whole paragraph
// is never captured as a location.
func locationFromPostalCode(p *page.Page) string {
	var out string
	p.VisibleBlocks(func(text string) bool {
		if len(text) >= 200 {
			return true
		}
		for _, re := range postalCodeRes {
			if re.MatchString(text) {
				out = cleanAddressText(text)
				return false
			}
		}
		return true
	})
	return out
}

// locationFromLabel scans for "location: <value>" style labels, taking the
// value up to the next newline or punctuation.
func locationFromLabel(p *page.Page) string {
	var out string
	p.VisibleBlocks(func(text string) bool {
		if m := locationLabelRe.FindStringSubmatch(text); m != nil {
			out = cleanAddressText(m[1])
			return false
		}
		return true
	})
	return out
}

// cleanAddressText strips trailing map-widget artifacts and collapses
// whitespace.
func cleanAddressText(text string) string {
	text = showMapRe.ReplaceAllString(text, "")
	text = getDirectionsRe.ReplaceAllString(text, "")
	return page.NormalizeWhitespace(text)
}
