package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/eventscribe/backend/internal/page"
)

// FindTitle returns the best candidate for the event title. Semantic markup
// wins over headings, headings over classed elements, and the document
// title is the last resort with any "| Site Name" style suffix stripped.
func FindTitle(p *page.Page) string {
	if title := p.First(`[itemprop="name"]`); title != "" {
		return title
	}
	if title := p.First("h1"); title != "" {
		return title
	}
	if title := p.First(titleClassSelector); title != "" {
		return title
	}
	if title := page.StripMarkup(p.Meta("og:title")); title != "" {
		return title
	}
	return cleanTitle(p.Title())
}

// cleanTitle strips trailing site-name suffixes from a document title.
func cleanTitle(title string) string {
	return strings.TrimSpace(titleSuffixRe.ReplaceAllString(title, ""))
}

// FindDescription returns the best candidate for the event description.
// Strategy order: description metadata, classed description containers, the
// paragraph following the date/time block, then the longest substantial
// paragraph outside page chrome.
func FindDescription(p *page.Page) string {
	if desc := descriptionFromMeta(p); desc != "" {
		return desc
	}
	if desc := descriptionFromClassedElements(p); desc != "" {
		return desc
	}
	if desc := descriptionAfterSchedule(p); desc != "" {
		return desc
	}
	return longestParagraph(p)
}

// descriptionFromMeta reads description metadata. Attribute values can carry
// entity-encoded markup, so candidates are stripped before length checks.
func descriptionFromMeta(p *page.Page) string {
	for _, candidate := range []string{
		p.Meta("description"),
		p.Meta("og:description"),
		p.First(`[itemprop="description"]`),
	} {
		if desc := page.StripMarkup(candidate); len(desc) > descMetaMinLen {
			return desc
		}
	}
	return ""
}

func descriptionFromClassedElements(p *page.Page) string {
	var out string
	p.Find(descClassSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !page.Visible(s) || page.WithinChrome(s) {
			return true
		}
		text := page.NormalizeWhitespace(s.Text())
		if len(text) < descClassMinLen || len(text) > descClassMaxLen {
			return true
		}
		out = text
		return false
	})
	return out
}

// descriptionAfterSchedule takes the paragraph immediately following a
// block that carries the date or time, on the assumption event pages list
// logistics first and prose second.
func descriptionAfterSchedule(p *page.Page) string {
	var out string
	p.Find(dateClassSelector + ", " + timeClassSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		next := s.NextFiltered("p")
		if next.Length() == 0 {
			next = s.Parent().NextFiltered("p")
		}
		if next.Length() == 0 || !page.Visible(next) {
			return true
		}
		text := page.NormalizeWhitespace(next.Text())
		if len(text) < descClassMinLen || len(text) > descClassMaxLen {
			return true
		}
		out = text
		return false
	})
	return out
}

// longestParagraph picks the longest visible paragraph outside page chrome
// within sane length bounds.
func longestParagraph(p *page.Page) string {
	var best string
	p.Find("p").Each(func(_ int, s *goquery.Selection) {
		if !page.Visible(s) || page.WithinChrome(s) {
			return
		}
		text := page.NormalizeWhitespace(s.Text())
		if len(text) < descParaMinLen || len(text) > descParaMaxLen {
			return
		}
		if len(text) > len(best) {
			best = text
		}
	})
	return best
}
