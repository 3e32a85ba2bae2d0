package extract

import (
	"regexp"
	"strings"

	"github.com/eventscribe/backend/internal/page"
	"github.com/eventscribe/backend/internal/shared/types"
)

// Classify scores a page for attendance mode. Online wins only with a score
// of at least onlineThreshold that also beats the in-person score; a single
// casual "online" mention is never enough. An in-person score of at least
// inPersonThreshold classifies the page as in-person, which gates meeting
// link extraction off entirely.
func Classify(p *page.Page) types.OnlineStatus {
	online, inPerson := scoreText(p.Text())

	// Online-styled class markers
	if p.HasAny(onlineClassSelector) {
		online += weightClassMarker
	}

	// Machine-readable attendance-mode metadata is the strongest signal.
	mode := p.Attr(attendanceMetaSelector, "content")
	if mode == "" {
		mode = p.First(attendanceMetaSelector)
	}
	if mode == "" {
		mode = jsonLDAttendanceMode(p)
	}
	if mode != "" {
		if onlineModeRe.MatchString(mode) {
			online += weightMetaAttendance
		} else if inPersonModeRe.MatchString(mode) {
			inPerson += weightMetaAttendance
		}
	}

	return decide(online, inPerson)
}

// ClassifyText scores bare text with no page markup available, for
// selection-only sources.
func ClassifyText(text string) types.OnlineStatus {
	return decide(scoreText(text))
}

func scoreText(text string) (online, inPerson int) {
	lower := strings.ToLower(text)

	for _, phrase := range onlineIndicators {
		if strings.Contains(lower, phrase) {
			online += weightStrongPhrase
		}
	}
	for _, word := range onlineKeywords {
		if wordBoundaryMatch(lower, word) {
			online += weightWeakKeyword
		}
	}
	for _, phrase := range inPersonIndicators {
		if strings.Contains(lower, phrase) {
			inPerson += weightStrongPhrase
		}
	}
	return online, inPerson
}

func decide(online, inPerson int) types.OnlineStatus {
	if online >= onlineThreshold && online > inPerson {
		return types.StatusOnline
	}
	if inPerson >= inPersonThreshold {
		return types.StatusInPerson
	}
	return types.StatusUnknown
}

// jsonLDAttendanceMode pulls eventAttendanceMode out of JSON-LD event
// markup, e.g. "https://schema.org/OnlineEventAttendanceMode".
func jsonLDAttendanceMode(p *page.Page) string {
	for _, item := range p.JSONLD() {
		if mode, ok := item["eventAttendanceMode"].(string); ok && mode != "" {
			return mode
		}
	}
	return ""
}

var wordBoundaryCache = map[string]*regexp.Regexp{}

func init() {
	for _, word := range onlineKeywords {
		wordBoundaryCache[word] = regexp.MustCompile(`\b` + regexp.QuoteMeta(word) + `\b`)
	}
}

func wordBoundaryMatch(lower, word string) bool {
	if re, ok := wordBoundaryCache[word]; ok {
		return re.MatchString(lower)
	}
	return false
}
