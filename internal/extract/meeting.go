package extract

import (
	"fmt"

	"github.com/eventscribe/backend/internal/page"
	"github.com/eventscribe/backend/internal/shared/types"
)

// FindMeetingLink locates the most likely meeting link on a page. Only call
// it when the classifier did not return StatusInPerson; on in-person pages
// unrelated "join" buttons produce false positives.
//
// Hyperlinks are checked first, in document order, against the confidence
// tiered URL rules; the first accepted link wins and no ranking between
// candidates is attempted. If no hyperlink matches, visible text blocks are
// scanned for literal platform URLs and explicit meeting IDs.
func FindMeetingLink(p *page.Page) *types.MeetingInfo {
	var found *types.MeetingInfo

	p.EachLink(func(href, text string) bool {
		if len(href) < 10 {
			return true
		}
		if socialDomainRe.MatchString(href) {
			return true
		}
		if info := matchLinkRules(href, text); info != nil {
			found = info
			return false
		}
		return true
	})
	if found != nil {
		return found
	}

	p.VisibleBlocks(func(text string) bool {
		if info := FindMeetingLinkInText(text); info != nil {
			found = info
			return false
		}
		return true
	})
	return found
}

// FindMeetingLinkInText scans bare text for literal platform URLs or an
// explicit "meeting id: <digits>" declaration. Used both as the page-level
// fallback and for selection-only sources.
func FindMeetingLinkInText(text string) *types.MeetingInfo {
	for _, rule := range textMeetingRes {
		if url := rule.re.FindString(text); url != "" {
			return &types.MeetingInfo{
				Platform:   rule.platform,
				URL:        url,
				Confidence: types.ConfidenceHigh,
			}
		}
	}

	// A 9+ digit meeting ID is enough to synthesize a Zoom join URL.
	if m := meetingIDRe.FindStringSubmatch(text); m != nil {
		return &types.MeetingInfo{
			Platform:   types.PlatformZoom,
			URL:        fmt.Sprintf("https://zoom.us/j/%s", m[1]),
			Confidence: types.ConfidenceMedium,
		}
	}
	return nil
}

func matchLinkRules(href, text string) *types.MeetingInfo {
	for _, rule := range meetingLinkRules {
		if !rule.re.MatchString(href) {
			continue
		}
		switch rule.confidence {
		case types.ConfidenceHigh:
			// Vendor URL shapes are trusted regardless of link text.
		case types.ConfidenceMedium:
			if !joinAttendRe.MatchString(text) {
				continue
			}
		case types.ConfidenceLow:
			if !joinRegisterRe.MatchString(text) {
				continue
			}
		}
		return &types.MeetingInfo{
			Platform:     rule.platform,
			URL:          href,
			Confidence:   rule.confidence,
			Registration: registrationRe.MatchString(href),
		}
	}
	return nil
}
