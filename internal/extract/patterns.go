package extract

import (
	"regexp"

	"github.com/eventscribe/backend/internal/shared/types"
)

// Static matcher configuration. Everything here is immutable after init;
// matchers take their tables from this file instead of building them per
// call. Scoring weights and thresholds are a fixed policy; tune them only
// as a deliberate product decision, not ad hoc.

// Classifier scoring weights and thresholds.
const (
	weightStrongPhrase   = 2
	weightWeakKeyword    = 1
	weightClassMarker    = 2
	weightMetaAttendance = 3

	onlineThreshold   = 3
	inPersonThreshold = 2
)

// Strong online indicator phrases, matched as substrings of lowercased
// page text.
var onlineIndicators = []string{
	"online event", "virtual event", "webinar", "zoom meeting", "teams meeting",
	"remote attendance", "web conference", "virtual conference",
}

// Weak online keywords, matched on word boundaries.
var onlineKeywords = []string{
	"virtual", "online", "zoom", "teams", "meet", "web", "remote",
}

// In-person indicator phrases.
var inPersonIndicators = []string{
	"in-person only", "physical attendance", "venue address",
	"parking available", "directions to venue",
}

// onlineClassSelector matches online-styled CSS class markers.
const onlineClassSelector = `.online-event, .virtual-event, [class*="online-"], [class*="virtual-"]`

// attendanceMetaSelector matches machine-readable attendance-mode metadata.
const attendanceMetaSelector = `meta[property="event:type"], [itemprop="eventAttendanceMode"]`

var (
	onlineModeRe   = regexp.MustCompile(`(?i)online|virtual|remote`)
	inPersonModeRe = regexp.MustCompile(`(?i)in-?person|physical|offline`)
)

// linkRule is one confidence-tiered URL pattern for meeting links.
type linkRule struct {
	platform   types.Platform
	re         *regexp.Regexp
	confidence types.Confidence
}

// meetingLinkRules in evaluation order. High-confidence vendor shapes are
// always accepted; medium requires a join/attend keyword in the link text;
// low requires an explicit join/register keyword.
var meetingLinkRules = []linkRule{
	{types.PlatformZoom, regexp.MustCompile(`(?i)zoom\.us/(j|w|webinar|meeting|register)/([a-zA-Z0-9?=_-]+)`), types.ConfidenceHigh},
	{types.PlatformTeams, regexp.MustCompile(`(?i)teams\.microsoft\.com/l/(meetup-join|meet|meeting)`), types.ConfidenceHigh},
	{types.PlatformMeet, regexp.MustCompile(`(?i)meet\.google\.com/[a-z]+-[a-z]+-[a-z]+`), types.ConfidenceHigh},
	{types.PlatformWebex, regexp.MustCompile(`(?i)webex\.com/(meet|j|join|meeting)`), types.ConfidenceHigh},
	{types.PlatformGoToMeeting, regexp.MustCompile(`(?i)goto(meeting|webinar)\.com`), types.ConfidenceHigh},
	{types.PlatformConference, regexp.MustCompile(`(?i)(meetup\.com|eventbrite\.[a-z.]+)/.+/(events?|registration)`), types.ConfidenceMedium},
	{types.PlatformConference, regexp.MustCompile(`(?i)^https?://`), types.ConfidenceLow},
}

// registrationRe flags join URLs that lead to a registration page rather
// than the meeting itself.
var registrationRe = regexp.MustCompile(`(?i)/(register|registration)\b`)

// socialDomainRe excludes known social networks from link matching; their
// "join" buttons are never meeting links.
var socialDomainRe = regexp.MustCompile(`(?i)facebook\.com|twitter\.com|instagram\.com|linkedin\.com`)

// Link-text keyword tiers.
var (
	joinAttendRe   = regexp.MustCompile(`(?i)\b(join|attend|rsvp)\b`)
	joinRegisterRe = regexp.MustCompile(`(?i)\b(join|register|webinar)\b`)
)

// Literal meeting URLs searched for inside free text, checked in order.
var textMeetingRes = []struct {
	platform types.Platform
	re       *regexp.Regexp
}{
	{types.PlatformMeet, regexp.MustCompile(`(?i)https://meet\.google\.com/[a-z]+-[a-z]+-[a-z]+`)},
	{types.PlatformZoom, regexp.MustCompile(`(?i)https://([a-z0-9.-]+\.)?zoom\.us/(j|w|webinar|meeting)/[a-zA-Z0-9?=_-]+`)},
	{types.PlatformTeams, regexp.MustCompile(`(?i)https://teams\.microsoft\.com/l/(meetup-join|meet|meeting)[^\s]*`)},
}

// meetingIDRe matches "meeting id: <9+ digits>"; the numeric ID synthesizes
// a Zoom join URL as a convenience.
var meetingIDRe = regexp.MustCompile(`(?i)meeting\s+id:?\s*(\d{9,})`)

// Date and time patterns.
var (
	// "Sun, 2 Nov" optionally followed by ", 10:00"
	weekdayDateTimeRe = regexp.MustCompile(`(?i)\b(?:Mon|Tue|Wed|Thu|Fri|Sat|Sun),?\s*(\d{1,2})\s*(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*,?\s*(\d{1,2}):(\d{2})\b`)
	weekdayDateRe     = regexp.MustCompile(`(?i)\b(?:Mon|Tue|Wed|Thu|Fri|Sat|Sun),\s*(\d{1,2})\s*(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)`)

	// "Wednesday at 15:00", resolved to the next occurrence of that weekday
	weekdayAtTimeRe = regexp.MustCompile(`(?i)\b(Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)\s+at\s+(\d{1,2}):(\d{2})\b`)

	// "25 December 2024"
	dayMonthYearRe = regexp.MustCompile(`(?i)\b(\d{1,2})\s+(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+(\d{4})\b`)

	// D/M/Y with 2 or 4 digit year and /, - or . separators
	numericDateRe = regexp.MustCompile(`(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{4}|\d{2})`)

	// bare clock time with optional am/pm
	clockTimeRe = regexp.MustCompile(`(?i)\b(\d{1,2}):(\d{2})(?:\s*(am|pm))?\b`)
	bareTimeRe  = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
)

// Element class selectors for date/time-bearing elements.
const (
	dateClassSelector = ".date, .event-date, .datetime"
	timeClassSelector = ".time, .event-time"

	// machine-readable start timestamps
	datetimeSelector = `[itemprop="startDate"], [datetime], time[datetime]`
)

// Location patterns.
var (
	// regional postal-code shapes: UK, US, Canada
	postalCodeRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b[A-Z]{1,2}\d{1,2}[A-Z]?\s*\d[A-Z]{2}\b`),
		regexp.MustCompile(`\b\d{5}(-\d{4})?\b`),
		regexp.MustCompile(`(?i)\b[A-Z]\d[A-Z]\s*\d[A-Z]\d\b`),
	}

	// "Location: Main Hall" style labels, value bounded by newline or punctuation
	locationLabelRe = regexp.MustCompile(`(?i)\b(?:location|venue|place|at|where)\b[\s:]+([^\n,.]+)`)

	// trailing map-widget artifacts stripped from address text
	showMapRe       = regexp.MustCompile(`(?i)Show map.*$`)
	getDirectionsRe = regexp.MustCompile(`(?i)Get directions.*$`)
)

// locationClassSelectors tried in priority order.
var locationClassSelectors = []string{
	".location-info__address",
	".address-info",
	".venue-address",
	".location, .venue, .place, .event-location",
}

// structuredAddressXPath selects postal-address containers in microdata
// markup; sub-fields are assembled from itemprop children.
const structuredAddressXPath = `//*[contains(@itemtype, "PostalAddress")] | //*[@itemprop="address"] | //*[@itemprop="location"]`

// Title and description patterns.
var (
	// trailing "| Site", "- Site", ": Site" and em-dash suffixes on titles
	titleSuffixRe = regexp.MustCompile(`\s*[|\-:—].*$`)
)

const (
	titleClassSelector = ".event-title, .event-name, .page-title"
	descClassSelector  = `.event-description, .description, .about, .event-details, .content, [class*="description"]`

	descMetaMinLen  = 20
	descClassMinLen = 50
	descClassMaxLen = 5000
	descParaMinLen  = 100
	descParaMaxLen  = 3000

	// selections shorter than this are eligible for replacement by a richer
	// page-derived description
	shortSelectionLen = 50
)
