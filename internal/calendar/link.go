package calendar

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/eventscribe/backend/internal/shared/dates"
	"github.com/eventscribe/backend/internal/shared/types"
)

const (
	baseURL = "https://calendar.google.com/calendar/render"

	// DefaultTitle fills in when an event has no resolved title; an empty
	// text parameter renders poorly in the calendar UI.
	DefaultTitle = "New Event"
)

var (
	isoDateRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockRe     = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	meetCodeRe  = regexp.MustCompile(`(?i)meet\.google\.com/([a-z]+-[a-z]+-[a-z]+)`)
	meetDomain  = "meet.google.com"
	linkSuffix  = " | "
	onlineLabel = "Online Event"
)

// Formatter builds calendar deep links. The clock is injectable so dateless
// events resolve deterministically under test.
type Formatter struct {
	now func() time.Time
}

// NewFormatter returns a Formatter on the wall clock.
func NewFormatter() *Formatter {
	return &Formatter{now: time.Now}
}

// NewFormatterAt pins the formatter's clock.
func NewFormatterAt(now func() time.Time) *Formatter {
	return &Formatter{now: now}
}

// DeepLink renders an event as a Google Calendar template URL. Every field
// is best-effort: a malformed date passes through literally rather than
// failing the whole link, a missing date means an all-day event today, and
// a missing title gets a generic placeholder.
func (f *Formatter) DeepLink(ev types.Event) string {
	title := ev.Title
	if title == "" {
		title = DefaultTitle
	}

	location := ev.Location
	description := ev.Description
	if description == "" {
		description = ev.Text
	}

	// Google Meet links ride along as a native conference via the add
	// parameter; every other vendor's link goes into the details text.
	conference := ""
	if ev.HasMeetingLink() && strings.Contains(ev.MeetingLink, meetDomain) {
		if m := meetCodeRe.FindStringSubmatch(ev.MeetingLink); m != nil {
			conference = meetDomain + "_" + strings.ReplaceAll(m[1], "-", "")
			location = scrubMeetLocation(location, ev.MeetingLink)
			description = scrubMeetDescription(description, ev.MeetingLink)
		}
	}
	if ev.HasMeetingLink() && conference == "" && !strings.Contains(description, ev.MeetingLink) {
		if description != "" {
			description += "\n\n"
		}
		description += "Meeting Link: " + ev.MeetingLink
	}

	params := url.Values{}
	params.Set("action", "TEMPLATE")
	params.Set("text", title)
	params.Set("dates", f.datesParam(ev))
	params.Set("location", location)
	params.Set("details", description)
	if conference != "" {
		params.Set("add", conference)
	}
	return baseURL + "?" + params.Encode()
}

// datesParam renders the dates query parameter: a one-hour timed range when
// the event carries a start time, otherwise an all-day start/start range.
func (f *Formatter) datesParam(ev types.Event) string {
	dateStr := ev.Date
	if dateStr == "" {
		dateStr = dates.ISODate(f.now())
	} else if !isoDateRe.MatchString(dateStr) {
		// Best effort; an unparsable date passes through unchanged.
		if t, _, err := dates.Parse(dateStr); err == nil {
			dateStr = dates.ISODate(t)
		}
	}
	compact := strings.ReplaceAll(dateStr, "-", "")

	m := clockRe.FindStringSubmatch(ev.Time)
	if m == nil {
		return compact + "/" + compact
	}

	hour, _ := strconv.Atoi(m[1])
	if hour > 23 {
		return compact + "/" + compact
	}
	endHour := (hour + 1) % 24
	return fmt.Sprintf("%sT%02d%s00/%sT%02d%s00", compact, hour, m[2], compact, endHour, m[2])
}

// scrubMeetDescription drops the redundant "Meeting Link" line once the
// link is attached as a native conference.
func scrubMeetDescription(description, link string) string {
	description = strings.ReplaceAll(description, "\n\nMeeting Link: "+link, "")
	description = strings.ReplaceAll(description, "Meeting Link: "+link, "")
	return strings.TrimSpace(strings.ReplaceAll(description, link, ""))
}

// scrubMeetLocation removes the now-redundant Meet link from a hybrid
// location, collapsing a bare "Online Event" label to "Google Meet".
func scrubMeetLocation(location, link string) string {
	if !strings.Contains(location, link) {
		return location
	}
	location = strings.ReplaceAll(location, linkSuffix+link, "")
	location = strings.TrimSpace(strings.ReplaceAll(location, link, ""))
	if location == onlineLabel {
		return "Google Meet"
	}
	return location
}
