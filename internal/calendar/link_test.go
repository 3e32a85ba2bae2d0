package calendar

import (
	"net/url"
	"testing"
	"time"

	"github.com/eventscribe/backend/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedFormatter() *Formatter {
	return NewFormatterAt(func() time.Time {
		return time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)
	})
}

func decode(t *testing.T, link string) url.Values {
	t.Helper()
	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "calendar.google.com", u.Host)
	assert.Equal(t, "/calendar/render", u.Path)
	return u.Query()
}

func TestDeepLinkTimedEvent(t *testing.T) {
	q := decode(t, fixedFormatter().DeepLink(types.Event{
		Title: "Morning Standup",
		Date:  "2024-01-10",
		Time:  "09:30",
	}))

	assert.Equal(t, "TEMPLATE", q.Get("action"))
	assert.Equal(t, "Morning Standup", q.Get("text"))
	assert.Equal(t, "20240110T093000/20240110T103000", q.Get("dates"))
}

func TestDeepLinkAllDayEvent(t *testing.T) {
	q := decode(t, fixedFormatter().DeepLink(types.Event{
		Title: "Conference Day",
		Date:  "2024-06-01",
	}))
	assert.Equal(t, "20240601/20240601", q.Get("dates"))
}

func TestDeepLinkEndHourWrapsMidnight(t *testing.T) {
	q := decode(t, fixedFormatter().DeepLink(types.Event{
		Title: "Late Show",
		Date:  "2024-06-01",
		Time:  "23:15",
	}))
	assert.Equal(t, "20240601T231500/20240601T001500", q.Get("dates"))
}

func TestDeepLinkNoDateDefaultsToToday(t *testing.T) {
	q := decode(t, fixedFormatter().DeepLink(types.Event{Title: "Sometime"}))
	assert.Equal(t, "20240110/20240110", q.Get("dates"))
}

func TestDeepLinkNonISODateNormalized(t *testing.T) {
	q := decode(t, fixedFormatter().DeepLink(types.Event{
		Title: "Legacy Date",
		Date:  "25 December 2024",
	}))
	assert.Equal(t, "20241225/20241225", q.Get("dates"))
}

func TestDeepLinkMalformedDatePassesThrough(t *testing.T) {
	q := decode(t, fixedFormatter().DeepLink(types.Event{
		Title: "Mystery",
		Date:  "next full moon",
	}))
	assert.Equal(t, "next full moon/next full moon", q.Get("dates"))
}

func TestDeepLinkDefaultTitle(t *testing.T) {
	q := decode(t, fixedFormatter().DeepLink(types.Event{Date: "2024-01-10"}))
	assert.Equal(t, DefaultTitle, q.Get("text"))
}

func TestDeepLinkDescriptionFallsBackToText(t *testing.T) {
	q := decode(t, fixedFormatter().DeepLink(types.Event{
		Title: "Notes Only",
		Text:  "raw selected text",
	}))
	assert.Equal(t, "raw selected text", q.Get("details"))
}

func TestDeepLinkMeetBecomesConference(t *testing.T) {
	link := "https://meet.google.com/abc-defg-hij"
	q := decode(t, fixedFormatter().DeepLink(types.Event{
		Title:       "Video Sync",
		Date:        "2024-01-10",
		MeetingLink: link,
		Description: "Agenda to follow\n\nMeeting Link: " + link,
		Location:    "Online Event (Meet)",
	}))

	assert.Equal(t, "meet.google.com_abcdefghij", q.Get("add"))
	assert.Equal(t, "Agenda to follow", q.Get("details"))
	assert.NotContains(t, q.Get("details"), link)
	assert.Equal(t, "Online Event (Meet)", q.Get("location"))
}

func TestDeepLinkMeetScrubbedFromHybridLocation(t *testing.T) {
	link := "https://meet.google.com/abc-defg-hij"
	q := decode(t, fixedFormatter().DeepLink(types.Event{
		Title:       "Hybrid Townhall",
		Date:        "2024-01-10",
		MeetingLink: link,
		Location:    "Main Hall | " + link,
	}))
	assert.Equal(t, "Main Hall", q.Get("location"))
}

func TestDeepLinkBareOnlineLocationBecomesGoogleMeet(t *testing.T) {
	link := "https://meet.google.com/abc-defg-hij"
	q := decode(t, fixedFormatter().DeepLink(types.Event{
		Title:       "Remote Catchup",
		Date:        "2024-01-10",
		MeetingLink: link,
		Location:    "Online Event | " + link,
	}))
	assert.Equal(t, "Google Meet", q.Get("location"))
}

func TestDeepLinkNonMeetLinkGoesToDetails(t *testing.T) {
	link := "https://zoom.us/j/987654321"
	q := decode(t, fixedFormatter().DeepLink(types.Event{
		Title:       "Zoom Call",
		Date:        "2024-01-10",
		MeetingLink: link,
		Description: "Agenda to follow",
	}))

	assert.Empty(t, q.Get("add"))
	assert.Equal(t, "Agenda to follow\n\nMeeting Link: "+link, q.Get("details"))
}

func TestDeepLinkNonMeetLinkNotDuplicated(t *testing.T) {
	link := "https://zoom.us/j/987654321"
	q := decode(t, fixedFormatter().DeepLink(types.Event{
		Title:       "Zoom Call",
		Date:        "2024-01-10",
		MeetingLink: link,
		Description: "Join here: " + link,
	}))
	assert.Equal(t, "Join here: "+link, q.Get("details"))
}
