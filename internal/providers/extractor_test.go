package providers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testExtractor() *Extractor {
	return NewExtractorAt(nil, func() time.Time {
		return time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	})
}

func TestExtractorEventTool(t *testing.T) {
	html := `<html><body>
		<h1>Community Meetup</h1>
		<time datetime="2024-03-15T18:30:00Z">15 March</time>
		<div class="event-location">Main Hall</div>
	</body></html>`

	result, err := testExtractor().Execute(context.Background(), "extractor.event", map[string]interface{}{
		"html": html,
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	ev := result.Data["event"].(map[string]interface{})
	assert.Equal(t, "Community Meetup", ev["title"])
	assert.Equal(t, "2024-03-15", ev["date"])
	assert.Equal(t, "18:30", ev["time"])
	assert.Equal(t, "Main Hall", ev["location"])
	assert.Equal(t, true, ev["complete"])
}

func TestExtractorTextTool(t *testing.T) {
	result, err := testExtractor().Execute(context.Background(), "extractor.text", map[string]interface{}{
		"selection": "Sun, 2 Nov, 10:00\nLocation: Main Hall",
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	ev := result.Data["event"].(map[string]interface{})
	assert.Equal(t, "2024-11-02", ev["date"])
	assert.Equal(t, "10:00", ev["time"])
	assert.Equal(t, "Main Hall", ev["location"])
}

func TestExtractorFieldTools(t *testing.T) {
	html := `<html><body>
		<h1>Product Webinar</h1>
		<time datetime="2024-03-15T18:30:00Z">15 March</time>
	</body></html>`
	params := map[string]interface{}{"html": html}
	ctx := context.Background()
	e := testExtractor()

	result, err := e.Execute(ctx, "extractor.title", params, nil)
	require.NoError(t, err)
	assert.Equal(t, "Product Webinar", result.Data["title"])

	result, err = e.Execute(ctx, "extractor.date", params, nil)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", result.Data["date"])

	result, err = e.Execute(ctx, "extractor.time", params, nil)
	require.NoError(t, err)
	assert.Equal(t, "18:30", result.Data["time"])
}

func TestExtractorMeetingTool(t *testing.T) {
	html := `<html><body><a href="https://zoom.us/j/9876543210">Join now</a></body></html>`
	result, err := testExtractor().Execute(context.Background(), "extractor.meeting", map[string]interface{}{
		"html": html,
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, true, result.Data["found"])
	assert.Equal(t, "Zoom", result.Data["platform"])
}

func TestExtractorClassifyTool(t *testing.T) {
	result, err := testExtractor().Execute(context.Background(), "extractor.classify", map[string]interface{}{
		"selection": "An online event, a virtual webinar for remote attendees",
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, "online", result.Data["status"])
}

func TestExtractorRequiresInput(t *testing.T) {
	result, err := testExtractor().Execute(context.Background(), "extractor.event", map[string]interface{}{}, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
}

func TestExtractorURLWithoutFetcher(t *testing.T) {
	result, err := testExtractor().Execute(context.Background(), "extractor.event", map[string]interface{}{
		"url": "https://example.com/event",
	}, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
	require.NotNil(t, result.Error)
	assert.Contains(t, *result.Error, "fetching not enabled")
}

func TestCalendarLinkTool(t *testing.T) {
	result, err := NewCalendar().Execute(context.Background(), "calendar.link", map[string]interface{}{
		"event": map[string]interface{}{
			"title": "Morning Standup",
			"date":  "2024-01-10",
			"time":  "09:30",
		},
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	link := result.Data["url"].(string)
	assert.Contains(t, link, "calendar.google.com/calendar/render")
	assert.Contains(t, link, "action=TEMPLATE")
	assert.Contains(t, link, "20240110T093000%2F20240110T103000")
}

func TestCalendarValidateTool(t *testing.T) {
	result, err := NewCalendar().Execute(context.Background(), "calendar.validate", map[string]interface{}{
		"event": map[string]interface{}{"time": "09:30"},
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, false, result.Data["complete"])
	assert.ElementsMatch(t, []string{"title", "date"}, result.Data["missing"])
}

func TestCalendarLinkRequiresEvent(t *testing.T) {
	result, err := NewCalendar().Execute(context.Background(), "calendar.link", map[string]interface{}{}, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
}
