package extract

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSelectionWeekdayDateTime(t *testing.T) {
	facts := ParseSelection("Sun, 2 Nov, 10:00\nLocation: Main Hall", testNow)
	assert.Equal(t, "2024-11-02", facts.Date)
	assert.Equal(t, "10:00", facts.Time)
	assert.Equal(t, "Main Hall", facts.Location)
	assert.Empty(t, facts.Title)
}

func TestParseSelectionWeekdayDateTimeAllMonths(t *testing.T) {
	months := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	for i, month := range months {
		facts := ParseSelection(fmt.Sprintf("Fri, 7 %s, 19:30", month), testNow)
		assert.Equal(t, fmt.Sprintf("2024-%02d-07", i+1), facts.Date, month)
		assert.Equal(t, "19:30", facts.Time, month)
	}
}

func TestParseSelectionWeekdayAtTime(t *testing.T) {
	// testNow is Monday, 1 January 2024.
	tests := []struct {
		text     string
		wantDate string
		wantTime string
	}{
		{"Wednesday at 15:00", "2024-01-03", "15:00"},
		{"Sunday at 9:05", "2024-01-07", "09:05"},
		// Matching weekday resolves to today, not a week ahead.
		{"Monday at 18:00", "2024-01-01", "18:00"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			facts := ParseSelection(tt.text, testNow)
			assert.Equal(t, tt.wantDate, facts.Date)
			assert.Equal(t, tt.wantTime, facts.Time)
		})
	}
}

func TestParseSelectionDayMonthYear(t *testing.T) {
	facts := ParseSelection("25 December 2024", testNow)
	assert.Equal(t, "2024-12-25", facts.Date)
	assert.Empty(t, facts.Time)

	facts = ParseSelection("25 December 2024, doors 18:30", testNow)
	assert.Equal(t, "2024-12-25", facts.Date)
	assert.Equal(t, "18:30", facts.Time)
}

func TestParseSelectionBareTimeFallback(t *testing.T) {
	facts := ParseSelection("Starts 9:45", testNow)
	assert.Empty(t, facts.Date)
	assert.Equal(t, "09:45", facts.Time)
}

func TestParseSelectionLocationLabel(t *testing.T) {
	facts := ParseSelection("Where: The Grand Hotel\n25 December 2024", testNow)
	assert.Equal(t, "The Grand Hotel", facts.Location)
	assert.Equal(t, "2024-12-25", facts.Date)
}

func TestParseSelectionTitleLine(t *testing.T) {
	facts := ParseSelection("Team Sync Meetup\nWed, 3 Jan, 15:00\nLocation: Room 4", testNow)
	assert.Equal(t, "Team Sync Meetup", facts.Title)
	assert.Equal(t, "2024-01-03", facts.Date)
	assert.Equal(t, "Room 4", facts.Location)
}

func TestParseSelectionTitleSkipsFragments(t *testing.T) {
	// Short lines, schedule fragments and label lines never become titles.
	facts := ParseSelection("Expo\n12:30\nAn evening of jazz", testNow)
	assert.Equal(t, "An evening of jazz", facts.Title)
}

func TestParseSelectionEmpty(t *testing.T) {
	facts := ParseSelection("", testNow)
	assert.Empty(t, facts.Title)
	assert.Empty(t, facts.Date)
	assert.Empty(t, facts.Time)
	assert.Empty(t, facts.Location)
}
