package extract

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/eventscribe/backend/internal/shared/dates"
)

// SelectionFacts holds what could be read directly out of a user's text
// selection. Fields are "" when the selection carries no signal for them.
type SelectionFacts struct {
	Title    string
	Date     string
	Time     string
	Location string
}

var (
	selectionSkipRe    = regexp.MustCompile(`(?i)\b(date|time|location|when|where)\b`)
	selectionBareTime  = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
	selectionWeekdayRe = regexp.MustCompile(`(?i)^(Mon|Tue|Wed|Thu|Fri|Sat|Sun)`)
)

// ParseSelection reads date, time, location and a candidate title out of
// free selected text. Relative weekday phrases ("Wednesday at 15:00")
// resolve to the next occurrence of that weekday from now.
func ParseSelection(text string, now time.Time) SelectionFacts {
	var facts SelectionFacts

	switch {
	case parseWeekdayDateTime(text, now, &facts):
	case parseWeekdayAtTime(text, now, &facts):
	case parseDayMonthYear(text, &facts):
	default:
		if m := bareTimeRe.FindStringSubmatch(text); m != nil {
			facts.Time = zeroPad(m[1]) + ":" + m[2]
		}
	}

	if m := locationLabelRe.FindStringSubmatch(text); m != nil {
		facts.Location = strings.TrimSpace(m[1])
	}

	facts.Title = selectionTitle(text)
	return facts
}

// parseWeekdayDateTime handles "Sun, 2 Nov, 10:00" style lines; year comes
// from now.
func parseWeekdayDateTime(text string, now time.Time, facts *SelectionFacts) bool {
	m := weekdayDateTimeRe.FindStringSubmatch(text)
	if m == nil {
		return false
	}
	month, ok := dates.MonthNumber(m[2])
	if !ok {
		return false
	}
	facts.Date = fmt.Sprintf("%d-%s-%s", now.Year(), month, zeroPad(m[1]))
	facts.Time = zeroPad(m[3]) + ":" + m[4]
	return true
}

// parseWeekdayAtTime handles "Wednesday at 15:00": the date is the next
// occurrence of that weekday, today included when the weekday matches.
func parseWeekdayAtTime(text string, now time.Time, facts *SelectionFacts) bool {
	m := weekdayAtTimeRe.FindStringSubmatch(text)
	if m == nil {
		return false
	}
	target, ok := weekdayByName(m[1])
	if !ok {
		return false
	}
	daysAhead := (int(target) - int(now.Weekday()) + 7) % 7
	facts.Date = dates.ISODate(now.UTC().AddDate(0, 0, daysAhead))
	facts.Time = zeroPad(m[2]) + ":" + m[3]
	return true
}

func parseDayMonthYear(text string, facts *SelectionFacts) bool {
	m := dayMonthYearRe.FindStringSubmatch(text)
	if m == nil {
		return false
	}
	month, ok := dates.MonthNumber(m[2])
	if !ok {
		return false
	}
	facts.Date = fmt.Sprintf("%s-%s-%s", m[3], month, zeroPad(m[1]))
	if t := bareTimeRe.FindStringSubmatch(text); t != nil {
		facts.Time = zeroPad(t[1]) + ":" + t[2]
	}
	return true
}

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

func weekdayByName(name string) (time.Weekday, bool) {
	d, ok := weekdays[strings.ToLower(name)]
	return d, ok
}

// selectionTitle takes the first line that reads like a headline: not too
// short, not too long, and not a date/time/location fragment.
func selectionTitle(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) <= 5 || len(line) >= 100 {
			continue
		}
		if selectionSkipRe.MatchString(line) {
			continue
		}
		if selectionBareTime.MatchString(line) {
			continue
		}
		if selectionWeekdayRe.MatchString(line) {
			continue
		}
		return line
	}
	return ""
}
