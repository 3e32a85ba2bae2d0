package extract

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/eventscribe/backend/internal/page"
	"github.com/eventscribe/backend/internal/shared/dates"
)

// Date and time matchers. Each field is resolved by an ordered strategy
// chain; the first strategy to produce a value wins and date and time may
// come from different strategies. A miss is "", never an error.

type dateStrategy func(p *page.Page, now time.Time) string

type timeStrategy func(p *page.Page) string

var dateStrategies = []dateStrategy{
	dateFromMachineReadable,
	dateFromJSONLD,
	dateFromClassedElements,
	dateFromVisibleText,
}

var timeStrategies = []timeStrategy{
	timeFromMachineReadable,
	timeFromClassedElements,
	timeFromVisibleText,
}

// FindDate returns the most likely event date as YYYY-MM-DD, or "". Text
// patterns without an explicit year resolve against now's year.
func FindDate(p *page.Page, now time.Time) string {
	for _, strategy := range dateStrategies {
		if date := strategy(p, now); date != "" {
			return date
		}
	}
	return ""
}

// FindTime returns the most likely start time as HH:MM 24-hour, or "".
func FindTime(p *page.Page) string {
	for _, strategy := range timeStrategies {
		if t := strategy(p); t != "" {
			return t
		}
	}
	return ""
}

// dateFromMachineReadable reads datetime/startDate attributes and
// normalizes the timestamp's date component in UTC.
func dateFromMachineReadable(p *page.Page, _ time.Time) string {
	raw := machineReadableTimestamp(p)
	if raw == "" {
		return ""
	}
	t, _, err := dates.Parse(raw)
	if err != nil {
		return ""
	}
	return dates.ISODate(t)
}

// timeFromMachineReadable reads the clock component of datetime/startDate
// attributes when the timestamp carries one.
func timeFromMachineReadable(p *page.Page) string {
	raw := machineReadableTimestamp(p)
	if raw == "" {
		return ""
	}
	t, hasTime, err := dates.Parse(raw)
	if err != nil || !hasTime {
		return ""
	}
	return dates.ClockTime(t)
}

func machineReadableTimestamp(p *page.Page) string {
	if v := p.Attr(datetimeSelector, "datetime"); v != "" {
		return v
	}
	return p.Attr(datetimeSelector, "content")
}

// dateFromJSONLD reads startDate out of JSON-LD event markup.
func dateFromJSONLD(p *page.Page, _ time.Time) string {
	for _, item := range p.JSONLD() {
		start, ok := item["startDate"].(string)
		if !ok || start == "" {
			continue
		}
		if t, _, err := dates.Parse(start); err == nil {
			return dates.ISODate(t)
		}
	}
	return ""
}

// dateFromClassedElements parses D/M/Y out of common date-bearing classes,
// expanding two-digit years to 20YY.
func dateFromClassedElements(p *page.Page, _ time.Time) string {
	text := p.First(dateClassSelector)
	if text == "" {
		return ""
	}
	m := numericDateRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return fmt.Sprintf("%s-%s-%s", dates.ExpandYear(m[3]), zeroPad(m[2]), zeroPad(m[1]))
}

// dateFromVisibleText scans paragraph-like elements for a
// "<Weekday>, <Day> <Month>" pattern, resolved against the current year.
func dateFromVisibleText(p *page.Page, now time.Time) string {
	var out string
	p.VisibleBlocks(func(text string) bool {
		m := weekdayDateRe.FindStringSubmatch(text)
		if m == nil {
			return true
		}
		month, ok := dates.MonthNumber(m[2])
		if !ok {
			return true
		}
		out = fmt.Sprintf("%d-%s-%s", now.Year(), month, zeroPad(m[1]))
		return false
	})
	return out
}

func timeFromClassedElements(p *page.Page) string {
	text := p.First(timeClassSelector)
	if text == "" {
		return ""
	}
	m := bareTimeRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return zeroPad(m[1]) + ":" + m[2]
}

// timeFromVisibleText scans for H:MM with optional am/pm and converts to a
// 24-hour clock (12am -> 00, pm adds 12 below noon).
func timeFromVisibleText(p *page.Page) string {
	var out string
	p.VisibleBlocks(func(text string) bool {
		if t := parseClockTime(text); t != "" {
			out = t
			return false
		}
		return true
	})
	return out
}

// parseClockTime extracts the first H:MM[am|pm] in text as HH:MM 24-hour.
func parseClockTime(text string) string {
	m := clockTimeRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	hour, err := strconv.Atoi(m[1])
	if err != nil || hour > 23 {
		return ""
	}
	switch strings.ToLower(m[3]) {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}
	return fmt.Sprintf("%02d:%s", hour, m[2])
}

func zeroPad(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
