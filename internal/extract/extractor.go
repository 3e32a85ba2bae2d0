package extract

import (
	"strings"
	"time"

	"github.com/eventscribe/backend/internal/page"
	"github.com/eventscribe/backend/internal/shared/types"
)

// Engine orchestrates the field matchers into a canonical event record.
// Extraction is pure and single-pass: a failing matcher yields an empty
// field and never halts the rest, so running twice on the same source
// yields an identical event.
type Engine struct {
	now func() time.Time
}

// Source is one extraction input: a parsed page, a raw text selection, or
// both. With both, facts parsed directly out of the selection win over
// page-wide inference.
type Source struct {
	Page      *page.Page
	Selection string
}

// NewEngine returns an Engine using the wall clock for relative-date
// resolution.
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// NewEngineAt pins the engine's clock, for deterministic relative dates.
func NewEngineAt(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// Extract merges matcher results into a canonical event. Merge order:
// selection facts seed the record, page matchers fill the gaps, the
// classifier gates meeting-link extraction, and location/description are
// reconciled with any link found.
func (e *Engine) Extract(src Source) types.Event {
	now := e.now()
	selection := strings.TrimSpace(src.Selection)

	var ev types.Event
	var facts SelectionFacts
	if selection != "" {
		ev.Text = selection
		ev.Description = selection
		facts = ParseSelection(selection, now)
	}

	if src.Page == nil {
		return e.finishTextOnly(ev, facts, selection)
	}

	ev.Title = facts.Title
	if ev.Title == "" {
		ev.Title = FindTitle(src.Page)
	}

	ev.Date = facts.Date
	if ev.Date == "" {
		ev.Date = FindDate(src.Page, now)
	}
	ev.Time = facts.Time
	if ev.Time == "" {
		ev.Time = FindTime(src.Page)
	}
	ev.Location = facts.Location

	// In-person pages skip meeting-link extraction entirely; unrelated
	// "join" buttons on them are reliable false positives.
	status := Classify(src.Page)
	var meeting *types.MeetingInfo
	if status != types.StatusInPerson {
		meeting = FindMeetingLink(src.Page)
	}
	if meeting != nil {
		applyMeeting(&ev, meeting)
	}

	if ev.Location == "" {
		ev.Location = FindLocation(src.Page)
	}
	mergeHybridLocation(&ev)

	// A bare selection makes a poor description; replace it with page prose
	// when that is strictly richer.
	if len(ev.Description) < shortSelectionLen {
		if desc := FindDescription(src.Page); len(desc) > len(ev.Description) {
			ev.Description = desc
			if ev.HasMeetingLink() {
				appendMeetingLink(&ev, ev.MeetingLink)
			}
		}
	}

	normalize(&ev)
	return ev
}

// ExtractText handles selection-only sources, where no page is available
// and only the lightweight text matchers apply.
func (e *Engine) ExtractText(selection string) types.Event {
	return e.Extract(Source{Selection: selection})
}

func (e *Engine) finishTextOnly(ev types.Event, facts SelectionFacts, selection string) types.Event {
	ev.Title = facts.Title
	ev.Date = facts.Date
	ev.Time = facts.Time
	ev.Location = facts.Location

	if ClassifyText(selection) != types.StatusInPerson {
		if meeting := FindMeetingLinkInText(selection); meeting != nil {
			applyMeeting(&ev, meeting)
		}
	}
	mergeHybridLocation(&ev)
	normalize(&ev)
	return ev
}

// applyMeeting folds a discovered meeting link into the event: the record
// goes online, the link lands in the description once, and the location is
// labeled as an online event with the vendor name when known.
func applyMeeting(ev *types.Event, meeting *types.MeetingInfo) {
	ev.MeetingLink = meeting.URL
	ev.IsOnline = true
	appendMeetingLink(ev, meeting.URL)

	if ev.Location == "" {
		if meeting.Platform == types.PlatformConference {
			ev.Location = "Online Event"
		} else {
			ev.Location = "Online Event (" + string(meeting.Platform) + ")"
		}
	}
}

// appendMeetingLink adds "Meeting Link: <url>" to the description unless
// the link is already present.
func appendMeetingLink(ev *types.Event, url string) {
	if strings.Contains(ev.Description, url) {
		return
	}
	if ev.Description != "" {
		ev.Description += "\n\n"
	}
	ev.Description += "Meeting Link: " + url
}

// mergeHybridLocation concatenates a physical location with the meeting
// link for hybrid events. Online-labeled locations and locations already
// carrying the link are left alone, so the link never appears twice.
func mergeHybridLocation(ev *types.Event) {
	if !ev.HasLocation() || !ev.HasMeetingLink() {
		return
	}
	if strings.HasPrefix(ev.Location, "Online Event") {
		return
	}
	if strings.Contains(ev.Location, ev.MeetingLink) {
		return
	}
	ev.Location = ev.Location + " | " + ev.MeetingLink
}

func normalize(ev *types.Event) {
	ev.Title = strings.TrimSpace(ev.Title)
	ev.Date = strings.TrimSpace(ev.Date)
	ev.Time = strings.TrimSpace(ev.Time)
	ev.Location = strings.TrimSpace(ev.Location)
	ev.MeetingLink = strings.TrimSpace(ev.MeetingLink)
	ev.Description = strings.TrimSpace(ev.Description)
}
