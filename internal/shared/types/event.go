package types

// OnlineStatus is the three-valued result of the attendance-mode classifier.
// A page is only treated as online when the classifier is positively sure;
// Unknown still allows meeting-link extraction to run.
type OnlineStatus int

const (
	StatusUnknown OnlineStatus = iota
	StatusOnline
	StatusInPerson
)

// String returns a human-readable status label.
func (s OnlineStatus) String() string {
	switch s {
	case StatusOnline:
		return "online"
	case StatusInPerson:
		return "in_person"
	default:
		return "unknown"
	}
}

// Platform identifies a video-conferencing vendor.
type Platform string

const (
	PlatformZoom        Platform = "Zoom"
	PlatformTeams       Platform = "Teams"
	PlatformMeet        Platform = "Meet"
	PlatformWebex       Platform = "Webex"
	PlatformGoToMeeting Platform = "GoToMeeting"

	// PlatformConference is the generic fallback for links that look like a
	// meeting join URL but belong to no known vendor.
	PlatformConference Platform = "Conference"
)

// Confidence tiers for meeting-link URL rules. High-confidence rules are
// always accepted; lower tiers additionally require join/register keywords
// in the link text.
type Confidence int

const (
	ConfidenceLow Confidence = iota
	ConfidenceMedium
	ConfidenceHigh
)

// MeetingInfo describes a discovered meeting link.
type MeetingInfo struct {
	Platform     Platform   `json:"platform"`
	URL          string     `json:"url"`
	Confidence   Confidence `json:"confidence"`
	Registration bool       `json:"registration,omitempty"`
}

// Event is the canonical extraction output. Every field is best-effort: an
// unresolved field is the zero value, never an error. The record is built
// fresh on each extraction and is immutable once handed to the calendar
// formatter.
type Event struct {
	Title       string `json:"title"`
	Date        string `json:"date"` // YYYY-MM-DD or ""
	Time        string `json:"time"` // HH:MM 24-hour or ""
	Location    string `json:"location"`
	MeetingLink string `json:"meetingLink"`
	IsOnline    bool   `json:"isOnline"`
	Description string `json:"description"`

	// Text is the raw user selection the extraction started from, if any.
	Text string `json:"text"`
}

// HasTitle reports whether a title was resolved.
func (e *Event) HasTitle() bool { return e.Title != "" }

// HasDate reports whether a date was resolved.
func (e *Event) HasDate() bool { return e.Date != "" }

// HasTime reports whether a start time was resolved (all-day otherwise).
func (e *Event) HasTime() bool { return e.Time != "" }

// HasLocation reports whether a location was resolved.
func (e *Event) HasLocation() bool { return e.Location != "" }

// HasMeetingLink reports whether a meeting link was found.
func (e *Event) HasMeetingLink() bool { return e.MeetingLink != "" }

// Complete reports whether the event carries the fields required to submit
// it to a calendar. Missing optional fields never block extraction, only
// the final submit.
func (e *Event) Complete() bool {
	return e.HasTitle() && e.HasDate()
}
