package types

// ExtractRequest asks for event extraction from a page and/or a selection.
// Exactly one of HTML or URL supplies the page; Selection may accompany
// either or stand alone.
type ExtractRequest struct {
	HTML      string `json:"html,omitempty"`
	URL       string `json:"url,omitempty"`
	Selection string `json:"selection,omitempty"`
}

// LinkRequest asks for a calendar deep link for an extracted event.
type LinkRequest struct {
	Event Event `json:"event" binding:"required"`
}

// ExecuteRequest represents a service execution request
type ExecuteRequest struct {
	ToolID string                 `json:"tool_id" binding:"required"`
	Params map[string]interface{} `json:"params" binding:"required"`
}

// DiscoverRequest asks for services relevant to a free-text intent.
type DiscoverRequest struct {
	Intent string `json:"intent" binding:"required"`
	Limit  int    `json:"limit,omitempty"`
}

// WSMessage is the request side of the messaging boundary. Action is the
// discriminator: "ping", "getSelection" (alias "getSelectedText"),
// "processSelectedText" or "addToCalendar".
type WSMessage struct {
	Action    string `json:"action"`
	HTML      string `json:"html,omitempty"`
	Selection string `json:"selection,omitempty"`
	Event     *Event `json:"eventDetails,omitempty"`
}

// WSResponse is the response side of the messaging boundary. A timed-out or
// failed extraction still answers with Success=false plus whatever partial
// event data the handler had.
type WSResponse struct {
	Action  string `json:"action"`
	Success bool   `json:"success"`
	Event   *Event `json:"eventDetails,omitempty"`
	URL     string `json:"url,omitempty"`
	Error   string `json:"error,omitempty"`
}
