package providers

import (
	"context"

	"github.com/eventscribe/backend/internal/calendar"
	"github.com/eventscribe/backend/internal/shared/types"
)

// Calendar renders canonical events as calendar deep links.
type Calendar struct {
	formatter *calendar.Formatter
}

// NewCalendar creates the calendar provider.
func NewCalendar() *Calendar {
	return &Calendar{formatter: calendar.NewFormatter()}
}

// Formatter exposes the underlying formatter for in-process callers.
func (c *Calendar) Formatter() *calendar.Formatter {
	return c.formatter
}

// Definition returns service metadata.
func (c *Calendar) Definition() types.Service {
	eventParam := []types.Parameter{
		{Name: "event", Type: "object", Description: "Canonical event record", Required: true},
	}

	return types.Service{
		ID:          "calendar",
		Name:        "Calendar Link Service",
		Description: "Google Calendar deep-link generation from event records",
		Category:    types.CategoryCalendar,
		Capabilities: []string{
			"deep_link",
			"all_day_events",
			"timed_events",
			"meet_conference",
		},
		Tools: []types.Tool{
			{ID: "calendar.link", Name: "Build Calendar Link", Description: "Render an event as a calendar template URL", Parameters: eventParam, Returns: "url"},
			{ID: "calendar.validate", Name: "Validate Event", Description: "Check whether an event carries the fields required to submit", Parameters: eventParam, Returns: "validation"},
		},
	}
}

// Execute routes tool calls.
func (c *Calendar) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "calendar.link":
		return c.buildLink(params)
	case "calendar.validate":
		return c.validate(params)
	default:
		return unknownTool(toolID)
	}
}

func (c *Calendar) buildLink(params map[string]interface{}) (*types.Result, error) {
	ev, err := getEvent(params, "event")
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{"url": c.formatter.DeepLink(ev)})
}

// validate reports which required fields are missing. Missing fields block
// only submission, never link generation.
func (c *Calendar) validate(params map[string]interface{}) (*types.Result, error) {
	ev, err := getEvent(params, "event")
	if err != nil {
		return failure(err.Error())
	}
	var missing []string
	if !ev.HasTitle() {
		missing = append(missing, "title")
	}
	if !ev.HasDate() {
		missing = append(missing, "date")
	}
	return success(map[string]interface{}{
		"complete": ev.Complete(),
		"missing":  missing,
	})
}
