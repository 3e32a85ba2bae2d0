package providers

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/eventscribe/backend/internal/shared/types"
)

func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

func failure(message string) (*types.Result, error) {
	return &types.Result{Success: false, Error: &message}, nil
}

func unknownTool(toolID string) (*types.Result, error) {
	return failure(fmt.Sprintf("unknown tool: %s", toolID))
}

func getString(params map[string]interface{}, key string) (string, bool) {
	v, ok := params[key].(string)
	return v, ok && v != ""
}

// getEvent decodes an event record passed as a generic params value.
func getEvent(params map[string]interface{}, key string) (types.Event, error) {
	var ev types.Event
	raw, ok := params[key]
	if !ok {
		return ev, fmt.Errorf("%s parameter required", key)
	}
	encoded, err := sonic.Marshal(raw)
	if err != nil {
		return ev, fmt.Errorf("invalid %s: %w", key, err)
	}
	if err := sonic.Unmarshal(encoded, &ev); err != nil {
		return ev, fmt.Errorf("invalid %s: %w", key, err)
	}
	return ev, nil
}

// eventData renders an event as a generic result payload.
func eventData(ev types.Event) map[string]interface{} {
	return map[string]interface{}{
		"title":       ev.Title,
		"date":        ev.Date,
		"time":        ev.Time,
		"location":    ev.Location,
		"meetingLink": ev.MeetingLink,
		"isOnline":    ev.IsOnline,
		"description": ev.Description,
		"text":        ev.Text,
		"complete":    ev.Complete(),
	}
}
