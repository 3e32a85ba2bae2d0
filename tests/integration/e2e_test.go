package integration

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventscribe/backend/internal/config"
	"github.com/eventscribe/backend/internal/server"
	"github.com/eventscribe/backend/internal/shared/id"
	"github.com/eventscribe/backend/internal/shared/types"
)

// The server registers Prometheus collectors globally, so one instance is
// shared across the whole test binary.
var (
	setupOnce sync.Once
	handler   http.Handler
	setupErr  error
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	setupOnce.Do(func() {
		dir, err := os.MkdirTemp("", "eventscribe-e2e")
		if err != nil {
			setupErr = err
			return
		}
		cfg := config.Default()
		cfg.RateLimit.Enabled = false
		cfg.Settings.Path = dir + "/settings.json"
		cfg.WS.RequestTimeout = 2 * time.Second

		srv, err := server.New(cfg)
		if err != nil {
			setupErr = err
			return
		}
		handler = srv.Handler()
	})
	require.NoError(t, setupErr)

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	encoded, err := sonic.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(encoded))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp, decodeBody(t, resp)
}

func getJSON(t *testing.T, url string) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp, decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, sonic.Unmarshal(raw, &decoded))
	return decoded
}

func TestRootAndHealth(t *testing.T) {
	ts := testServer(t)

	resp, body := getJSON(t, ts.URL+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "online", body["status"])
	assert.Equal(t, "EventScribe Backend (Go)", body["service"])
	assert.True(t, id.IsValid(resp.Header.Get("X-Request-ID")))

	resp, body = getJSON(t, ts.URL+"/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body["status"])
	assert.Contains(t, body, "service_registry")
}

func TestExtractFromHTML(t *testing.T) {
	ts := testServer(t)

	resp, body := postJSON(t, ts.URL+"/extract", types.ExtractRequest{
		HTML: `<html><body>
			<h1>Community Meetup</h1>
			<time datetime="2024-03-15T18:30:00Z">15 March</time>
			<div class="event-location">Main Hall</div>
		</body></html>`,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	ev := body["event"].(map[string]interface{})
	assert.Equal(t, "Community Meetup", ev["title"])
	assert.Equal(t, "2024-03-15", ev["date"])
	assert.Equal(t, "18:30", ev["time"])
	assert.Equal(t, "Main Hall", ev["location"])
	assert.Equal(t, true, body["complete"])
	assert.True(t, id.IsValid(body["event_id"].(string)))

	// The extraction is cached for UI pre-fill.
	resp, body = getJSON(t, ts.URL+"/extract/last")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cached := body["event"].(map[string]interface{})
	assert.Equal(t, "Community Meetup", cached["title"])
}

func TestExtractFromSelection(t *testing.T) {
	ts := testServer(t)

	resp, body := postJSON(t, ts.URL+"/extract", types.ExtractRequest{
		Selection: "Sun, 2 Nov, 10:00\nLocation: Main Hall",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	ev := body["event"].(map[string]interface{})
	assert.True(t, strings.HasSuffix(ev["date"].(string), "-11-02"))
	assert.Equal(t, "10:00", ev["time"])
	assert.Equal(t, "Main Hall", ev["location"])
	assert.Equal(t, false, body["complete"])
}

func TestExtractRequiresInput(t *testing.T) {
	ts := testServer(t)
	resp, _ := postJSON(t, ts.URL+"/extract", types.ExtractRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCalendarLinkEndpoint(t *testing.T) {
	ts := testServer(t)

	resp, body := postJSON(t, ts.URL+"/calendar/link", map[string]interface{}{
		"event": map[string]interface{}{
			"title": "Morning Standup",
			"date":  "2024-01-10",
			"time":  "09:30",
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	link := body["url"].(string)
	assert.Contains(t, link, "calendar.google.com/calendar/render")
	assert.Contains(t, link, "20240110T093000%2F20240110T103000")
	assert.Equal(t, true, body["complete"])
}

func TestServiceEndpoints(t *testing.T) {
	ts := testServer(t)

	resp, body := getJSON(t, ts.URL+"/services")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	services := body["services"].([]interface{})
	assert.Len(t, services, 4)

	resp, body = postJSON(t, ts.URL+"/services/discover", map[string]interface{}{
		"intent": "extract event details from a page",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["services"])

	resp, body = postJSON(t, ts.URL+"/services/execute", map[string]interface{}{
		"tool_id": "extractor.text",
		"params":  map[string]interface{}{"selection": "25 December 2024"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
}

func TestSettingsEndpoints(t *testing.T) {
	ts := testServer(t)

	resp, body := postJSON(t, ts.URL+"/settings", map[string]interface{}{
		"key":   "language",
		"value": "fr",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	resp, body = getJSON(t, ts.URL+"/settings")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	settings := data["settings"].(map[string]interface{})
	assert.Equal(t, "fr", settings["language"])

	resp, _ = postJSON(t, ts.URL+"/settings", map[string]interface{}{
		"key":   "not_a_setting",
		"value": "x",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/stream"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, msg types.WSMessage) types.WSResponse {
	t.Helper()
	require.NoError(t, conn.WriteJSON(msg))
	var resp types.WSResponse
	require.NoError(t, conn.ReadJSON(&resp))
	return resp
}

func TestWebSocketPing(t *testing.T) {
	conn := dialWS(t, testServer(t))
	resp := roundTrip(t, conn, types.WSMessage{Action: "ping"})
	assert.Equal(t, "ping", resp.Action)
	assert.True(t, resp.Success)
}

func TestWebSocketSelectionActions(t *testing.T) {
	conn := dialWS(t, testServer(t))

	for _, action := range []string{"getSelection", "getSelectedText"} {
		resp := roundTrip(t, conn, types.WSMessage{
			Action:    action,
			Selection: "Sun, 2 Nov, 10:00\nLocation: Main Hall",
		})
		assert.Equal(t, action, resp.Action)
		assert.True(t, resp.Success)
		require.NotNil(t, resp.Event)
		assert.Equal(t, "10:00", resp.Event.Time)
		assert.Equal(t, "Main Hall", resp.Event.Location)
	}
}

func TestWebSocketProcessSelectedText(t *testing.T) {
	conn := dialWS(t, testServer(t))

	resp := roundTrip(t, conn, types.WSMessage{
		Action:    "processSelectedText",
		Selection: "Team planning session",
		HTML: `<html><body>
			<h1>Team Planning</h1>
			<time datetime="2024-03-15T18:30:00Z">15 March</time>
		</body></html>`,
	})
	assert.Equal(t, "processSelectedText", resp.Action)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Event)
	assert.Equal(t, "2024-03-15", resp.Event.Date)
	assert.Equal(t, "18:30", resp.Event.Time)
}

func TestWebSocketAddToCalendar(t *testing.T) {
	conn := dialWS(t, testServer(t))

	resp := roundTrip(t, conn, types.WSMessage{
		Action: "addToCalendar",
		Event: &types.Event{
			Title: "Morning Standup",
			Date:  "2024-01-10",
			Time:  "09:30",
		},
	})
	assert.True(t, resp.Success)
	assert.Contains(t, resp.URL, "calendar.google.com/calendar/render")
}

func TestWebSocketUnknownAction(t *testing.T) {
	conn := dialWS(t, testServer(t))
	resp := roundTrip(t, conn, types.WSMessage{Action: "selfDestruct"})
	assert.False(t, resp.Success)
	assert.Equal(t, "unknown action", resp.Error)
}
