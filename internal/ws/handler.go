package ws

import (
	"net/http"
	"time"

	"github.com/eventscribe/backend/internal/calendar"
	"github.com/eventscribe/backend/internal/extract"
	"github.com/eventscribe/backend/internal/infrastructure/monitoring"
	"github.com/eventscribe/backend/internal/logging"
	"github.com/eventscribe/backend/internal/page"
	"github.com/eventscribe/backend/internal/providers"
	"github.com/eventscribe/backend/internal/shared/id"
	"github.com/eventscribe/backend/internal/shared/types"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in dev
	},
}

// Handler manages WebSocket connections. Each message carries an action
// discriminator; extraction-bearing actions are bounded by a fixed timeout
// after which the handler answers with whatever partial data the selection
// alone provides, rather than blocking the client.
type Handler struct {
	engine    *extract.Engine
	formatter *calendar.Formatter
	cache     *providers.Cache
	metrics   *monitoring.Metrics
	logger    *logging.Logger
	timeout   time.Duration
}

// NewHandler creates a new WebSocket handler
func NewHandler(
	engine *extract.Engine,
	formatter *calendar.Formatter,
	cache *providers.Cache,
	metrics *monitoring.Metrics,
	logger *logging.Logger,
	timeout time.Duration,
) *Handler {
	if timeout <= 0 {
		timeout = time.Second
	}
	return &Handler{
		engine:    engine,
		formatter: formatter,
		cache:     cache,
		metrics:   metrics,
		logger:    logger,
		timeout:   timeout,
	}
}

// HandleConnection handles WebSocket upgrade and messages
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	clientID := id.NewClientID()
	h.logger.Debug("websocket client connected",
		zap.String("client_id", clientID.String()),
		zap.String("remote", conn.RemoteAddr().String()))

	h.metrics.IncWSConnections()
	defer h.metrics.DecWSConnections()
	defer h.logger.Debug("websocket client disconnected",
		zap.String("client_id", clientID.String()))

	for {
		var msg types.WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug("websocket read error",
					zap.String("client_id", clientID.String()), zap.Error(err))
			}
			break
		}
		h.metrics.RecordWSMessage("in", msg.Action)

		var resp types.WSResponse
		switch msg.Action {
		case "ping":
			resp = types.WSResponse{Action: "ping", Success: true}
		case "getSelection", "getSelectedText":
			resp = h.handleSelection(msg)
		case "processSelectedText":
			resp = h.handleProcess(msg)
		case "addToCalendar":
			resp = h.handleAddToCalendar(msg)
		default:
			resp = types.WSResponse{Action: msg.Action, Error: "unknown action"}
		}

		h.metrics.RecordWSMessage("out", resp.Action)
		if err := conn.WriteJSON(resp); err != nil {
			h.logger.Debug("websocket write error", zap.Error(err))
			break
		}
	}
}

// handleSelection extracts from the selection alone, with no page involved.
func (h *Handler) handleSelection(msg types.WSMessage) types.WSResponse {
	if msg.Selection == "" {
		return types.WSResponse{Action: msg.Action, Error: "no selection"}
	}
	ev := h.engine.ExtractText(msg.Selection)
	h.cache.Put(ev)
	h.metrics.SetCacheEntries(h.cache.Len())
	return types.WSResponse{Action: msg.Action, Success: true, Event: &ev}
}

// handleProcess runs the full pipeline on page HTML plus selection. The run
// is bounded by the handler timeout; on expiry the response degrades to the
// selection-only result so the client can still open its confirmation UI.
func (h *Handler) handleProcess(msg types.WSMessage) types.WSResponse {
	if msg.HTML == "" && msg.Selection == "" {
		return types.WSResponse{Action: msg.Action, Error: "no html or selection"}
	}

	done := make(chan types.Event, 1)
	go func() {
		src := extract.Source{Selection: msg.Selection}
		if msg.HTML != "" {
			if p, err := page.Load(msg.HTML); err == nil {
				src.Page = p
			}
		}
		done <- h.engine.Extract(src)
	}()

	timer := time.NewTimer(h.timeout)
	defer timer.Stop()

	select {
	case ev := <-done:
		h.cache.Put(ev)
		h.metrics.SetCacheEntries(h.cache.Len())
		return types.WSResponse{Action: msg.Action, Success: true, Event: &ev}
	case <-timer.C:
		h.metrics.RecordWSTimeout()
		h.logger.Warn("extraction timed out, degrading to selection only",
			zap.Duration("timeout", h.timeout))
		partial := h.engine.ExtractText(msg.Selection)
		h.cache.Put(partial)
		return types.WSResponse{
			Action:  msg.Action,
			Success: false,
			Event:   &partial,
			Error:   "extraction timed out",
		}
	}
}

func (h *Handler) handleAddToCalendar(msg types.WSMessage) types.WSResponse {
	if msg.Event == nil {
		return types.WSResponse{Action: msg.Action, Error: "eventDetails required"}
	}
	url := h.formatter.DeepLink(*msg.Event)
	return types.WSResponse{Action: msg.Action, Success: true, URL: url}
}
