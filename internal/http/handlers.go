package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/eventscribe/backend/internal/calendar"
	"github.com/eventscribe/backend/internal/extract"
	"github.com/eventscribe/backend/internal/fetch"
	"github.com/eventscribe/backend/internal/infrastructure/monitoring"
	"github.com/eventscribe/backend/internal/page"
	"github.com/eventscribe/backend/internal/providers"
	"github.com/eventscribe/backend/internal/service"
	"github.com/eventscribe/backend/internal/shared/types"
	"github.com/gin-gonic/gin"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	engine    *extract.Engine
	formatter *calendar.Formatter
	fetcher   *fetch.Fetcher
	registry  *service.Registry
	cache     *providers.Cache
	settings  *providers.Settings
	metrics   *monitoring.Metrics
}

// NewHandlers creates a new handler set
func NewHandlers(
	engine *extract.Engine,
	formatter *calendar.Formatter,
	fetcher *fetch.Fetcher,
	registry *service.Registry,
	cache *providers.Cache,
	settings *providers.Settings,
	metrics *monitoring.Metrics,
) *Handlers {
	return &Handlers{
		engine:    engine,
		formatter: formatter,
		fetcher:   fetcher,
		registry:  registry,
		cache:     cache,
		settings:  settings,
		metrics:   metrics,
	}
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "EventScribe Backend (Go)",
		"version": "0.2.0",
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	snapshot := h.metrics.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"service_registry": h.registry.Stats(),
		"uptime_seconds":   h.metrics.UptimeSeconds(),
		"requests": gin.H{
			"total":  snapshot.TotalRequests,
			"errors": snapshot.TotalErrors,
		},
		"extractions": snapshot.TotalExtractions,
	})
}

// Extract runs the extraction pipeline on a page and/or selection.
func (h *Handlers) Extract(c *gin.Context) {
	var req types.ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.HTML == "" && req.URL == "" && req.Selection == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "html, url or selection required"})
		return
	}

	src := extract.Source{Selection: req.Selection}
	source := "selection"
	switch {
	case req.HTML != "":
		source = "html"
		p, err := page.Load(req.HTML)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		src.Page = p
	case req.URL != "":
		source = "url"
		p, err := h.fetcher.Page(c.Request.Context(), req.URL)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		src.Page = p
	}

	start := time.Now()
	ev := h.engine.Extract(src)
	h.recordExtraction(source, ev, time.Since(start))

	eventID := h.cache.Put(ev)
	h.metrics.SetCacheEntries(h.cache.Len())

	c.JSON(http.StatusOK, gin.H{
		"event":    ev,
		"event_id": eventID,
		"complete": ev.Complete(),
	})
}

// LastExtraction returns the most recent cached extraction for UI pre-fill.
func (h *Handlers) LastExtraction(c *gin.Context) {
	ev, ok := h.cache.Last()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no cached extraction"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"event":    ev,
		"complete": ev.Complete(),
	})
}

// CalendarLink renders an event as a calendar deep link.
func (h *Handlers) CalendarLink(c *gin.Context) {
	var req types.LinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":      h.formatter.DeepLink(req.Event),
		"complete": req.Event.Complete(),
	})
}

// ListServices lists all available services
func (h *Handlers) ListServices(c *gin.Context) {
	var category *types.Category
	if categoryStr := c.Query("category"); categoryStr != "" {
		cat := types.Category(categoryStr)
		category = &cat
	}

	services := h.registry.List(category)
	stats := h.registry.Stats()

	c.JSON(http.StatusOK, gin.H{
		"services": services,
		"stats":    stats,
	})
}

// DiscoverServices discovers relevant services for an intent
func (h *Handlers) DiscoverServices(c *gin.Context) {
	var req types.DiscoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 5
	}
	services := h.registry.Discover(req.Intent, limit)

	c.JSON(http.StatusOK, gin.H{
		"query":    req.Intent,
		"services": services,
	})
}

// ExecuteService executes a service tool
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	serviceID, _, _ := strings.Cut(req.ToolID, ".")
	timer := monitoring.NewTimer(h.metrics, serviceID, req.ToolID)

	result, err := h.registry.Execute(c.Request.Context(), req.ToolID, req.Params, nil)
	if err != nil {
		timer.Stop("error")
		h.metrics.RecordServiceError(serviceID, req.ToolID, "execute_failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	status := "ok"
	if !result.Success {
		status = "failed"
	}
	timer.Stop(status)

	c.JSON(http.StatusOK, result)
}

// GetSettings lists all user preferences.
func (h *Handlers) GetSettings(c *gin.Context) {
	result, err := h.registry.Execute(c.Request.Context(), "settings.list", map[string]interface{}{}, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateSetting sets one user preference.
func (h *Handlers) UpdateSetting(c *gin.Context) {
	var req struct {
		Key   string `json:"key" binding:"required"`
		Value string `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.registry.Execute(c.Request.Context(), "settings.set", map[string]interface{}{
		"key":   req.Key,
		"value": req.Value,
	}, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !result.Success {
		c.JSON(http.StatusBadRequest, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// recordExtraction updates extraction metrics for one run.
func (h *Handlers) recordExtraction(source string, ev types.Event, elapsed time.Duration) {
	outcome := "partial"
	if ev.Complete() {
		outcome = "complete"
	}
	h.metrics.RecordExtraction(source, outcome, elapsed)

	for field, ok := range map[string]bool{
		"title":        ev.HasTitle(),
		"date":         ev.HasDate(),
		"time":         ev.HasTime(),
		"location":     ev.HasLocation(),
		"meeting_link": ev.HasMeetingLink(),
	} {
		if ok {
			h.metrics.RecordFieldResolved(field)
		}
	}
}
