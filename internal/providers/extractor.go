package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/eventscribe/backend/internal/extract"
	"github.com/eventscribe/backend/internal/fetch"
	"github.com/eventscribe/backend/internal/page"
	"github.com/eventscribe/backend/internal/shared/types"
)

// Extractor exposes the field matchers and the full extraction pipeline as
// service tools. Inputs are raw HTML, a URL to fetch, a text selection, or
// any combination; every tool is best-effort and an unresolved field comes
// back empty rather than as an error.
type Extractor struct {
	engine  *extract.Engine
	fetcher *fetch.Fetcher
}

// NewExtractor creates the extraction provider.
func NewExtractor(fetcher *fetch.Fetcher) *Extractor {
	return &Extractor{
		engine:  extract.NewEngine(),
		fetcher: fetcher,
	}
}

// NewExtractorAt pins the engine clock, for deterministic relative dates in
// tests.
func NewExtractorAt(fetcher *fetch.Fetcher, now func() time.Time) *Extractor {
	return &Extractor{
		engine:  extract.NewEngineAt(now),
		fetcher: fetcher,
	}
}

// Engine exposes the underlying extraction engine for in-process callers.
func (e *Extractor) Engine() *extract.Engine {
	return e.engine
}

// Definition returns service metadata.
func (e *Extractor) Definition() types.Service {
	htmlParams := []types.Parameter{
		{Name: "html", Type: "string", Description: "Raw HTML to extract from", Required: false},
		{Name: "url", Type: "string", Description: "Page URL to fetch and extract from", Required: false},
		{Name: "selection", Type: "string", Description: "User-selected text", Required: false},
	}

	return types.Service{
		ID:          "extractor",
		Name:        "Event Extractor Service",
		Description: "Heuristic extraction of event details from pages and selections",
		Category:    types.CategoryExtractor,
		Capabilities: []string{
			"event_extraction",
			"date_matching",
			"time_matching",
			"location_matching",
			"meeting_link_detection",
			"attendance_classification",
			"title_extraction",
			"description_extraction",
		},
		Tools: []types.Tool{
			{ID: "extractor.event", Name: "Extract Event", Description: "Run the full extraction pipeline", Parameters: htmlParams, Returns: "event"},
			{ID: "extractor.text", Name: "Extract From Text", Description: "Extract event details from selected text only", Parameters: []types.Parameter{{Name: "selection", Type: "string", Description: "Selected text", Required: true}}, Returns: "event"},
			{ID: "extractor.date", Name: "Find Date", Description: "Resolve the event date from a page", Parameters: htmlParams, Returns: "date"},
			{ID: "extractor.time", Name: "Find Time", Description: "Resolve the start time from a page", Parameters: htmlParams, Returns: "time"},
			{ID: "extractor.location", Name: "Find Location", Description: "Resolve the physical location from a page", Parameters: htmlParams, Returns: "location"},
			{ID: "extractor.meeting", Name: "Find Meeting Link", Description: "Locate a video-conferencing join link", Parameters: htmlParams, Returns: "meeting"},
			{ID: "extractor.classify", Name: "Classify Attendance", Description: "Classify a page as online, in-person or unknown", Parameters: htmlParams, Returns: "status"},
			{ID: "extractor.title", Name: "Find Title", Description: "Resolve the event title from a page", Parameters: htmlParams, Returns: "title"},
			{ID: "extractor.description", Name: "Find Description", Description: "Resolve the event description from a page", Parameters: htmlParams, Returns: "description"},
		},
		DataModels: []types.DataModel{
			{
				Name: "event",
				Fields: map[string]string{
					"title":       "string",
					"date":        "YYYY-MM-DD",
					"time":        "HH:MM",
					"location":    "string",
					"meetingLink": "url",
					"isOnline":    "bool",
					"description": "string",
				},
			},
		},
	}
}

// Execute routes tool calls.
func (e *Extractor) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "extractor.event":
		return e.extractEvent(ctx, params)
	case "extractor.text":
		return e.extractText(params)
	case "extractor.date":
		return e.pageField(ctx, params, "date", func(p *page.Page) string {
			return extract.FindDate(p, time.Now())
		})
	case "extractor.time":
		return e.pageField(ctx, params, "time", extract.FindTime)
	case "extractor.location":
		return e.pageField(ctx, params, "location", extract.FindLocation)
	case "extractor.title":
		return e.pageField(ctx, params, "title", extract.FindTitle)
	case "extractor.description":
		return e.pageField(ctx, params, "description", extract.FindDescription)
	case "extractor.meeting":
		return e.findMeeting(ctx, params)
	case "extractor.classify":
		return e.classify(ctx, params)
	default:
		return unknownTool(toolID)
	}
}

func (e *Extractor) extractEvent(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	src, err := e.source(ctx, params)
	if err != nil {
		return failure(err.Error())
	}
	if src.Page == nil && src.Selection == "" {
		return failure("html, url or selection parameter required")
	}
	ev := e.engine.Extract(src)
	return success(map[string]interface{}{"event": eventData(ev)})
}

func (e *Extractor) extractText(params map[string]interface{}) (*types.Result, error) {
	selection, ok := getString(params, "selection")
	if !ok {
		return failure("selection parameter required")
	}
	ev := e.engine.ExtractText(selection)
	return success(map[string]interface{}{"event": eventData(ev)})
}

func (e *Extractor) pageField(ctx context.Context, params map[string]interface{}, name string, fn func(*page.Page) string) (*types.Result, error) {
	p, err := e.page(ctx, params)
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{name: fn(p)})
}

func (e *Extractor) findMeeting(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	p, err := e.page(ctx, params)
	if err != nil {
		return failure(err.Error())
	}
	meeting := extract.FindMeetingLink(p)
	if meeting == nil {
		return success(map[string]interface{}{"found": false})
	}
	return success(map[string]interface{}{
		"found":        true,
		"platform":     string(meeting.Platform),
		"url":          meeting.URL,
		"registration": meeting.Registration,
	})
}

func (e *Extractor) classify(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	if p, err := e.page(ctx, params); err == nil {
		return success(map[string]interface{}{"status": extract.Classify(p).String()})
	}
	if selection, ok := getString(params, "selection"); ok {
		return success(map[string]interface{}{"status": extract.ClassifyText(selection).String()})
	}
	return failure("html, url or selection parameter required")
}

// source assembles the extraction input from params, fetching the page when
// only a URL was given.
func (e *Extractor) source(ctx context.Context, params map[string]interface{}) (extract.Source, error) {
	var src extract.Source
	if selection, ok := getString(params, "selection"); ok {
		src.Selection = selection
	}

	htmlStr, hasHTML := getString(params, "html")
	rawURL, hasURL := getString(params, "url")
	switch {
	case hasHTML:
		p, err := page.Load(htmlStr)
		if err != nil {
			return src, err
		}
		src.Page = p
	case hasURL:
		if e.fetcher == nil {
			return src, fmt.Errorf("url fetching not enabled")
		}
		p, err := e.fetcher.Page(ctx, rawURL)
		if err != nil {
			return src, err
		}
		src.Page = p
	}
	return src, nil
}

func (e *Extractor) page(ctx context.Context, params map[string]interface{}) (*page.Page, error) {
	src, err := e.source(ctx, params)
	if err != nil {
		return nil, err
	}
	if src.Page == nil {
		return nil, fmt.Errorf("html or url parameter required")
	}
	return src.Page, nil
}
