package providers

import (
	"context"
	"sync"
	"time"

	"github.com/eventscribe/backend/internal/shared/id"
	"github.com/eventscribe/backend/internal/shared/types"
)

// Cache keeps the most recent extraction results so the confirmation UI can
// pre-fill without re-running extraction. Entries expire after a TTL and
// are pruned lazily on access; the cache is ephemeral by design and never
// survives a restart.
type Cache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]cacheEntry
	lastID  string
}

type cacheEntry struct {
	event   types.Event
	stored  time.Time
	expires time.Time
}

// NewCache creates the extraction-result cache.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Definition returns service metadata.
func (c *Cache) Definition() types.Service {
	return types.Service{
		ID:          "cache",
		Name:        "Extraction Cache Service",
		Description: "Ephemeral storage of recent extraction results for UI pre-fill",
		Category:    types.CategoryStorage,
		Capabilities: []string{
			"put",
			"get",
			"last",
			"clear",
		},
		Tools: []types.Tool{
			{ID: "cache.put", Name: "Store Event", Description: "Store an extraction result", Parameters: []types.Parameter{
				{Name: "event", Type: "object", Description: "Canonical event record", Required: true},
			}, Returns: "id"},
			{ID: "cache.get", Name: "Get Event", Description: "Fetch a stored result by id", Parameters: []types.Parameter{
				{Name: "id", Type: "string", Description: "Event id", Required: true},
			}, Returns: "event"},
			{ID: "cache.last", Name: "Last Event", Description: "Fetch the most recent extraction result", Parameters: []types.Parameter{}, Returns: "event"},
			{ID: "cache.clear", Name: "Clear Cache", Description: "Drop all stored results", Parameters: []types.Parameter{}, Returns: "count"},
		},
	}
}

// Execute routes tool calls.
func (c *Cache) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "cache.put":
		ev, err := getEvent(params, "event")
		if err != nil {
			return failure(err.Error())
		}
		return success(map[string]interface{}{"id": c.Put(ev)})
	case "cache.get":
		eventID, ok := getString(params, "id")
		if !ok {
			return failure("id parameter required")
		}
		ev, ok := c.Get(eventID)
		if !ok {
			return failure("not found: " + eventID)
		}
		return success(map[string]interface{}{"event": eventData(ev)})
	case "cache.last":
		ev, ok := c.Last()
		if !ok {
			return failure("no cached extraction")
		}
		return success(map[string]interface{}{"event": eventData(ev)})
	case "cache.clear":
		return success(map[string]interface{}{"cleared": c.Clear()})
	default:
		return unknownTool(toolID)
	}
}

// Put stores an event and returns its generated id.
func (c *Cache) Put(ev types.Event) string {
	now := c.now()
	eventID := id.NewEventID().String()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.prune(now)
	c.entries[eventID] = cacheEntry{event: ev, stored: now, expires: now.Add(c.ttl)}
	c.lastID = eventID
	return eventID
}

// Get fetches a stored event by id.
func (c *Cache) Get(eventID string) (types.Event, bool) {
	now := c.now()
	c.mu.RLock()
	entry, ok := c.entries[eventID]
	c.mu.RUnlock()
	if !ok || now.After(entry.expires) {
		return types.Event{}, false
	}
	return entry.event, true
}

// Last fetches the most recently stored event.
func (c *Cache) Last() (types.Event, bool) {
	c.mu.RLock()
	lastID := c.lastID
	c.mu.RUnlock()
	if lastID == "" {
		return types.Event{}, false
	}
	return c.Get(lastID)
}

// Len reports the number of live entries.
func (c *Cache) Len() int {
	now := c.now()
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, entry := range c.entries {
		if !now.After(entry.expires) {
			n++
		}
	}
	return n
}

// Clear drops everything and reports how many entries were removed.
func (c *Cache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.entries)
	c.entries = make(map[string]cacheEntry)
	c.lastID = ""
	return n
}

// prune removes expired entries; callers hold the write lock.
func (c *Cache) prune(now time.Time) {
	for key, entry := range c.entries {
		if now.After(entry.expires) {
			delete(c.entries, key)
			if c.lastID == key {
				c.lastID = ""
			}
		}
	}
}
