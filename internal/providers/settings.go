package providers

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/eventscribe/backend/internal/shared/types"
)

// Settings manages user preferences with an in-memory cache backed by a
// JSON file. Unknown keys are rejected so a typo never creates a phantom
// preference.
type Settings struct {
	path  string
	cache sync.Map
	mu    sync.Mutex // serializes file writes
}

// settingDefaults enumerates every known preference and its default.
var settingDefaults = map[string]string{
	"language":      "en",
	"summary_level": "standard",
}

// NewSettings creates the settings provider. A non-empty path enables
// persistence; existing values are loaded eagerly.
func NewSettings(path string) *Settings {
	s := &Settings{path: path}
	for key, def := range settingDefaults {
		s.cache.Store(key, def)
	}
	s.load()
	return s
}

// Definition returns service metadata.
func (s *Settings) Definition() types.Service {
	keyParam := []types.Parameter{
		{Name: "key", Type: "string", Description: "Setting key", Required: true},
	}

	return types.Service{
		ID:          "settings",
		Name:        "Settings Service",
		Description: "User preference management with file persistence",
		Category:    types.CategorySystem,
		Capabilities: []string{
			"get",
			"set",
			"list",
			"reset",
		},
		Tools: []types.Tool{
			{ID: "settings.get", Name: "Get Setting", Description: "Get one preference value", Parameters: keyParam, Returns: "value"},
			{ID: "settings.set", Name: "Set Setting", Description: "Set one preference value", Parameters: []types.Parameter{
				{Name: "key", Type: "string", Description: "Setting key", Required: true},
				{Name: "value", Type: "string", Description: "Setting value", Required: true},
			}, Returns: "boolean"},
			{ID: "settings.list", Name: "List Settings", Description: "List all preferences", Parameters: []types.Parameter{}, Returns: "object"},
			{ID: "settings.reset", Name: "Reset Setting", Description: "Reset a preference to its default", Parameters: keyParam, Returns: "value"},
		},
	}
}

// Execute routes tool calls.
func (s *Settings) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "settings.get":
		return s.get(params)
	case "settings.set":
		return s.set(params)
	case "settings.list":
		return s.list()
	case "settings.reset":
		return s.reset(params)
	default:
		return unknownTool(toolID)
	}
}

func (s *Settings) get(params map[string]interface{}) (*types.Result, error) {
	key, ok := getString(params, "key")
	if !ok {
		return failure("key parameter required")
	}
	value, ok := s.cache.Load(key)
	if !ok {
		return failure("unknown setting: " + key)
	}
	return success(map[string]interface{}{"key": key, "value": value})
}

func (s *Settings) set(params map[string]interface{}) (*types.Result, error) {
	key, ok := getString(params, "key")
	if !ok {
		return failure("key parameter required")
	}
	if _, known := settingDefaults[key]; !known {
		return failure("unknown setting: " + key)
	}
	value, ok := getString(params, "value")
	if !ok {
		return failure("value parameter required")
	}
	s.cache.Store(key, value)
	if err := s.persist(); err != nil {
		return failure("persist failed: " + err.Error())
	}
	return success(map[string]interface{}{"key": key, "value": value})
}

func (s *Settings) list() (*types.Result, error) {
	out := make(map[string]interface{}, len(settingDefaults))
	s.cache.Range(func(k, v interface{}) bool {
		out[k.(string)] = v
		return true
	})
	return success(map[string]interface{}{"settings": out})
}

func (s *Settings) reset(params map[string]interface{}) (*types.Result, error) {
	key, ok := getString(params, "key")
	if !ok {
		return failure("key parameter required")
	}
	def, known := settingDefaults[key]
	if !known {
		return failure("unknown setting: " + key)
	}
	s.cache.Store(key, def)
	if err := s.persist(); err != nil {
		return failure("persist failed: " + err.Error())
	}
	return success(map[string]interface{}{"key": key, "value": def})
}

// Value returns a preference for in-process callers, falling back to the
// default for unknown keys.
func (s *Settings) Value(key string) string {
	if v, ok := s.cache.Load(key); ok {
		return v.(string)
	}
	return settingDefaults[key]
}

func (s *Settings) load() {
	if s.path == "" {
		return
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var stored map[string]string
	if err := sonic.Unmarshal(data, &stored); err != nil {
		return
	}
	for key, value := range stored {
		if _, known := settingDefaults[key]; known {
			s.cache.Store(key, value)
		}
	}
}

func (s *Settings) persist() error {
	if s.path == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string, len(settingDefaults))
	s.cache.Range(func(k, v interface{}) bool {
		out[k.(string)] = v.(string)
		return true
	})
	data, err := sonic.Marshal(out)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
