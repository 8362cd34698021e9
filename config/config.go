// Package config builds a runnable dispatch kernel from a declarative
// yaml or json file plus a catalog of named hooks supplied by the host
// program.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Enum values accepted by Validate.
const (
	DeliverySequential = "sequential"
	DeliveryFanOut     = "fanout"

	DeadLetterMemory = "memory"
	DeadLetterFile   = "file"
	DeadLetterSQLite = "sqlite"

	MetricsLog        = "log"
	MetricsPrometheus = "prometheus"
	MetricsOTel       = "otel"
)

// Sentinel errors for configuration handling.
var (
	// ErrUnsupportedFormat is returned for config files that are neither
	// yaml nor json.
	ErrUnsupportedFormat = errors.New("config: unsupported file format")

	// ErrInvalid wraps every validation failure.
	ErrInvalid = errors.New("config: invalid")

	// ErrUnknownHook is returned by Build when a configured hook name is
	// missing from the catalog.
	ErrUnknownHook = errors.New("config: unknown hook")
)

// Config is the declarative kernel description.
type Config struct {
	// Source labels events promoted out of this kernel's ingestion scopes.
	Source string `yaml:"source" json:"source"`

	// ArenaCapacity is the per-event arena size in bytes (0 = default).
	ArenaCapacity int `yaml:"arena_capacity" json:"arena_capacity"`

	// Delivery selects the execution policy: sequential (default) or
	// fanout.
	Delivery string `yaml:"delivery" json:"delivery"`

	// TimeoutMS wraps every registered hook with a deadline when positive.
	TimeoutMS int `yaml:"timeout_ms" json:"timeout_ms"`

	// Recover wraps every registered hook with fault isolation.
	Recover bool `yaml:"recover" json:"recover"`

	// Hooks are catalog hooks registered into the kernel's registry.
	Hooks []HookEntry `yaml:"hooks" json:"hooks"`

	// RouteKey is the gjson path extracting each event's routing key from
	// its payload. Required when routes are configured.
	RouteKey string `yaml:"route_key" json:"route_key"`

	// Routes bind trie patterns to catalog hooks.
	Routes []RouteEntry `yaml:"routes" json:"routes"`

	// Fallback names the catalog hook invoked when no route matches.
	Fallback string `yaml:"fallback" json:"fallback"`

	// DeadLetter configures the failed-event sink.
	DeadLetter DeadLetterConfig `yaml:"dead_letter" json:"dead_letter"`

	// Metrics configures the outcome sink.
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`

	// Tracing wraps each dispatch in an OpenTelemetry span.
	Tracing bool `yaml:"tracing" json:"tracing"`

	// Scripts are sandboxed Lua hooks registered alongside catalog hooks.
	Scripts []ScriptEntry `yaml:"scripts" json:"scripts"`
}

// HookEntry registers one catalog hook.
type HookEntry struct {
	Name     string `yaml:"name" json:"name"`
	Priority int    `yaml:"priority" json:"priority"`
	Group    string `yaml:"group" json:"group"`
	Disabled bool   `yaml:"disabled" json:"disabled"`
}

// RouteEntry binds one trie pattern to a catalog hook.
type RouteEntry struct {
	Pattern string `yaml:"pattern" json:"pattern"`
	Hook    string `yaml:"hook" json:"hook"`
}

// DeadLetterConfig selects and parameterizes the dead-letter sink.
type DeadLetterConfig struct {
	// Type is empty (disabled), memory, file, or sqlite.
	Type string `yaml:"type" json:"type"`

	// Path locates the file or sqlite database.
	Path string `yaml:"path" json:"path"`

	// Capacity bounds the memory ring.
	Capacity int `yaml:"capacity" json:"capacity"`

	// MaxSizeMB rotates the file sink.
	MaxSizeMB int `yaml:"max_size_mb" json:"max_size_mb"`
}

// MetricsConfig selects and parameterizes the metrics sink.
type MetricsConfig struct {
	// Type is empty (disabled), log, prometheus, or otel.
	Type string `yaml:"type" json:"type"`

	// Buffer decouples the sink from the dispatch path when positive.
	Buffer int `yaml:"buffer" json:"buffer"`

	// Namespace prefixes prometheus collectors.
	Namespace string `yaml:"namespace" json:"namespace"`
}

// ScriptEntry registers one Lua hook, inline or from a file.
type ScriptEntry struct {
	Name     string `yaml:"name" json:"name"`
	Source   string `yaml:"source" json:"source"`
	File     string `yaml:"file" json:"file"`
	Priority int    `yaml:"priority" json:"priority"`
}

// Load reads a config file, dispatching on its extension: .yaml and .yml
// parse as YAML, .json as JSON (yaml.v3 handles JSON natively).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		return &cfg, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Validate checks enum values and internal consistency. Catalog membership
// is checked later, by Build, which has the catalog.
func (c *Config) Validate() error {
	switch c.Delivery {
	case "", DeliverySequential, DeliveryFanOut:
	default:
		return fmt.Errorf("%w: delivery %q", ErrInvalid, c.Delivery)
	}
	if c.TimeoutMS < 0 {
		return fmt.Errorf("%w: negative timeout_ms", ErrInvalid)
	}
	if c.ArenaCapacity < 0 {
		return fmt.Errorf("%w: negative arena_capacity", ErrInvalid)
	}

	names := make(map[string]bool, len(c.Hooks))
	for _, h := range c.Hooks {
		if h.Name == "" {
			return fmt.Errorf("%w: hook entry without a name", ErrInvalid)
		}
		if names[h.Name] {
			return fmt.Errorf("%w: duplicate hook %q", ErrInvalid, h.Name)
		}
		names[h.Name] = true
	}

	if len(c.Routes) > 0 && c.RouteKey == "" {
		return fmt.Errorf("%w: routes require route_key", ErrInvalid)
	}
	patterns := make(map[string]bool, len(c.Routes))
	for _, r := range c.Routes {
		if r.Pattern == "" || r.Hook == "" {
			return fmt.Errorf("%w: route entry needs pattern and hook", ErrInvalid)
		}
		if patterns[r.Pattern] {
			return fmt.Errorf("%w: duplicate route %q", ErrInvalid, r.Pattern)
		}
		patterns[r.Pattern] = true
	}

	switch c.DeadLetter.Type {
	case "", DeadLetterMemory:
	case DeadLetterFile, DeadLetterSQLite:
		if c.DeadLetter.Path == "" {
			return fmt.Errorf("%w: dead_letter type %q requires path", ErrInvalid, c.DeadLetter.Type)
		}
	default:
		return fmt.Errorf("%w: dead_letter type %q", ErrInvalid, c.DeadLetter.Type)
	}

	switch c.Metrics.Type {
	case "", MetricsLog, MetricsPrometheus, MetricsOTel:
	default:
		return fmt.Errorf("%w: metrics type %q", ErrInvalid, c.Metrics.Type)
	}

	for _, s := range c.Scripts {
		if s.Name == "" {
			return fmt.Errorf("%w: script entry without a name", ErrInvalid)
		}
		if (s.Source == "") == (s.File == "") {
			return fmt.Errorf("%w: script %q needs exactly one of source or file", ErrInvalid, s.Name)
		}
		if names[s.Name] {
			return fmt.Errorf("%w: duplicate hook %q", ErrInvalid, s.Name)
		}
		names[s.Name] = true
	}
	return nil
}
