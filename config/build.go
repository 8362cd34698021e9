package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/tidwall/gjson"

	"github.com/dshills/dispatchkit/arena"
	"github.com/dshills/dispatchkit/deadletter"
	"github.com/dshills/dispatchkit/dispatch"
	"github.com/dshills/dispatchkit/event"
	"github.com/dshills/dispatchkit/hook"
	"github.com/dshills/dispatchkit/observe"
	"github.com/dshills/dispatchkit/route"
	"github.com/dshills/dispatchkit/script"
)

// Event is the owned-payload event type a built kernel dispatches.
type Event = event.Event[[]byte]

// Catalog maps configured hook names to their implementations. The host
// program supplies it; Build resolves hook and route entries against it.
type Catalog map[string]hook.Hook[Event]

// RouterName is the registry name under which the route table's routing
// hook is registered. It runs ahead of every catalog hook.
const RouterName = "router"

// Kernel is a fully assembled dispatcher plus the resources it owns.
type Kernel struct {
	dispatcher *dispatch.Dispatcher[Event]
	registry   *dispatch.Registry[Event]
	pool       *arena.Pool
	source     string
	routes     []string
	closers    []func() error
}

// Dispatch routes and delivers one event.
func (k *Kernel) Dispatch(ctx context.Context, evt Event) error {
	return k.dispatcher.Dispatch(ctx, evt)
}

// Registry exposes the kernel's hook registry for runtime toggles.
func (k *Kernel) Registry() *dispatch.Registry[Event] {
	return k.registry
}

// Pool returns the arena pool sized by the configuration.
func (k *Kernel) Pool() *arena.Pool {
	return k.pool
}

// Source reports the configured event source label.
func (k *Kernel) Source() string {
	return k.source
}

// Routes lists the configured route patterns.
func (k *Kernel) Routes() []string {
	out := make([]string, len(k.routes))
	copy(out, k.routes)
	return out
}

// Close releases everything Build opened: script engine, dead-letter sink,
// buffered metrics. It returns the first error.
func (k *Kernel) Close() error {
	var first error
	for _, c := range k.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

type builder struct {
	logger     *slog.Logger
	registerer prometheus.Registerer
	extra      dispatch.MetricsSink[Event]
}

// BuildOption configures Build.
type BuildOption func(*builder)

// WithLogger sets the logger threaded into the kernel's components.
func WithLogger(l *slog.Logger) BuildOption {
	return func(b *builder) { b.logger = l }
}

// WithRegisterer sets the prometheus registerer for metrics collectors.
// Defaults to prometheus.DefaultRegisterer.
func WithRegisterer(r prometheus.Registerer) BuildOption {
	return func(b *builder) { b.registerer = r }
}

// WithExtraMetrics appends a sink observing every outcome in addition to
// whatever the config declares.
func WithExtraMetrics(sink dispatch.MetricsSink[Event]) BuildOption {
	return func(b *builder) { b.extra = sink }
}

// Build assembles a kernel from a validated config and a hook catalog.
// Every hook and route entry must name a catalog hook. The returned kernel
// owns the resources it opened; callers must Close it.
func Build(cfg *Config, cat Catalog, opts ...BuildOption) (*Kernel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b := &builder{registerer: prometheus.DefaultRegisterer}
	for _, opt := range opts {
		opt(b)
	}

	k := &Kernel{
		registry: dispatch.NewRegistry[Event](),
		pool:     arena.NewPool(cfg.ArenaCapacity),
		source:   cfg.Source,
	}

	wrap := func(h hook.Hook[Event]) hook.Hook[Event] {
		if cfg.Recover {
			h = hook.WithRecover(h)
		}
		if cfg.TimeoutMS > 0 {
			h = hook.WithTimeout(h, time.Duration(cfg.TimeoutMS)*time.Millisecond)
		}
		return h
	}

	maxPriority := 0
	for _, entry := range cfg.Hooks {
		h, ok := cat[entry.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownHook, entry.Name)
		}
		handle := k.registry.Register(entry.Name, wrap(h),
			dispatch.WithPriority(entry.Priority),
			dispatch.WithGroup(entry.Group),
		)
		if entry.Disabled {
			handle.Disable()
		}
		if entry.Priority > maxPriority {
			maxPriority = entry.Priority
		}
	}

	if len(cfg.Routes) > 0 {
		trie := route.NewTrie[hook.Hook[Event]]()
		for _, r := range cfg.Routes {
			h, ok := cat[r.Hook]
			if !ok {
				return nil, fmt.Errorf("%w: %q (route %q)", ErrUnknownHook, r.Hook, r.Pattern)
			}
			if err := trie.Add(r.Pattern, wrap(h)); err != nil {
				return nil, fmt.Errorf("route %q: %w", r.Pattern, err)
			}
			k.routes = append(k.routes, r.Pattern)
		}

		path := cfg.RouteKey
		key := func(evt Event) (string, bool) {
			r := gjson.GetBytes(evt.Payload, path)
			if !r.Exists() {
				return "", false
			}
			return r.String(), true
		}

		var ropts []dispatch.RoutingOption[Event, string]
		if cfg.Fallback != "" {
			fb, ok := cat[cfg.Fallback]
			if !ok {
				return nil, fmt.Errorf("%w: %q (fallback)", ErrUnknownHook, cfg.Fallback)
			}
			ropts = append(ropts, dispatch.WithFallback[Event, string](wrap(fb)))
		}
		// Routing runs ahead of every catalog hook; a matched route stops
		// the sequential chain.
		k.registry.Register(RouterName, dispatch.NewRouting[Event, string](trie, key, ropts...),
			dispatch.WithPriority(maxPriority+1))
	}

	if len(cfg.Scripts) > 0 {
		engine := script.NewEngine(script.WithLogger(b.logger))
		k.closers = append(k.closers, func() error {
			engine.Close()
			return nil
		})
		for _, s := range cfg.Scripts {
			src := s.Source
			if s.File != "" {
				data, err := os.ReadFile(s.File)
				if err != nil {
					return nil, fmt.Errorf("script %q: %w", s.Name, err)
				}
				src = string(data)
			}
			h, err := engine.NewHook(s.Name, src)
			if err != nil {
				return nil, err
			}
			k.registry.Register(s.Name, wrap(h), dispatch.WithPriority(s.Priority))
		}
	}

	if k.registry.Len() == 0 {
		return nil, fmt.Errorf("%w: no hooks, routes, or scripts configured", ErrInvalid)
	}

	var delivery dispatch.Delivery[Event]
	switch cfg.Delivery {
	case DeliveryFanOut:
		delivery = dispatch.FanOut[Event]{}
	default:
		delivery = dispatch.Sequential[Event]{}
	}

	dopts := []dispatch.Option[Event]{dispatch.WithLogger[Event](b.logger)}

	if sink, closer, err := buildDeadLetter(cfg.DeadLetter); err != nil {
		return nil, err
	} else if sink != nil {
		dopts = append(dopts, dispatch.WithDeadLetter(deadletter.Events(sink)))
		if closer != nil {
			k.closers = append(k.closers, closer)
		}
	}

	sink, closer, err := buildMetrics(cfg.Metrics, b)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		k.closers = append(k.closers, closer)
	}
	if b.extra != nil {
		if sink != nil {
			sink = observe.Multi[Event]{sink, b.extra}
		} else {
			sink = b.extra
		}
	}
	if sink != nil {
		dopts = append(dopts, dispatch.WithMetrics(sink))
	}

	if cfg.Tracing {
		dopts = append(dopts,
			dispatch.WithTracer[Event](observe.NewTracer()),
			dispatch.WithCorrelator[Event](func(evt Event) (string, bool) {
				return evt.Meta.CorrelationID, evt.Meta.CorrelationID != ""
			}),
		)
	}

	k.dispatcher = dispatch.New[Event](k.registry, delivery, dopts...)
	return k, nil
}

func buildDeadLetter(cfg DeadLetterConfig) (deadletter.Sink, func() error, error) {
	switch cfg.Type {
	case "":
		return nil, nil, nil
	case DeadLetterMemory:
		capacity := cfg.Capacity
		if capacity <= 0 {
			capacity = 128
		}
		return deadletter.NewMemory(capacity), nil, nil
	case DeadLetterFile:
		var fopts []deadletter.FileOption
		if cfg.MaxSizeMB > 0 {
			fopts = append(fopts, deadletter.WithMaxSizeMB(cfg.MaxSizeMB))
		}
		f := deadletter.NewFile(cfg.Path, fopts...)
		return f, f.Close, nil
	case DeadLetterSQLite:
		store, err := deadletter.NewStore(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: dead_letter type %q", ErrInvalid, cfg.Type)
	}
}

func buildMetrics(cfg MetricsConfig, b *builder) (dispatch.MetricsSink[Event], func() error, error) {
	var sink dispatch.MetricsSink[Event]
	switch cfg.Type {
	case "":
		return nil, nil, nil
	case MetricsLog:
		sink = observe.NewLog[Event](b.logger)
	case MetricsPrometheus:
		prom := observe.NewProm[Event](cfg.Namespace)
		if err := prom.Register(b.registerer); err != nil {
			return nil, nil, fmt.Errorf("register metrics: %w", err)
		}
		sink = prom
	case MetricsOTel:
		sink = observe.NewOTel[Event](b.logger)
	default:
		return nil, nil, fmt.Errorf("%w: metrics type %q", ErrInvalid, cfg.Type)
	}

	if cfg.Buffer > 0 {
		buf := observe.NewBuffered(sink, cfg.Buffer)
		return buf, func() error {
			buf.Close()
			return nil
		}, nil
	}
	return sink, nil, nil
}
