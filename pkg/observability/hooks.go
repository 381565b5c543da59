// Package observability provides hooks for metrics, tracing, and logging.
//
// Consumers register hooks at startup to receive events about layout and
// render passes, artifact cache traffic and requests served by the HTTP API.
// Nothing here depends on a particular backend; every event is a plain struct.
//
// [LogHooks] is the bundled implementation. It reports every event to a
// charmbracelet logger at debug level and is registered by
// `bigvalue serve --verbose`.
//
// # Usage
//
//	observability.Register(observability.Hooks{
//	    Pipeline: &myPipelineHooks{},
//	    Cache:    &myCacheHooks{},
//	})
//
// Libraries emit events through the getters:
//
//	observability.Pipeline().RenderStarted(ctx, formats)
//	observability.Pipeline().RenderDone(ctx, observability.RenderEvent{...})
package observability

import (
	"context"
	"sync"
	"time"
)

// LayoutEvent describes a finished layout pass.
type LayoutEvent struct {
	Type     string // layout type name, e.g. "stacked"
	Width    float64
	Height   float64
	Duration time.Duration
}

// RenderEvent describes a finished render of one or more formats.
type RenderEvent struct {
	Formats  []string
	Duration time.Duration
	Err      error
}

// CacheEvent describes one artifact cache lookup or write.
type CacheEvent struct {
	Format string
	Key    string
	Size   int // bytes; zero on misses
}

// RequestEvent describes an HTTP request at some point of its life.
// Status and Duration are set once the response is written; Err only for
// failed requests.
type RequestEvent struct {
	Method    string
	Path      string
	RequestID string
	Status    int
	Duration  time.Duration
	Err       error
}

// PipelineHooks receives events from the render pipeline.
type PipelineHooks interface {
	LayoutDone(ctx context.Context, e LayoutEvent)
	RenderStarted(ctx context.Context, formats []string)
	RenderDone(ctx context.Context, e RenderEvent)
}

// CacheHooks receives artifact cache events. CacheFailed reports a cache
// error the pipeline chose to ignore.
type CacheHooks interface {
	CacheHit(ctx context.Context, e CacheEvent)
	CacheMiss(ctx context.Context, e CacheEvent)
	CacheStored(ctx context.Context, e CacheEvent)
	CacheFailed(ctx context.Context, op string, err error)
}

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	RequestStarted(ctx context.Context, e RequestEvent)
	RequestDone(ctx context.Context, e RequestEvent)
	RequestFailed(ctx context.Context, e RequestEvent)
}

// Noop implements every hook interface and drops all events.
type Noop struct{}

func (Noop) LayoutDone(context.Context, LayoutEvent)      {}
func (Noop) RenderStarted(context.Context, []string)      {}
func (Noop) RenderDone(context.Context, RenderEvent)      {}
func (Noop) CacheHit(context.Context, CacheEvent)         {}
func (Noop) CacheMiss(context.Context, CacheEvent)        {}
func (Noop) CacheStored(context.Context, CacheEvent)      {}
func (Noop) CacheFailed(context.Context, string, error)   {}
func (Noop) RequestStarted(context.Context, RequestEvent) {}
func (Noop) RequestDone(context.Context, RequestEvent)    {}
func (Noop) RequestFailed(context.Context, RequestEvent)  {}

var (
	_ PipelineHooks = Noop{}
	_ CacheHooks    = Noop{}
	_ HTTPHooks     = Noop{}
)

// Hooks bundles one implementation per event category. Nil fields are left
// unchanged by [Register].
type Hooks struct {
	Pipeline PipelineHooks
	Cache    CacheHooks
	HTTP     HTTPHooks
}

var (
	hooksMu sync.RWMutex
	current = defaults()
)

func defaults() Hooks {
	return Hooks{Pipeline: Noop{}, Cache: Noop{}, HTTP: Noop{}}
}

// Register installs the non-nil hooks of h. Call it at startup, before the
// pipeline or server runs.
func Register(h Hooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h.Pipeline != nil {
		current.Pipeline = h.Pipeline
	}
	if h.Cache != nil {
		current.Cache = h.Cache
	}
	if h.HTTP != nil {
		current.HTTP = h.HTTP
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return current.Pipeline
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return current.Cache
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return current.HTTP
}

// Reset restores the no-op hooks. Tests use it to undo Register.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	current = defaults()
}
