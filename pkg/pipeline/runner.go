package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bigvalue/pkg/cache"
	"github.com/matzehuels/bigvalue/pkg/errors"
	"github.com/matzehuels/bigvalue/pkg/observability"
	"github.com/matzehuels/bigvalue/pkg/panel"
)

// Runner encapsulates pipeline execution with caching.
// Both the CLI and the server use it so caching behaves the same everywhere.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different props.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute lays out props and renders every requested format. Formats found in
// the cache are returned as is; the rest are rendered and stored. Cache
// errors are logged and otherwise ignored. Runs with unnamed layout options
// bypass the cache.
func (r *Runner) Execute(ctx context.Context, props panel.Props, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	pipelineHooks := observability.Pipeline()
	cacheHooks := observability.Cache()

	layoutStart := time.Now()
	frame, err := NewFrame(props, opts)
	if err != nil {
		return nil, err
	}
	props.SetDefaults()
	propsHash, err := cache.HashJSON(props)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash panel props")
	}

	result := &Result{
		PropsHash: propsHash,
		Layout:    frame.Layout,
		Artifacts: make(map[string][]byte, len(opts.Formats)),
	}
	result.Stats.LayoutTime = time.Since(layoutStart)
	pipelineHooks.LayoutDone(ctx, observability.LayoutEvent{
		Type:     frame.Layout.Type.String(),
		Width:    frame.Layout.Width,
		Height:   frame.Layout.Height,
		Duration: result.Stats.LayoutTime,
	})

	opts.Logger.Debug("computed layout",
		"type", frame.Layout.Type,
		"value_font", frame.Layout.ValueFontSize,
		"title_font", frame.Layout.TitleFontSize,
		"duration", result.Stats.LayoutTime)

	cacheable := opts.Cacheable()
	var missing []string
	for _, format := range opts.Formats {
		if opts.Refresh || !cacheable {
			missing = append(missing, format)
			continue
		}
		key := r.Keyer.ArtifactKey(propsHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			opts.Logger.Warn("cache read failed", "format", format, "error", err)
			cacheHooks.CacheFailed(ctx, "get", err)
		}
		if err == nil && hit {
			cacheHooks.CacheHit(ctx, observability.CacheEvent{Format: format, Key: key, Size: len(data)})
			result.Artifacts[format] = data
			result.CacheInfo.Hits++
			continue
		}
		cacheHooks.CacheMiss(ctx, observability.CacheEvent{Format: format, Key: key})
		missing = append(missing, format)
	}

	if len(missing) == 0 {
		result.CacheInfo.RenderHit = true
		opts.Logger.Info("served from cache", "formats", opts.Formats)
		return result, nil
	}

	renderStart := time.Now()
	pipelineHooks.RenderStarted(ctx, missing)
	rendered, err := RenderFrame(frame, missing, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	pipelineHooks.RenderDone(ctx, observability.RenderEvent{Formats: missing, Duration: result.Stats.RenderTime, Err: err})
	if err != nil {
		return nil, err
	}

	for format, data := range rendered {
		result.Artifacts[format] = data
		if !cacheable {
			continue
		}
		key := r.Keyer.ArtifactKey(propsHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "error", err)
			cacheHooks.CacheFailed(ctx, "set", err)
			continue
		}
		cacheHooks.CacheStored(ctx, observability.CacheEvent{Format: format, Key: key, Size: len(data)})
	}

	opts.Logger.Info("rendered outputs",
		"formats", missing,
		"layout", frame.Layout.Type,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
