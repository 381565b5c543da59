package observability

import (
	"context"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event to a logger at debug level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks creates hooks that write to logger. A nil logger uses
// log.Default().
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger.WithPrefix("hooks")}
}

// Register installs h for every event category.
func (h *LogHooks) Register() {
	Register(Hooks{Pipeline: h, Cache: h, HTTP: h})
}

func (h *LogHooks) LayoutDone(_ context.Context, e LayoutEvent) {
	h.logger.Debug("layout", "type", e.Type, "width", e.Width, "height", e.Height, "took", e.Duration)
}

func (h *LogHooks) RenderStarted(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) RenderDone(_ context.Context, e RenderEvent) {
	if e.Err != nil {
		h.logger.Debug("render failed", "formats", e.Formats, "took", e.Duration, "err", e.Err)
		return
	}
	h.logger.Debug("render done", "formats", e.Formats, "took", e.Duration)
}

func (h *LogHooks) CacheHit(_ context.Context, e CacheEvent) {
	h.logger.Debug("cache hit", "format", e.Format, "bytes", e.Size)
}

func (h *LogHooks) CacheMiss(_ context.Context, e CacheEvent) {
	h.logger.Debug("cache miss", "format", e.Format)
}

func (h *LogHooks) CacheStored(_ context.Context, e CacheEvent) {
	h.logger.Debug("cache store", "format", e.Format, "bytes", e.Size)
}

func (h *LogHooks) CacheFailed(_ context.Context, op string, err error) {
	h.logger.Debug("cache error", "op", op, "err", err)
}

func (h *LogHooks) RequestStarted(_ context.Context, e RequestEvent) {
	h.logger.Debug("request", "id", e.RequestID, "method", e.Method, "path", e.Path)
}

func (h *LogHooks) RequestDone(_ context.Context, e RequestEvent) {
	h.logger.Debug("response", "id", e.RequestID, "path", e.Path, "status", e.Status, "took", e.Duration)
}

func (h *LogHooks) RequestFailed(_ context.Context, e RequestEvent) {
	h.logger.Debug("request failed", "id", e.RequestID, "path", e.Path, "err", e.Err)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
