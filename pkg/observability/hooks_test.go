package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

type countingCache struct {
	Noop
	mu     sync.Mutex
	hits   []string
	failed int
}

func (c *countingCache) CacheHit(_ context.Context, e CacheEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hits = append(c.hits, e.Format)
}

func (c *countingCache) CacheFailed(context.Context, string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failed++
}

func TestDefaultsAreNoop(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(Noop); !ok {
		t.Errorf("Pipeline() = %T, want Noop", Pipeline())
	}
	if _, ok := Cache().(Noop); !ok {
		t.Errorf("Cache() = %T, want Noop", Cache())
	}
	if _, ok := HTTP().(Noop); !ok {
		t.Errorf("HTTP() = %T, want Noop", HTTP())
	}

	ctx := context.Background()
	Pipeline().LayoutDone(ctx, LayoutEvent{Type: "stacked"})
	Cache().CacheFailed(ctx, "get", errors.New("down"))
	HTTP().RequestFailed(ctx, RequestEvent{Path: "/panel.svg"})
}

func TestRegisterKeepsUnsetCategories(t *testing.T) {
	defer Reset()

	cc := &countingCache{}
	Register(Hooks{Cache: cc})

	if Cache() != CacheHooks(cc) {
		t.Error("Register should install the cache hooks")
	}
	if _, ok := Pipeline().(Noop); !ok {
		t.Error("Register should leave pipeline hooks untouched")
	}

	Register(Hooks{})
	if Cache() != CacheHooks(cc) {
		t.Error("Register with nil fields should keep the cache hooks")
	}

	Cache().CacheHit(context.Background(), CacheEvent{Format: "svg"})
	Cache().CacheFailed(context.Background(), "set", errors.New("full"))
	if len(cc.hits) != 1 || cc.hits[0] != "svg" || cc.failed != 1 {
		t.Errorf("hits = %v failed = %d, want [svg] 1", cc.hits, cc.failed)
	}

	Reset()
	if _, ok := Cache().(Noop); !ok {
		t.Error("Reset() should restore the no-op cache hooks")
	}
}

func TestLogHooks(t *testing.T) {
	defer Reset()

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	NewLogHooks(logger).Register()

	ctx := context.Background()
	Pipeline().LayoutDone(ctx, LayoutEvent{Type: "wide-no-chart", Width: 400, Height: 60, Duration: time.Millisecond})
	Pipeline().RenderDone(ctx, RenderEvent{Formats: []string{"png"}, Err: errors.New("boom")})
	Cache().CacheMiss(ctx, CacheEvent{Format: "svg"})
	HTTP().RequestDone(ctx, RequestEvent{Method: "GET", Path: "/panel.svg", Status: 200})

	out := buf.String()
	for _, want := range []string{"wide-no-chart", "render failed", "boom", "cache miss", "/panel.svg"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooksQuietAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel}))
	h.CacheHit(context.Background(), CacheEvent{Format: "svg"})
	if buf.Len() != 0 {
		t.Errorf("info-level logger should drop hook events, got %q", buf.String())
	}
}
