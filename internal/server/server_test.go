package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bigvalue/pkg/cache"
	"github.com/matzehuels/bigvalue/pkg/httputil"
	"github.com/matzehuels/bigvalue/pkg/observability"
	"github.com/matzehuels/bigvalue/pkg/pipeline"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	return New(Config{
		Runner: pipeline.NewRunner(cache.NewNullCache(), nil, logger),
		Logger: logger,
	})
}

func do(t *testing.T, s *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := do(t, newTestServer(t), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" || body.Version == "" {
		t.Errorf("body = %+v", body)
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("response should carry a request ID")
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	id := "2f1c6d0e-8a57-4c8e-9d35-0b2f0f6f1a11"
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, id)

	rec := do(t, newTestServer(t), req)
	if got := rec.Header().Get(RequestIDHeader); got != id {
		t.Errorf("request ID = %q, want %q", got, id)
	}

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	rec = do(t, newTestServer(t), req)
	if got := rec.Header().Get(RequestIDHeader); got == "<script>" {
		t.Error("malformed request ID should be replaced")
	}
}

func TestPanelFormats(t *testing.T) {
	tests := []struct {
		format      string
		contentType string
		prefix      string
	}{
		{"svg", "image/svg+xml", "<?xml"},
		{"png", "image/png", "\x89PNG"},
		{"html", "text/html; charset=utf-8", "<div"},
		{"json", "application/json", "{"},
	}
	s := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/panel."+tt.format+"?text=42&title=CPU&spark=1,3,2&scale=1", nil)
			rec := do(t, s, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", ct, tt.contentType)
			}
			if !strings.HasPrefix(rec.Body.String(), tt.prefix) {
				t.Errorf("body should start with %q", tt.prefix)
			}
			if rec.Header().Get("ETag") == "" {
				t.Error("missing ETag")
			}
		})
	}
}

func TestPanelJSONLayout(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/panel.json?text=42&width=400&height=60", nil)
	rec := do(t, newTestServer(t), req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var out struct {
		Layout struct {
			Type string `json:"type"`
		} `json:"layout"`
		Chart json.RawMessage `json:"chart"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Layout.Type != "wide-no-chart" {
		t.Errorf("layout type = %q, want wide-no-chart", out.Layout.Type)
	}
	if len(out.Chart) != 0 && string(out.Chart) != "null" {
		t.Errorf("chart = %s, want null", out.Chart)
	}
}

func TestPanelBadRequests(t *testing.T) {
	tests := []struct {
		name string
		url  string
		code string
	}{
		{"unknown format", "/panel.gif?text=1", "INVALID_FORMAT"},
		{"bad width", "/panel.svg?width=wide", "INVALID_INPUT"},
		{"bad mode", "/panel.svg?color_mode=neon", "INVALID_MODE"},
		{"bad spark", "/panel.svg?spark=1,x", "INVALID_INPUT"},
		{"nan spark", "/panel.svg?spark=1,NaN", "INVALID_PANEL"},
		{"negative width", "/panel.svg?width=-5", "INVALID_PANEL"},
		{"bad scale", "/panel.png?scale=20", "INVALID_INPUT"},
		{"png too large", "/panel.png?width=16384&height=16384&scale=8", "INVALID_INPUT"},
		{"bad id prefix", "/panel.svg?id_prefix=%22%3E", "INVALID_INPUT"},
		{"hostile color", "/panel.svg?color=red%22%20onload%3D%22alert(1)", "INVALID_COLOR"},
	}
	s := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, httptest.NewRequest(http.MethodGet, tt.url, nil))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
			var body httputil.ErrorBody
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if string(body.Code) != tt.code {
				t.Errorf("code = %q, want %q", body.Code, tt.code)
			}
		})
	}
}

func TestRenderPost(t *testing.T) {
	body := `{"width": 300, "height": 150, "value": {"text": "42%", "title": "CPU"},
		"sparkline": [[0, 1], [1000, 3], [2000, 2]], "color_mode": "background"}`
	req := httptest.NewRequest(http.MethodPost, "/render?format=svg&id_prefix=cpu", strings.NewReader(body))

	rec := do(t, newTestServer(t), req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "cpu") {
		t.Error("svg should use the requested id prefix")
	}
}

func TestRenderPostDefaultsToSVG(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(`{"value": {"text": "1"}}`))
	rec := do(t, newTestServer(t), req)
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", ct)
	}
}

func TestRenderPostBadBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "width = 300"},
		{"unknown field", `{"value": {"text": "1"}, "colour": "red"}`},
		{"bad theme", `{"value": {"text": "1"}, "theme": "neon"}`},
	}
	s := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/render?format=json", strings.NewReader(tt.body))
			if rec := do(t, s, req); rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestRenderPostTooLarge(t *testing.T) {
	big := bytes.Repeat([]byte(" "), maxBodyBytes+10)
	req := httptest.NewRequest(http.MethodPost, "/render", bytes.NewReader(big))
	if rec := do(t, newTestServer(t), req); rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestConditionalGet(t *testing.T) {
	s := newTestServer(t)
	url := "/panel.svg?text=7"
	first := do(t, s, httptest.NewRequest(http.MethodGet, url, nil))

	req := httptest.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("If-None-Match", first.Header().Get("ETag"))
	if rec := do(t, s, req); rec.Code != http.StatusNotModified {
		t.Errorf("status = %d, want 304", rec.Code)
	}
}

func TestAutoIDPrefix(t *testing.T) {
	s := newTestServer(t)
	a := do(t, s, httptest.NewRequest(http.MethodGet, "/panel.svg?text=1&color_mode=background&spark=1,2&id_prefix=auto", nil))
	b := do(t, s, httptest.NewRequest(http.MethodGet, "/panel.svg?text=1&color_mode=background&spark=1,2&id_prefix=auto", nil))
	if a.Code != http.StatusOK || b.Code != http.StatusOK {
		t.Fatalf("status = %d/%d", a.Code, b.Code)
	}
	if a.Body.String() == b.Body.String() {
		t.Error("auto id prefixes should differ between requests")
	}
}

type httpRecorder struct {
	observability.Noop
	mu       sync.Mutex
	statuses []int
	failures []int
}

func (h *httpRecorder) RequestDone(_ context.Context, e observability.RequestEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, e.Status)
}

func (h *httpRecorder) RequestFailed(_ context.Context, e observability.RequestEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.failures = append(h.failures, e.Status)
}

func TestHTTPHooks(t *testing.T) {
	rec := &httpRecorder{}
	observability.Register(observability.Hooks{HTTP: rec})
	defer observability.Reset()

	s := newTestServer(t)
	do(t, s, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	do(t, s, httptest.NewRequest(http.MethodGet, "/panel.gif", nil))

	if len(rec.statuses) != 2 || rec.statuses[0] != 200 || rec.statuses[1] != 400 {
		t.Errorf("statuses = %v, want [200 400]", rec.statuses)
	}
	if len(rec.failures) != 1 || rec.failures[0] != 400 {
		t.Errorf("failures = %v, want [400]", rec.failures)
	}
}

func TestServeShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("listen: %v", err)
	}
	s := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
