package sink

import (
	"bytes"
	"encoding/json"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/bigvalue/pkg/errors"
	"github.com/matzehuels/bigvalue/pkg/panel"
)

func TestRenderSVG(t *testing.T) {
	p := testProps(300, 150, "CPU <load>", 8)
	p.ColorMode = panel.ColorModeBackground
	p.GraphMode = panel.GraphModeLine

	out := string(RenderSVG(NewFrame(p), WithIDPrefix("p1")))

	for _, want := range []string{
		"<svg",
		`width="300"`,
		`height="150"`,
		`id="p1-bg"`,
		"url(#p1-bg)",
		`id="p1-shadow"`,
		"filter:url(#p1-shadow)",
		"CPU &lt;load&gt;",
		"42%",
		"<path",
		"</svg>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderSVG() missing %q", want)
		}
	}
}

func TestRenderSVGValueMode(t *testing.T) {
	out := string(RenderSVG(NewFrame(testProps(300, 150, "CPU", 8))))

	if !strings.Contains(out, "fill:#1f1f20") {
		t.Error("value mode should fill the panel with the theme background")
	}
	if strings.Contains(out, "linearGradient") {
		t.Error("value mode should not define a gradient")
	}
	if strings.Contains(out, "filter") {
		t.Error("area geoms should not use a shadow filter")
	}
	if !strings.Contains(out, "fill:#73BF69") {
		t.Error("value text should use the value color")
	}
	if got := strings.Count(out, "<path"); got != 2 {
		t.Errorf("path count = %d, want 2 (area and line)", got)
	}
}

func TestRenderPNGPixelLimit(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		scale         float64
	}{
		{"max size at max scale", 16384, 16384, 8},
		{"just over at scale 2", 2049, 2048, 2},
		{"wide strip", 16384, 1100, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RenderPNG(NewFrame(testProps(tt.width, tt.height, "CPU", 0)), WithScale(tt.scale))
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("RenderPNG() error = %v, want %s", err, errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestRenderSVGUnparsableColor(t *testing.T) {
	p := testProps(300, 150, "CPU", 8)
	p.Value.Color = `red" onload="alert(1)`

	out := string(RenderSVG(NewFrame(p)))
	for _, bad := range []string{"onload", `alert(1)`} {
		if strings.Contains(out, bad) {
			t.Errorf("RenderSVG() leaked %q into the document", bad)
		}
	}
	if !strings.Contains(out, "fill:#000000") {
		t.Error("an unparsable color should be drawn black")
	}
}

func TestPaint(t *testing.T) {
	tests := []struct{ in, want string }{
		{"#73BF69", "#73BF69"},
		{" white ", "white"},
		{"rgba(255, 255, 255, 0.4)", "rgba(255, 255, 255, 0.4)"},
		{`#fff" x="1`, "#000000"},
		{"", "#000000"},
	}
	for _, tt := range tests {
		if got := paint(tt.in); got != tt.want {
			t.Errorf("paint(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderSVGNoChart(t *testing.T) {
	out := string(RenderSVG(NewFrame(testProps(400, 60, "Requests", 0))))
	if strings.Contains(out, "<path") {
		t.Error("panel without sparkline should not draw paths")
	}
	if !strings.Contains(out, "text-anchor:end") {
		t.Error("wide value should be right aligned")
	}
}

func TestRenderChartSVG(t *testing.T) {
	if RenderChartSVG(nil) != nil {
		t.Error("RenderChartSVG(nil) should be nil")
	}
	f := NewFrame(testProps(300, 150, "CPU", 8))
	out := string(RenderChartSVG(f.Chart))
	if !strings.Contains(out, `width="300"`) {
		t.Errorf("chart svg should be sized to the chart: %s", out)
	}
}

func TestRenderPNG(t *testing.T) {
	tests := []struct {
		name  string
		mode  panel.ColorMode
		graph panel.GraphMode
		opts  []PNGOption
		w, h  int
	}{
		{"default scale", panel.ColorModeValue, panel.GraphModeArea, nil, 600, 300},
		{"scale 1", panel.ColorModeBackground, panel.GraphModeLine, []PNGOption{WithScale(1)}, 300, 150},
		{"invalid scale ignored", panel.ColorModeBackground, panel.GraphModeArea, []PNGOption{WithScale(-3)}, 600, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testProps(300, 150, "CPU", 8)
			p.ColorMode = tt.mode
			p.GraphMode = tt.graph

			data, err := RenderPNG(NewFrame(p), tt.opts...)
			if err != nil {
				t.Fatalf("RenderPNG() error: %v", err)
			}
			img, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("png.Decode() error: %v", err)
			}
			b := img.Bounds()
			if b.Dx() != tt.w || b.Dy() != tt.h {
				t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.w, tt.h)
			}
		})
	}
}

func TestGradientLine(t *testing.T) {
	x0, y0, x1, y1 := gradientLine(100, 100, 90)
	if x0 != 0 || x1 != 100 {
		t.Errorf("90deg x = %v..%v, want 0..100", x0, x1)
	}
	if y0 < 49.99 || y0 > 50.01 || y1 < 49.99 || y1 > 50.01 {
		t.Errorf("90deg y = %v..%v, want 50", y0, y1)
	}
}

func TestRenderHTML(t *testing.T) {
	p := testProps(300, 150, "<b>CPU</b>", 8)
	p.ColorMode = panel.ColorModeBackground

	data, err := RenderHTML(NewFrame(p))
	if err != nil {
		t.Fatalf("RenderHTML() error: %v", err)
	}
	out := string(data)

	for _, want := range []string{
		`class="bigvalue"`,
		"linear-gradient(120deg",
		"flex-direction: column",
		"&lt;b&gt;CPU&lt;/b&gt;",
		`class="bigvalue-chart"`,
		"<svg",
		"position: absolute",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderHTML() missing %q", want)
		}
	}
	if strings.Contains(out, "<?xml") {
		t.Error("inline chart should not carry an XML declaration")
	}
	if strings.Contains(out, "ZgotmplZ") {
		t.Error("styles were rejected by the template escaper")
	}
}

func TestRenderHTMLNoTitleNoChart(t *testing.T) {
	data, err := RenderHTML(NewFrame(testProps(300, 150, "", 0)))
	if err != nil {
		t.Fatalf("RenderHTML() error: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "bigvalue-title") || strings.Contains(out, "bigvalue-chart") {
		t.Errorf("unexpected title or chart:\n%s", out)
	}
}

func TestRenderJSON(t *testing.T) {
	p := testProps(300, 150, "CPU", 8)
	p.ColorMode = panel.ColorModeBackground

	data, err := RenderJSON(NewFrame(p))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out struct {
		Layout struct {
			Type        string  `json:"type"`
			ChartHeight float64 `json:"chart_height"`
		} `json:"layout"`
		Styles map[string]map[string]string `json:"styles"`
		Gradient *struct {
			From string `json:"from"`
		} `json:"gradient"`
		Chart *struct {
			Geoms []json.RawMessage `json:"geoms"`
		} `json:"chart"`
		Placement struct {
			Value struct {
				Align string `json:"align"`
			} `json:"value"`
		} `json:"placement"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if out.Layout.Type != "stacked" {
		t.Errorf("layout.type = %q, want stacked", out.Layout.Type)
	}
	if out.Layout.ChartHeight != 53.5 {
		t.Errorf("layout.chart_height = %v, want 53.5", out.Layout.ChartHeight)
	}
	for _, k := range []string{"panel", "container", "title", "value"} {
		if len(out.Styles[k]) == 0 {
			t.Errorf("styles.%s is empty", k)
		}
	}
	if out.Gradient == nil || !strings.HasPrefix(out.Gradient.From, "rgb(") {
		t.Errorf("gradient = %+v, want rgb stops", out.Gradient)
	}
	if out.Chart == nil || len(out.Chart.Geoms) != 2 {
		t.Errorf("chart = %+v, want two geoms", out.Chart)
	}
	if out.Placement.Value.Align != "start" {
		t.Errorf("placement.value.align = %q, want start", out.Placement.Value.Align)
	}
}
