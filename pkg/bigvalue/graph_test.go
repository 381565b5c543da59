package bigvalue

import (
	"testing"

	"github.com/matzehuels/bigvalue/pkg/panel"
)

func TestRenderGraphNil(t *testing.T) {
	stacked := fixedLayout(Stacked, panel.ColorModeValue, false)
	stacked.ChartWidth, stacked.ChartHeight = 300, 53.5

	tests := []struct {
		name  string
		l     Layout
		spark *panel.Sparkline
	}{
		{"no sparkline", stacked, nil},
		{"empty sparkline", stacked, &panel.Sparkline{}},
		{"stacked no chart", fixedLayout(StackedNoChart, panel.ColorModeValue, false), spark(3)},
		{"wide no chart", fixedLayout(WideNoChart, panel.ColorModeValue, false), spark(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if c := RenderGraph(tt.l, tt.spark); c != nil {
				t.Errorf("RenderGraph() = %+v, want nil", c)
			}
		})
	}
}

func TestRenderGraphChart(t *testing.T) {
	p := props(300, 150, "CPU", spark(4))
	p.ColorMode = panel.ColorModeValue
	l := CalculateLayout(p)

	c := RenderGraph(l, p.Sparkline)
	if c == nil {
		t.Fatal("RenderGraph() = nil")
	}
	if c.Width != 300 {
		t.Errorf("Width = %v, want 300", c.Width)
	}
	if c.Height != 53.5-8 {
		t.Errorf("Height = %v, want %v", c.Height, 53.5-8)
	}
	if c.Padding != [4]float64{4, 0, 0, 0} {
		t.Errorf("Padding = %v", c.Padding)
	}
	if c.Animate {
		t.Error("Animate = true, want false")
	}
	if c.Scales["time"].Type != "time" {
		t.Errorf("time scale = %q, want time", c.Scales["time"].Type)
	}
	if len(c.Data) != 4 {
		t.Fatalf("len(Data) = %d, want 4", len(c.Data))
	}
	for i, d := range c.Data {
		if d.Name != "A" || d.Time != p.Sparkline.Data[i].Time || d.Value != p.Sparkline.Data[i].Value {
			t.Errorf("Data[%d] = %+v", i, d)
		}
	}

	// area chart spanning the panel is pinned to the bottom edge
	want := map[string]string{"position": "absolute", "bottom": "0", "left": "0", "right": "0", "top": "unset"}
	for k, v := range want {
		if got := c.Style.Get(k); got != v {
			t.Errorf("Style[%q] = %q, want %q", k, got, v)
		}
	}
}

func TestRenderGraphStyles(t *testing.T) {
	t.Run("stacked line", func(t *testing.T) {
		l := fixedLayout(Stacked, panel.ColorModeValue, false)
		l.GraphMode = panel.GraphModeLine
		l.ChartWidth, l.ChartHeight = 268, 37.5

		c := RenderGraph(l, spark(3))
		if got := c.Style.Get("position"); got != "absolute" {
			t.Errorf("position = %q, want absolute", got)
		}
		if got := c.Style.Get("bottom"); got != "8px" {
			t.Errorf("bottom = %q, want 8px", got)
		}
		if c.Style.Has("left") {
			t.Error("inset chart should not set left")
		}
	})

	t.Run("wide", func(t *testing.T) {
		l := fixedLayout(Wide, panel.ColorModeValue, false)
		l.Width = 600
		l.GraphMode = panel.GraphModeLine
		l.ChartWidth, l.ChartHeight = 300, 118

		c := RenderGraph(l, spark(3))
		if got := c.Style.Get("width"); got != "300px" {
			t.Errorf("width = %q, want 300px", got)
		}
		if got := c.Style.Get("height"); got != "110px" {
			t.Errorf("height = %q, want 110px", got)
		}
		if c.Style.Has("position") {
			t.Error("wide chart should flow inline")
		}
	})

	t.Run("tiny chart height", func(t *testing.T) {
		l := fixedLayout(Stacked, panel.ColorModeValue, false)
		l.ChartWidth, l.ChartHeight = 100, 4
		if c := RenderGraph(l, spark(3)); c.Height != 0 {
			t.Errorf("Height = %v, want 0", c.Height)
		}
	})
}

func TestGraphGeomDispatch(t *testing.T) {
	tests := []struct {
		name      string
		colorMode panel.ColorMode
		graphMode panel.GraphMode
		types     []GeomType
		colors    []string
	}{
		{
			name:      "background line",
			colorMode: panel.ColorModeBackground,
			graphMode: panel.GraphModeLine,
			types:     []GeomType{GeomLine},
			colors:    []string{"white"},
		},
		{
			name:      "background area",
			colorMode: panel.ColorModeBackground,
			graphMode: panel.GraphModeArea,
			types:     []GeomType{GeomArea, GeomLine},
			colors:    []string{"rgba(255,255,255,0.4)", "rgb(217, 255, 207)"},
		},
		{
			name:      "value area",
			colorMode: panel.ColorModeValue,
			graphMode: panel.GraphModeArea,
			types:     []GeomType{GeomArea, GeomLine},
			colors:    []string{"rgba(115, 191, 105, 0.2)", "#73BF69"},
		},
		{
			name:      "value line falls back to classic",
			colorMode: panel.ColorModeValue,
			graphMode: panel.GraphModeLine,
			types:     []GeomType{GeomArea, GeomLine},
			colors:    []string{"rgba(115, 191, 105, 0.2)", "#73BF69"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := fixedLayout(Stacked, tt.colorMode, false)
			l.GraphMode = tt.graphMode
			l.ChartWidth, l.ChartHeight = 300, 50

			c := RenderGraph(l, spark(3))
			if len(c.Geoms) != len(tt.types) {
				t.Fatalf("len(Geoms) = %d, want %d", len(c.Geoms), len(tt.types))
			}
			for i, g := range c.Geoms {
				if g.Type != tt.types[i] {
					t.Errorf("Geoms[%d].Type = %q, want %q", i, g.Type, tt.types[i])
				}
				if g.Color != tt.colors[i] {
					t.Errorf("Geoms[%d].Color = %q, want %q", i, g.Color, tt.colors[i])
				}
				if g.Position != "time*value" || g.Shape != "smooth" {
					t.Errorf("Geoms[%d] position/shape = %q/%q", i, g.Position, g.Shape)
				}
			}
		})
	}
}

func TestLineGeomShadow(t *testing.T) {
	g := renderLineGeom(Layout{})[0]
	if !g.Style.HasShadow() {
		t.Fatal("line geom should cast a shadow")
	}
	if g.Size != 2 || g.Style.Stroke != "#CCC" || g.Style.ShadowOffsetY != 7 || g.Style.ShadowBlur != 10 {
		t.Errorf("line geom = %+v", g)
	}

	for _, g := range renderClassicAreaGeom(fixedLayout(Stacked, panel.ColorModeValue, false)) {
		if g.Style.HasShadow() {
			t.Errorf("classic %s geom should not cast a shadow", g.Type)
		}
	}
}
