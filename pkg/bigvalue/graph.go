package bigvalue

import (
	"github.com/matzehuels/bigvalue/pkg/colors"
	"github.com/matzehuels/bigvalue/pkg/panel"
)

// ChartTopMargin is the gap between the chart box and the top of its area.
const ChartTopMargin = 8.0

const (
	seriesName     = "A"
	geomPosition   = "time*value"
	geomShape      = "smooth"
	brightenAmount = 40
	fillAlpha      = 0.2
)

// GeomType is the kind of a chart geometry.
type GeomType string

const (
	GeomLine GeomType = "line"
	GeomArea GeomType = "area"
)

// Chart is a declarative description of the sparkline chart.
type Chart struct {
	Width   float64          `json:"width"`
	Height  float64          `json:"height"`
	Padding [4]float64       `json:"padding"` // top, right, bottom, left
	Animate bool             `json:"animate"`
	Scales  map[string]Scale `json:"scales"`
	Data    []SeriesPoint    `json:"data"`
	Geoms   []Geom           `json:"geoms"`
	Style   Style            `json:"style"`
}

// Scale describes how a data field maps to an axis.
type Scale struct {
	Type string `json:"type"`
}

// SeriesPoint is one named sample of the chart series.
type SeriesPoint struct {
	Time  int64   `json:"time"`
	Value float64 `json:"value"`
	Name  string  `json:"name"`
}

// Geom is a single geometry layer of the chart.
type Geom struct {
	Type     GeomType  `json:"type"`
	Position string    `json:"position"`
	Size     float64   `json:"size"`
	Color    string    `json:"color"`
	Shape    string    `json:"shape"`
	Style    GeomStyle `json:"style"`
}

// GeomStyle holds the stroke, fill and shadow attributes of a geometry.
// Zero values mean "not set".
type GeomStyle struct {
	Stroke        string  `json:"stroke,omitempty"`
	LineWidth     float64 `json:"lineWidth,omitempty"`
	ShadowBlur    float64 `json:"shadowBlur,omitempty"`
	ShadowColor   string  `json:"shadowColor,omitempty"`
	ShadowOffsetY float64 `json:"shadowOffsetY,omitempty"`
	Opacity       float64 `json:"opacity,omitempty"`
	FillOpacity   float64 `json:"fillOpacity,omitempty"`
}

// HasShadow reports whether the geometry casts a drop shadow.
func (s GeomStyle) HasShadow() bool {
	return s.ShadowColor != "" && (s.ShadowBlur > 0 || s.ShadowOffsetY != 0)
}

type geomKey struct {
	color panel.ColorMode
	graph panel.GraphMode
}

type geomRenderer func(Layout) []Geom

// geomRenderers selects the geometry by (color mode, graph mode). Pairs not
// listed fall back to renderClassicAreaGeom.
var geomRenderers = map[geomKey]geomRenderer{
	{panel.ColorModeBackground, panel.GraphModeLine}: renderLineGeom,
	{panel.ColorModeBackground, panel.GraphModeArea}: renderAreaGeomOnColoredBackground,
}

func graphGeom(colorMode panel.ColorMode, graphMode panel.GraphMode) geomRenderer {
	if r, ok := geomRenderers[geomKey{colorMode, graphMode}]; ok {
		return r
	}
	return renderClassicAreaGeom
}

// RenderGraph returns the chart drawing instructions for the sparkline, or
// nil when there is nothing to draw: no sparkline, an empty one, or a
// layout without room for a chart.
func RenderGraph(l Layout, s *panel.Sparkline) *Chart {
	if !s.HasData() || !l.Type.HasChart() {
		return nil
	}

	data := make([]SeriesPoint, len(s.Data))
	for i, p := range s.Data {
		data[i] = SeriesPoint{Time: p.Time, Value: p.Value, Name: seriesName}
	}

	height := max(0, l.ChartHeight-ChartTopMargin)
	return &Chart{
		Width:   l.ChartWidth,
		Height:  height,
		Padding: [4]float64{4, 0, 0, 0},
		Animate: false,
		Scales:  map[string]Scale{"time": {Type: "time"}},
		Data:    data,
		Geoms:   graphGeom(l.ColorMode, l.GraphMode)(l),
		Style:   chartStyles(l, height),
	}
}

func chartStyles(l Layout, height float64) Style {
	s := Style{}
	switch l.Type {
	case Wide:
		s["width"] = px(l.ChartWidth)
		s["height"] = px(height)
	case Stacked:
		s["position"] = "absolute"
		s["bottom"] = px(ChartTopMargin)
	}

	if l.FullBleedChart() {
		s["position"] = "absolute"
		s["bottom"] = "0"
		s["left"] = "0"
		s["right"] = "0"
		s["top"] = "unset"
	}
	return s
}

func renderLineGeom(Layout) []Geom {
	return []Geom{{
		Type:     GeomLine,
		Position: geomPosition,
		Size:     2,
		Color:    "white",
		Shape:    geomShape,
		Style: GeomStyle{
			Stroke:        "#CCC",
			LineWidth:     2,
			ShadowBlur:    10,
			ShadowColor:   "#444",
			ShadowOffsetY: 7,
		},
	}}
}

func renderAreaGeomOnColoredBackground(l Layout) []Geom {
	lineColor := colors.MustParse(l.ValueColor).Brighten(brightenAmount).RGBString()
	style := GeomStyle{Stroke: lineColor, LineWidth: 2}
	return []Geom{
		{Type: GeomArea, Position: geomPosition, Size: 0, Color: "rgba(255,255,255,0.4)", Shape: geomShape, Style: style},
		{Type: GeomLine, Position: geomPosition, Size: 1, Color: lineColor, Shape: geomShape, Style: style},
	}
}

func renderClassicAreaGeom(l Layout) []Geom {
	fillColor := colors.MustParse(l.ValueColor).SetAlpha(fillAlpha).RGBString()
	style := GeomStyle{Stroke: l.ValueColor, Opacity: 1, FillOpacity: 1}
	return []Geom{
		{Type: GeomArea, Position: geomPosition, Size: 0, Color: fillColor, Shape: geomShape, Style: style},
		{Type: GeomLine, Position: geomPosition, Size: 1, Color: l.ValueColor, Shape: geomShape, Style: style},
	}
}
