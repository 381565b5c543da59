package bigvalue

import (
	"math"

	"github.com/matzehuels/bigvalue/pkg/colors"
	"github.com/matzehuels/bigvalue/pkg/panel"
	"github.com/matzehuels/bigvalue/pkg/textfit"
)

// Panel geometry shared with the sinks that place text and charts.
const (
	PanelPadding = 16.0 // inner padding of the panel, px
	LineHeight   = 1.2  // text line height, relative to the font size
)

const (
	minValueFontSize = 20.0
	maxValueFontSize = 50.0
	minTitleFontSize = 14.0
	titleValueRatio  = 0.45
	chartHeightRatio = 0.25
	titleHeightRatio = 0.15

	wideAspectRatio       = 2.8
	wideMinChartHeight    = 80.0  // exclusive
	stackedMinChartHeight = 100.0 // inclusive

	wideTitleWidthRatio = 0.6
	wideValueWidthRatio = 0.3
	wideChartWidthRatio = 0.5
)

// LayoutType is the presentation mode chosen from the aspect ratio and the
// availability of a chart.
type LayoutType int

const (
	Stacked LayoutType = iota
	StackedNoChart
	Wide
	WideNoChart
)

// String returns the lower-case name of the layout type.
func (t LayoutType) String() string {
	switch t {
	case Stacked:
		return "stacked"
	case StackedNoChart:
		return "stacked-no-chart"
	case Wide:
		return "wide"
	case WideNoChart:
		return "wide-no-chart"
	}
	return "unknown"
}

// MarshalText encodes the layout type by name.
func (t LayoutType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// HasChart reports whether the layout reserves room for a sparkline.
func (t LayoutType) HasChart() bool {
	return t == Stacked || t == Wide
}

// IsWide reports whether the layout is one of the wide variants.
func (t LayoutType) IsWide() bool {
	return t == Wide || t == WideNoChart
}

// Layout is the derived, immutable sizing of one panel render pass.
type Layout struct {
	TitleFontSize float64         `json:"title_font_size"`
	ValueFontSize float64         `json:"value_font_size"`
	ChartWidth    float64         `json:"chart_width"`
	ChartHeight   float64         `json:"chart_height"`
	Type          LayoutType      `json:"type"`
	Width         float64         `json:"width"`
	Height        float64         `json:"height"`
	ColorMode     panel.ColorMode `json:"color_mode"`
	GraphMode     panel.GraphMode `json:"graph_mode"`
	Theme         panel.Theme     `json:"theme"`
	ValueColor    string          `json:"value_color"`
	JustifyCenter bool            `json:"justify_center"`
}

// FullBleedChart reports whether the chart spans the whole panel width.
func (l Layout) FullBleedChart() bool {
	return l.Type.HasChart() && l.ChartWidth == l.Width
}

// FontFitter picks a font size at which text fits a box.
type FontFitter interface {
	FitFontSize(text string, width, height, lineHeight float64) float64
}

// FontFitterFunc adapts a function to [FontFitter].
type FontFitterFunc func(text string, width, height, lineHeight float64) float64

// FitFontSize calls f.
func (f FontFitterFunc) FitFontSize(text string, width, height, lineHeight float64) float64 {
	return f(text, width, height, lineHeight)
}

// LayoutOption configures [CalculateLayout].
type LayoutOption func(*layoutConfig)

type layoutConfig struct {
	fitter FontFitter
}

// WithFontFitter replaces the font-measurement based fitter.
func WithFontFitter(f FontFitter) LayoutOption {
	return func(c *layoutConfig) {
		if f != nil {
			c.fitter = f
		}
	}
}

// ShouldJustifyCenter reports whether title and value are centered:
// either explicitly requested, or because there is no title to balance.
func ShouldJustifyCenter(p panel.Props) bool {
	if p.JustifyMode == panel.JustifyCenter {
		return true
	}
	return !p.HasTitle()
}

// CalculateLayout derives the layout of a panel. It never fails: zero,
// negative or non-finite sizes produce a degenerate layout with clamped
// font sizes and an empty chart box.
func CalculateLayout(p panel.Props, opts ...LayoutOption) Layout {
	cfg := layoutConfig{fitter: textfit.Fitter{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	width, height := sanitize(p.Width), sanitize(p.Height)
	color := p.Value.Color
	if color == "" {
		color = panel.DefaultColor
	}

	s := sizing{
		fit:       cfg.fitter,
		width:     width,
		height:    height,
		value:     p.Value,
		hasChart:  p.Sparkline.HasData(),
		graphMode: p.GraphMode,
	}
	if height > 0 && width/height > wideAspectRatio {
		s.wide()
	} else {
		s.stacked()
	}

	return Layout{
		TitleFontSize: s.titleFontSize(p.HasTitle()),
		ValueFontSize: clamp(s.valueFont, minValueFontSize, maxValueFontSize),
		ChartWidth:    math.Max(0, s.chartWidth),
		ChartHeight:   math.Max(0, s.chartHeight),
		Type:          s.layoutType,
		Width:         width,
		Height:        height,
		ColorMode:     p.ColorMode,
		GraphMode:     p.GraphMode,
		Theme:         p.Theme,
		ValueColor:    colors.Resolve(color, p.Theme),
		JustifyCenter: ShouldJustifyCenter(p),
	}
}

// sizing holds the intermediate values of one layout computation.
type sizing struct {
	fit       FontFitter
	width     float64
	height    float64
	value     panel.DisplayValue
	hasChart  bool
	graphMode panel.GraphMode

	layoutType  LayoutType
	chartWidth  float64
	chartHeight float64
	titleFont   float64
	valueFont   float64
}

func (s *sizing) fitText(text string, w, h float64) float64 {
	return sanitize(s.fit.FitFontSize(text, math.Max(0, w), math.Max(0, h), LineHeight))
}

func (s *sizing) stacked() {
	maxTextWidth := s.width - PanelPadding*2
	maxTextHeight := s.height - PanelPadding*2

	s.layoutType = StackedNoChart
	if s.height >= stackedMinChartHeight && s.hasChart {
		s.layoutType = Stacked
		s.chartHeight = s.height * chartHeightRatio
		s.chartWidth = s.width - PanelPadding*2
		if s.graphMode == panel.GraphModeArea {
			s.chartWidth = s.width
			s.chartHeight += PanelPadding
		}
	}

	var titleHeight float64
	if s.value.Title != "" {
		s.titleFont = s.fitText(s.value.Title, maxTextWidth, s.height*titleHeightRatio)
		titleHeight = math.Max(s.titleFont, minTitleFontSize) * LineHeight
	}
	s.valueFont = s.fitText(s.value.Text, maxTextWidth, maxTextHeight-s.chartHeight-titleHeight)
}

func (s *sizing) wide() {
	maxTextWidth := s.width - PanelPadding
	maxTextHeight := s.height - PanelPadding

	if s.height > wideMinChartHeight && s.hasChart {
		s.wideWithChart()
		return
	}

	s.layoutType = WideNoChart
	if s.value.Title != "" {
		s.titleFont = s.fitText(s.value.Title, maxTextWidth*wideTitleWidthRatio, maxTextHeight)
	}
	s.valueFont = s.fitText(s.value.Text, maxTextWidth*wideValueWidthRatio, maxTextHeight)
}

// wideWithChart splits the panel into a text column on the left and the
// chart on the right half. The title is derived from the value size so the
// two stay proportional.
func (s *sizing) wideWithChart() {
	s.layoutType = Wide
	s.chartWidth = s.width * wideChartWidthRatio
	s.chartHeight = s.height - PanelPadding*2
	if s.graphMode == panel.GraphModeArea {
		s.chartWidth += PanelPadding
		s.chartHeight += PanelPadding
	}

	textWidth := s.width - PanelPadding*2 - s.chartWidth
	textHeight := s.height - PanelPadding*2
	if s.value.Title != "" {
		textHeight /= 1 + titleValueRatio*LineHeight
	}
	s.valueFont = s.fitText(s.value.Text, textWidth, textHeight)
	if s.value.Title != "" {
		s.titleFont = clamp(s.valueFont, minValueFontSize, maxValueFontSize) * titleValueRatio
	}
}

func (s *sizing) titleFontSize(hasTitle bool) float64 {
	if !hasTitle {
		return 0
	}
	return math.Max(s.titleFont, minTitleFontSize)
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
