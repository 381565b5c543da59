package sink

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/bigvalue/pkg/bigvalue"
	"github.com/matzehuels/bigvalue/pkg/chart"
	"github.com/matzehuels/bigvalue/pkg/colors"
	"github.com/matzehuels/bigvalue/pkg/panel"
	"github.com/matzehuels/bigvalue/pkg/textfit"
)

// Gradient endpoints approximating a 120deg CSS linear-gradient, in percent
// of the bounding box.
const (
	gradX1, gradY1 = 7, 25
	gradX2, gradY2 = 93, 75
)

// Drop shadow of the line geom on colored backgrounds: half its blur radius
// as standard deviation, offset downwards.
const (
	shadowStdDev  = 5
	shadowOffsetY = 7
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	idPrefix string
}

// WithIDPrefix namespaces gradient and filter ids so several panels can be
// inlined in one document.
func WithIDPrefix(p string) SVGOption { return func(r *svgRenderer) { r.idPrefix = p } }

func (r svgRenderer) id(name string) string {
	if r.idPrefix == "" {
		return "bigvalue-" + name
	}
	return r.idPrefix + "-" + name
}

// RenderSVG draws the panel as a standalone SVG document.
func RenderSVG(f Frame, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	w, h := pixels(f.Layout.Width), pixels(f.Layout.Height)
	canvas := svg.New(&buf)
	canvas.Start(w, h)

	r.renderDefs(canvas, f)
	r.renderBackground(canvas, f, w, h)
	if f.Chart != nil && f.Placement.Chart != nil {
		box := f.Placement.Chart
		canvas.Gtransform(fmt.Sprintf("translate(%s,%s)", num(box.Left), num(box.Top)))
		r.renderGeoms(canvas, f.Chart)
		canvas.Gend()
	}
	renderTexts(canvas, f)

	canvas.End()
	return buf.Bytes()
}

// RenderChartSVG draws only the sparkline, sized to the chart box. It
// returns nil when there is no chart.
func RenderChartSVG(c *bigvalue.Chart, opts ...SVGOption) []byte {
	if c == nil {
		return nil
	}
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(pixels(c.Width), pixels(c.Height))
	if needsShadow(c) {
		canvas.Def()
		r.renderShadowFilter(canvas)
		canvas.DefEnd()
	}
	r.renderGeoms(canvas, c)
	canvas.End()
	return buf.Bytes()
}

func (r svgRenderer) renderDefs(canvas *svg.SVG, f Frame) {
	gradient := f.Layout.ColorMode == panel.ColorModeBackground
	shadow := f.Chart != nil && needsShadow(f.Chart)
	if !gradient && !shadow {
		return
	}

	canvas.Def()
	if gradient {
		from, to := bigvalue.PanelGradient(f.Layout)
		canvas.LinearGradient(r.id("bg"), gradX1, gradY1, gradX2, gradY2, []svg.Offcolor{
			{Offset: 0, Color: paint(from), Opacity: 1},
			{Offset: 100, Color: paint(to), Opacity: 1},
		})
	}
	if shadow {
		r.renderShadowFilter(canvas)
	}
	canvas.DefEnd()
}

func (r svgRenderer) renderShadowFilter(canvas *svg.SVG) {
	canvas.Filter(r.id("shadow"))
	canvas.FeGaussianBlur(svg.Filterspec{In: "SourceAlpha", Result: "blur"}, shadowStdDev, shadowStdDev)
	canvas.FeOffset(svg.Filterspec{In: "blur", Result: "offsetBlur"}, 0, shadowOffsetY)
	canvas.FeMerge([]string{"offsetBlur", "SourceGraphic"})
	canvas.Fend()
}

func (r svgRenderer) renderBackground(canvas *svg.SVG, f Frame, w, h int) {
	fill := paint(bigvalue.PanelBackground(f.Layout))
	if f.Layout.ColorMode == panel.ColorModeBackground {
		fill = fmt.Sprintf("url(#%s)", r.id("bg"))
	}
	canvas.Roundrect(0, 0, w, h, 3, 3, "fill:"+fill)
}

func (r svgRenderer) renderGeoms(canvas *svg.SVG, c *bigvalue.Chart) {
	plot := chart.New(c)
	for _, g := range c.Geoms {
		path := plot.Path(g)
		if path.Empty() {
			continue
		}
		switch g.Type {
		case bigvalue.GeomArea:
			canvas.Path(path.Area(plot.Baseline).SVG(), areaStyle(g))
		default:
			style := lineStyle(g)
			if g.Style.HasShadow() {
				style += fmt.Sprintf(";filter:url(#%s)", r.id("shadow"))
			}
			canvas.Path(path.SVG(), style)
		}
	}
}

func renderTexts(canvas *svg.SVG, f Frame) {
	if t := f.Placement.Title; t != nil {
		writeText(canvas, *t, bigvalue.TitleStyles(f.Layout))
	}
	writeText(canvas, f.Placement.Value, bigvalue.ValueStyles(f.Layout))
}

func writeText(canvas *svg.SVG, t TextBox, s bigvalue.Style) {
	style := []string{
		"fill:" + paint(s.Get("color")),
		"font-size:" + s.Get("font-size"),
		"font-family:" + textfit.FontFamily,
		"text-anchor:" + t.Align.TextAnchor(),
		"dominant-baseline:central",
	}
	if s.Has("font-weight") {
		style = append(style, "font-weight:"+s.Get("font-weight"))
	}
	canvas.Text(int(math.Round(t.X)), int(math.Round(t.Y)), t.Text, strings.Join(style, ";"))
}

func areaStyle(g bigvalue.Geom) string {
	s := []string{"fill:" + paint(g.Color), "stroke:none"}
	if g.Style.FillOpacity > 0 {
		s = append(s, "fill-opacity:"+num(g.Style.FillOpacity))
	}
	return strings.Join(s, ";")
}

func lineStyle(g bigvalue.Geom) string {
	stroke, width := geomStroke(g)
	s := []string{"fill:none", "stroke:" + paint(stroke), "stroke-width:" + num(width), "stroke-linejoin:round"}
	if g.Style.Opacity > 0 {
		s = append(s, "opacity:"+num(g.Style.Opacity))
	}
	return strings.Join(s, ";")
}

// geomStroke resolves the stroke of a line geom: explicit style wins over
// the geom color and size.
func geomStroke(g bigvalue.Geom) (string, float64) {
	stroke, width := g.Color, g.Size
	if g.Style.Stroke != "" {
		stroke = g.Style.Stroke
	}
	if g.Style.LineWidth > 0 {
		width = g.Style.LineWidth
	}
	return stroke, width
}

// paint returns s when it is a color [colors.Parse] accepts, and black
// otherwise. svgo writes style strings verbatim, so nothing else may reach
// a style attribute.
func paint(s string) string {
	if _, err := colors.Parse(s); err != nil {
		return colors.MustParse(s).Hex()
	}
	return strings.TrimSpace(s)
}

func needsShadow(c *bigvalue.Chart) bool {
	for _, g := range c.Geoms {
		if g.Style.HasShadow() {
			return true
		}
	}
	return false
}

func pixels(v float64) int {
	return int(math.Ceil(max(0, v)))
}

func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// WriteSVG renders the panel to w.
func WriteSVG(w io.Writer, f Frame, opts ...SVGOption) error {
	_, err := w.Write(RenderSVG(f, opts...))
	return err
}
