package sink

import (
	"bytes"
	"image/png"
	"math"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/bigvalue/pkg/bigvalue"
	"github.com/matzehuels/bigvalue/pkg/chart"
	"github.com/matzehuels/bigvalue/pkg/colors"
	"github.com/matzehuels/bigvalue/pkg/errors"
	"github.com/matzehuels/bigvalue/pkg/panel"
	"github.com/matzehuels/bigvalue/pkg/textfit"
)

const (
	defaultScale   = 2.0
	maxScale       = 8.0
	cornerRadius   = 3.0
	shadowAlpha    = 0.5
	gradientDegree = 120.0
)

// MaxPNGPixels caps the device pixels of one raster, scale included.
const MaxPNGPixels = 4096 * 4096

// PNGOption configures [RenderPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 && s <= maxScale {
			r.scale = s
		}
	}
}

// RenderPNG rasterizes the panel. Text uses the bundled Go Medium face, so
// the raster matches the metrics the layout was computed with.
func RenderPNG(f Frame, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: defaultScale}
	for _, opt := range opts {
		opt(&r)
	}

	fw, fh := math.Ceil(f.Layout.Width*r.scale), math.Ceil(f.Layout.Height*r.scale)
	if fw*fh > MaxPNGPixels {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"png of %gx%g pixels exceeds the limit of %d pixels; lower the size or scale", fw, fh, MaxPNGPixels)
	}
	w, h := max(1, int(fw)), max(1, int(fh))
	dc := gg.NewContext(w, h)

	r.drawBackground(dc, f)
	if f.Chart != nil && f.Placement.Chart != nil {
		r.drawChart(dc, f.Chart, *f.Placement.Chart)
	}
	if t := f.Placement.Title; t != nil {
		if err := r.drawText(dc, *t, bigvalue.TitleStyles(f.Layout)); err != nil {
			return nil, err
		}
	}
	if err := r.drawText(dc, f.Placement.Value, bigvalue.ValueStyles(f.Layout)); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func (r pngRenderer) drawBackground(dc *gg.Context, f Frame) {
	w, h := f.Layout.Width*r.scale, f.Layout.Height*r.scale
	dc.DrawRoundedRectangle(0, 0, w, h, cornerRadius*r.scale)

	if f.Layout.ColorMode != panel.ColorModeBackground {
		dc.SetColor(colors.MustParse(bigvalue.PanelBackground(f.Layout)).NRGBA())
		dc.Fill()
		return
	}

	from, to := bigvalue.PanelGradient(f.Layout)
	x0, y0, x1, y1 := gradientLine(w, h, gradientDegree)
	grad := gg.NewLinearGradient(x0, y0, x1, y1)
	grad.AddColorStop(0, colors.MustParse(from).NRGBA())
	grad.AddColorStop(1, colors.MustParse(to).NRGBA())
	dc.SetFillStyle(grad)
	dc.Fill()
}

// gradientLine returns the endpoints of a CSS linear-gradient at angle deg
// over a w x h box: through the centre, long enough that the corners sit
// on the first and last color.
func gradientLine(w, h, deg float64) (x0, y0, x1, y1 float64) {
	rad := deg * math.Pi / 180
	dx, dy := math.Sin(rad), -math.Cos(rad)
	half := (math.Abs(w*dx) + math.Abs(h*dy)) / 2
	cx, cy := w/2, h/2
	return cx - dx*half, cy - dy*half, cx + dx*half, cy + dy*half
}

func (r pngRenderer) drawChart(dc *gg.Context, c *bigvalue.Chart, box Box) {
	plot := chart.New(c)
	d := scaledDrawer{dc: dc, scale: r.scale, dx: box.Left, dy: box.Top}

	for _, g := range c.Geoms {
		path := plot.Path(g)
		if path.Empty() {
			continue
		}
		if g.Type == bigvalue.GeomArea {
			path.Area(plot.Baseline).Draw(d)
			dc.SetColor(colors.MustParse(g.Color).NRGBA())
			dc.Fill()
			continue
		}

		stroke, width := geomStroke(g)
		dc.SetLineWidth(width * r.scale)
		if g.Style.HasShadow() {
			shadow := d
			shadow.dy += g.Style.ShadowOffsetY
			path.Draw(shadow)
			dc.SetColor(colors.MustParse(g.Style.ShadowColor).SetAlpha(shadowAlpha).NRGBA())
			dc.Stroke()
		}
		path.Draw(d)
		dc.SetColor(colors.MustParse(stroke).NRGBA())
		dc.Stroke()
	}
}

func (r pngRenderer) drawText(dc *gg.Context, t TextBox, s bigvalue.Style) error {
	if t.Text == "" || t.FontSize <= 0 {
		return nil
	}
	c := colors.MustParse(s.Get("color")).NRGBA()
	err := textfit.WithFace(t.FontSize*r.scale, func(face font.Face) {
		dc.SetFontFace(face)
		dc.SetColor(c)
		dc.DrawStringAnchored(t.Text, t.X*r.scale, t.Y*r.scale, t.Align.Fraction(), 0.5)
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "load font")
	}
	return nil
}

// scaledDrawer replays chart paths onto a gg context, translated into the
// chart box and scaled to device pixels.
type scaledDrawer struct {
	dc     *gg.Context
	scale  float64
	dx, dy float64
}

var _ chart.Drawer = scaledDrawer{}

func (d scaledDrawer) x(v float64) float64 { return (v + d.dx) * d.scale }
func (d scaledDrawer) y(v float64) float64 { return (v + d.dy) * d.scale }

func (d scaledDrawer) MoveTo(x, y float64) { d.dc.MoveTo(d.x(x), d.y(y)) }
func (d scaledDrawer) LineTo(x, y float64) { d.dc.LineTo(d.x(x), d.y(y)) }
func (d scaledDrawer) ClosePath()          { d.dc.ClosePath() }

func (d scaledDrawer) CubicTo(x1, y1, x2, y2, x3, y3 float64) {
	d.dc.CubicTo(d.x(x1), d.y(y1), d.x(x2), d.y(y2), d.x(x3), d.y(y3))
}
