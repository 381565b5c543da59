package chart

import (
	"math"
	"strconv"
	"strings"
)

// Cubic is one cubic Bézier segment ending in To.
type Cubic struct {
	C1, C2, To Point
}

// Path is a start point followed by cubic segments. An area path also
// carries the baseline it closes to.
type Path struct {
	Start    Point
	Segments []Cubic
	Closed   bool
	Baseline float64
	empty    bool
}

// Empty reports whether the path has nothing to draw.
func (p Path) Empty() bool { return p.empty }

// End returns the last point of the path.
func (p Path) End() Point {
	if len(p.Segments) == 0 {
		return p.Start
	}
	return p.Segments[len(p.Segments)-1].To
}

// Area returns p closed down to baseline.
func (p Path) Area(baseline float64) Path {
	p.Closed = true
	p.Baseline = baseline
	return p
}

// SVG renders the path as SVG path data.
func (p Path) SVG() string {
	if p.empty {
		return ""
	}
	var b strings.Builder
	b.WriteString("M")
	writePoint(&b, p.Start)
	for _, s := range p.Segments {
		b.WriteString("C")
		writePoint(&b, s.C1)
		b.WriteByte(',')
		writePoint(&b, s.C2)
		b.WriteByte(',')
		writePoint(&b, s.To)
	}
	if p.Closed {
		b.WriteString("L")
		writePoint(&b, Point{p.End().X, p.Baseline})
		b.WriteString("L")
		writePoint(&b, Point{p.Start.X, p.Baseline})
		b.WriteString("Z")
	}
	return b.String()
}

// Drawer receives path commands. gg.Context satisfies it.
type Drawer interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	CubicTo(x1, y1, x2, y2, x3, y3 float64)
	ClosePath()
}

// Draw replays the path onto d.
func (p Path) Draw(d Drawer) {
	if p.empty {
		return
	}
	d.MoveTo(p.Start.X, p.Start.Y)
	for _, s := range p.Segments {
		d.CubicTo(s.C1.X, s.C1.Y, s.C2.X, s.C2.Y, s.To.X, s.To.Y)
	}
	if p.Closed {
		d.LineTo(p.End().X, p.Baseline)
		d.LineTo(p.Start.X, p.Baseline)
		d.ClosePath()
	}
}

func writePoint(b *strings.Builder, p Point) {
	b.WriteString(fmtCoord(p.X))
	b.WriteByte(',')
	b.WriteString(fmtCoord(p.Y))
}

func fmtCoord(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// LinePath joins pts with straight segments.
func LinePath(pts []Point) Path {
	if len(pts) == 0 {
		return Path{empty: true}
	}
	p := Path{Start: pts[0]}
	for i := 1; i < len(pts); i++ {
		p.Segments = append(p.Segments, straight(pts[i-1], pts[i]))
	}
	return p
}

// SmoothPath interpolates pts with a monotone cubic spline along x
// (Fritsch-Carlson tangents, as in d3's curveMonotoneX). The curve passes
// through every point and never leaves the vertical range of two
// neighbours. Points must be ordered by x.
func SmoothPath(pts []Point) Path {
	if len(pts) < 3 {
		return LinePath(pts)
	}

	n := len(pts)
	h := make([]float64, n-1)
	d := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		h[i] = pts[i+1].X - pts[i].X
		if h[i] != 0 {
			d[i] = (pts[i+1].Y - pts[i].Y) / h[i]
		}
	}

	m := make([]float64, n)
	for i := 1; i < n-1; i++ {
		m[i] = interiorTangent(h[i-1], h[i], d[i-1], d[i])
	}
	m[0] = endTangent(d[0], m[1])
	m[n-1] = endTangent(d[n-2], m[n-2])

	p := Path{Start: pts[0]}
	for i := 0; i < n-1; i++ {
		a, b := pts[i], pts[i+1]
		dx := (b.X - a.X) / 3
		p.Segments = append(p.Segments, Cubic{
			C1: Point{a.X + dx, a.Y + dx*m[i]},
			C2: Point{b.X - dx, b.Y - dx*m[i+1]},
			To: b,
		})
	}
	return p
}

func interiorTangent(h0, h1, d0, d1 float64) float64 {
	if d0*d1 <= 0 || h0+h1 == 0 {
		return 0
	}
	p := (d0*h1 + d1*h0) / (h0 + h1)
	return (sign(d0) + sign(d1)) * math.Min(math.Min(math.Abs(d0), math.Abs(d1)), 0.5*math.Abs(p))
}

func endTangent(d, neighbour float64) float64 {
	return (3*d - neighbour) / 2
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func straight(a, b Point) Cubic {
	return Cubic{
		C1: Point{a.X + (b.X-a.X)/3, a.Y + (b.Y-a.Y)/3},
		C2: Point{b.X - (b.X-a.X)/3, b.Y - (b.Y-a.Y)/3},
		To: b,
	}
}
