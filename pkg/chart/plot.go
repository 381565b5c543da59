package chart

import (
	"github.com/matzehuels/bigvalue/pkg/bigvalue"
)

// Point is a position in chart pixel space, y growing downwards.
type Point struct {
	X, Y float64
}

// Plot is the chart box with its scales and projected points.
type Plot struct {
	Width    float64
	Height   float64
	Left     float64
	Top      float64
	Right    float64
	Bottom   float64
	X        TimeScale
	Y        LinearScale
	Points   []Point
	Baseline float64
}

// New projects the series of c into its padded box. The y scale puts the
// series maximum at the top edge and the minimum on the baseline.
func New(c *bigvalue.Chart) *Plot {
	if c == nil {
		return &Plot{}
	}
	p := &Plot{
		Width:  c.Width,
		Height: c.Height,
		Top:    c.Padding[0],
		Left:   c.Padding[3],
	}
	p.Right = max(p.Left, c.Width-c.Padding[1])
	p.Bottom = max(p.Top, c.Height-c.Padding[2])
	p.Baseline = p.Bottom

	times := make([]int64, len(c.Data))
	values := make([]float64, len(c.Data))
	for i, d := range c.Data {
		times[i] = d.Time
		values[i] = d.Value
	}
	p.X = NewTimeScale(times, p.Left, p.Right)
	p.Y = NewLinearScale(values, p.Bottom, p.Top)

	p.Points = make([]Point, len(c.Data))
	for i, d := range c.Data {
		p.Points[i] = Point{X: p.X.Map(d.Time), Y: p.Y.Map(d.Value)}
	}
	return p
}

// Path builds the outline of a geom: smooth curves for the "smooth" shape
// and straight segments otherwise.
func (p *Plot) Path(g bigvalue.Geom) Path {
	if g.Shape == "smooth" {
		return SmoothPath(p.Points)
	}
	return LinePath(p.Points)
}
