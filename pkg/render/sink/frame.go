package sink

import (
	"github.com/matzehuels/bigvalue/pkg/bigvalue"
	"github.com/matzehuels/bigvalue/pkg/panel"
)

// Frame bundles everything a sink needs to draw one panel.
type Frame struct {
	Layout    bigvalue.Layout
	Value     panel.DisplayValue
	Chart     *bigvalue.Chart
	Placement Placement
}

// NewFrame runs the layout calculator and chart renderer for p and places
// the result.
func NewFrame(p panel.Props, opts ...bigvalue.LayoutOption) Frame {
	l := bigvalue.CalculateLayout(p, opts...)
	c := bigvalue.RenderGraph(l, p.Sparkline)
	return Frame{
		Layout:    l,
		Value:     p.Value,
		Chart:     c,
		Placement: Place(l, p.Value, c),
	}
}
