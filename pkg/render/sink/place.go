package sink

import (
	"github.com/matzehuels/bigvalue/pkg/bigvalue"
	"github.com/matzehuels/bigvalue/pkg/panel"
	"github.com/matzehuels/bigvalue/pkg/textfit"
)

const rowGap = bigvalue.PanelPadding / 2

// Box is an axis-aligned rectangle in panel pixels, y growing downwards.
type Box struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// Width returns the horizontal span of the box.
func (b Box) Width() float64 { return b.Right - b.Left }

// Height returns the vertical span of the box.
func (b Box) Height() float64 { return b.Bottom - b.Top }

// CenterX returns the horizontal center of the box.
func (b Box) CenterX() float64 { return (b.Left + b.Right) / 2 }

// CenterY returns the vertical center of the box.
func (b Box) CenterY() float64 { return (b.Top + b.Bottom) / 2 }

// Align is the horizontal anchor of a text run.
type Align int

const (
	AlignStart Align = iota
	AlignMiddle
	AlignEnd
)

// TextAnchor returns the SVG text-anchor value.
func (a Align) TextAnchor() string {
	switch a {
	case AlignMiddle:
		return "middle"
	case AlignEnd:
		return "end"
	}
	return "start"
}

// MarshalText encodes the alignment by its SVG name.
func (a Align) MarshalText() ([]byte, error) {
	return []byte(a.TextAnchor()), nil
}

// Fraction returns the anchor as a fraction of the text width.
func (a Align) Fraction() float64 {
	return float64(a) / 2
}

// TextBox is a single line of text anchored at (X, Y), Y being the middle
// of the line box.
type TextBox struct {
	Text     string  `json:"text"`
	FontSize float64 `json:"font_size"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Align    Align   `json:"align"`
	Box      Box     `json:"box"`
}

// Placement is the absolute geometry of a rendered panel.
type Placement struct {
	Panel Box      `json:"panel"`
	Title *TextBox `json:"title,omitempty"`
	Value TextBox  `json:"value"`
	Chart *Box     `json:"chart,omitempty"`
}

// Place resolves the flex styles of a panel into absolute boxes. Title and
// value form a column that is vertically centred in the space the chart
// leaves free; wide panels without a chart put them on one row instead.
func Place(l bigvalue.Layout, v panel.DisplayValue, c *bigvalue.Chart) Placement {
	pl := Placement{Panel: Box{Right: l.Width, Bottom: l.Height}}
	inner := inset(pl.Panel, bigvalue.PanelPadding)
	area := inner

	if c != nil {
		chart := placeChart(l, c, inner)
		pl.Chart = &chart
		if l.Type.IsWide() {
			area.Right = max(area.Left, chart.Left)
		} else {
			area.Bottom = max(area.Top, inner.Bottom-l.ChartHeight)
		}
	}

	value := newTextBox(v.Text, l.ValueFontSize)
	var title *TextBox
	if v.Title != "" {
		t := newTextBox(v.Title, l.TitleFontSize)
		title = &t
	}

	if l.Type == bigvalue.WideNoChart {
		placeRow(l, area, title, &value)
	} else {
		placeColumn(l, area, title, &value)
	}
	pl.Title = title
	pl.Value = value
	return pl
}

func placeChart(l bigvalue.Layout, c *bigvalue.Chart, inner Box) Box {
	switch {
	case l.Type == bigvalue.Wide:
		b := Box{Right: inner.Right, Top: inner.CenterY() - c.Height/2}
		b.Left = b.Right - c.Width
		b.Bottom = b.Top + c.Height
		return b
	case l.FullBleedChart():
		return Box{Left: 0, Right: l.Width, Top: l.Height - c.Height, Bottom: l.Height}
	default:
		bottom := l.Height - bigvalue.ChartTopMargin
		return Box{Left: inner.Left, Right: inner.Left + c.Width, Top: bottom - c.Height, Bottom: bottom}
	}
}

func placeColumn(l bigvalue.Layout, area Box, title, value *TextBox) {
	var titleH float64
	if title != nil {
		titleH = title.FontSize * bigvalue.LineHeight
	}
	valueH := value.FontSize * bigvalue.LineHeight
	top := area.CenterY() - (titleH+valueH)/2

	x, align := area.Left, AlignStart
	if l.JustifyCenter {
		x, align = area.CenterX(), AlignMiddle
	}
	if title != nil {
		title.anchor(x, top+titleH/2, align)
	}
	value.anchor(x, top+titleH+valueH/2, align)
}

func placeRow(l bigvalue.Layout, area Box, title, value *TextBox) {
	cy := area.CenterY()
	if title == nil {
		if l.JustifyCenter {
			value.anchor(area.CenterX(), cy, AlignMiddle)
		} else {
			value.anchor(area.Right, cy, AlignEnd)
		}
		return
	}

	if !l.JustifyCenter {
		title.anchor(area.Left, cy, AlignStart)
		value.anchor(area.Right, cy, AlignEnd)
		return
	}

	tw := textfit.MeasureText(title.Text, title.FontSize)
	vw := textfit.MeasureText(value.Text, value.FontSize)
	x := area.CenterX() - (tw+rowGap+vw)/2
	title.anchor(x, cy, AlignStart)
	value.anchor(x+tw+rowGap, cy, AlignStart)
}

func newTextBox(text string, size float64) TextBox {
	return TextBox{Text: text, FontSize: size}
}

func (t *TextBox) anchor(x, y float64, a Align) {
	t.X, t.Y, t.Align = x, y, a
	w := textfit.MeasureText(t.Text, t.FontSize)
	h := t.FontSize * bigvalue.LineHeight
	left := x - w*a.Fraction()
	t.Box = Box{Left: left, Right: left + w, Top: y - h/2, Bottom: y + h/2}
}

func inset(b Box, d float64) Box {
	out := Box{Left: b.Left + d, Top: b.Top + d, Right: b.Right - d, Bottom: b.Bottom - d}
	out.Right = max(out.Left, out.Right)
	out.Bottom = max(out.Top, out.Bottom)
	return out
}
