// Package panel defines the inputs of a BigValue panel: its size, the value
// being displayed, an optional sparkline and the color, graph and justify
// modes, plus the light/dark theme descriptor.
//
// Props are plain values owned by the caller. They can be built in code or
// decoded from a panel file (TOML, YAML or JSON) with [Load] or [Decode].
package panel

import (
	"math"

	"github.com/matzehuels/bigvalue/pkg/errors"
)

// Defaults applied by [Props.SetDefaults].
const (
	DefaultWidth  = 300.0
	DefaultHeight = 150.0
	DefaultColor  = "green"
)

// Props is everything the layout calculator needs to size and style a panel.
type Props struct {
	Width       float64
	Height      float64
	Value       DisplayValue
	Sparkline   *Sparkline
	ColorMode   ColorMode
	GraphMode   GraphMode
	JustifyMode JustifyMode
	Theme       Theme
}

// DisplayValue is the formatted value shown in the panel.
type DisplayValue struct {
	Text  string `json:"text" toml:"text" yaml:"text"`
	Title string `json:"title,omitempty" toml:"title" yaml:"title"`
	Color string `json:"color,omitempty" toml:"color" yaml:"color"`
}

// Sparkline is a time-ordered series drawn as a small trend chart.
type Sparkline struct {
	Data []Point
}

// Point is a single sparkline sample. Time is in unix milliseconds.
type Point struct {
	Time  int64
	Value float64
}

// HasData reports whether s is present and holds at least one point.
// A sparkline without points is treated the same as no sparkline.
func (s *Sparkline) HasData() bool {
	return s != nil && len(s.Data) > 0
}

// Values returns the sample values in order.
func (s *Sparkline) Values() []float64 {
	if s == nil {
		return nil
	}
	out := make([]float64, len(s.Data))
	for i, p := range s.Data {
		out[i] = p.Value
	}
	return out
}

// HasTitle reports whether the panel shows a title.
func (p Props) HasTitle() bool {
	return len(p.Value.Title) > 0
}

// SetDefaults fills zero-valued fields with their defaults.
func (p *Props) SetDefaults() {
	if p.Width == 0 {
		p.Width = DefaultWidth
	}
	if p.Height == 0 {
		p.Height = DefaultHeight
	}
	if p.ColorMode == "" {
		p.ColorMode = ColorModeValue
	}
	if p.GraphMode == "" {
		p.GraphMode = GraphModeArea
	}
	if p.JustifyMode == "" {
		p.JustifyMode = JustifyAuto
	}
	if p.Theme.Type == "" {
		p.Theme = DarkTheme()
	}
}

// Validate checks sizes, texts and enum values. Call SetDefaults first:
// empty modes are rejected. Colors are not checked; unknown colors fall back
// during layout.
func (p Props) Validate() error {
	if err := errors.ValidateDimension("width", p.Width); err != nil {
		return err
	}
	if err := errors.ValidateDimension("height", p.Height); err != nil {
		return err
	}
	if err := errors.ValidateText("value text", p.Value.Text); err != nil {
		return err
	}
	if err := errors.ValidateText("title", p.Value.Title); err != nil {
		return err
	}
	if _, err := ParseColorMode(string(p.ColorMode)); err != nil {
		return err
	}
	if _, err := ParseGraphMode(string(p.GraphMode)); err != nil {
		return err
	}
	if _, err := ParseJustifyMode(string(p.JustifyMode)); err != nil {
		return err
	}
	if _, err := ParseThemeType(string(p.Theme.Type)); err != nil {
		return err
	}
	if p.Sparkline != nil {
		for i, pt := range p.Sparkline.Data {
			if math.IsNaN(pt.Value) || math.IsInf(pt.Value, 0) {
				return errors.New(errors.ErrCodeInvalidPanel, "sparkline point %d is not a finite number", i)
			}
		}
	}
	return nil
}
