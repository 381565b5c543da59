// Package colors resolves dashboard color names against a theme and
// provides the handful of color adjustments the panel styles need
// (darken, lighten, hue spin, alpha, brighten).
//
// Color math is delegated to go-colorful; adjustments follow the familiar
// tinycolor semantics so gradients and line colors match what dashboard
// users expect. All adjustment methods return new values.
package colors

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/bigvalue/pkg/errors"
	"github.com/matzehuels/bigvalue/pkg/panel"
)

// Color is an sRGB color with alpha.
type Color struct {
	c colorful.Color
	a float64
}

// RGBA builds a color from 0-255 channels and an alpha in [0,1].
func RGBA(r, g, b uint8, a float64) Color {
	return Color{
		c: colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255},
		a: clamp01(a),
	}
}

// Parse parses hex (#rgb, #rrggbb, #rrggbbaa), rgb()/rgba() and CSS
// keyword colors. Dashboard palette names need a theme; use [Resolve].
func Parse(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case s == "":
		return Color{}, errors.New(errors.ErrCodeInvalidColor, "empty color")
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	case strings.HasPrefix(s, "rgb"):
		return parseFunc(s)
	}
	if hex, ok := cssColors[s]; ok {
		if s == "transparent" {
			return Color{a: 0}, nil
		}
		return parseHex(hex)
	}
	return Color{}, errors.New(errors.ErrCodeInvalidColor, "unknown color: %q", s)
}

// Resolve turns a configured color (hex, rgb, CSS keyword or dashboard
// palette name) into a concrete color string for the theme. Unknown names
// are returned unchanged so callers can still pass them through to CSS.
func Resolve(name string, theme panel.Theme) string {
	key := strings.TrimSpace(strings.ToLower(name))
	if v, ok := namedColors[key]; ok {
		if theme.IsLight() {
			return v.light
		}
		return v.dark
	}
	return name
}

// Validate reports whether a configured color resolves to something
// [Parse] accepts. An empty name is valid: the panel default applies.
func Validate(name string, theme panel.Theme) error {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	if _, err := Parse(Resolve(name, theme)); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid value color %q", name)
	}
	return nil
}

// MustParse parses s and falls back to opaque black on failure.
// Style helpers use it so that a bad color never aborts rendering.
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		return Color{a: 1}
	}
	return c
}

// Alpha returns the alpha channel in [0,1].
func (c Color) Alpha() float64 { return c.a }

// Darken decreases lightness by amount percent (negative lightens).
func (c Color) Darken(amount float64) Color {
	h, s, l := c.c.Hsl()
	l = clamp01(l - amount/100)
	return Color{c: colorful.Hsl(h, s, l), a: c.a}
}

// Lighten increases lightness by amount percent.
func (c Color) Lighten(amount float64) Color {
	return c.Darken(-amount)
}

// Spin rotates the hue by deg degrees.
func (c Color) Spin(deg float64) Color {
	h, s, l := c.c.Hsl()
	h = math.Mod(h+deg, 360)
	if h < 0 {
		h += 360
	}
	return Color{c: colorful.Hsl(h, s, l), a: c.a}
}

// SetAlpha returns c with the given alpha.
func (c Color) SetAlpha(a float64) Color {
	return Color{c: c.c, a: clamp01(a)}
}

// Brighten adds amount percent of full intensity to every RGB channel.
func (c Color) Brighten(amount float64) Color {
	r, g, b := c.rgb255()
	delta := math.Round(255 * amount / 100)
	shift := func(v float64) uint8 {
		return uint8(math.Max(0, math.Min(255, v+delta)))
	}
	return RGBA(shift(r), shift(g), shift(b), c.a)
}

// RGBString formats c as "rgb(r, g, b)" or "rgba(r, g, b, a)".
func (c Color) RGBString() string {
	r, g, b := c.rgb255()
	if c.a >= 1 {
		return fmt.Sprintf("rgb(%d, %d, %d)", int(r), int(g), int(b))
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", int(r), int(g), int(b), strconv.FormatFloat(c.a, 'f', -1, 64))
}

// Hex formats c as #rrggbb, dropping alpha.
func (c Color) Hex() string {
	return c.c.Clamped().Hex()
}

// NRGBA converts c for use with image/draw based renderers.
func (c Color) NRGBA() color.NRGBA {
	r, g, b := c.rgb255()
	return color.NRGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(math.Round(c.a * 255))}
}

func (c Color) rgb255() (r, g, b float64) {
	cc := c.c.Clamped()
	return math.Round(cc.R * 255), math.Round(cc.G * 255), math.Round(cc.B * 255)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
