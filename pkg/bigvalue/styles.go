package bigvalue

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/bigvalue/pkg/colors"
	"github.com/matzehuels/bigvalue/pkg/panel"
)

const (
	textShadow       = "#333 0px 0px 1px"
	defaultTextColor = "#EEE"
	lightTitleColor  = "white"
	valueFontWeight  = "500"
	gradientAngle    = "120deg"
)

// PanelGradient returns the two stops of the background gradient used in
// background color mode. The value color is darkened and hue-rotated in
// opposite directions; light themes lighten instead, and less strongly.
func PanelGradient(l Layout) (from, to string) {
	themeFactor := 1.0
	if !l.Theme.IsDark() {
		themeFactor = -0.7
	}
	base := colors.MustParse(l.ValueColor)
	from = base.Darken(15 * themeFactor).Spin(8).RGBString()
	to = base.Darken(5 * themeFactor).Spin(-8).RGBString()
	return from, to
}

// PanelBackground returns the solid panel fill used in value color mode.
// A theme without a Dark4 entry falls back to the dark palette.
func PanelBackground(l Layout) string {
	if c := strings.TrimSpace(l.Theme.Colors.Dark4); c != "" {
		return c
	}
	return panel.DarkTheme().Colors.Dark4
}

// PanelStyles returns the style of the outer panel box.
func PanelStyles(l Layout) Style {
	s := Style{
		"width":         px(l.Width),
		"height":        px(l.Height),
		"padding":       px(PanelPadding),
		"border-radius": "3px",
		"position":      "relative",
		"display":       "flex",
	}

	switch l.ColorMode {
	case panel.ColorModeBackground:
		from, to := PanelGradient(l)
		s["background"] = fmt.Sprintf("linear-gradient(%s, %s, %s)", gradientAngle, from, to)
	case panel.ColorModeValue:
		s["background"] = PanelBackground(l)
	}

	switch l.Type {
	case Stacked:
		s["flex-direction"] = "column"
	case StackedNoChart:
		s["align-items"] = "center"
	case Wide:
		s["flex-direction"] = "row"
		s["align-items"] = "center"
		s["justify-content"] = "space-between"
	case WideNoChart:
		s["align-items"] = "center"
	}

	if l.JustifyCenter {
		s["align-items"] = "center"
		s["flex-direction"] = "row"
	}
	return s
}

// TitleStyles returns the style of the title text.
func TitleStyles(l Layout) Style {
	s := Style{
		"font-size":   px(l.TitleFontSize),
		"text-shadow": textShadow,
		"color":       defaultTextColor,
	}
	if l.Theme.IsLight() {
		s["color"] = lightTitleColor
	}
	return s
}

// ValueStyles returns the style of the value text.
func ValueStyles(l Layout) Style {
	s := Style{
		"font-size":   px(l.ValueFontSize),
		"color":       defaultTextColor,
		"text-shadow": textShadow,
		"font-weight": valueFontWeight,
		"line-height": strconv.FormatFloat(LineHeight, 'f', -1, 64),
	}
	if l.ColorMode == panel.ColorModeValue {
		s["color"] = l.ValueColor
	}
	return s
}

// ValueAndTitleContainerStyles returns the style of the flex box wrapping
// title and value.
func ValueAndTitleContainerStyles(l Layout) Style {
	s := Style{"display": "flex"}

	switch l.Type {
	case Wide:
		s["flex-direction"] = "column"
		s["flex-grow"] = "1"
	case WideNoChart:
		s["flex-direction"] = "row"
		s["justify-content"] = "space-between"
		s["align-items"] = "center"
		s["flex-grow"] = "1"
	case StackedNoChart:
		s["flex-direction"] = "column"
		s["flex-grow"] = "1"
	default:
		s["flex-direction"] = "column"
		s["justify-content"] = "center"
	}

	if l.JustifyCenter {
		s["align-items"] = "center"
		s["justify-content"] = "center"
	}
	return s
}
