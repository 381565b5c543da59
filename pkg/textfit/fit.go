package textfit

import (
	"math"

	"golang.org/x/image/font"
)

// referenceSize is the size text is measured at before scaling.
const referenceSize = 14.0

// widthSlack is added to measured widths to leave room for glyph overhang.
const widthSlack = 2.0

// MeasureText returns the advance width in pixels of text at fontSize.
// It returns 0 when the bundled font cannot be loaded.
func MeasureText(text string, fontSize float64) float64 {
	if text == "" || fontSize <= 0 || math.IsNaN(fontSize) || math.IsInf(fontSize, 0) {
		return 0
	}
	var w float64
	err := WithFace(referenceSize, func(f font.Face) {
		w = float64(font.MeasureString(f, text)) / 64
	})
	if err != nil {
		return 0
	}
	return w * fontSize / referenceSize
}

// CalculateFontSize returns the largest font size at which text fits in a
// width x height box, where each line takes lineHeight x fontSize pixels.
// Degenerate boxes (non-positive or non-finite sides) yield 0.
func CalculateFontSize(text string, width, height, lineHeight float64) float64 {
	if !usable(width) || !usable(height) || !usable(lineHeight) {
		return 0
	}
	byWidth := width / (MeasureText(text, referenceSize) + widthSlack) * referenceSize
	byHeight := height / lineHeight
	return math.Min(byWidth, byHeight)
}

// Fitter adapts [CalculateFontSize] to interfaces that expect a method.
type Fitter struct{}

// FitFontSize implements the layout calculator's font fitter.
func (Fitter) FitFontSize(text string, width, height, lineHeight float64) float64 {
	return CalculateFontSize(text, width, height, lineHeight)
}

func usable(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
