package panel

import (
	"strings"

	"github.com/matzehuels/bigvalue/pkg/errors"
)

// ColorMode selects whether the value color tints the value text or fills
// the panel background.
type ColorMode string

const (
	ColorModeValue      ColorMode = "value"
	ColorModeBackground ColorMode = "background"
)

// GraphMode selects how the sparkline is drawn.
type GraphMode string

const (
	GraphModeLine GraphMode = "line"
	GraphModeArea GraphMode = "area"
)

// JustifyMode selects how title and value are aligned.
type JustifyMode string

const (
	JustifyAuto   JustifyMode = "auto"
	JustifyCenter JustifyMode = "center"
)

// ParseColorMode parses a color mode name (case-insensitive).
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(s)); m {
	case ColorModeValue, ColorModeBackground:
		return m, nil
	}
	return "", errors.New(errors.ErrCodeInvalidMode, "invalid color mode: %q (must be one of: value, background)", s)
}

// ParseGraphMode parses a graph mode name (case-insensitive).
func ParseGraphMode(s string) (GraphMode, error) {
	switch m := GraphMode(strings.ToLower(s)); m {
	case GraphModeLine, GraphModeArea:
		return m, nil
	}
	return "", errors.New(errors.ErrCodeInvalidMode, "invalid graph mode: %q (must be one of: line, area)", s)
}

// ParseJustifyMode parses a justify mode name (case-insensitive).
func ParseJustifyMode(s string) (JustifyMode, error) {
	switch m := JustifyMode(strings.ToLower(s)); m {
	case JustifyAuto, JustifyCenter:
		return m, nil
	}
	return "", errors.New(errors.ErrCodeInvalidMode, "invalid justify mode: %q (must be one of: auto, center)", s)
}
