package panel

import (
	"strings"

	"github.com/matzehuels/bigvalue/pkg/errors"
)

// ThemeType is the light/dark flag of a theme.
type ThemeType string

const (
	ThemeDark  ThemeType = "dark"
	ThemeLight ThemeType = "light"
)

// Theme is the minimal theme descriptor the panel needs.
type Theme struct {
	Type   ThemeType `json:"type"`
	Colors Palette   `json:"colors"`
}

// Palette holds the theme colors referenced by panel styles.
type Palette struct {
	// Dark4 is the panel background in value color mode.
	Dark4 string `json:"dark4"`
}

// IsDark reports whether t is a dark theme.
func (t Theme) IsDark() bool { return t.Type != ThemeLight }

// IsLight reports whether t is a light theme.
func (t Theme) IsLight() bool { return t.Type == ThemeLight }

// DarkTheme returns the built-in dark theme.
func DarkTheme() Theme {
	return Theme{
		Type:   ThemeDark,
		Colors: Palette{Dark4: "#1f1f20"},
	}
}

// LightTheme returns the built-in light theme.
// Dark4 is shared with the dark theme: panels keep a dark backdrop so the
// white title stays readable.
func LightTheme() Theme {
	return Theme{
		Type:   ThemeLight,
		Colors: Palette{Dark4: "#1f1f20"},
	}
}

// ThemeFor returns the built-in theme of the given type.
func ThemeFor(t ThemeType) Theme {
	if t == ThemeLight {
		return LightTheme()
	}
	return DarkTheme()
}

// ParseThemeType parses a theme name (case-insensitive).
func ParseThemeType(s string) (ThemeType, error) {
	switch t := ThemeType(strings.ToLower(s)); t {
	case ThemeDark, ThemeLight:
		return t, nil
	}
	return "", errors.New(errors.ErrCodeInvalidMode, "invalid theme: %q (must be one of: dark, light)", s)
}
