package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxTextLength bounds titles and value texts accepted from panel files and
// HTTP requests.
const maxTextLength = 256

// maxDimension bounds panel width and height in pixels.
const maxDimension = 16384

// ValidateDimension checks a panel width or height.
// Zero is allowed (it means "use the default"); negative, non-finite and
// absurdly large values are rejected.
func ValidateDimension(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidPanel, "%s must be a finite number", name)
	}
	if v < 0 {
		return New(ErrCodeInvalidPanel, "%s cannot be negative (got %g)", name, v)
	}
	if v > maxDimension {
		return New(ErrCodeInvalidPanel, "%s too large (max %d)", name, maxDimension)
	}
	return nil
}

// ValidateText checks a display string (title or value text).
//
// Validation rules:
//   - Maximum length of 256 bytes
//   - No control characters other than plain spaces
func ValidateText(name, s string) error {
	if len(s) > maxTextLength {
		return New(ErrCodeInvalidInput, "%s too long (max %d characters)", name, maxTextLength)
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s contains invalid control characters", name)
		}
	}
	return nil
}

// ValidatePanelFilename validates the name of a panel definition file.
// Only TOML, YAML and JSON files are accepted.
func ValidatePanelFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidInput, "panel filename cannot be empty")
	}
	if strings.ContainsRune(filename, '\x00') {
		return New(ErrCodeInvalidInput, "panel filename contains invalid characters")
	}
	lower := strings.ToLower(filename)
	for _, ext := range []string{".toml", ".yaml", ".yml", ".json"} {
		if strings.HasSuffix(lower, ext) {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported panel file %q (want .toml, .yaml, .yml or .json)", filename)
}
