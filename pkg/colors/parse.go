package colors

import (
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/bigvalue/pkg/errors"
)

// parseHex parses #rgb, #rrggbb and #rrggbbaa. Anything but hex digits
// after the hash is rejected.
func parseHex(s string) (Color, error) {
	digits := s[1:]
	if strings.Trim(digits, "0123456789abcdef") != "" {
		return Color{}, errors.New(errors.ErrCodeInvalidColor, "invalid hex color %q", s)
	}
	alpha := 1.0
	switch len(digits) {
	case 3, 6:
	case 8:
		a, err := strconv.ParseUint(digits[6:], 16, 8)
		if err != nil {
			return Color{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid hex color %q", s)
		}
		alpha = float64(a) / 255
		s = s[:7]
	default:
		return Color{}, errors.New(errors.ErrCodeInvalidColor, "invalid hex color %q", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid hex color %q", s)
	}
	return Color{c: c, a: alpha}, nil
}

// parseFunc parses rgb(r, g, b) and rgba(r, g, b, a).
func parseFunc(s string) (Color, error) {
	fn, args, ok := strings.Cut(s, "(")
	if !ok || (fn != "rgb" && fn != "rgba") || !strings.HasSuffix(args, ")") {
		return Color{}, errors.New(errors.ErrCodeInvalidColor, "malformed color %q", s)
	}
	parts := strings.Split(strings.TrimSuffix(args, ")"), ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, errors.New(errors.ErrCodeInvalidColor, "malformed color %q", s)
	}

	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil || math.IsNaN(v) || v < 0 || v > 255 {
			return Color{}, errors.New(errors.ErrCodeInvalidColor, "channel %d out of range in %q", i, s)
		}
		ch[i] = uint8(v + 0.5)
	}

	alpha := 1.0
	if len(parts) == 4 {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || math.IsNaN(v) {
			return Color{}, errors.New(errors.ErrCodeInvalidColor, "invalid alpha in %q", s)
		}
		alpha = v
	}
	return RGBA(ch[0], ch[1], ch[2], alpha), nil
}
