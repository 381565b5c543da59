package bigvalue

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Style is a CSS-like dictionary keyed by CSS property name.
type Style map[string]string

// Get returns the value of a property, or "" when unset.
func (s Style) Get(prop string) string { return s[prop] }

// Has reports whether a property is set.
func (s Style) Has(prop string) bool {
	_, ok := s[prop]
	return ok
}

// CSS renders the style as an inline declaration list with sorted keys,
// e.g. "color: #EEE; font-size: 24px;".
func (s Style) CSS() string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s: %s;", k, s[k])
	}
	return b.String()
}

// px formats a pixel length without trailing zeros.
func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
