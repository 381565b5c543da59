package server

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/bigvalue/pkg/errors"
	"github.com/matzehuels/bigvalue/pkg/panel"
	"github.com/matzehuels/bigvalue/pkg/pipeline"
)

// maxSparkPoints bounds the sparkline accepted from a query string.
const maxSparkPoints = 1000

var idPrefixPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]{0,31}$`)

// propsFromQuery builds panel props from query parameters:
//
//	width, height        panel size in pixels
//	text, title, color   the display value
//	color_mode           value | background
//	graph_mode           line | area
//	justify              auto | center
//	theme                dark | light
//	spark                comma separated sample values, e.g. spark=1,2,3
func propsFromQuery(q url.Values) (panel.Props, error) {
	f := panel.File{
		Value: panel.DisplayValue{
			Text:  q.Get("text"),
			Title: q.Get("title"),
			Color: q.Get("color"),
		},
		ColorMode:   q.Get("color_mode"),
		GraphMode:   q.Get("graph_mode"),
		JustifyMode: q.Get("justify"),
		Theme:       q.Get("theme"),
	}

	var err error
	if f.Width, err = floatParam(q, "width"); err != nil {
		return panel.Props{}, err
	}
	if f.Height, err = floatParam(q, "height"); err != nil {
		return panel.Props{}, err
	}
	if f.Sparkline, err = sparkParam(q.Get("spark")); err != nil {
		return panel.Props{}, err
	}
	return f.Props()
}

// renderOptions reads the optional scale and id_prefix parameters.
// id_prefix=auto assigns a random prefix so several inline SVGs can share a
// page without clashing gradient ids.
func renderOptions(q url.Values, format string) (pipeline.Options, error) {
	opts := pipeline.Options{Formats: []string{format}}

	scale, err := floatParam(q, "scale")
	if err != nil {
		return opts, err
	}
	opts.Scale = scale

	switch p := q.Get("id_prefix"); {
	case p == "":
	case p == "auto":
		opts.IDPrefix = "bv" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	case idPrefixPattern.MatchString(p):
		opts.IDPrefix = p
	default:
		return opts, errors.New(errors.ErrCodeInvalidInput, "invalid id_prefix: %q", p)
	}
	return opts, opts.ValidateForRender()
}

func floatParam(q url.Values, name string) (float64, error) {
	s := q.Get(name)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s must be a number, got %q", name, s)
	}
	return v, nil
}

// sparkParam parses spark=1,2,3 into evenly spaced samples one second apart.
func sparkParam(s string) ([][2]float64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) > maxSparkPoints {
		return nil, errors.New(errors.ErrCodeInvalidInput, "spark has %d points (max %d)", len(parts), maxSparkPoints)
	}
	out := make([][2]float64, 0, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "spark value %d is not a number: %q", i, p)
		}
		out = append(out, [2]float64{float64(i) * 1000, v})
	}
	return out, nil
}
