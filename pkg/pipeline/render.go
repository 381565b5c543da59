package pipeline

import (
	"fmt"

	"github.com/matzehuels/bigvalue/pkg/colors"
	"github.com/matzehuels/bigvalue/pkg/errors"
	"github.com/matzehuels/bigvalue/pkg/panel"
	"github.com/matzehuels/bigvalue/pkg/render/sink"
)

// Render computes the layout for props and renders every requested format.
// It does not touch any cache.
func Render(props panel.Props, opts Options) (map[string][]byte, error) {
	frame, err := NewFrame(props, opts)
	if err != nil {
		return nil, err
	}
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	return RenderFrame(frame, opts.Formats, opts)
}

// NewFrame applies defaults to props, validates them (value color included)
// and lays the panel out.
func NewFrame(props panel.Props, opts Options) (sink.Frame, error) {
	props.SetDefaults()
	if err := props.Validate(); err != nil {
		return sink.Frame{}, err
	}
	if err := colors.Validate(props.Value.Color, props.Theme); err != nil {
		return sink.Frame{}, err
	}
	return sink.NewFrame(props, opts.LayoutOptions...), nil
}

// RenderFrame renders an already laid out frame in the given formats.
func RenderFrame(f sink.Frame, formats []string, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		data, err := renderFormat(f, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(f sink.Frame, format string, opts Options) ([]byte, error) {
	var svgOpts []sink.SVGOption
	if opts.IDPrefix != "" {
		svgOpts = append(svgOpts, sink.WithIDPrefix(opts.IDPrefix))
	}

	switch format {
	case FormatSVG:
		return sink.RenderSVG(f, svgOpts...), nil
	case FormatPNG:
		return sink.RenderPNG(f, sink.WithScale(opts.Scale))
	case FormatHTML:
		return sink.RenderHTML(f, svgOpts...)
	case FormatJSON:
		return sink.RenderJSON(f)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
	}
}
