// Package pipeline runs the BigValue panel pipeline shared by the CLI and
// the HTTP server.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Layout: size the panel, resolve its styles and build the chart
//     instructions (see [bigvalue.CalculateLayout] and [bigvalue.RenderGraph])
//  2. Render: turn the resulting frame into one or more output formats
//     (SVG, PNG, HTML, JSON)
//
// Layout is cheap and always recomputed. Rendered artifacts are cached by a
// hash of the panel props and the render options that change their bytes.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, props, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Render without a cache:
//
//	artifacts, err := pipeline.Render(props, pipeline.Options{Formats: []string{"json"}})
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bigvalue/pkg/bigvalue"
	"github.com/matzehuels/bigvalue/pkg/cache"
	"github.com/matzehuels/bigvalue/pkg/errors"
)

// DefaultScale is the default PNG scale factor.
const DefaultScale = 2.0

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatHTML = "html"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatHTML: true,
	FormatJSON: true,
}

var contentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatHTML: "text/html; charset=utf-8",
	FormatJSON: "application/json",
}

// ContentType returns the MIME type of an output format.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Options configures a render.
type Options struct {
	Formats  []string `json:"formats,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	IDPrefix string   `json:"id_prefix,omitempty"`

	// Refresh skips cache lookups. Fresh artifacts are still stored.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	// Layout options passed to the layout calculator. Tests use these to
	// swap the font fitter.
	LayoutOptions []bigvalue.LayoutOption `json:"-"`

	// LayoutKey names the LayoutOptions in cache keys. Runs with layout
	// options but no key bypass the cache.
	LayoutKey string `json:"layout_key,omitempty"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// PropsHash is the content hash of the panel props.
	PropsHash string

	// Layout is the computed layout of the panel.
	Layout bigvalue.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for a run.
type CacheInfo struct {
	Hits      int  // Number of formats served from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(formatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

func formatNames() []string {
	return []string{FormatSVG, FormatPNG, FormatHTML, FormatJSON}
}

// ParseFormats splits a comma separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		seen[f] = true
		out = append(out, f)
	}
	return out, nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender sets defaults and validates the render options.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 || o.Scale > 8 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be in (0, 8], got %v", o.Scale)
	}
	return nil
}

// ArtifactKeyOpts returns cache key options for one format. Only the options
// that change the format's bytes are included.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Layout: o.LayoutKey}
	switch format {
	case FormatPNG:
		k.Scale = o.Scale
	case FormatSVG, FormatHTML:
		k.IDPrefix = o.IDPrefix
	}
	return k
}

// Cacheable reports whether artifacts of this run may be read from or
// stored in the cache.
func (o *Options) Cacheable() bool {
	return len(o.LayoutOptions) == 0 || o.LayoutKey != ""
}
