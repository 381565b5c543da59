package panel

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/bigvalue/pkg/errors"
)

// Format is the encoding of a panel file.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// File is the on-disk shape of a panel definition.
//
//	width = 300
//	height = 150
//	color_mode = "background"
//	graph_mode = "line"
//	theme = "dark"
//	sparkline = [[1700000000000, 12.5], [1700000060000, 14.0]]
//
//	[value]
//	text = "42%"
//	title = "CPU"
//	color = "orange"
type File struct {
	Width       float64      `json:"width,omitempty" toml:"width" yaml:"width"`
	Height      float64      `json:"height,omitempty" toml:"height" yaml:"height"`
	Value       DisplayValue `json:"value" toml:"value" yaml:"value"`
	Sparkline   [][2]float64 `json:"sparkline,omitempty" toml:"sparkline" yaml:"sparkline"`
	ColorMode   string       `json:"color_mode,omitempty" toml:"color_mode" yaml:"color_mode"`
	GraphMode   string       `json:"graph_mode,omitempty" toml:"graph_mode" yaml:"graph_mode"`
	JustifyMode string       `json:"justify_mode,omitempty" toml:"justify_mode" yaml:"justify_mode"`
	Theme       string       `json:"theme,omitempty" toml:"theme" yaml:"theme"`
}

// FormatFromFilename picks the decoder for a panel file by its extension.
func FormatFromFilename(name string) (Format, error) {
	if err := errors.ValidatePanelFilename(name); err != nil {
		return "", err
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return FormatJSON, nil
	}
}

// Load reads, decodes and validates the panel file at path.
// Defaults are applied to the returned props.
func Load(path string) (Props, error) {
	format, err := FormatFromFilename(path)
	if err != nil {
		return Props{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Props{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "panel file %s", path)
		}
		return Props{}, errors.Wrap(errors.ErrCodeInternal, err, "read panel file %s", path)
	}
	f, err := Decode(data, format)
	if err != nil {
		return Props{}, err
	}
	return f.Props()
}

// Decode parses panel file data in the given format.
func Decode(data []byte, format Format) (File, error) {
	var f File
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &f)
	case FormatYAML:
		err = yaml.Unmarshal(data, &f)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&f)
	default:
		return File{}, errors.New(errors.ErrCodeInvalidFormat, "unknown panel format: %q", format)
	}
	if err != nil {
		return File{}, errors.Wrap(errors.ErrCodeInvalidPanel, err, "decode %s panel", format)
	}
	return f, nil
}

// Props converts the file into validated props with defaults applied.
// Empty mode names select the defaults.
func (f File) Props() (Props, error) {
	p := Props{
		Width:  f.Width,
		Height: f.Height,
		Value:  f.Value,
	}

	var err error
	if f.ColorMode != "" {
		if p.ColorMode, err = ParseColorMode(f.ColorMode); err != nil {
			return Props{}, err
		}
	}
	if f.GraphMode != "" {
		if p.GraphMode, err = ParseGraphMode(f.GraphMode); err != nil {
			return Props{}, err
		}
	}
	if f.JustifyMode != "" {
		if p.JustifyMode, err = ParseJustifyMode(f.JustifyMode); err != nil {
			return Props{}, err
		}
	}
	if f.Theme != "" {
		tt, err := ParseThemeType(f.Theme)
		if err != nil {
			return Props{}, err
		}
		p.Theme = ThemeFor(tt)
	}
	if len(f.Sparkline) > 0 {
		p.Sparkline = &Sparkline{Data: make([]Point, len(f.Sparkline))}
		for i, pair := range f.Sparkline {
			p.Sparkline.Data[i] = Point{Time: int64(pair[0]), Value: pair[1]}
		}
	}

	p.SetDefaults()
	if err := p.Validate(); err != nil {
		return Props{}, err
	}
	return p, nil
}

// FileFromProps is the inverse of [File.Props], used when props built in
// code need to be written out or hashed.
func FileFromProps(p Props) File {
	f := File{
		Width:       p.Width,
		Height:      p.Height,
		Value:       p.Value,
		ColorMode:   string(p.ColorMode),
		GraphMode:   string(p.GraphMode),
		JustifyMode: string(p.JustifyMode),
		Theme:       string(p.Theme.Type),
	}
	if p.Sparkline != nil {
		f.Sparkline = make([][2]float64, len(p.Sparkline.Data))
		for i, pt := range p.Sparkline.Data {
			f.Sparkline[i] = [2]float64{float64(pt.Time), pt.Value}
		}
	}
	return f
}
