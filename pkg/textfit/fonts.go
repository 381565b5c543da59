// Package textfit measures text and picks font sizes that fit a box.
//
// Measurement uses the Go Medium face bundled with golang.org/x/image,
// which is close in weight (500) and proportions to the sans-serif used for
// panel values. The parsed font is shared; sized faces are cached.
package textfit

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/opentype"
)

// FontFamily is the CSS font-family emitted by the SVG and HTML sinks.
const FontFamily = `'Go Medium', 'Helvetica Neue', Arial, sans-serif`

// Cache for the parsed font (computed once on first access).
var (
	parsed     *opentype.Font
	parsedErr  error
	parsedOnce sync.Once
)

// Cache of sized faces. Faces are not safe for concurrent use, so the
// measurement path holds faceMu while using one. The cache is emptied once it
// holds maxFaces entries, since request-driven sizes are unbounded.
const maxFaces = 64

var (
	faceMu sync.Mutex
	faces  = map[float64]font.Face{}
)

func loadFont() (*opentype.Font, error) {
	parsedOnce.Do(func() {
		parsed, parsedErr = opentype.Parse(gomedium.TTF)
	})
	return parsed, parsedErr
}

// Face returns a font face of the given pixel size (72 DPI).
// The returned face must not be used concurrently with measurement calls;
// the PNG sink renders under [WithFace].
func Face(size float64) (font.Face, error) {
	faceMu.Lock()
	defer faceMu.Unlock()
	return faceLocked(size)
}

// WithFace runs fn with the face of the given size while holding the face
// lock.
func WithFace(size float64, fn func(font.Face)) error {
	faceMu.Lock()
	defer faceMu.Unlock()
	f, err := faceLocked(size)
	if err != nil {
		return err
	}
	fn(f)
	return nil
}

func faceLocked(size float64) (font.Face, error) {
	if f, ok := faces[size]; ok {
		return f, nil
	}
	fnt, err := loadFont()
	if err != nil {
		return nil, err
	}
	f, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	if len(faces) >= maxFaces {
		clear(faces)
	}
	faces[size] = f
	return f, nil
}
