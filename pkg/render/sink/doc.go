// Package sink renders a computed BigValue panel into output formats.
//
// A [Frame] bundles the layout, the displayed value, the chart instructions
// and the absolute [Placement] derived from the flex styles. Each sink turns
// a frame into bytes:
//
//   - SVG: [RenderSVG] via github.com/ajstarks/svgo, with a gradient
//     definition for background color mode and a drop-shadow filter for the
//     line geometry
//   - PNG: [RenderPNG] rasterizes with git.sr.ht/~sbinet/gg using the same
//     font faces the layout was measured with
//   - HTML: [RenderHTML] emits nested divs carrying the style dictionaries
//     verbatim, so a browser reproduces the flex layout itself
//   - JSON: [RenderJSON] exports layout, styles, chart and placement
//
// Basic usage:
//
//	f := sink.NewFrame(props)
//	svg := sink.RenderSVG(f, sink.WithIDPrefix("panel-1"))
//	png, err := sink.RenderPNG(f, sink.WithScale(2))
//
// All sinks are pure functions of the frame and safe to call concurrently.
package sink
