// Package bigvalue computes the layout, styles and chart instructions of a
// BigValue panel: one prominent value with an optional title and trend
// sparkline.
//
// The package is three layers of pure functions:
//
//   - [CalculateLayout] maps [panel.Props] to an immutable [Layout]
//     (layout type, font sizes, chart box, resolved value color).
//   - [PanelStyles], [TitleStyles], [ValueStyles] and
//     [ValueAndTitleContainerStyles] map a Layout to CSS-like [Style]
//     dictionaries.
//   - [RenderGraph] maps a Layout and a sparkline to declarative [Chart]
//     drawing instructions, or nil when no chart should be drawn.
//
// Nothing here performs I/O or holds state, so every function is safe to
// call concurrently. Turning the results into pixels is the job of the
// render/sink package.
//
// # Example
//
//	p := panel.Props{Width: 300, Height: 150, Value: panel.DisplayValue{Text: "42%", Title: "CPU"}}
//	p.SetDefaults()
//	l := bigvalue.CalculateLayout(p)
//	css := bigvalue.PanelStyles(l).CSS()
//	chart := bigvalue.RenderGraph(l, p.Sparkline)
package bigvalue
