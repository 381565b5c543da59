// Package render groups the output side of BigValue.
//
// The [sink] subpackage turns a computed layout into absolute placement and
// writes it as SVG, PNG, HTML or JSON:
//
//	f := sink.NewFrame(props)
//	svg := sink.RenderSVG(f, sink.WithIDPrefix("cpu"))
//	png, _ := sink.RenderPNG(f, sink.WithScale(2))
package render
