// Package chart turns the declarative sparkline description produced by
// [bigvalue.RenderGraph] into drawable geometry.
//
// A [Plot] maps series points into the padded chart box through a time
// scale on the x axis and a linear scale on the y axis. Paths are built as
// a start point followed by cubic Bézier segments, so every sink can draw
// them with a single primitive:
//
//   - [SmoothPath] interpolates with monotone cubic splines, which never
//     overshoot the data (no spurious peaks between samples)
//   - [LinePath] joins points with straight segments
//   - [Path.Area] closes a path down to a baseline for filled geoms
//
// Degenerate inputs are valid: a single point or a flat series maps to the
// middle of the box, and an empty series yields an empty path.
//
// [bigvalue.RenderGraph]: github.com/matzehuels/bigvalue/pkg/bigvalue.RenderGraph
package chart
