// Package pkg provides the core libraries for BigValue panel rendering.
//
// # Overview
//
// A BigValue panel shows one large formatted value, an optional title and an
// optional sparkline, sized to fit whatever box the dashboard gives it. The
// pkg directory is organized into these areas:
//
//  1. [panel] - Panel properties, modes, themes and panel files
//  2. [bigvalue] - Layout calculation, style resolution and chart geometry
//  3. [chart] - Sparkline scales and path generation
//  4. [render/sink] - Placement and SVG/PNG/HTML/JSON output
//  5. [pipeline] - Orchestration (props → layout → render) with caching
//  6. [cache] - Artifact caches (file, Redis, null)
//
// # Architecture
//
// The typical data flow:
//
//	panel file / HTTP query
//	         ↓
//	    [panel] package (decode + validate props)
//	         ↓
//	    [bigvalue] package (layout + styles + chart geometry)
//	         ↓
//	    [render/sink] package (placement + output)
//	         ↓
//	    SVG/PNG/HTML/JSON output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/bigvalue/pkg/panel"
//	    "github.com/matzehuels/bigvalue/pkg/pipeline"
//	)
//
//	props, _ := panel.Load("cpu.toml")
//	artifacts, _ := pipeline.Render(props, pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG, pipeline.FormatPNG},
//	})
//	os.WriteFile("cpu.svg", artifacts[pipeline.FormatSVG], 0o644)
//
// Supporting packages: [errors] for coded errors, [colors] for color
// parsing, [textfit] for font measurement, [observability] for pipeline
// hooks, [httputil] for HTTP responses and [buildinfo] for version data.
package pkg
