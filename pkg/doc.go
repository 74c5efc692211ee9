// Package pkg provides the libraries behind gaugekit, a toolkit for linear
// gauge scales.
//
// # Overview
//
// A gauge is one or more straight scales. Each scale maps a numeric domain
// onto a line, draws major and minor ticks with labels, and hosts
// indicators (markers and bars) that point at values. The pkg directory is
// organized into four areas:
//
//  1. Core - value/position mapping and the reactive scale model
//  2. Drawing - the rendering-group capability, a retained scene and encoders
//  3. Description - declarative gauges in TOML or YAML
//  4. Infrastructure - caching, the render pipeline, errors and hooks
//
// # Architecture
//
// The typical data flow:
//
//	TOML/YAML description or query parameters
//	         ↓
//	    [config] package (parse, validate)
//	         ↓
//	    [gauge] + [rectangular] + [indicator] (live scales on a scene)
//	         ↓
//	    [render/svg], [render/raster], [render/nodelink]
//	         ↓
//	    SVG/PNG/DOT/JSON output
//
// # Quick Start
//
// Map values and generate ticks without drawing anything:
//
//	sc := scaler.New(scaler.WithRange(-20, 40), scaler.WithMajorTickInterval(10))
//	for _, t := range sc.MajorTicks() {
//	    fmt.Println(t.Value, t.Position)
//	}
//
// Build and render a description:
//
//	cfg, _ := config.Load("thermometer.toml")
//	runner := pipeline.NewRunner(nil, nil, logger)
//	res, _ := runner.Execute(ctx, pipeline.Options{Config: cfg})
//	os.WriteFile("thermometer.svg", res.Artifacts["svg"], 0o644)
//
// # Package Organization
//
// ## Core
//
// [scaler] - Linear scaler: bounds, snap interval, tick intervals, tick
// generation and value/position conversion.
//
// [scale] - The reactive scale: properties, indicators, sub-groups and
// invalidation. Geometry-agnostic.
//
// [watch] - Synchronous property observation with removable handles.
//
// [rectangular] - Straight-line geometry for a scale.
//
// [indicator] - Marker and bar indicators with a watchable value.
//
// [gauge] - Container of named scales with a shared font.
//
// ## Drawing
//
// [gfx] - Shapes, groups, points and affine matrices.
//
// [gfx/scene] - Retained scene tree implementing the gfx capability.
//
// [render] - Encoders for scenes: SVG, PNG and Graphviz.
//
// [fonts] - Default label font.
//
// ## Description
//
// [config] - Gauge descriptions from TOML, YAML or URL query parameters.
//
// ## Infrastructure
//
// [pipeline] - Build and render with per-format artifact caching, shared by
// the CLI and the render server.
//
// [cache] - Artifact cache backends (null, file, Redis) and key derivation.
//
// [errors] - Coded errors and input validation.
//
// [observability] - Hooks for scale, pipeline, cache and HTTP events.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/scale/...    # Specific package
//	go test -run Example       # Examples only
//
// [scaler]: https://pkg.go.dev/github.com/matzehuels/gaugekit/pkg/scaler
// [scale]: https://pkg.go.dev/github.com/matzehuels/gaugekit/pkg/scale
// [watch]: https://pkg.go.dev/github.com/matzehuels/gaugekit/pkg/watch
// [rectangular]: https://pkg.go.dev/github.com/matzehuels/gaugekit/pkg/rectangular
// [indicator]: https://pkg.go.dev/github.com/matzehuels/gaugekit/pkg/indicator
// [gauge]: https://pkg.go.dev/github.com/matzehuels/gaugekit/pkg/gauge
// [gfx]: https://pkg.go.dev/github.com/matzehuels/gaugekit/pkg/gfx
// [gfx/scene]: https://pkg.go.dev/github.com/matzehuels/gaugekit/pkg/gfx/scene
// [render]: https://pkg.go.dev/github.com/matzehuels/gaugekit/pkg/render
// [render/svg]: https://pkg.go.dev/github.com/matzehuels/gaugekit/pkg/render/svg
// [render/raster]: https://pkg.go.dev/github.com/matzehuels/gaugekit/pkg/render/raster
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/gaugekit/pkg/render/nodelink
// [fonts]: https://pkg.go.dev/github.com/matzehuels/gaugekit/pkg/fonts
// [config]: https://pkg.go.dev/github.com/matzehuels/gaugekit/pkg/config
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/gaugekit/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/gaugekit/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/gaugekit/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/gaugekit/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/gaugekit/pkg/buildinfo
package pkg
