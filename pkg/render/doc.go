// Package render groups the encoders that turn a retained scene into output
// formats.
//
// # Overview
//
// Scales draw into a [scene.Scene] through the gfx capability. Once a gauge
// has been refreshed, its scene is encoded by one of the subpackages:
//
//   - [svg]: SVG document, written directly
//   - [raster]: PNG image via github.com/fogleman/gg
//   - [nodelink]: the scene hierarchy as a Graphviz diagram
//
//	sc := scene.New(400, 120, scene.WithDefaultFont(fonts.Default()))
//	// ... build and refresh a gauge on sc.Root() ...
//	doc := svg.Encode(sc)
//	img, err := raster.Encode(sc, raster.WithScale(2))
//	dot := nodelink.ToDOT(sc, nodelink.Options{})
//
// [scene.Scene]: github.com/matzehuels/gaugekit/pkg/gfx/scene
// [svg]: github.com/matzehuels/gaugekit/pkg/render/svg
// [raster]: github.com/matzehuels/gaugekit/pkg/render/raster
// [nodelink]: github.com/matzehuels/gaugekit/pkg/render/nodelink
package render
