// Package nodelink renders a scene hierarchy as a node-link diagram.
//
// # Overview
//
// The retained scene built by scales is a tree: gauge group, one group per
// scale, the background/ticks/foreground sub-groups, one group per tick and
// per indicator, and the primitives inside them. This package turns that tree
// into a Graphviz diagram so the structure can be inspected, for example to
// check that a removed indicator left no group behind.
//
// # Usage
//
//	dot := nodelink.ToDOT(sc, nodelink.Options{GroupsOnly: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// # Options
//
//   - Detailed: node labels include geometry, transform and style
//   - GroupsOnly: primitives are omitted
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering.
package nodelink
