// Package scene is a retained-mode implementation of the gfx capability.
//
// A [Scene] holds a tree of [Node] values rooted at a group. Scales draw into
// it through gfx.Group and gfx.Shape; encoders in package render walk the
// live tree afterwards. Removing a shape detaches it immediately, so a
// destroyed indicator group is never visited again.
//
// A Scene is not safe for concurrent use.
package scene

import (
	"fmt"

	"github.com/matzehuels/gaugekit/pkg/gfx"
)

// Kind is the type of a node.
type Kind string

const (
	KindGroup   Kind = "group"
	KindLine    Kind = "line"
	KindRect    Kind = "rect"
	KindPolygon Kind = "polygon"
	KindText    Kind = "text"
)

// Option configures a Scene.
type Option func(*Scene)

// WithDefaultFont sets the font used when neither a scale nor its container
// specify one.
func WithDefaultFont(f gfx.Font) Option {
	return func(s *Scene) { s.defaultFont = f }
}

// Scene is a retained drawing surface of a fixed size.
type Scene struct {
	width, height float64
	defaultFont   gfx.Font
	root          *Node
	nextID        int
}

// New creates an empty scene.
func New(width, height float64, opts ...Option) *Scene {
	s := &Scene{width: width, height: height}
	for _, opt := range opts {
		opt(s)
	}
	s.root = s.newNode(KindGroup)
	s.root.label = "root"
	return s
}

// Root returns the root group.
func (s *Scene) Root() *Node { return s.root }

// Size returns the scene dimensions.
func (s *Scene) Size() (width, height float64) { return s.width, s.height }

// DefaultFont returns the backend default font.
func (s *Scene) DefaultFont() gfx.Font { return s.defaultFont }

// Count returns the number of live nodes, root included.
func (s *Scene) Count() int {
	n := 0
	s.Walk(func(*Node, int, gfx.Matrix) bool { n++; return true })
	return n
}

// Walk visits live nodes depth first in paint order. fn receives the node,
// its depth and its accumulated world transform; returning false skips the
// node's children.
func (s *Scene) Walk(fn func(n *Node, depth int, world gfx.Matrix) bool) {
	if s.root.removed {
		return
	}
	walk(s.root, 0, gfx.Identity, fn)
}

func walk(n *Node, depth int, parent gfx.Matrix, fn func(*Node, int, gfx.Matrix) bool) {
	world := parent.Multiply(n.transform)
	if !fn(n, depth, world) {
		return
	}
	for _, c := range n.children {
		walk(c, depth+1, world, fn)
	}
}

func (s *Scene) newNode(k Kind) *Node {
	s.nextID++
	return &Node{scene: s, id: s.nextID, kind: k, transform: gfx.Identity}
}

// Node is a group or a primitive shape in a scene.
type Node struct {
	scene    *Scene
	id       int
	kind     Kind
	label    string
	parent   *Node
	children []*Node
	removed  bool

	line    gfx.Line
	rect    gfx.Rect
	polygon gfx.Polygon
	text    gfx.Text

	stroke    *gfx.Stroke
	fill      string
	transform gfx.Matrix
}

var (
	_ gfx.Group   = (*Node)(nil)
	_ gfx.Labeler = (*Node)(nil)
)

// ID returns the node id, unique within its scene.
func (n *Node) ID() int { return n.id }

// Kind returns the node kind.
func (n *Node) Kind() Kind { return n.kind }

// Label returns the inspection label.
func (n *Node) Label() string { return n.label }

// SetLabel sets the inspection label.
func (n *Node) SetLabel(label string) { n.label = label }

// Parent returns the parent group, nil for the root and detached nodes.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the live children in paint order.
func (n *Node) Children() []*Node { return append([]*Node(nil), n.children...) }

// Removed reports whether the node was removed.
func (n *Node) Removed() bool { return n.removed }

// Line returns the geometry of a line node.
func (n *Node) Line() gfx.Line { return n.line }

// Rect returns the geometry of a rect node.
func (n *Node) Rect() gfx.Rect { return n.rect }

// Polygon returns the geometry of a polygon node.
func (n *Node) Polygon() gfx.Polygon { return n.polygon }

// Text returns the content of a text node.
func (n *Node) Text() gfx.Text { return n.text }

// Stroke returns the stroke and whether one was set.
func (n *Node) Stroke() (gfx.Stroke, bool) {
	if n.stroke == nil {
		return gfx.Stroke{}, false
	}
	return *n.stroke, true
}

// Fill returns the fill color, empty when unset.
func (n *Node) Fill() string { return n.fill }

// Transform returns the node's own transform.
func (n *Node) Transform() gfx.Matrix { return n.transform }

// SetStroke implements gfx.Shape.
func (n *Node) SetStroke(s gfx.Stroke) gfx.Shape {
	n.stroke = &s
	return n
}

// SetFill implements gfx.Shape.
func (n *Node) SetFill(color string) gfx.Shape {
	n.fill = color
	return n
}

// SetTransform implements gfx.Shape.
func (n *Node) SetTransform(m gfx.Matrix) gfx.Shape {
	n.transform = m
	return n
}

// RemoveShape detaches the node and its subtree.
func (n *Node) RemoveShape() {
	if n.removed {
		return
	}
	n.removed = true
	if p := n.parent; p != nil {
		for i, c := range p.children {
			if c == n {
				p.children = append(p.children[:i], p.children[i+1:]...)
				break
			}
		}
		n.parent = nil
	}
}

// Clear removes every child of a group.
func (n *Node) Clear() {
	for _, c := range n.children {
		c.removed = true
		c.parent = nil
	}
	n.children = nil
}

// CreateGroup implements gfx.Group.
func (n *Node) CreateGroup() gfx.Group {
	return n.add(KindGroup)
}

// CreateLine implements gfx.Group.
func (n *Node) CreateLine(l gfx.Line) gfx.Shape {
	c := n.add(KindLine)
	c.line = l
	return c
}

// CreateRect implements gfx.Group.
func (n *Node) CreateRect(r gfx.Rect) gfx.Shape {
	c := n.add(KindRect)
	c.rect = r
	return c
}

// CreatePolygon implements gfx.Group.
func (n *Node) CreatePolygon(p gfx.Polygon) gfx.Shape {
	c := n.add(KindPolygon)
	c.polygon = gfx.Polygon{Points: append([]gfx.Point(nil), p.Points...)}
	return c
}

// CreateText implements gfx.Group.
func (n *Node) CreateText(t gfx.Text) gfx.Shape {
	c := n.add(KindText)
	c.text = t
	return c
}

func (n *Node) add(k Kind) *Node {
	if n.kind != KindGroup {
		panic(fmt.Sprintf("scene: cannot add a %s to a %s node", k, n.kind))
	}
	c := n.scene.newNode(k)
	c.parent = n
	n.children = append(n.children, c)
	return c
}

// Path returns the labels from the root to n, joined by '/'. Unlabeled
// nodes appear as their kind and id.
func (n *Node) Path() string {
	var parts []string
	for c := n; c != nil; c = c.parent {
		name := c.label
		if name == "" {
			name = fmt.Sprintf("%s#%d", c.kind, c.id)
		}
		parts = append([]string{name}, parts...)
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += "/" + p
	}
	return out
}
