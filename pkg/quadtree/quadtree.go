// Package quadtree indexes graph edges by area so a moving point can be
// matched to the edge (or vertex) it is standing on.
package quadtree

import (
	"math"

	"github.com/zyedidia/generic/mapset"

	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/geo"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/graph"
)

// Options tunes the tree.
type Options struct {
	// MaxEdges is the number of edges a leaf holds before it splits.
	MaxEdges int
	// MaxDepth stops splitting; leaves at this depth grow without bound.
	MaxDepth int
	// Tolerance is the default match distance for Locate.
	Tolerance float64
}

// DefaultOptions returns the tuning used by levels that do not override it.
func DefaultOptions() Options {
	return Options{MaxEdges: 8, MaxDepth: 10, Tolerance: 0.02}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MaxEdges <= 0 {
		o.MaxEdges = d.MaxEdges
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = d.MaxDepth
	}
	if o.Tolerance <= 0 {
		o.Tolerance = d.Tolerance
	}
	return o
}

type node struct {
	bounds   geo.Rect
	depth    int
	edges    []graph.Edge
	children *[4]*node
}

// Tree is a region quadtree over edges. An edge is stored in every leaf its
// bounding box overlaps.
type Tree struct {
	root *node
	opts Options
	size int
}

// New creates an empty tree covering bounds.
func New(bounds geo.Rect, opts Options) *Tree {
	return &Tree{root: &node{bounds: bounds}, opts: opts.withDefaults()}
}

// Options returns the effective tuning.
func (t *Tree) Options() Options { return t.opts }

// Bounds returns the area covered by the tree.
func (t *Tree) Bounds() geo.Rect { return t.root.bounds }

// Len returns the number of edges inserted.
func (t *Tree) Len() int { return t.size }

// Insert adds e. Edges entirely outside the tree bounds are rejected.
func (t *Tree) Insert(e graph.Edge) bool {
	if !t.root.bounds.Overlaps(e.Bounds()) {
		return false
	}
	t.insert(t.root, e)
	t.size++
	return true
}

func (t *Tree) insert(n *node, e graph.Edge) {
	if !n.bounds.Overlaps(e.Bounds()) {
		return
	}
	if n.children != nil {
		for _, c := range n.children {
			t.insert(c, e)
		}
		return
	}
	n.edges = append(n.edges, e)
	if len(n.edges) > t.opts.MaxEdges && n.depth < t.opts.MaxDepth {
		t.subdivide(n)
	}
}

func (t *Tree) subdivide(n *node) {
	var children [4]*node
	for i, q := range n.bounds.Quadrants() {
		children[i] = &node{bounds: q, depth: n.depth + 1}
	}
	n.children = &children
	edges := n.edges
	n.edges = nil
	for _, e := range edges {
		for _, c := range n.children {
			t.insert(c, e)
		}
	}
}

// Query returns every edge whose box overlaps area, each connection once.
func (t *Tree) Query(area geo.Rect) []graph.Edge {
	var out []graph.Edge
	seen := mapset.New[[2]graph.VertexID]()
	var walk func(n *node)
	walk = func(n *node) {
		if !n.bounds.Overlaps(area) {
			return
		}
		for _, e := range n.edges {
			if !e.Bounds().Overlaps(area) || seen.Has(e.Key()) {
				continue
			}
			seen.Put(e.Key())
			out = append(out, e)
		}
		if n.children != nil {
			for _, c := range n.children {
				walk(c)
			}
		}
	}
	walk(t.root)
	return out
}

// Depth returns the depth of the deepest leaf.
func (t *Tree) Depth() int {
	var deepest func(n *node) int
	deepest = func(n *node) int {
		if n.children == nil {
			return n.depth
		}
		d := 0
		for _, c := range n.children {
			d = max(d, deepest(c))
		}
		return d
	}
	return deepest(t.root)
}

type junction struct {
	pos   geo.Vec2
	count int
}

// Locate finds what p is standing on. When three or more matching edges
// meet at a vertex within tol of p, the result is that vertex as a loop
// edge. Otherwise it is the matching edge closest to p. A tol of zero or
// less uses the tree's default tolerance.
func (t *Tree) Locate(p geo.Vec2, tol float64) (graph.Edge, bool) {
	if tol <= 0 {
		tol = t.opts.Tolerance
	}

	var best graph.Edge
	bestD := math.Inf(1)
	found := false
	ends := make(map[graph.VertexID]*junction)
	count := func(id graph.VertexID, pos geo.Vec2) {
		j, ok := ends[id]
		if !ok {
			j = &junction{pos: pos}
			ends[id] = j
		}
		j.count++
	}

	for _, e := range t.Query(geo.RectAround(p, tol)) {
		_, d := geo.ClosestOnSegment(p, e.FromPos, e.ToPos)
		if d > tol {
			continue
		}
		count(e.From, e.FromPos)
		count(e.To, e.ToPos)
		if d < bestD {
			best, bestD, found = e, d, true
		}
	}
	if !found {
		return graph.Edge{}, false
	}

	vertex, vertexD := graph.NoVertex, math.Inf(1)
	for id, j := range ends {
		if j.count < 3 {
			continue
		}
		d := j.pos.Distance(p)
		if d > tol {
			continue
		}
		if d < vertexD || (d == vertexD && id < vertex) {
			vertex, vertexD = id, d
		}
	}
	if vertex != graph.NoVertex {
		pos := ends[vertex].pos
		return graph.Edge{From: vertex, To: vertex, FromPos: pos, ToPos: pos, Enabled: true}, true
	}
	return best, true
}
