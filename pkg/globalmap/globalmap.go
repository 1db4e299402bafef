// Package globalmap joins the interiors of every configured room into one
// graph and precomputes the shortest route between every pair of its vertices.
package globalmap

import (
	"fmt"
	"math"

	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/geo"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/graph"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/room"
)

// Map is the global routing table. Stations and pointers are never part of
// it; they are reached through room tables and lead-in segments.
type Map struct {
	g        *graph.Graph
	vertices []graph.VertexID
	routes   [][]graph.Route

	configured bool
}

// New creates an empty map over g.
func New(g *graph.Graph) *Map {
	return &Map{g: g}
}

// Build promotes the interior vertices of every configured room to global
// vertices, numbering them in room order. Rooms that failed configuration
// are skipped.
func (m *Map) Build(rooms []*room.Room) error {
	m.vertices = m.vertices[:0]
	m.routes = nil
	m.configured = false
	for _, r := range rooms {
		if r == nil || !r.Configured() {
			continue
		}
		for _, v := range r.Interior() {
			if err := m.g.MarkGlobal(v, len(m.vertices)); err != nil {
				return fmt.Errorf("room %s: %w", r.Name, err)
			}
			m.vertices = append(m.vertices, v)
		}
	}
	return nil
}

// ComputeAllPairs runs one search from every global vertex. Routes into
// stations, pointers and excluded rooms are never produced because those
// vertices are outside the search set.
func (m *Map) ComputeAllPairs() {
	m.routes = make([][]graph.Route, len(m.vertices))
	for i := range m.vertices {
		m.routes[i] = m.g.Search(m.vertices, i)
	}
	m.configured = true
}

// Configured reports whether ComputeAllPairs has run.
func (m *Map) Configured() bool { return m.configured }

// Len returns the number of global vertices.
func (m *Map) Len() int { return len(m.vertices) }

// Vertices returns the global vertices by global index.
func (m *Map) Vertices() []graph.VertexID { return m.vertices }

// Index returns the global index of v.
func (m *Map) Index(v graph.VertexID) (int, bool) {
	vx := m.g.Vertex(v)
	if vx == nil || vx.Kind != graph.KindGlobal {
		return -1, false
	}
	if vx.Global < 0 || vx.Global >= len(m.vertices) || m.vertices[vx.Global] != v {
		return -1, false
	}
	return vx.Global, true
}

// Route returns the precomputed route from a to b. Anything that is not a
// pair of global vertices yields the unreachable route.
func (m *Map) Route(a, b graph.VertexID) graph.Route {
	if !m.configured {
		return graph.Unreachable()
	}
	i, ok := m.Index(a)
	if !ok {
		return graph.Unreachable()
	}
	j, ok := m.Index(b)
	if !ok {
		return graph.Unreachable()
	}
	return m.routes[i][j]
}

// Nearest returns the global vertex closest to p, or NoVertex on an empty map.
func (m *Map) Nearest(p geo.Vec2) graph.VertexID {
	best, bestD := graph.NoVertex, math.Inf(1)
	for _, v := range m.vertices {
		if d := m.g.Vertex(v).Pos.Distance(p); d < bestD {
			best, bestD = v, d
		}
	}
	return best
}

// Edges returns every enabled connection whose endpoints are both global
// vertices.
func (m *Map) Edges() []graph.Edge {
	return m.g.UniqueEdges(func(v *graph.Vertex) bool {
		return v.Kind == graph.KindGlobal
	})
}

// Unreachable returns the ordered pairs of distinct global vertices with no
// route between them.
func (m *Map) Unreachable() [][2]graph.VertexID {
	var out [][2]graph.VertexID
	for i, row := range m.routes {
		for j, r := range row {
			if i != j && !r.Reachable() {
				out = append(out, [2]graph.VertexID{m.vertices[i], m.vertices[j]})
			}
		}
	}
	return out
}
