package graph

import "github.com/Jakob-W-Lucas/Project-Beagle/pkg/geo"

// Edge is a directed, weighted connection. Equality ignores direction.
// Endpoint positions are captured at construction; edges never change afterwards.
type Edge struct {
	From    VertexID
	To      VertexID
	FromPos geo.Vec2
	ToPos   geo.Vec2
	Weight  float64
	Enabled bool
}

// Equal reports whether e and o join the same pair of vertices in either direction.
func (e Edge) Equal(o Edge) bool {
	return (e.From == o.From && e.To == o.To) || (e.From == o.To && e.To == o.From)
}

// Reverse returns the same connection walked the other way.
func (e Edge) Reverse() Edge {
	return Edge{From: e.To, To: e.From, FromPos: e.ToPos, ToPos: e.FromPos, Weight: e.Weight, Enabled: e.Enabled}
}

// IsLoop reports whether e starts and ends on the same vertex. Spatial
// lookups use loops to say "this point is a vertex, not a mid-edge position".
func (e Edge) IsLoop() bool { return e.From == e.To }

// Bounds returns the axis-aligned box around the segment.
func (e Edge) Bounds() geo.Rect { return geo.R(e.FromPos, e.ToPos) }

// Key identifies the undirected connection.
func (e Edge) Key() [2]VertexID {
	if e.From < e.To {
		return [2]VertexID{e.From, e.To}
	}
	return [2]VertexID{e.To, e.From}
}

// LoopEdge builds the self-loop marking vertex v.
func LoopEdge(v *Vertex) Edge {
	return Edge{From: v.ID, To: v.ID, FromPos: v.Pos, ToPos: v.Pos, Enabled: true}
}
