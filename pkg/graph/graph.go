package graph

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/geo"
)

// Graph is the arena owning every vertex of a level. Rooms, stations and
// the global map refer to vertices by VertexID only.
type Graph struct {
	vertices []Vertex
	byName   map[string]VertexID
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{byName: make(map[string]VertexID)}
}

// Len returns the number of vertices in the arena.
func (g *Graph) Len() int { return len(g.vertices) }

// Vertex returns the vertex for id. The pointer is valid until the next Add.
func (g *Graph) Vertex(id VertexID) *Vertex {
	if id < 0 || int(id) >= len(g.vertices) {
		return nil
	}
	return &g.vertices[id]
}

// Lookup finds a vertex by its level name.
func (g *Graph) Lookup(name string) (VertexID, bool) {
	id, ok := g.byName[name]
	return id, ok
}

// Add appends an unattached vertex. It starts as KindPointer until a room
// claims it. Names must be unique when non-empty.
func (g *Graph) Add(name string, pos geo.Vec2) (VertexID, error) {
	if name != "" {
		if _, dup := g.byName[name]; dup {
			return NoVertex, fmt.Errorf("duplicate vertex name %q", name)
		}
	}
	id := VertexID(len(g.vertices))
	g.vertices = append(g.vertices, Vertex{
		ID:      id,
		Name:    name,
		UUID:    uuid.New(),
		Pos:     pos,
		Kind:    KindPointer,
		Room:    NoRoom,
		Station: NoStation,
		Local:   -1,
		Global:  -1,
	})
	if name != "" {
		g.byName[name] = id
	}
	return id, nil
}

// AddPointer appends an anonymous off-graph vertex.
func (g *Graph) AddPointer(pos geo.Vec2) VertexID {
	id, _ := g.Add("", pos)
	return id
}

// MarkRoomLocal claims v as an interior vertex of room at the given slot.
func (g *Graph) MarkRoomLocal(id VertexID, room RoomID, local int) error {
	v := g.Vertex(id)
	if v == nil {
		return fmt.Errorf("vertex %d: not found", id)
	}
	if v.Kind != KindPointer && !(v.Kind == KindRoomLocal && v.Room == room) {
		return fmt.Errorf("vertex %s: already %s in room %d", v, v.Kind, v.Room)
	}
	v.Kind = KindRoomLocal
	v.Room = room
	v.Station = NoStation
	v.Local = local
	v.Global = -1
	return nil
}

// MarkStation claims v as the vertex of station st in room.
func (g *Graph) MarkStation(id VertexID, room RoomID, st StationID, local int) error {
	v := g.Vertex(id)
	if v == nil {
		return fmt.Errorf("vertex %d: not found", id)
	}
	if v.Kind != KindPointer && !(v.Kind == KindStation && v.Station == st) {
		return fmt.Errorf("vertex %s: already %s", v, v.Kind)
	}
	v.Kind = KindStation
	v.Room = room
	v.Station = st
	v.Local = local
	v.Global = -1
	return nil
}

// MarkGlobal promotes a room-local vertex into the global map.
func (g *Graph) MarkGlobal(id VertexID, global int) error {
	v := g.Vertex(id)
	if v == nil {
		return fmt.Errorf("vertex %d: not found", id)
	}
	if !v.IsInterior() {
		return fmt.Errorf("vertex %s: %s vertices cannot join the global map", v, v.Kind)
	}
	v.Kind = KindGlobal
	v.Global = global
	return nil
}

// MovePointer repositions a pointer vertex and records the room it is in.
func (g *Graph) MovePointer(id VertexID, room RoomID, pos geo.Vec2) error {
	v := g.Vertex(id)
	if v == nil {
		return fmt.Errorf("vertex %d: not found", id)
	}
	if !v.IsPointer() {
		return fmt.Errorf("vertex %s: only pointers move", v)
	}
	v.Room = room
	v.Pos = pos
	return nil
}

// Link connects a and b in both directions with the Euclidean distance as
// weight. An existing connection between the pair is left untouched.
// Returns true when new edges were created.
func (g *Graph) Link(a, b VertexID, enabled bool) bool {
	if a == b {
		return false
	}
	va, vb := g.Vertex(a), g.Vertex(b)
	if va == nil || vb == nil {
		return false
	}

	e := Edge{
		From:    a,
		To:      b,
		FromPos: va.Pos,
		ToPos:   vb.Pos,
		Weight:  va.Pos.Distance(vb.Pos),
		Enabled: enabled,
	}

	added := false
	if !hasEdge(va.Edges, e) {
		va.Edges = append(va.Edges, e)
		added = true
	}
	r := e.Reverse()
	if !hasEdge(vb.Edges, r) {
		vb.Edges = append(vb.Edges, r)
		added = true
	}
	return added
}

func hasEdge(edges []Edge, e Edge) bool {
	for _, x := range edges {
		if x.Equal(e) {
			return true
		}
	}
	return false
}

// EdgeBetween returns the edge from a to b, if any.
func (g *Graph) EdgeBetween(a, b VertexID) (Edge, bool) {
	va := g.Vertex(a)
	if va == nil {
		return Edge{}, false
	}
	for _, e := range va.Edges {
		if e.To == b {
			return e, true
		}
	}
	return Edge{}, false
}

// UniqueEdges returns each undirected enabled connection once, in insertion
// order, keeping only edges whose endpoints both satisfy keep (nil keeps all).
func (g *Graph) UniqueEdges(keep func(*Vertex) bool) []Edge {
	seen := make(map[[2]VertexID]bool)
	var out []Edge
	for i := range g.vertices {
		v := &g.vertices[i]
		if keep != nil && !keep(v) {
			continue
		}
		for _, e := range v.Edges {
			if !e.Enabled || seen[e.Key()] {
				continue
			}
			if keep != nil && !keep(&g.vertices[e.To]) {
				continue
			}
			seen[e.Key()] = true
			out = append(out, e)
		}
	}
	return out
}

// Segment returns the direct two-vertex route from a to b.
func (g *Graph) Segment(a, b VertexID) Route {
	va, vb := g.Vertex(a), g.Vertex(b)
	if va == nil || vb == nil {
		return Unreachable()
	}
	if a == b {
		return NewRoute(0, a)
	}
	return NewRoute(va.Pos.Distance(vb.Pos), a, b)
}

// Path converts a route into the polyline through its vertex positions.
func (g *Graph) Path(r Route) geo.Polyline {
	pts := make([]geo.Vec2, 0, r.Len())
	for _, id := range r.vertices {
		if v := g.Vertex(id); v != nil {
			pts = append(pts, v.Pos)
		}
	}
	return geo.NewPolyline(pts...)
}

// Names renders a route with vertex names, for logs and CLI output.
func (g *Graph) Names(r Route) []string {
	out := make([]string, 0, r.Len())
	for _, id := range r.vertices {
		if v := g.Vertex(id); v != nil {
			out = append(out, v.String())
		}
	}
	return out
}
