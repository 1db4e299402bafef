// Package room builds the local subgraph of each room and precomputes the
// routes between its stations and its interior vertices.
package room

import (
	"errors"
	"fmt"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/geo"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/graph"
)

// ErrEmptyRoom is returned when a room has no interior vertices.
var ErrEmptyRoom = errors.New("room has no interior vertices")

// Room is a local subgraph: interior vertices plus the stations inside it.
//
// After ConfigureStations the tables hold, for station slot s and interior
// position i:
//
//	exit[s][i]  station s -> interior i
//	enter[i][s] interior i -> station s (exit[s][i] reversed)
type Room struct {
	ID        graph.RoomID
	Name      string
	Type      string
	TypeIndex int
	Bounds    geo.Polygon

	interior []graph.VertexID
	stations []*Station
	edges    []graph.Edge

	enter [][]graph.Route
	exit  [][]graph.Route

	configured bool
}

// New creates an unconfigured room.
func New(id graph.RoomID, name, typ string, interior []graph.VertexID, stations []*Station) *Room {
	in := make([]graph.VertexID, len(interior))
	copy(in, interior)
	return &Room{
		ID:        id,
		Name:      name,
		Type:      typ,
		TypeIndex: -1,
		interior:  in,
		stations:  stations,
	}
}

// Interior returns the room's interior vertices in configuration order.
func (r *Room) Interior() []graph.VertexID { return r.interior }

// Stations returns the stations in slot order.
func (r *Room) Stations() []*Station { return r.stations }

// Edges returns each unique connection among interior vertices, as of the
// last ConfigureStations.
func (r *Room) Edges() []graph.Edge { return r.edges }

// Configured reports whether both configuration passes succeeded.
func (r *Room) Configured() bool { return r.configured }

// Configure claims the interior vertices, offsetting their room slots past
// the station slots, and chains consecutive vertices so the room is always
// internally connected. Search positions start at 1; position 0 belongs to
// whichever station is the search source in ConfigureStations.
func (r *Room) Configure(g *graph.Graph) error {
	if len(r.interior) == 0 {
		return fmt.Errorf("room %s: %w", r.Name, ErrEmptyRoom)
	}

	offset := len(r.stations)
	for i, v := range r.interior {
		if err := g.MarkRoomLocal(v, r.ID, offset+i); err != nil {
			return fmt.Errorf("room %s: %w", r.Name, err)
		}
	}

	for i := 1; i < len(r.interior); i++ {
		g.Link(r.interior[i-1], r.interior[i], true)
	}
	return nil
}

// ConfigureStations links every station to every interior vertex and runs
// one search per station to fill the enter and exit tables. A room without
// stations ends up with empty tables.
func (r *Room) ConfigureStations(g *graph.Graph) error {
	if len(r.interior) == 0 {
		return fmt.Errorf("room %s: %w", r.Name, ErrEmptyRoom)
	}

	n, s := len(r.interior), len(r.stations)
	r.exit = make([][]graph.Route, s)
	r.enter = make([][]graph.Route, n)
	for i := range r.enter {
		r.enter[i] = make([]graph.Route, s)
	}

	set := make([]graph.VertexID, n+1)
	copy(set[1:], r.interior)

	for slot, st := range r.stations {
		if err := g.MarkStation(st.Vertex, r.ID, st.ID, slot); err != nil {
			return fmt.Errorf("room %s station %s: %w", r.Name, st.Name, err)
		}
		st.Room = r.ID
		st.Slot = slot

		for _, v := range r.interior {
			g.Link(st.Vertex, v, true)
		}

		set[0] = st.Vertex
		routes := g.Search(set, 0)

		r.exit[slot] = make([]graph.Route, n)
		for i := 0; i < n; i++ {
			out := routes[i+1]
			r.exit[slot][i] = out
			r.enter[i][slot] = out.Reverse()
		}
	}

	r.collectEdges(g)
	r.configured = true
	return nil
}

// collectEdges records each unique connection among interior vertices. It
// runs last so that links added after Configure are included.
func (r *Room) collectEdges(g *graph.Graph) {
	member := mapset.New[graph.VertexID]()
	for _, v := range r.interior {
		member.Put(v)
	}
	seen := mapset.New[[2]graph.VertexID]()
	r.edges = r.edges[:0]
	for _, v := range r.interior {
		for _, e := range g.Vertex(v).Edges {
			if !member.Has(e.To) || seen.Has(e.Key()) {
				continue
			}
			seen.Put(e.Key())
			r.edges = append(r.edges, e)
		}
	}
}

// InteriorIndex returns the interior position of v, or -1 and false when v
// is not an interior vertex of this room.
func (r *Room) InteriorIndex(g *graph.Graph, v graph.VertexID) (int, bool) {
	vx := g.Vertex(v)
	if vx == nil || vx.Room != r.ID || !vx.IsInterior() {
		return -1, false
	}
	i := vx.Local - len(r.stations)
	if i < 0 || i >= len(r.interior) || r.interior[i] != v {
		return -1, false
	}
	return i, true
}

// Enter returns the route from interior position i to station slot s.
func (r *Room) Enter(i, s int) graph.Route {
	if i < 0 || i >= len(r.enter) || s < 0 || s >= len(r.enter[i]) {
		return graph.Unreachable()
	}
	return r.enter[i][s]
}

// Exit returns the route from station slot s to interior position i.
func (r *Room) Exit(s, i int) graph.Route {
	if s < 0 || s >= len(r.exit) || i < 0 || i >= len(r.exit[s]) {
		return graph.Unreachable()
	}
	return r.exit[s][i]
}

// ExitRoutes returns every route leaving station slot s, one per interior vertex.
func (r *Room) ExitRoutes(s int) []graph.Route {
	if s < 0 || s >= len(r.exit) {
		return nil
	}
	return r.exit[s]
}

// Contains reports whether p lies inside the room footprint. Rooms declared
// without a footprint contain nothing.
func (r *Room) Contains(p geo.Vec2) bool {
	return r.Bounds.Contains(p)
}

// NearestWithinRoom returns the interior vertices ordered by distance to p.
func (r *Room) NearestWithinRoom(g *graph.Graph, p geo.Vec2) []graph.VertexID {
	out := make([]graph.VertexID, len(r.interior))
	copy(out, r.interior)
	sort.SliceStable(out, func(i, j int) bool {
		return g.Vertex(out[i]).Pos.Distance(p) < g.Vertex(out[j]).Pos.Distance(p)
	})
	return out
}
