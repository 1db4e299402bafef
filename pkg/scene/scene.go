// Package scene assembles a level into a queryable navigation scene: the
// graph arena, rooms, global map, spatial index, planner and agents.
package scene

import (
	"errors"
	"fmt"
	"log"

	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/analytics"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/geo"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/globalmap"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/graph"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/level"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/navigation"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/quadtree"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/registry"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/room"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/routing"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/validation"
)

// ErrNotConfigured is returned by every query made before ComputeRoutes.
var ErrNotConfigured = errors.New("scene: routes have not been computed")

// Scene is an assembled level.
type Scene struct {
	Level        *level.Level
	Graph        *graph.Graph
	Rooms        []*room.Room
	Stations     []*room.Station
	RoomTypes    *registry.Registry
	StationTypes *registry.Registry
	Map          *globalmap.Map
	Index        *quadtree.Tree
	Planner      *routing.Planner
	Nav          *navigation.Navigator
	// AgentIDs holds the spawned ID of each level agent, "" where the
	// spawn failed.
	AgentIDs []string

	log        *log.Logger
	configured bool
}

// Configured reports whether ComputeRoutes has run.
func (s *Scene) Configured() bool { return s.configured }

// ComputeRoutes precomputes the global all-pairs table. Queries are
// refused until it has run.
func (s *Scene) ComputeRoutes() {
	s.Map.ComputeAllPairs()
	s.configured = true
	s.log.Printf("computed routes between %d global vertices", s.Map.Len())
}

// VertexByName resolves a level point name.
func (s *Scene) VertexByName(name string) (graph.VertexID, error) {
	id, ok := s.Graph.Lookup(name)
	if !ok {
		return graph.NoVertex, fmt.Errorf("unknown vertex %q", name)
	}
	return id, nil
}

// RoomByName returns the room called name.
func (s *Scene) RoomByName(name string) (*room.Room, error) {
	for _, r := range s.Rooms {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, fmt.Errorf("unknown room %q", name)
}

// StationByName returns the station called name.
func (s *Scene) StationByName(name string) (*room.Station, error) {
	for _, st := range s.Stations {
		if st.Name == name {
			return st, nil
		}
	}
	return nil, fmt.Errorf("unknown station %q", name)
}

// Request turns a level errand into a routing request.
func (s *Scene) Request(e level.ErrandDef) (routing.Request, error) {
	switch e.Target {
	case level.TargetRoom:
		if e.Name == "" {
			if len(s.Planner.RoomsOfType(e.Type)) == 0 {
				return routing.Request{}, fmt.Errorf("no routable room of type %q", e.Type)
			}
			return routing.RoomOfType(e.Type), nil
		}
		r, err := s.RoomByName(e.Name)
		if err != nil {
			return routing.Request{}, err
		}
		return routing.ToRoom(r.ID), nil
	case level.TargetStation:
		if e.Name == "" {
			if len(s.Planner.StationsOfType(e.Type)) == 0 {
				return routing.Request{}, fmt.Errorf("no routable station of type %q", e.Type)
			}
			return routing.StationOfType(e.Type), nil
		}
		st, err := s.StationByName(e.Name)
		if err != nil {
			return routing.Request{}, err
		}
		return routing.ToStation(st.ID), nil
	}
	return routing.Request{}, fmt.Errorf("unknown errand target %q", e.Target)
}

// Route returns the precomputed route between two global vertices.
func (s *Scene) Route(a, b graph.VertexID) (graph.Route, error) {
	if !s.configured {
		return graph.Unreachable(), ErrNotConfigured
	}
	return s.Map.Route(a, b), nil
}

// Plan answers req from a vertex.
func (s *Scene) Plan(source graph.VertexID, req routing.Request) (graph.Route, error) {
	if !s.configured {
		return graph.Unreachable(), ErrNotConfigured
	}
	return s.Planner.Plan(source, req), nil
}

// TravelToRoom plans from a vertex to a room.
func (s *Scene) TravelToRoom(source graph.VertexID, f routing.Filter) (graph.Route, error) {
	if !s.configured {
		return graph.Unreachable(), ErrNotConfigured
	}
	return s.Planner.TravelToRoom(source, f), nil
}

// TravelToStation plans from a vertex to an available station.
func (s *Scene) TravelToStation(source graph.VertexID, f routing.Filter) (graph.Route, error) {
	if !s.configured {
		return graph.Unreachable(), ErrNotConfigured
	}
	return s.Planner.TravelToStation(source, f), nil
}

// Travel plans req for an agent from wherever it stands.
func (s *Scene) Travel(agent string, req routing.Request) (graph.Route, error) {
	if !s.configured {
		return graph.Unreachable(), ErrNotConfigured
	}
	return s.Nav.Travel(agent, req)
}

// Track plans a route for agent toward another agent.
func (s *Scene) Track(agent, target string) (graph.Route, error) {
	if !s.configured {
		return graph.Unreachable(), ErrNotConfigured
	}
	return s.Nav.Track(agent, target)
}

// Follow makes an agent walk r.
func (s *Scene) Follow(agent string, r graph.Route) error {
	if !s.configured {
		return ErrNotConfigured
	}
	return s.Nav.Follow(agent, r)
}

// Advance promotes an agent's heading once it has been reached.
func (s *Scene) Advance(agent string) (bool, error) {
	if !s.configured {
		return false, ErrNotConfigured
	}
	return s.Nav.Advance(agent)
}

// Heading returns the vertex an agent walks to.
func (s *Scene) Heading(agent string) (graph.VertexID, error) {
	if !s.configured {
		return graph.NoVertex, ErrNotConfigured
	}
	return s.Nav.Heading(agent)
}

// Origin returns the last vertex an agent reached.
func (s *Scene) Origin(agent string) (graph.VertexID, error) {
	if !s.configured {
		return graph.NoVertex, ErrNotConfigured
	}
	return s.Nav.Origin(agent)
}

// Locate finds the edge, or junction vertex, under p.
func (s *Scene) Locate(p geo.Vec2) (graph.Edge, bool, error) {
	if !s.configured {
		return graph.Edge{}, false, ErrNotConfigured
	}
	e, ok := s.Nav.Locate(p)
	return e, ok, nil
}

// Nearest returns the interior vertex closest to p. Inside a configured
// room's footprint only that room's vertices are considered; elsewhere
// every global vertex is.
func (s *Scene) Nearest(p geo.Vec2) (graph.VertexID, error) {
	if !s.configured {
		return graph.NoVertex, ErrNotConfigured
	}
	for _, r := range s.Rooms {
		if r == nil || !r.Configured() || !r.Contains(p) {
			continue
		}
		if vs := r.NearestWithinRoom(s.Graph, p); len(vs) > 0 {
			return vs[0], nil
		}
	}
	if v := s.Map.Nearest(p); v != graph.NoVertex {
		return v, nil
	}
	return graph.NoVertex, fmt.Errorf("no vertex near (%g, %g)", p.X, p.Y)
}

// Tick moves every agent by dt seconds.
func (s *Scene) Tick(dt float64) ([]navigation.Arrival, error) {
	if !s.configured {
		return nil, ErrNotConfigured
	}
	return s.Nav.Tick(dt)
}

// Stats summarizes the route tables.
func (s *Scene) Stats() (*analytics.RouteStats, *validation.Report) {
	return analytics.Summarize(s.Graph, s.Rooms, s.Map)
}
