package scene

import (
	"fmt"
	"log"

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

// Assemble builds a scene from a level. Problems are collected in the
// report; a room that cannot be configured is left out of routing rather
// than failing the whole level. The scene answers no queries until
// ComputeRoutes has run.
func Assemble(l *level.Level, logger *log.Logger) (*Scene, *validation.Report) {
	if logger == nil {
		logger = log.Default()
	}
	report := validation.NewReport()

	s := &Scene{
		Level:        l,
		Graph:        graph.New(),
		RoomTypes:    registry.New(l.RoomTypes...),
		StationTypes: registry.New(l.StationTypes...),
		log:          logger,
	}
	s.Map = globalmap.New(s.Graph)

	addRooms(s, report)
	addLinks(s, report)
	connectNeighbors(s, report)
	configureStations(s, report)

	if err := s.Map.Build(s.Rooms); err != nil {
		report.AddError(validation.Result{
			Level:   validation.LevelTopology,
			Message: err.Error(),
			Path:    "rooms",
		})
	}

	s.Index = buildIndex(s, report)
	s.Planner = routing.New(routing.Config{
		Graph:        s.Graph,
		Global:       s.Map,
		Rooms:        s.Rooms,
		Stations:     s.Stations,
		RoomTypes:    s.RoomTypes,
		StationTypes: s.StationTypes,
		Logger:       logger,
	})
	s.Nav = navigation.New(s.Graph, s.Stations, s.Index, s.Planner)
	spawnAgents(s, report)

	configured := 0
	for _, r := range s.Rooms {
		if r.Configured() {
			configured++
		}
	}
	report.AddInfo(validation.Result{
		Level: validation.LevelTopology,
		Message: fmt.Sprintf("%d of %d rooms configured, %d stations, %d global vertices, %d indexed edges",
			configured, len(s.Rooms), len(s.Stations), s.Map.Len(), s.Index.Len()),
	})
	return s, report
}

// addRooms creates the vertices, stations and rooms in level order and
// configures each room's interior.
func addRooms(s *Scene, report *validation.Report) {
	for ri, rd := range s.Level.Rooms {
		rid := graph.RoomID(ri)
		path := fmt.Sprintf("rooms[%d]", ri)

		var interior []graph.VertexID
		for vi, vd := range rd.Vertices {
			id, err := s.Graph.Add(vd.Name, vd.Pos())
			if err != nil {
				report.AddError(validation.Result{
					Level:   validation.LevelTopology,
					Message: err.Error(),
					Path:    fmt.Sprintf("%s.vertices[%d].name", path, vi),
				})
				continue
			}
			interior = append(interior, id)
		}

		var stations []*room.Station
		for si, sd := range rd.Stations {
			id, err := s.Graph.Add(sd.Name, sd.Pos())
			if err != nil {
				report.AddError(validation.Result{
					Level:   validation.LevelTopology,
					Message: err.Error(),
					Path:    fmt.Sprintf("%s.stations[%d].name", path, si),
				})
				continue
			}
			st := room.NewStation(graph.StationID(len(s.Stations)), sd.Name, sd.Type, id, sd.CapacityOr(room.Unlimited))
			st.Room = rid
			s.Stations = append(s.Stations, st)
			stations = append(stations, st)
		}

		r := room.New(rid, rd.Name, rd.Type, interior, stations)
		if len(rd.Bounds) >= 3 {
			r.Bounds = geo.NewPolygon(rd.Bounds...)
		}
		if err := r.Configure(s.Graph); err != nil {
			report.AddError(validation.Result{
				Level:       validation.LevelTopology,
				Message:     fmt.Sprintf("%v; room excluded from routing", err),
				Path:        path,
				Suggestions: []string{"give the room at least one interior vertex"},
			})
		}
		s.Rooms = append(s.Rooms, r)
	}
}

// addLinks applies the level's explicit connections. They go in before
// neighbor discovery so a disabled link is not replaced by a nearby one.
func addLinks(s *Scene, report *validation.Report) {
	for i, ld := range s.Level.Links {
		path := fmt.Sprintf("links[%d]", i)
		a, okA := s.Graph.Lookup(ld.From)
		b, okB := s.Graph.Lookup(ld.To)
		if !okA || !okB {
			report.AddError(validation.Result{
				Level:   validation.LevelTopology,
				Message: fmt.Sprintf("link %s - %s references an unknown vertex", ld.From, ld.To),
				Path:    path,
			})
			continue
		}
		if !s.Graph.Link(a, b, !ld.Disabled) {
			report.AddWarning(validation.Result{
				Level:   validation.LevelTopology,
				Message: fmt.Sprintf("link %s - %s is already connected", ld.From, ld.To),
				Path:    path,
			})
		}
	}
}

// connectNeighbors links configured interior vertices that lie within the
// level's neighbor radius of each other.
func connectNeighbors(s *Scene, report *validation.Report) {
	radius := s.Level.NeighborRadius
	if radius <= 0 {
		return
	}
	idx := graph.NewBucketIndex(radius)
	var ids []graph.VertexID
	for _, r := range s.Rooms {
		if len(r.Interior()) == 0 {
			continue
		}
		for _, v := range r.Interior() {
			idx.Insert(v, s.Graph.Vertex(v).Pos)
			ids = append(ids, v)
		}
	}
	n := s.Graph.ConnectNearby(idx, ids, radius)
	report.AddInfo(validation.Result{
		Level:   validation.LevelTopology,
		Message: fmt.Sprintf("connected %d neighbor pairs within %.2f", n, radius),
		Path:    "neighbor_radius",
	})
}

func configureStations(s *Scene, report *validation.Report) {
	for i, r := range s.Rooms {
		if len(r.Interior()) == 0 {
			continue
		}
		if err := r.ConfigureStations(s.Graph); err != nil {
			report.AddError(validation.Result{
				Level:   validation.LevelTopology,
				Message: fmt.Sprintf("%v; room excluded from routing", err),
				Path:    fmt.Sprintf("rooms[%d].stations", i),
			})
		}
	}
}

// buildIndex inserts every enabled edge between level vertices into a
// quadtree covering the level plus padding.
func buildIndex(s *Scene, report *validation.Report) *quadtree.Tree {
	def := s.Level.Index
	pad := def.Padding
	if pad <= 0 {
		pad = 1
	}
	t := quadtree.New(s.Level.Bounds().Expand(pad), quadtree.Options{
		MaxEdges:  def.MaxEdges,
		MaxDepth:  def.MaxDepth,
		Tolerance: def.Tolerance,
	})
	for _, e := range s.Graph.UniqueEdges(func(v *graph.Vertex) bool { return !v.IsPointer() }) {
		if !t.Insert(e) {
			report.AddWarning(validation.Result{
				Level:   validation.LevelTopology,
				Message: fmt.Sprintf("edge %d-%d lies outside the index bounds", e.From, e.To),
				Path:    "index.padding",
			})
		}
	}
	return t
}

func spawnAgents(s *Scene, report *validation.Report) {
	s.AgentIDs = make([]string, len(s.Level.Agents))
	for i, ad := range s.Level.Agents {
		path := fmt.Sprintf("agents[%d]", i)
		start, ok := s.Graph.Lookup(ad.Start)
		if !ok {
			report.AddError(validation.Result{
				Level:   validation.LevelTopology,
				Message: fmt.Sprintf("agent %s starts on unknown vertex %q", ad.ID, ad.Start),
				Path:    path + ".start",
			})
			continue
		}
		a, err := s.Nav.Spawn(ad.ID, start, ad.Speed, nil)
		if err != nil {
			report.AddError(validation.Result{
				Level:   validation.LevelTopology,
				Message: err.Error(),
				Path:    path,
			})
			continue
		}
		s.AgentIDs[i] = a.ID
	}
}
