package scene

import (
	"time"

	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/geo"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/graph"
)

// Export converts the scene into its serialisable view. Agent pointers are
// left out; agents are reported through navigation snapshots.
func (s *Scene) Export() *Graph {
	g := NewGraph()

	exportVertices(s, g)
	exportEdges(s, g)
	exportRooms(s, g)
	exportStations(s, g)

	g.Metadata = Metadata{
		LevelVersion: s.Level.LevelVersion,
		Name:         s.Level.Name,
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		Bounds:       s.Index.Bounds(),
		Configured:   s.configured,
	}
	return g
}

func (s *Scene) roomName(id graph.RoomID) string {
	if id < 0 || int(id) >= len(s.Rooms) {
		return ""
	}
	return s.Rooms[id].Name
}

func exportVertices(s *Scene, g *Graph) {
	for i := 0; i < s.Graph.Len(); i++ {
		v := s.Graph.Vertex(graph.VertexID(i))
		if v.Name == "" {
			continue
		}
		room := s.roomName(v.Room)
		g.Vertices = append(g.Vertices, VertexView{
			Name:     v.Name,
			UUID:     v.UUID.String(),
			Kind:     v.Kind.String(),
			Position: v.Pos,
			Room:     room,
		})
		kind := v.Kind.String()
		g.Groups.Kinds[kind] = append(g.Groups.Kinds[kind], v.Name)
		if room != "" {
			g.Groups.Rooms[room] = append(g.Groups.Rooms[room], v.Name)
		}
	}
}

// exportEdges lists each undirected connection once, disabled ones included.
func exportEdges(s *Scene, g *Graph) {
	seen := make(map[[2]graph.VertexID]bool)
	for i := 0; i < s.Graph.Len(); i++ {
		v := s.Graph.Vertex(graph.VertexID(i))
		if v.Name == "" {
			continue
		}
		for _, e := range v.Edges {
			to := s.Graph.Vertex(e.To)
			if to == nil || to.Name == "" || seen[e.Key()] {
				continue
			}
			seen[e.Key()] = true
			g.Edges = append(g.Edges, EdgeView{
				From:    v.Name,
				To:      to.Name,
				Weight:  e.Weight,
				Enabled: e.Enabled,
			})
		}
	}
}

func exportRooms(s *Scene, g *Graph) {
	for _, r := range s.Rooms {
		rv := RoomView{
			Name:       r.Name,
			Type:       r.Type,
			Configured: r.Configured(),
			Vertices:   []string{},
			Stations:   []string{},
		}
		for _, id := range r.Interior() {
			rv.Vertices = append(rv.Vertices, s.Graph.Vertex(id).Name)
		}
		for _, st := range r.Stations() {
			rv.Stations = append(rv.Stations, st.Name)
		}
		if !r.Bounds.IsEmpty() {
			rv.Bounds = append([]geo.Vec2(nil), r.Bounds.Vertices...)
		}
		g.Rooms = append(g.Rooms, rv)
	}
}

func exportStations(s *Scene, g *Graph) {
	for _, st := range s.Stations {
		capacity, _ := st.Capacity()
		g.Stations = append(g.Stations, StationView{
			Name:      st.Name,
			Type:      st.Type,
			Room:      s.roomName(st.Room),
			Position:  s.Graph.Vertex(st.Vertex).Pos,
			Capacity:  capacity,
			Occupants: st.Occupants(),
		})
	}
}
