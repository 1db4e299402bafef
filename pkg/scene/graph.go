package scene

import "github.com/Jakob-W-Lucas/Project-Beagle/pkg/geo"

// Graph is the serialisable view of an assembled scene, used by the CLI
// and the dev server.
type Graph struct {
	Metadata Metadata      `json:"metadata"`
	Vertices []VertexView  `json:"vertices"`
	Edges    []EdgeView    `json:"edges"`
	Rooms    []RoomView    `json:"rooms"`
	Stations []StationView `json:"stations"`
	Groups   Groups        `json:"groups"`
}

// Metadata holds scene-level information.
type Metadata struct {
	LevelVersion string   `json:"level_version"`
	Name         string   `json:"name"`
	GeneratedAt  string   `json:"generated_at"`
	Bounds       geo.Rect `json:"bounds"`
	Configured   bool     `json:"configured"`
}

// VertexView is one vertex. Agent pointers are not exported.
type VertexView struct {
	Name     string   `json:"name"`
	UUID     string   `json:"uuid"`
	Kind     string   `json:"kind"`
	Position geo.Vec2 `json:"position"`
	Room     string   `json:"room,omitempty"`
}

// EdgeView is one undirected connection.
type EdgeView struct {
	From    string  `json:"from"`
	To      string  `json:"to"`
	Weight  float64 `json:"weight"`
	Enabled bool    `json:"enabled"`
}

// RoomView is one room with the names of its members.
type RoomView struct {
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	Configured bool       `json:"configured"`
	Vertices   []string   `json:"vertices"`
	Stations   []string   `json:"stations"`
	Bounds     []geo.Vec2 `json:"bounds,omitempty"`
}

// StationView is one station and who holds it.
type StationView struct {
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Room      string   `json:"room"`
	Position  geo.Vec2 `json:"position"`
	Capacity  int      `json:"capacity"`
	Occupants []string `json:"occupants"`
}

// Groups organizes vertex names for fast filtering.
type Groups struct {
	Rooms map[string][]string `json:"rooms"`
	Kinds map[string][]string `json:"kinds"`
}

// NewGraph creates an empty scene graph.
func NewGraph() *Graph {
	return &Graph{
		Vertices: []VertexView{},
		Edges:    []EdgeView{},
		Rooms:    []RoomView{},
		Stations: []StationView{},
		Groups: Groups{
			Rooms: make(map[string][]string),
			Kinds: make(map[string][]string),
		},
	}
}
