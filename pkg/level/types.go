package level

import "github.com/Jakob-W-Lucas/Project-Beagle/pkg/geo"

// Level is the top-level description of a navigable map.
type Level struct {
	LevelVersion   string     `yaml:"level_version" json:"level_version"`
	Name           string     `yaml:"name" json:"name"`
	RoomTypes      []string   `yaml:"room_types" json:"room_types"`
	StationTypes   []string   `yaml:"station_types" json:"station_types"`
	NeighborRadius float64    `yaml:"neighbor_radius" json:"neighbor_radius"`
	Index          IndexDef   `yaml:"index" json:"index"`
	Rooms          []RoomDef  `yaml:"rooms" json:"rooms"`
	Links          []LinkDef  `yaml:"links" json:"links"`
	Agents         []AgentDef `yaml:"agents" json:"agents"`
	Simulation     SimDef     `yaml:"simulation" json:"simulation"`
}

// IndexDef tunes the spatial index. Zero values fall back to defaults.
type IndexDef struct {
	Padding   float64 `yaml:"padding" json:"padding"`
	MaxEdges  int     `yaml:"max_edges" json:"max_edges"`
	MaxDepth  int     `yaml:"max_depth" json:"max_depth"`
	Tolerance float64 `yaml:"tolerance" json:"tolerance"`
}

// RoomDef declares a room, its interior vertices in chain order, and its stations.
type RoomDef struct {
	Name     string       `yaml:"name" json:"name"`
	Type     string       `yaml:"type" json:"type"`
	Vertices []VertexDef  `yaml:"vertices" json:"vertices"`
	Stations []StationDef `yaml:"stations" json:"stations"`
	// Bounds is the optional room footprint.
	Bounds []geo.Vec2 `yaml:"bounds,omitempty" json:"bounds,omitempty"`
}

// VertexDef is a named point.
type VertexDef struct {
	Name string  `yaml:"name" json:"name"`
	X    float64 `yaml:"x" json:"x"`
	Y    float64 `yaml:"y" json:"y"`
}

// Pos returns the vertex position.
func (v VertexDef) Pos() geo.Vec2 { return geo.V(v.X, v.Y) }

// StationDef declares a station. A nil Capacity means unlimited.
type StationDef struct {
	Name     string  `yaml:"name" json:"name"`
	Type     string  `yaml:"type" json:"type"`
	X        float64 `yaml:"x" json:"x"`
	Y        float64 `yaml:"y" json:"y"`
	Capacity *int    `yaml:"capacity,omitempty" json:"capacity,omitempty"`
}

// Pos returns the station position.
func (s StationDef) Pos() geo.Vec2 { return geo.V(s.X, s.Y) }

// CapacityOr returns the capacity, or unlimited when none is set.
func (s StationDef) CapacityOr(unlimited int) int {
	if s.Capacity == nil {
		return unlimited
	}
	return *s.Capacity
}

// LinkDef connects two named vertices explicitly, typically a doorway.
type LinkDef struct {
	From     string `yaml:"from" json:"from"`
	To       string `yaml:"to" json:"to"`
	Disabled bool   `yaml:"disabled,omitempty" json:"disabled,omitempty"`
}

// AgentDef places an agent and lists the errands it runs in order.
type AgentDef struct {
	ID      string      `yaml:"id" json:"id"`
	Start   string      `yaml:"start" json:"start"`
	Speed   float64     `yaml:"speed" json:"speed"`
	Errands []ErrandDef `yaml:"errands" json:"errands"`
}

// Errand targets.
const (
	TargetRoom    = "room"
	TargetStation = "station"
)

// ErrandDef is one trip: to any room or station of Type, or to the one
// called Name. Wait is how long the agent stays on arrival, in seconds.
type ErrandDef struct {
	Target string  `yaml:"target" json:"target"`
	Type   string  `yaml:"type,omitempty" json:"type,omitempty"`
	Name   string  `yaml:"name,omitempty" json:"name,omitempty"`
	Wait   float64 `yaml:"wait,omitempty" json:"wait,omitempty"`
}

// SimDef controls the errand runner.
type SimDef struct {
	TickSeconds float64 `yaml:"tick_seconds" json:"tick_seconds"`
	MaxTicks    int     `yaml:"max_ticks" json:"max_ticks"`
}

// RoomByName returns the room definition with the given name, or nil.
func (l *Level) RoomByName(name string) *RoomDef {
	for i := range l.Rooms {
		if l.Rooms[i].Name == name {
			return &l.Rooms[i]
		}
	}
	return nil
}

// StationByName returns the station definition with the given name, or nil.
func (l *Level) StationByName(name string) *StationDef {
	for i := range l.Rooms {
		for j := range l.Rooms[i].Stations {
			if l.Rooms[i].Stations[j].Name == name {
				return &l.Rooms[i].Stations[j]
			}
		}
	}
	return nil
}

// PointNames returns the name of every vertex and station, rooms in order.
func (l *Level) PointNames() []string {
	var out []string
	for _, r := range l.Rooms {
		for _, v := range r.Vertices {
			out = append(out, v.Name)
		}
		for _, s := range r.Stations {
			out = append(out, s.Name)
		}
	}
	return out
}

// Bounds returns the box around every declared point and footprint.
func (l *Level) Bounds() geo.Rect {
	var pts []geo.Vec2
	for _, r := range l.Rooms {
		for _, v := range r.Vertices {
			pts = append(pts, v.Pos())
		}
		for _, s := range r.Stations {
			pts = append(pts, s.Pos())
		}
		pts = append(pts, r.Bounds...)
	}
	return geo.BoundsOf(pts...)
}
