package room

import (
	"sort"

	"github.com/zyedidia/generic/mapset"

	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/graph"
)

// Unlimited is the capacity of a station any number of agents may occupy.
const Unlimited = -1

// Station is a capacity-limited point of interest attached to one room.
// It tracks occupying agents by ID and never owns them.
type Station struct {
	ID        graph.StationID
	Name      string
	Type      string
	TypeIndex int
	Vertex    graph.VertexID
	Room      graph.RoomID
	// Slot is the station's room-relative index into the enter/exit tables.
	Slot int

	capacity  int
	occupants mapset.Set[string]
}

// NewStation creates a station on vertex v. A negative capacity means unlimited.
func NewStation(id graph.StationID, name, typ string, v graph.VertexID, capacity int) *Station {
	if capacity < 0 {
		capacity = Unlimited
	}
	return &Station{
		ID:        id,
		Name:      name,
		Type:      typ,
		TypeIndex: -1,
		Vertex:    v,
		Room:      graph.NoRoom,
		Slot:      -1,
		capacity:  capacity,
		occupants: mapset.New[string](),
	}
}

// Capacity returns the limit and whether one is set.
func (s *Station) Capacity() (int, bool) {
	return s.capacity, s.capacity != Unlimited
}

// Count returns the number of occupying agents.
func (s *Station) Count() int { return s.occupants.Size() }

// Available reports whether another agent may occupy the station.
func (s *Station) Available() bool {
	return s.capacity == Unlimited || s.occupants.Size() < s.capacity
}

// Occupies reports whether agent currently holds a place at the station.
func (s *Station) Occupies(agent string) bool { return s.occupants.Has(agent) }

// Occupy adds agent. It fails when the station is full or already holds agent.
func (s *Station) Occupy(agent string) bool {
	if s.occupants.Has(agent) || !s.Available() {
		return false
	}
	s.occupants.Put(agent)
	return true
}

// Vacate removes agent, reporting whether it was present.
func (s *Station) Vacate(agent string) bool {
	if !s.occupants.Has(agent) {
		return false
	}
	s.occupants.Remove(agent)
	return true
}

// Occupants returns the occupying agent IDs in sorted order.
func (s *Station) Occupants() []string {
	out := make([]string, 0, s.occupants.Size())
	s.occupants.Each(func(id string) {
		out = append(out, id)
	})
	sort.Strings(out)
	return out
}
