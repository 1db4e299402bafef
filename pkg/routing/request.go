package routing

import (
	"fmt"

	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/graph"
)

// Target says whether a request ends in a room or at a station.
type Target uint8

const (
	TargetRoom Target = iota
	TargetStation
)

func (t Target) String() string {
	if t == TargetStation {
		return "station"
	}
	return "room"
}

// FilterKind selects how candidate destinations are chosen.
type FilterKind uint8

const (
	// FilterByType accepts every room or station of a registered type.
	FilterByType FilterKind = iota
	// FilterExactRoom accepts one specific room.
	FilterExactRoom
	// FilterExactStation accepts one specific station.
	FilterExactStation
)

// Filter narrows the candidate destinations of a request.
type Filter struct {
	Kind    FilterKind
	Type    string
	Room    graph.RoomID
	Station graph.StationID
}

// ByType accepts any destination of type t.
func ByType(t string) Filter {
	return Filter{Kind: FilterByType, Type: t, Room: graph.NoRoom, Station: graph.NoStation}
}

// ExactRoom accepts only room id.
func ExactRoom(id graph.RoomID) Filter {
	return Filter{Kind: FilterExactRoom, Room: id, Station: graph.NoStation}
}

// ExactStation accepts only station id.
func ExactStation(id graph.StationID) Filter {
	return Filter{Kind: FilterExactStation, Room: graph.NoRoom, Station: id}
}

// Request asks for the best route to a room or station.
type Request struct {
	Target Target
	Filter Filter
}

// RoomOfType requests the nearest room of type t.
func RoomOfType(t string) Request { return Request{Target: TargetRoom, Filter: ByType(t)} }

// StationOfType requests the nearest available station of type t.
func StationOfType(t string) Request { return Request{Target: TargetStation, Filter: ByType(t)} }

// ToRoom requests a specific room.
func ToRoom(id graph.RoomID) Request { return Request{Target: TargetRoom, Filter: ExactRoom(id)} }

// ToStation requests a specific station.
func ToStation(id graph.StationID) Request {
	return Request{Target: TargetStation, Filter: ExactStation(id)}
}

func (r Request) String() string {
	switch r.Filter.Kind {
	case FilterExactRoom:
		return fmt.Sprintf("%s #%d", r.Target, r.Filter.Room)
	case FilterExactStation:
		return fmt.Sprintf("%s #%d", r.Target, r.Filter.Station)
	}
	return fmt.Sprintf("%s of type %q", r.Target, r.Filter.Type)
}

// Source is one candidate starting vertex. Lead, when non-empty, is the
// route from the caller's exact position onto Vertex and is prepended to
// whatever is planned from there.
type Source struct {
	Vertex graph.VertexID
	Lead   graph.Route
}
