package graph

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/geo"
)

// VertexID addresses a vertex in its Graph arena.
type VertexID int32

// RoomID addresses a room in the level's room list.
type RoomID int32

// StationID addresses a station in the level's station list.
type StationID int32

const (
	NoVertex  VertexID  = -1
	NoRoom    RoomID    = -1
	NoStation StationID = -1
)

// Kind says which role a vertex currently plays. Exactly one holds at a time.
type Kind uint8

const (
	// KindPointer is an off-graph position, usually the live location of an
	// agent. Freshly added vertices start here until a room claims them.
	KindPointer Kind = iota
	// KindRoomLocal vertices belong to a room's interior but are not (yet)
	// part of the global map.
	KindRoomLocal
	// KindGlobal vertices are room interior vertices indexed by the global map.
	KindGlobal
	// KindStation vertices are reached only through their room's tables.
	KindStation
)

func (k Kind) String() string {
	switch k {
	case KindPointer:
		return "pointer"
	case KindRoomLocal:
		return "room_local"
	case KindGlobal:
		return "global"
	case KindStation:
		return "station"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Vertex is one node of the navigation graph.
type Vertex struct {
	ID      VertexID
	Name    string
	UUID    uuid.UUID
	Pos     geo.Vec2
	Kind    Kind
	Room    RoomID
	Station StationID
	// Local is the room-relative slot: stations occupy [0, S), interior
	// vertices [S, S+N). -1 for pointers.
	Local int
	// Global is the global-map index, -1 unless Kind is KindGlobal.
	Global int
	Edges  []Edge
}

// IsStation reports whether v is a station vertex.
func (v *Vertex) IsStation() bool { return v.Kind == KindStation }

// IsPointer reports whether v is off-graph.
func (v *Vertex) IsPointer() bool { return v.Kind == KindPointer }

// IsInterior reports whether v is a room interior vertex, globally indexed or not.
func (v *Vertex) IsInterior() bool { return v.Kind == KindRoomLocal || v.Kind == KindGlobal }

func (v *Vertex) String() string {
	if v.Name != "" {
		return v.Name
	}
	return fmt.Sprintf("v%d", v.ID)
}
