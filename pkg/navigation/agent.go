package navigation

import (
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/geo"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/graph"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/room"
)

// Agent is a navigating entity. Its Pointer is an off-graph vertex that
// tracks the live position so routes can start mid-edge.
type Agent struct {
	ID      string
	Speed   float64
	Mover   Mover
	Pointer graph.VertexID
	Room    graph.RoomID

	cursor  Cursor
	station *room.Station
}

// Position returns where the mover currently is.
func (a *Agent) Position() geo.Vec2 { return a.Mover.Position() }

// Origin returns the last vertex the agent reached.
func (a *Agent) Origin() graph.VertexID { return a.cursor.Origin() }

// Heading returns the vertex the agent is walking to, or NoVertex.
func (a *Agent) Heading() graph.VertexID { return a.cursor.Heading() }

// Remaining returns the queued vertices after the heading.
func (a *Agent) Remaining() []graph.VertexID { return a.cursor.Remaining() }

// Station returns the station the agent occupies or is headed for, or nil.
func (a *Agent) Station() *room.Station { return a.station }

// Snapshot is a serialisable view of an agent.
type Snapshot struct {
	ID       string          `json:"id"`
	Position geo.Vec2        `json:"position"`
	State    string          `json:"state"`
	Origin   graph.VertexID  `json:"origin"`
	Heading  graph.VertexID  `json:"heading"`
	Room     graph.RoomID    `json:"room"`
	Station  graph.StationID `json:"station"`
}
