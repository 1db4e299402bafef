package server

import "github.com/Jakob-W-Lucas/Project-Beagle/pkg/geo"

// EventType tags websocket messages.
type EventType string

const (
	EventStep     EventType = "step"
	EventFinished EventType = "finished"
	EventError    EventType = "error"
)

// Envelope wraps every websocket message.
type Envelope struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload"`
}

// TravelResponse is the answer to /api/travel. Distance, Path and Points
// are empty when the target is unreachable.
type TravelResponse struct {
	From      string     `json:"from"`
	Request   string     `json:"request"`
	Reachable bool       `json:"reachable"`
	Distance  float64    `json:"distance,omitempty"`
	Hops      int        `json:"hops,omitempty"`
	Path      []string   `json:"path,omitempty"`
	Points    []geo.Vec2 `json:"points,omitempty"`
}

// LocateResponse is the answer to /api/locate. Vertex is set when the
// point resolved to a junction, in which case From and To are equal.
type LocateResponse struct {
	Found  bool   `json:"found"`
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
	Vertex bool   `json:"vertex,omitempty"`
}

// NearestResponse is the answer to /api/nearest.
type NearestResponse struct {
	Vertex   string   `json:"vertex"`
	Room     string   `json:"room,omitempty"`
	Position geo.Vec2 `json:"position"`
	Distance float64  `json:"distance"`
}
