// Package navigation moves agents along planned routes one tick at a time
// and keeps station occupancy in step with where they are going.
package navigation

import "github.com/Jakob-W-Lucas/Project-Beagle/pkg/graph"

// State is the phase of a cursor.
type State uint8

const (
	Idle State = iota
	Moving
	Arrived
)

func (s State) String() string {
	switch s {
	case Moving:
		return "moving"
	case Arrived:
		return "arrived"
	}
	return "idle"
}

// Cursor is an agent's position along its route: the last vertex reached,
// the vertex being walked to, and the rest of the route.
type Cursor struct {
	origin  graph.VertexID
	heading graph.VertexID
	queue   []graph.VertexID
}

// NewCursor creates an idle cursor resting on origin.
func NewCursor(origin graph.VertexID) Cursor {
	return Cursor{origin: origin, heading: graph.NoVertex}
}

// Origin returns the most recently reached vertex.
func (c *Cursor) Origin() graph.VertexID { return c.origin }

// Heading returns the vertex being walked to, or NoVertex when idle.
func (c *Cursor) Heading() graph.VertexID { return c.heading }

// Remaining returns the queued vertices after the heading.
func (c *Cursor) Remaining() []graph.VertexID {
	out := make([]graph.VertexID, len(c.queue))
	copy(out, c.queue)
	return out
}

// Follow replaces whatever the cursor was doing with r. The first vertex
// becomes the heading. Unreachable routes are ignored and reported false.
func (c *Cursor) Follow(r graph.Route) bool {
	if !r.Reachable() || r.Len() == 0 {
		return false
	}
	c.queue = r.Vertices()
	c.heading = c.queue[0]
	c.queue = c.queue[1:]
	return true
}

// Advance is called once the mover reports it reached the heading. The
// heading becomes the origin and the next queued vertex, if any, becomes
// the heading. It returns false when there was no heading.
func (c *Cursor) Advance() bool {
	if c.heading == graph.NoVertex {
		return false
	}
	c.origin = c.heading
	if len(c.queue) == 0 {
		c.heading = graph.NoVertex
		c.queue = nil
		return true
	}
	c.heading = c.queue[0]
	c.queue = c.queue[1:]
	return true
}

// Stop drops the heading and queue, leaving the origin in place.
func (c *Cursor) Stop() {
	c.heading = graph.NoVertex
	c.queue = nil
}

// State reports the cursor phase given whether the mover is at the heading.
func (c *Cursor) State(atHeading bool) State {
	switch {
	case c.heading == graph.NoVertex:
		return Idle
	case atHeading:
		return Arrived
	}
	return Moving
}
