package graph

import (
	"encoding/json"
	"math"
)

// Route is an immutable ordered vertex path with its total distance.
// The zero value and Unreachable() are the empty route at +Inf, which
// loses every comparison so folding code needs no special cases.
type Route struct {
	vertices []VertexID
	distance float64
	valid    bool
}

// NewRoute builds a route over vertices with the given total distance.
// With no vertices the result is Unreachable.
func NewRoute(distance float64, vertices ...VertexID) Route {
	if len(vertices) == 0 || math.IsInf(distance, 1) || math.IsNaN(distance) {
		return Unreachable()
	}
	vs := make([]VertexID, len(vertices))
	copy(vs, vertices)
	return Route{vertices: vs, distance: distance, valid: true}
}

// Unreachable returns the "no path" sentinel.
func Unreachable() Route {
	return Route{}
}

// Reachable reports whether r holds a path.
func (r Route) Reachable() bool { return r.valid }

// Distance returns the total weight, +Inf when unreachable.
func (r Route) Distance() float64 {
	if !r.valid {
		return math.Inf(1)
	}
	return r.distance
}

// Len returns the number of vertices.
func (r Route) Len() int { return len(r.vertices) }

// Hops returns the number of edges walked.
func (r Route) Hops() int {
	if len(r.vertices) == 0 {
		return 0
	}
	return len(r.vertices) - 1
}

// At returns the i-th vertex.
func (r Route) At(i int) VertexID { return r.vertices[i] }

// Vertices returns a copy of the vertex sequence.
func (r Route) Vertices() []VertexID {
	out := make([]VertexID, len(r.vertices))
	copy(out, r.vertices)
	return out
}

// First returns the starting vertex, NoVertex when unreachable.
func (r Route) First() VertexID {
	if len(r.vertices) == 0 {
		return NoVertex
	}
	return r.vertices[0]
}

// Last returns the final vertex, NoVertex when unreachable.
func (r Route) Last() VertexID {
	if len(r.vertices) == 0 {
		return NoVertex
	}
	return r.vertices[len(r.vertices)-1]
}

// Join appends o to r. When r ends where o starts the shared vertex appears
// once; otherwise the sequences are concatenated as-is. Distances add.
// Joining with an unreachable route is unreachable.
func (r Route) Join(o Route) Route {
	if !r.valid || !o.valid {
		return Unreachable()
	}
	tail := o.vertices
	if r.Last() == o.First() {
		tail = tail[1:]
	}
	vs := make([]VertexID, 0, len(r.vertices)+len(tail))
	vs = append(vs, r.vertices...)
	vs = append(vs, tail...)
	return Route{vertices: vs, distance: r.distance + o.distance, valid: true}
}

// Reverse returns the same path walked backwards.
func (r Route) Reverse() Route {
	if !r.valid {
		return Unreachable()
	}
	n := len(r.vertices)
	vs := make([]VertexID, n)
	for i, v := range r.vertices {
		vs[n-1-i] = v
	}
	return Route{vertices: vs, distance: r.distance, valid: true}
}

// Equal reports whether both routes visit the same vertices with the same distance.
func (r Route) Equal(o Route) bool {
	if r.valid != o.valid {
		return false
	}
	if !r.valid {
		return true
	}
	if len(r.vertices) != len(o.vertices) || math.Abs(r.distance-o.distance) > 1e-9 {
		return false
	}
	for i := range r.vertices {
		if r.vertices[i] != o.vertices[i] {
			return false
		}
	}
	return true
}

// Compare orders routes by distance: -1 if a is shorter, 1 if b is shorter,
// 0 on a tie. Unreachable routes sort after every reachable one.
func Compare(a, b Route) int {
	switch {
	case !a.valid && !b.valid:
		return 0
	case !b.valid:
		return -1
	case !a.valid:
		return 1
	case a.distance < b.distance:
		return -1
	case a.distance > b.distance:
		return 1
	}
	return 0
}

// Shorter keeps the incumbent unless the candidate is strictly shorter.
func Shorter(incumbent, candidate Route) Route {
	if Compare(candidate, incumbent) < 0 {
		return candidate
	}
	return incumbent
}

type routeJSON struct {
	Vertices []VertexID `json:"vertices"`
	Distance *float64   `json:"distance"`
}

// MarshalJSON encodes unreachable routes with a null distance.
func (r Route) MarshalJSON() ([]byte, error) {
	out := routeJSON{Vertices: r.Vertices()}
	if r.valid {
		d := r.distance
		out.Distance = &d
	}
	return json.Marshal(out)
}
