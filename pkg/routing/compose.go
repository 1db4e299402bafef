package routing

import (
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/graph"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/room"
)

// roomToRoom: global vertex to the nearest interior vertex of r.
func (p *Planner) roomToRoom(s *graph.Vertex, r *room.Room) graph.Route {
	if _, ok := r.InteriorIndex(p.g, s.ID); ok {
		return graph.NewRoute(0, s.ID)
	}
	best := graph.Unreachable()
	for _, v := range r.Interior() {
		best = graph.Shorter(best, p.global.Route(s.ID, v))
	}
	return best
}

// roomToStation: global map to an entrance of the station's room, then the
// room's enter table.
func (p *Planner) roomToStation(s *graph.Vertex, st *room.Station) graph.Route {
	r := p.Room(st.Room)
	if r == nil {
		return graph.Unreachable()
	}
	best := graph.Unreachable()
	for i, exit := range r.ExitRoutes(st.Slot) {
		entrance := exit.Last()
		best = graph.Shorter(best, p.global.Route(s.ID, entrance).Join(r.Enter(i, st.Slot)))
	}
	return best
}

// stationToRoom: the source room's exit table, then the global map into r.
func (p *Planner) stationToRoom(s *graph.Vertex, r *room.Room) graph.Route {
	from := p.Room(s.Room)
	if from == nil {
		return graph.Unreachable()
	}
	best := graph.Unreachable()
	for _, exit := range from.ExitRoutes(s.Local) {
		for _, v := range r.Interior() {
			best = graph.Shorter(best, exit.Join(p.global.Route(exit.Last(), v)))
		}
	}
	return best
}

// stationToStation: exit table, global map, enter table. Stations sharing a
// room are joined directly.
func (p *Planner) stationToStation(s *graph.Vertex, st *room.Station) graph.Route {
	if s.Room == st.Room {
		return p.g.Segment(s.ID, st.Vertex)
	}
	from, to := p.Room(s.Room), p.Room(st.Room)
	if from == nil || to == nil {
		return graph.Unreachable()
	}
	best := graph.Unreachable()
	for _, exit := range from.ExitRoutes(s.Local) {
		for i, back := range to.ExitRoutes(st.Slot) {
			entrance := back.Last()
			r := exit.Join(p.global.Route(exit.Last(), entrance)).Join(to.Enter(i, st.Slot))
			best = graph.Shorter(best, r)
		}
	}
	return best
}
