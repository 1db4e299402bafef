// Package analytics computes figures over a built level: route-table
// statistics, room occupancy, and reachability between rooms.
package analytics

import (
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/globalmap"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/graph"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/room"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/validation"
)

// Summarize computes route statistics over m and runs the routing checks.
// m must have had ComputeAllPairs run; otherwise only room figures are filled.
func Summarize(g *graph.Graph, rooms []*room.Room, m *globalmap.Map) (*RouteStats, *validation.Report) {
	report := validation.NewReport()
	stats := &RouteStats{
		Vertices: m.Len(),
		Edges:    len(m.Edges()),
	}

	if m.Configured() {
		summarizePairs(g, m, stats)
	}
	reach := roomReachability(rooms, m)
	stats.Rooms = summarizeRooms(rooms, reach)

	validateRouting(g, rooms, m, reach, stats, report)
	return stats, report
}

func summarizePairs(g *graph.Graph, m *globalmap.Map, stats *RouteStats) {
	vs := m.Vertices()
	var totalDist float64
	var totalHops int
	for _, a := range vs {
		for _, b := range vs {
			if a == b {
				continue
			}
			stats.Pairs++
			r := m.Route(a, b)
			if !r.Reachable() {
				stats.Unreachable++
				continue
			}
			stats.Reachable++
			totalDist += r.Distance()
			totalHops += r.Hops()
			if r.Hops() > stats.MaxHops {
				stats.MaxHops = r.Hops()
			}
			if r.Distance() > stats.MaxDistance {
				stats.MaxDistance = r.Distance()
				stats.Diameter = &PairStat{
					From:     g.Vertex(a).Name,
					To:       g.Vertex(b).Name,
					Distance: r.Distance(),
					Path:     g.Names(r),
				}
			}
		}
	}
	if stats.Reachable > 0 {
		stats.MeanDistance = totalDist / float64(stats.Reachable)
		stats.MeanHops = float64(totalHops) / float64(stats.Reachable)
	}
}

// roomReachability reports, for each pair of configured rooms, whether any
// interior vertex of the first reaches any interior vertex of the second.
func roomReachability(rooms []*room.Room, m *globalmap.Map) map[[2]int]bool {
	reach := make(map[[2]int]bool)
	if !m.Configured() {
		return reach
	}
	for i, a := range rooms {
		if a == nil || !a.Configured() {
			continue
		}
		for j, b := range rooms {
			if i == j || b == nil || !b.Configured() {
				continue
			}
			reach[[2]int{i, j}] = anyRoute(m, a, b)
		}
	}
	return reach
}

func anyRoute(m *globalmap.Map, a, b *room.Room) bool {
	for _, u := range a.Interior() {
		for _, v := range b.Interior() {
			if m.Route(u, v).Reachable() {
				return true
			}
		}
	}
	return false
}

func summarizeRooms(rooms []*room.Room, reach map[[2]int]bool) []RoomStat {
	out := make([]RoomStat, 0, len(rooms))
	for i, r := range rooms {
		if r == nil {
			continue
		}
		rs := RoomStat{
			Name:       r.Name,
			Type:       r.Type,
			Configured: r.Configured(),
			Interior:   len(r.Interior()),
			Edges:      len(r.Edges()),
			Stations:   len(r.Stations()),
		}
		for _, st := range r.Stations() {
			rs.Occupied += st.Count()
			limit, limited := st.Capacity()
			switch {
			case !limited:
				rs.Capacity = room.Unlimited
			case rs.Capacity != room.Unlimited:
				rs.Capacity += limit
			}
		}
		for j := range rooms {
			if reach[[2]int{i, j}] {
				rs.ReachableRooms++
			}
		}
		out = append(out, rs)
	}
	return out
}
