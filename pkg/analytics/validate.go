package analytics

import (
	"fmt"

	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/globalmap"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/graph"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/room"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/validation"
)

// validateRouting runs the routing checks over a computed map.
func validateRouting(g *graph.Graph, rooms []*room.Room, m *globalmap.Map, reach map[[2]int]bool, stats *RouteStats, report *validation.Report) {
	if !m.Configured() {
		report.AddWarning(validation.Result{
			Level:       validation.LevelRouting,
			Message:     "routes have not been computed; reachability was not checked",
			Suggestions: []string{"compute routes before summarising"},
		})
		return
	}
	validateExcludedRooms(rooms, report)
	validateIsolatedRooms(rooms, reach, report)
	validateRoomReachability(rooms, reach, report)
	validateDisabledEdges(g, report)

	report.AddInfo(validation.Result{
		Level: validation.LevelRouting,
		Message: fmt.Sprintf("%d global vertices, %d of %d ordered pairs reachable",
			stats.Vertices, stats.Reachable, stats.Pairs),
	})
}

func validateExcludedRooms(rooms []*room.Room, report *validation.Report) {
	for i, r := range rooms {
		if r != nil && !r.Configured() {
			report.AddWarning(validation.Result{
				Level:       validation.LevelRouting,
				Message:     fmt.Sprintf("room %s is excluded from routing", r.Name),
				Path:        fmt.Sprintf("rooms[%d]", i),
				ActualValue: r.Name,
			})
		}
	}
}

func validateIsolatedRooms(rooms []*room.Room, reach map[[2]int]bool, report *validation.Report) {
	configured := 0
	for _, r := range rooms {
		if r != nil && r.Configured() {
			configured++
		}
	}
	if configured < 2 {
		return
	}
	for i, r := range rooms {
		if r == nil || !r.Configured() {
			continue
		}
		in, out := false, false
		for j := range rooms {
			in = in || reach[[2]int{j, i}]
			out = out || reach[[2]int{i, j}]
		}
		if !in && !out {
			report.AddWarning(validation.Result{
				Level:       validation.LevelRouting,
				Message:     fmt.Sprintf("room %s is isolated: no other room can reach it or be reached from it", r.Name),
				Path:        fmt.Sprintf("rooms[%d]", i),
				ActualValue: r.Name,
				Suggestions: []string{"add a link to a neighbouring room", "increase neighbor_radius"},
			})
		}
	}
}

// validateRoomReachability flags one-way connections, which only arise from
// directed or disabled edges and are usually a mistake.
func validateRoomReachability(rooms []*room.Room, reach map[[2]int]bool, report *validation.Report) {
	for i, a := range rooms {
		for j, b := range rooms {
			if i >= j || a == nil || b == nil {
				continue
			}
			ab, ba := reach[[2]int{i, j}], reach[[2]int{j, i}]
			if ab != ba {
				from, to := a, b
				if ba {
					from, to = b, a
				}
				report.AddWarning(validation.Result{
					Level:        validation.LevelRouting,
					Message:      fmt.Sprintf("room %s reaches room %s but not the other way round", from.Name, to.Name),
					ConflictWith: to.Name,
				})
			}
		}
	}
}

func validateDisabledEdges(g *graph.Graph, report *validation.Report) {
	disabled := 0
	for id := graph.VertexID(0); int(id) < g.Len(); id++ {
		for _, e := range g.Vertex(id).Edges {
			if !e.Enabled && e.From < e.To {
				disabled++
			}
		}
	}
	if disabled > 0 {
		report.AddInfo(validation.Result{
			Level:       validation.LevelRouting,
			Message:     fmt.Sprintf("%d disabled connections are never traversed", disabled),
			ActualValue: disabled,
		})
	}
}
