package main

import (
	"fmt"
	"strings"

	"github.com/Jakob-W-Lucas/Project-Beagle/internal/sim"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/analytics"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/graph"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/validation"
)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Printf("  [%s] %s\n", e.Level, e.Message)
			if e.Path != "" {
				fmt.Printf("    -> %s = %v\n", e.Path, e.ActualValue)
			}
			if e.Expected != "" {
				fmt.Printf("    expected: %s\n", e.Expected)
			}
			if e.ConflictWith != "" {
				fmt.Printf("    conflicts with: %s\n", e.ConflictWith)
			}
			for _, s := range e.Suggestions {
				fmt.Printf("    * %s\n", s)
			}
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Printf("  [%s] %s\n", w.Level, w.Message)
			if w.Path != "" {
				fmt.Printf("    -> %s = %v\n", w.Path, w.ActualValue)
			}
			if w.Expected != "" {
				fmt.Printf("    expected: %s\n", w.Expected)
			}
			for _, s := range w.Suggestions {
				fmt.Printf("    * %s\n", s)
			}
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printRouteStats(s *analytics.RouteStats) {
	fmt.Println("Global Route Table")
	fmt.Println("==================")
	fmt.Println()
	fmt.Printf("  Global vertices:   %d\n", s.Vertices)
	fmt.Printf("  Global edges:      %d\n", s.Edges)
	fmt.Printf("  Reachable pairs:   %d of %d\n", s.Reachable, s.Pairs)
	fmt.Printf("  Mean distance:     %s\n", formatDistance(s.MeanDistance))
	fmt.Printf("  Mean hops:         %.1f\n", s.MeanHops)
	if s.Diameter != nil {
		fmt.Printf("  Longest route:     %s (%s)\n",
			strings.Join(s.Diameter.Path, " > "), formatDistance(s.Diameter.Distance))
	}
	fmt.Println()

	fmt.Printf("%-16s %-10s %8s %6s %8s %10s %10s\n",
		"Room", "Type", "Interior", "Edges", "Stations", "Capacity", "Reaches")
	fmt.Printf("%-16s %-10s %8s %6s %8s %10s %10s\n",
		"----------------", "----------", "--------", "------", "--------", "----------", "----------")
	for _, r := range s.Rooms {
		capacity := fmt.Sprintf("%d/%d", r.Occupied, r.Capacity)
		if r.Capacity < 0 {
			capacity = fmt.Sprintf("%d/-", r.Occupied)
		}
		reaches := fmt.Sprintf("%d", r.ReachableRooms)
		if !r.Configured {
			reaches = "excluded"
		}
		fmt.Printf("%-16s %-10s %8d %6d %8d %10s %10s\n",
			r.Name, r.Type, r.Interior, r.Edges, r.Stations, capacity, reaches)
	}
}

func printRoute(g *graph.Graph, r graph.Route) {
	if !r.Reachable() {
		fmt.Println("  unreachable")
		return
	}
	fmt.Printf("  %s\n", strings.Join(g.Names(r), " > "))
	fmt.Printf("  %d hops, %s\n", r.Hops(), formatDistance(r.Distance()))
}

func printEvent(t float64, ev sim.Event) {
	switch ev.Kind {
	case sim.EventDepart:
		fmt.Printf("%7.1fs  %-8s sets off for %s: %s (%s)\n",
			t, ev.Agent, ev.Request, strings.Join(ev.Route, " > "), formatDistance(ev.Distance))
	case sim.EventArrive:
		fmt.Printf("%7.1fs  %-8s arrives at %s\n", t, ev.Agent, ev.Vertex)
	case sim.EventBlocked:
		fmt.Printf("%7.1fs  %-8s cannot reach %s\n", t, ev.Agent, ev.Request)
	case sim.EventDone:
		fmt.Printf("%7.1fs  %-8s is done\n", t, ev.Agent)
	}
}

func formatDistance(d float64) string {
	return fmt.Sprintf("%.2fm", d)
}
