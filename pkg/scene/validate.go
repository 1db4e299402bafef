package scene

import (
	"fmt"

	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/geo"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/validation"
)

// ValidateGraph performs structural validation on an exported scene.
// It checks vertex names, edge endpoints, group consistency, station
// references and bounds enclosure.
func ValidateGraph(g *Graph) *validation.Report {
	r := validation.NewReport()

	if g == nil {
		r.AddError(validation.Result{
			Level:   validation.LevelTopology,
			Message: "scene graph is nil",
		})
		return r
	}

	names := validateVertexNames(g, r)
	validateEdges(g, names, r)
	validateGroups(g, names, r)
	validateStations(g, r)
	validateBoundsEnclosure(g, r)
	validateFootprints(g, r)

	return r
}

func validateVertexNames(g *Graph, r *validation.Report) map[string]int {
	seen := make(map[string]int, len(g.Vertices))
	for i, v := range g.Vertices {
		if v.Name == "" {
			r.AddError(validation.Result{
				Level:       validation.LevelTopology,
				Message:     fmt.Sprintf("vertex at index %d has empty name", i),
				Path:        fmt.Sprintf("vertices[%d].name", i),
				ActualValue: "",
				Expected:    "non-empty string",
			})
			continue
		}
		if prev, exists := seen[v.Name]; exists {
			r.AddError(validation.Result{
				Level:       validation.LevelTopology,
				Message:     fmt.Sprintf("duplicate vertex name %q at indices %d and %d", v.Name, prev, i),
				Path:        fmt.Sprintf("vertices[%d].name", i),
				ActualValue: v.Name,
			})
		}
		seen[v.Name] = i
	}
	return seen
}

func validateEdges(g *Graph, names map[string]int, r *validation.Report) {
	for i, e := range g.Edges {
		for _, end := range []string{e.From, e.To} {
			if _, ok := names[end]; !ok {
				r.AddError(validation.Result{
					Level:       validation.LevelTopology,
					Message:     fmt.Sprintf("edge %d references unknown vertex %q", i, end),
					Path:        fmt.Sprintf("edges[%d]", i),
					ActualValue: end,
				})
			}
		}
		if e.From == e.To {
			r.AddWarning(validation.Result{
				Level:   validation.LevelTopology,
				Message: fmt.Sprintf("edge %d connects %q to itself", i, e.From),
				Path:    fmt.Sprintf("edges[%d]", i),
			})
		}
		if e.Weight <= 0 {
			r.AddWarning(validation.Result{
				Level:       validation.LevelTopology,
				Message:     fmt.Sprintf("edge %s - %s has zero length", e.From, e.To),
				Path:        fmt.Sprintf("edges[%d].weight", i),
				ActualValue: e.Weight,
				Expected:    "> 0",
			})
		}
	}
}

// validateGroups checks that group entries name real vertices and that
// every vertex with a room appears in that room's group.
func validateGroups(g *Graph, names map[string]int, r *validation.Report) {
	for room, members := range g.Groups.Rooms {
		for _, name := range members {
			i, ok := names[name]
			if !ok {
				r.AddError(validation.Result{
					Level:       validation.LevelTopology,
					Message:     fmt.Sprintf("room group %q references unknown vertex %q", room, name),
					Path:        fmt.Sprintf("groups.rooms.%s", room),
					ActualValue: name,
				})
				continue
			}
			if g.Vertices[i].Room != room {
				r.AddError(validation.Result{
					Level:        validation.LevelTopology,
					Message:      fmt.Sprintf("vertex %q is grouped under room %q", name, room),
					Path:         fmt.Sprintf("groups.rooms.%s", room),
					ConflictWith: g.Vertices[i].Room,
				})
			}
		}
	}

	for i, v := range g.Vertices {
		if v.Room == "" {
			continue
		}
		found := false
		for _, name := range g.Groups.Rooms[v.Room] {
			if name == v.Name {
				found = true
				break
			}
		}
		if !found {
			r.AddError(validation.Result{
				Level:   validation.LevelTopology,
				Message: fmt.Sprintf("vertex %q missing from room group %q", v.Name, v.Room),
				Path:    fmt.Sprintf("vertices[%d].room", i),
			})
		}
	}
}

func validateStations(g *Graph, r *validation.Report) {
	rooms := make(map[string]bool, len(g.Rooms))
	for _, rm := range g.Rooms {
		rooms[rm.Name] = true
	}
	for i, st := range g.Stations {
		if !rooms[st.Room] {
			r.AddError(validation.Result{
				Level:       validation.LevelTopology,
				Message:     fmt.Sprintf("station %q belongs to unknown room %q", st.Name, st.Room),
				Path:        fmt.Sprintf("stations[%d].room", i),
				ActualValue: st.Room,
			})
		}
		if st.Capacity >= 0 && len(st.Occupants) > st.Capacity {
			r.AddError(validation.Result{
				Level:       validation.LevelTopology,
				Message:     fmt.Sprintf("station %q holds %d agents but has capacity %d", st.Name, len(st.Occupants), st.Capacity),
				Path:        fmt.Sprintf("stations[%d].occupants", i),
				ActualValue: len(st.Occupants),
				Expected:    fmt.Sprintf("<= %d", st.Capacity),
			})
		}
	}
}

func validateBoundsEnclosure(g *Graph, r *validation.Report) {
	b := g.Metadata.Bounds
	for i, v := range g.Vertices {
		if !b.Contains(v.Position) {
			r.AddWarning(validation.Result{
				Level:       validation.LevelTopology,
				Message:     fmt.Sprintf("vertex %q lies outside the scene bounds", v.Name),
				Path:        fmt.Sprintf("vertices[%d].position", i),
				ActualValue: v.Position,
			})
		}
	}
}

// validateFootprints warns about footprints with no area and about room
// vertices placed outside the room's declared footprint.
func validateFootprints(g *Graph, r *validation.Report) {
	pos := make(map[string]geo.Vec2, len(g.Vertices))
	for _, v := range g.Vertices {
		pos[v.Name] = v.Position
	}
	for i, rm := range g.Rooms {
		poly := geo.NewPolygon(rm.Bounds...)
		if poly.IsEmpty() {
			continue
		}
		if poly.Area() < geo.Epsilon {
			r.AddWarning(validation.Result{
				Level:       validation.LevelSchema,
				Message:     fmt.Sprintf("footprint of room %q has no area", rm.Name),
				Path:        fmt.Sprintf("rooms[%d].bounds", i),
				ActualValue: rm.Bounds,
			})
			continue
		}
		for _, name := range append(append([]string(nil), rm.Vertices...), rm.Stations...) {
			p, ok := pos[name]
			if !ok || poly.Contains(p) {
				continue
			}
			r.AddWarning(validation.Result{
				Level:       validation.LevelTopology,
				Message:     fmt.Sprintf("%q lies outside the footprint of room %q", name, rm.Name),
				Path:        fmt.Sprintf("rooms[%d].bounds", i),
				ActualValue: p,
			})
		}
	}
}
