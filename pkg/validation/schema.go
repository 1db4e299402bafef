package validation

import (
	"fmt"

	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/level"
)

// ValidateSchema performs schema validation on a parsed Level.
// It checks structural correctness before anything is built.
func ValidateSchema(l *level.Level) *Report {
	r := NewReport()

	validateTypes(l, r)
	validateTuning(l, r)
	points := validateRooms(l, r)
	validateLinks(l, points, r)
	validateAgents(l, points, r)

	return r
}

func validateTypes(l *level.Level, r *Report) {
	if len(l.RoomTypes) == 0 {
		r.AddWarning(Result{
			Level:       LevelSchema,
			Message:     "no room types registered; rooms can only be reached by name",
			Path:        "room_types",
			Suggestions: []string{"list the room types used by rooms[].type"},
		})
	}
	checkDuplicates(l.RoomTypes, "room_types", r)
	checkDuplicates(l.StationTypes, "station_types", r)
}

func checkDuplicates(names []string, path string, r *Report) {
	seen := make(map[string]bool, len(names))
	for i, n := range names {
		if seen[n] {
			r.AddWarning(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("type %q is registered twice", n),
				Path:        fmt.Sprintf("%s[%d]", path, i),
				ActualValue: n,
			})
		}
		seen[n] = true
	}
}

func validateTuning(l *level.Level, r *Report) {
	if l.NeighborRadius < 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "neighbor_radius must be non-negative",
			Path:        "neighbor_radius",
			ActualValue: l.NeighborRadius,
			Expected:    ">= 0",
		})
	}
	if l.NeighborRadius == 0 && len(l.Links) == 0 && len(l.Rooms) > 1 {
		r.AddWarning(Result{
			Level:       LevelSchema,
			Message:     "rooms are not connected: neighbor_radius is 0 and no links are declared",
			Path:        "neighbor_radius",
			Suggestions: []string{"set neighbor_radius", "declare doorway links"},
		})
	}
	if l.Index.MaxEdges < 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "index.max_edges must be non-negative",
			Path:        "index.max_edges",
			ActualValue: l.Index.MaxEdges,
			Expected:    ">= 0 (0 uses the default)",
		})
	}
	if l.Index.MaxDepth < 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "index.max_depth must be non-negative",
			Path:        "index.max_depth",
			ActualValue: l.Index.MaxDepth,
			Expected:    ">= 0 (0 uses the default)",
		})
	}
	if l.Index.Tolerance < 0 || l.Index.Padding < 0 {
		r.AddError(Result{
			Level:    LevelSchema,
			Message:  "index.tolerance and index.padding must be non-negative",
			Path:     "index",
			Expected: ">= 0",
		})
	}
	if l.Simulation.TickSeconds < 0 || l.Simulation.MaxTicks < 0 {
		r.AddError(Result{
			Level:    LevelSchema,
			Message:  "simulation.tick_seconds and simulation.max_ticks must be non-negative",
			Path:     "simulation",
			Expected: ">= 0",
		})
	}
}

// validateRooms checks every room and returns the set of declared point names.
func validateRooms(l *level.Level, r *Report) map[string]bool {
	points := make(map[string]bool)
	roomNames := make(map[string]bool)
	roomTypes := toSet(l.RoomTypes)
	stationTypes := toSet(l.StationTypes)

	addPoint := func(name, path string) {
		switch {
		case name == "":
			r.AddError(Result{
				Level:   LevelSchema,
				Message: "every vertex and station needs a name",
				Path:    path,
			})
		case points[name]:
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("point name %q is used more than once", name),
				Path:        path,
				ActualValue: name,
			})
		}
		points[name] = true
	}

	for i, rm := range l.Rooms {
		path := fmt.Sprintf("rooms[%d]", i)
		if rm.Name == "" {
			r.AddError(Result{Level: LevelSchema, Message: "room name is required", Path: path + ".name"})
		} else if roomNames[rm.Name] {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("room name %q is used more than once", rm.Name),
				Path:        path + ".name",
				ActualValue: rm.Name,
			})
		}
		roomNames[rm.Name] = true

		if !roomTypes[rm.Type] {
			r.AddWarning(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("room %s has unregistered type %q; it can only be reached by name", rm.Name, rm.Type),
				Path:        path + ".type",
				ActualValue: rm.Type,
				Expected:    fmt.Sprintf("one of %v", l.RoomTypes),
			})
		}
		if len(rm.Vertices) == 0 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("room %s has no interior vertices and will be excluded from routing", rm.Name),
				Path:        path + ".vertices",
				ActualValue: 0,
				Expected:    ">= 1",
			})
		}
		if len(rm.Bounds) > 0 && len(rm.Bounds) < 3 {
			r.AddWarning(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("room %s footprint needs at least 3 points and will be ignored", rm.Name),
				Path:        path + ".bounds",
				ActualValue: len(rm.Bounds),
				Expected:    ">= 3",
			})
		}

		for j, v := range rm.Vertices {
			addPoint(v.Name, fmt.Sprintf("%s.vertices[%d].name", path, j))
		}
		for j, st := range rm.Stations {
			spath := fmt.Sprintf("%s.stations[%d]", path, j)
			addPoint(st.Name, spath+".name")
			if !stationTypes[st.Type] {
				r.AddWarning(Result{
					Level:       LevelSchema,
					Message:     fmt.Sprintf("station %s has unregistered type %q; it can only be reached by name", st.Name, st.Type),
					Path:        spath + ".type",
					ActualValue: st.Type,
					Expected:    fmt.Sprintf("one of %v", l.StationTypes),
				})
			}
			if st.Capacity != nil && *st.Capacity < 1 {
				r.AddError(Result{
					Level:       LevelSchema,
					Message:     fmt.Sprintf("station %s capacity must be at least 1", st.Name),
					Path:        spath + ".capacity",
					ActualValue: *st.Capacity,
					Expected:    ">= 1, or omit for unlimited",
				})
			}
		}
	}
	return points
}

func validateLinks(l *level.Level, points map[string]bool, r *Report) {
	for i, ln := range l.Links {
		path := fmt.Sprintf("links[%d]", i)
		for _, end := range []string{ln.From, ln.To} {
			if !points[end] {
				r.AddError(Result{
					Level:       LevelSchema,
					Message:     fmt.Sprintf("link endpoint %q is not a declared vertex", end),
					Path:        path,
					ActualValue: end,
				})
			}
		}
		if ln.From == ln.To {
			r.AddWarning(Result{
				Level:       LevelSchema,
				Message:     "link joins a vertex to itself and is ignored",
				Path:        path,
				ActualValue: ln.From,
			})
		}
	}
}

func validateAgents(l *level.Level, points map[string]bool, r *Report) {
	ids := make(map[string]bool)
	roomTypes := toSet(l.RoomTypes)
	stationTypes := toSet(l.StationTypes)

	for i, a := range l.Agents {
		path := fmt.Sprintf("agents[%d]", i)
		if a.ID != "" && ids[a.ID] {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("agent id %q is used more than once", a.ID),
				Path:        path + ".id",
				ActualValue: a.ID,
			})
		}
		ids[a.ID] = true

		if !points[a.Start] {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("agent %s starts on unknown vertex %q", a.ID, a.Start),
				Path:        path + ".start",
				ActualValue: a.Start,
			})
		}
		if a.Speed < 0 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("agent %s speed must be non-negative", a.ID),
				Path:        path + ".speed",
				ActualValue: a.Speed,
				Expected:    ">= 0 (0 uses the default)",
			})
		}

		for j, e := range a.Errands {
			validateErrand(l, e, fmt.Sprintf("%s.errands[%d]", path, j), roomTypes, stationTypes, r)
		}
	}
}

func validateErrand(l *level.Level, e level.ErrandDef, path string, roomTypes, stationTypes map[string]bool, r *Report) {
	if e.Wait < 0 {
		r.AddError(Result{Level: LevelSchema, Message: "errand wait must be non-negative", Path: path + ".wait", ActualValue: e.Wait})
	}
	if (e.Type == "") == (e.Name == "") {
		r.AddError(Result{
			Level:    LevelSchema,
			Message:  "errand needs exactly one of type or name",
			Path:     path,
			Expected: "type: <registered type> or name: <room/station name>",
		})
		return
	}

	switch e.Target {
	case level.TargetRoom:
		if e.Type != "" && !roomTypes[e.Type] {
			r.AddError(Result{Level: LevelSchema, Message: fmt.Sprintf("errand room type %q is not registered", e.Type), Path: path + ".type", ActualValue: e.Type})
		}
		if e.Name != "" && l.RoomByName(e.Name) == nil {
			r.AddError(Result{Level: LevelSchema, Message: fmt.Sprintf("errand room %q does not exist", e.Name), Path: path + ".name", ActualValue: e.Name})
		}
	case level.TargetStation:
		if e.Type != "" && !stationTypes[e.Type] {
			r.AddError(Result{Level: LevelSchema, Message: fmt.Sprintf("errand station type %q is not registered", e.Type), Path: path + ".type", ActualValue: e.Type})
		}
		if e.Name != "" && l.StationByName(e.Name) == nil {
			r.AddError(Result{Level: LevelSchema, Message: fmt.Sprintf("errand station %q does not exist", e.Name), Path: path + ".name", ActualValue: e.Name})
		}
	default:
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "errand target must be room or station",
			Path:        path + ".target",
			ActualValue: e.Target,
			Expected:    "room | station",
		})
	}
}

func toSet(names []string) map[string]bool {
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}
