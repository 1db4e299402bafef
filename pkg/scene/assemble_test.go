package scene

import (
	"errors"
	"io"
	"log"
	"math"
	"strings"
	"testing"

	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/geo"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/graph"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/level"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/navigation"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/routing"
)

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func loadOffice(t *testing.T) *level.Level {
	t.Helper()
	l, err := level.LoadProject("../../examples/office")
	if err != nil {
		t.Fatalf("loading office level: %v", err)
	}
	return l
}

func assembleOffice(t *testing.T) *Scene {
	t.Helper()
	s, report := Assemble(loadOffice(t), quietLogger())
	if !report.Valid {
		for _, e := range report.Errors {
			t.Logf("  error: %s (%s)", e.Message, e.Path)
		}
		t.Fatalf("assembly failed: %s", report.Summary)
	}
	s.ComputeRoutes()
	return s
}

func intPtr(n int) *int { return &n }

// twoRooms is A and B joined by one shared edge a1-b0, with one desk of
// capacity 1 in B.
func twoRooms() *level.Level {
	return &level.Level{
		Name:           "two-rooms",
		RoomTypes:      []string{"hall", "office"},
		StationTypes:   []string{"desk"},
		NeighborRadius: 2.5,
		Rooms: []level.RoomDef{
			{Name: "A", Type: "hall", Vertices: []level.VertexDef{
				{Name: "a0", X: 0, Y: 0}, {Name: "a1", X: 2, Y: 0},
			}},
			{Name: "B", Type: "office", Vertices: []level.VertexDef{
				{Name: "b0", X: 4, Y: 0},
			}, Stations: []level.StationDef{
				{Name: "x", Type: "desk", X: 4, Y: 3, Capacity: intPtr(1)},
			}},
		},
	}
}

func assembleLevel(t *testing.T, l *level.Level) *Scene {
	t.Helper()
	s, report := Assemble(l, quietLogger())
	if !report.Valid {
		t.Fatalf("assembly failed: %s", report.Summary)
	}
	s.ComputeRoutes()
	return s
}

func vid(t *testing.T, s *Scene, name string) graph.VertexID {
	t.Helper()
	id, err := s.VertexByName(name)
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func names(s *Scene, r graph.Route) string {
	var out []string
	for _, id := range r.Vertices() {
		out = append(out, s.Graph.Vertex(id).Name)
	}
	return strings.Join(out, ",")
}

func TestAssembleOffice(t *testing.T) {
	s := assembleOffice(t)

	if len(s.Rooms) != 4 {
		t.Fatalf("expected 4 rooms, got %d", len(s.Rooms))
	}
	if len(s.Stations) != 3 {
		t.Errorf("expected 3 stations, got %d", len(s.Stations))
	}
	if s.Map.Len() != 7 {
		t.Errorf("expected 7 global vertices, got %d", s.Map.Len())
	}
	for _, st := range s.Stations {
		if s.Graph.Vertex(st.Vertex).Global != -1 {
			t.Errorf("station %s joined the global map", st.Name)
		}
	}
	if s.Index.Len() == 0 {
		t.Error("spatial index is empty")
	}
	if got := len(s.Nav.Agents()); got != 2 {
		t.Errorf("expected 2 agents, got %d", got)
	}
}

func TestAssembleConnectsNeighbors(t *testing.T) {
	s := assembleOffice(t)

	if _, ok := s.Graph.EdgeBetween(vid(t, s, "lobby_e"), vid(t, s, "office_w")); !ok {
		t.Error("expected lobby_e - office_w to be connected")
	}
	if _, ok := s.Graph.EdgeBetween(vid(t, s, "lobby_w"), vid(t, s, "kitchen_s")); !ok {
		t.Error("expected lobby_w - kitchen_s to be connected")
	}
	if _, ok := s.Graph.EdgeBetween(vid(t, s, "lobby_e"), vid(t, s, "kitchen_s")); ok {
		t.Error("lobby_e and kitchen_s are out of range")
	}
}

func TestDisabledLinkIsNotTraversed(t *testing.T) {
	s := assembleOffice(t)

	e, ok := s.Graph.EdgeBetween(vid(t, s, "lobby_w"), vid(t, s, "office_e"))
	if !ok {
		t.Fatal("expected the locked door edge to exist")
	}
	if e.Enabled {
		t.Error("locked door should be disabled")
	}
	r, err := s.Route(vid(t, s, "lobby_w"), vid(t, s, "office_e"))
	if err != nil {
		t.Fatal(err)
	}
	if got := names(s, r); got != "lobby_w,lobby_e,office_w,office_e" {
		t.Errorf("route = %s", got)
	}
	if math.Abs(r.Distance()-10) > 1e-9 {
		t.Errorf("distance = %f, want 10", r.Distance())
	}
}

func TestSpawnedAgentsHoldStations(t *testing.T) {
	s := assembleOffice(t)

	st, err := s.StationByName("desk_2")
	if err != nil {
		t.Fatal(err)
	}
	if !st.Occupies("bob") {
		t.Error("bob should occupy desk_2")
	}
	if st.Available() {
		t.Error("desk_2 should be full")
	}
}

// Scenario 1: a vertex in A reaches the desk in B through the shared vertex.
func TestTravelToStationAcrossRooms(t *testing.T) {
	s := assembleLevel(t, twoRooms())

	r, err := s.TravelToStation(vid(t, s, "a1"), routing.ByType("desk"))
	if err != nil {
		t.Fatal(err)
	}
	if got := names(s, r); got != "a1,b0,x" {
		t.Errorf("route = %s, want a1,b0,x", got)
	}
	if r.Hops() != 2 {
		t.Errorf("hops = %d, want 2", r.Hops())
	}
	if math.Abs(r.Distance()-5) > 1e-9 {
		t.Errorf("distance = %f, want 5", r.Distance())
	}
}

func TestTravelToStationOffice(t *testing.T) {
	s := assembleOffice(t)

	r, err := s.TravelToStation(vid(t, s, "lobby_e"), routing.ByType("desk"))
	if err != nil {
		t.Fatal(err)
	}
	if got := names(s, r); got != "lobby_e,office_w,desk_1" {
		t.Errorf("route = %s", got)
	}
	want := 2 + math.Sqrt(5)
	if math.Abs(r.Distance()-want) > 1e-9 {
		t.Errorf("distance = %f, want %f", r.Distance(), want)
	}
}

// Scenario 2: the only desk is taken, so there is no route.
func TestTravelToFullStationIsUnreachable(t *testing.T) {
	l := twoRooms()
	l.Agents = []level.AgentDef{{ID: "carol", Start: "x"}}
	s := assembleLevel(t, l)

	r, err := s.TravelToStation(vid(t, s, "a0"), routing.ByType("desk"))
	if err != nil {
		t.Fatal(err)
	}
	if r.Reachable() {
		t.Errorf("expected unreachable, got %s", names(s, r))
	}
	if !math.IsInf(r.Distance(), 1) {
		t.Errorf("distance = %f, want +Inf", r.Distance())
	}
}

// Scenario 3: mid-edge, both endpoints are tried and the pointer offset is
// part of the result.
func TestTravelFromMidEdge(t *testing.T) {
	s := assembleOffice(t)

	if err := s.Follow("ada", s.Graph.Segment(vid(t, s, "lobby_w"), vid(t, s, "lobby_e"))); err != nil {
		t.Fatal(err)
	}
	// The first tick arrives on lobby_w itself, the second walks 1 along.
	for i := 0; i < 2; i++ {
		if _, err := s.Tick(0.5); err != nil {
			t.Fatal(err)
		}
	}
	a, _ := s.Nav.Agent("ada")
	if !a.Position().ApproxEqual(geo.V(1, 0), 1e-9) {
		t.Fatalf("ada at %v, want (1,0)", a.Position())
	}

	r, err := s.Travel("ada", routing.RoomOfType("office"))
	if err != nil {
		t.Fatal(err)
	}
	vs := r.Vertices()
	if len(vs) != 3 || vs[0] != a.Pointer {
		t.Fatalf("expected route from the pointer, got %v", vs)
	}
	if got := names(s, graph.NewRoute(0, vs[1:]...)); got != "lobby_e,office_w" {
		t.Errorf("route = %s", got)
	}
	// 3 to lobby_e, 2 more to office_w; via lobby_w it would be 1+4+2.
	if math.Abs(r.Distance()-5) > 1e-9 {
		t.Errorf("distance = %f, want 5", r.Distance())
	}
}

// Scenario 4: follow then tick drains the queue once per arrival.
func TestFollowUntilIdle(t *testing.T) {
	s := assembleOffice(t)

	r, err := s.Travel("ada", routing.StationOfType("desk"))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Follow("ada", r); err != nil {
		t.Fatal(err)
	}

	var arrived []string
	for i := 0; i < 1000; i++ {
		arrivals, err := s.Tick(0.1)
		if err != nil {
			t.Fatal(err)
		}
		for _, a := range arrivals {
			arrived = append(arrived, s.Graph.Vertex(a.Vertex).Name)
		}
		if h, _ := s.Heading("ada"); h == graph.NoVertex {
			break
		}
	}

	if got := strings.Join(arrived, ","); got != "lobby_w,lobby_e,office_w,desk_1" {
		t.Errorf("arrivals = %s", got)
	}
	origin, err := s.Origin("ada")
	if err != nil {
		t.Fatal(err)
	}
	if origin != r.Last() {
		t.Errorf("origin = %d, want %d", origin, r.Last())
	}
	if state, _ := s.Nav.State("ada"); state != navigation.Idle {
		t.Errorf("state = %s, want idle", state)
	}
}

func TestQueriesBeforeComputeRoutes(t *testing.T) {
	s, _ := Assemble(loadOffice(t), quietLogger())
	a0 := vid(t, s, "lobby_w")

	if _, err := s.TravelToStation(a0, routing.ByType("desk")); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("TravelToStation: expected ErrNotConfigured, got %v", err)
	}
	if _, err := s.TravelToRoom(a0, routing.ByType("office")); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("TravelToRoom: expected ErrNotConfigured, got %v", err)
	}
	if _, err := s.Travel("ada", routing.RoomOfType("office")); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Travel: expected ErrNotConfigured, got %v", err)
	}
	if err := s.Follow("ada", graph.NewRoute(0, a0)); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Follow: expected ErrNotConfigured, got %v", err)
	}
	if _, err := s.Advance("ada"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Advance: expected ErrNotConfigured, got %v", err)
	}
	if _, err := s.Heading("ada"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Heading: expected ErrNotConfigured, got %v", err)
	}
	if _, err := s.Origin("ada"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Origin: expected ErrNotConfigured, got %v", err)
	}
	if _, _, err := s.Locate(geo.V(1, 0)); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Locate: expected ErrNotConfigured, got %v", err)
	}
	if _, err := s.Nearest(geo.V(1, 0)); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Nearest: expected ErrNotConfigured, got %v", err)
	}
	if _, err := s.Tick(0.1); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Tick: expected ErrNotConfigured, got %v", err)
	}

	s.ComputeRoutes()
	if _, err := s.TravelToStation(a0, routing.ByType("desk")); err != nil {
		t.Errorf("after ComputeRoutes: %v", err)
	}
}

func TestEmptyRoomIsExcluded(t *testing.T) {
	l := twoRooms()
	l.Rooms = append(l.Rooms, level.RoomDef{Name: "void", Type: "hall"})

	s, report := Assemble(l, quietLogger())
	if report.Valid {
		t.Fatal("expected an error for the empty room")
	}
	if len(report.Errors) != 1 || report.Errors[0].Path != "rooms[2]" {
		t.Errorf("unexpected errors: %+v", report.Errors)
	}
	s.ComputeRoutes()
	if s.Map.Len() != 3 {
		t.Errorf("expected 3 global vertices, got %d", s.Map.Len())
	}
	r, err := s.TravelToStation(vid(t, s, "a0"), routing.ByType("desk"))
	if err != nil {
		t.Fatal(err)
	}
	if !r.Reachable() {
		t.Error("the rest of the level should still route")
	}
}

func TestAssembleReportsBadReferences(t *testing.T) {
	l := twoRooms()
	l.Links = []level.LinkDef{{From: "a0", To: "nowhere"}}
	l.Agents = []level.AgentDef{{ID: "dan", Start: "nowhere"}}

	_, report := Assemble(l, quietLogger())
	paths := map[string]bool{}
	for _, e := range report.Errors {
		paths[e.Path] = true
	}
	for _, want := range []string{"links[0]", "agents[0].start"} {
		if !paths[want] {
			t.Errorf("expected an error at %s, got %+v", want, report.Errors)
		}
	}
}

func TestRequestFromErrand(t *testing.T) {
	s := assembleOffice(t)

	req, err := s.Request(level.ErrandDef{Target: level.TargetRoom, Name: "lobby"})
	if err != nil {
		t.Fatal(err)
	}
	if req.Filter.Kind != routing.FilterExactRoom || req.Filter.Room != 0 {
		t.Errorf("unexpected request %s", req)
	}

	req, err = s.Request(level.ErrandDef{Target: level.TargetStation, Type: "coffee"})
	if err != nil {
		t.Fatal(err)
	}
	if req.Target != routing.TargetStation || req.Filter.Type != "coffee" {
		t.Errorf("unexpected request %s", req)
	}

	if _, err := s.Request(level.ErrandDef{Target: level.TargetStation, Name: "nope"}); err == nil {
		t.Error("expected an error for an unknown station")
	}
	if _, err := s.Request(level.ErrandDef{Target: level.TargetStation, Type: "sofa"}); err == nil {
		t.Error("expected an error for a station type no station has")
	}
	if _, err := s.Request(level.ErrandDef{Target: level.TargetRoom, Type: "garden"}); err == nil {
		t.Error("expected an error for a room type no room has")
	}
	if _, err := s.Request(level.ErrandDef{Target: "teleport"}); err == nil {
		t.Error("expected an error for an unknown target")
	}
}

func TestNearest(t *testing.T) {
	s := assembleOffice(t)

	tests := []struct {
		name string
		p    geo.Vec2
		want string
	}{
		{"inside lobby", geo.V(4.5, 0.5), "lobby_e"},
		{"inside office", geo.V(9.5, 2.5), "office_e"},
		{"no footprint", geo.V(0.5, 1.6), "kitchen_s"},
		{"far away", geo.V(30, 30), "store"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := s.Nearest(tt.p)
			if err != nil {
				t.Fatal(err)
			}
			if got := s.Graph.Vertex(id).Name; got != tt.want {
				t.Errorf("Nearest(%v) = %s, want %s", tt.p, got, tt.want)
			}
		})
	}
}

func TestNearestStaysInsideFootprint(t *testing.T) {
	l := twoRooms()
	l.Rooms[0].Bounds = []geo.Vec2{geo.V(-1, -1), geo.V(3.5, -1), geo.V(3.5, 1), geo.V(-1, 1)}
	s := assembleLevel(t, l)

	// b0 is closer, but (3.4, 0) lies inside A.
	id, err := s.Nearest(geo.V(3.4, 0))
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Graph.Vertex(id).Name; got != "a1" {
		t.Errorf("inside A: got %s, want a1", got)
	}

	id, _ = s.Nearest(geo.V(3.6, 0))
	if got := s.Graph.Vertex(id).Name; got != "b0" {
		t.Errorf("outside A: got %s, want b0", got)
	}
}

func TestLocateJunction(t *testing.T) {
	s := assembleOffice(t)

	// office_w meets the lobby, office_e and both desks.
	e, ok, err := s.Locate(geo.V(6, 0))
	if err != nil {
		t.Fatal(err)
	}
	if !ok || !e.IsLoop() || e.From != vid(t, s, "office_w") {
		t.Errorf("expected office_w junction, got %+v", e)
	}

	e, ok, _ = s.Locate(geo.V(2, 0))
	if !ok || e.IsLoop() {
		t.Fatalf("expected the lobby edge, got %+v ok=%v", e, ok)
	}
	want := [2]graph.VertexID{vid(t, s, "lobby_w"), vid(t, s, "lobby_e")}
	if e.Key() != want {
		t.Errorf("edge key = %v, want %v", e.Key(), want)
	}
}
