package navigation

import (
	"errors"
	"io"
	"log"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/geo"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/globalmap"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/graph"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/quadtree"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/registry"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/room"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/routing"
)

type world struct {
	g   *graph.Graph
	ids map[string]graph.VertexID
	sx  *room.Station
	nav *Navigator
}

// newWorld builds a hall (a0, a1) joined to an office (b0, b1) holding one
// desk sx with capacity 1.
func newWorld(t *testing.T) *world {
	t.Helper()
	w := &world{g: graph.New(), ids: map[string]graph.VertexID{}}
	add := func(name string, x, y float64) graph.VertexID {
		id, err := w.g.Add(name, geo.V(x, y))
		require.NoError(t, err)
		w.ids[name] = id
		return id
	}
	a0, a1 := add("a0", 0, 0), add("a1", 2, 0)
	b0, b1 := add("b0", 4, 0), add("b1", 6, 0)
	w.sx = room.NewStation(0, "sx", "desk", add("sx", 5, 1), 1)

	rooms := []*room.Room{
		room.New(0, "A", "hall", []graph.VertexID{a0, a1}, nil),
		room.New(1, "B", "office", []graph.VertexID{b0, b1}, []*room.Station{w.sx}),
	}
	for _, r := range rooms {
		require.NoError(t, r.Configure(w.g))
		require.NoError(t, r.ConfigureStations(w.g))
	}
	w.g.Link(a1, b0, true)

	m := globalmap.New(w.g)
	require.NoError(t, m.Build(rooms))
	m.ComputeAllPairs()

	stations := []*room.Station{w.sx}
	planner := routing.New(routing.Config{
		Graph:        w.g,
		Global:       m,
		Rooms:        rooms,
		Stations:     stations,
		RoomTypes:    registry.New("hall", "office"),
		StationTypes: registry.New("desk"),
		Logger:       log.New(io.Discard, "", 0),
	})

	tree := quadtree.New(geo.R(geo.V(-1, -1), geo.V(7, 2)), quadtree.DefaultOptions())
	for _, e := range w.g.UniqueEdges(func(v *graph.Vertex) bool { return !v.IsPointer() }) {
		tree.Insert(e)
	}
	w.nav = New(w.g, stations, tree, planner)
	return w
}

func (w *world) names(vs []graph.VertexID) []string {
	out := make([]string, 0, len(vs))
	for _, id := range vs {
		out = append(out, w.g.Vertex(id).Name)
	}
	return out
}

func (w *world) tick(t *testing.T, dt float64) []Arrival {
	t.Helper()
	arrivals, err := w.nav.Tick(dt)
	require.NoError(t, err)
	return arrivals
}

// runUntilIdle ticks until the agent's route is finished.
func (w *world) runUntilIdle(t *testing.T, id string, dt float64) []Arrival {
	t.Helper()
	var all []Arrival
	for i := 0; i < 1000; i++ {
		arrivals, err := w.nav.Tick(dt)
		require.NoError(t, err)
		all = append(all, arrivals...)
		state, err := w.nav.State(id)
		require.NoError(t, err)
		if state == Idle {
			return all
		}
	}
	t.Fatalf("agent %s never became idle", id)
	return nil
}

func TestSpawn(t *testing.T) {
	w := newWorld(t)
	a, err := w.nav.Spawn("ada", w.ids["a0"], 0, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultSpeed, a.Speed)
	assert.Equal(t, geo.V(0, 0), a.Position())
	assert.Equal(t, graph.KindPointer, w.g.Vertex(a.Pointer).Kind)
	assert.Equal(t, graph.RoomID(0), a.Room)

	_, err = w.nav.Spawn("ada", w.ids["a1"], 1, nil)
	assert.True(t, errors.Is(err, ErrDuplicateAgent))

	anon, err := w.nav.Spawn("", w.ids["a1"], 1, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, anon.ID)

	_, err = w.nav.Spawn("ghost", a.Pointer, 1, nil)
	assert.Error(t, err)
}

func TestSpawnOnStationOccupiesIt(t *testing.T) {
	w := newWorld(t)
	a, err := w.nav.Spawn("ada", w.ids["sx"], 1, nil)
	require.NoError(t, err)
	assert.Same(t, w.sx, a.Station())
	assert.True(t, w.sx.Occupies("ada"))

	_, err = w.nav.Spawn("bob", w.ids["sx"], 1, nil)
	assert.True(t, errors.Is(err, ErrStationFull))
}

func TestRefusedSpawnLeavesGraphUntouched(t *testing.T) {
	w := newWorld(t)
	_, err := w.nav.Spawn("ada", w.ids["sx"], 1, nil)
	require.NoError(t, err)
	before := w.g.Len()

	_, err = w.nav.Spawn("bob", w.ids["sx"], 1, nil)
	require.True(t, errors.Is(err, ErrStationFull))
	assert.Equal(t, before, w.g.Len(), "no pointer vertex for bob")
	assert.Len(t, w.nav.Agents(), 1)
	assert.True(t, w.sx.Occupies("ada"))
}

func TestTickReportsBrokenPointer(t *testing.T) {
	w := newWorld(t)
	a, err := w.nav.Spawn("ada", w.ids["a0"], 1, nil)
	require.NoError(t, err)
	require.NoError(t, w.nav.Follow("ada", w.g.Segment(w.ids["a0"], w.ids["a1"])))
	a.Pointer = w.ids["b1"]

	_, err = w.nav.Tick(1)
	assert.ErrorContains(t, err, "agent ada")
}

func TestFollowToStationAndTickUntilIdle(t *testing.T) {
	w := newWorld(t)
	_, err := w.nav.Spawn("ada", w.ids["a0"], 1, nil)
	require.NoError(t, err)

	r, err := w.nav.Travel("ada", routing.StationOfType("desk"))
	require.NoError(t, err)
	require.True(t, r.Reachable())
	assert.Equal(t, []string{"a0", "a1", "b0", "sx"}, w.names(r.Vertices()))

	require.NoError(t, w.nav.Follow("ada", r))
	assert.True(t, w.sx.Occupies("ada"), "station is claimed before setting off")

	arrivals := w.runUntilIdle(t, "ada", 0.25)
	var reached []graph.VertexID
	for _, a := range arrivals {
		reached = append(reached, a.Vertex)
	}
	assert.Equal(t, []string{"a0", "a1", "b0", "sx"}, w.names(reached))
	assert.True(t, arrivals[len(arrivals)-1].Final)

	origin, err := w.nav.Origin("ada")
	require.NoError(t, err)
	assert.Equal(t, w.ids["sx"], origin)
	heading, err := w.nav.Heading("ada")
	require.NoError(t, err)
	assert.Equal(t, graph.NoVertex, heading)
	assert.Equal(t, graph.RoomID(1), w.nav.agents["ada"].Room)
}

func TestFollowAwayFromStationVacates(t *testing.T) {
	w := newWorld(t)
	_, err := w.nav.Spawn("ada", w.ids["sx"], 1, nil)
	require.NoError(t, err)

	r, err := w.nav.Travel("ada", routing.RoomOfType("hall"))
	require.NoError(t, err)
	require.True(t, r.Reachable())
	assert.Equal(t, []string{"sx", "b0", "a1"}, w.names(r.Vertices()))

	require.NoError(t, w.nav.Follow("ada", r))
	assert.False(t, w.sx.Occupies("ada"))
	a, _ := w.nav.Agent("ada")
	assert.Nil(t, a.Station())
}

func TestFollowFullStationIsRefused(t *testing.T) {
	w := newWorld(t)
	_, err := w.nav.Spawn("ada", w.ids["a0"], 1, nil)
	require.NoError(t, err)
	_, err = w.nav.Spawn("bob", w.ids["a0"], 1, nil)
	require.NoError(t, err)

	r, err := w.nav.Travel("ada", routing.StationOfType("desk"))
	require.NoError(t, err)
	require.NoError(t, w.nav.Follow("ada", r))

	err = w.nav.Follow("bob", r)
	assert.True(t, errors.Is(err, ErrStationFull))
	heading, _ := w.nav.Heading("bob")
	assert.Equal(t, graph.NoVertex, heading)

	again, err := w.nav.Travel("bob", routing.StationOfType("desk"))
	require.NoError(t, err)
	assert.False(t, again.Reachable(), "only desk is taken")
}

func TestUnreachableRouteIsIgnored(t *testing.T) {
	w := newWorld(t)
	_, err := w.nav.Spawn("ada", w.ids["a0"], 1, nil)
	require.NoError(t, err)
	require.NoError(t, w.nav.Follow("ada", graph.Unreachable()))
	state, _ := w.nav.State("ada")
	assert.Equal(t, Idle, state)
}

func TestMidEdgeSourcesUseBothEndpoints(t *testing.T) {
	w := newWorld(t)
	a, err := w.nav.Spawn("ada", w.ids["a0"], 1, nil)
	require.NoError(t, err)
	require.NoError(t, w.nav.Follow("ada", w.g.Segment(w.ids["a0"], w.ids["a1"])))

	// First tick arrives at a0 where the agent stands, the next walks halfway.
	w.tick(t, 1)
	w.tick(t, 1)
	require.Equal(t, geo.V(1, 0), a.Position())
	assert.Equal(t, geo.V(1, 0), w.g.Vertex(a.Pointer).Pos)

	sources, err := w.nav.Sources("ada")
	require.NoError(t, err)
	require.Len(t, sources, 2)
	for _, s := range sources {
		assert.Equal(t, a.Pointer, s.Lead.First())
		assert.InDelta(t, 1.0, s.Lead.Distance(), 1e-9)
	}

	r, err := w.nav.Travel("ada", routing.RoomOfType("office"))
	require.NoError(t, err)
	require.True(t, r.Reachable())
	assert.Equal(t, a.Pointer, r.First())
	assert.Equal(t, []string{"a1", "b0"}, w.names(r.Vertices()[1:]))
	assert.InDelta(t, 1+2, r.Distance(), 1e-9)

	require.NoError(t, w.nav.Follow("ada", r))
	heading, _ := w.nav.Heading("ada")
	assert.Equal(t, w.ids["a1"], heading, "pointer lead-in is dropped")
}

func TestJunctionSourceCountsOffset(t *testing.T) {
	w := newWorld(t)
	a, err := w.nav.Spawn("ada", w.ids["a1"], 1, nil)
	require.NoError(t, err)
	require.NoError(t, w.nav.Follow("ada", w.g.Segment(w.ids["a1"], w.ids["b0"])))

	// b0 joins a1, b1 and sx; stop just short of it.
	w.tick(t, 1)
	w.tick(t, 1.99)
	require.InDelta(t, 3.99, a.Position().X, 1e-9)

	sources, err := w.nav.Sources("ada")
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, w.ids["b0"], sources[0].Vertex)
	assert.Equal(t, a.Pointer, sources[0].Lead.First())
	assert.InDelta(t, 0.01, sources[0].Lead.Distance(), 1e-9)

	r, err := w.nav.Travel("ada", routing.StationOfType("desk"))
	require.NoError(t, err)
	require.True(t, r.Reachable())
	assert.Equal(t, []string{"b0", "sx"}, w.names(r.Vertices()[1:]))
	assert.InDelta(t, 0.01+math.Sqrt2, r.Distance(), 1e-9)
}

func TestSourcesOnOrigin(t *testing.T) {
	w := newWorld(t)
	_, err := w.nav.Spawn("ada", w.ids["b1"], 1, nil)
	require.NoError(t, err)
	sources, err := w.nav.Sources("ada")
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, w.ids["b1"], sources[0].Vertex)
	assert.Equal(t, 0, sources[0].Lead.Len())
}

func TestTrack(t *testing.T) {
	w := newWorld(t)
	_, err := w.nav.Spawn("ada", w.ids["a0"], 1, nil)
	require.NoError(t, err)
	_, err = w.nav.Spawn("bob", w.ids["b1"], 1, nil)
	require.NoError(t, err)

	r, err := w.nav.Track("ada", "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"a0", "a1", "b0"}, w.names(r.Vertices()))

	_, err = w.nav.Track("ada", "nobody")
	assert.True(t, errors.Is(err, ErrUnknownAgent))
}

func TestUnknownAgent(t *testing.T) {
	w := newWorld(t)
	_, err := w.nav.Agent("nobody")
	assert.True(t, errors.Is(err, ErrUnknownAgent))
	assert.True(t, errors.Is(w.nav.Follow("nobody", graph.Unreachable()), ErrUnknownAgent))
	_, err = w.nav.Advance("nobody")
	assert.True(t, errors.Is(err, ErrUnknownAgent))
	_, err = w.nav.Heading("nobody")
	assert.True(t, errors.Is(err, ErrUnknownAgent))
	_, err = w.nav.Origin("nobody")
	assert.True(t, errors.Is(err, ErrUnknownAgent))
	_, err = w.nav.Sources("nobody")
	assert.True(t, errors.Is(err, ErrUnknownAgent))
}

func TestSnapshotsAndLocate(t *testing.T) {
	w := newWorld(t)
	_, err := w.nav.Spawn("bob", w.ids["sx"], 1, nil)
	require.NoError(t, err)
	_, err = w.nav.Spawn("ada", w.ids["a0"], 1, nil)
	require.NoError(t, err)

	snaps := w.nav.Snapshots()
	require.Len(t, snaps, 2)
	assert.Equal(t, "ada", snaps[0].ID)
	assert.Equal(t, graph.NoStation, snaps[0].Station)
	assert.Equal(t, w.sx.ID, snaps[1].Station)
	assert.Equal(t, "idle", snaps[1].State)

	e, ok := w.nav.Locate(geo.V(3, 0))
	require.True(t, ok)
	assert.Equal(t, [2]graph.VertexID{w.ids["a1"], w.ids["b0"]}, e.Key())

	_, ok = w.nav.Locate(geo.V(3, 5))
	assert.False(t, ok)
}

func TestAgentsInSpawnOrder(t *testing.T) {
	w := newWorld(t)
	for _, id := range []string{"c", "a", "b"} {
		_, err := w.nav.Spawn(id, w.ids["a0"], 1, nil)
		require.NoError(t, err)
	}
	var ids []string
	for _, a := range w.nav.Agents() {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}
