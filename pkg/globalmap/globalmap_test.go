package globalmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/geo"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/graph"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/room"
)

type world struct {
	g     *graph.Graph
	rooms []*room.Room
	ids   map[string]graph.VertexID
	m     *Map
}

// newWorld builds two rooms joined by a doorway edge a1-b0, plus a station
// in room a and an isolated room c.
//
//	a0 - a1 ~~ b0 - b1        c0
//	  \  /
//	   sa
func newWorld(t *testing.T) world {
	t.Helper()
	w := world{g: graph.New(), ids: map[string]graph.VertexID{}}
	add := func(name string, x, y float64) graph.VertexID {
		id, err := w.g.Add(name, geo.V(x, y))
		require.NoError(t, err)
		w.ids[name] = id
		return id
	}
	a0, a1 := add("a0", 0, 0), add("a1", 1, 0)
	sa := add("sa", 0.5, -1)
	b0, b1 := add("b0", 2, 0), add("b1", 3, 0)
	c0 := add("c0", 10, 10)

	w.rooms = []*room.Room{
		room.New(0, "a", "hall", []graph.VertexID{a0, a1}, []*room.Station{room.NewStation(0, "sa", "desk", sa, 1)}),
		room.New(1, "b", "hall", []graph.VertexID{b0, b1}, nil),
		room.New(2, "c", "hall", []graph.VertexID{c0}, nil),
	}
	for _, r := range w.rooms {
		require.NoError(t, r.Configure(w.g))
		require.NoError(t, r.ConfigureStations(w.g))
	}
	w.g.Link(a1, b0, true)

	w.m = New(w.g)
	require.NoError(t, w.m.Build(w.rooms))
	w.m.ComputeAllPairs()
	return w
}

func TestBuildAssignsGlobalIndices(t *testing.T) {
	w := newWorld(t)
	assert.Equal(t, 5, w.m.Len())
	for i, v := range w.m.Vertices() {
		vx := w.g.Vertex(v)
		assert.Equal(t, graph.KindGlobal, vx.Kind)
		assert.Equal(t, i, vx.Global)
	}
	_, ok := w.m.Index(w.ids["sa"])
	assert.False(t, ok, "stations stay out of the global map")
}

func TestRouteToSelf(t *testing.T) {
	w := newWorld(t)
	for _, v := range w.m.Vertices() {
		r := w.m.Route(v, v)
		require.True(t, r.Reachable())
		assert.Equal(t, 0.0, r.Distance())
		assert.Equal(t, []graph.VertexID{v}, r.Vertices())
	}
}

func TestRouteCrossesRooms(t *testing.T) {
	w := newWorld(t)
	r := w.m.Route(w.ids["a0"], w.ids["b1"])
	require.True(t, r.Reachable())
	assert.Equal(t, []string{"a0", "a1", "b0", "b1"}, names(w, r))
	assert.InDelta(t, 3.0, r.Distance(), 1e-9)
}

func TestRouteNeverThroughStations(t *testing.T) {
	w := newWorld(t)
	sa := w.ids["sa"]
	for _, a := range w.m.Vertices() {
		for _, b := range w.m.Vertices() {
			for _, v := range w.m.Route(a, b).Vertices() {
				assert.NotEqual(t, sa, v)
			}
		}
	}
	assert.False(t, w.m.Route(sa, w.ids["a0"]).Reachable())
}

func TestIsolatedRoomIsUnreachable(t *testing.T) {
	w := newWorld(t)
	r := w.m.Route(w.ids["a0"], w.ids["c0"])
	assert.False(t, r.Reachable())
	assert.Empty(t, r.Vertices())

	pairs := w.m.Unreachable()
	// c0 is cut off from the four vertices of rooms a and b, both ways.
	assert.Len(t, pairs, 8)
}

func TestTriangleInequality(t *testing.T) {
	w := newWorld(t)
	vs := w.m.Vertices()
	for _, a := range vs {
		for _, b := range vs {
			for _, c := range vs {
				ab, bc, ac := w.m.Route(a, b), w.m.Route(b, c), w.m.Route(a, c)
				if !ab.Reachable() || !bc.Reachable() {
					continue
				}
				require.True(t, ac.Reachable())
				assert.LessOrEqual(t, ac.Distance(), ab.Distance()+bc.Distance()+1e-9)
			}
		}
	}
}

func TestDisabledEdgeSplitsMap(t *testing.T) {
	g := graph.New()
	a, _ := g.Add("a", geo.V(0, 0))
	b, _ := g.Add("b", geo.V(1, 0))
	ra := room.New(0, "ra", "hall", []graph.VertexID{a}, nil)
	rb := room.New(1, "rb", "hall", []graph.VertexID{b}, nil)
	require.NoError(t, ra.Configure(g))
	require.NoError(t, ra.ConfigureStations(g))
	require.NoError(t, rb.Configure(g))
	require.NoError(t, rb.ConfigureStations(g))
	g.Link(a, b, false)

	m := New(g)
	require.NoError(t, m.Build([]*room.Room{ra, rb}))
	m.ComputeAllPairs()
	assert.False(t, m.Route(a, b).Reachable())
	assert.Empty(t, m.Edges())
}

func TestUnconfiguredRoomsAreSkipped(t *testing.T) {
	g := graph.New()
	a, _ := g.Add("a", geo.V(0, 0))
	r := room.New(0, "r", "hall", []graph.VertexID{a}, nil)
	m := New(g)
	require.NoError(t, m.Build([]*room.Room{r, nil}))
	assert.Equal(t, 0, m.Len())
	assert.False(t, m.Configured())
	assert.False(t, m.Route(a, a).Reachable())
}

func TestNearest(t *testing.T) {
	w := newWorld(t)
	assert.Equal(t, w.ids["b0"], w.m.Nearest(geo.V(2.2, 0.4)))
	assert.Equal(t, w.ids["a0"], w.m.Nearest(geo.V(0.4, -1)), "station sa is closer but not global")
	assert.Equal(t, graph.NoVertex, New(graph.New()).Nearest(geo.V(0, 0)))
}

func TestEdgesCoverGlobalConnections(t *testing.T) {
	w := newWorld(t)
	edges := w.m.Edges()
	// a0-a1, a1-b0, b0-b1; the station spokes are excluded.
	assert.Len(t, edges, 3)
}

func names(w world, r graph.Route) []string {
	out := make([]string, 0, r.Len())
	for _, v := range r.Vertices() {
		out = append(out, w.g.Vertex(v).Name)
	}
	return out
}
