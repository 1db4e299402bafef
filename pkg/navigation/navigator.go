package navigation

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/geo"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/graph"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/quadtree"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/room"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/routing"
)

var (
	// ErrUnknownAgent is returned for agent IDs the navigator does not know.
	ErrUnknownAgent = errors.New("unknown agent")
	// ErrStationFull is returned when a route ends at a station with no room left.
	ErrStationFull = errors.New("station is full")
	// ErrDuplicateAgent is returned when spawning an ID that is already in use.
	ErrDuplicateAgent = errors.New("duplicate agent")
)

// DefaultSpeed is used for agents spawned without a positive speed.
const DefaultSpeed = 1.0

// Navigator owns the agents of a scene and is the only thing that moves them.
type Navigator struct {
	g        *graph.Graph
	stations []*room.Station
	index    *quadtree.Tree
	planner  *routing.Planner

	agents map[string]*Agent
	order  []string
}

// New creates a navigator. stations is indexed by StationID.
func New(g *graph.Graph, stations []*room.Station, index *quadtree.Tree, planner *routing.Planner) *Navigator {
	return &Navigator{
		g:        g,
		stations: stations,
		index:    index,
		planner:  planner,
		agents:   make(map[string]*Agent),
	}
}

// Spawn places a new agent on start. An empty id gets a generated one and
// a nil mover gets a LinearMover. Spawning on a station occupies it.
func (n *Navigator) Spawn(id string, start graph.VertexID, speed float64, m Mover) (*Agent, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if _, dup := n.agents[id]; dup {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateAgent, id)
	}
	v := n.g.Vertex(start)
	if v == nil || v.IsPointer() {
		return nil, fmt.Errorf("agent %s: start vertex %d is not on the graph", id, start)
	}
	if speed <= 0 {
		speed = DefaultSpeed
	}
	pos, rid := v.Pos, v.Room
	if m == nil {
		m = NewLinearMover(pos)
	}

	a := &Agent{
		ID:     id,
		Speed:  speed,
		Mover:  m,
		Room:   rid,
		cursor: NewCursor(start),
	}
	// Claim before adding the pointer; a refused spawn leaves the graph as it was.
	if v.IsStation() {
		if err := n.occupy(a, n.station(v.Station)); err != nil {
			return nil, fmt.Errorf("agent %s: %w", id, err)
		}
	}
	a.Pointer = n.g.AddPointer(pos)
	if err := n.g.MovePointer(a.Pointer, rid, pos); err != nil {
		n.vacate(a)
		return nil, err
	}

	n.agents[id] = a
	n.order = append(n.order, id)
	return a, nil
}

// Agent returns the agent with id.
func (n *Navigator) Agent(id string) (*Agent, error) {
	a, ok := n.agents[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAgent, id)
	}
	return a, nil
}

// Agents returns every agent in spawn order.
func (n *Navigator) Agents() []*Agent {
	out := make([]*Agent, 0, len(n.order))
	for _, id := range n.order {
		out = append(out, n.agents[id])
	}
	return out
}

// Follow makes agent id walk r, discarding any route in progress. A route
// ending at a station claims it before the agent sets off; any other route
// releases the station the agent held. Unreachable routes leave the agent
// as it was.
func (n *Navigator) Follow(id string, r graph.Route) error {
	a, err := n.Agent(id)
	if err != nil {
		return err
	}
	if !r.Reachable() {
		return nil
	}
	// A route planned from the agent's pointer starts where it already is.
	if r.First() == a.Pointer {
		vs := r.Vertices()
		if len(vs) == 1 {
			return nil
		}
		r = graph.NewRoute(r.Distance(), vs[1:]...)
	}

	if last := n.g.Vertex(r.Last()); last != nil && last.IsStation() {
		if err := n.occupy(a, n.station(last.Station)); err != nil {
			return fmt.Errorf("agent %s: %w", id, err)
		}
	} else {
		n.vacate(a)
	}
	a.cursor.Follow(r)
	return nil
}

// Advance promotes the heading to origin if the agent has reached it.
// It reports whether the agent moved on to a new vertex.
func (n *Navigator) Advance(id string) (bool, error) {
	a, err := n.Agent(id)
	if err != nil {
		return false, err
	}
	return n.advance(a), nil
}

func (n *Navigator) advance(a *Agent) bool {
	h := n.g.Vertex(a.cursor.Heading())
	if h == nil || !a.Mover.Reached(h.Pos) {
		return false
	}
	a.cursor.Advance()
	if !h.IsPointer() {
		a.Room = h.Room
	}
	return true
}

// Heading returns the vertex agent id is walking to.
func (n *Navigator) Heading(id string) (graph.VertexID, error) {
	a, err := n.Agent(id)
	if err != nil {
		return graph.NoVertex, err
	}
	return a.Heading(), nil
}

// Origin returns the last vertex agent id reached.
func (n *Navigator) Origin(id string) (graph.VertexID, error) {
	a, err := n.Agent(id)
	if err != nil {
		return graph.NoVertex, err
	}
	return a.Origin(), nil
}

// State returns the cursor phase of agent id.
func (n *Navigator) State(id string) (State, error) {
	a, err := n.Agent(id)
	if err != nil {
		return Idle, err
	}
	return n.state(a), nil
}

func (n *Navigator) state(a *Agent) State {
	h := n.g.Vertex(a.cursor.Heading())
	return a.cursor.State(h != nil && a.Mover.Reached(h.Pos))
}

// Sources resolves where a route for agent id may start. Standing on its
// origin, the origin is the only source. Near a junction the junction vertex
// is. Mid-edge, both endpoints are sources. Every source other than the
// origin is led into from the agent's pointer.
func (n *Navigator) Sources(id string) ([]routing.Source, error) {
	a, err := n.Agent(id)
	if err != nil {
		return nil, err
	}
	pos := a.Position()
	tol := n.index.Options().Tolerance

	if o := n.g.Vertex(a.Origin()); o != nil && o.Pos.Distance(pos) <= tol {
		return []routing.Source{{Vertex: o.ID}}, nil
	}

	e, ok := n.index.Locate(pos, tol)
	switch {
	case ok && e.IsLoop():
		return []routing.Source{{Vertex: e.From, Lead: n.g.Segment(a.Pointer, e.From)}}, nil
	case ok:
		return []routing.Source{
			{Vertex: e.From, Lead: n.g.Segment(a.Pointer, e.From)},
			{Vertex: e.To, Lead: n.g.Segment(a.Pointer, e.To)},
		}, nil
	}
	if o := a.Origin(); o != graph.NoVertex {
		return []routing.Source{{Vertex: o, Lead: n.g.Segment(a.Pointer, o)}}, nil
	}
	return nil, nil
}

// Travel plans req for agent id from wherever it currently is.
func (n *Navigator) Travel(id string, req routing.Request) (graph.Route, error) {
	sources, err := n.Sources(id)
	if err != nil {
		return graph.Unreachable(), err
	}
	return n.planner.Travel(sources, req), nil
}

// Track plans a route for agent id toward agent target's origin.
func (n *Navigator) Track(id, target string) (graph.Route, error) {
	t, err := n.Agent(target)
	if err != nil {
		return graph.Unreachable(), err
	}
	sources, err := n.Sources(id)
	if err != nil {
		return graph.Unreachable(), err
	}
	best := graph.Unreachable()
	for _, src := range sources {
		r := n.planner.Track(src.Vertex, t.Origin())
		if src.Lead.Len() > 0 {
			r = src.Lead.Join(r)
		}
		best = graph.Shorter(best, r)
	}
	return best, nil
}

// Arrival records an agent reaching a vertex during a tick.
type Arrival struct {
	Agent  string         `json:"agent"`
	Vertex graph.VertexID `json:"vertex"`
	// Final is set when the vertex ended the agent's route.
	Final bool `json:"final"`
}

// Tick moves every agent toward its heading by speed*dt, then advances
// the ones that arrived. Agents are processed in spawn order. An error
// means an agent's pointer vertex is no longer a pointer; the agents
// before it have already moved.
func (n *Navigator) Tick(dt float64) ([]Arrival, error) {
	var arrivals []Arrival
	for _, id := range n.order {
		a := n.agents[id]
		h := n.g.Vertex(a.cursor.Heading())
		if h == nil {
			continue
		}
		pos := a.Mover.Step(h.Pos, a.Speed*dt)
		if err := n.g.MovePointer(a.Pointer, a.Room, pos); err != nil {
			return arrivals, fmt.Errorf("agent %s: %w", a.ID, err)
		}

		if n.advance(a) {
			arrivals = append(arrivals, Arrival{
				Agent:  a.ID,
				Vertex: a.Origin(),
				Final:  a.Heading() == graph.NoVertex,
			})
		}
	}
	return arrivals, nil
}

// Snapshots returns the state of every agent, sorted by ID.
func (n *Navigator) Snapshots() []Snapshot {
	out := make([]Snapshot, 0, len(n.agents))
	for _, a := range n.agents {
		s := Snapshot{
			ID:       a.ID,
			Position: a.Position(),
			State:    n.state(a).String(),
			Origin:   a.Origin(),
			Heading:  a.Heading(),
			Room:     a.Room,
			Station:  graph.NoStation,
		}
		if a.station != nil {
			s.Station = a.station.ID
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Locate reports what p is standing on using the spatial index.
func (n *Navigator) Locate(p geo.Vec2) (graph.Edge, bool) {
	return n.index.Locate(p, 0)
}

func (n *Navigator) station(id graph.StationID) *room.Station {
	if id < 0 || int(id) >= len(n.stations) {
		return nil
	}
	return n.stations[id]
}

// occupy moves the agent's claim to st, vacating any other station first.
func (n *Navigator) occupy(a *Agent, st *room.Station) error {
	if st == nil || st == a.station {
		return nil
	}
	if !st.Available() {
		return fmt.Errorf("%w: %s", ErrStationFull, st.Name)
	}
	n.vacate(a)
	st.Occupy(a.ID)
	a.station = st
	return nil
}

func (n *Navigator) vacate(a *Agent) {
	if a.station != nil {
		a.station.Vacate(a.ID)
		a.station = nil
	}
}
