// Package sim runs the errands declared for a level's agents, one tick at a
// time, on top of an assembled scene.
package sim

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/graph"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/navigation"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/routing"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/scene"
)

const (
	DefaultTickSeconds = 0.1
	DefaultMaxTicks    = 10000
)

// ErrMaxTicks is returned by Run when agents still had errands left after
// the tick limit.
var ErrMaxTicks = errors.New("sim: tick limit reached")

// EventKind names what happened to an agent.
type EventKind string

const (
	EventDepart  EventKind = "depart"
	EventArrive  EventKind = "arrive"
	EventBlocked EventKind = "blocked"
	EventDone    EventKind = "done"
)

// Event is one errand milestone.
type Event struct {
	Tick     int       `json:"tick"`
	Kind     EventKind `json:"kind"`
	Agent    string    `json:"agent"`
	Errand   int       `json:"errand"`
	Request  string    `json:"request,omitempty"`
	Vertex   string    `json:"vertex,omitempty"`
	Route    []string  `json:"route,omitempty"`
	Distance float64   `json:"distance,omitempty"`
}

// Step is the state of the world after one tick.
type Step struct {
	Tick   int                   `json:"tick"`
	Time   float64               `json:"time"`
	Agents []navigation.Snapshot `json:"agents"`
	Events []Event               `json:"events"`
}

type errand struct {
	req  routing.Request
	wait float64
}

type worker struct {
	id      string
	errands []errand
	next    int
	// active is set while an errand route is being walked.
	active bool
	wait   float64
	done   bool
}

// Runner drives the agents of one scene through their errands.
type Runner struct {
	scene    *scene.Scene
	dt       float64
	maxTicks int
	workers  []*worker
	byID     map[string]*worker
	tick     int
	log      *log.Logger
}

// New prepares a runner for every spawned level agent. Errands naming an
// unknown room or station are an error here.
func New(s *scene.Scene, logger *log.Logger) (*Runner, error) {
	if !s.Configured() {
		return nil, scene.ErrNotConfigured
	}
	if logger == nil {
		logger = log.Default()
	}
	r := &Runner{
		scene:    s,
		dt:       s.Level.Simulation.TickSeconds,
		maxTicks: s.Level.Simulation.MaxTicks,
		byID:     make(map[string]*worker),
		log:      logger,
	}
	if r.dt <= 0 {
		r.dt = DefaultTickSeconds
	}
	if r.maxTicks <= 0 {
		r.maxTicks = DefaultMaxTicks
	}

	for i, ad := range s.Level.Agents {
		id := s.AgentIDs[i]
		if id == "" {
			continue
		}
		w := &worker{id: id}
		for j, e := range ad.Errands {
			req, err := s.Request(e)
			if err != nil {
				return nil, fmt.Errorf("agent %s errand %d: %w", id, j, err)
			}
			w.errands = append(w.errands, errand{req: req, wait: e.Wait})
		}
		r.workers = append(r.workers, w)
		r.byID[id] = w
	}
	return r, nil
}

// TickSeconds returns the simulated time per step.
func (r *Runner) TickSeconds() float64 { return r.dt }

// Ticks returns how many steps have run.
func (r *Runner) Ticks() int { return r.tick }

// Done reports whether every agent has finished its errands.
func (r *Runner) Done() bool {
	for _, w := range r.workers {
		if !w.done {
			return false
		}
	}
	return true
}

// Step dispatches idle agents to their next errand, moves everyone by one
// tick and records what happened.
func (r *Runner) Step() (Step, error) {
	r.tick++
	var events []Event

	for _, w := range r.workers {
		if w.done || w.active {
			continue
		}
		if w.wait > 0 {
			w.wait -= r.dt
			continue
		}
		ev, err := r.dispatch(w)
		if err != nil {
			return Step{}, err
		}
		events = append(events, ev)
	}

	arrivals, err := r.scene.Tick(r.dt)
	if err != nil {
		return Step{}, err
	}
	for _, a := range arrivals {
		w := r.byID[a.Agent]
		if w == nil || !a.Final || !w.active {
			continue
		}
		w.active = false
		w.wait = w.errands[w.next].wait
		events = append(events, Event{
			Tick:   r.tick,
			Kind:   EventArrive,
			Agent:  w.id,
			Errand: w.next,
			Vertex: r.scene.Graph.Vertex(a.Vertex).Name,
		})
		w.next++
	}

	return Step{
		Tick:   r.tick,
		Time:   float64(r.tick) * r.dt,
		Agents: r.scene.Nav.Snapshots(),
		Events: events,
	}, nil
}

// dispatch plans and starts w's next errand. An errand with no route, or
// whose station filled up, is skipped.
func (r *Runner) dispatch(w *worker) (Event, error) {
	if w.next >= len(w.errands) {
		w.done = true
		return Event{Tick: r.tick, Kind: EventDone, Agent: w.id, Errand: w.next}, nil
	}
	e := w.errands[w.next]
	ev := Event{Tick: r.tick, Agent: w.id, Errand: w.next, Request: e.req.String()}

	route, err := r.scene.Travel(w.id, e.req)
	if err != nil {
		return Event{}, err
	}
	if !route.Reachable() {
		return r.blocked(w, ev, "no route"), nil
	}
	if err := r.scene.Follow(w.id, route); err != nil {
		if errors.Is(err, navigation.ErrStationFull) {
			return r.blocked(w, ev, err.Error()), nil
		}
		return Event{}, err
	}

	ev.Kind = EventDepart
	ev.Route = r.names(route)
	ev.Distance = route.Distance()
	w.active = true
	return ev, nil
}

func (r *Runner) blocked(w *worker, ev Event, reason string) Event {
	r.log.Printf("agent %s: errand %d (%s) skipped: %s", w.id, w.next, ev.Request, reason)
	ev.Kind = EventBlocked
	w.next++
	return ev
}

func (r *Runner) names(route graph.Route) []string {
	out := make([]string, 0, route.Len())
	for _, id := range route.Vertices() {
		v := r.scene.Graph.Vertex(id)
		if v.Name == "" {
			out = append(out, fmt.Sprintf("@%.2f,%.2f", v.Pos.X, v.Pos.Y))
			continue
		}
		out = append(out, v.Name)
	}
	return out
}

// Run steps until every agent is done, the context is cancelled or the
// tick limit is hit. fn, when non-nil, sees every step; an error from it
// stops the run.
func (r *Runner) Run(ctx context.Context, fn func(Step) error) error {
	for !r.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.tick >= r.maxTicks {
			return fmt.Errorf("%w after %d ticks", ErrMaxTicks, r.tick)
		}
		step, err := r.Step()
		if err != nil {
			return err
		}
		if fn != nil {
			if err := fn(step); err != nil {
				return err
			}
		}
	}
	return nil
}
