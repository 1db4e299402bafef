// Package routing answers "best route from here to a room or station",
// composing the global map with each room's station tables.
package routing

import (
	"log"

	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/globalmap"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/graph"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/registry"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/room"
)

// Planner composes routes. New stamps TypeIndex on the rooms and stations it
// indexes; after that the Planner only reads the graph, rooms and global map.
type Planner struct {
	g        *graph.Graph
	global   *globalmap.Map
	rooms    []*room.Room
	stations []*room.Station

	roomTypes      *registry.Registry
	stationTypes   *registry.Registry
	roomsByType    [][]*room.Room
	stationsByType [][]*room.Station

	log *log.Logger
}

// Config collects what a Planner reads. Rooms and Stations are indexed by
// their IDs.
type Config struct {
	Graph        *graph.Graph
	Global       *globalmap.Map
	Rooms        []*room.Room
	Stations     []*room.Station
	RoomTypes    *registry.Registry
	StationTypes *registry.Registry
	Logger       *log.Logger
}

// New builds the per-type lookup tables. Rooms that failed configuration
// are left out; rooms and stations of unregistered types are logged and
// left out.
func New(cfg Config) *Planner {
	p := &Planner{
		g:            cfg.Graph,
		global:       cfg.Global,
		rooms:        cfg.Rooms,
		stations:     cfg.Stations,
		roomTypes:    cfg.RoomTypes,
		stationTypes: cfg.StationTypes,
		log:          cfg.Logger,
	}
	if p.log == nil {
		p.log = log.Default()
	}
	p.roomsByType = make([][]*room.Room, p.roomTypes.Len())
	p.stationsByType = make([][]*room.Station, p.stationTypes.Len())

	for _, r := range p.rooms {
		if r == nil || !r.Configured() {
			continue
		}
		idx, ok := p.roomTypes.Index(r.Type)
		if !ok {
			p.log.Printf("warning: room %s has unregistered type %q", r.Name, r.Type)
		} else {
			r.TypeIndex = idx
			p.roomsByType[idx] = append(p.roomsByType[idx], r)
		}
		for _, st := range r.Stations() {
			idx, ok := p.stationTypes.Index(st.Type)
			if !ok {
				p.log.Printf("warning: station %s has unregistered type %q", st.Name, st.Type)
				continue
			}
			st.TypeIndex = idx
			p.stationsByType[idx] = append(p.stationsByType[idx], st)
		}
	}
	return p
}

// RoomsOfType returns the rooms registered under t.
func (p *Planner) RoomsOfType(t string) []*room.Room {
	idx, ok := p.roomTypes.Index(t)
	if !ok {
		return nil
	}
	return p.roomsByType[idx]
}

// StationsOfType returns the stations registered under t.
func (p *Planner) StationsOfType(t string) []*room.Station {
	idx, ok := p.stationTypes.Index(t)
	if !ok {
		return nil
	}
	return p.stationsByType[idx]
}

// Room returns the room with id, if it exists.
func (p *Planner) Room(id graph.RoomID) *room.Room {
	if id < 0 || int(id) >= len(p.rooms) {
		return nil
	}
	return p.rooms[id]
}

// Station returns the station with id, if it exists.
func (p *Planner) Station(id graph.StationID) *room.Station {
	if id < 0 || int(id) >= len(p.stations) {
		return nil
	}
	return p.stations[id]
}

// Plan returns the best route from source that satisfies req, or the
// unreachable route. Pointers are not valid sources; use Travel with
// lead-in routes instead.
func (p *Planner) Plan(source graph.VertexID, req Request) graph.Route {
	v := p.g.Vertex(source)
	if v == nil || v.IsPointer() {
		return graph.Unreachable()
	}
	if req.Target == TargetStation {
		return p.planStation(v, req.Filter)
	}
	return p.planRoom(v, req.Filter)
}

// TravelToRoom routes to the nearest room matching f.
func (p *Planner) TravelToRoom(source graph.VertexID, f Filter) graph.Route {
	return p.Plan(source, Request{Target: TargetRoom, Filter: f})
}

// TravelToStation routes to the nearest available station matching f.
func (p *Planner) TravelToStation(source graph.VertexID, f Filter) graph.Route {
	return p.Plan(source, Request{Target: TargetStation, Filter: f})
}

// Travel plans from every source and keeps the shortest result, counting
// each source's lead-in route.
func (p *Planner) Travel(sources []Source, req Request) graph.Route {
	best := graph.Unreachable()
	for _, src := range sources {
		r := p.Plan(src.Vertex, req)
		if src.Lead.Len() > 0 {
			r = src.Lead.Join(r)
		}
		best = graph.Shorter(best, r)
	}
	return best
}

// Track routes from source toward target, the origin vertex of someone
// being followed. Within one room the route is the direct segment;
// otherwise it heads for target's station or room.
func (p *Planner) Track(source, target graph.VertexID) graph.Route {
	sv, tv := p.g.Vertex(source), p.g.Vertex(target)
	if sv == nil || tv == nil {
		return graph.Unreachable()
	}
	if sv.Room != graph.NoRoom && sv.Room == tv.Room {
		return p.g.Segment(source, target)
	}
	if tv.IsStation() {
		return p.Plan(source, ToStation(tv.Station))
	}
	return p.Plan(source, ToRoom(tv.Room))
}

func (p *Planner) planStation(v *graph.Vertex, f Filter) graph.Route {
	var candidates []*room.Station
	switch f.Kind {
	case FilterExactStation:
		st := p.Station(f.Station)
		if st == nil {
			p.log.Printf("warning: unknown station #%d", f.Station)
			return graph.Unreachable()
		}
		if v.IsStation() && v.Station == st.ID {
			return graph.Unreachable()
		}
		candidates = []*room.Station{st}
	case FilterByType:
		idx, ok := p.stationTypes.Index(f.Type)
		if !ok {
			p.log.Printf("warning: station type %q is not registered", f.Type)
			return graph.Unreachable()
		}
		if v.IsStation() {
			if cur := p.Station(v.Station); cur != nil && cur.TypeIndex == idx {
				return graph.Unreachable()
			}
		}
		candidates = p.stationsByType[idx]
	default:
		return graph.Unreachable()
	}

	best := graph.Unreachable()
	for _, st := range candidates {
		if !st.Available() {
			continue
		}
		if v.IsStation() {
			best = graph.Shorter(best, p.stationToStation(v, st))
		} else {
			best = graph.Shorter(best, p.roomToStation(v, st))
		}
	}
	return best
}

func (p *Planner) planRoom(v *graph.Vertex, f Filter) graph.Route {
	var candidates []*room.Room
	switch f.Kind {
	case FilterExactRoom:
		r := p.Room(f.Room)
		if r == nil {
			p.log.Printf("warning: unknown room #%d", f.Room)
			return graph.Unreachable()
		}
		candidates = []*room.Room{r}
	case FilterByType:
		idx, ok := p.roomTypes.Index(f.Type)
		if !ok {
			p.log.Printf("warning: room type %q is not registered", f.Type)
			return graph.Unreachable()
		}
		candidates = p.roomsByType[idx]
	default:
		return graph.Unreachable()
	}

	best := graph.Unreachable()
	for _, r := range candidates {
		if !r.Configured() {
			continue
		}
		if v.IsStation() {
			best = graph.Shorter(best, p.stationToRoom(v, r))
		} else {
			best = graph.Shorter(best, p.roomToRoom(v, r))
		}
	}
	return best
}
