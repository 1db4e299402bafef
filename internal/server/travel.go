package server

import (
	"fmt"
	"net/http"

	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/graph"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/level"
)

// handleTravel answers
//
//	/api/travel?from=<vertex>|agent=<id>&target=room|station&type=<t>|name=<n>
func (s *Server) handleTravel(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	errand := level.ErrandDef{Target: q.Get("target"), Type: q.Get("type"), Name: q.Get("name")}
	if (errand.Type == "") == (errand.Name == "") {
		writeError(w, http.StatusBadRequest, fmt.Errorf("exactly one of type or name is required"))
		return
	}
	from, agent := q.Get("from"), q.Get("agent")
	if (from == "") == (agent == "") {
		writeError(w, http.StatusBadRequest, fmt.Errorf("exactly one of from or agent is required"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded(w) {
		return
	}
	req, err := s.scene.Request(errand)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var route graph.Route
	if agent != "" {
		route, err = s.scene.Travel(agent, req)
		from = agent
	} else {
		var id graph.VertexID
		if id, err = s.scene.VertexByName(from); err == nil {
			route, err = s.scene.Plan(id, req)
		}
	}
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	resp := TravelResponse{From: from, Request: req.String(), Reachable: route.Reachable()}
	if route.Reachable() {
		resp.Distance = route.Distance()
		resp.Hops = route.Hops()
		resp.Path = s.scene.Graph.Names(route)
		resp.Points = s.scene.Graph.Path(route).Points
	}
	writeJSON(w, http.StatusOK, resp)
}
