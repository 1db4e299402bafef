// Package server is the local development server: it serves a loaded
// level's scene, findings and route queries over HTTP and streams
// simulation runs over a websocket.
package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Jakob-W-Lucas/Project-Beagle/internal/sim"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/geo"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/level"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/scene"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/validation"
)

// Server is the local development server for a level.
type Server struct {
	projectPath string
	port        int
	log         *log.Logger

	// mu guards everything below.
	mu     sync.Mutex
	level  *level.Level
	scene  *scene.Scene
	report *validation.Report

	upgrader websocket.Upgrader
}

// New creates a server for the given project directory.
func New(projectPath string, port int, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		projectPath: projectPath,
		port:        port,
		log:         logger,
		upgrader:    websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
}

// Load reads, validates and assembles the level, replacing whatever was
// loaded before. Schema errors keep the previous scene.
func (s *Server) Load() error {
	l, err := level.LoadProject(s.projectPath)
	if err != nil {
		return err
	}
	report := validation.ValidateSchema(l)
	if !report.Valid {
		s.mu.Lock()
		s.report = report
		s.mu.Unlock()
		return report.Err()
	}
	sc, assembly := scene.Assemble(l, s.log)
	report.Merge(assembly)
	sc.ComputeRoutes()

	s.mu.Lock()
	s.level, s.scene, s.report = l, sc, report
	s.mu.Unlock()
	s.log.Printf("Loaded level %q: %s", l.Name, report.Summary)
	return nil
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/level", s.handleLevel)
	mux.HandleFunc("GET /api/scene", s.handleScene)
	mux.HandleFunc("GET /api/validation", s.handleValidation)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("GET /api/travel", s.handleTravel)
	mux.HandleFunc("GET /api/locate", s.handleLocate)
	mux.HandleFunc("GET /api/nearest", s.handleNearest)
	mux.HandleFunc("POST /api/reload", s.handleReload)
	mux.HandleFunc("GET /api/ws", s.handleSimulate)
	mux.HandleFunc("GET /", s.handleIndex)

	return mux
}

// Start loads the level and launches the HTTP server.
func (s *Server) Start() error {
	if err := s.Load(); err != nil {
		return err
	}
	addr := fmt.Sprintf(":%d", s.port)
	s.log.Printf("Beagle server starting on http://localhost%s", addr)
	s.log.Printf("Project: %s", s.projectPath)

	return http.ListenAndServe(addr, s.Handler())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>Beagle</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>Beagle</h1>
<p>See <code>/api/scene</code>, <code>/api/stats</code> and <code>/api/ws</code>.</p>
</div>
</body></html>`)
}

// loaded reports whether a scene is loaded, writing 503 when not. The
// caller holds mu.
func (s *Server) loaded(w http.ResponseWriter) bool {
	if s.scene == nil {
		writeError(w, http.StatusServiceUnavailable, fmt.Errorf("no level loaded"))
		return false
	}
	return true
}

func (s *Server) handleLevel(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded(w) {
		return
	}
	writeJSON(w, http.StatusOK, s.level)
}

func (s *Server) handleScene(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded(w) {
		return
	}
	writeJSON(w, http.StatusOK, s.scene.Export())
}

func (s *Server) handleValidation(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.report == nil {
		writeJSON(w, http.StatusOK, validation.NewReport())
		return
	}
	writeJSON(w, http.StatusOK, s.report)
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded(w) {
		return
	}
	stats, report := s.scene.Stats()
	writeJSON(w, http.StatusOK, map[string]any{
		"stats":      stats,
		"validation": report,
	})
}

func (s *Server) handleReload(w http.ResponseWriter, _ *http.Request) {
	if err := s.Load(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	s.handleValidation(w, nil)
}

// handleLocate answers /api/locate?x=..&y=..
func (s *Server) handleLocate(w http.ResponseWriter, r *http.Request) {
	p, err := pointQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded(w) {
		return
	}
	e, ok, err := s.scene.Locate(p)
	if err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}
	resp := LocateResponse{Found: ok}
	if ok {
		resp.From = s.scene.Graph.Vertex(e.From).Name
		resp.To = s.scene.Graph.Vertex(e.To).Name
		resp.Vertex = e.IsLoop()
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleNearest answers /api/nearest?x=..&y=..
func (s *Server) handleNearest(w http.ResponseWriter, r *http.Request) {
	p, err := pointQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded(w) {
		return
	}
	id, err := s.scene.Nearest(p)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	v := s.scene.Graph.Vertex(id)
	resp := NearestResponse{Vertex: v.Name, Position: v.Pos, Distance: v.Pos.Distance(p)}
	if rm := s.scene.Planner.Room(v.Room); rm != nil {
		resp.Room = rm.Name
	}
	writeJSON(w, http.StatusOK, resp)
}

func pointQuery(r *http.Request) (geo.Vec2, error) {
	x, errX := strconv.ParseFloat(r.URL.Query().Get("x"), 64)
	y, errY := strconv.ParseFloat(r.URL.Query().Get("y"), 64)
	if errX != nil || errY != nil {
		return geo.Vec2{}, fmt.Errorf("x and y must be numbers")
	}
	return geo.V(x, y), nil
}

// handleSimulate streams an errand run as JSON envelopes, one per tick.
// Each connection runs on its own assembled copy of the level. ?speed=
// scales playback; 0 streams as fast as the client reads.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	l := s.level
	s.mu.Unlock()
	if l == nil {
		writeError(w, http.StatusServiceUnavailable, fmt.Errorf("no level loaded"))
		return
	}
	speed := 1.0
	if v := r.URL.Query().Get("speed"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("speed must be a non-negative number"))
			return
		}
		speed = f
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Printf("websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	sc, _ := scene.Assemble(l, s.log)
	sc.ComputeRoutes()
	runner, err := sim.New(sc, s.log)
	if err != nil {
		conn.WriteJSON(Envelope{Type: EventError, Payload: err.Error()})
		return
	}

	var pace <-chan time.Time
	if speed > 0 {
		t := time.NewTicker(time.Duration(runner.TickSeconds() / speed * float64(time.Second)))
		defer t.Stop()
		pace = t.C
	}

	err = runner.Run(r.Context(), func(step sim.Step) error {
		if pace != nil {
			<-pace
		}
		return conn.WriteJSON(Envelope{Type: EventStep, Payload: step})
	})
	if err != nil {
		s.log.Printf("simulation stopped: %v", err)
		conn.WriteJSON(Envelope{Type: EventError, Payload: err.Error()})
		return
	}
	conn.WriteJSON(Envelope{Type: EventFinished, Payload: runner.Ticks()})
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "finished"))
}
