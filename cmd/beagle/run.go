package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/Jakob-W-Lucas/Project-Beagle/internal/sim"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/geo"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/graph"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/level"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/scene"
	"github.com/Jakob-W-Lucas/Project-Beagle/pkg/validation"
)

var logger = log.New(os.Stderr, "beagle: ", 0)

// loadAndValidate loads the level and runs schema validation.
func loadAndValidate(projectPath string) (*level.Level, *validation.Report, error) {
	l, err := level.LoadProject(projectPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading level: %w", err)
	}
	schemaReport := validation.ValidateSchema(l)
	return l, schemaReport, nil
}

// loadScene loads, validates and assembles the level and precomputes its
// routes. Schema errors stop here; assembly findings are returned.
func loadScene(projectPath string) (*scene.Scene, *validation.Report, error) {
	l, report, err := loadAndValidate(projectPath)
	if err != nil {
		return nil, nil, err
	}
	if err := report.Err(); err != nil {
		printValidationReport(report)
		return nil, nil, err
	}
	s, assembly := scene.Assemble(l, logger)
	report.Merge(assembly)
	s.ComputeRoutes()
	return s, report, nil
}

func runValidate(projectPath string) error {
	l, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}

	if report.Valid {
		s, assembly := scene.Assemble(l, logger)
		report.Merge(assembly)
		s.ComputeRoutes()
		report.Merge(scene.ValidateGraph(s.Export()))
		_, routing := s.Stats()
		report.Merge(routing)
	}

	printValidationReport(report)

	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

func runRoutes(projectPath string, asJSON bool) error {
	s, report, err := loadScene(projectPath)
	if err != nil {
		return err
	}
	stats, routing := s.Stats()
	report.Merge(routing)

	if asJSON {
		output := map[string]any{
			"stats":       stats,
			"validation":  report,
			"scene_graph": s.Export(),
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(output)
	}

	printRouteStats(stats)
	if len(routing.Warnings) > 0 {
		fmt.Println()
		printValidationReport(routing)
	}
	return nil
}

type travelOptions struct {
	from, agent   string
	room, station string
	byName        bool
}

func (o travelOptions) errand() level.ErrandDef {
	e := level.ErrandDef{Target: level.TargetRoom, Type: o.room}
	if o.station != "" {
		e = level.ErrandDef{Target: level.TargetStation, Type: o.station}
	}
	if o.byName {
		e.Name, e.Type = e.Type, ""
	}
	return e
}

func runTravel(projectPath string, opts travelOptions) error {
	s, _, err := loadScene(projectPath)
	if err != nil {
		return err
	}
	req, err := s.Request(opts.errand())
	if err != nil {
		return err
	}

	var route graph.Route
	from := opts.from
	if opts.agent != "" {
		from = opts.agent
		route, err = s.Travel(opts.agent, req)
	} else {
		var id graph.VertexID
		if id, err = s.VertexByName(opts.from); err == nil {
			route, err = s.Plan(id, req)
		}
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s -> %s\n", from, req)
	printRoute(s.Graph, route)
	return nil
}

func parsePoint(xs, ys string) (geo.Vec2, error) {
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return geo.Vec2{}, fmt.Errorf("x: %w", err)
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return geo.Vec2{}, fmt.Errorf("y: %w", err)
	}
	return geo.V(x, y), nil
}

func runLocate(projectPath, xs, ys string) error {
	p, err := parsePoint(xs, ys)
	if err != nil {
		return err
	}
	s, _, err := loadScene(projectPath)
	if err != nil {
		return err
	}
	x, y := p.X, p.Y
	e, ok, err := s.Locate(p)
	if err != nil {
		return err
	}
	switch {
	case !ok:
		fmt.Printf("(%g, %g) is not on the graph\n", x, y)
	case e.IsLoop():
		fmt.Printf("(%g, %g) is at junction %s\n", x, y, s.Graph.Vertex(e.From))
	default:
		fmt.Printf("(%g, %g) is on edge %s - %s\n", x, y, s.Graph.Vertex(e.From), s.Graph.Vertex(e.To))
	}
	return nil
}

func runNearest(projectPath, xs, ys string) error {
	p, err := parsePoint(xs, ys)
	if err != nil {
		return err
	}
	s, _, err := loadScene(projectPath)
	if err != nil {
		return err
	}
	id, err := s.Nearest(p)
	if err != nil {
		return err
	}
	v := s.Graph.Vertex(id)
	where := ""
	if r := s.Planner.Room(v.Room); r != nil {
		where = " in " + r.Name
	}
	fmt.Printf("(%g, %g) is nearest to %s%s, %s away\n", p.X, p.Y, v.Name, where, formatDistance(v.Pos.Distance(p)))
	return nil
}

func runSimulate(projectPath string, asJSON bool) error {
	s, report, err := loadScene(projectPath)
	if err != nil {
		return err
	}
	if err := report.Err(); err != nil {
		printValidationReport(report)
		return err
	}
	runner, err := sim.New(s, logger)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	err = runner.Run(context.Background(), func(step sim.Step) error {
		if asJSON {
			return enc.Encode(step)
		}
		for _, ev := range step.Events {
			printEvent(step.Time, ev)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if !asJSON {
		fmt.Printf("All errands finished after %d ticks (%.1fs)\n",
			runner.Ticks(), float64(runner.Ticks())*runner.TickSeconds())
	}
	return nil
}
