package level

import (
	"testing"
)

func TestLoadProject(t *testing.T) {
	l, err := LoadProject("../../examples/office")
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}

	if l.LevelVersion != "0.1.0" {
		t.Errorf("level_version = %q, want %q", l.LevelVersion, "0.1.0")
	}
	if l.Name != "office" {
		t.Errorf("name = %q, want office", l.Name)
	}
	if len(l.RoomTypes) != 4 || len(l.StationTypes) != 2 {
		t.Errorf("types = %v / %v", l.RoomTypes, l.StationTypes)
	}
	if l.NeighborRadius != 2.1 {
		t.Errorf("neighbor_radius = %v, want 2.1", l.NeighborRadius)
	}
	if l.Index.MaxEdges != 8 || l.Index.Tolerance != 0.02 {
		t.Errorf("index = %+v", l.Index)
	}

	if len(l.Rooms) != 4 {
		t.Fatalf("rooms = %d, want 4", len(l.Rooms))
	}
	office := l.RoomByName("office")
	if office == nil {
		t.Fatal("missing office room")
	}
	if len(office.Vertices) != 2 || len(office.Stations) != 2 {
		t.Errorf("office has %d vertices, %d stations", len(office.Vertices), len(office.Stations))
	}
	if len(office.Bounds) != 4 {
		t.Errorf("office bounds = %d points, want 4", len(office.Bounds))
	}

	desk := l.StationByName("desk_1")
	if desk == nil {
		t.Fatal("missing desk_1")
	}
	if desk.Capacity == nil || *desk.Capacity != 1 {
		t.Errorf("desk_1 capacity = %v, want 1", desk.Capacity)
	}
	coffee := l.StationByName("coffee_machine")
	if coffee == nil || coffee.Capacity != nil {
		t.Errorf("coffee_machine should have no capacity limit")
	}
	if got := coffee.CapacityOr(-1); got != -1 {
		t.Errorf("CapacityOr = %d, want -1", got)
	}

	if len(l.Links) != 1 || !l.Links[0].Disabled {
		t.Errorf("links = %+v, want one disabled link", l.Links)
	}

	if len(l.Agents) != 2 {
		t.Fatalf("agents = %d, want 2", len(l.Agents))
	}
	ada := l.Agents[0]
	if ada.ID != "ada" || ada.Start != "lobby_w" || ada.Speed != 2 {
		t.Errorf("ada = %+v", ada)
	}
	if len(ada.Errands) != 3 || ada.Errands[0].Target != TargetStation || ada.Errands[2].Name != "lobby" {
		t.Errorf("ada errands = %+v", ada.Errands)
	}
	if l.Simulation.TickSeconds != 0.1 || l.Simulation.MaxTicks != 2000 {
		t.Errorf("simulation = %+v", l.Simulation)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := LoadProject(t.TempDir()); err == nil {
		t.Error("expected error for missing level.yaml")
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("rooms: [unterminated")); err == nil {
		t.Error("expected parse error")
	}
}

func TestPointNamesAndBounds(t *testing.T) {
	l, err := Parse([]byte(`
rooms:
  - name: a
    vertices:
      - { name: v1, x: -2, y: 1 }
      - { name: v2, x: 3, y: 4 }
    stations:
      - { name: s1, x: 0, y: -5 }
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	names := l.PointNames()
	want := []string{"v1", "v2", "s1"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}

	b := l.Bounds()
	if b.Min.X != -2 || b.Min.Y != -5 || b.Max.X != 3 || b.Max.Y != 4 {
		t.Errorf("bounds = %+v", b)
	}
	if l.RoomByName("missing") != nil || l.StationByName("missing") != nil {
		t.Error("lookups of unknown names should return nil")
	}
}
