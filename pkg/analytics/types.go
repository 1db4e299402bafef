package analytics

// RouteStats summarises the precomputed global routing table.
type RouteStats struct {
	Vertices     int     `json:"vertices"`
	Edges        int     `json:"edges"`
	Pairs        int     `json:"pairs"`
	Reachable    int     `json:"reachable_pairs"`
	Unreachable  int     `json:"unreachable_pairs"`
	MeanDistance float64 `json:"mean_distance"`
	MaxDistance  float64 `json:"max_distance"`
	MeanHops     float64 `json:"mean_hops"`
	MaxHops      int     `json:"max_hops"`

	// Diameter is the longest of all shortest routes.
	Diameter *PairStat  `json:"diameter,omitempty"`
	Rooms    []RoomStat `json:"rooms"`
}

// PairStat describes the route between two named vertices.
type PairStat struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	Distance float64  `json:"distance"`
	Path     []string `json:"path"`
}

// RoomStat holds per-room figures.
type RoomStat struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Configured bool   `json:"configured"`
	Interior   int    `json:"interior_vertices"`
	Edges      int    `json:"interior_edges"`
	Stations   int    `json:"stations"`
	// Capacity is the summed station capacity, -1 when any station is unlimited.
	Capacity int `json:"capacity"`
	Occupied int `json:"occupied"`
	// ReachableRooms counts the other configured rooms reachable from this one.
	ReachableRooms int `json:"reachable_rooms"`
}
