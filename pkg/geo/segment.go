package geo

// ClosestOnSegment returns the point of segment ab closest to p and its distance.
// The projection is clamped to the segment; a zero-length segment collapses to a.
func ClosestOnSegment(p, a, b Vec2) (Vec2, float64) {
	ab := b.Sub(a)
	abLen2 := ab.Dot(ab)
	if abLen2 < 1e-12 {
		return a, p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / abLen2
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	closest := a.Add(ab.Scale(t))
	return closest, p.Distance(closest)
}

// Polyline is an ordered sequence of points forming a path.
type Polyline struct {
	Points []Vec2 `json:"points"`
}

// NewPolyline creates a polyline from a list of points.
func NewPolyline(pts ...Vec2) Polyline {
	return Polyline{Points: pts}
}
