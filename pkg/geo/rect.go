package geo

// Rect is an axis-aligned rectangle. Min and Max are inclusive so that
// degenerate rectangles (a horizontal or vertical segment's box) still overlap.
type Rect struct {
	Min Vec2 `json:"min"`
	Max Vec2 `json:"max"`
}

// R builds a rectangle from any two opposite corners.
func R(a, b Vec2) Rect {
	return Rect{Min: Min(a, b), Max: Max(a, b)}
}

// RectAround returns the square of half-size half centered on c.
func RectAround(c Vec2, half float64) Rect {
	return Rect{
		Min: Vec2{c.X - half, c.Y - half},
		Max: Vec2{c.X + half, c.Y + half},
	}
}

// BoundsOf returns the smallest rectangle containing every point.
func BoundsOf(pts ...Vec2) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		r.Min = Min(r.Min, p)
		r.Max = Max(r.Max, p)
	}
	return r
}

// Center returns the rectangle's midpoint.
func (r Rect) Center() Vec2 { return MidPoint(r.Min, r.Max) }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Overlaps reports whether r and o share at least one point.
func (r Rect) Overlaps(o Rect) bool {
	return r.Min.X <= o.Max.X && o.Min.X <= r.Max.X &&
		r.Min.Y <= o.Max.Y && o.Min.Y <= r.Max.Y
}

// Expand grows r by pad on every side.
func (r Rect) Expand(pad float64) Rect {
	return Rect{
		Min: Vec2{r.Min.X - pad, r.Min.Y - pad},
		Max: Vec2{r.Max.X + pad, r.Max.Y + pad},
	}
}

// Quadrants splits r into four equal children ordered
// bottom-left, bottom-right, top-left, top-right.
func (r Rect) Quadrants() [4]Rect {
	c := r.Center()
	return [4]Rect{
		{Min: r.Min, Max: c},
		{Min: Vec2{c.X, r.Min.Y}, Max: Vec2{r.Max.X, c.Y}},
		{Min: Vec2{r.Min.X, c.Y}, Max: Vec2{c.X, r.Max.Y}},
		{Min: c, Max: r.Max},
	}
}
