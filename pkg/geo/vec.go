package geo

import "math"

// Epsilon is the distance under which two positions are considered equal.
const Epsilon = 1e-6

// Vec2 is a position or direction in the level plane.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// V is a shorthand constructor for Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns p + q.
func (p Vec2) Add(q Vec2) Vec2 {
	return Vec2{p.X + q.X, p.Y + q.Y}
}

// Sub returns p - q.
func (p Vec2) Sub(q Vec2) Vec2 {
	return Vec2{p.X - q.X, p.Y - q.Y}
}

// Scale returns p * s.
func (p Vec2) Scale(s float64) Vec2 {
	return Vec2{p.X * s, p.Y * s}
}

// Length returns the Euclidean length of the vector.
func (p Vec2) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Dot returns the dot product of p and q.
func (p Vec2) Dot(q Vec2) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Distance returns the Euclidean distance from p to q.
func (p Vec2) Distance(q Vec2) float64 {
	return p.Sub(q).Length()
}

// Lerp returns the linear interpolation between p and q at t in [0,1].
func (p Vec2) Lerp(q Vec2, t float64) Vec2 {
	return Vec2{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// MoveTowards moves p towards target by at most maxDelta without overshooting.
func (p Vec2) MoveTowards(target Vec2, maxDelta float64) Vec2 {
	d := target.Sub(p)
	dist := d.Length()
	if dist <= maxDelta || dist < Epsilon {
		return target
	}
	return p.Add(d.Scale(maxDelta / dist))
}

// ApproxEqual reports whether p and q are within tol of each other on both axes.
func (p Vec2) ApproxEqual(q Vec2, tol float64) bool {
	return math.Abs(p.X-q.X) <= tol && math.Abs(p.Y-q.Y) <= tol
}

// Min returns the component-wise minimum of p and q.
func Min(p, q Vec2) Vec2 {
	return Vec2{math.Min(p.X, q.X), math.Min(p.Y, q.Y)}
}

// Max returns the component-wise maximum of p and q.
func Max(p, q Vec2) Vec2 {
	return Vec2{math.Max(p.X, q.X), math.Max(p.Y, q.Y)}
}

// MidPoint returns the midpoint between p and q.
func MidPoint(p, q Vec2) Vec2 {
	return p.Lerp(q, 0.5)
}
