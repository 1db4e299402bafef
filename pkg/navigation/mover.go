package navigation

import "github.com/Jakob-W-Lucas/Project-Beagle/pkg/geo"

// Mover is the movement capability an agent is driven through.
type Mover interface {
	Position() geo.Vec2
	// Step moves toward target by at most maxDistance and returns the new
	// position.
	Step(target geo.Vec2, maxDistance float64) geo.Vec2
	Reached(target geo.Vec2) bool
}

// LinearMover walks in straight lines at whatever distance it is given.
type LinearMover struct {
	pos geo.Vec2
	tol float64
}

// NewLinearMover places a mover at pos.
func NewLinearMover(pos geo.Vec2) *LinearMover {
	return &LinearMover{pos: pos, tol: geo.Epsilon}
}

func (m *LinearMover) Position() geo.Vec2 { return m.pos }

func (m *LinearMover) Step(target geo.Vec2, maxDistance float64) geo.Vec2 {
	m.pos = m.pos.MoveTowards(target, maxDistance)
	return m.pos
}

func (m *LinearMover) Reached(target geo.Vec2) bool {
	return m.pos.ApproxEqual(target, m.tol)
}
