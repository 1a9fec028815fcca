// Package game is the bubble simulation: entities, spawning, scoring,
// power-ups and the frame loop. Rendering, input, persistence and haptics
// are supplied by the host through small interfaces.
package game

import "math"

// Point is a position in surface coordinates. Y grows downwards, so rising
// bubbles move toward Y = 0.
type Point struct {
	X, Y float64
}

// Valid reports whether both coordinates are finite.
func (p Point) Valid() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

type Bounds struct {
	Width, Height float64
}

// Entity is the per-frame contract shared by bubbles and particles.
// Update advances one frame and reports whether the entity is finished:
// a bubble that left the top, a particle whose life ran out.
type Entity interface {
	Pos() Point
	Radius() float64
	Update(b Bounds) bool
	Draw(s Surface)
}

// Rand is the random source the simulation draws from; *rand.Rand
// satisfies it.
type Rand interface {
	Float64() float64
}
