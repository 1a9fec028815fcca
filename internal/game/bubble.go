package game

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"bubblepop/internal/config"
)

type BubbleType int

const (
	Normal BubbleType = iota
	Star
	Bomb
	Rainbow
)

func (t BubbleType) String() string {
	switch t {
	case Star:
		return "star"
	case Bomb:
		return "bomb"
	case Rainbow:
		return "rainbow"
	}
	return "normal"
}

// NegativePoints is the value of bombs and of forced-negative bubbles.
const NegativePoints = -5

// TypeForRoll maps one uniform draw in [0,1) onto the type ladder.
func TypeForRoll(r float64) BubbleType {
	switch {
	case r < 0.05:
		return Star
	case r < 0.10:
		return Bomb
	case r < 0.15:
		return Rainbow
	}
	return Normal
}

// ResolvePoints is the reward for popping a bubble. A forced negative
// overrides whatever the type would have paid.
func ResolvePoints(t BubbleType, forcedNegative bool) int {
	if forcedNegative {
		return NegativePoints
	}
	switch t {
	case Star:
		return 10
	case Bomb:
		return NegativePoints
	case Rainbow:
		return 5
	}
	return 1
}

var (
	palette       = mustPalette("#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FFEEAD", "#FFD93D")
	negativeColor = mustPalette("#FF0000")[0]
	highlight     = color.NRGBA{R: 255, G: 255, B: 255, A: 204}
)

func mustPalette(hexes ...string) []color.Color {
	out := make([]color.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			panic(err)
		}
		out[i] = c
	}
	return out
}

// Bubble is the rising, poppable orb.
type Bubble struct {
	pos            Point
	radius         float64
	speed          float64
	kind           BubbleType
	forcedNegative bool
	points         int
	color          color.Color
	hue            float64
}

// BubbleParams is everything NewBubble needs from the session.
type BubbleParams struct {
	Mode        config.Mode
	Score       int
	SpeedFactor float64
}

// NewBubble places a bubble just below the visible area. Draw order from
// rng: radius, x, color, type, negative override.
func NewBubble(rng Rand, b Bounds, p BubbleParams) *Bubble {
	m := p.Mode
	r := m.MinSize + rng.Float64()*(m.MaxSize-m.MinSize)
	bub := &Bubble{
		radius: r,
		pos:    Point{X: spawnX(rng, b.Width, r, m.SpawnWidthFraction), Y: b.Height + r},
		speed:  SpeedFor(m, p.Score) * speedFactor(p.SpeedFactor),
		color:  palette[int(rng.Float64()*float64(len(palette)))%len(palette)],
	}
	bub.kind = TypeForRoll(rng.Float64())
	bub.forcedNegative = rng.Float64() < m.NegativeBubbleChance
	bub.points = ResolvePoints(bub.kind, bub.forcedNegative)

	switch {
	case bub.forcedNegative:
		bub.color = negativeColor
	case bub.kind == Star:
		bub.color = colornames.Gold
	case bub.kind == Bomb:
		bub.color = colornames.Dimgray
	case bub.kind == Rainbow:
		bub.hue = rng.Float64() * 360
		bub.color = colorful.Hsv(bub.hue, 0.7, 1)
	}
	return bub
}

func speedFactor(f float64) float64 {
	if f <= 0 {
		return 1
	}
	return f
}

// SpeedFor ramps base speed with score, never past MaxSpeed.
func SpeedFor(m config.Mode, score int) float64 {
	s := m.BaseSpeed
	if score > 0 {
		s += m.SpeedPerPoint * float64(score)
	}
	return math.Min(s, m.MaxSpeed)
}

// spawnX samples inside the centered fraction of the width, then keeps the
// whole bubble on screen when it fits.
func spawnX(rng Rand, width, r, fraction float64) float64 {
	usable := width * fraction
	x := (width-usable)/2 + rng.Float64()*usable
	if width > 2*r {
		x = math.Max(r, math.Min(width-r, x))
	}
	return x
}

func (b *Bubble) Pos() Point           { return b.pos }
func (b *Bubble) Radius() float64      { return b.radius }
func (b *Bubble) Speed() float64       { return b.speed }
func (b *Bubble) Type() BubbleType     { return b.kind }
func (b *Bubble) Points() int          { return b.points }
func (b *Bubble) Color() color.Color   { return b.color }
func (b *Bubble) ForcedNegative() bool { return b.forcedNegative }

// Valid reports whether the bubble can take part in hit testing.
func (b *Bubble) Valid() bool {
	return b != nil && b.pos.Valid() && b.radius > 0 && !math.IsNaN(b.radius) && !math.IsInf(b.radius, 0)
}

// Update moves the bubble up one frame and reports whether it has fully
// left the top edge.
func (b *Bubble) Update(_ Bounds) bool {
	b.pos.Y -= b.speed
	if b.kind == Rainbow && !b.forcedNegative {
		b.hue = math.Mod(b.hue+2, 360)
		b.color = colorful.Hsv(b.hue, 0.7, 1)
	}
	return b.pos.Y+b.radius < 0
}

// Recycle moves an exited bubble back under the bottom edge.
func (b *Bubble) Recycle(rng Rand, bounds Bounds, fraction float64) {
	b.pos = Point{X: spawnX(rng, bounds.Width, b.radius, fraction), Y: bounds.Height + b.radius}
}

func (b *Bubble) scaleSpeed(f float64) {
	b.speed *= f
}

// HitTest widens the radius by mult before comparing distances.
func (b *Bubble) HitTest(p Point, mult float64) bool {
	return p.Dist(b.pos) <= b.radius*mult
}

func (b *Bubble) Draw(s Surface) {
	s.FillGradientCircle(b.pos.X, b.pos.Y, b.radius, highlight, b.color)
	switch {
	case b.forcedNegative || b.kind == Bomb:
		s.StrokeCircle(b.pos.X, b.pos.Y, b.radius, 2, negativeColor)
	case b.kind == Star:
		s.StrokeCircle(b.pos.X, b.pos.Y, b.radius, 2, colornames.White)
	}
}
