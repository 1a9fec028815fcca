package game

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// lifeEpsilon absorbs float error so a 0.02 decay dies on the 50th update.
const lifeEpsilon = 1e-9

// Particle is a cosmetic spark thrown out when a bubble pops.
type Particle struct {
	pos    Point
	vx, vy float64
	size   float64
	color  color.Color
	decay  float64
	age    int
}

func (p *Particle) reset(at Point, c color.Color, decay float64, rng Rand) {
	p.pos = at
	p.color = c
	p.size = rng.Float64()*3 + 2
	p.vx = rng.Float64()*6 - 3
	p.vy = rng.Float64()*6 - 3
	p.decay = decay
	p.age = 0
}

func (p *Particle) Pos() Point      { return p.pos }
func (p *Particle) Radius() float64 { return p.size }

// Life falls from 1 by decay per update.
func (p *Particle) Life() float64 {
	l := 1 - float64(p.age)*p.decay
	if l < lifeEpsilon {
		return 0
	}
	return l
}

func (p *Particle) Dead() bool { return p.Life() <= 0 }

// Update moves the particle and ages it; particles ignore bounds.
func (p *Particle) Update(_ Bounds) bool {
	p.pos.X += p.vx
	p.pos.Y += p.vy
	p.age++
	return p.Dead()
}

func (p *Particle) Draw(s Surface) {
	s.FillCircle(p.pos.X, p.pos.Y, p.size, fade(p.color, p.Life()))
}

// fade scales the alpha of c by a in [0,1].
func fade(c color.Color, a float64) color.Color {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return color.Transparent
	}
	r, g, b := cf.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a * 255)}
}

// ParticlePool owns the live particles and recycles dead ones.
type ParticlePool struct {
	live  []*Particle
	free  []*Particle
	max   int
	decay float64
}

// NewParticlePool caps the live set at capacity; 0 means unbounded.
func NewParticlePool(capacity int, decay float64) *ParticlePool {
	return &ParticlePool{max: capacity, decay: decay}
}

// Burst spawns n particles at a point. When the pool is full the oldest
// live particles are reused.
func (pp *ParticlePool) Burst(at Point, c color.Color, n int, rng Rand) {
	for i := 0; i < n; i++ {
		var p *Particle
		switch {
		case len(pp.free) > 0:
			p = pp.free[len(pp.free)-1]
			pp.free = pp.free[:len(pp.free)-1]
			pp.live = append(pp.live, p)
		case pp.max > 0 && len(pp.live) >= pp.max:
			p = pp.live[0]
			copy(pp.live, pp.live[1:])
			pp.live[len(pp.live)-1] = p
		default:
			p = &Particle{}
			pp.live = append(pp.live, p)
		}
		p.reset(at, c, pp.decay, rng)
	}
}

// Update advances every particle once, moving the dead to the free list.
func (pp *ParticlePool) Update() {
	kept := pp.live[:0]
	for _, p := range pp.live {
		if p.Update(Bounds{}) {
			pp.free = append(pp.free, p)
			continue
		}
		kept = append(kept, p)
	}
	for i := len(kept); i < len(pp.live); i++ {
		pp.live[i] = nil
	}
	pp.live = kept
}

func (pp *ParticlePool) Draw(s Surface) {
	for _, p := range pp.live {
		p.Draw(s)
	}
}

func (pp *ParticlePool) Len() int { return len(pp.live) }

// Live exposes the current particles; callers must not retain the slice.
func (pp *ParticlePool) Live() []*Particle { return pp.live }

// Clear returns every live particle to the free list.
func (pp *ParticlePool) Clear() {
	pp.free = append(pp.free, pp.live...)
	for i := range pp.live {
		pp.live[i] = nil
	}
	pp.live = pp.live[:0]
}
