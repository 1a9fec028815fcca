package game

import (
	"math"
	"time"

	"bubblepop/internal/config"
)

// ShouldSpawn is the spawn gate: strictly more than interval since the last
// spawn, and room under the population cap.
func ShouldSpawn(now, last, interval time.Duration, live, max int) bool {
	return now-last > interval && live < max
}

// SpawnInterval tightens the mode's interval by SpawnDecrement for every
// ScoreStep points, down to MinSpawnInterval. Negative scores never slow
// spawning down.
func SpawnInterval(m config.Mode, score int) time.Duration {
	interval := m.SpawnInterval()
	if m.ScoreStep > 0 && score > 0 {
		interval -= time.Duration(score/m.ScoreStep) * m.SpawnDecrement()
	}
	if interval < m.MinSpawnInterval() {
		interval = m.MinSpawnInterval()
	}
	return interval
}

// Growth raises the population cap of every mode on a fixed game-time
// cadence. The cap compounds from the preset, so 14 reads 14, 14, 15, 16...
// after each step at factor 1.05.
type Growth struct {
	interval time.Duration
	factor   float64
	steps    int
	last     time.Duration
}

func NewGrowth(cfg config.Growth) *Growth {
	return &Growth{interval: cfg.Interval(), factor: cfg.Factor}
}

func (g *Growth) Reset() {
	g.steps = 0
	g.last = 0
}

// Advance applies every step whose boundary now has crossed and returns how
// many were applied.
func (g *Growth) Advance(now time.Duration) int {
	if g.interval <= 0 {
		return 0
	}
	n := 0
	for now-g.last >= g.interval {
		g.last += g.interval
		g.steps++
		n++
	}
	return n
}

func (g *Growth) Steps() int { return g.steps }

// MaxBubbles is the grown cap for a preset population. It saturates at
// maxPopulation once compounding outgrows it.
func (g *Growth) MaxBubbles(base int) int {
	v := math.Floor(float64(base) * math.Pow(g.factor, float64(g.steps)))
	if math.IsNaN(v) || v >= maxPopulation {
		return maxPopulation
	}
	return int(v)
}

// maxPopulation bounds the grown cap so it always fits an int.
const maxPopulation = 1 << 30

// Spawner decides, once per frame, whether a bubble is due.
type Spawner struct {
	last   time.Duration
	primed bool
}

func (s *Spawner) Reset() {
	s.last = 0
	s.primed = false
}

// Tick reports whether to emit a bubble now. The first frame of a session
// is always eligible, subject to the cap.
func (s *Spawner) Tick(now, interval time.Duration, live, max int) bool {
	if s.primed && !ShouldSpawn(now, s.last, interval, live, max) {
		return false
	}
	if live >= max {
		return false
	}
	s.last = now
	s.primed = true
	return true
}

func (s *Spawner) Last() time.Duration { return s.last }
