package game

import (
	"log"
	"math"
	"time"
)

// FindHit returns the index of the first bubble, in slice order, that p
// hits, or -1. Bubbles in an invalid state are skipped rather than failing.
func FindHit(bubbles []*Bubble, p Point, mult float64) int {
	if !p.Valid() {
		return -1
	}
	for i, b := range bubbles {
		if !b.Valid() {
			continue
		}
		if b.HitTest(p, mult) {
			return i
		}
	}
	return -1
}

// AwardPoints applies power-up modifiers and the combo multiplier to a
// bubble's base value.
func AwardPoints(base int, doubled, shielded bool, multiplier float64) int {
	if shielded && base < 0 {
		return 0
	}
	if doubled {
		base *= 2
	}
	return int(math.Round(float64(base) * multiplier))
}

// Combo counts hits that land within timeout of the previous one.
type Combo struct {
	timeout   time.Duration
	threshold int
	max       int

	count   int
	lastHit time.Duration
	hit     bool
}

func NewCombo(timeout time.Duration, threshold, maxMultiplier int) *Combo {
	if threshold < 1 {
		threshold = 1
	}
	if maxMultiplier < 1 {
		maxMultiplier = 1
	}
	return &Combo{timeout: timeout, threshold: threshold, max: maxMultiplier}
}

// Register records a hit at now and returns the multiplier that hit earns.
func (c *Combo) Register(now time.Duration) float64 {
	if c.hit && now-c.lastHit <= c.timeout {
		c.count++
	} else {
		c.count = 0
	}
	c.lastHit = now
	c.hit = true
	return c.Multiplier()
}

// Multiplier is min(max, count/threshold + 1).
func (c *Combo) Multiplier() float64 {
	m := c.count/c.threshold + 1
	if m > c.max {
		m = c.max
	}
	return float64(m)
}

func (c *Combo) Count() int { return c.count }

// Active reports whether a hit at now would extend the streak.
func (c *Combo) Active(now time.Duration) bool {
	return c.hit && now-c.lastHit <= c.timeout
}

func (c *Combo) Reset() {
	c.count = 0
	c.lastHit = 0
	c.hit = false
}

// Scoreboard holds the running score and the persisted high score.
type Scoreboard struct {
	key   string
	store ScoreStore

	score     int
	highScore int
}

// NewScoreboard reads the high score once. An unreadable record counts as no
// record; the store is kept so the next high score rewrites it. A store
// that fails to save is dropped and the board works from memory.
func NewScoreboard(store ScoreStore, key string) *Scoreboard {
	sb := &Scoreboard{key: key, store: store}
	if store == nil {
		return sb
	}
	v, ok, err := store.Load(key)
	if err != nil {
		log.Printf("highscore: load failed, starting from 0: %v", err)
		return sb
	}
	if ok {
		sb.highScore = v
	}
	return sb
}

// Add applies points (which may be negative) and persists any new high score.
func (sb *Scoreboard) Add(points int) {
	sb.score += points
	if sb.score <= sb.highScore {
		return
	}
	sb.highScore = sb.score
	if sb.store == nil {
		return
	}
	if err := sb.store.Save(sb.key, sb.highScore); err != nil {
		log.Printf("highscore: save failed, continuing without persistence: %v", err)
		sb.store = nil
	}
}

func (sb *Scoreboard) Score() int       { return sb.score }
func (sb *Scoreboard) HighScore() int   { return sb.highScore }
func (sb *Scoreboard) Persisting() bool { return sb.store != nil }

// ResetScore starts a new game; the high score carries over.
func (sb *Scoreboard) ResetScore() { sb.score = 0 }
