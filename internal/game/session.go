package game

import (
	"errors"
	"fmt"
	"time"

	"bubblepop/internal/config"
)

var ErrUnknownMode = errors.New("unknown mode")

const slowMotionFactor = 0.5

// Session is the state of one game: the live entities plus the scoring,
// spawning and power-up components that act on them. Each component only
// sees the slice of state it needs; Session wires them together.
type Session struct {
	cfg      config.Config
	rng      Rand
	haptics  Haptics
	modeName string
	mode     config.Mode

	board     *Scoreboard
	combo     *Combo
	powerUps  *PowerUps
	growth    *Growth
	spawner   Spawner
	bubbles   []*Bubble
	particles *ParticlePool

	speedFactor float64
	lastWidth   float64
}

// NewSession reads the high score from store once. store and haptics may
// be nil.
func NewSession(cfg config.Config, store ScoreStore, rng Rand, haptics Haptics) (*Session, error) {
	mode, ok := cfg.Mode(cfg.DefaultMode)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, cfg.DefaultMode)
	}
	s := &Session{
		cfg:         cfg,
		rng:         rng,
		haptics:     haptics,
		modeName:    cfg.DefaultMode,
		mode:        mode,
		board:       NewScoreboard(store, cfg.Scoring.HighScoreKey),
		combo:       NewCombo(cfg.Scoring.ComboTimeout(), cfg.Scoring.ComboThreshold, cfg.Scoring.MaxMultiplier),
		powerUps:    NewPowerUps(cfg.PowerUps),
		growth:      NewGrowth(cfg.Growth),
		particles:   NewParticlePool(cfg.Scoring.ParticleCapacity, cfg.Scoring.ParticleDecay),
		speedFactor: 1,
	}
	s.powerUps.OnChange(s.applyPowerUp)
	return s, nil
}

// Reset empties the field and counters and switches to mode. The high
// score survives.
func (s *Session) Reset(mode string) error {
	if err := s.SetMode(mode); err != nil {
		return err
	}
	s.board.ResetScore()
	s.combo.Reset()
	s.spawner.Reset()
	s.growth.Reset()
	s.powerUps.Reset()
	s.particles.Clear()
	s.bubbles = s.bubbles[:0]
	s.speedFactor = 1
	s.lastWidth = 0
	return nil
}

// SetMode swaps the active preset without touching the field.
func (s *Session) SetMode(name string) error {
	m, ok := s.cfg.Mode(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
	s.modeName = name
	s.mode = m
	return nil
}

func (s *Session) applyPowerUp(k PowerUpKind, from, to PowerUpState) {
	if k != SlowMotion {
		return
	}
	switch {
	case to == Active:
		s.scaleSpeeds(slowMotionFactor)
		s.speedFactor = slowMotionFactor
	case from == Active:
		s.scaleSpeeds(1 / slowMotionFactor)
		s.speedFactor = 1
	}
}

func (s *Session) scaleSpeeds(f float64) {
	for _, b := range s.bubbles {
		b.scaleSpeed(f)
	}
}

// Advance moves the power-up countdowns and the population growth to now.
func (s *Session) Advance(now, dt time.Duration) {
	s.powerUps.Advance(dt)
	s.growth.Advance(now)
}

func (s *Session) UpdateParticles() {
	s.particles.Update()
}

// UpdateBubbles moves every bubble one frame and drops, or recycles in
// wrap mode, those that left the top. Bubbles stranded by a narrower
// surface are pulled back inside.
func (s *Session) UpdateBubbles(b Bounds) {
	if s.lastWidth > 0 && b.Width < s.lastWidth {
		for _, bub := range s.bubbles {
			if bub.pos.X > b.Width {
				bub.pos.X = b.Width - bub.radius
			}
		}
	}
	s.lastWidth = b.Width

	kept := s.bubbles[:0]
	for _, bub := range s.bubbles {
		if bub.Update(b) {
			if !s.mode.Wrap {
				continue
			}
			bub.Recycle(s.rng, b, s.mode.SpawnWidthFraction)
		}
		kept = append(kept, bub)
	}
	for i := len(kept); i < len(s.bubbles); i++ {
		s.bubbles[i] = nil
	}
	s.bubbles = kept
}

// Spawn emits at most one bubble when the spawn gate opens.
func (s *Session) Spawn(b Bounds, now time.Duration) *Bubble {
	interval := SpawnInterval(s.mode, s.board.Score())
	if !s.spawner.Tick(now, interval, len(s.bubbles), s.MaxBubbles()) {
		return nil
	}
	bub := NewBubble(s.rng, b, BubbleParams{Mode: s.mode, Score: s.board.Score(), SpeedFactor: s.speedFactor})
	s.bubbles = append(s.bubbles, bub)
	return bub
}

// Pop is the outcome of a pointer press that hit a bubble.
type Pop struct {
	Bubble     *Bubble
	Points     int
	Multiplier float64
	Score      int
	NewHigh    bool
}

// Pop resolves a pointer press at p. At most one bubble pops per press:
// the first hit in spawn order.
func (s *Session) Pop(p Point, src PointerSource, now time.Duration) (Pop, bool) {
	mult := s.cfg.Scoring.MouseHitArea
	if src == Touch {
		mult = s.cfg.Scoring.TouchHitArea
	}
	i := FindHit(s.bubbles, p, mult)
	if i < 0 {
		return Pop{}, false
	}
	bub := s.bubbles[i]
	last := len(s.bubbles) - 1
	copy(s.bubbles[i:], s.bubbles[i+1:])
	s.bubbles[last] = nil
	s.bubbles = s.bubbles[:last]

	multiplier := s.combo.Register(now)
	points := AwardPoints(bub.points, s.powerUps.IsActive(DoublePoints), s.powerUps.IsActive(Shield), multiplier)
	prevHigh := s.board.HighScore()
	s.board.Add(points)

	s.particles.Burst(bub.pos, bub.color, s.cfg.Scoring.ParticlesPerPop, s.rng)
	if s.haptics != nil {
		s.haptics.Vibrate(s.cfg.Scoring.Haptic())
	}

	return Pop{
		Bubble:     bub,
		Points:     points,
		Multiplier: multiplier,
		Score:      s.board.Score(),
		NewHigh:    s.board.HighScore() > prevHigh,
	}, true
}

// ActivatePowerUp is the player-facing trigger; false means it was already
// running or cooling down.
func (s *Session) ActivatePowerUp(k PowerUpKind) bool {
	return s.powerUps.Activate(k)
}

// MaxBubbles is the current mode's cap after growth.
func (s *Session) MaxBubbles() int { return s.growth.MaxBubbles(s.mode.MaxBubbles) }

// ModeMaxBubbles is the grown cap of any configured mode.
func (s *Session) ModeMaxBubbles(name string) (int, error) {
	m, ok := s.cfg.Mode(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
	return s.growth.MaxBubbles(m.MaxBubbles), nil
}

func (s *Session) Bubbles() []*Bubble          { return s.bubbles }
func (s *Session) Particles() *ParticlePool    { return s.particles }
func (s *Session) Score() int                  { return s.board.Score() }
func (s *Session) HighScore() int              { return s.board.HighScore() }
func (s *Session) Combo() *Combo               { return s.combo }
func (s *Session) PowerUps() *PowerUps         { return s.powerUps }
func (s *Session) Mode() (string, config.Mode) { return s.modeName, s.mode }
func (s *Session) Config() config.Config       { return s.cfg }
