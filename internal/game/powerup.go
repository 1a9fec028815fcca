package game

import (
	"errors"
	"fmt"
	"time"

	"bubblepop/internal/config"
)

var ErrUnknownPowerUp = errors.New("unknown power-up")

type PowerUpKind int

const (
	Shield PowerUpKind = iota
	SlowMotion
	DoublePoints

	powerUpCount
)

var powerUpNames = [powerUpCount]string{"shield", "slowMotion", "doublePoints"}

func (k PowerUpKind) String() string {
	if k < 0 || k >= powerUpCount {
		return fmt.Sprintf("PowerUpKind(%d)", int(k))
	}
	return powerUpNames[k]
}

// ParsePowerUp accepts the names printed by String.
func ParsePowerUp(name string) (PowerUpKind, error) {
	for i, n := range powerUpNames {
		if n == name {
			return PowerUpKind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPowerUp, name)
}

// PowerUpKinds lists every kind in display order.
func PowerUpKinds() []PowerUpKind {
	return []PowerUpKind{Shield, SlowMotion, DoublePoints}
}

type PowerUpState int

const (
	Inactive PowerUpState = iota
	Active
	Cooldown
)

func (s PowerUpState) String() string {
	switch s {
	case Active:
		return "active"
	case Cooldown:
		return "cooldown"
	}
	return "inactive"
}

// PowerUpListener observes every state change.
type PowerUpListener func(kind PowerUpKind, from, to PowerUpState)

type powerUp struct {
	duration  time.Duration
	cooldown  time.Duration
	state     PowerUpState
	remaining time.Duration
}

// PowerUps runs the Inactive -> Active -> Cooldown -> Inactive cycle of
// each kind. Time only moves through Advance, so pausing the caller pauses
// every countdown.
type PowerUps struct {
	slots     [powerUpCount]powerUp
	listeners []PowerUpListener
}

func NewPowerUps(cfg config.PowerUps) *PowerUps {
	pm := &PowerUps{}
	pm.slots[Shield] = powerUp{duration: cfg.Shield.Duration(), cooldown: cfg.Shield.Cooldown()}
	pm.slots[SlowMotion] = powerUp{duration: cfg.SlowMotion.Duration(), cooldown: cfg.SlowMotion.Cooldown()}
	pm.slots[DoublePoints] = powerUp{duration: cfg.DoublePoints.Duration(), cooldown: cfg.DoublePoints.Cooldown()}
	return pm
}

func (pm *PowerUps) OnChange(l PowerUpListener) {
	pm.listeners = append(pm.listeners, l)
}

func (pm *PowerUps) valid(k PowerUpKind) bool {
	return k >= 0 && k < powerUpCount
}

// Activate starts k. It is a no-op, returning false, unless k is Inactive.
func (pm *PowerUps) Activate(k PowerUpKind) bool {
	if !pm.valid(k) || pm.slots[k].state != Inactive {
		return false
	}
	pm.set(k, Active, pm.slots[k].duration)
	return true
}

func (pm *PowerUps) State(k PowerUpKind) PowerUpState {
	if !pm.valid(k) {
		return Inactive
	}
	return pm.slots[k].state
}

func (pm *PowerUps) IsActive(k PowerUpKind) bool {
	return pm.State(k) == Active
}

// Remaining is the time left in the current Active or Cooldown phase.
func (pm *PowerUps) Remaining(k PowerUpKind) time.Duration {
	if !pm.valid(k) {
		return 0
	}
	return pm.slots[k].remaining
}

// Advance moves every countdown forward by dt, carrying leftover time
// across phase boundaries.
func (pm *PowerUps) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	for i := range pm.slots {
		k := PowerUpKind(i)
		left := dt
		for left > 0 && pm.slots[k].state != Inactive {
			s := &pm.slots[k]
			if left < s.remaining {
				s.remaining -= left
				break
			}
			left -= s.remaining
			switch s.state {
			case Active:
				pm.set(k, Cooldown, s.cooldown)
			case Cooldown:
				pm.set(k, Inactive, 0)
			}
		}
	}
}

// Reset forces every power-up back to Inactive without notifying
// listeners; used when a new session starts.
func (pm *PowerUps) Reset() {
	for i := range pm.slots {
		pm.slots[i].state = Inactive
		pm.slots[i].remaining = 0
	}
}

func (pm *PowerUps) set(k PowerUpKind, to PowerUpState, remaining time.Duration) {
	from := pm.slots[k].state
	pm.slots[k].state = to
	pm.slots[k].remaining = remaining
	for _, l := range pm.listeners {
		l(k, from, to)
	}
}
