package game

import "time"

// frameSlack absorbs display jitter so a 60Hz host capped at 30fps ticks on
// every second refresh.
const frameSlack = time.Millisecond

type LoopState int

const (
	Stopped LoopState = iota
	Playing
	Paused
)

func (s LoopState) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	}
	return "stopped"
}

// Loop drives a Session one frame at a time from a FrameScheduler.
//
// Pausing cancels the pending frame instead of idling on it; Resume drops
// the delta baseline so the paused span never reaches game time. Game time
// is the sum of frame deltas while playing, and every timer in the session
// (spawn gate, combo window, power-ups, growth) reads it.
type Loop struct {
	session *Session
	sched   FrameScheduler
	surface Surface

	state   LoopState
	handle  FrameHandle
	pending bool

	minFrame     time.Duration
	lastFrame    time.Duration
	haveBaseline bool
	sinceTick    time.Duration
	gameTime     time.Duration
	frames       int
}

// NewLoop wires a loop; maxFPS caps the logical tick rate, 0 disables it.
func NewLoop(session *Session, sched FrameScheduler, surface Surface, maxFPS int) *Loop {
	l := &Loop{session: session, sched: sched, surface: surface}
	if maxFPS > 0 {
		l.minFrame = time.Second / time.Duration(maxFPS)
	}
	return l
}

// Start begins a fresh game in mode.
func (l *Loop) Start(mode string) error {
	if err := l.session.Reset(mode); err != nil {
		return err
	}
	l.cancel()
	l.state = Playing
	l.gameTime = 0
	l.frames = 0
	l.sinceTick = 0
	l.haveBaseline = false
	l.request()
	return nil
}

// SetMode switches preset mid-game, or starts a game when none is running.
func (l *Loop) SetMode(mode string) error {
	if l.state == Stopped {
		return l.Start(mode)
	}
	return l.session.SetMode(mode)
}

func (l *Loop) Pause() {
	if l.state != Playing {
		return
	}
	l.state = Paused
	l.cancel()
}

func (l *Loop) Resume() {
	if l.state != Paused {
		return
	}
	l.state = Playing
	l.haveBaseline = false
	l.request()
}

// TogglePause flips between Playing and Paused; it does nothing when stopped.
func (l *Loop) TogglePause() {
	switch l.state {
	case Playing:
		l.Pause()
	case Paused:
		l.Resume()
	}
}

func (l *Loop) Stop() {
	l.state = Stopped
	l.cancel()
}

// Pointer handles a press in surface coordinates. Presses outside Playing
// are ignored.
func (l *Loop) Pointer(x, y float64, src PointerSource) (Pop, bool) {
	if l.state != Playing {
		return Pop{}, false
	}
	return l.session.Pop(Point{X: x, Y: y}, src, l.gameTime)
}

// ActivatePowerUp is ignored unless Playing.
func (l *Loop) ActivatePowerUp(k PowerUpKind) bool {
	if l.state != Playing {
		return false
	}
	return l.session.ActivatePowerUp(k)
}

func (l *Loop) State() LoopState        { return l.state }
func (l *Loop) Session() *Session       { return l.session }
func (l *Loop) GameTime() time.Duration { return l.gameTime }
func (l *Loop) Frames() int             { return l.frames }

func (l *Loop) request() {
	l.handle = l.sched.RequestFrame(l.frame)
	l.pending = true
}

func (l *Loop) cancel() {
	if l.pending {
		l.sched.CancelFrame(l.handle)
		l.pending = false
	}
}

func (l *Loop) frame(now time.Duration) {
	l.pending = false
	if l.state != Playing {
		return
	}

	var dt time.Duration
	if l.haveBaseline && now > l.lastFrame {
		dt = now - l.lastFrame
	}
	l.lastFrame = now
	l.haveBaseline = true

	if l.minFrame > 0 {
		l.sinceTick += dt
		if l.frames > 0 && l.sinceTick+frameSlack < l.minFrame {
			l.request()
			return
		}
		dt = l.sinceTick
		l.sinceTick = 0
	}

	l.tick(dt)
	l.request()
}

func (l *Loop) tick(dt time.Duration) {
	l.gameTime += dt
	l.frames++
	s := l.session
	bounds := l.surface.Bounds()

	s.Advance(l.gameTime, dt)

	l.surface.Clear()

	s.UpdateParticles()
	s.Particles().Draw(l.surface)

	s.UpdateBubbles(bounds)
	for _, b := range s.Bubbles() {
		b.Draw(l.surface)
	}

	if b := s.Spawn(bounds, l.gameTime); b != nil {
		b.Draw(l.surface)
	}
}
