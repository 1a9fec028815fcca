package game

import (
	"errors"
	"image/color"
	"time"

	"bubblepop/internal/config"
)

// seqRand replays fixed draws, then repeats fallback forever.
type seqRand struct {
	vals     []float64
	fallback float64
}

func (r *seqRand) Float64() float64 {
	if len(r.vals) == 0 {
		return r.fallback
	}
	v := r.vals[0]
	r.vals = r.vals[1:]
	return v
}

// recordSurface counts primitives instead of drawing them.
type recordSurface struct {
	bounds  Bounds
	clears  int
	fills   int
	strokes int
	grads   int
}

func newRecordSurface(w, h float64) *recordSurface {
	return &recordSurface{bounds: Bounds{Width: w, Height: h}}
}

func (s *recordSurface) Bounds() Bounds { return s.bounds }
func (s *recordSurface) Clear()         { s.clears++ }

func (s *recordSurface) FillCircle(x, y, r float64, c color.Color)               { s.fills++ }
func (s *recordSurface) StrokeCircle(x, y, r, w float64, c color.Color)          { s.strokes++ }
func (s *recordSurface) FillGradientCircle(x, y, r float64, in, out color.Color) { s.grads++ }

type fakeStore struct {
	values  map[string]int
	saves   int
	loadErr error
	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: map[string]int{}}
}

func (f *fakeStore) Load(key string) (int, bool, error) {
	if f.loadErr != nil {
		return 0, false, f.loadErr
	}
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakeStore) Save(key string, v int) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.values[key] = v
	return nil
}

var errStoreDown = errors.New("store down")

type fakeHaptics struct {
	pulses []time.Duration
}

func (h *fakeHaptics) Vibrate(d time.Duration) { h.pulses = append(h.pulses, d) }

// testConfig is Default with chance-driven variety switched off so tests
// control every bubble.
func testConfig() config.Config {
	cfg := config.Default()
	cfg.Modes.Zen.NegativeBubbleChance = 0
	cfg.Modes.Fast.NegativeBubbleChance = 0
	return cfg
}

func newTestSession(cfg config.Config, rng Rand) (*Session, *fakeStore, *fakeHaptics) {
	st := newFakeStore()
	h := &fakeHaptics{}
	s, err := NewSession(cfg, st, rng, h)
	if err != nil {
		panic(err)
	}
	return s, st, h
}

// place adds a normal bubble at a fixed spot.
func place(s *Session, x, y, r float64, points int) *Bubble {
	b := &Bubble{pos: Point{X: x, Y: y}, radius: r, speed: 1, points: points, color: palette[0]}
	s.bubbles = append(s.bubbles, b)
	return b
}

const frame60 = time.Second / 60

// runFrames fires n frames 1/60s apart starting after start.
func runFrames(q *FrameQueue, start time.Duration, n int) time.Duration {
	now := start
	for i := 0; i < n; i++ {
		now += frame60
		q.Fire(now)
	}
	return now
}
