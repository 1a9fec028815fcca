package game

import (
	"math"
	"testing"
)

func TestTypeLadder(t *testing.T) {
	tests := []struct {
		roll   float64
		want   BubbleType
		points int
	}{
		{0.04, Star, 10},
		{0.09, Bomb, -5},
		{0.14, Rainbow, 5},
		{0.50, Normal, 1},
		{0.0, Star, 10},
		{0.05, Bomb, -5},
		{0.10, Rainbow, 5},
		{0.15, Normal, 1},
	}
	for _, tt := range tests {
		got := TypeForRoll(tt.roll)
		if got != tt.want {
			t.Errorf("TypeForRoll(%v) = %v, want %v", tt.roll, got, tt.want)
		}
		if p := ResolvePoints(got, false); p != tt.points {
			t.Errorf("ResolvePoints(%v) = %d, want %d", got, p, tt.points)
		}
	}
}

func TestForcedNegativeOverridesType(t *testing.T) {
	for _, bt := range []BubbleType{Normal, Star, Bomb, Rainbow} {
		if p := ResolvePoints(bt, true); p != NegativePoints {
			t.Errorf("forced negative %v = %d, want %d", bt, p, NegativePoints)
		}
	}
}

func TestNewBubbleDrawsLadderOnce(t *testing.T) {
	cfg := testConfig()
	tests := []struct {
		name     string
		typeRoll float64
		negRoll  float64
		chance   float64
		wantType BubbleType
		wantPts  int
		wantNeg  bool
	}{
		{"star", 0.04, 0.9, 0.1, Star, 10, false},
		{"bomb", 0.09, 0.9, 0.1, Bomb, -5, false},
		{"normal", 0.50, 0.9, 0.1, Normal, 1, false},
		{"star forced negative", 0.04, 0.05, 0.1, Star, -5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := cfg.Modes.Zen
			m.NegativeBubbleChance = tt.chance
			rng := &seqRand{vals: []float64{0.5, 0.5, 0.0, tt.typeRoll, tt.negRoll}, fallback: 0.5}
			b := NewBubble(rng, Bounds{Width: 400, Height: 600}, BubbleParams{Mode: m})
			if b.Type() != tt.wantType || b.Points() != tt.wantPts || b.ForcedNegative() != tt.wantNeg {
				t.Fatalf("got type=%v points=%d neg=%v", b.Type(), b.Points(), b.ForcedNegative())
			}
			if tt.wantNeg && b.Color() != negativeColor {
				t.Errorf("forced negative bubble not recolored")
			}
		})
	}
}

func TestNewBubblePlacement(t *testing.T) {
	m := testConfig().Modes.Zen
	bounds := Bounds{Width: 400, Height: 600}
	for _, roll := range []float64{0, 0.25, 0.5, 0.999} {
		rng := &seqRand{vals: []float64{roll, roll}, fallback: 0.5}
		b := NewBubble(rng, bounds, BubbleParams{Mode: m})
		r := b.Radius()
		if r < m.MinSize || r > m.MaxSize {
			t.Errorf("radius %v outside [%v, %v]", r, m.MinSize, m.MaxSize)
		}
		if b.Pos().Y != bounds.Height+r {
			t.Errorf("y = %v, want %v", b.Pos().Y, bounds.Height+r)
		}
		x := b.Pos().X
		if x < r || x > bounds.Width-r {
			t.Errorf("x = %v clips the edge (r=%v)", x, r)
		}
		usable := bounds.Width * m.SpawnWidthFraction
		left := (bounds.Width - usable) / 2
		if x < left || x > left+usable {
			t.Errorf("x = %v outside centered spawn band [%v, %v]", x, left, left+usable)
		}
	}
}

func TestSpeedForClampsToMax(t *testing.T) {
	m := testConfig().Modes.Fast
	if got := SpeedFor(m, 0); got != m.BaseSpeed {
		t.Errorf("SpeedFor(0) = %v", got)
	}
	if got := SpeedFor(m, -50); got != m.BaseSpeed {
		t.Errorf("negative score changed speed: %v", got)
	}
	if got := SpeedFor(m, 100000); got != m.MaxSpeed {
		t.Errorf("SpeedFor(huge) = %v, want %v", got, m.MaxSpeed)
	}
}

func TestBubbleUpdateExitsTop(t *testing.T) {
	b := &Bubble{pos: Point{X: 50, Y: 25}, radius: 10, speed: 5}
	bounds := Bounds{Width: 100, Height: 100}
	steps := 0
	for !b.Update(bounds) {
		steps++
		if steps > 100 {
			t.Fatal("bubble never exited")
		}
	}
	// 25 - 5n + 10 < 0 first holds at n = 8.
	if steps+1 != 8 {
		t.Errorf("exited after %d updates, want 8", steps+1)
	}
}

func TestRainbowCyclesColor(t *testing.T) {
	rng := &seqRand{vals: []float64{0.5, 0.5, 0.0, 0.12, 0.9, 0.0}, fallback: 0.5}
	b := NewBubble(rng, Bounds{Width: 400, Height: 600}, BubbleParams{Mode: testConfig().Modes.Zen})
	if b.Type() != Rainbow {
		t.Fatalf("type = %v", b.Type())
	}
	before := b.Color()
	b.Update(Bounds{Width: 400, Height: 600})
	if b.Color() == before {
		t.Error("rainbow color did not change")
	}
}

func TestHitTestBoundary(t *testing.T) {
	b := &Bubble{pos: Point{X: 100, Y: 100}, radius: 20}
	if !b.HitTest(Point{X: 100, Y: 124}, 1.2) {
		t.Error("distance 24 should hit with multiplier 1.2")
	}
	if b.HitTest(Point{X: 100, Y: 125}, 1.2) {
		t.Error("distance 25 should miss with multiplier 1.2")
	}
}

func TestBubbleValid(t *testing.T) {
	tests := []struct {
		name string
		b    *Bubble
		want bool
	}{
		{"ok", &Bubble{pos: Point{X: 1, Y: 1}, radius: 5}, true},
		{"nil", nil, false},
		{"nan x", &Bubble{pos: Point{X: math.NaN(), Y: 1}, radius: 5}, false},
		{"inf y", &Bubble{pos: Point{X: 1, Y: math.Inf(1)}, radius: 5}, false},
		{"zero radius", &Bubble{pos: Point{X: 1, Y: 1}}, false},
	}
	for _, tt := range tests {
		if got := tt.b.Valid(); got != tt.want {
			t.Errorf("%s: Valid() = %v", tt.name, got)
		}
	}
}
