package game

import (
	"testing"
	"time"

	"bubblepop/internal/config"
)

func TestShouldSpawnGate(t *testing.T) {
	ms := time.Millisecond
	tests := []struct {
		name      string
		now, last time.Duration
		interval  time.Duration
		live, max int
		want      bool
	}{
		{"due with room", 1001 * ms, 0, 1000 * ms, 3, 14, true},
		{"exactly interval is not enough", 1000 * ms, 0, 1000 * ms, 3, 14, false},
		{"too soon", 500 * ms, 0, 1000 * ms, 0, 14, false},
		{"at cap", 5000 * ms, 0, 1000 * ms, 14, 14, false},
		{"over cap", 5000 * ms, 0, 1000 * ms, 20, 14, false},
		{"zero cap", 5000 * ms, 0, 1000 * ms, 0, 0, false},
		{"relative to last", 2500 * ms, 2000 * ms, 400 * ms, 1, 2, true},
	}
	for _, tt := range tests {
		if got := ShouldSpawn(tt.now, tt.last, tt.interval, tt.live, tt.max); got != tt.want {
			t.Errorf("%s: ShouldSpawn = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSpawnIntervalRamp(t *testing.T) {
	m := config.Mode{SpawnIntervalMs: 1000, MinSpawnIntervalMs: 600, SpawnDecrementMs: 50, ScoreStep: 10}
	ms := time.Millisecond
	tests := []struct {
		score int
		want  time.Duration
	}{
		{0, 1000 * ms},
		{9, 1000 * ms},
		{10, 950 * ms},
		{35, 850 * ms},
		{80, 600 * ms},
		{1000, 600 * ms},
		{-40, 1000 * ms},
	}
	for _, tt := range tests {
		if got := SpawnInterval(m, tt.score); got != tt.want {
			t.Errorf("SpawnInterval(score=%d) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestGrowthCompoundsFromPreset(t *testing.T) {
	g := NewGrowth(config.Growth{IntervalMs: 10000, Factor: 1.05})
	want := []int{14, 14, 15, 16, 17}
	for step, w := range want {
		if got := g.MaxBubbles(14); got != w {
			t.Errorf("after %d steps MaxBubbles(14) = %d, want %d", step, got, w)
		}
		g.Advance(time.Duration(step+1) * 10 * time.Second)
	}
}

func TestGrowthCapNeverShrinks(t *testing.T) {
	g := NewGrowth(config.Growth{IntervalMs: 10000, Factor: 1.05})
	prev := g.MaxBubbles(14)
	for now := time.Duration(0); now <= 6*time.Hour; now += 10 * time.Second {
		g.Advance(now)
		got := g.MaxBubbles(14)
		if got < prev {
			t.Fatalf("cap fell from %d to %d at %v (step %d)", prev, got, now, g.Steps())
		}
		prev = got
	}
	if prev != maxPopulation {
		t.Fatalf("cap after 6h = %d, want saturation at %d", prev, maxPopulation)
	}

	var s Spawner
	if !s.Tick(0, time.Second, 0, prev) {
		t.Fatal("saturated cap blocked spawning")
	}
}

func TestGrowthAdvanceCatchesUp(t *testing.T) {
	g := NewGrowth(config.Growth{IntervalMs: 10000, Factor: 1.05})
	if n := g.Advance(9999 * time.Millisecond); n != 0 {
		t.Fatalf("early step applied: %d", n)
	}
	if n := g.Advance(35 * time.Second); n != 3 {
		t.Fatalf("steps applied = %d, want 3", n)
	}
	if n := g.Advance(39 * time.Second); n != 0 {
		t.Fatalf("step applied before boundary: %d", n)
	}
	g.Reset()
	if g.Steps() != 0 || g.MaxBubbles(15) != 15 {
		t.Fatal("reset did not restore preset cap")
	}
}

func TestSpawnerFirstFrameAndGate(t *testing.T) {
	var s Spawner
	ms := time.Millisecond
	if !s.Tick(0, 700*ms, 0, 14) {
		t.Fatal("first frame should spawn")
	}
	if s.Tick(700*ms, 700*ms, 1, 14) {
		t.Fatal("spawned at exactly the interval")
	}
	if !s.Tick(701*ms, 700*ms, 1, 14) {
		t.Fatal("did not spawn after the interval")
	}
	if s.Last() != 701*ms {
		t.Fatalf("last = %v", s.Last())
	}
	if s.Tick(5000*ms, 700*ms, 14, 14) {
		t.Fatal("spawned at cap")
	}
	s.Reset()
	if s.Tick(0, 700*ms, 14, 14) {
		t.Fatal("first frame ignored the cap")
	}
}
