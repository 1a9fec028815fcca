package game

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"bubblepop/internal/store"
)

func TestFindHitFirstMatchWins(t *testing.T) {
	bubbles := []*Bubble{
		{pos: Point{X: 0, Y: 0}, radius: 10},
		{pos: Point{X: 100, Y: 110}, radius: 30},
		{pos: Point{X: 100, Y: 100}, radius: 20},
	}
	// The pointer sits on the center of the third bubble, but the second
	// comes first in the slice.
	if got := FindHit(bubbles, Point{X: 100, Y: 100}, 1.2); got != 1 {
		t.Fatalf("FindHit = %d, want 1", got)
	}
	if got := FindHit(bubbles, Point{X: 500, Y: 500}, 1.2); got != -1 {
		t.Fatalf("FindHit miss = %d", got)
	}
}

func TestFindHitSkipsInvalid(t *testing.T) {
	bubbles := []*Bubble{
		{pos: Point{X: math.NaN(), Y: 100}, radius: 20},
		nil,
		{pos: Point{X: 100, Y: 100}, radius: -5},
		{pos: Point{X: 100, Y: 100}, radius: 20},
	}
	if got := FindHit(bubbles, Point{X: 100, Y: 100}, 1.2); got != 3 {
		t.Fatalf("FindHit = %d, want 3", got)
	}
	if got := FindHit(bubbles, Point{X: math.Inf(1), Y: 0}, 1.2); got != -1 {
		t.Fatalf("non-finite pointer hit %d", got)
	}
}

func TestAwardPoints(t *testing.T) {
	tests := []struct {
		name     string
		base     int
		doubled  bool
		shielded bool
		mult     float64
		want     int
	}{
		{"plain", 1, false, false, 1, 1},
		{"doubled", 10, true, false, 1, 20},
		{"combo", 5, false, false, 3, 15},
		{"doubled combo", 5, true, false, 2, 20},
		{"negative", -5, false, false, 1, -5},
		{"negative doubled", -5, true, false, 2, -20},
		{"shield absorbs negative", -5, true, true, 4, 0},
		{"shield keeps positive", 10, false, true, 2, 20},
		{"fractional multiplier rounds", 1, false, false, 1.5, 2},
	}
	for _, tt := range tests {
		if got := AwardPoints(tt.base, tt.doubled, tt.shielded, tt.mult); got != tt.want {
			t.Errorf("%s: AwardPoints = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestComboMultiplierRamp(t *testing.T) {
	c := NewCombo(2*time.Second, 3, 4)
	want := []float64{1, 1, 1, 2, 2, 2, 3, 3, 3, 4, 4, 4, 4}
	now := time.Duration(0)
	for i, w := range want {
		now += 500 * time.Millisecond
		if got := c.Register(now); got != w {
			t.Fatalf("hit %d: multiplier %v, want %v", i+1, got, w)
		}
	}
}

func TestComboDecayResetsToBase(t *testing.T) {
	c := NewCombo(2*time.Second, 3, 4)
	now := time.Duration(0)
	for i := 0; i < 10; i++ {
		now += 100 * time.Millisecond
		c.Register(now)
	}
	if c.Multiplier() <= 1 {
		t.Fatalf("combo never built up: %v", c.Multiplier())
	}
	now += 2*time.Second + time.Millisecond
	if c.Active(now) {
		t.Fatal("combo window still open after timeout")
	}
	if got := c.Register(now); got != 1 {
		t.Fatalf("multiplier after gap = %v, want 1", got)
	}
	if c.Count() != 0 {
		t.Fatalf("count after gap = %d", c.Count())
	}
}

func TestComboWindowInclusive(t *testing.T) {
	c := NewCombo(2*time.Second, 1, 4)
	c.Register(0)
	if got := c.Register(2 * time.Second); got != 2 {
		t.Fatalf("hit at exactly the timeout = %v, want 2", got)
	}
}

func TestScoreboardHighScoreIsRunningMax(t *testing.T) {
	st := newFakeStore()
	st.values["hs"] = 7
	sb := NewScoreboard(st, "hs")

	deltas := []int{1, 10, -5, 5, 2, -20, 3, 10}
	maxSeen := 7
	for _, d := range deltas {
		sb.Add(d)
		if sb.Score() > maxSeen {
			maxSeen = sb.Score()
		}
		if sb.HighScore() != maxSeen {
			t.Fatalf("after %+d: high %d, want %d", d, sb.HighScore(), maxSeen)
		}
		if sb.HighScore() < sb.Score() {
			t.Fatalf("high score %d below score %d", sb.HighScore(), sb.Score())
		}
	}
	if st.values["hs"] != maxSeen {
		t.Errorf("persisted %d, want %d", st.values["hs"], maxSeen)
	}
	// Scores run 1, 11, 6, 11, 13, -7, -4, 6: only 11 and 13 beat the record.
	if st.saves != 2 {
		t.Errorf("saves = %d, want 2", st.saves)
	}
}

func TestScoreboardNegativeScore(t *testing.T) {
	sb := NewScoreboard(nil, "hs")
	sb.Add(-5)
	if sb.Score() != -5 || sb.HighScore() != 0 {
		t.Fatalf("score=%d high=%d", sb.Score(), sb.HighScore())
	}
	sb.ResetScore()
	if sb.Score() != 0 {
		t.Fatal("reset kept score")
	}
}

func TestScoreboardDegradesOnStoreFailure(t *testing.T) {
	st := newFakeStore()
	st.saveErr = errStoreDown
	sb := NewScoreboard(st, "hs")
	sb.Add(3)
	sb.Add(3)
	if sb.HighScore() != 6 {
		t.Fatalf("high = %d", sb.HighScore())
	}
	if sb.Persisting() {
		t.Fatal("board still persisting after failure")
	}
	if st.saves != 1 {
		t.Fatalf("kept hammering a failing store: %d saves", st.saves)
	}

}

func TestScoreboardKeepsStoreAfterLoadFailure(t *testing.T) {
	st := newFakeStore()
	st.loadErr = errStoreDown
	sb := NewScoreboard(st, "hs")
	if sb.HighScore() != 0 || !sb.Persisting() {
		t.Fatalf("high=%d persisting=%v", sb.HighScore(), sb.Persisting())
	}
	sb.Add(4)
	if st.saves != 1 || st.values["hs"] != 4 {
		t.Fatalf("saves=%d values=%v", st.saves, st.values)
	}
}

func TestScoreboardRewritesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.json")
	if err := os.WriteFile(path, []byte("{garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	sb := NewScoreboard(store.NewFile(path), "highScore")
	sb.Add(50)

	v, ok, err := store.NewFile(path).Load("highScore")
	if err != nil || !ok || v != 50 {
		t.Fatalf("reload = (%d, %v, %v), want (50, true, nil)", v, ok, err)
	}
	if next := NewScoreboard(store.NewFile(path), "highScore"); next.HighScore() != 50 {
		t.Fatalf("next run high = %d", next.HighScore())
	}
}
