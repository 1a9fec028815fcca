package game

import (
	"image/color"
	"time"
)

// Surface is the drawing target handed to the loop. Hosts own the actual
// pixels; the simulation only issues primitives.
type Surface interface {
	Bounds() Bounds
	Clear()
	FillCircle(x, y, r float64, c color.Color)
	StrokeCircle(x, y, r, width float64, c color.Color)
	// FillGradientCircle shades from inner at the upper-left highlight to
	// outer at the rim.
	FillGradientCircle(x, y, r float64, inner, outer color.Color)
}

// Haptics is optional device feedback. Implementations must not block.
type Haptics interface {
	Vibrate(d time.Duration)
}

// ScoreStore persists integer scores by key.
type ScoreStore interface {
	Load(key string) (int, bool, error)
	Save(key string, value int) error
}

// PointerSource tells the scorer how generous the hit area should be.
type PointerSource int

const (
	Mouse PointerSource = iota
	Touch
)

func (s PointerSource) String() string {
	if s == Touch {
		return "touch"
	}
	return "mouse"
}
