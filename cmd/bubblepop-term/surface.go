package main

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"bubblepop/internal/game"
)

// One terminal cell covers cellW x cellH logical pixels, so the simulation
// runs at the same scale as the desktop host.
const (
	cellW = 8
	cellH = 16
)

var bgStyle = tcell.StyleDefault.Background(tcell.NewRGBColor(24, 24, 28)).Foreground(tcell.ColorWhite)

// cellSurface rasterizes circles onto a tcell screen. A cell is painted
// when its center falls inside the shape; shapes smaller than a cell paint
// the cell under their center.
type cellSurface struct {
	screen tcell.Screen
	bg     colorful.Color
}

func newCellSurface(screen tcell.Screen) *cellSurface {
	return &cellSurface{screen: screen, bg: colorful.Color{R: 24.0 / 255, G: 24.0 / 255, B: 28.0 / 255}}
}

func (s *cellSurface) Bounds() game.Bounds {
	cols, rows := s.screen.Size()
	return game.Bounds{Width: float64(cols * cellW), Height: float64(rows * cellH)}
}

func (s *cellSurface) Clear() {
	s.screen.Fill(' ', bgStyle)
}

func (s *cellSurface) FillCircle(x, y, r float64, c color.Color) {
	fg := tcell.FromImageColor(s.over(c))
	s.cells(x, y, r, func(col, row int, _ float64) {
		_, _, st, _ := s.screen.GetContent(col, row)
		s.screen.SetContent(col, row, '•', nil, st.Foreground(fg))
	})
}

func (s *cellSurface) StrokeCircle(x, y, r, width float64, c color.Color) {
	fg := tcell.FromImageColor(s.over(c))
	band := math.Max(width, cellW/2)
	s.cells(x, y, r+band, func(col, row int, d float64) {
		if d < r-band {
			return
		}
		_, _, st, _ := s.screen.GetContent(col, row)
		s.screen.SetContent(col, row, 'o', nil, st.Foreground(fg))
	})
}

// FillGradientCircle shades each cell by its distance from the center.
func (s *cellSurface) FillGradientCircle(x, y, r float64, inner, outer color.Color) {
	in, ok1 := colorful.MakeColor(s.over(inner))
	out, ok2 := colorful.MakeColor(s.over(outer))
	if !ok1 || !ok2 {
		return
	}
	s.cells(x, y, r, func(col, row int, d float64) {
		t := 1.0
		if r > 0 {
			t = math.Min(d/r, 1)
		}
		bg := tcell.FromImageColor(in.BlendRgb(out, t).Clamped())
		s.screen.SetContent(col, row, ' ', nil, bgStyle.Background(bg))
	})
}

// over composites c onto the background so translucent colors keep their
// fade in a terminal that has no alpha.
func (s *cellSurface) over(c color.Color) color.Color {
	_, _, _, a := c.RGBA()
	if a == 0 {
		return s.bg
	}
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return s.bg
	}
	return s.bg.BlendRgb(cf, float64(a)/0xffff).Clamped()
}

// cells visits every on-screen cell whose center lies within r of (x, y),
// passing the distance.
func (s *cellSurface) cells(x, y, r float64, fn func(col, row int, d float64)) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return
	}
	cols, rows := s.screen.Size()
	c0 := int(math.Floor((x - r) / cellW))
	c1 := int(math.Floor((x + r) / cellW))
	r0 := int(math.Floor((y - r) / cellH))
	r1 := int(math.Floor((y + r) / cellH))
	hit := false
	for row := max(r0, 0); row <= min(r1, rows-1); row++ {
		for col := max(c0, 0); col <= min(c1, cols-1); col++ {
			cx := (float64(col) + 0.5) * cellW
			cy := (float64(row) + 0.5) * cellH
			d := math.Hypot(cx-x, cy-y)
			if d <= r {
				fn(col, row, d)
				hit = true
			}
		}
	}
	if hit {
		return
	}
	col, row := int(math.Floor(x/cellW)), int(math.Floor(y/cellH))
	if col >= 0 && col < cols && row >= 0 && row < rows {
		fn(col, row, 0)
	}
}

// cellCenter maps a terminal cell to the logical pixel at its center.
func cellCenter(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * cellW, (float64(row) + 0.5) * cellH
}
