package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"

	"bubblepop/internal/game"
)

// gradientRings is how many concentric fills approximate a radial gradient.
const gradientRings = 8

type opKind int

const (
	opFill opKind = iota
	opStroke
)

type drawOp struct {
	kind    opKind
	x, y, r float64
	width   float64
	color   color.Color
}

// retainedSurface records the primitives of one tick and replays them on
// every Draw. ebiten draws at its own cadence; between ticks the last frame
// is shown again.
type retainedSurface struct {
	bounds game.Bounds
	ops    []drawOp
}

func newRetainedSurface(w, h float64) *retainedSurface {
	return &retainedSurface{bounds: game.Bounds{Width: w, Height: h}}
}

func (s *retainedSurface) Bounds() game.Bounds { return s.bounds }
func (s *retainedSurface) Clear()              { s.ops = s.ops[:0] }

func (s *retainedSurface) Resize(w, h float64) {
	if w > 0 && h > 0 {
		s.bounds = game.Bounds{Width: w, Height: h}
	}
}

func (s *retainedSurface) FillCircle(x, y, r float64, c color.Color) {
	s.ops = append(s.ops, drawOp{kind: opFill, x: x, y: y, r: r, color: c})
}

func (s *retainedSurface) StrokeCircle(x, y, r, width float64, c color.Color) {
	s.ops = append(s.ops, drawOp{kind: opStroke, x: x, y: y, r: r, width: width, color: c})
}

// FillGradientCircle lays shrinking discs from the rim inwards, blending
// from outer to inner. The innermost disc sits up and left of the center
// so the highlight reads as a light source.
func (s *retainedSurface) FillGradientCircle(x, y, r float64, inner, outer color.Color) {
	for i, c := range gradientRamp(inner, outer, gradientRings) {
		t := float64(i) / gradientRings
		shift := r * 0.3 * t
		s.ops = append(s.ops, drawOp{kind: opFill, x: x - shift, y: y - shift, r: r * (1 - 0.9*t), color: c})
	}
}

// gradientRamp returns n colors from outer to inner.
func gradientRamp(inner, outer color.Color, n int) []color.Color {
	in, ok1 := colorful.MakeColor(inner)
	out, ok2 := colorful.MakeColor(outer)
	if !ok1 || !ok2 {
		return []color.Color{outer}
	}
	_, _, _, ia := inner.RGBA()
	_, _, _, oa := outer.RGBA()
	ramp := make([]color.Color, n)
	for i := range ramp {
		t := float64(i) / float64(n)
		r, g, b := out.BlendRgb(in, t).Clamped().RGB255()
		a := float64(oa) + (float64(ia)-float64(oa))*t
		ramp[i] = color.NRGBA{R: r, G: g, B: b, A: uint8(a / 0xffff * 255)}
	}
	return ramp
}

// Replay draws the recorded ops onto dst.
func (s *retainedSurface) Replay(dst *ebiten.Image) {
	for _, op := range s.ops {
		switch op.kind {
		case opFill:
			vector.DrawFilledCircle(dst, float32(op.x), float32(op.y), float32(op.r), op.color, true)
		case opStroke:
			vector.StrokeCircle(dst, float32(op.x), float32(op.y), float32(op.r), float32(op.width), op.color, true)
		}
	}
}
