package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const sampleRate = 44100

type soundKind int

const (
	soundPop soundKind = iota
	soundCombo
	soundNegative
	soundPowerUp
)

type sounds struct {
	ctx     *audio.Context
	players map[soundKind]*audio.Player
}

func newSounds() *sounds {
	ctx := audio.NewContext(sampleRate)
	return &sounds{
		ctx: ctx,
		players: map[soundKind]*audio.Player{
			soundPop:      newBeepPlayer(ctx, 880, 0.08),
			soundCombo:    newBeepPlayer(ctx, 1100, 0.12),
			soundNegative: newBeepPlayer(ctx, 220, 0.25),
			soundPowerUp:  newBeepPlayer(ctx, 660, 0.2),
		},
	}
}

// play restarts the cue; a nil receiver means sound is off.
func (s *sounds) play(k soundKind) {
	if s == nil {
		return
	}
	p := s.players[k]
	if p == nil {
		return
	}
	p.Rewind()
	p.Play()
}

// newBeepPlayer renders a decaying sine as 16-bit stereo PCM.
func newBeepPlayer(ctx *audio.Context, freq float64, durSec float64) *audio.Player {
	return ctx.NewPlayerFromBytes(beepPCM(freq, durSec))
}

func beepPCM(freq, durSec float64) []byte {
	n := int(float64(sampleRate) * durSec)
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		v := int16(math.Sin(2*math.Pi*freq*t) * 4000 * math.Exp(-12*t))
		for ch := 0; ch < 2; ch++ {
			idx := i*4 + ch*2
			buf[idx] = byte(v)
			buf[idx+1] = byte(v >> 8)
		}
	}
	return buf
}
