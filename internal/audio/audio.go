// Package audio produces the CHIP-8 beep through the host speaker.
package audio

import (
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	toneHz     = 440
)

// Beeper plays a square-wave tone while the VM's sound timer runs. The
// streamer stays attached to the speaker and is paused or resumed in
// place, so toggling is cheap per frame.
type Beeper struct {
	ctrl *beep.Ctrl
}

// NewBeeper initializes the speaker and starts a paused tone stream.
func NewBeeper() (*Beeper, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	ctrl := &beep.Ctrl{Streamer: squareWave(sampleRate, toneHz), Paused: true}
	speaker.Play(ctrl)
	return &Beeper{ctrl: ctrl}, nil
}

// Update switches the tone on or off to match the VM's beeping state.
func (b *Beeper) Update(beeping bool) {
	speaker.Lock()
	b.ctrl.Paused = !beeping
	speaker.Unlock()
}

// squareWave returns an endless square-wave streamer at the given
// frequency.
func squareWave(sr beep.SampleRate, freq float64) beep.Streamer {
	period := int(float64(sr) / freq)
	half := period / 2
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := 0.2
			if pos >= half {
				v = -0.2
			}
			samples[i][0] = v
			samples[i][1] = v
			pos = (pos + 1) % period
		}
		return len(samples), true
	})
}
