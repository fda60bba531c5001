//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package nonplanar

import (
	"fmt"
	"math"
)

type ErrUnknownWaveform string

func (e ErrUnknownWaveform) Error() string {
	return fmt.Sprintf("waveform '%s' unknown", string(e))
}

// Waveform selects the periodic function used for Z modulation.
type Waveform int

const (
	WaveSine = Waveform(iota)
	WaveTriangle
	WaveTrapezoid
	WaveSawtooth
)

var waveformNames = map[string]Waveform{
	"sine":        WaveSine,
	"triangle":    WaveTriangle,
	"trapezoidal": WaveTrapezoid,
	"sawtooth":    WaveSawtooth,
}

func ParseWaveform(name string) (wf Waveform, err error) {
	wf, found := waveformNames[name]
	if !found {
		err = ErrUnknownWaveform(name)
	}

	return
}

func (wf Waveform) String() (name string) {
	for n, w := range waveformNames {
		if w == wf {
			name = n
			return
		}
	}

	name = fmt.Sprintf("Waveform(%d)", int(wf))

	return
}

// WaveFunc maps a phase in [0,1) to a signed unit amplitude in [-1,1].
type WaveFunc func(phase float64) float64

// Fraction of the trapezoid period spent flat at each extreme.
const trapezoidFlat = 0.25

func sineWave(t float64) float64 {
	return math.Sin(2 * math.Pi * t)
}

func triangleWave(t float64) float64 {
	if t < 0.5 {
		return -1.0 + 4.0*t
	}
	return 3.0 - 4.0*t
}

// trapezoidWave holds flat for trapezoidFlat of the period at each extreme,
// with the top flat centered on phase 0.5 and the bottom flat split across
// the wrap, keeping the wave symmetric about 0.5 and continuous at wrap.
func trapezoidWave(t float64) float64 {
	half := trapezoidFlat / 2.0
	ramp := 0.5 - trapezoidFlat

	switch {
	case t < half:
		return -1.0
	case t < half+ramp:
		return -1.0 + 2.0*(t-half)/ramp
	case t < half+ramp+trapezoidFlat:
		return 1.0
	case t < 1.0-half:
		return 1.0 - 2.0*(t-(half+ramp+trapezoidFlat))/ramp
	default:
		return -1.0
	}
}

// sawtoothWave snaps from -1 back to +1 at the wrap boundary; the other
// waveforms are continuous there.
func sawtoothWave(t float64) float64 {
	return 1.0 - 2.0*t
}

// Func resolves the waveform to its implementation once, so the per-point
// hot path never dispatches on the selector.
func (wf Waveform) Func() (fn WaveFunc) {
	switch wf {
	case WaveTriangle:
		fn = triangleWave
	case WaveTrapezoid:
		fn = trapezoidWave
	case WaveSawtooth:
		fn = sawtoothWave
	default:
		fn = sineWave
	}

	return
}

// wrapPhase reduces a phase to [0,1), mapping negatives onto the same cycle.
func wrapPhase(phase float64) float64 {
	phase -= math.Floor(phase)
	if phase >= 1.0 {
		phase = 0.0
	}
	return phase
}
