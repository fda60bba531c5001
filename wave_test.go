//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package nonplanar

import (
	"testing"

	"math"
)

const wrapEps = 1e-9

func TestWaveContinuityAtWrap(t *testing.T) {
	table := []struct {
		wf         Waveform
		continuous bool
	}{
		{WaveSine, true},
		{WaveTriangle, true},
		{WaveTrapezoid, true},
		{WaveSawtooth, false},
	}

	for _, item := range table {
		fn := item.wf.Func()
		gap := math.Abs(fn(0.0) - fn(1.0-wrapEps))

		if item.continuous && gap > 1e-6 {
			t.Errorf("%v: wrap gap %v, expected continuity", item.wf, gap)
		}
		if !item.continuous && gap < 1.0 {
			t.Errorf("%v: wrap gap %v, expected snap-back", item.wf, gap)
		}
	}
}

func TestWaveRange(t *testing.T) {
	for _, wf := range []Waveform{WaveSine, WaveTriangle, WaveTrapezoid, WaveSawtooth} {
		fn := wf.Func()
		for n := 0; n < 1000; n++ {
			phase := float64(n) / 1000.0
			value := fn(phase)
			if value < -1.0 || value > 1.0 {
				t.Fatalf("%v: f(%v) = %v outside [-1,1]", wf, phase, value)
			}
		}
	}
}

func TestWaveSymmetry(t *testing.T) {
	for _, wf := range []Waveform{WaveTriangle, WaveTrapezoid} {
		fn := wf.Func()
		for n := 1; n < 500; n++ {
			d := float64(n) / 1000.0
			lo, hi := fn(0.5-d), fn(0.5+d)
			if math.Abs(lo-hi) > 1e-9 {
				t.Fatalf("%v: f(0.5-%v)=%v f(0.5+%v)=%v, expected symmetry about 0.5",
					wf, d, lo, d, hi)
			}
		}
	}
}

func TestWaveShapes(t *testing.T) {
	table := []struct {
		wf    Waveform
		phase float64
		value float64
	}{
		{WaveSine, 0.0, 0.0},
		{WaveSine, 0.25, 1.0},
		{WaveSine, 0.75, -1.0},
		{WaveTriangle, 0.0, -1.0},
		{WaveTriangle, 0.25, 0.0},
		{WaveTriangle, 0.5, 1.0},
		{WaveTrapezoid, 0.0, -1.0},
		{WaveTrapezoid, 0.5, 1.0},
		{WaveTrapezoid, 0.4, 1.0},  // inside the top flat
		{WaveTrapezoid, 0.95, -1.0}, // inside the bottom flat
		{WaveSawtooth, 0.0, 1.0},
		{WaveSawtooth, 0.5, 0.0},
	}

	for _, item := range table {
		got := item.wf.Func()(item.phase)
		if math.Abs(got-item.value) > 1e-9 {
			t.Errorf("%v: f(%v) = %v, expected %v", item.wf, item.phase, got, item.value)
		}
	}
}

func TestWaveDeterministic(t *testing.T) {
	for _, wf := range []Waveform{WaveSine, WaveTriangle, WaveTrapezoid, WaveSawtooth} {
		fn := wf.Func()
		for n := 0; n < 100; n++ {
			phase := float64(n) / 100.0
			if fn(phase) != fn(phase) {
				t.Fatalf("%v: f(%v) not deterministic", wf, phase)
			}
		}
	}
}

func TestParseWaveform(t *testing.T) {
	table := map[string]struct {
		wf Waveform
		ok bool
	}{
		"sine":        {WaveSine, true},
		"triangle":    {WaveTriangle, true},
		"trapezoidal": {WaveTrapezoid, true},
		"sawtooth":    {WaveSawtooth, true},
		"square":      {0, false},
	}

	for name, item := range table {
		wf, err := ParseWaveform(name)
		if item.ok && (err != nil || wf != item.wf) {
			t.Errorf("%v: expected %v, got %v (%v)", name, item.wf, wf, err)
		}
		if !item.ok && err == nil {
			t.Errorf("%v: expected error", name)
		}
	}
}

func TestWrapPhase(t *testing.T) {
	table := []struct {
		in  float64
		out float64
	}{
		{0.0, 0.0},
		{0.25, 0.25},
		{1.0, 0.0},
		{2.75, 0.75},
		{-0.25, 0.75},
		{-3.0, 0.0},
	}

	for _, item := range table {
		got := wrapPhase(item.in)
		if math.Abs(got-item.out) > 1e-9 {
			t.Errorf("wrapPhase(%v) = %v, expected %v", item.in, got, item.out)
		}
	}
}

func TestDirectionProject(t *testing.T) {
	diag := 3.0 / math.Sqrt2

	table := []struct {
		dir  Direction
		x, y float64
		out  float64
	}{
		{DirX, 2, 5, 2},
		{DirY, 2, 5, 5},
		{DirXY, 1, 2, diag},
		{DirNegX, 2, 5, -2},
		{DirNegY, 2, 5, -5},
		{DirNegXY, 1, 2, -diag},
	}

	for _, item := range table {
		got := item.dir.Project(item.x, item.y)
		if math.Abs(got-item.out) > 1e-9 {
			t.Errorf("%v.Project(%v,%v) = %v, expected %v", item.dir, item.x, item.y, got, item.out)
		}
	}
}
