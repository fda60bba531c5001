//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package nonplanar

import (
	"fmt"
	"math"
)

type ErrUnknownDirection string

func (e ErrUnknownDirection) Error() string {
	return fmt.Sprintf("direction '%s' unknown", string(e))
}

type ErrInvalidConfig string

func (e ErrInvalidConfig) Error() string {
	return fmt.Sprintf("config: parameter '%s' invalid", string(e))
}

// Direction selects the planar axis a point is projected onto when
// computing the wave phase.
type Direction int

const (
	DirX = Direction(iota)
	DirY
	DirXY
	DirNegX
	DirNegY
	DirNegXY
)

var directionNames = map[string]Direction{
	"x":     DirX,
	"y":     DirY,
	"xy":    DirXY,
	"negx":  DirNegX,
	"negy":  DirNegY,
	"negxy": DirNegXY,
}

func ParseDirection(name string) (dir Direction, err error) {
	dir, found := directionNames[name]
	if !found {
		err = ErrUnknownDirection(name)
	}

	return
}

func (dir Direction) String() (name string) {
	for n, d := range directionNames {
		if d == dir {
			name = n
			return
		}
	}

	name = fmt.Sprintf("Direction(%d)", int(dir))

	return
}

// Project maps a planar point to its distance along the configured axis.
// The diagonal variants project onto the unit diagonal (1,1)/sqrt(2), so
// the configured frequency means the same travel distance on every axis.
func (dir Direction) Project(x, y float64) (distance float64) {
	switch dir {
	case DirY:
		distance = y
	case DirXY:
		distance = (x + y) / math.Sqrt2
	case DirNegX:
		distance = -x
	case DirNegY:
		distance = -y
	case DirNegXY:
		distance = -(x + y) / math.Sqrt2
	default:
		distance = x
	}

	return
}

// ModulationConfig is the immutable parameter set for one target region
// class (walls or infill).
type ModulationConfig struct {
	Amplitude float64 // peak Z offset, mm
	Frequency float64 // wave cycles per mm of projected travel
	Waveform  Waveform
	Direction Direction

	// MaxStep bounds the layer-to-layer change of the applied amplitude,
	// as a fraction of Amplitude per layer, in [0,1].
	MaxStep float64

	// AlternateLoops phase-inverts every other wall loop.
	AlternateLoops bool

	Resolution float64 // max planar sub-segment length, mm
}

const (
	DefaultAmplitude  = 0.3
	DefaultFrequency  = 1.1
	DefaultMaxStep    = 0.1
	DefaultResolution = 0.2
)

// Validate rejects parameter values the engine cannot run with. It is
// called before any line is processed; the engine never self-corrects a
// bad parameter mid-run.
func (cfg *ModulationConfig) Validate() (err error) {
	switch {
	case cfg.Amplitude < 0 || math.IsNaN(cfg.Amplitude):
		err = ErrInvalidConfig("amplitude")
	case cfg.Frequency < 0 || math.IsNaN(cfg.Frequency):
		err = ErrInvalidConfig("frequency")
	case cfg.MaxStep < 0 || cfg.MaxStep > 1 || math.IsNaN(cfg.MaxStep):
		err = ErrInvalidConfig("max-step-size")
	case cfg.Resolution <= 0 || math.IsNaN(cfg.Resolution):
		err = ErrInvalidConfig("resolution")
	}

	return
}
