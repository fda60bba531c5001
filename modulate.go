//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package nonplanar

import (
	"fmt"
	"math"
)

// Modulator injects periodic Z modulation into eligible move blocks of a
// sliced file, with matching extrusion compensation. One Modulator can
// process any number of files; all per-file state lives in the run.
type Modulator struct {
	Flavor *Flavor

	Walls  ModulationConfig // perimeters and external perimeters
	Infill ModulationConfig

	IncludePerimeters         bool
	IncludeExternalPerimeters bool
	IncludeInfill             bool
}

const (
	classWalls = iota
	classInfill
	classCount
)

type rampState struct {
	started bool
	layer   int
	applied float64
}

// modRun is the mutable state of one processing pass.
type modRun struct {
	mod     *Modulator
	tracker *Tracker
	tracer  Tracer

	wallFn   WaveFunc
	infillFn WaveFunc

	pos    Point // last known planar position; Z unused
	hasPos bool

	// Z the nozzle was last left at by a modulated move, for 3D length
	// compensation across continuous extrusion runs.
	lastZ      float64
	lastZValid bool

	loopIndex    int
	loopExtruded bool
	ramp         [classCount]rampState
}

// Validate checks the configuration of every enabled region class. A
// disabled class may hold a zero config.
func (mod *Modulator) Validate() (err error) {
	if mod.IncludePerimeters || mod.IncludeExternalPerimeters {
		err = mod.Walls.Validate()
		if err != nil {
			return
		}
	}

	if mod.IncludeInfill {
		err = mod.Infill.Validate()
		if err != nil {
			return
		}
	}

	return
}

// Process rewrites a file's lines, modulating eligible extrusion moves and
// passing everything else through verbatim. Configuration errors abort
// before any line is processed, so output is all-or-nothing.
func (mod *Modulator) Process(lines []string) (out []string, err error) {
	err = mod.Validate()
	if err != nil {
		return
	}

	run := &modRun{
		mod:      mod,
		tracker:  NewTracker(mod.Flavor, lines),
		tracer:   defaultTracer,
		wallFn:   mod.Walls.Waveform.Func(),
		infillFn: mod.Infill.Waveform.Func(),
	}

	out = make([]string, 0, len(lines))
	for num, raw := range lines {
		out = run.processLine(out, num, raw)
	}

	return
}

func (run *modRun) processLine(out []string, num int, raw string) []string {
	line, err := ParseLine(raw)
	if err != nil {
		// Fail open: report and never corrupt the file.
		run.tracer.Trace(num, EventMalformedLine, err.Error())
		return append(out, raw)
	}

	if !line.IsMove {
		before := run.tracker.Region()
		run.tracker.Observe(line)
		after := run.tracker.Region()
		if after != before {
			run.tracer.Trace(num, EventRegionChange, after.String())
			run.lastZValid = false
			if after.IsWall() {
				run.loopIndex = 0
				run.loopExtruded = false
			}
		}
		return append(out, raw)
	}

	layerBefore := run.tracker.Layer()
	run.tracker.Observe(line)
	if run.tracker.Layer() != layerBefore {
		run.tracer.Trace(num, EventLayerChange, fmt.Sprintf("layer %d z %.3f", run.tracker.Layer(), run.tracker.Z()))
		run.lastZValid = false
	}

	if line.IsTravel() {
		run.updatePos(line)
		run.lastZValid = false
		if run.tracker.Region().IsWall() && run.loopExtruded {
			// A travel after a loop's extrusions starts the next loop.
			// Travels before the first extrusion (slicers often emit the
			// approach travel before the region marker) do not count.
			run.loopIndex++
			run.loopExtruded = false
		}
		return append(out, raw)
	}

	region := run.tracker.Region()
	if region.IsWall() && line.HasE {
		run.loopExtruded = true
	}
	if !run.eligible(&line, region) {
		if line.HasX || line.HasY {
			run.updatePos(line)
			run.lastZValid = false
		}
		return append(out, raw)
	}

	return run.modulateMove(out, num, line, region)
}

func (run *modRun) eligible(line *Line, region Region) bool {
	if !line.HasE || !(line.HasX || line.HasY) || !run.hasPos {
		// An extrusion with no prior position has nothing to segment
		// from; the pass-through path records it as the new position.
		return false
	}

	mod := run.mod
	switch region {
	case RegionPerimeter:
		return mod.IncludePerimeters
	case RegionExternalPerimeter:
		return mod.IncludeExternalPerimeters
	case RegionInfill:
		return mod.IncludeInfill
	}

	return false
}

func (run *modRun) updatePos(line Line) {
	if line.HasX {
		run.pos.X = line.X
	}
	if line.HasY {
		run.pos.Y = line.Y
	}
	run.hasPos = true
}

func (run *modRun) classFor(region Region) (class int, cfg *ModulationConfig, fn WaveFunc) {
	if region == RegionInfill {
		return classInfill, &run.mod.Infill, run.infillFn
	}
	return classWalls, &run.mod.Walls, run.wallFn
}

// modulateMove subdivides one eligible extrusion move, perturbs Z along it,
// and rescales each sub-segment's extrusion by true 3D length over planar
// length.
func (run *modRun) modulateMove(out []string, num int, line Line, region Region) []string {
	z := run.tracker.Z()

	to := Point{X: run.pos.X, Y: run.pos.Y, Z: z}
	if line.HasX {
		to.X = line.X
	}
	if line.HasY {
		to.Y = line.Y
	}

	move := Move{
		From: Point{X: run.pos.X, Y: run.pos.Y, Z: z},
		To:   to,
		E:    line.E,
	}

	planar := move.PlanarLength()
	if planar == 0 {
		// Degenerate; emit nothing new.
		run.updatePos(line)
		return append(out, line.Raw)
	}

	class, cfg, fn := run.classFor(region)
	applied := run.appliedAmplitude(class, cfg)

	invert := cfg.AlternateLoops && region.IsWall() && run.loopIndex%2 == 1

	prevZ := z
	if run.lastZValid {
		prevZ = run.lastZ
	}

	segs := SegmentMove(move, cfg.Resolution)
	for n, seg := range segs {
		phase := cfg.Frequency * cfg.Direction.Project(seg.To.X, seg.To.Y)
		if invert {
			phase += 0.5
		}

		zmod := seg.To.Z + applied*fn(wrapPhase(phase))

		segPlanar := seg.From.PlanarDistance(seg.To)
		eAdj := seg.E * math.Hypot(segPlanar, zmod-prevZ) / segPlanar

		comment := ""
		if n == len(segs)-1 {
			comment = line.Comment
		}

		out = append(out, moveLine(Point{X: seg.To.X, Y: seg.To.Y, Z: zmod},
			eAdj, true, line.F, line.HasF && n == 0, comment))

		prevZ = zmod
	}

	run.tracer.Trace(num, EventMoveModulated,
		fmt.Sprintf("%s %d segments amplitude %.4f", region, len(segs), applied))

	run.pos = Point{X: to.X, Y: to.Y}
	run.hasPos = true
	run.lastZ = prevZ
	run.lastZValid = true

	return out
}

// appliedAmplitude resolves the amplitude in effect for a region class on
// the current layer: the configured amplitude damped by solid-infill
// proximity, with the layer-to-layer change bounded by MaxStep of the raw
// amplitude. A layer at proximity 1.0 is forced to zero outright; damping
// wins over ramp smoothness there. The first touched layer starts at its
// target, since there is no previous layer to ramp from.
func (run *modRun) appliedAmplitude(class int, cfg *ModulationConfig) float64 {
	st := &run.ramp[class]
	layer := run.tracker.Layer()

	prox := run.tracker.Proximity()
	target := 0.0
	if prox < 1.0 {
		target = cfg.Amplitude * (1.0 - prox)
	}

	if !st.started {
		st.started = true
		st.layer = layer
		st.applied = target
		return st.applied
	}

	if layer != st.layer {
		steps := layer - st.layer
		if steps < 0 {
			steps = -steps
		}
		limit := cfg.MaxStep * cfg.Amplitude * float64(steps)

		delta := target - st.applied
		if delta > limit {
			delta = limit
		} else if delta < -limit {
			delta = -limit
		}
		st.applied += delta

		if prox >= 1.0 {
			st.applied = 0
		}
		st.layer = layer
	}

	return st.applied
}
