//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package nonplanar

import (
	"fmt"
	"math"
	"strings"
)

// Shifter raises every other internal perimeter block by half a layer
// height, adjusting extrusion to suit. Optionally reorders each layer's
// walls so non-shifted blocks print before shifted ones.
type Shifter struct {
	Flavor *Flavor

	// ExtrusionMultiplier scales E on shifted blocks. The first layer is
	// always printed at 1.5x and the last at 0.5x to anchor and cap the
	// interleaved walls.
	ExtrusionMultiplier float64

	Reorder bool
}

type shiftRun struct {
	sh     *Shifter
	tracer Tracer

	layerHeight float64
	totalLayers int

	z          float64
	layer      int
	region     Region
	blockCount int
	inBlock    bool
	shifted    bool

	prevMove string
	prevFeed float64
	hasFeed  bool

	current    []string
	shiftedQ   [][]string
	nonshifted [][]string
}

func (sh *Shifter) Validate() (err error) {
	if sh.ExtrusionMultiplier <= 0 || math.IsNaN(sh.ExtrusionMultiplier) {
		err = ErrInvalidConfig("extrusion-multiplier")
	}

	return
}

// Process rewrites a file's lines with alternating wall Z shifts. Only
// internal perimeter blocks are touched; every other line passes through.
func (sh *Shifter) Process(lines []string) (out []string, err error) {
	err = sh.Validate()
	if err != nil {
		return
	}

	run := &shiftRun{
		sh:          sh,
		tracer:      defaultTracer,
		layerHeight: detectLayerHeight(lines),
		totalLayers: countLayers(sh.Flavor, lines),
	}

	out = make([]string, 0, len(lines))
	for num, raw := range lines {
		out = run.processLine(out, num, raw)
	}
	out = run.flush(out)

	// An unterminated block at end of file still has to be printed.
	if len(run.current) > 0 {
		out = append(out, run.current...)
	}

	return
}

// countLayers counts layer transitions. Slicers that emit more than one
// marker per change (PrusaSlicer writes both ;LAYER_CHANGE and
// ;AFTER_LAYER_CHANGE) contribute one transition until the next extrusion.
func countLayers(flavor *Flavor, lines []string) (count int) {
	inChange := false
	for _, raw := range lines {
		if flavor.IsLayerChange(raw) {
			if !inChange {
				count++
				inChange = true
			}
			continue
		}

		line, err := ParseLine(raw)
		if err == nil && line.IsMove && line.HasE {
			inChange = false
		}
	}

	return
}

func (run *shiftRun) processLine(out []string, num int, raw string) []string {
	line, err := ParseLine(raw)
	if err != nil {
		run.tracer.Trace(num, EventMalformedLine, err.Error())
		return run.emit(out, raw)
	}

	if line.IsMove {
		out = run.processMove(out, num, line)
	} else {
		out = run.processMarker(out, line)
	}

	// Remember the last planar position and feed for block preambles.
	if line.IsMove {
		if line.HasX && line.HasY {
			run.prevMove = strings.TrimRight(line.Raw, "\r\n")
		}
		if line.HasF {
			run.prevFeed = line.F
			run.hasFeed = true
		}
	}

	return out
}

func (run *shiftRun) processMarker(out []string, line Line) []string {
	region, ok := run.sh.Flavor.Classify(line.Raw)
	if !ok {
		return run.emit(out, line.Raw)
	}

	switch {
	case region == RegionExternalPerimeter:
		out = run.flush(out)
		run.region = region
	case region == RegionPerimeter:
		run.region = region
		run.current = nil
	default:
		out = run.flush(out)
		run.region = RegionOther
	}
	run.inBlock = false

	return append(out, line.Raw)
}

func (run *shiftRun) processMove(out []string, num int, line Line) []string {
	if line.HasZ && !line.HasE {
		run.z = line.Z
		run.layer = int(math.Floor(run.z/run.layerHeight + 1e-6))
		run.blockCount = 0
		return run.emit(out, line.Raw)
	}

	if run.region != RegionPerimeter {
		return run.emit(out, line.Raw)
	}

	switch {
	case line.HasX && line.HasY && line.HasE:
		if !run.inBlock {
			out = run.openBlock(out, num)
		}
		raw := line.Raw
		if run.shifted {
			raw = run.adjustExtrusion(line)
		}
		return run.emit(out, raw)

	case line.HasX && line.HasY && line.HasF:
		out = run.emit(out, line.Raw)
		if run.inBlock {
			out = run.closeBlock(out)
		}
		return out

	default:
		return run.emit(out, line.Raw)
	}
}

// openBlock starts a new internal perimeter block: odd blocks are shifted
// up half a layer height, even blocks stay planar.
func (run *shiftRun) openBlock(out []string, num int) []string {
	run.blockCount++
	run.inBlock = true
	run.shifted = run.blockCount%2 == 1

	if run.sh.Reorder {
		run.current = nil
		if run.prevMove != "" {
			run.current = append(run.current, run.prevMove+" ; previous position")
			if run.hasFeed {
				run.current = append(run.current, fmt.Sprintf("G1 F%s ; previous feed", formatFeed(run.prevFeed)))
			}
		}
	}

	z := run.z
	detail := fmt.Sprintf("reset Z for block %d", run.blockCount)
	if run.shifted {
		z += run.layerHeight * 0.5
		detail = fmt.Sprintf("shifted Z for block %d", run.blockCount)
	}
	out = run.emit(out, fmt.Sprintf("G1 Z%s ; %s", formatCoord(z), detail))

	run.tracer.Trace(num, EventMoveShifted, detail)

	return out
}

func (run *shiftRun) closeBlock(out []string) []string {
	if run.shifted {
		out = run.emit(out, fmt.Sprintf("G1 Z%s ; restore Z after block %d", formatCoord(run.z), run.blockCount))
	}

	if run.sh.Reorder {
		if run.shifted {
			run.shiftedQ = append(run.shiftedQ, run.current)
		} else {
			run.nonshifted = append(run.nonshifted, run.current)
		}
		run.current = nil
	}
	run.inBlock = false

	return out
}

// adjustExtrusion rescales E on a shifted block's move. First and last
// layers override the configured multiplier to anchor the print to the bed
// and close the top cleanly.
func (run *shiftRun) adjustExtrusion(line Line) string {
	factor := run.sh.ExtrusionMultiplier
	switch {
	case run.layer <= 1:
		factor = 1.5
	case run.totalLayers > 0 && run.layer >= run.totalLayers-1:
		factor = 0.5
	}

	var sb strings.Builder
	sb.WriteString(line.Cmd)
	if line.HasX {
		sb.WriteString(" X")
		sb.WriteString(formatCoord(line.X))
	}
	if line.HasY {
		sb.WriteString(" Y")
		sb.WriteString(formatCoord(line.Y))
	}
	sb.WriteString(" E")
	sb.WriteString(formatExtrusion(line.E * factor))
	if line.HasF {
		sb.WriteString(" F")
		sb.WriteString(formatFeed(line.F))
	}
	if line.Comment != "" {
		sb.WriteString(" ")
		sb.WriteString(line.Comment)
	}

	return sb.String()
}

// emit routes a line into the active wall buffer when reordering, or
// straight to the output.
func (run *shiftRun) emit(out []string, raw string) []string {
	if run.sh.Reorder && run.inBlock {
		run.current = append(run.current, raw)
		return out
	}

	return append(out, raw)
}

// flush drains buffered walls, non-shifted first, so shifted walls always
// print onto their planar neighbors.
func (run *shiftRun) flush(out []string) []string {
	for _, wall := range run.nonshifted {
		out = append(out, wall...)
	}
	for _, wall := range run.shiftedQ {
		out = append(out, wall...)
	}
	run.nonshifted = nil
	run.shiftedQ = nil

	return out
}
