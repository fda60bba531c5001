//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package nonplanar

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

const (
	// DefaultLayerHeight is the fallback when the file header does not
	// declare one and the Z deltas are inconclusive. Policy input, not
	// physics.
	DefaultLayerHeight = 0.2

	// zEpsilon separates real layer changes from numeric noise.
	zEpsilon = 0.01

	// proximityWindow is how many layer heights the solid-infill damping
	// reaches when a layer is bounded by solid infill on one side only.
	proximityWindow = 4
)

// Tracker follows the region and layer state of a file as lines stream by.
// It is pure annotation: observing a line never changes the output.
type Tracker struct {
	Flavor      *Flavor
	LayerHeight float64

	region Region
	layer  int
	z      float64
	sawZ   bool

	baseZ    float64 // Z of the last extrusion, the committed layer height
	hasBaseZ bool

	solidZs []float64 // ascending Z heights containing solid infill
}

// NewTracker prescans the file for the nominal layer height and the Z
// heights of solid-infill regions, then starts with everything untagged:
// moves before any marker classify as RegionOther.
func NewTracker(flavor *Flavor, lines []string) (tr *Tracker) {
	tr = &Tracker{
		Flavor:      flavor,
		LayerHeight: detectLayerHeight(lines),
	}

	seen := map[float64]bool{}
	z := 0.0
	for _, raw := range lines {
		line, err := ParseLine(raw)
		if err == nil && line.IsMove && line.HasZ {
			z = line.Z
		}

		region, ok := flavor.Classify(raw)
		if ok && region == RegionSolidInfill && !seen[z] {
			seen[z] = true
			tr.solidZs = append(tr.solidZs, z)
		}
	}
	sort.Float64s(tr.solidZs)

	return
}

// Observe updates region/layer state from one line. Unknown lines leave
// the previously active region in place.
func (tr *Tracker) Observe(line Line) {
	if line.IsMove {
		if line.HasZ {
			tr.z = line.Z
			tr.sawZ = true
		}
		if line.HasE && tr.sawZ {
			tr.commitLayer()
		}
		return
	}

	region, ok := tr.Flavor.Classify(line.Raw)
	if ok {
		tr.region = region
	}
}

// commitLayer advances the layer index when extrusion happens at a raised
// Z. A Z rise that is retraced before any extrusion (a Z-hop travel) never
// advances the counter. Extrusion more than one layer height up advances by
// the corresponding number of layers, so ramp limiting sees skipped layers.
func (tr *Tracker) commitLayer() {
	if tr.hasBaseZ && tr.z > tr.baseZ+zEpsilon {
		steps := int(math.Round((tr.z - tr.baseZ) / tr.LayerHeight))
		if steps < 1 {
			steps = 1
		}
		tr.layer += steps
	}

	if !tr.hasBaseZ || math.Abs(tr.z-tr.baseZ) > zEpsilon {
		tr.baseZ = tr.z
		tr.hasBaseZ = true
	}
}

// Region is the tag of the currently active region.
func (tr *Tracker) Region() Region {
	return tr.region
}

// Layer is the 0-based index of the current layer.
func (tr *Tracker) Layer() int {
	return tr.layer
}

// Z is the current nominal layer Z.
func (tr *Tracker) Z() float64 {
	return tr.z
}

// Proximity is the closeness of the current layer to the nearest
// solid-infill layer, in [0,1]: exactly 1.0 on a solid-infill layer,
// decaying to 0 midway between two, or over proximityWindow layer heights
// when solid infill exists on one side only.
func (tr *Tracker) Proximity() (prox float64) {
	if len(tr.solidZs) == 0 {
		return
	}

	n := sort.SearchFloat64s(tr.solidZs, tr.z-zEpsilon)
	if n < len(tr.solidZs) && math.Abs(tr.solidZs[n]-tr.z) <= zEpsilon {
		prox = 1.0
		return
	}

	var below, above float64
	hasBelow := n > 0
	hasAbove := n < len(tr.solidZs)
	if hasBelow {
		below = tr.z - tr.solidZs[n-1]
	}
	if hasAbove {
		above = tr.solidZs[n] - tr.z
	}

	switch {
	case hasBelow && hasAbove:
		half := (below + above) / 2.0
		prox = 1.0 - math.Min(below, above)/half
	case hasBelow:
		prox = 1.0 - below/(proximityWindow*tr.LayerHeight)
	default:
		prox = 1.0 - above/(proximityWindow*tr.LayerHeight)
	}

	if prox < 0 {
		prox = 0
	}

	return
}

// detectLayerHeight reads the slicer's layer_height header comment, falling
// back to the most common positive Z delta, then to DefaultLayerHeight.
func detectLayerHeight(lines []string) (height float64) {
	for _, raw := range lines {
		value, ok := layerHeightComment(raw)
		if ok {
			height = value
			return
		}
	}

	counts := map[float64]int{}
	lastZ := math.NaN()
	for _, raw := range lines {
		line, err := ParseLine(raw)
		if err != nil || !line.IsMove || !line.HasZ {
			continue
		}
		if !math.IsNaN(lastZ) {
			delta := math.Round((line.Z-lastZ)*1000) / 1000
			if delta > zEpsilon {
				counts[delta]++
			}
		}
		lastZ = line.Z
	}

	height = DefaultLayerHeight
	best := 0
	for delta, count := range counts {
		if count > best || (count == best && delta < height) {
			height = delta
			best = count
		}
	}

	return
}

// layerHeightComment parses "; layer_height = 0.2" style header comments,
// tolerating the ':' separator some slicers emit.
func layerHeightComment(raw string) (height float64, ok bool) {
	lower := strings.TrimSpace(strings.ToLower(raw))
	if !strings.HasPrefix(lower, ";") {
		return
	}

	// "first_layer_height" must not match.
	lower = strings.TrimLeft(lower, "; \t")
	if !strings.HasPrefix(lower, "layer_height") {
		return
	}

	rest := lower[len("layer_height"):]
	rest = strings.TrimLeft(rest, " \t")
	if len(rest) == 0 || (rest[0] != '=' && rest[0] != ':') {
		return
	}
	rest = strings.TrimLeft(rest[1:], " \t")

	end := 0
	for end < len(rest) && (rest[end] == '.' || rest[end] == '-' || (rest[end] >= '0' && rest[end] <= '9')) {
		end++
	}

	value, err := strconv.ParseFloat(rest[:end], 64)
	if err != nil || value <= 0 {
		return
	}

	height, ok = value, true

	return
}
