//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package nonplanar

import (
	"fmt"
	"sort"
	"strings"
)

type ErrUnknownFlavor string

func (e ErrUnknownFlavor) Error() string {
	return fmt.Sprintf("slicer flavor '%s' unknown", string(e))
}

// Region classifies a contiguous run of moves.
type Region int

const (
	RegionOther = Region(iota)
	RegionPerimeter
	RegionExternalPerimeter
	RegionInfill
	RegionSolidInfill
)

func (r Region) String() (name string) {
	switch r {
	case RegionPerimeter:
		name = "perimeter"
	case RegionExternalPerimeter:
		name = "external-perimeter"
	case RegionInfill:
		name = "infill"
	case RegionSolidInfill:
		name = "solid-infill"
	default:
		name = "other"
	}

	return
}

// IsWall reports whether the region is an inner or outer wall.
func (r Region) IsWall() bool {
	return r == RegionPerimeter || r == RegionExternalPerimeter
}

// Flavor is the marker vocabulary one slicer family uses to annotate its
// G-code output.
type Flavor struct {
	Name string

	// TypePrefix marks any region-change comment; lines carrying it but
	// matching none of the marker lists classify as RegionOther.
	TypePrefix string

	Infill            []string
	SolidInfill       []string
	Perimeter         []string
	ExternalPerimeter []string

	// LayerMarkers are comments emitted once per layer change.
	LayerMarkers []string

	// GeneratorTags identify the slicer in the file header.
	GeneratorTags []string
}

// Well-known flavor names, used by detection cross-overs.
const (
	FlavorPrusa = "prusaslicer"
	FlavorOrca  = "orcaslicer"
	FlavorBambu = "bambustudio"
)

var flavorMap map[string]*Flavor

// RegisterFlavor adds a flavor to the detection registry. Flavor packages
// call this from init().
func RegisterFlavor(flavor *Flavor) {
	if flavorMap == nil {
		flavorMap = make(map[string]*Flavor)
	}

	flavorMap[flavor.Name] = flavor
}

func FlavorByName(name string) (flavor *Flavor, err error) {
	flavor, found := flavorMap[name]
	if !found {
		err = ErrUnknownFlavor(name)
	}

	return
}

func FlavorNames() (names []string) {
	for name := range flavorMap {
		names = append(names, name)
	}
	sort.Strings(names)

	return
}

// Classify maps a line to the region its marker announces. ok is false for
// lines that are not region markers at all; unknown markers under the
// flavor's type prefix classify as RegionOther.
func (fl *Flavor) Classify(raw string) (region Region, ok bool) {
	matches := func(markers []string) bool {
		for _, marker := range markers {
			if strings.Contains(raw, marker) {
				return true
			}
		}
		return false
	}

	switch {
	case matches(fl.SolidInfill):
		region, ok = RegionSolidInfill, true
	case matches(fl.Infill):
		region, ok = RegionInfill, true
	case matches(fl.ExternalPerimeter):
		region, ok = RegionExternalPerimeter, true
	case matches(fl.Perimeter):
		region, ok = RegionPerimeter, true
	case fl.TypePrefix != "" && strings.Contains(raw, fl.TypePrefix):
		region, ok = RegionOther, true
	}

	return
}

// IsLayerChange reports whether the line is a layer-change marker.
func (fl *Flavor) IsLayerChange(raw string) bool {
	for _, marker := range fl.LayerMarkers {
		if strings.HasPrefix(raw, marker) {
			return true
		}
	}

	return false
}

// headerLines is how deep into the file generator tags are looked for.
const headerLines = 32

// DetectFlavor scans the file for a generator tag and returns the matching
// registered flavor. OrcaSlicer output with the marlin G-code flavor uses
// BambuStudio's marker set. Returns the PrusaSlicer flavor when nothing
// matches, or nil if that is not registered either.
func DetectFlavor(lines []string) (flavor *Flavor) {
	var name string

	limit := len(lines)
	if limit > headerLines {
		limit = headerLines
	}

scan:
	for _, line := range lines[:limit] {
		for _, fl := range flavorMap {
			for _, tag := range fl.GeneratorTags {
				if strings.Contains(line, tag) {
					name = fl.Name
					break scan
				}
			}
		}
	}

	if name == FlavorOrca && detectGcodeFlavor(lines) == "marlin" {
		name = FlavorBambu
	}

	if name == "" {
		name = FlavorPrusa
	}

	flavor = flavorMap[name]

	return
}

func detectGcodeFlavor(lines []string) (flavor string) {
	for _, line := range lines {
		if strings.HasPrefix(line, "; gcode_flavor =") {
			flavor = strings.TrimSpace(line[strings.Index(line, "=")+1:])
			return
		}
	}

	return
}
