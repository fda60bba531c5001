//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Marker vocabulary of OrcaSlicer output. Orca emits Bambu-style markers
// when slicing for the marlin flavor; detection handles that cross-over.
package orca

import (
	"github.com/printmod/nonplanar"
)

func Flavor() (flavor *nonplanar.Flavor) {
	flavor = &nonplanar.Flavor{
		Name:       nonplanar.FlavorOrca,
		TypePrefix: ";TYPE:",

		Infill: []string{";TYPE:Internal infill", ";TYPE:internal infill"},
		SolidInfill: []string{
			";TYPE:Solid infill",
			";TYPE:solid infill",
			";TYPE:Top surface",
			";TYPE:top surface",
		},
		Perimeter:         []string{";TYPE:Inner wall", ";TYPE:inner wall"},
		ExternalPerimeter: []string{";TYPE:Outer wall", ";TYPE:outer wall"},

		LayerMarkers:  []string{";LAYER_CHANGE"},
		GeneratorTags: []string{"OrcaSlicer"},
	}

	return
}
