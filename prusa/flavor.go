//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Marker vocabulary of PrusaSlicer output. Also the fallback flavor when
// no generator tag is found.
package prusa

import (
	"github.com/printmod/nonplanar"
)

func Flavor() (flavor *nonplanar.Flavor) {
	flavor = &nonplanar.Flavor{
		Name:       nonplanar.FlavorPrusa,
		TypePrefix: ";TYPE:",

		Infill: []string{";TYPE:Internal infill"},
		SolidInfill: []string{
			";TYPE:Solid infill",
			";TYPE:Top solid infill",
			";TYPE:Bridge infill",
		},
		Perimeter:         []string{";TYPE:Perimeter"},
		ExternalPerimeter: []string{";TYPE:External perimeter"},

		LayerMarkers:  []string{";AFTER_LAYER_CHANGE", ";LAYER_CHANGE"},
		GeneratorTags: []string{"PrusaSlicer"},
	}

	return
}
