//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Marker vocabulary of BambuStudio output.
package bambu

import (
	"github.com/printmod/nonplanar"
)

func Flavor() (flavor *nonplanar.Flavor) {
	flavor = &nonplanar.Flavor{
		Name:       nonplanar.FlavorBambu,
		TypePrefix: "; FEATURE:",

		Infill: []string{"; FEATURE: Sparse infill", "; FEATURE: Internal infill"},
		SolidInfill: []string{
			"; FEATURE: Solid infill",
			"; FEATURE: Top surface",
			"; FEATURE: Bridge infill",
		},
		Perimeter:         []string{"; FEATURE: Inner wall"},
		ExternalPerimeter: []string{"; FEATURE: Outer wall"},

		LayerMarkers:  []string{"; CHANGE_LAYER"},
		GeneratorTags: []string{"BambuStudio"},
	}

	return
}
