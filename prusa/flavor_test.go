//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package prusa

import (
	"testing"

	"github.com/printmod/nonplanar"

	_ "github.com/printmod/nonplanar/bambu"
	_ "github.com/printmod/nonplanar/orca"
)

func TestFlavorMarkers(t *testing.T) {
	fl := Flavor()

	table := map[string]nonplanar.Region{
		";TYPE:Perimeter":          nonplanar.RegionPerimeter,
		";TYPE:External perimeter": nonplanar.RegionExternalPerimeter,
		";TYPE:Internal infill":    nonplanar.RegionInfill,
		";TYPE:Solid infill":       nonplanar.RegionSolidInfill,
		";TYPE:Top solid infill":   nonplanar.RegionSolidInfill,
		";TYPE:Bridge infill":      nonplanar.RegionSolidInfill,
	}

	for raw, expected := range table {
		region, ok := fl.Classify(raw)
		if !ok || region != expected {
			t.Errorf("%v: got (%v, %v), expected %v", raw, region, ok, expected)
		}
	}

	if !fl.IsLayerChange(";LAYER_CHANGE") || !fl.IsLayerChange(";AFTER_LAYER_CHANGE") {
		t.Errorf("layer markers not recognized")
	}
}

func TestDetectFlavor(t *testing.T) {
	table := map[string]struct {
		lines  []string
		flavor string
	}{
		"prusa": {
			lines:  []string{"; generated by PrusaSlicer 2.7.0 on 2024-01-01"},
			flavor: nonplanar.FlavorPrusa,
		},
		"orca": {
			lines: []string{
				"; generated by OrcaSlicer 2.0.0",
				"; gcode_flavor = klipper",
			},
			flavor: nonplanar.FlavorOrca,
		},
		"orca marlin uses bambu markers": {
			lines: []string{
				"; generated by OrcaSlicer 2.0.0",
				"; gcode_flavor = marlin",
			},
			flavor: nonplanar.FlavorBambu,
		},
		"bambu": {
			lines:  []string{"; BambuStudio 1.9.0"},
			flavor: nonplanar.FlavorBambu,
		},
		"unknown falls back to prusa": {
			lines:  []string{"; sliced by SomethingElse"},
			flavor: nonplanar.FlavorPrusa,
		},
	}

	for key, item := range table {
		fl := nonplanar.DetectFlavor(item.lines)
		if fl == nil {
			t.Fatalf("%v: no flavor detected", key)
		}
		if fl.Name != item.flavor {
			t.Errorf("%v: detected '%v', expected '%v'", key, fl.Name, item.flavor)
		}
	}
}

func TestDetectFlavorHeaderLimit(t *testing.T) {
	// Generator tags far past the header must not trigger detection.
	lines := make([]string, 64)
	for n := range lines {
		lines[n] = "; filler"
	}
	lines[50] = "; generated by OrcaSlicer 2.0.0"

	fl := nonplanar.DetectFlavor(lines)
	if fl == nil || fl.Name != nonplanar.FlavorPrusa {
		t.Errorf("expected prusa fallback, got %v", fl)
	}
}
