//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/printmod/nonplanar"

	_ "github.com/printmod/nonplanar/bambu"
	_ "github.com/printmod/nonplanar/orca"
	_ "github.com/printmod/nonplanar/prusa"

	"github.com/spf13/pflag"
)

var param struct {
	output    string
	flavor    string
	verbosity int

	includeInfill             bool
	includePerimeters         bool
	includeExternalPerimeters bool

	wallAmplitude   float64
	wallFrequency   float64
	wallDirection   string
	wallFunction    string
	infillAmplitude float64
	infillFrequency float64
	infillDirection string
	infillFunction  string
	maxStepSize     float64
	alternateLoops  bool
	resolution      float64

	shiftWalls          bool
	extrusionMultiplier float64
	wallReorder         bool
}

func init() {
	pflag.StringVarP(&param.output, "output", "o", "", "Output file (default: rewrite input in place)")
	pflag.StringVarP(&param.flavor, "flavor", "s", "", "Slicer flavor (default: auto-detect)")
	pflag.CountVarP(&param.verbosity, "verbose", "v", "Increase verbosity")

	pflag.BoolVar(&param.includeInfill, "include-infill", false, "Apply modulation to sparse infill")
	pflag.BoolVar(&param.includePerimeters, "include-perimeters", false, "Apply modulation to internal perimeters")
	pflag.BoolVar(&param.includeExternalPerimeters, "include-external-perimeters", false, "Apply modulation to external perimeters")

	pflag.Float64Var(&param.wallAmplitude, "wall-amplitude", nonplanar.DefaultAmplitude, "Amplitude for wall modulation (mm)")
	pflag.Float64Var(&param.wallFrequency, "wall-frequency", nonplanar.DefaultFrequency, "Frequency for wall modulation (cycles/mm)")
	pflag.StringVar(&param.wallDirection, "wall-direction", "x", "Wave direction for walls (x, y, xy, negx, negy, negxy)")
	pflag.StringVar(&param.wallFunction, "wall-function", "sine", "Periodic function for walls (sine, triangle, trapezoidal, sawtooth)")
	pflag.Float64Var(&param.infillAmplitude, "infill-amplitude", nonplanar.DefaultAmplitude, "Amplitude for infill modulation (mm)")
	pflag.Float64Var(&param.infillFrequency, "infill-frequency", nonplanar.DefaultFrequency, "Frequency for infill modulation (cycles/mm)")
	pflag.StringVar(&param.infillDirection, "infill-direction", "x", "Wave direction for infill (x, y, xy, negx, negy, negxy)")
	pflag.StringVar(&param.infillFunction, "infill-function", "sine", "Periodic function for infill (sine, triangle, trapezoidal, sawtooth)")
	pflag.Float64Var(&param.maxStepSize, "max-step-size", nonplanar.DefaultMaxStep, "Max amplitude change per layer, fraction of amplitude (0.0-1.0)")
	pflag.BoolVar(&param.alternateLoops, "alternate-loops", false, "Phase-invert the wave on alternate wall loops")
	pflag.Float64Var(&param.resolution, "resolution", nonplanar.DefaultResolution, "Max sub-segment length (mm)")

	pflag.BoolVar(&param.shiftWalls, "shift-walls", false, "Interleave internal walls with half-layer Z shifts")
	pflag.Float64Var(&param.extrusionMultiplier, "extrusion-multiplier", 1.0, "Extrusion multiplier for shifted walls")
	pflag.BoolVar(&param.wallReorder, "wall-reorder", true, "Print planar walls before shifted walls")
}

func readLines(file string) (lines []string, err error) {
	reader, err := os.Open(file)
	if err != nil {
		return
	}
	defer func() { reader.Close() }()

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 256*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	err = scanner.Err()

	return
}

func writeLines(file string, lines []string) (err error) {
	writer, err := os.Create(file)
	if err != nil {
		return
	}
	defer func() { writer.Close() }()

	buffered := bufio.NewWriter(writer)
	for _, line := range lines {
		_, err = buffered.WriteString(line)
		if err != nil {
			return
		}
		err = buffered.WriteByte('\n')
		if err != nil {
			return
		}
	}
	err = buffered.Flush()

	return
}

func wallConfig() (cfg nonplanar.ModulationConfig, err error) {
	cfg = nonplanar.ModulationConfig{
		Amplitude:      param.wallAmplitude,
		Frequency:      param.wallFrequency,
		MaxStep:        param.maxStepSize,
		AlternateLoops: param.alternateLoops,
		Resolution:     param.resolution,
	}

	cfg.Waveform, err = nonplanar.ParseWaveform(param.wallFunction)
	if err != nil {
		return
	}
	cfg.Direction, err = nonplanar.ParseDirection(param.wallDirection)

	return
}

func infillConfig() (cfg nonplanar.ModulationConfig, err error) {
	cfg = nonplanar.ModulationConfig{
		Amplitude:  param.infillAmplitude,
		Frequency:  param.infillFrequency,
		MaxStep:    param.maxStepSize,
		Resolution: param.resolution,
	}

	cfg.Waveform, err = nonplanar.ParseWaveform(param.infillFunction)
	if err != nil {
		return
	}
	cfg.Direction, err = nonplanar.ParseDirection(param.infillDirection)

	return
}

func evaluate(input string) (err error) {
	lines, err := readLines(input)
	if err != nil {
		return
	}

	var flavor *nonplanar.Flavor
	if len(param.flavor) > 0 {
		flavor, err = nonplanar.FlavorByName(param.flavor)
		if err != nil {
			return
		}
	} else {
		flavor = nonplanar.DetectFlavor(lines)
		if flavor == nil {
			err = errors.New("unable to detect slicer flavor")
			return
		}
	}
	TraceVerbosef(VerbosityNotice, "Using slicer flavor '%s'", flavor.Name)

	modulate := param.includeInfill || param.includePerimeters || param.includeExternalPerimeters
	if !modulate && !param.shiftWalls {
		err = errors.New("nothing to do: enable modulation (--include-*) or --shift-walls")
		return
	}

	if modulate {
		mod := &nonplanar.Modulator{
			Flavor:                    flavor,
			IncludePerimeters:         param.includePerimeters,
			IncludeExternalPerimeters: param.includeExternalPerimeters,
			IncludeInfill:             param.includeInfill,
		}
		mod.Walls, err = wallConfig()
		if err != nil {
			return
		}
		mod.Infill, err = infillConfig()
		if err != nil {
			return
		}

		TraceVerbosef(VerbosityNotice, "Modulating %s", input)
		lines, err = mod.Process(lines)
		if err != nil {
			return
		}
	}

	if param.shiftWalls {
		shifter := &nonplanar.Shifter{
			Flavor:              flavor,
			ExtrusionMultiplier: param.extrusionMultiplier,
			Reorder:             param.wallReorder,
		}

		TraceVerbosef(VerbosityNotice, "Shifting walls of %s", input)
		lines, err = shifter.Process(lines)
		if err != nil {
			return
		}
	}

	output := param.output
	if len(output) == 0 {
		output = input
	}
	err = writeLines(output, lines)
	if err != nil {
		return
	}

	TraceVerbosef(VerbosityNotice, "Saved %s", output)

	return
}

func main() {
	pflag.Parse()

	args := pflag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: nonplanar [options] file.gcode")
		pflag.Usage()
		os.Exit(1)
	}

	if param.verbosity >= VerbosityWarning {
		nonplanar.SetTracer(&stderrTracer{})
	}

	err := evaluate(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", args[0], err)
		os.Exit(1)
	}
}
