//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// zplot renders the Z profile of one layer of a (typically modulated)
// G-code file into a PNG, for eyeballing waveform output without a
// printer.
package main

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/printmod/nonplanar"

	_ "github.com/printmod/nonplanar/bambu"
	_ "github.com/printmod/nonplanar/orca"
	_ "github.com/printmod/nonplanar/prusa"

	"github.com/spf13/pflag"
	"golang.org/x/image/draw"
)

var param struct {
	input  string
	output string
	layer  int
	width  int
	height int
}

func init() {
	pflag.StringVarP(&param.input, "input", "i", "", "Input G-code file")
	pflag.StringVarP(&param.output, "output", "o", "zplot.png", "Output PNG file")
	pflag.IntVarP(&param.layer, "layer", "l", 0, "Layer index to plot")
	pflag.IntVar(&param.width, "width", 1024, "Output image width")
	pflag.IntVar(&param.height, "height", 256, "Output image height")
}

type sample struct {
	Distance float64 // cumulative planar path distance, mm
	Z        float64
}

// collect walks the file and returns (path distance, Z) samples for every
// extrusion move endpoint on the requested layer.
func collect(lines []string, flavor *nonplanar.Flavor, layer int) (samples []sample) {
	tracker := nonplanar.NewTracker(flavor, lines)

	var pos nonplanar.Point
	hasPos := false
	distance := 0.0

	for _, raw := range lines {
		line, err := nonplanar.ParseLine(raw)
		if err != nil {
			continue
		}
		tracker.Observe(line)

		if !line.IsMove {
			continue
		}

		next := pos
		if line.HasX {
			next.X = line.X
		}
		if line.HasY {
			next.Y = line.Y
		}
		if line.HasZ {
			next.Z = line.Z
		}
		if !(line.HasX || line.HasY) {
			pos = next
			continue
		}

		if hasPos && line.HasE && tracker.Layer() == layer {
			distance += pos.PlanarDistance(next)
			samples = append(samples, sample{Distance: distance, Z: next.Z})
		}

		pos = next
		hasPos = true
	}

	return
}

// render plots the samples as a polyline at double resolution, then scales
// down for mild anti-aliasing.
func render(samples []sample, width, height int) (out *image.RGBA) {
	minZ, maxZ := math.Inf(1), math.Inf(-1)
	maxDist := 0.0
	for _, s := range samples {
		minZ = math.Min(minZ, s.Z)
		maxZ = math.Max(maxZ, s.Z)
		maxDist = math.Max(maxDist, s.Distance)
	}
	if maxZ-minZ < 1e-6 {
		maxZ = minZ + 1e-6
	}
	if maxDist == 0 {
		maxDist = 1
	}

	plot := image.NewRGBA(image.Rect(0, 0, width*2, height*2))
	draw.Draw(plot, plot.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	size := plot.Bounds().Size()
	toXY := func(s sample) (x, y int) {
		x = int(s.Distance / maxDist * float64(size.X-1))
		y = size.Y - 1 - int((s.Z-minZ)/(maxZ-minZ)*float64(size.Y-1))
		return
	}

	ink := color.RGBA{R: 0x20, G: 0x40, B: 0xc0, A: 0xff}
	for n := 1; n < len(samples); n++ {
		x0, y0 := toXY(samples[n-1])
		x1, y1 := toXY(samples[n])
		plotLine(plot, x0, y0, x1, y1, ink)
	}

	out = image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(out, out.Bounds(), plot, plot.Bounds(), draw.Src, nil)

	return
}

// plotLine draws a 1px line with the integer midpoint algorithm.
func plotLine(img *image.RGBA, x0, y0, x1, y1 int, ink color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	e := dx + dy
	for {
		img.SetRGBA(x0, y0, ink)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func evaluate() (err error) {
	reader, err := os.Open(param.input)
	if err != nil {
		return
	}
	defer func() { reader.Close() }()

	var lines []string
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 256*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	flavor := nonplanar.DetectFlavor(lines)
	samples := collect(lines, flavor, param.layer)
	if len(samples) < 2 {
		err = fmt.Errorf("layer %d has no extrusion path to plot", param.layer)
		return
	}

	writer, err := os.Create(param.output)
	if err != nil {
		return
	}
	defer func() { writer.Close() }()

	err = png.Encode(writer, render(samples, param.width, param.height))
	if err != nil {
		return
	}

	fmt.Printf("%s: %d samples from layer %d\n", param.output, len(samples), param.layer)

	return
}

func main() {
	pflag.Parse()

	if len(param.input) == 0 {
		pflag.Usage()
		os.Exit(1)
	}

	err := evaluate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", param.input, err)
		os.Exit(1)
	}
}
