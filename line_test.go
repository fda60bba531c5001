//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package nonplanar

import (
	"testing"
)

func TestParseLine(t *testing.T) {
	table := map[string]struct {
		in   string
		move bool
		out  Line
	}{
		"extrude": {
			in:   "G1 X10.5 Y-2.25 E0.12345",
			move: true,
			out:  Line{Cmd: "G1", X: 10.5, Y: -2.25, E: 0.12345, HasX: true, HasY: true, HasE: true},
		},
		"travel": {
			in:   "G1 X5 Y5 F9000",
			move: true,
			out:  Line{Cmd: "G1", X: 5, Y: 5, F: 9000, HasX: true, HasY: true, HasF: true},
		},
		"zmove": {
			in:   "G1 Z0.4 F720",
			move: true,
			out:  Line{Cmd: "G1", Z: 0.4, F: 720, HasZ: true, HasF: true},
		},
		"rapid": {
			in:   "G0 X1 Y2",
			move: true,
			out:  Line{Cmd: "G0", X: 1, Y: 2, HasX: true, HasY: true},
		},
		"commented": {
			in:   "G1 X1 Y1 E0.5 ; wipe",
			move: true,
			out:  Line{Cmd: "G1", X: 1, Y: 1, E: 0.5, HasX: true, HasY: true, HasE: true, Comment: "; wipe"},
		},
		"lowercase": {
			in:   "g1 x3 e0.1",
			move: true,
			out:  Line{Cmd: "G1", X: 3, E: 0.1, HasX: true, HasE: true},
		},
		"marker":  {in: ";TYPE:Perimeter"},
		"fan":     {in: "M106 S255"},
		"blank":   {in: ""},
		"comment": {in: "; just a note"},
	}

	for key, item := range table {
		line, err := ParseLine(item.in)
		if err != nil {
			t.Errorf("%v: unexpected error %v", key, err)
			continue
		}

		if line.IsMove != item.move {
			t.Errorf("%v: IsMove = %v, expected %v", key, line.IsMove, item.move)
			continue
		}

		if !item.move {
			continue
		}

		item.out.Raw = item.in
		item.out.IsMove = item.move
		if line != item.out {
			t.Errorf("%v: expected %+v, got %+v", key, item.out, line)
		}
	}
}

func TestParseLineMalformed(t *testing.T) {
	for _, in := range []string{"G1 Xabc Y1 E0.1", "G1 X1 Y1 E0..5"} {
		line, err := ParseLine(in)
		if err == nil {
			t.Errorf("%v: expected error", in)
			continue
		}
		if line.Raw != in {
			t.Errorf("%v: raw text not retained", in)
		}
		if line.IsMove {
			t.Errorf("%v: malformed line must not classify as a move", in)
		}
	}
}

func TestLineIsTravel(t *testing.T) {
	table := map[string]bool{
		"G1 X5 Y5 F9000":  true,
		"G1 X5 Y5 E0.5":   false,
		"G1 Z0.4":         false,
		"G1 E-0.8":        false,
		"M106 S255":       false,
	}

	for in, expected := range table {
		line, err := ParseLine(in)
		if err != nil {
			t.Fatalf("%v: %v", in, err)
		}
		if line.IsTravel() != expected {
			t.Errorf("%v: IsTravel = %v, expected %v", in, line.IsTravel(), expected)
		}
	}
}
