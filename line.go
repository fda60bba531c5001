//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package nonplanar

import (
	"fmt"
	"strconv"
	"strings"
)

type ErrMalformedWord string

func (e ErrMalformedWord) Error() string {
	return fmt.Sprintf("move word '%s' has an unparseable value", string(e))
}

// Line is one line of a G-code file. The raw text is always retained, so
// any line the engine does not rewrite can be emitted verbatim.
type Line struct {
	Raw string

	Cmd    string // "G0" or "G1" when IsMove
	IsMove bool

	X, Y, Z, E, F float64
	HasX, HasY    bool
	HasZ, HasE    bool
	HasF          bool

	Comment string // trailing comment, ';' included; empty if none
}

// IsComment reports whether the line is nothing but a comment (or blank).
func (line *Line) IsComment() bool {
	trimmed := strings.TrimSpace(line.Raw)
	return len(trimmed) == 0 || trimmed[0] == ';'
}

// ParseLine tokenizes a single G-code line. Only linear moves (G0/G1) are
// decomposed into words; everything else keeps its raw form only. A move
// with an unparseable numeric field returns ErrMalformedWord, and the
// caller is expected to pass the raw line through untouched.
func ParseLine(raw string) (line Line, err error) {
	line.Raw = raw

	code := raw
	if n := strings.IndexByte(raw, ';'); n >= 0 {
		line.Comment = strings.TrimRight(raw[n:], "\r\n")
		code = raw[:n]
	}

	fields := strings.Fields(code)
	if len(fields) == 0 {
		return
	}

	cmd := strings.ToUpper(fields[0])
	if cmd != "G0" && cmd != "G1" {
		return
	}

	line.Cmd = cmd
	line.IsMove = true

	for _, word := range fields[1:] {
		if len(word) < 2 {
			continue
		}

		var value float64
		value, err = strconv.ParseFloat(word[1:], 64)
		if err != nil {
			err = ErrMalformedWord(word)
			line = Line{Raw: raw, Comment: line.Comment}
			return
		}

		switch word[0] {
		case 'X', 'x':
			line.X = value
			line.HasX = true
		case 'Y', 'y':
			line.Y = value
			line.HasY = true
		case 'Z', 'z':
			line.Z = value
			line.HasZ = true
		case 'E', 'e':
			line.E = value
			line.HasE = true
		case 'F', 'f':
			line.F = value
			line.HasF = true
		}
	}

	return
}

// IsTravel reports whether the move repositions in X/Y without extruding.
func (line *Line) IsTravel() bool {
	return line.IsMove && (line.HasX || line.HasY) && !line.HasE
}
