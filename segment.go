//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package nonplanar

import (
	"math"
)

// Point is a toolpath position in mm.
type Point struct {
	X, Y, Z float64
}

// PlanarDistance is the XY-plane distance to another point.
func (p Point) PlanarDistance(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Distance is the full 3D distance to another point.
func (p Point) Distance(q Point) float64 {
	dx := q.X - p.X
	dy := q.Y - p.Y
	dz := q.Z - p.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Move is one directed linear toolpath segment.
type Move struct {
	From, To Point
	E        float64 // extrusion delta over the move; 0 for travel
	Feed     float64
	HasFeed  bool
}

// PlanarLength is the XY-plane length of the move.
func (m *Move) PlanarLength() float64 {
	return m.From.PlanarDistance(m.To)
}

// SubSegment is one piece of a segmented move, carrying its proportional
// share of the move's extrusion delta.
type SubSegment struct {
	From, To Point
	E        float64
}

// SegmentMove subdivides a move into sub-segments whose planar length never
// exceeds resolution, interpolating X, Y, pre-modulation Z, and splitting E
// by arc-length fraction. Moves with zero planar length (pure Z or E moves)
// and moves already shorter than resolution come back as a single segment.
func SegmentMove(move Move, resolution float64) (segs []SubSegment) {
	total := move.PlanarLength()
	if total <= resolution {
		segs = []SubSegment{{From: move.From, To: move.To, E: move.E}}
		return
	}

	count := int(math.Ceil(total / resolution))

	segs = make([]SubSegment, count)
	prev := move.From
	for n := 0; n < count; n++ {
		t := float64(n+1) / float64(count)
		next := Point{
			X: move.From.X + t*(move.To.X-move.From.X),
			Y: move.From.Y + t*(move.To.Y-move.From.Y),
			Z: move.From.Z + t*(move.To.Z-move.From.Z),
		}
		segs[n] = SubSegment{
			From: prev,
			To:   next,
			E:    move.E / float64(count),
		}
		prev = next
	}

	// The endpoint must match the planned move exactly, not within
	// interpolation error.
	segs[count-1].To = move.To

	return
}
