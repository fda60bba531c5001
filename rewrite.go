//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package nonplanar

import (
	"strconv"
	"strings"
)

// Coordinate and extrusion precision of emitted moves, matching what the
// slicers themselves write.
const (
	coordPrecision     = 3
	extrusionPrecision = 5
)

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', coordPrecision, 64)
}

func formatExtrusion(v float64) string {
	return strconv.FormatFloat(v, 'f', extrusionPrecision, 64)
}

func formatFeed(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// moveLine assembles one emitted G1 line. The feed token and trailing
// comment are optional so a segmented move can carry the original feed on
// its first sub-segment and the original comment on its last.
func moveLine(to Point, e float64, hasE bool, feed float64, hasFeed bool, comment string) string {
	var sb strings.Builder

	sb.WriteString("G1 X")
	sb.WriteString(formatCoord(to.X))
	sb.WriteString(" Y")
	sb.WriteString(formatCoord(to.Y))
	sb.WriteString(" Z")
	sb.WriteString(formatCoord(to.Z))
	if hasE {
		sb.WriteString(" E")
		sb.WriteString(formatExtrusion(e))
	}
	if hasFeed {
		sb.WriteString(" F")
		sb.WriteString(formatFeed(feed))
	}
	if comment != "" {
		sb.WriteString(" ")
		sb.WriteString(comment)
	}

	return sb.String()
}
