//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"fmt"
	"os"

	"github.com/printmod/nonplanar"
)

const (
	VerbosityError = iota
	VerbosityWarning
	VerbosityNotice
	VerbosityDebug
)

func TraceVerbosef(level int, format string, args ...interface{}) {
	if level <= param.verbosity {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// stderrTracer forwards engine events to stderr, gated by verbosity.
type stderrTracer struct{}

func (st *stderrTracer) Trace(lineNum int, event nonplanar.Event, detail string) {
	level := VerbosityDebug
	if event == nonplanar.EventMalformedLine {
		level = VerbosityWarning
	}

	TraceVerbosef(level, "line %d: %s: %s", lineNum+1, event, detail)
}
