//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package nonplanar

// Event classifies what the engine did with one input line.
type Event int

const (
	EventPassThrough = Event(iota)
	EventMalformedLine
	EventRegionChange
	EventLayerChange
	EventMoveModulated
	EventMoveShifted
)

func (ev Event) String() (name string) {
	switch ev {
	case EventMalformedLine:
		name = "malformed-line"
	case EventRegionChange:
		name = "region-change"
	case EventLayerChange:
		name = "layer-change"
	case EventMoveModulated:
		name = "move-modulated"
	case EventMoveShifted:
		name = "move-shifted"
	default:
		name = "pass-through"
	}

	return
}

// Tracer receives one event per processed input line. The engine itself
// never opens files or writes logs; install a tracer to observe it.
type Tracer interface {
	Trace(lineNum int, event Event, detail string)
}

type nilTracer struct{}

func (nt *nilTracer) Trace(int, Event, string) {}

var defaultTracer = Tracer(&nilTracer{})

func SetTracer(tracer Tracer) {
	if tracer == Tracer(nil) {
		tracer = &nilTracer{}
	}
	defaultTracer = tracer
}
