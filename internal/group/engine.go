package group

import (
	"github.com/yashrif/openai-log-visualizer-custom/internal/event"
	"github.com/yashrif/openai-log-visualizer-custom/internal/parse"
)

type state int

const (
	stateIdle state = iota
	stateInCycle
)

// engine is the single-pass grouping state machine. At most one response
// cycle is open at a time; opening a new one or hitting end of input flushes
// the pending buffer through delta aggregation.
type engine struct {
	out     []Group
	state   state
	cycle   *ResponseCycle
	pending []*parse.DecodedLine
}

// GroupEvents turns one session's chronological event sequence into an
// ordered timeline. Every input event lands in exactly one place: a delta
// run, a cycle's item list, or a standalone entry. There is no failure path;
// malformed payload fields degrade to unset.
func GroupEvents(events []*parse.DecodedLine) []Group {
	var eng engine
	for _, line := range events {
		eng.feed(line)
	}
	eng.flush()
	return eng.out
}

func (eng *engine) feed(line *parse.DecodedLine) {
	switch line.Event.Type() {
	case event.TypeSpeechStarted:
		eng.flush()
		eng.emit(&PhaseMarker{Phase: PhaseSpeech, Timestamp: line.Timestamp, LineNumber: line.LineNumber})
		eng.emit(&StandaloneEvent{Event: line})

	case event.TypeResponseCreated:
		eng.flush()
		eng.emit(&PhaseMarker{Phase: PhaseResponse, Timestamp: line.Timestamp, LineNumber: line.LineNumber})
		eng.state = stateInCycle
		eng.cycle = &ResponseCycle{
			ResponseID: line.Event.Str("response", "id"),
			StartEvent: line,
		}
		eng.pending = append(eng.pending, line)

	case event.TypeResponseDone, event.TypeResponseCancelled:
		if eng.state != stateInCycle {
			eng.emit(&StandaloneEvent{Event: line}) // orphan close
			return
		}
		eng.pending = append(eng.pending, line)
		eng.cycle.EndEvent = line
		if line.Event.Type() == event.TypeResponseDone {
			eng.cycle.Usage = extractUsage(line.Event)
		}
		eng.flush()

	case event.TypeFunctionCallArgsDone:
		// Inside a cycle this folds into the item list with no marker;
		// markers denote phase transitions at the top level only.
		if eng.state == stateInCycle {
			eng.pending = append(eng.pending, line)
			return
		}
		eng.emit(&PhaseMarker{Phase: PhaseFunctionCall, Timestamp: line.Timestamp, LineNumber: line.LineNumber})
		eng.emit(&StandaloneEvent{Event: line})

	default:
		if eng.state == stateInCycle {
			eng.pending = append(eng.pending, line)
			return
		}
		eng.emit(&StandaloneEvent{Event: line})
	}
}

// flush closes the open cycle, if any: the pending buffer is delta
// aggregated into the cycle's items and the cycle is emitted.
func (eng *engine) flush() {
	if eng.state != stateInCycle {
		return
	}
	eng.cycle.Items = aggregate(eng.pending)
	eng.emit(eng.cycle)
	eng.cycle = nil
	eng.pending = nil
	eng.state = stateIdle
}

func (eng *engine) emit(g Group) {
	eng.out = append(eng.out, g)
}

func extractUsage(ev event.Event) *TokenUsage {
	usage := ev.Obj("response", "usage")
	if usage == nil {
		return nil
	}
	return &TokenUsage{
		Input:  usage.Int("input_tokens"),
		Output: usage.Int("output_tokens"),
		Total:  usage.Int("total_tokens"),
	}
}
