package group

import (
	"github.com/yashrif/openai-log-visualizer-custom/internal/event"
	"github.com/yashrif/openai-log-visualizer-custom/internal/parse"
)

// aggregate merges contiguous same-type delta runs in buffer into
// DeltaGroups and passes everything else through standalone, preserving
// order. The result never holds two consecutive unmerged events of the same
// delta type.
func aggregate(buffer []*parse.DecodedLine) []Item {
	var items []Item
	var run *DeltaGroup

	closeRun := func() {
		if run != nil {
			items = append(items, run)
			run = nil
		}
	}

	for _, line := range buffer {
		t := line.Event.Type()
		if !event.IsDelta(t) {
			closeRun()
			items = append(items, &StandaloneEvent{Event: line})
			continue
		}
		if run == nil || run.EventType != t {
			closeRun()
			run = &DeltaGroup{EventType: t, FirstLine: line.LineNumber}
		}
		run.Events = append(run.Events, line)
		run.LastLine = line.LineNumber
	}
	closeRun()

	return items
}

// AggregateDeltas merges delta runs in a flat event sequence. It is the same
// transform a cycle's pending buffer goes through, exposed for callers that
// work outside cycles.
func AggregateDeltas(events []*parse.DecodedLine) []Item {
	return aggregate(events)
}
