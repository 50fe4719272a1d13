package group

import (
	"strings"

	"github.com/yashrif/openai-log-visualizer-custom/internal/event"
	"github.com/yashrif/openai-log-visualizer-custom/internal/parse"
)

// Phase names a conversational phase transition.
type Phase string

const (
	PhaseSpeech       Phase = "speech"
	PhaseResponse     Phase = "response"
	PhaseFunctionCall Phase = "function_call"
)

// Group is one element of a session timeline: a phase marker, an aggregated
// delta run, a full response cycle, or a single ungrouped event.
type Group interface {
	group()
}

// Item is an element of a response cycle's item list: either a single event
// or an aggregated delta run.
type Item interface {
	item()
}

// PhaseMarker is a synthetic boundary between conversational phases. It is
// not itself a logged event.
type PhaseMarker struct {
	Phase      Phase
	Timestamp  string
	LineNumber int
}

// DeltaGroup is a contiguous run of streaming delta events sharing one
// event type.
type DeltaGroup struct {
	EventType string
	Events    []*parse.DecodedLine
	FirstLine int
	LastLine  int
}

func (g *DeltaGroup) Count() int { return len(g.Events) }

// Text reconstructs the streamed string from the run, concatenating each
// member's delta-or-transcript field in order. Audio delta runs yield ""
// since their payloads are base64 samples, not text.
func (g *DeltaGroup) Text() string {
	if !event.CarriesText(g.EventType) {
		return ""
	}
	var b strings.Builder
	for _, e := range g.Events {
		b.WriteString(e.Event.DeltaText())
	}
	return b.String()
}

// TokenUsage is the usage block reported on response.done.
type TokenUsage struct {
	Input  int
	Output int
	Total  int
}

// ResponseCycle spans a response.created marker through its terminating
// done/cancelled marker. EndEvent is nil when the log ends before the
// response does.
type ResponseCycle struct {
	ResponseID string
	StartEvent *parse.DecodedLine
	EndEvent   *parse.DecodedLine
	Items      []Item
	Usage      *TokenUsage
}

// StandaloneEvent is an event that belongs to no cycle and no delta run.
type StandaloneEvent struct {
	Event *parse.DecodedLine
}

func (*PhaseMarker) group()     {}
func (*DeltaGroup) group()      {}
func (*ResponseCycle) group()   {}
func (*StandaloneEvent) group() {}

func (*DeltaGroup) item()      {}
func (*StandaloneEvent) item() {}
