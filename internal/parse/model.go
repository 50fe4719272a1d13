package parse

import "github.com/yashrif/openai-log-visualizer-custom/internal/event"

// Source of a logged line, taken from the optional [OPENAI]/[USER] tag.
type Source string

const (
	SourceOpenAI Source = "OPENAI"
	SourceUser   Source = "USER"
)

// DecodedLine is one successfully decoded log line. LineNumber is 1-based
// and strictly increasing within one input; it is the stable identity used
// for keys and audio chunk ordering.
type DecodedLine struct {
	Timestamp  string // ISO-8601 text as written, "" when absent
	SessionTag string
	Source     Source
	Event      event.Event
	RawText    string
	LineNumber int
}

// Session is one conversational session, delimited by session.created
// events. It owns its events exclusively.
type Session struct {
	ID         string // synthetic, "session-<n>"
	SessionTag string
	StartTime  string
	Model      string
	Voice      string
	Events     []*DecodedLine
}

// Warning records a recoverable per-line decode problem. The line is
// dropped and parsing continues.
type Warning struct {
	LineNumber int
	Message    string
	Content    string // truncated raw line
}

// ParseResult is the output of segmenting one input.
type ParseResult struct {
	Sessions []*Session
	Warnings []Warning
}
