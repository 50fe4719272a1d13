package index

import (
	"strings"

	"github.com/yashrif/openai-log-visualizer-custom/internal/event"
	"github.com/yashrif/openai-log-visualizer-custom/internal/group"
	"github.com/yashrif/openai-log-visualizer-custom/internal/parse"
)

const maxTextSize = 8 * 1024 // 8KB for FTS index

// Chunk is one searchable piece of reconstructed conversation text.
type Chunk struct {
	Role       string // "user" or "assistant"
	Kind       string // "transcript", "text" or "function_args"
	Text       string
	Ts         string
	LineNumber int
}

// transcriptChunks walks a session's grouped timeline and pulls out the
// human-readable text: completed input transcriptions for the user side,
// aggregated transcript/text/function-argument runs for the assistant side.
// Audio delta runs carry no text and are skipped.
func transcriptChunks(groups []group.Group) []Chunk {
	var chunks []Chunk

	for _, g := range groups {
		switch g := g.(type) {
		case *group.StandaloneEvent:
			chunks = appendEventChunk(chunks, g.Event)
		case *group.DeltaGroup:
			chunks = appendRunChunk(chunks, g)
		case *group.ResponseCycle:
			for _, item := range g.Items {
				switch item := item.(type) {
				case *group.StandaloneEvent:
					chunks = appendEventChunk(chunks, item.Event)
				case *group.DeltaGroup:
					chunks = appendRunChunk(chunks, item)
				}
			}
		}
	}

	return chunks
}

func appendEventChunk(chunks []Chunk, line *parse.DecodedLine) []Chunk {
	if line.Event.Type() != event.TypeInputTranscriptionCompleted {
		return chunks
	}
	text := strings.TrimSpace(line.Event.Str("transcript"))
	if text == "" {
		return chunks
	}
	return append(chunks, Chunk{
		Role:       "user",
		Kind:       "transcript",
		Text:       clip(text),
		Ts:         line.Timestamp,
		LineNumber: line.LineNumber,
	})
}

func appendRunChunk(chunks []Chunk, run *group.DeltaGroup) []Chunk {
	text := strings.TrimSpace(run.Text())
	if text == "" {
		return chunks
	}

	var role, kind string
	switch run.EventType {
	case event.TypeInputTranscriptionDelta:
		role, kind = "user", "transcript"
	case event.TypeAudioTranscriptDelta:
		role, kind = "assistant", "transcript"
	case event.TypeTextDelta:
		role, kind = "assistant", "text"
	case event.TypeFunctionCallArgsDelta:
		role, kind = "assistant", "function_args"
	default:
		return chunks
	}

	ts := ""
	if len(run.Events) > 0 {
		ts = run.Events[0].Timestamp
	}
	return append(chunks, Chunk{
		Role:       role,
		Kind:       kind,
		Text:       clip(text),
		Ts:         ts,
		LineNumber: run.FirstLine,
	})
}

func clip(s string) string {
	if len(s) > maxTextSize {
		return s[:maxTextSize]
	}
	return s
}
