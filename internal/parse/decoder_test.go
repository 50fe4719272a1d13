package parse

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestDecodeLineFullPrefix(t *testing.T) {
	raw := `2024-01-15T10:30:00.000Z [abc-123] [OPENAI] {"type":"session.created","event_id":"e1","session":{"id":"s1","model":"gpt-x"}}`

	line, err := DecodeLine(raw, 1)
	if err != nil {
		t.Fatalf("DecodeLine: %v", err)
	}
	if line == nil {
		t.Fatal("expected a decoded line")
	}

	if line.Timestamp != "2024-01-15T10:30:00.000Z" {
		t.Errorf("Timestamp = %q", line.Timestamp)
	}
	if line.SessionTag != "abc-123" {
		t.Errorf("SessionTag = %q", line.SessionTag)
	}
	if line.Source != SourceOpenAI {
		t.Errorf("Source = %q", line.Source)
	}
	if got := line.Event.Type(); got != "session.created" {
		t.Errorf("event type = %q", got)
	}
	if got := line.Event.Str("session", "model"); got != "gpt-x" {
		t.Errorf("session.model = %q", got)
	}
	if line.LineNumber != 1 {
		t.Errorf("LineNumber = %d", line.LineNumber)
	}
	if line.RawText != raw {
		t.Errorf("RawText not preserved")
	}
}

func TestDecodeLinePrefixCombinations(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		timestamp  string
		sessionTag string
		source     Source
	}{
		{
			name: "bare json",
			raw:  `{"type":"response.done","event_id":"e2"}`,
		},
		{
			name:      "timestamp only",
			raw:       `2024-01-15T10:30:00Z {"type":"response.done","event_id":"e2"}`,
			timestamp: "2024-01-15T10:30:00Z",
		},
		{
			name:      "timestamp without zone",
			raw:       `2024-01-15T10:30:00 {"type":"response.done","event_id":"e2"}`,
			timestamp: "2024-01-15T10:30:00",
		},
		{
			name:       "session tag only",
			raw:        `[deadbeef-01] {"type":"response.done","event_id":"e2"}`,
			sessionTag: "deadbeef-01",
		},
		{
			name:   "source only",
			raw:    `[USER] {"type":"input_audio_buffer.append","event_id":"e3"}`,
			source: SourceUser,
		},
		{
			name:   "lowercase source normalized",
			raw:    `[openai] {"type":"response.done","event_id":"e2"}`,
			source: SourceOpenAI,
		},
		{
			name:       "tag and source without timestamp",
			raw:        `[abc] [USER] {"type":"x","event_id":"e4"}`,
			sessionTag: "abc",
			source:     SourceUser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := DecodeLine(tt.raw, 7)
			if err != nil {
				t.Fatalf("DecodeLine: %v", err)
			}
			if line == nil {
				t.Fatal("expected a decoded line")
			}
			if line.Timestamp != tt.timestamp {
				t.Errorf("Timestamp = %q, want %q", line.Timestamp, tt.timestamp)
			}
			if line.SessionTag != tt.sessionTag {
				t.Errorf("SessionTag = %q, want %q", line.SessionTag, tt.sessionTag)
			}
			if line.Source != tt.source {
				t.Errorf("Source = %q, want %q", line.Source, tt.source)
			}
			if line.Event == nil {
				t.Error("Event is nil")
			}
		})
	}
}

func TestDecodeLineBlank(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t"} {
		line, err := DecodeLine(raw, 1)
		if err != nil {
			t.Errorf("DecodeLine(%q) err = %v, want nil", raw, err)
		}
		if line != nil {
			t.Errorf("DecodeLine(%q) = %+v, want nil", raw, line)
		}
	}
}

func TestDecodeLineRejects(t *testing.T) {
	tests := []string{
		`not json at all`,
		`2024-01-15T10:30:00Z not json`,
		`[abc] [1,2,3]`,
		`"just a string"`,
		`null`,
	}
	for _, raw := range tests {
		line, err := DecodeLine(raw, 42)
		if err == nil {
			t.Errorf("DecodeLine(%q) succeeded, want reject", raw)
			continue
		}
		if line != nil {
			t.Errorf("DecodeLine(%q) returned a line alongside an error", raw)
		}
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Errorf("DecodeLine(%q) error type %T, want *DecodeError", raw, err)
			continue
		}
		if de.LineNumber != 42 {
			t.Errorf("DecodeError.LineNumber = %d, want 42", de.LineNumber)
		}
	}
}

// Truncating warning content must not cut a multi-byte rune in half.
func TestDecodeLineWarningContentValidUTF8(t *testing.T) {
	// byte 200 lands inside the three-byte rune
	raw := strings.Repeat("x", 199) + "世" + strings.Repeat("y", 50)

	_, err := DecodeLine(raw, 1)
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("err = %v, want *DecodeError", err)
	}
	if len(de.Content) > maxWarnContent {
		t.Errorf("content length = %d, want <= %d", len(de.Content), maxWarnContent)
	}
	if !utf8.ValidString(de.Content) {
		t.Errorf("content is not valid UTF-8: %q", de.Content)
	}
	if de.Content != strings.Repeat("x", 199) {
		t.Errorf("content = %q, want the rune dropped whole", de.Content)
	}
}

// A [USER]/[OPENAI]-looking token is never a session tag: the tag pattern is
// hex-and-hyphen only.
func TestDecodeLineSourceNotMistakenForTag(t *testing.T) {
	line, err := DecodeLine(`[OPENAI] {"type":"x","event_id":"e"}`, 1)
	if err != nil {
		t.Fatalf("DecodeLine: %v", err)
	}
	if line.SessionTag != "" {
		t.Errorf("SessionTag = %q, want empty", line.SessionTag)
	}
	if line.Source != SourceOpenAI {
		t.Errorf("Source = %q, want OPENAI", line.Source)
	}
}
