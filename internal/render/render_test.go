package render

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/yashrif/openai-log-visualizer-custom/internal/event"
	"github.com/yashrif/openai-log-visualizer-custom/internal/group"
	"github.com/yashrif/openai-log-visualizer-custom/internal/parse"
)

func TestSanitizeRedactsAudio(t *testing.T) {
	ev, err := event.Parse([]byte(`{"type":"response.audio.delta","event_id":"e1","delta":"QUJDREVGR0g="}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out := Sanitize(ev)
	if strings.Contains(out, "QUJDREVGR0g=") {
		t.Errorf("base64 body survived: %s", out)
	}
	if !strings.Contains(out, "<audio 12 bytes>") {
		t.Errorf("missing placeholder: %s", out)
	}
}

func TestSanitizeKeepsTextDelta(t *testing.T) {
	ev, err := event.Parse([]byte(`{"type":"response.text.delta","event_id":"e1","delta":"hello"}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out := Sanitize(ev)
	if !strings.Contains(out, `"delta":"hello"`) {
		t.Errorf("text delta was redacted: %s", out)
	}
}

func TestSanitizeRedactsBufferAppend(t *testing.T) {
	ev, err := event.Parse([]byte(`{"type":"input_audio_buffer.append","event_id":"e1","audio":"QUJD"}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out := Sanitize(ev)
	if strings.Contains(out, `"audio":"QUJD"`) {
		t.Errorf("buffer audio survived: %s", out)
	}
}

func TestHighlightKeywords(t *testing.T) {
	out := highlightKeywords("the Weather today", "weather")
	if !strings.Contains(out, colorBoldRed+"Weather"+colorReset) {
		t.Errorf("highlight missing, got %q", out)
	}
	if got := highlightKeywords("plain text", ""); got != "plain text" {
		t.Errorf("empty query changed text: %q", got)
	}
}

// Folding U+023A to U+2C65 grows the rune by one byte; matching must stay on
// rune boundaries of the original string.
func TestHighlightKeywordsFoldChangesByteLength(t *testing.T) {
	out := highlightKeywords("Ⱥi", "i")
	if !utf8.ValidString(out) {
		t.Fatalf("invalid UTF-8: %q", out)
	}
	if !strings.Contains(out, colorBoldRed+"i"+colorReset) {
		t.Errorf("match not highlighted: %q", out)
	}
	if !strings.HasPrefix(out, "Ⱥ") {
		t.Errorf("leading rune mangled: %q", out)
	}

	// the width-changing rune itself must also be matchable
	out = highlightKeywords("xȺx", "ⱥ")
	if !strings.Contains(out, colorBoldRed+"Ⱥ"+colorReset) {
		t.Errorf("folded match not highlighted: %q", out)
	}
}

func TestWrapLineANSIAware(t *testing.T) {
	line := colorUser + "abcdef" + colorReset
	wrapped := wrapLine(line, 3)
	if len(wrapped) != 2 {
		t.Fatalf("got %d lines: %q", len(wrapped), wrapped)
	}
	// escape codes must not count toward width
	if !strings.Contains(wrapped[0], "abc") || !strings.Contains(wrapped[1], "def") {
		t.Errorf("wrapped = %q", wrapped)
	}
}

func TestWrapLineNoWidth(t *testing.T) {
	wrapped := wrapLine("anything at all", 0)
	if len(wrapped) != 1 || wrapped[0] != "anything at all" {
		t.Errorf("wrapped = %q", wrapped)
	}
}

func sessionFor(t *testing.T, payloads ...string) (*parse.Session, []group.Group) {
	t.Helper()
	result := parse.Segment(payloads)
	if len(result.Sessions) != 1 {
		t.Fatalf("got %d sessions", len(result.Sessions))
	}
	s := result.Sessions[0]
	return s, group.GroupEvents(s.Events)
}

func TestRenderSession(t *testing.T) {
	s, groups := sessionFor(t,
		`{"type":"session.created","event_id":"e0","session":{"id":"s1","model":"gpt-4o-realtime","voice":"alloy"}}`,
		`{"type":"input_audio_buffer.speech_started","event_id":"e1"}`,
		`{"type":"conversation.item.input_audio_transcription.completed","event_id":"e2","transcript":"hi there"}`,
		`{"type":"response.created","event_id":"e3","response":{"id":"resp_1"}}`,
		`{"type":"response.text.delta","event_id":"e4","delta":"hello "}`,
		`{"type":"response.text.delta","event_id":"e5","delta":"back"}`,
		`{"type":"response.done","event_id":"e6","response":{"usage":{"input_tokens":3,"output_tokens":4,"total_tokens":7}}}`,
	)

	out, hit := RenderSession(s, groups, Options{HitLine: -1})
	if hit != -1 {
		t.Errorf("hit = %d, want -1", hit)
	}
	for _, want := range []string{
		"session-1",
		"model=gpt-4o-realtime",
		"user speaking",
		"assistant response",
		`"hi there"`,
		"resp_1",
		"tokens in=3 out=4 total=7",
		"response.text.delta ×2",
		"hello back",
		"done",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestRenderSessionHitRow(t *testing.T) {
	s, groups := sessionFor(t,
		`{"type":"session.created","event_id":"e0","session":{"id":"s1"}}`,
		`{"type":"conversation.item.created","event_id":"e1"}`,
		`{"type":"conversation.item.input_audio_transcription.completed","event_id":"e2","transcript":"target"}`,
	)

	out, hit := RenderSession(s, groups, Options{HitLine: 3})
	if hit < 0 {
		t.Fatalf("hit row not found\n%s", out)
	}
	rows := strings.Split(out, "\n")
	if !strings.Contains(rows[hit], "target") {
		t.Errorf("row %d = %q, expected the transcription line", hit, rows[hit])
	}
	if !strings.Contains(rows[hit], ">>") {
		t.Errorf("hit row not marked: %q", rows[hit])
	}
}

func TestRenderSessionOpenCycle(t *testing.T) {
	s, groups := sessionFor(t,
		`{"type":"session.created","event_id":"e0","session":{"id":"s1"}}`,
		`{"type":"response.created","event_id":"e1"}`,
	)

	out, _ := RenderSession(s, groups, Options{HitLine: -1})
	if !strings.Contains(out, "open") {
		t.Errorf("unterminated cycle not marked open:\n%s", out)
	}
}

func TestRenderSessionQueryHighlight(t *testing.T) {
	s, groups := sessionFor(t,
		`{"type":"session.created","event_id":"e0","session":{"id":"s1"}}`,
		`{"type":"response.created","event_id":"e1"}`,
		`{"type":"response.text.delta","event_id":"e2","delta":"weather report"}`,
		`{"type":"response.done","event_id":"e3"}`,
	)

	out, _ := RenderSession(s, groups, Options{HitLine: -1, Query: "weather"})
	if !strings.Contains(out, colorBoldRed+"weather"+colorReset) {
		t.Errorf("keyword not highlighted:\n%s", out)
	}
}
