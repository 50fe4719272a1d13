package parse

import (
	"reflect"
	"strings"
	"testing"
)

func sessionStart(model, voice string) string {
	return `{"type":"session.created","event_id":"e0","session":{"id":"sess","model":"` + model + `","voice":"` + voice + `"}}`
}

func TestSegmentTwoSessions(t *testing.T) {
	lines := []string{
		sessionStart("gpt-4o-realtime", "alloy"),
		`{"type":"input_audio_buffer.speech_started","event_id":"e1"}`,
		`{"type":"response.created","event_id":"e2","response":{"id":"r1"}}`,
		`{"type":"response.done","event_id":"e3"}`,
		sessionStart("gpt-4o-mini-realtime", "echo"),
		`{"type":"response.created","event_id":"e4","response":{"id":"r2"}}`,
	}

	result := Segment(lines)
	if len(result.Warnings) != 0 {
		t.Fatalf("warnings: %v", result.Warnings)
	}
	if len(result.Sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(result.Sessions))
	}

	first, second := result.Sessions[0], result.Sessions[1]
	if first.ID != "session-1" || second.ID != "session-2" {
		t.Errorf("ids = %q, %q", first.ID, second.ID)
	}
	if first.Model != "gpt-4o-realtime" || first.Voice != "alloy" {
		t.Errorf("first session model/voice = %q/%q", first.Model, first.Voice)
	}
	if second.Model != "gpt-4o-mini-realtime" {
		t.Errorf("second session model = %q", second.Model)
	}

	wantFirst := []int{1, 2, 3, 4}
	wantSecond := []int{5, 6}
	if got := lineNumbers(first); !reflect.DeepEqual(got, wantFirst) {
		t.Errorf("first session lines = %v, want %v", got, wantFirst)
	}
	if got := lineNumbers(second); !reflect.DeepEqual(got, wantSecond) {
		t.Errorf("second session lines = %v, want %v", got, wantSecond)
	}
}

func lineNumbers(s *Session) []int {
	var nums []int
	for _, e := range s.Events {
		nums = append(nums, e.LineNumber)
	}
	return nums
}

func TestSegmentImplicitSession(t *testing.T) {
	lines := []string{
		`{"type":"response.created","event_id":"e1"}`,
		`{"type":"response.done","event_id":"e2"}`,
		sessionStart("gpt-x", ""),
		`{"type":"error","event_id":"e3"}`,
	}

	result := Segment(lines)
	if len(result.Sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(result.Sessions))
	}

	orphan := result.Sessions[0]
	if orphan.ID != "session-1" {
		t.Errorf("implicit session id = %q", orphan.ID)
	}
	if orphan.Model != "" || orphan.StartTime != "" {
		t.Errorf("implicit session should carry no session metadata")
	}
	if got := lineNumbers(orphan); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("implicit session lines = %v", got)
	}

	real := result.Sessions[1]
	if real.ID != "session-2" || real.Model != "gpt-x" {
		t.Errorf("real session = %q model=%q", real.ID, real.Model)
	}
	if got := lineNumbers(real); !reflect.DeepEqual(got, []int{3, 4}) {
		t.Errorf("real session lines = %v", got)
	}
}

func TestSegmentStartTimeAndTag(t *testing.T) {
	lines := []string{
		`2024-01-15T10:30:00Z [abc-1] ` + sessionStart("gpt-x", "alloy"),
	}

	result := Segment(lines)
	if len(result.Sessions) != 1 {
		t.Fatalf("got %d sessions", len(result.Sessions))
	}
	s := result.Sessions[0]
	if s.StartTime != "2024-01-15T10:30:00Z" {
		t.Errorf("StartTime = %q", s.StartTime)
	}
	if s.SessionTag != "abc-1" {
		t.Errorf("SessionTag = %q", s.SessionTag)
	}
}

func TestSegmentSkipsBadLinesWithWarnings(t *testing.T) {
	lines := []string{
		sessionStart("gpt-x", ""),
		`this line is garbage`,
		``,
		`{"type":"response.done","event_id":"e9"}`,
	}

	result := Segment(lines)
	if len(result.Sessions) != 1 {
		t.Fatalf("got %d sessions", len(result.Sessions))
	}
	if got := lineNumbers(result.Sessions[0]); !reflect.DeepEqual(got, []int{1, 4}) {
		t.Errorf("session lines = %v, want [1 4]", got)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1 (blank lines reject silently)", len(result.Warnings))
	}
	w := result.Warnings[0]
	if w.LineNumber != 2 {
		t.Errorf("warning line = %d, want 2", w.LineNumber)
	}
	if !strings.Contains(w.Content, "garbage") {
		t.Errorf("warning content = %q", w.Content)
	}
}

func TestSegmentReaderMatchesSegment(t *testing.T) {
	input := sessionStart("gpt-x", "") + "\n" +
		`{"type":"response.done","event_id":"e1"}` + "\n"

	fromReader, err := SegmentReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("SegmentReader: %v", err)
	}
	fromString := SegmentString(input)

	if len(fromReader.Sessions) != 1 || len(fromString.Sessions) != 1 {
		t.Fatalf("sessions: reader=%d string=%d", len(fromReader.Sessions), len(fromString.Sessions))
	}
	if got, want := len(fromReader.Sessions[0].Events), len(fromString.Sessions[0].Events); got != want {
		t.Errorf("event counts differ: %d vs %d", got, want)
	}
}

// Re-running the pipeline over identical input yields identical structure.
func TestSegmentDeterministic(t *testing.T) {
	lines := []string{
		sessionStart("gpt-x", "alloy"),
		`{"type":"response.created","event_id":"e1","response":{"id":"r1"}}`,
		`{"type":"response.text.delta","event_id":"e2","delta":"a"}`,
		`{"type":"response.done","event_id":"e3"}`,
	}

	a := Segment(lines)
	b := Segment(lines)
	if !reflect.DeepEqual(a, b) {
		t.Error("identical input produced different results")
	}
}
