package event

import "testing"

func TestParseAccessors(t *testing.T) {
	ev, err := Parse([]byte(`{
		"type": "session.created",
		"event_id": "e1",
		"session": {"id": "s1", "model": "gpt-4o-realtime", "voice": "alloy"},
		"response": {"usage": {"input_tokens": 10}}
	}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if got := ev.Type(); got != "session.created" {
		t.Errorf("Type() = %q, want session.created", got)
	}
	if got := ev.EventID(); got != "e1" {
		t.Errorf("EventID() = %q, want e1", got)
	}
	if got := ev.Str("session", "model"); got != "gpt-4o-realtime" {
		t.Errorf("Str(session, model) = %q", got)
	}
	if got := ev.Int("response", "usage", "input_tokens"); got != 10 {
		t.Errorf("Int(response, usage, input_tokens) = %d", got)
	}
}

func TestAccessorsDegrade(t *testing.T) {
	ev, err := Parse([]byte(`{"type": "error", "session": "not-an-object"}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if got := ev.Str("missing"); got != "" {
		t.Errorf("Str(missing) = %q, want empty", got)
	}
	if got := ev.Str("session", "model"); got != "" {
		t.Errorf("Str through non-object = %q, want empty", got)
	}
	if got := ev.Num("type"); got != 0 {
		t.Errorf("Num on string field = %v, want 0", got)
	}
	if ev.Obj("session") != nil {
		t.Errorf("Obj on string field should be nil")
	}
}

func TestDeltaText(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{"delta field", `{"delta": "hel"}`, "hel"},
		{"transcript fallback", `{"transcript": "lo"}`, "lo"},
		{"delta wins", `{"delta": "a", "transcript": "b"}`, "a"},
		{"neither", `{"type": "x"}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := Parse([]byte(tt.json))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got := ev.DeltaText(); got != tt.want {
				t.Errorf("DeltaText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		eventType string
		want      Category
	}{
		{"session.created", CategorySession},
		{"error", CategoryError},
		{"conversation.item.created", CategoryConversation},
		{"input_audio_buffer.speech_started", CategoryAudioBuffer},
		{"response.created", CategoryResponseLifecycle},
		{"response.done", CategoryResponseLifecycle},
		{"response.output_item.added", CategoryResponseOutput},
		{"response.content_part.done", CategoryResponseContent},
		{"response.audio.delta", CategoryResponseAudio},
		{"response.text.delta", CategoryResponseText},
		{"response.audio_transcript.delta", CategoryResponseText},
		{"response.function_call_arguments.done", CategoryFunctionCall},
		{"rate_limits.updated", CategoryRateLimits},
		{"something.never.seen", CategoryUnknown},
		{"", CategoryUnknown},
	}
	for _, tt := range tests {
		if got := Categorize(tt.eventType); got != tt.want {
			t.Errorf("Categorize(%q) = %q, want %q", tt.eventType, got, tt.want)
		}
	}
}

func TestIsDelta(t *testing.T) {
	deltas := []string{
		TypeAudioDelta,
		TypeAudioTranscriptDelta,
		TypeTextDelta,
		TypeFunctionCallArgsDelta,
		TypeInputTranscriptionDelta,
	}
	for _, d := range deltas {
		if !IsDelta(d) {
			t.Errorf("IsDelta(%q) = false, want true", d)
		}
	}
	if IsDelta("response.audio.done") {
		t.Errorf("IsDelta(response.audio.done) = true, want false")
	}
	if IsDelta(TypeResponseDone) {
		t.Errorf("IsDelta(response.done) = true, want false")
	}
}

func TestCarriesText(t *testing.T) {
	if CarriesText(TypeAudioDelta) {
		t.Errorf("audio deltas carry samples, not text")
	}
	if !CarriesText(TypeTextDelta) {
		t.Errorf("CarriesText(text delta) = false, want true")
	}
	if !CarriesText(TypeInputTranscriptionDelta) {
		t.Errorf("CarriesText(input transcription delta) = false, want true")
	}
	if CarriesText("response.done") {
		t.Errorf("non-delta types never carry streamed text")
	}
}
