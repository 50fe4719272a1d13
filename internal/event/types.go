package event

// Event type strings the grouping state machine keys on.
const (
	TypeSessionCreated = "session.created"

	TypeSpeechStarted = "input_audio_buffer.speech_started"
	TypeSpeechStopped = "input_audio_buffer.speech_stopped"

	TypeResponseCreated   = "response.created"
	TypeResponseDone      = "response.done"
	TypeResponseCancelled = "response.cancelled"

	TypeFunctionCallArgsDone = "response.function_call_arguments.done"

	TypeAudioDelta              = "response.audio.delta"
	TypeAudioTranscriptDelta    = "response.audio_transcript.delta"
	TypeTextDelta               = "response.text.delta"
	TypeFunctionCallArgsDelta   = "response.function_call_arguments.delta"
	TypeInputTranscriptionDelta = "conversation.item.input_audio_transcription.delta"

	TypeInputTranscriptionCompleted = "conversation.item.input_audio_transcription.completed"
)

// Category buckets event types for filtering and display.
type Category string

const (
	CategorySession           Category = "session"
	CategoryError             Category = "error"
	CategoryConversation      Category = "conversation"
	CategoryAudioBuffer       Category = "audio_buffer"
	CategoryResponseLifecycle Category = "response_lifecycle"
	CategoryResponseOutput    Category = "response_output"
	CategoryResponseContent   Category = "response_content"
	CategoryResponseAudio     Category = "response_audio"
	CategoryResponseText      Category = "response_text"
	CategoryFunctionCall      Category = "function_call"
	CategoryRateLimits        Category = "rate_limits"
	CategoryUnknown           Category = "unknown"

	// CategoryUserInput is referenced by the user-sourced check but is not
	// produced by Categorize; no type string currently maps to it.
	CategoryUserInput Category = "user_input"
)

var categories = map[string]Category{
	TypeSessionCreated: CategorySession,
	"session.updated":  CategorySession,

	"error": CategoryError,

	"conversation.created":            CategoryConversation,
	"conversation.item.create":        CategoryConversation,
	"conversation.item.created":       CategoryConversation,
	"conversation.item.truncated":     CategoryConversation,
	"conversation.item.deleted":       CategoryConversation,
	TypeInputTranscriptionDelta:       CategoryConversation,
	TypeInputTranscriptionCompleted:   CategoryConversation,
	"conversation.item.input_audio_transcription.failed": CategoryConversation,

	"input_audio_buffer.append":    CategoryAudioBuffer,
	"input_audio_buffer.commit":    CategoryAudioBuffer,
	"input_audio_buffer.committed": CategoryAudioBuffer,
	"input_audio_buffer.clear":     CategoryAudioBuffer,
	"input_audio_buffer.cleared":   CategoryAudioBuffer,
	TypeSpeechStarted:              CategoryAudioBuffer,
	TypeSpeechStopped:              CategoryAudioBuffer,

	"response.create":     CategoryResponseLifecycle,
	TypeResponseCreated:   CategoryResponseLifecycle,
	TypeResponseDone:      CategoryResponseLifecycle,
	"response.cancel":     CategoryResponseLifecycle,
	TypeResponseCancelled: CategoryResponseLifecycle,

	"response.output_item.added": CategoryResponseOutput,
	"response.output_item.done":  CategoryResponseOutput,

	"response.content_part.added": CategoryResponseContent,
	"response.content_part.done":  CategoryResponseContent,

	TypeAudioDelta:        CategoryResponseAudio,
	"response.audio.done": CategoryResponseAudio,

	TypeTextDelta:                    CategoryResponseText,
	"response.text.done":             CategoryResponseText,
	TypeAudioTranscriptDelta:         CategoryResponseText,
	"response.audio_transcript.done": CategoryResponseText,

	TypeFunctionCallArgsDelta: CategoryFunctionCall,
	TypeFunctionCallArgsDone:  CategoryFunctionCall,

	"rate_limits.updated": CategoryRateLimits,
}

// Categorize maps an event type string to its category, or CategoryUnknown
// for types not in the table.
func Categorize(eventType string) Category {
	if c, ok := categories[eventType]; ok {
		return c
	}
	return CategoryUnknown
}

// deltaTypes is the closed set of streaming delta event types subject to
// run-length aggregation.
var deltaTypes = map[string]bool{
	TypeAudioDelta:              true,
	TypeAudioTranscriptDelta:    true,
	TypeTextDelta:               true,
	TypeFunctionCallArgsDelta:   true,
	TypeInputTranscriptionDelta: true,
}

// IsDelta reports whether the event type is a streaming delta type.
func IsDelta(eventType string) bool {
	return deltaTypes[eventType]
}

// CarriesText reports whether aggregated runs of this delta type reconstruct
// a streamed string (transcripts, text, function-call arguments). Audio runs
// carry base64 samples instead and are reconstructed by the audio codec.
func CarriesText(eventType string) bool {
	return deltaTypes[eventType] && eventType != TypeAudioDelta
}
