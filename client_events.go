package realtimews

import (
	"encoding/base64"
	"encoding/json"
	"reflect"
)

// ClientEvent is an outbound record. Conn.Send serializes it with
// encoding/json and performs no validation of its shape.
type ClientEvent interface {
	ClientEventType() string
}

// RawClientEvent sends an arbitrary JSON object. Its "type" entry, when it is
// a string, is used as the event type in errors and metrics.
type RawClientEvent map[string]any

func (e RawClientEvent) ClientEventType() string {
	if t, ok := e["type"].(string); ok {
		return t
	}
	return "unknown"
}

// Session defines the configuration for a realtime conversation session.
// Nil fields are omitted so a session.update only changes what is set.
type Session struct {
	// Modalities the model may respond with: "text", "audio".
	Modalities []string `json:"modalities,omitempty"`

	// Instructions provide system-level guidance to the assistant.
	Instructions *string `json:"instructions,omitempty"`

	// Voice specifies which voice to use for audio responses.
	Voice *string `json:"voice,omitempty"`

	// InputAudioFormat is "pcm16", "g711_ulaw" or "g711_alaw".
	InputAudioFormat *string `json:"input_audio_format,omitempty"`

	// OutputAudioFormat is "pcm16", "g711_ulaw" or "g711_alaw".
	OutputAudioFormat *string `json:"output_audio_format,omitempty"`

	InputTranscription *InputTranscription `json:"input_audio_transcription,omitempty"`
	TurnDetection      *TurnDetection      `json:"turn_detection,omitempty"`
	Tools              []Tool              `json:"tools,omitempty"`
	ToolChoice         *string             `json:"tool_choice,omitempty"`
	Temperature        *float64            `json:"temperature,omitempty"`

	// MaxResponseOutputTokens is an integer or the string "inf".
	MaxResponseOutputTokens any `json:"max_response_output_tokens,omitempty"`
}

// InputTranscription configures automatic speech recognition for user input.
type InputTranscription struct {
	Model    string  `json:"model,omitempty"`
	Language string  `json:"language,omitempty"`
	Prompt   *string `json:"prompt,omitempty"`
}

// TurnDetection configures voice activity detection and response timing.
type TurnDetection struct {
	Type              string  `json:"type"` // "server_vad" or "semantic_vad"
	Threshold         float64 `json:"threshold,omitempty"`
	PrefixPaddingMS   int     `json:"prefix_padding_ms,omitempty"`
	SilenceDurationMS int     `json:"silence_duration_ms,omitempty"`
	CreateResponse    *bool   `json:"create_response,omitempty"`
	InterruptResponse *bool   `json:"interrupt_response,omitempty"`
}

// Tool is a function the model may call.
type Tool struct {
	Type        string          `json:"type"` // Always "function"
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters,omitempty"` // JSON Schema
}

// ResponseOptions overrides session settings for a single response.create.
type ResponseOptions struct {
	Modalities        []string           `json:"modalities,omitempty"`
	Instructions      string             `json:"instructions,omitempty"`
	Voice             string             `json:"voice,omitempty"`
	OutputAudioFormat string             `json:"output_audio_format,omitempty"`
	Tools             []Tool             `json:"tools,omitempty"`
	ToolChoice        string             `json:"tool_choice,omitempty"`
	Temperature       *float64           `json:"temperature,omitempty"`
	Conversation      string             `json:"conversation,omitempty"` // "auto" or "none"
	Metadata          map[string]string  `json:"metadata,omitempty"`
	Input             []ConversationItem `json:"input,omitempty"`
}

// SessionUpdateEvent changes session configuration.
type SessionUpdateEvent struct {
	EventID string  `json:"event_id,omitempty"`
	Session Session `json:"session"`
}

// TranscriptionSessionUpdateEvent configures a transcription-only session.
type TranscriptionSessionUpdateEvent struct {
	EventID string          `json:"event_id,omitempty"`
	Session json.RawMessage `json:"session"`
}

// InputAudioBufferAppendEvent appends base64-encoded audio to the input buffer.
type InputAudioBufferAppendEvent struct {
	EventID string `json:"event_id,omitempty"`
	Audio   string `json:"audio"`
}

// AppendPCM16 builds an append event from raw little-endian PCM16 samples.
func AppendPCM16(pcmLE []byte) InputAudioBufferAppendEvent {
	return InputAudioBufferAppendEvent{Audio: base64.StdEncoding.EncodeToString(pcmLE)}
}

type InputAudioBufferCommitEvent struct {
	EventID string `json:"event_id,omitempty"`
}

type InputAudioBufferClearEvent struct {
	EventID string `json:"event_id,omitempty"`
}

type OutputAudioBufferClearEvent struct {
	EventID string `json:"event_id,omitempty"`
}

// ConversationItemCreateEvent inserts an item into the conversation.
type ConversationItemCreateEvent struct {
	EventID        string           `json:"event_id,omitempty"`
	PreviousItemID string           `json:"previous_item_id,omitempty"`
	Item           ConversationItem `json:"item"`
}

// ConversationItemTruncateEvent truncates a previous assistant audio message.
type ConversationItemTruncateEvent struct {
	EventID      string `json:"event_id,omitempty"`
	ItemID       string `json:"item_id"`
	ContentIndex int    `json:"content_index"`
	AudioEndMs   int    `json:"audio_end_ms"`
}

type ConversationItemDeleteEvent struct {
	EventID string `json:"event_id,omitempty"`
	ItemID  string `json:"item_id"`
}

type ConversationItemRetrieveEvent struct {
	EventID string `json:"event_id,omitempty"`
	ItemID  string `json:"item_id"`
}

// ResponseCreateEvent asks the model to respond. A nil Response uses session defaults.
type ResponseCreateEvent struct {
	EventID  string           `json:"event_id,omitempty"`
	Response *ResponseOptions `json:"response,omitempty"`
}

type ResponseCancelEvent struct {
	EventID    string `json:"event_id,omitempty"`
	ResponseID string `json:"response_id,omitempty"`
}

func (SessionUpdateEvent) ClientEventType() string { return "session.update" }
func (TranscriptionSessionUpdateEvent) ClientEventType() string {
	return "transcription_session.update"
}
func (InputAudioBufferAppendEvent) ClientEventType() string   { return "input_audio_buffer.append" }
func (InputAudioBufferCommitEvent) ClientEventType() string   { return "input_audio_buffer.commit" }
func (InputAudioBufferClearEvent) ClientEventType() string    { return "input_audio_buffer.clear" }
func (OutputAudioBufferClearEvent) ClientEventType() string   { return "output_audio_buffer.clear" }
func (ConversationItemCreateEvent) ClientEventType() string   { return "conversation.item.create" }
func (ConversationItemTruncateEvent) ClientEventType() string { return "conversation.item.truncate" }
func (ConversationItemDeleteEvent) ClientEventType() string   { return "conversation.item.delete" }
func (ConversationItemRetrieveEvent) ClientEventType() string { return "conversation.item.retrieve" }
func (ResponseCreateEvent) ClientEventType() string           { return "response.create" }
func (ResponseCancelEvent) ClientEventType() string           { return "response.cancel" }

// marshalClientEvent adds the "type" discriminant to typed events. Raw events
// are serialized as given.
func marshalClientEvent(ev ClientEvent) ([]byte, error) {
	switch e := ev.(type) {
	case RawClientEvent:
		return json.Marshal(map[string]any(e))
	case json.Marshaler:
		// Through json.Marshal so the output is validated and compacted.
		return json.Marshal(e)
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	if len(body) < 2 || body[0] != '{' {
		return body, nil
	}
	typ, _ := json.Marshal(ev.ClientEventType())
	if len(body) == 2 { // "{}"
		return []byte(`{"type":` + string(typ) + `}`), nil
	}
	out := make([]byte, 0, len(body)+len(typ)+8)
	out = append(out, `{"type":`...)
	out = append(out, typ...)
	out = append(out, ',')
	out = append(out, body[1:]...)
	return out, nil
}

// isNilEvent reports whether ev is nil or a nil pointer, map or slice held in
// the interface, on which ClientEventType may panic.
func isNilEvent(ev ClientEvent) bool {
	if ev == nil {
		return true
	}
	switch v := reflect.ValueOf(ev); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// clientEventID returns the event_id of ev when it carries one.
func clientEventID(ev ClientEvent) string {
	switch e := ev.(type) {
	case RawClientEvent:
		id, _ := e["event_id"].(string)
		return id
	case interface{ eventID() string }:
		return e.eventID()
	}
	return ""
}

func (e SessionUpdateEvent) eventID() string              { return e.EventID }
func (e TranscriptionSessionUpdateEvent) eventID() string { return e.EventID }
func (e InputAudioBufferAppendEvent) eventID() string     { return e.EventID }
func (e InputAudioBufferCommitEvent) eventID() string     { return e.EventID }
func (e InputAudioBufferClearEvent) eventID() string      { return e.EventID }
func (e OutputAudioBufferClearEvent) eventID() string     { return e.EventID }
func (e ConversationItemCreateEvent) eventID() string     { return e.EventID }
func (e ConversationItemTruncateEvent) eventID() string   { return e.EventID }
func (e ConversationItemDeleteEvent) eventID() string     { return e.EventID }
func (e ConversationItemRetrieveEvent) eventID() string   { return e.EventID }
func (e ResponseCreateEvent) eventID() string             { return e.EventID }
func (e ResponseCancelEvent) eventID() string             { return e.EventID }
