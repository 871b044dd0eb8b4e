package realtimews

import (
	"encoding/json"
	"errors"
)

// ServerEventType is the "type" discriminant of an inbound frame.
type ServerEventType string

// Known server event types.
const (
	EventTypeError                              ServerEventType = "error"
	EventTypeSessionCreated                     ServerEventType = "session.created"
	EventTypeSessionUpdated                     ServerEventType = "session.updated"
	EventTypeTranscriptionSessionUpdated        ServerEventType = "transcription_session.updated"
	EventTypeConversationCreated                ServerEventType = "conversation.created"
	EventTypeConversationItemCreated            ServerEventType = "conversation.item.created"
	EventTypeConversationItemRetrieved          ServerEventType = "conversation.item.retrieved"
	EventTypeConversationItemTruncated          ServerEventType = "conversation.item.truncated"
	EventTypeConversationItemDeleted            ServerEventType = "conversation.item.deleted"
	EventTypeInputAudioTranscriptionDelta       ServerEventType = "conversation.item.input_audio_transcription.delta"
	EventTypeInputAudioTranscriptionCompleted   ServerEventType = "conversation.item.input_audio_transcription.completed"
	EventTypeInputAudioTranscriptionFailed      ServerEventType = "conversation.item.input_audio_transcription.failed"
	EventTypeInputAudioBufferCommitted          ServerEventType = "input_audio_buffer.committed"
	EventTypeInputAudioBufferCleared            ServerEventType = "input_audio_buffer.cleared"
	EventTypeInputAudioBufferSpeechStarted      ServerEventType = "input_audio_buffer.speech_started"
	EventTypeInputAudioBufferSpeechStopped      ServerEventType = "input_audio_buffer.speech_stopped"
	EventTypeOutputAudioBufferStarted           ServerEventType = "output_audio_buffer.started"
	EventTypeOutputAudioBufferStopped           ServerEventType = "output_audio_buffer.stopped"
	EventTypeOutputAudioBufferCleared           ServerEventType = "output_audio_buffer.cleared"
	EventTypeResponseCreated                    ServerEventType = "response.created"
	EventTypeResponseDone                       ServerEventType = "response.done"
	EventTypeResponseOutputItemAdded            ServerEventType = "response.output_item.added"
	EventTypeResponseOutputItemDone             ServerEventType = "response.output_item.done"
	EventTypeResponseContentPartAdded           ServerEventType = "response.content_part.added"
	EventTypeResponseContentPartDone            ServerEventType = "response.content_part.done"
	EventTypeResponseTextDelta                  ServerEventType = "response.text.delta"
	EventTypeResponseTextDone                   ServerEventType = "response.text.done"
	EventTypeResponseAudioDelta                 ServerEventType = "response.audio.delta"
	EventTypeResponseAudioDone                  ServerEventType = "response.audio.done"
	EventTypeResponseAudioTranscriptDelta       ServerEventType = "response.audio_transcript.delta"
	EventTypeResponseAudioTranscriptDone        ServerEventType = "response.audio_transcript.done"
	EventTypeResponseFunctionCallArgumentsDelta ServerEventType = "response.function_call_arguments.delta"
	EventTypeResponseFunctionCallArgumentsDone  ServerEventType = "response.function_call_arguments.done"
	EventTypeRateLimitsUpdated                  ServerEventType = "rate_limits.updated"
)

// ServerEvent is the closed set of inbound records. Every concrete type in this
// file implements it; frames with an unrecognized type arrive as UnknownEvent.
// Consumers type-switch over it:
//
//	switch e := ev.(type) {
//	case realtimews.ResponseTextDelta:
//		fmt.Print(e.Delta)
//	case realtimews.UnknownEvent:
//		log.Printf("unhandled %s", e.Type)
//	}
type ServerEvent interface {
	EventType() ServerEventType
	serverEvent()
}

var errNotObject = errors.New("frame is not a JSON object")

// ParseServerEvent decodes one inbound frame. It fails only when data is not a
// JSON object. An object without a string "type" is returned as an UnknownEvent
// with an empty Type; a frame whose body does not fit the typed struct for its
// type is returned as UnknownEvent with the raw bytes and DecodeErr set.
func ParseServerEvent(data []byte) (ServerEvent, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, NewEventError(data, err)
	}
	if fields == nil {
		return nil, NewEventError(data, errNotObject)
	}

	raw := append(json.RawMessage(nil), data...)
	var typ ServerEventType
	if t, ok := fields["type"]; ok {
		_ = json.Unmarshal(t, &typ)
	}
	if typ == "" {
		return UnknownEvent{Raw: raw}, nil
	}

	decode, ok := serverEventDecoders[typ]
	if !ok {
		return UnknownEvent{Type: typ, Raw: raw}, nil
	}
	ev, err := decode(data)
	if err != nil {
		return UnknownEvent{Type: typ, Raw: raw, DecodeErr: err}, nil
	}
	return ev, nil
}

func decodeAs[T ServerEvent](data []byte) (ServerEvent, error) {
	var ev T
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return ev, nil
}

var serverEventDecoders = map[ServerEventType]func([]byte) (ServerEvent, error){
	EventTypeError:                              decodeAs[ErrorEvent],
	EventTypeSessionCreated:                     decodeAs[SessionCreated],
	EventTypeSessionUpdated:                     decodeAs[SessionUpdated],
	EventTypeTranscriptionSessionUpdated:        decodeAs[TranscriptionSessionUpdated],
	EventTypeConversationCreated:                decodeAs[ConversationCreated],
	EventTypeConversationItemCreated:            decodeAs[ConversationItemCreated],
	EventTypeConversationItemRetrieved:          decodeAs[ConversationItemRetrieved],
	EventTypeConversationItemTruncated:          decodeAs[ConversationItemTruncated],
	EventTypeConversationItemDeleted:            decodeAs[ConversationItemDeleted],
	EventTypeInputAudioTranscriptionDelta:       decodeAs[InputAudioTranscriptionDelta],
	EventTypeInputAudioTranscriptionCompleted:   decodeAs[InputAudioTranscriptionCompleted],
	EventTypeInputAudioTranscriptionFailed:      decodeAs[InputAudioTranscriptionFailed],
	EventTypeInputAudioBufferCommitted:          decodeAs[InputAudioBufferCommitted],
	EventTypeInputAudioBufferCleared:            decodeAs[InputAudioBufferCleared],
	EventTypeInputAudioBufferSpeechStarted:      decodeAs[InputAudioBufferSpeechStarted],
	EventTypeInputAudioBufferSpeechStopped:      decodeAs[InputAudioBufferSpeechStopped],
	EventTypeOutputAudioBufferStarted:           decodeAs[OutputAudioBufferStarted],
	EventTypeOutputAudioBufferStopped:           decodeAs[OutputAudioBufferStopped],
	EventTypeOutputAudioBufferCleared:           decodeAs[OutputAudioBufferCleared],
	EventTypeResponseCreated:                    decodeAs[ResponseCreated],
	EventTypeResponseDone:                       decodeAs[ResponseDone],
	EventTypeResponseOutputItemAdded:            decodeAs[ResponseOutputItemAdded],
	EventTypeResponseOutputItemDone:             decodeAs[ResponseOutputItemDone],
	EventTypeResponseContentPartAdded:           decodeAs[ResponseContentPartAdded],
	EventTypeResponseContentPartDone:            decodeAs[ResponseContentPartDone],
	EventTypeResponseTextDelta:                  decodeAs[ResponseTextDelta],
	EventTypeResponseTextDone:                   decodeAs[ResponseTextDone],
	EventTypeResponseAudioDelta:                 decodeAs[ResponseAudioDelta],
	EventTypeResponseAudioDone:                  decodeAs[ResponseAudioDone],
	EventTypeResponseAudioTranscriptDelta:       decodeAs[ResponseAudioTranscriptDelta],
	EventTypeResponseAudioTranscriptDone:        decodeAs[ResponseAudioTranscriptDone],
	EventTypeResponseFunctionCallArgumentsDelta: decodeAs[ResponseFunctionCallArgumentsDelta],
	EventTypeResponseFunctionCallArgumentsDone:  decodeAs[ResponseFunctionCallArgumentsDone],
	EventTypeRateLimitsUpdated:                  decodeAs[RateLimitsUpdated],
}

// UnknownEvent carries frames whose type has no typed struct, or whose body
// did not decode into it (DecodeErr is set in that case).
type UnknownEvent struct {
	Type      ServerEventType
	Raw       json.RawMessage
	DecodeErr error
}

func (e UnknownEvent) EventType() ServerEventType { return e.Type }
func (UnknownEvent) serverEvent()                 {}

// MarshalJSON returns the original frame.
func (e UnknownEvent) MarshalJSON() ([]byte, error) { return e.Raw, nil }

// errorMessage pulls a message out of an "error" frame that did not decode
// into ErrorEvent. Both `"error":"text"` and `"error":{"message":"text"}` are
// understood.
func (e UnknownEvent) errorMessage() string {
	var body struct {
		Error json.RawMessage `json:"error"`
	}
	if json.Unmarshal(e.Raw, &body) == nil && len(body.Error) > 0 {
		var text string
		if json.Unmarshal(body.Error, &text) == nil && text != "" {
			return text
		}
		var detail struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body.Error, &detail) == nil && detail.Message != "" {
			return detail.Message
		}
	}
	return "malformed server error event"
}

// Shared resources

// ContentPart is one piece of a conversation item's content.
type ContentPart struct {
	Type       string `json:"type"`                 // "input_text", "input_audio", "text", "audio", "item_reference"
	Text       string `json:"text,omitempty"`       // Text content
	Audio      string `json:"audio,omitempty"`      // Base64-encoded audio
	Transcript string `json:"transcript,omitempty"` // Transcript of the audio
	ID         string `json:"id,omitempty"`         // Referenced item ID for item_reference parts
}

// ConversationItem is a message, function call, or function call output.
type ConversationItem struct {
	ID        string        `json:"id,omitempty"`
	Object    string        `json:"object,omitempty"` // Always "realtime.item"
	Type      string        `json:"type"`             // "message", "function_call", "function_call_output"
	Status    string        `json:"status,omitempty"` // "completed", "incomplete", "in_progress"
	Role      string        `json:"role,omitempty"`   // "user", "assistant", "system"
	Content   []ContentPart `json:"content,omitempty"`
	CallID    string        `json:"call_id,omitempty"`   // For function_call and function_call_output
	Name      string        `json:"name,omitempty"`      // Function name for function_call
	Arguments string        `json:"arguments,omitempty"` // JSON arguments for function_call
	Output    string        `json:"output,omitempty"`    // Output for function_call_output
}

// Usage reports token accounting for a response.
type Usage struct {
	TotalTokens        int                `json:"total_tokens"`
	InputTokens        int                `json:"input_tokens"`
	OutputTokens       int                `json:"output_tokens"`
	InputTokenDetails  InputTokenDetails  `json:"input_token_details"`
	OutputTokenDetails OutputTokenDetails `json:"output_token_details"`
}

type InputTokenDetails struct {
	CachedTokens int `json:"cached_tokens"`
	TextTokens   int `json:"text_tokens"`
	AudioTokens  int `json:"audio_tokens"`
}

type OutputTokenDetails struct {
	TextTokens  int `json:"text_tokens"`
	AudioTokens int `json:"audio_tokens"`
}

// ResponseResource is the response object carried by response.created/done.
type ResponseResource struct {
	ID            string             `json:"id"`
	Object        string             `json:"object,omitempty"` // Always "realtime.response"
	Status        string             `json:"status"`           // "in_progress", "completed", "cancelled", "failed", "incomplete"
	StatusDetails json.RawMessage    `json:"status_details,omitempty"`
	Output        []ConversationItem `json:"output,omitempty"`
	Metadata      map[string]string  `json:"metadata,omitempty"`
	Usage         *Usage             `json:"usage,omitempty"`
}

// SessionResource is the server's view of session configuration.
type SessionResource struct {
	ID                      string              `json:"id"`
	Object                  string              `json:"object,omitempty"`
	Model                   string              `json:"model,omitempty"`
	Modalities              []string            `json:"modalities,omitempty"`
	Instructions            string              `json:"instructions,omitempty"`
	Voice                   string              `json:"voice,omitempty"`
	InputAudioFormat        string              `json:"input_audio_format,omitempty"`
	OutputAudioFormat       string              `json:"output_audio_format,omitempty"`
	InputAudioTranscription *InputTranscription `json:"input_audio_transcription,omitempty"`
	TurnDetection           *TurnDetection      `json:"turn_detection,omitempty"`
	Tools                   []Tool              `json:"tools,omitempty"`
	ToolChoice              string              `json:"tool_choice,omitempty"`
	Temperature             float64             `json:"temperature,omitempty"`
	MaxResponseOutputTokens json.RawMessage     `json:"max_response_output_tokens,omitempty"` // Integer or "inf"
	ExpiresAt               int64               `json:"expires_at,omitempty"`
}

// Server events

// ErrorEvent is sent by the server when a request fails. Conn never emits it
// under its own type; it is routed to error listeners as a RealtimeError.
type ErrorEvent struct {
	Type    ServerEventType `json:"type"`
	EventID string          `json:"event_id"`
	Error   ErrorDetail     `json:"error"`
}

// ErrorDetail describes a server-side failure.
type ErrorDetail struct {
	Type    string `json:"type"`               // e.g. "invalid_request_error"
	Code    string `json:"code,omitempty"`     // Error code, if any
	Message string `json:"message"`            // Human-readable description
	Param   string `json:"param,omitempty"`    // Parameter related to the error
	EventID string `json:"event_id,omitempty"` // The client event that caused it
}

// SessionCreated is the first event on a new connection.
type SessionCreated struct {
	Type    ServerEventType `json:"type"`
	EventID string          `json:"event_id"`
	Session SessionResource `json:"session"`
}

// SessionUpdated acknowledges a session.update.
type SessionUpdated struct {
	Type    ServerEventType `json:"type"`
	EventID string          `json:"event_id"`
	Session SessionResource `json:"session"`
}

// TranscriptionSessionUpdated acknowledges a transcription_session.update.
type TranscriptionSessionUpdated struct {
	Type    ServerEventType `json:"type"`
	EventID string          `json:"event_id"`
	Session json.RawMessage `json:"session"`
}

// ConversationCreated follows session creation.
type ConversationCreated struct {
	Type         ServerEventType `json:"type"`
	EventID      string          `json:"event_id"`
	Conversation struct {
		ID     string `json:"id"`
		Object string `json:"object"`
	} `json:"conversation"`
}

// ConversationItemCreated indicates that a conversation item has been created.
type ConversationItemCreated struct {
	Type           ServerEventType  `json:"type"`
	EventID        string           `json:"event_id"`
	PreviousItemID string           `json:"previous_item_id"`
	Item           ConversationItem `json:"item"`
}

// ConversationItemRetrieved answers conversation.item.retrieve.
type ConversationItemRetrieved struct {
	Type    ServerEventType  `json:"type"`
	EventID string           `json:"event_id"`
	Item    ConversationItem `json:"item"`
}

// ConversationItemTruncated indicates that an assistant audio item was truncated.
type ConversationItemTruncated struct {
	Type         ServerEventType `json:"type"`
	EventID      string          `json:"event_id"`
	ItemID       string          `json:"item_id"`
	ContentIndex int             `json:"content_index"`
	AudioEndMs   int             `json:"audio_end_ms"`
}

// ConversationItemDeleted indicates that a conversation item has been deleted.
type ConversationItemDeleted struct {
	Type    ServerEventType `json:"type"`
	EventID string          `json:"event_id"`
	ItemID  string          `json:"item_id"`
}

// InputAudioTranscriptionDelta streams partial transcription of user audio.
type InputAudioTranscriptionDelta struct {
	Type         ServerEventType `json:"type"`
	EventID      string          `json:"event_id"`
	ItemID       string          `json:"item_id"`
	ContentIndex int             `json:"content_index"`
	Delta        string          `json:"delta"`
}

// InputAudioTranscriptionCompleted carries the final transcript of user audio.
type InputAudioTranscriptionCompleted struct {
	Type         ServerEventType `json:"type"`
	EventID      string          `json:"event_id"`
	ItemID       string          `json:"item_id"`
	ContentIndex int             `json:"content_index"`
	Transcript   string          `json:"transcript"`
}

// InputAudioTranscriptionFailed reports a failed transcription. The embedded
// error describes the transcription, not the connection.
type InputAudioTranscriptionFailed struct {
	Type         ServerEventType `json:"type"`
	EventID      string          `json:"event_id"`
	ItemID       string          `json:"item_id"`
	ContentIndex int             `json:"content_index"`
	Error        ErrorDetail     `json:"error"`
}

type InputAudioBufferCommitted struct {
	Type           ServerEventType `json:"type"`
	EventID        string          `json:"event_id"`
	PreviousItemID string          `json:"previous_item_id"`
	ItemID         string          `json:"item_id"`
}

type InputAudioBufferCleared struct {
	Type    ServerEventType `json:"type"`
	EventID string          `json:"event_id"`
}

// InputAudioBufferSpeechStarted is sent in server VAD mode when speech begins.
type InputAudioBufferSpeechStarted struct {
	Type         ServerEventType `json:"type"`
	EventID      string          `json:"event_id"`
	AudioStartMs int             `json:"audio_start_ms"`
	ItemID       string          `json:"item_id"`
}

// InputAudioBufferSpeechStopped is sent in server VAD mode when speech ends.
type InputAudioBufferSpeechStopped struct {
	Type       ServerEventType `json:"type"`
	EventID    string          `json:"event_id"`
	AudioEndMs int             `json:"audio_end_ms"`
	ItemID     string          `json:"item_id"`
}

type OutputAudioBufferStarted struct {
	Type       ServerEventType `json:"type"`
	EventID    string          `json:"event_id"`
	ResponseID string          `json:"response_id"`
}

type OutputAudioBufferStopped struct {
	Type       ServerEventType `json:"type"`
	EventID    string          `json:"event_id"`
	ResponseID string          `json:"response_id"`
}

type OutputAudioBufferCleared struct {
	Type       ServerEventType `json:"type"`
	EventID    string          `json:"event_id"`
	ResponseID string          `json:"response_id"`
}

type ResponseCreated struct {
	Type     ServerEventType  `json:"type"`
	EventID  string           `json:"event_id"`
	Response ResponseResource `json:"response"`
}

// ResponseDone is sent once per response regardless of its final status.
type ResponseDone struct {
	Type     ServerEventType  `json:"type"`
	EventID  string           `json:"event_id"`
	Response ResponseResource `json:"response"`
}

type ResponseOutputItemAdded struct {
	Type        ServerEventType  `json:"type"`
	EventID     string           `json:"event_id"`
	ResponseID  string           `json:"response_id"`
	OutputIndex int              `json:"output_index"`
	Item        ConversationItem `json:"item"`
}

type ResponseOutputItemDone struct {
	Type        ServerEventType  `json:"type"`
	EventID     string           `json:"event_id"`
	ResponseID  string           `json:"response_id"`
	OutputIndex int              `json:"output_index"`
	Item        ConversationItem `json:"item"`
}

type ResponseContentPartAdded struct {
	Type         ServerEventType `json:"type"`
	EventID      string          `json:"event_id"`
	ResponseID   string          `json:"response_id"`
	ItemID       string          `json:"item_id"`
	OutputIndex  int             `json:"output_index"`
	ContentIndex int             `json:"content_index"`
	Part         ContentPart     `json:"part"`
}

type ResponseContentPartDone struct {
	Type         ServerEventType `json:"type"`
	EventID      string          `json:"event_id"`
	ResponseID   string          `json:"response_id"`
	ItemID       string          `json:"item_id"`
	OutputIndex  int             `json:"output_index"`
	ContentIndex int             `json:"content_index"`
	Part         ContentPart     `json:"part"`
}

// ResponseTextDelta contains incremental text content from the assistant.
type ResponseTextDelta struct {
	Type         ServerEventType `json:"type"`
	EventID      string          `json:"event_id"`
	ResponseID   string          `json:"response_id"`
	ItemID       string          `json:"item_id"`
	OutputIndex  int             `json:"output_index"`
	ContentIndex int             `json:"content_index"`
	Delta        string          `json:"delta"`
}

// ResponseTextDone carries the complete text of one content part.
type ResponseTextDone struct {
	Type         ServerEventType `json:"type"`
	EventID      string          `json:"event_id"`
	ResponseID   string          `json:"response_id"`
	ItemID       string          `json:"item_id"`
	OutputIndex  int             `json:"output_index"`
	ContentIndex int             `json:"content_index"`
	Text         string          `json:"text"`
}

// ResponseAudioDelta carries base64-encoded audio in the session's output format.
type ResponseAudioDelta struct {
	Type         ServerEventType `json:"type"`
	EventID      string          `json:"event_id"`
	ResponseID   string          `json:"response_id"`
	ItemID       string          `json:"item_id"`
	OutputIndex  int             `json:"output_index"`
	ContentIndex int             `json:"content_index"`
	DeltaBase64  string          `json:"delta"`
}

type ResponseAudioDone struct {
	Type         ServerEventType `json:"type"`
	EventID      string          `json:"event_id"`
	ResponseID   string          `json:"response_id"`
	ItemID       string          `json:"item_id"`
	OutputIndex  int             `json:"output_index"`
	ContentIndex int             `json:"content_index"`
}

type ResponseAudioTranscriptDelta struct {
	Type         ServerEventType `json:"type"`
	EventID      string          `json:"event_id"`
	ResponseID   string          `json:"response_id"`
	ItemID       string          `json:"item_id"`
	OutputIndex  int             `json:"output_index"`
	ContentIndex int             `json:"content_index"`
	Delta        string          `json:"delta"`
}

type ResponseAudioTranscriptDone struct {
	Type         ServerEventType `json:"type"`
	EventID      string          `json:"event_id"`
	ResponseID   string          `json:"response_id"`
	ItemID       string          `json:"item_id"`
	OutputIndex  int             `json:"output_index"`
	ContentIndex int             `json:"content_index"`
	Transcript   string          `json:"transcript"`
}

type ResponseFunctionCallArgumentsDelta struct {
	Type        ServerEventType `json:"type"`
	EventID     string          `json:"event_id"`
	ResponseID  string          `json:"response_id"`
	ItemID      string          `json:"item_id"`
	OutputIndex int             `json:"output_index"`
	CallID      string          `json:"call_id"`
	Delta       string          `json:"delta"`
}

type ResponseFunctionCallArgumentsDone struct {
	Type        ServerEventType `json:"type"`
	EventID     string          `json:"event_id"`
	ResponseID  string          `json:"response_id"`
	ItemID      string          `json:"item_id"`
	OutputIndex int             `json:"output_index"`
	CallID      string          `json:"call_id"`
	Name        string          `json:"name,omitempty"`
	Arguments   string          `json:"arguments"`
}

// RateLimitsUpdated is sent after every response.done.
type RateLimitsUpdated struct {
	Type       ServerEventType `json:"type"`
	EventID    string          `json:"event_id"`
	RateLimits []RateLimit     `json:"rate_limits"`
}

type RateLimit struct {
	Name         string  `json:"name"` // "requests" or "tokens"
	Limit        int     `json:"limit"`
	Remaining    int     `json:"remaining"`
	ResetSeconds float64 `json:"reset_seconds"`
}

func (ErrorEvent) EventType() ServerEventType     { return EventTypeError }
func (SessionCreated) EventType() ServerEventType { return EventTypeSessionCreated }
func (SessionUpdated) EventType() ServerEventType { return EventTypeSessionUpdated }
func (TranscriptionSessionUpdated) EventType() ServerEventType {
	return EventTypeTranscriptionSessionUpdated
}
func (ConversationCreated) EventType() ServerEventType     { return EventTypeConversationCreated }
func (ConversationItemCreated) EventType() ServerEventType { return EventTypeConversationItemCreated }
func (ConversationItemRetrieved) EventType() ServerEventType {
	return EventTypeConversationItemRetrieved
}
func (ConversationItemTruncated) EventType() ServerEventType {
	return EventTypeConversationItemTruncated
}
func (ConversationItemDeleted) EventType() ServerEventType { return EventTypeConversationItemDeleted }
func (InputAudioTranscriptionDelta) EventType() ServerEventType {
	return EventTypeInputAudioTranscriptionDelta
}
func (InputAudioTranscriptionCompleted) EventType() ServerEventType {
	return EventTypeInputAudioTranscriptionCompleted
}
func (InputAudioTranscriptionFailed) EventType() ServerEventType {
	return EventTypeInputAudioTranscriptionFailed
}
func (InputAudioBufferCommitted) EventType() ServerEventType {
	return EventTypeInputAudioBufferCommitted
}
func (InputAudioBufferCleared) EventType() ServerEventType { return EventTypeInputAudioBufferCleared }
func (InputAudioBufferSpeechStarted) EventType() ServerEventType {
	return EventTypeInputAudioBufferSpeechStarted
}
func (InputAudioBufferSpeechStopped) EventType() ServerEventType {
	return EventTypeInputAudioBufferSpeechStopped
}
func (OutputAudioBufferStarted) EventType() ServerEventType {
	return EventTypeOutputAudioBufferStarted
}
func (OutputAudioBufferStopped) EventType() ServerEventType {
	return EventTypeOutputAudioBufferStopped
}
func (OutputAudioBufferCleared) EventType() ServerEventType {
	return EventTypeOutputAudioBufferCleared
}
func (ResponseCreated) EventType() ServerEventType         { return EventTypeResponseCreated }
func (ResponseDone) EventType() ServerEventType            { return EventTypeResponseDone }
func (ResponseOutputItemAdded) EventType() ServerEventType { return EventTypeResponseOutputItemAdded }
func (ResponseOutputItemDone) EventType() ServerEventType  { return EventTypeResponseOutputItemDone }
func (ResponseContentPartAdded) EventType() ServerEventType {
	return EventTypeResponseContentPartAdded
}
func (ResponseContentPartDone) EventType() ServerEventType { return EventTypeResponseContentPartDone }
func (ResponseTextDelta) EventType() ServerEventType       { return EventTypeResponseTextDelta }
func (ResponseTextDone) EventType() ServerEventType        { return EventTypeResponseTextDone }
func (ResponseAudioDelta) EventType() ServerEventType      { return EventTypeResponseAudioDelta }
func (ResponseAudioDone) EventType() ServerEventType       { return EventTypeResponseAudioDone }
func (ResponseAudioTranscriptDelta) EventType() ServerEventType {
	return EventTypeResponseAudioTranscriptDelta
}
func (ResponseAudioTranscriptDone) EventType() ServerEventType {
	return EventTypeResponseAudioTranscriptDone
}
func (ResponseFunctionCallArgumentsDelta) EventType() ServerEventType {
	return EventTypeResponseFunctionCallArgumentsDelta
}
func (ResponseFunctionCallArgumentsDone) EventType() ServerEventType {
	return EventTypeResponseFunctionCallArgumentsDone
}
func (RateLimitsUpdated) EventType() ServerEventType { return EventTypeRateLimitsUpdated }

func (ErrorEvent) serverEvent()                         {}
func (SessionCreated) serverEvent()                     {}
func (SessionUpdated) serverEvent()                     {}
func (TranscriptionSessionUpdated) serverEvent()        {}
func (ConversationCreated) serverEvent()                {}
func (ConversationItemCreated) serverEvent()            {}
func (ConversationItemRetrieved) serverEvent()          {}
func (ConversationItemTruncated) serverEvent()          {}
func (ConversationItemDeleted) serverEvent()            {}
func (InputAudioTranscriptionDelta) serverEvent()       {}
func (InputAudioTranscriptionCompleted) serverEvent()   {}
func (InputAudioTranscriptionFailed) serverEvent()      {}
func (InputAudioBufferCommitted) serverEvent()          {}
func (InputAudioBufferCleared) serverEvent()            {}
func (InputAudioBufferSpeechStarted) serverEvent()      {}
func (InputAudioBufferSpeechStopped) serverEvent()      {}
func (OutputAudioBufferStarted) serverEvent()           {}
func (OutputAudioBufferStopped) serverEvent()           {}
func (OutputAudioBufferCleared) serverEvent()           {}
func (ResponseCreated) serverEvent()                    {}
func (ResponseDone) serverEvent()                       {}
func (ResponseOutputItemAdded) serverEvent()            {}
func (ResponseOutputItemDone) serverEvent()             {}
func (ResponseContentPartAdded) serverEvent()           {}
func (ResponseContentPartDone) serverEvent()            {}
func (ResponseTextDelta) serverEvent()                  {}
func (ResponseTextDone) serverEvent()                   {}
func (ResponseAudioDelta) serverEvent()                 {}
func (ResponseAudioDone) serverEvent()                  {}
func (ResponseAudioTranscriptDelta) serverEvent()       {}
func (ResponseAudioTranscriptDone) serverEvent()        {}
func (ResponseFunctionCallArgumentsDelta) serverEvent() {}
func (ResponseFunctionCallArgumentsDone) serverEvent()  {}
func (RateLimitsUpdated) serverEvent()                  {}
