package realtimews

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"nhooyr.io/websocket"
)

type recorder struct {
	events chan ServerEvent
	errs   chan *RealtimeError
}

func record(c *Conn) *recorder {
	r := &recorder{events: make(chan ServerEvent, 16), errs: make(chan *RealtimeError, 16)}
	c.OnEvent(func(ev ServerEvent) { r.events <- ev })
	c.OnError(func(err *RealtimeError) { r.errs <- err })
	return r
}

func (r *recorder) nextEvent(t *testing.T) ServerEvent {
	t.Helper()
	select {
	case ev := <-r.events:
		return ev
	case err := <-r.errs:
		t.Fatalf("unexpected error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for an event")
	}
	return nil
}

func (r *recorder) nextError(t *testing.T) *RealtimeError {
	t.Helper()
	select {
	case err := <-r.errs:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for an error")
	}
	return nil
}

func (r *recorder) expectNoError(t *testing.T, wait time.Duration) {
	t.Helper()
	select {
	case err := <-r.errs:
		t.Errorf("unexpected error: %v", err)
	case <-time.After(wait):
	}
}

func quietLogger() *Logger { return NewLoggerWithWriter(LogLevelOff, &bytes.Buffer{}) }

func dialMock(t *testing.T, ms *MockServer, creds Credentials, opts Options) (*Conn, *recorder) {
	t.Helper()
	opts.Model = "gpt-realtime"
	if opts.Logger == nil {
		opts.Logger = quietLogger()
	}
	c, err := New(opts, creds)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r := record(c)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Open(ctx); err != nil {
		t.Fatalf("Open: %v", err)
	}
	return c, r
}

func TestWebSocket_RoundTrip(t *testing.T) {
	ms := NewMockServer(t)
	ms.Script = []string{
		`{"type":"session.created","event_id":"e1","session":{"id":"sess_1"}}`,
		`{"type":"response.text.delta","event_id":"e2","response_id":"r1","delta":"hi"}`,
	}

	c, r := dialMock(t, ms, &OpenAIClient{Key: "sk-test", BaseEndpoint: ms.BaseURL()}, Options{})

	if ev, ok := r.nextEvent(t).(SessionCreated); !ok || ev.Session.ID != "sess_1" {
		t.Fatalf("expected session.created first, got %+v", ev)
	}
	if ev, ok := r.nextEvent(t).(ResponseTextDelta); !ok || ev.Delta != "hi" {
		t.Fatalf("expected response.text.delta, got %+v", ev)
	}

	if err := c.Send(context.Background(), ResponseCreateEvent{EventID: "evt_1"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	got := ms.waitReceived(t, 1)
	if got[0] != `{"type":"response.create","event_id":"evt_1"}` {
		t.Errorf("unexpected frame %s", got[0])
	}

	c.Close()
	status, reason := ms.waitClosed(t)
	if status != websocket.StatusNormalClosure || reason != "OK" {
		t.Errorf("expected close 1000/OK, got %d/%q", status, reason)
	}
	r.expectNoError(t, 100*time.Millisecond)

	ms.mu.Lock()
	defer ms.mu.Unlock()
	want := []string{"realtime", "openai-insecure-api-key.sk-test", "openai-beta.realtime-v1"}
	if !reflect.DeepEqual(ms.subprotocols, want) {
		t.Errorf("expected subprotocols %v, got %v", want, ms.subprotocols)
	}
	if ms.query.Get("model") != "gpt-realtime" {
		t.Errorf("expected model query, got %v", ms.query)
	}
}

func TestWebSocket_Azure(t *testing.T) {
	ms := NewMockServer(t)
	ms.Script = []string{`{"type":"session.created"}`}

	creds := &AzureClient{Endpoint: ms.server.URL, Key: "az-key", APIVersion: "2024-10-01-preview"}
	c, r := dialMock(t, ms, creds, Options{HandshakeHeaders: map[string][]string{"X-Request-Id": {"req-1"}}})
	defer c.Close()
	r.nextEvent(t)

	ms.mu.Lock()
	defer ms.mu.Unlock()
	if !reflect.DeepEqual(ms.subprotocols, []string{"realtime", "openai-beta.realtime-v1"}) {
		t.Errorf("unexpected subprotocols %v", ms.subprotocols)
	}
	for k, v := range map[string]string{"api-key": "az-key", "api-version": "2024-10-01-preview", "deployment": "gpt-realtime"} {
		if ms.query.Get(k) != v {
			t.Errorf("query %s: expected %q, got %q", k, v, ms.query.Get(k))
		}
	}
	if ms.header.Get("X-Request-Id") != "req-1" {
		t.Errorf("expected handshake header, got %v", ms.header)
	}
}

func TestWebSocket_ServerCloseIsNotAnError(t *testing.T) {
	ms := NewMockServer(t)
	ms.Script = []string{`{"type":"session.created"}`}
	ms.CloseAfterScript = true

	_, r := dialMock(t, ms, &OpenAIClient{Key: "sk-test", BaseEndpoint: ms.BaseURL()}, Options{})
	r.nextEvent(t)
	ms.waitClosed(t)
	r.expectNoError(t, 200*time.Millisecond)
}

func TestWebSocket_BinaryFramesSkipped(t *testing.T) {
	ms := NewMockServer(t)
	ms.Binary = [][]byte{{0x01, 0x02, 0x03}}
	ms.Script = []string{`{"type":"session.created"}`}

	c, r := dialMock(t, ms, &OpenAIClient{Key: "sk-test", BaseEndpoint: ms.BaseURL()}, Options{})
	defer c.Close()

	if _, ok := r.nextEvent(t).(SessionCreated); !ok {
		t.Error("expected the text frame after the skipped binary frame")
	}
}

func TestWebSocket_OversizedFrameReported(t *testing.T) {
	ms := NewMockServer(t)
	ms.Script = []string{`{"type":"session.created","padding":"` + strings.Repeat("x", 256) + `"}`}

	dialer := &WebSocketDialer{ReadLimit: 64, Logger: quietLogger()}
	_, r := dialMock(t, ms, &OpenAIClient{Key: "sk-test", BaseEndpoint: ms.BaseURL()}, Options{Dialer: dialer})

	err := r.nextError(t)
	if err.Cause == nil {
		t.Errorf("expected the read failure as cause, got %+v", err)
	}
	select {
	case ev := <-r.events:
		t.Errorf("no event should be emitted for the oversized frame, got %T", ev)
	default:
	}
}

func TestWebSocket_DialFailure(t *testing.T) {
	c, err := New(Options{Model: "m", Logger: quietLogger()}, &OpenAIClient{Key: "sk", BaseEndpoint: "http://127.0.0.1:1/v1"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := c.Open(ctx); err == nil {
		t.Fatal("expected dial error")
	} else if !strings.Contains(err.Error(), "dial failed") {
		t.Errorf("unexpected error %v", err)
	}
}
