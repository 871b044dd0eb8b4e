package realtimews

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"nhooyr.io/websocket"
)

// MockServer is a realtime WebSocket endpoint for tests. It records the
// handshake, sends scripted frames after accepting, and collects every frame
// the client writes until the client closes.
type MockServer struct {
	server *httptest.Server
	t      *testing.T

	// Binary frames are written first, then Script as text frames.
	Binary [][]byte
	Script []string
	// CloseAfterScript closes with StatusNormalClosure once Script is sent.
	CloseAfterScript bool

	mu           sync.Mutex
	subprotocols []string
	query        url.Values
	header       http.Header
	received     []string
	closeStatus  websocket.StatusCode
	closeReason  string

	frames chan struct{}
	closed chan struct{}
}

func NewMockServer(t *testing.T) *MockServer {
	t.Helper()
	ms := &MockServer{t: t, frames: make(chan struct{}, 64), closed: make(chan struct{})}
	ms.server = httptest.NewServer(http.HandlerFunc(ms.handleWebSocket))
	t.Cleanup(ms.server.Close)
	return ms
}

// BaseURL is an http base suitable for OpenAIClient.BaseEndpoint.
func (ms *MockServer) BaseURL() string { return ms.server.URL + "/v1" }

func (ms *MockServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ms.mu.Lock()
	for _, v := range r.Header.Values("Sec-WebSocket-Protocol") {
		for _, p := range strings.Split(v, ",") {
			ms.subprotocols = append(ms.subprotocols, strings.TrimSpace(p))
		}
	}
	ms.query = r.URL.Query()
	ms.header = r.Header.Clone()
	ms.mu.Unlock()

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		Subprotocols:       []string{subprotocolRealtime},
		InsecureSkipVerify: true,
	})
	if err != nil {
		ms.t.Errorf("failed to upgrade to websocket: %v", err)
		return
	}
	defer close(ms.closed)
	ctx := r.Context()

	for _, b := range ms.Binary {
		if err := conn.Write(ctx, websocket.MessageBinary, b); err != nil {
			return
		}
	}
	for _, frame := range ms.Script {
		if err := conn.Write(ctx, websocket.MessageText, []byte(frame)); err != nil {
			return
		}
	}
	if ms.CloseAfterScript {
		_ = conn.Close(websocket.StatusNormalClosure, "done")
		return
	}

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			ms.mu.Lock()
			ms.closeStatus = websocket.CloseStatus(err)
			var ce websocket.CloseError
			if errors.As(err, &ce) {
				ms.closeReason = ce.Reason
			}
			ms.mu.Unlock()
			return
		}
		ms.mu.Lock()
		ms.received = append(ms.received, string(data))
		ms.mu.Unlock()
		ms.frames <- struct{}{}
	}
}

func (ms *MockServer) waitReceived(t *testing.T, n int) []string {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		ms.mu.Lock()
		got := append([]string(nil), ms.received...)
		ms.mu.Unlock()
		if len(got) >= n {
			return got
		}
		select {
		case <-ms.frames:
		case <-deadline:
			t.Fatalf("timed out waiting for %d frames, got %d", n, len(got))
		}
	}
}

func (ms *MockServer) waitClosed(t *testing.T) (websocket.StatusCode, string) {
	t.Helper()
	select {
	case <-ms.closed:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the connection to end")
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.closeStatus, ms.closeReason
}
