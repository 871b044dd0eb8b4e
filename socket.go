package realtimews

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"nhooyr.io/websocket"
)

// StatusCode is a WebSocket close code.
type StatusCode int

const (
	StatusNormalClosure StatusCode = 1000
	StatusGoingAway     StatusCode = 1001
)

// Socket is the bidirectional text transport a Conn owns. Implementations
// deliver inbound frames through the handlers given in DialRequest.
type Socket interface {
	// Send writes one text frame.
	Send(ctx context.Context, data []byte) error
	// Close requests a close handshake with the given code and reason.
	Close(code StatusCode, reason string) error
}

// DialRequest describes a socket to establish. OnMessage and OnError are bound
// before the first frame can be read and are never called concurrently.
type DialRequest struct {
	URL          string
	Subprotocols []string
	Header       http.Header

	OnMessage func(data []byte)
	OnError   func(err error)
}

// Dialer establishes sockets. Dial blocks until the handshake completes.
type Dialer interface {
	Dial(ctx context.Context, req DialRequest) (Socket, error)
}

// DialerFunc adapts a function to Dialer.
type DialerFunc func(ctx context.Context, req DialRequest) (Socket, error)

// Dial calls f(ctx, req).
func (f DialerFunc) Dial(ctx context.Context, req DialRequest) (Socket, error) { return f(ctx, req) }

// DefaultWriteTimeout bounds a single frame write.
const DefaultWriteTimeout = 15 * time.Second

// WebSocketDialer dials native WebSockets with nhooyr.io/websocket.
// The zero value is usable.
type WebSocketDialer struct {
	// HTTPClient is used for the handshake. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// ReadLimit caps inbound frame size in bytes. Zero keeps the library
	// default (32 KiB), which is too small for audio deltas; see DefaultReadLimit.
	ReadLimit int64

	// WriteTimeout bounds each Send. Zero means DefaultWriteTimeout.
	WriteTimeout time.Duration

	// PingInterval enables keepalive pings. Zero disables them.
	PingInterval time.Duration

	// Logger receives close and keepalive diagnostics.
	Logger *Logger
}

// DefaultReadLimit is used by Conn when it creates its own dialer.
const DefaultReadLimit = 16 << 20

// Dial performs the handshake and starts the read loop.
func (d *WebSocketDialer) Dial(ctx context.Context, req DialRequest) (Socket, error) {
	ws, _, err := websocket.Dial(ctx, req.URL, &websocket.DialOptions{
		HTTPClient:   d.HTTPClient,
		HTTPHeader:   req.Header,
		Subprotocols: req.Subprotocols,
	})
	if err != nil {
		return nil, err
	}
	if d.ReadLimit > 0 {
		ws.SetReadLimit(d.ReadLimit)
	}

	writeTimeout := d.WriteTimeout
	if writeTimeout == 0 {
		writeTimeout = DefaultWriteTimeout
	}
	logger := d.Logger
	if logger == nil {
		logger = DefaultLogger
	}

	readCtx, cancel := context.WithCancel(context.Background())
	s := &wsSocket{
		conn:         ws,
		writeTimeout: writeTimeout,
		logger:       logger,
		cancel:       cancel,
		done:         make(chan struct{}),
	}
	go s.readLoop(readCtx, req.OnMessage, req.OnError)
	if d.PingInterval > 0 {
		go s.pingLoop(d.PingInterval)
	}
	return s, nil
}

type wsSocket struct {
	conn         *websocket.Conn
	writeMu      sync.Mutex
	writeTimeout time.Duration
	logger       *Logger

	closing atomic.Bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func (s *wsSocket) Send(ctx context.Context, data []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()

	err := s.conn.Write(ctx, websocket.MessageText, data)
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrSendTimeout, err)
	}
	return err
}

func (s *wsSocket) Close(code StatusCode, reason string) error {
	s.closing.Store(true)
	return s.conn.Close(websocket.StatusCode(code), reason)
}

// readLoop delivers text frames until the connection ends. Ends caused by a
// local Close or a close frame from the server are not errors; anything else
// (reset, EOF without close frame, oversized frame) is passed to onError.
func (s *wsSocket) readLoop(ctx context.Context, onMessage func([]byte), onError func(error)) {
	defer close(s.done)
	defer s.cancel()

	for {
		typ, data, err := s.conn.Read(ctx)
		if err != nil {
			if s.closing.Load() {
				return
			}
			if status := websocket.CloseStatus(err); status != -1 {
				s.logger.Info("ws_closed_by_server", map[string]any{"code": int(status), "err": err.Error()})
				return
			}
			if onError != nil {
				onError(err)
			}
			return
		}

		if typ != websocket.MessageText {
			s.logger.Debug("ws_binary_frame_skipped", map[string]any{"bytes": len(data)})
			continue
		}
		if onMessage != nil {
			onMessage(data)
		}
	}
}

func (s *wsSocket) pingLoop(interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-t.C:
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			if err := s.conn.Ping(ctx); err != nil {
				s.logger.Debug("ws_ping_failed", map[string]any{"err": err.Error()})
			}
			cancel()
		}
	}
}
