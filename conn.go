package realtimews

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
)

// SubprotocolKeyPrefix precedes the API key in the handshake subprotocols
// of direct OpenAI connections.
const SubprotocolKeyPrefix = "openai-insecure-api-key."

const (
	subprotocolRealtime   = "realtime"
	subprotocolBetaV1     = "openai-beta.realtime-v1"
	azureMissingAuthError = "AzureClient is not instantiated correctly. No API key or token provided."
)

const browserRiskMessage = "It looks like you're running in a browser-like environment.\n\n" +
	"This is disabled by default, as it risks exposing your secret API credentials to attackers.\n\n" +
	"You can avoid this error by creating an ephemeral session token:\n" +
	"https://platform.openai.com/docs/api-reference/realtime-sessions\n"

// runningInBrowser is swapped in tests.
var runningInBrowser = isRunningInBrowser

var errNilEvent = errors.New("event is nil")

// Conn owns one realtime WebSocket. It translates ClientEvents into text
// frames and inbound frames into ServerEvents, which it emits through the
// embedded Emitter:
//
//   - every parsed frame is emitted under EventAll;
//   - it is then emitted under its own type, except "error" events, which go
//     to OnError listeners instead;
//   - unparseable frames, socket failures and failed sends or closes are
//     reported to OnError listeners and never returned.
//
// Conn does not reconnect. After Close, Open may be called again.
type Conn struct {
	Emitter

	creds   Credentials
	model   string
	url     *url.URL
	opts    Options
	dialer  Dialer
	logger  *Logger
	metrics *Metrics

	mu     sync.Mutex
	socket Socket
}

// New resolves credentials and computes the connection URL. A nil creds is
// replaced by an OpenAIClient read from the environment. It does not dial.
//
// In a browser-like runtime New fails with a ConfigError unless browser use is
// allowed by opts.DangerouslyAllowBrowser, by the credentials themselves, or
// implicitly by an ephemeral "ek_" key.
func New(opts Options, creds Credentials) (*Conn, error) {
	if err := ValidateOptions(opts); err != nil {
		return nil, err
	}

	if creds == nil {
		def, err := NewOpenAIClientFromEnv()
		if err != nil {
			return nil, err
		}
		if opts.DangerouslyAllowBrowser != nil {
			def.DangerouslyAllowBrowser = *opts.DangerouslyAllowBrowser
		}
		creds = def
	}

	if !browserAllowed(opts, creds) && runningInBrowser() {
		return nil, NewConfigError("DangerouslyAllowBrowser", "", browserRiskMessage)
	}

	u, err := BuildRealtimeURL(creds, opts.Model)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = DefaultLogger
	}
	dialer := opts.Dialer
	if dialer == nil {
		dialer = &WebSocketDialer{ReadLimit: DefaultReadLimit, Logger: logger}
	}

	c := &Conn{
		creds:   creds,
		model:   opts.Model,
		url:     u,
		opts:    opts,
		dialer:  dialer,
		logger:  logger.WithContext(map[string]any{"model": opts.Model}),
		metrics: opts.Metrics,
	}
	c.Emitter.logger = c.logger
	return c, nil
}

// browserAllowed applies the first explicit answer: the option, then the
// credentials' own flag, then the ephemeral key heuristic.
func browserAllowed(opts Options, creds Credentials) bool {
	if opts.DangerouslyAllowBrowser != nil {
		return *opts.DangerouslyAllowBrowser
	}
	if creds.AllowsBrowser() {
		return true
	}
	return strings.HasPrefix(creds.APIKey(), EphemeralKeyPrefix)
}

// URL returns the connection URL. Credentials attached by Open are not included.
func (c *Conn) URL() string { return c.url.String() }

// Model returns the model the Conn was built for.
func (c *Conn) Model() string { return c.model }

// Socket returns the live socket, or nil before Open and after Close.
func (c *Conn) Socket() Socket {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.socket
}

// Open authenticates and dials, blocking until the handshake completes.
// Configuration problems (missing Azure credentials) are returned as
// *ConfigError, token and dial failures as *ConnectionError.
//
// Open does not guard against concurrent or repeated calls: a second
// successful Open replaces the live socket without closing it. The orphaned
// socket keeps delivering frames until the server closes it.
func (c *Conn) Open(ctx context.Context) error {
	u := *c.url
	var subprotocols []string

	if az, ok := c.creds.(*AzureClient); ok {
		q := u.Query()
		switch {
		case az.Key != "":
			q.Set("api-key", az.Key)
		case az.TokenProvider != nil:
			token, err := az.TokenProvider.Token(ctx)
			if err != nil {
				return NewConnectionError(c.URL(), "token", err)
			}
			if token == "" {
				return NewConfigError("TokenProvider", "", azureMissingAuthError)
			}
			q.Set("Authorization", "Bearer "+token)
		default:
			return NewConfigError("Credentials", "", azureMissingAuthError)
		}
		u.RawQuery = q.Encode()
		subprotocols = []string{subprotocolRealtime, subprotocolBetaV1}
	} else {
		subprotocols = []string{
			subprotocolRealtime,
			SubprotocolKeyPrefix + c.creds.APIKey(),
			subprotocolBetaV1,
		}
	}

	sock, err := c.dialer.Dial(ctx, DialRequest{
		URL:          u.String(),
		Subprotocols: subprotocols,
		Header:       c.opts.HandshakeHeaders.Clone(),
		OnMessage:    c.handleMessage,
		OnError:      c.handleSocketError,
	})
	if err != nil {
		return NewConnectionError(redactURL(&u), "dial", err)
	}

	c.mu.Lock()
	prev := c.socket
	c.socket = sock
	c.mu.Unlock()

	if prev != nil {
		c.logger.Warn("socket_replaced", map[string]any{"url": redactURL(&u)})
	}
	c.metrics.socketOpened()
	c.logger.Info("ws_connected", map[string]any{"url": redactURL(&u)})
	return nil
}

func (c *Conn) handleMessage(data []byte) {
	ev, err := ParseServerEvent(data)
	if err != nil {
		c.metrics.failed(errKindParse)
		c.logger.Debug("bad_event_json", map[string]any{"err": err.Error(), "bytes": len(data)})
		c.reportError(nil, "could not parse websocket event", err)
		return
	}
	if u, ok := ev.(UnknownEvent); ok && u.DecodeErr != nil {
		c.logger.Debug("event_decode_fallback", map[string]any{"type": string(u.Type), "err": u.DecodeErr.Error()})
	}

	c.metrics.received(ev)
	c.emit(EventAll, ev)

	switch typ := ev.EventType(); typ {
	case EventTypeError:
		c.metrics.failed(errKindServer)
		switch e := ev.(type) {
		case ErrorEvent:
			c.reportError(&e, "", nil)
		case UnknownEvent:
			c.reportError(nil, e.errorMessage(), e.DecodeErr)
		}
	case "":
		// Untyped objects only reach EventAll listeners.
	default:
		c.emit(string(typ), ev)
	}
}

func (c *Conn) handleSocketError(err error) {
	c.metrics.failed(errKindSocket)
	c.reportError(nil, err.Error(), err)
}

// Send serializes ev and writes it as one text frame. The only error it
// returns is ErrNotOpen; serialization and write failures are reported to
// OnError listeners as a RealtimeError wrapping a *SendError.
func (c *Conn) Send(ctx context.Context, ev ClientEvent) error {
	c.mu.Lock()
	sock := c.socket
	c.mu.Unlock()
	if sock == nil {
		return ErrNotOpen
	}

	if isNilEvent(ev) {
		c.sendFailed("unknown", "", errNilEvent)
		return nil
	}
	typ := ev.ClientEventType()

	data, err := marshalClientEvent(ev)
	if err != nil {
		c.sendFailed(typ, clientEventID(ev), err)
		return nil
	}
	if err := sock.Send(ctx, data); err != nil {
		c.sendFailed(typ, clientEventID(ev), err)
		return nil
	}
	c.metrics.sent(typ)
	return nil
}

func (c *Conn) sendFailed(typ, id string, cause error) {
	c.metrics.failed(errKindSend)
	c.reportError(nil, "could not send data", NewSendError(typ, id, cause))
}

// Close requests a normal closure (1000, "OK").
func (c *Conn) Close() {
	c.CloseWithStatus(StatusNormalClosure, "OK")
}

// CloseWithStatus requests closure with code and reason and discards the
// socket. Failures, including calling it with no open socket, are reported to
// OnError listeners.
func (c *Conn) CloseWithStatus(code StatusCode, reason string) {
	c.mu.Lock()
	sock := c.socket
	c.socket = nil
	c.mu.Unlock()

	if sock == nil {
		c.metrics.failed(errKindClose)
		c.reportError(nil, "could not close the connection", ErrNotOpen)
		return
	}
	c.metrics.socketClosed()
	if err := sock.Close(code, reason); err != nil {
		c.metrics.failed(errKindClose)
		c.reportError(nil, "could not close the connection", err)
		return
	}
	c.logger.Info("ws_close_requested", map[string]any{"code": int(code), "reason": reason})
}
