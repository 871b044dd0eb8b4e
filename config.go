package realtimews

import "net/http"

// Options configures a Conn.
type Options struct {
	// Model is the realtime model (or, for Azure, the deployment name).
	// Required: Yes
	Model string

	// DangerouslyAllowBrowser permits construction in a browser-like runtime
	// (js/wasm). Nil means unspecified: the credentials' own setting applies,
	// and failing that, ephemeral "ek_" keys are allowed.
	// Required: No
	DangerouslyAllowBrowser *bool

	// Dialer establishes the socket. Defaults to a WebSocketDialer with
	// DefaultReadLimit and Logger.
	// Required: No
	Dialer Dialer

	// HandshakeHeaders are added to the WebSocket handshake request.
	// Useful for proxy authentication, tracing headers, etc.
	// Required: No
	HandshakeHeaders http.Header

	// Logger receives connection diagnostics and errors reported while no
	// error listener is registered. Defaults to DefaultLogger.
	// Required: No
	Logger *Logger

	// Metrics, when set, records frame and error counts.
	// Required: No
	Metrics *Metrics
}

// ValidateOptions checks the fields New cannot work without.
func ValidateOptions(opts Options) error {
	if opts.Model == "" {
		return NewConfigError("Model", "", "cannot be empty")
	}
	return nil
}
