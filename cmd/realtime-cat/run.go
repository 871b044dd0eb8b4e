package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/enesunal-m/realtimews"
	"github.com/enesunal-m/realtimews/sessions"
	"github.com/enesunal-m/realtimews/webrtc"
)

type catOptions struct {
	Model    string
	Azure    bool
	LogLevel string
	WAVDir   string
	Region   string
	Text     bool
	WebRTC   bool
	Linger   time.Duration

	// Set by tests; resolved from the environment when nil.
	creds  realtimews.Credentials
	dialer realtimews.Dialer
}

// maxLine bounds one stdin event; audio appends are large.
const maxLine = 16 << 20

func run(ctx context.Context, opts catOptions, stdin io.Reader, stdout, stderr io.Writer) error {
	if opts.Model == "" {
		return errors.New("--model is required")
	}
	logger := realtimews.NewConsoleLogger(realtimews.ParseLogLevel(opts.LogLevel), stderr)

	creds := opts.creds
	if creds == nil {
		var err error
		if creds, err = credentialsFromEnv(opts.Azure); err != nil {
			return err
		}
	}
	dialer := opts.dialer
	if dialer == nil && opts.WebRTC {
		d, err := webrtcDialer(ctx, opts, creds, logger)
		if err != nil {
			return err
		}
		dialer = d
	}

	conn, err := realtimews.New(realtimews.Options{
		Model:  opts.Model,
		Dialer: dialer,
		Logger: logger,
	}, creds)
	if err != nil {
		return err
	}

	out := &lineWriter{w: stdout}
	conn.OnEvent(func(ev realtimews.ServerEvent) {
		if err := out.writeJSON(ev); err != nil {
			logger.Warn("stdout_write_failed", map[string]any{"err": err.Error()})
		}
	})
	conn.OnError(func(err *realtimews.RealtimeError) {
		fmt.Fprintln(stderr, "error:", err.Error())
	})
	if opts.Text {
		realtimews.CollectText(conn, func(e realtimews.ResponseTextDone, text string) {
			fmt.Fprintf(stderr, "[%s] %s\n", e.ResponseID, text)
		})
	}
	if opts.WAVDir != "" {
		realtimews.CollectAudio(conn, func(responseID string, pcm []byte) {
			path := filepath.Join(opts.WAVDir, responseID+".wav")
			if err := os.WriteFile(path, realtimews.WAVFromPCM16Mono(pcm, realtimews.DefaultSampleRate), 0o644); err != nil {
				fmt.Fprintln(stderr, "error: write wav:", err)
				return
			}
			logger.Info("wav_written", map[string]any{"path": path, "bytes": len(pcm)})
		})
	}

	if err := conn.Open(ctx); err != nil {
		return err
	}
	defer conn.Close()

	if err := pump(ctx, conn, stdin, stderr); err != nil {
		return err
	}

	if opts.Linger > 0 {
		t := time.NewTimer(opts.Linger)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
		}
	}
	return nil
}

type sender interface {
	Send(ctx context.Context, ev realtimews.ClientEvent) error
}

// pump sends each non-empty stdin line as a RawClientEvent. Lines that are not
// JSON objects are reported and skipped.
func pump(ctx context.Context, s sender, r io.Reader, stderr io.Writer) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 64*1024), maxLine)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()

	n := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			n++
			ev, err := parseLine(line)
			if err != nil {
				fmt.Fprintf(stderr, "error: stdin line %d: %v\n", n, err)
				continue
			}
			if ev == nil {
				continue
			}
			if err := s.Send(ctx, ev); err != nil {
				return err
			}
		}
	}
}

// parseLine returns nil for blank lines.
func parseLine(line string) (realtimews.RawClientEvent, error) {
	if strings.TrimSpace(line) == "" {
		return nil, nil
	}
	var ev realtimews.RawClientEvent
	if err := json.Unmarshal([]byte(line), &ev); err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, errors.New("not a JSON object")
	}
	if _, ok := ev["type"].(string); !ok {
		return nil, errors.New(`missing string "type"`)
	}
	if id, _ := ev["event_id"].(string); id == "" {
		ev["event_id"] = realtimews.NewEventID()
	}
	return ev, nil
}

type lineWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lineWriter) writeJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, err = l.w.Write(append(b, '\n'))
	return err
}

func credentialsFromEnv(azure bool) (realtimews.Credentials, error) {
	if azure {
		return realtimews.NewAzureClientFromEnv()
	}
	return realtimews.NewOpenAIClientFromEnv()
}

// webrtcDialer mints an ephemeral key with creds and returns a dialer that
// uses it for the SDP exchange.
func webrtcDialer(ctx context.Context, opts catOptions, creds realtimews.Credentials, logger *realtimews.Logger) (*webrtc.Dialer, error) {
	m := &sessions.Minter{Credentials: creds}
	sess, err := m.Mint(ctx, sessions.Request{Model: opts.Model})
	if err != nil {
		return nil, fmt.Errorf("mint ephemeral key: %w", err)
	}
	logger.Info("session_minted", map[string]any{"session_id": sess.ID, "expires_at": sess.ExpiresAt})

	d := &webrtc.Dialer{EphemeralKey: sess.ClientSecret, Model: opts.Model, Logger: logger}
	if opts.Region != "" {
		d.URL = webrtc.RegionURL(opts.Region)
	}
	return d, nil
}
