// Package webrtc carries realtime events over a WebRTC data channel instead of
// a WebSocket. Dialer plugs into realtimews.Options.Dialer, so a Conn works the
// same way over either transport.
package webrtc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	pion "github.com/pion/webrtc/v3"

	"github.com/enesunal-m/realtimews"
)

// DefaultURL is the OpenAI SDP exchange endpoint.
const DefaultURL = "https://api.openai.com/v1/realtime"

// DataChannelLabel is the label the realtime service expects.
const DataChannelLabel = "realtime-channel"

// RegionURL returns the Azure SDP exchange endpoint for region.
func RegionURL(region string) string {
	return fmt.Sprintf("https://%s.realtimeapi-preview.ai.azure.com/v1/realtimertc", region)
}

// Dialer negotiates a peer connection with the realtime service and exposes
// its data channel as a realtimews.Socket. Remote audio arrives on a separate
// track and is handed to OnAudioTrack.
type Dialer struct {
	// URL is the SDP exchange endpoint. Defaults to DefaultURL.
	URL string

	// Model overrides the model or deployment taken from the dial URL.
	Model string

	// EphemeralKey authorizes the SDP exchange. When empty, the key is taken
	// from the dial request's subprotocols or its Authorization/api-key query.
	EphemeralKey string

	ICEServers []pion.ICEServer

	// HTTPClient defaults to a client with a 20 second timeout.
	HTTPClient *http.Client

	// OnAudioTrack, when set, receives the remote audio track.
	OnAudioTrack func(track *pion.TrackRemote)

	Logger *realtimews.Logger
}

// Dial blocks until the data channel is open or ctx is done.
func (d *Dialer) Dial(ctx context.Context, req realtimews.DialRequest) (realtimews.Socket, error) {
	key := d.EphemeralKey
	if key == "" {
		key = keyFromRequest(req)
	}
	if key == "" {
		return nil, errors.New("webrtc: no key in dialer or dial request")
	}
	model := d.Model
	if model == "" {
		model = modelFromURL(req.URL)
	}
	logger := d.Logger
	if logger == nil {
		logger = realtimews.DefaultLogger
	}

	pc, err := pion.NewPeerConnection(pion.Configuration{ICEServers: d.ICEServers})
	if err != nil {
		return nil, err
	}
	s := &socket{pc: pc, logger: logger, onMessage: req.OnMessage, onError: req.OnError}

	dc, err := pc.CreateDataChannel(DataChannelLabel, nil)
	if err != nil {
		pc.Close()
		return nil, err
	}
	s.dc = dc

	opened := make(chan struct{})
	var openOnce sync.Once
	dc.OnOpen(func() { openOnce.Do(func() { close(opened) }) })
	dc.OnMessage(func(m pion.DataChannelMessage) {
		if !m.IsString {
			logger.Debug("dc_binary_message_skipped", map[string]any{"bytes": len(m.Data)})
			return
		}
		s.deliver(m.Data)
	})
	dc.OnError(s.fail)
	pc.OnConnectionStateChange(func(state pion.PeerConnectionState) {
		logger.Debug("pc_state", map[string]any{"state": state.String()})
		if state == pion.PeerConnectionStateFailed {
			s.fail(errors.New("webrtc: peer connection failed"))
		}
	})

	if _, err := pc.AddTransceiverFromKind(pion.RTPCodecTypeAudio, pion.RTPTransceiverInit{
		Direction: pion.RTPTransceiverDirectionRecvonly,
	}); err != nil {
		pc.Close()
		return nil, err
	}
	if d.OnAudioTrack != nil {
		pc.OnTrack(func(track *pion.TrackRemote, _ *pion.RTPReceiver) { d.OnAudioTrack(track) })
	}

	offer, err := pc.CreateOffer(nil)
	if err != nil {
		pc.Close()
		return nil, err
	}
	gathered := pion.GatheringCompletePromise(pc)
	if err := pc.SetLocalDescription(offer); err != nil {
		pc.Close()
		return nil, err
	}
	select {
	case <-gathered:
	case <-ctx.Done():
		pc.Close()
		return nil, ctx.Err()
	}

	answer, err := d.exchange(ctx, key, model, pc.LocalDescription().SDP)
	if err != nil {
		pc.Close()
		return nil, err
	}
	if err := pc.SetRemoteDescription(pion.SessionDescription{Type: pion.SDPTypeAnswer, SDP: answer}); err != nil {
		pc.Close()
		return nil, err
	}

	select {
	case <-opened:
	case <-ctx.Done():
		pc.Close()
		return nil, ctx.Err()
	}
	logger.Info("dc_open", map[string]any{"model": model})
	return s, nil
}

func (d *Dialer) exchange(ctx context.Context, key, model, sdp string) (string, error) {
	endpoint := d.URL
	if endpoint == "" {
		endpoint = DefaultURL
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	}
	if model != "" {
		q := u.Query()
		q.Set("model", model)
		u.RawQuery = q.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewBufferString(sdp))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+key)
	httpReq.Header.Set("Content-Type", "application/sdp")

	client := d.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("webrtc: SDP exchange failed: %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return string(b), nil
}

func keyFromRequest(req realtimews.DialRequest) string {
	for _, p := range req.Subprotocols {
		if strings.HasPrefix(p, realtimews.SubprotocolKeyPrefix) {
			return strings.TrimPrefix(p, realtimews.SubprotocolKeyPrefix)
		}
	}
	u, err := url.Parse(req.URL)
	if err != nil {
		return ""
	}
	q := u.Query()
	if auth := q.Get("Authorization"); auth != "" {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return q.Get("api-key")
}

func modelFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	q := u.Query()
	if m := q.Get("deployment"); m != "" {
		return m
	}
	return q.Get("model")
}

type socket struct {
	pc     *pion.PeerConnection
	dc     *pion.DataChannel
	logger *realtimews.Logger

	mu      sync.Mutex
	closing bool

	// pion calls data channel and peer connection handlers on different
	// goroutines; cbMu keeps onMessage and onError from overlapping.
	cbMu      sync.Mutex
	onMessage func([]byte)
	onError   func(error)
}

func (s *socket) deliver(data []byte) {
	s.cbMu.Lock()
	defer s.cbMu.Unlock()
	if s.onMessage != nil {
		s.onMessage(data)
	}
}

// fail reports err unless the socket is being closed locally.
func (s *socket) fail(err error) {
	if s.isClosing() {
		return
	}
	s.cbMu.Lock()
	defer s.cbMu.Unlock()
	if s.onError != nil {
		s.onError(err)
	}
}

func (s *socket) isClosing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closing
}

// Send writes data as one text message. ctx is not consulted; data channel
// writes are buffered and do not block.
func (s *socket) Send(_ context.Context, data []byte) error {
	return s.dc.SendText(string(data))
}

// Close tears down the data channel and peer connection. Data channels have
// no close status, so code and reason are only logged.
func (s *socket) Close(code realtimews.StatusCode, reason string) error {
	s.mu.Lock()
	s.closing = true
	s.mu.Unlock()

	s.logger.Debug("dc_close", map[string]any{"code": int(code), "reason": reason})
	dcErr := s.dc.Close()
	return errors.Join(dcErr, s.pc.Close())
}
