// Package sessions mints ephemeral realtime client secrets. The returned keys
// start with "ek_" and may be handed to browsers, where realtimews.New accepts
// them without DangerouslyAllowBrowser.
package sessions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/enesunal-m/realtimews"
)

// Request describes the session the ephemeral key is bound to.
type Request struct {
	Model        string   `json:"model"`
	Voice        string   `json:"voice,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
	Modalities   []string `json:"modalities,omitempty"`
}

// Session is a minted session and its client secret.
type Session struct {
	ID           string
	Model        string
	ClientSecret string
	ExpiresAt    time.Time
}

// APIError is returned for non-2xx responses.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sessions: mint failed: status %d: %s", e.StatusCode, e.Body)
}

type sessionResponse struct {
	ID           string `json:"id"`
	Model        string `json:"model"`
	ClientSecret struct {
		Value     string `json:"value"`
		ExpiresAt int64  `json:"expires_at"`
	} `json:"client_secret"`
}

// Minter mints sessions with long-lived credentials that must stay server-side.
type Minter struct {
	Credentials realtimews.Credentials

	// HTTPClient defaults to a client with a 15 second timeout.
	HTTPClient *http.Client
}

// URL returns the sessions endpoint for creds.
func URL(creds realtimews.Credentials) string {
	if az, ok := creds.(*realtimews.AzureClient); ok {
		v := az.APIVersion
		if v == "" {
			v = realtimews.DefaultAzureAPIVersion
		}
		return fmt.Sprintf("%s/realtimeapi/sessions?api-version=%s", az.BaseURL(), v)
	}
	return strings.TrimRight(creds.BaseURL(), "/") + "/realtime/sessions"
}

// Mint creates a session and returns its ephemeral key.
func (m *Minter) Mint(ctx context.Context, req Request) (*Session, error) {
	if m.Credentials == nil {
		return nil, realtimews.NewConfigError("Credentials", "", "cannot be nil")
	}
	if req.Model == "" {
		return nil, realtimews.NewConfigError("Model", "", "cannot be empty")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, URL(m.Credentials), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if err := m.authorize(ctx, httpReq); err != nil {
		return nil, err
	}

	client := m.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	var sr sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("sessions: decode response: %w", err)
	}
	if sr.ClientSecret.Value == "" {
		return nil, fmt.Errorf("sessions: response has no client_secret")
	}

	s := &Session{ID: sr.ID, Model: sr.Model, ClientSecret: sr.ClientSecret.Value}
	if sr.ClientSecret.ExpiresAt > 0 {
		s.ExpiresAt = time.Unix(sr.ClientSecret.ExpiresAt, 0)
	}
	return s, nil
}

func (m *Minter) authorize(ctx context.Context, r *http.Request) error {
	az, ok := m.Credentials.(*realtimews.AzureClient)
	if !ok {
		r.Header.Set("Authorization", "Bearer "+m.Credentials.APIKey())
		return nil
	}
	switch {
	case az.Key != "":
		r.Header.Set("api-key", az.Key)
	case az.TokenProvider != nil:
		token, err := az.TokenProvider.Token(ctx)
		if err != nil {
			return fmt.Errorf("sessions: fetch token: %w", err)
		}
		r.Header.Set("Authorization", "Bearer "+token)
	default:
		return realtimews.NewConfigError("Credentials", "", "AzureClient has no API key or token provider")
	}
	return nil
}
