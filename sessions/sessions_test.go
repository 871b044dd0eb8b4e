package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enesunal-m/realtimews"
)

func TestURL(t *testing.T) {
	assert.Equal(t, "https://api.openai.com/v1/realtime/sessions", URL(&realtimews.OpenAIClient{Key: "sk"}))
	assert.Equal(t, "http://proxy/v1/realtime/sessions", URL(&realtimews.OpenAIClient{BaseEndpoint: "http://proxy/v1/"}))
	assert.Equal(t,
		"https://res.openai.azure.com/openai/realtimeapi/sessions?api-version="+realtimews.DefaultAzureAPIVersion,
		URL(&realtimews.AzureClient{Endpoint: "https://res.openai.azure.com/"}))
	assert.Equal(t,
		"https://res.openai.azure.com/openai/realtimeapi/sessions?api-version=2025-04-01-preview",
		URL(&realtimews.AzureClient{Endpoint: "https://res.openai.azure.com", APIVersion: "2025-04-01-preview"}))
}

type capture struct {
	path    string
	query   string
	auth    string
	apiKey  string
	payload map[string]any
}

func sessionServer(t *testing.T, c *capture) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.path = r.URL.Path
		c.query = r.URL.RawQuery
		c.auth = r.Header.Get("Authorization")
		c.apiKey = r.Header.Get("api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&c.payload))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"sess_1","model":"gpt-4o-realtime-preview","client_secret":{"value":"ek_secret","expires_at":1700000000}}`))
	}))
}

func TestMintOpenAI(t *testing.T) {
	var c capture
	srv := sessionServer(t, &c)
	defer srv.Close()

	m := &Minter{Credentials: &realtimews.OpenAIClient{Key: "sk-test", BaseEndpoint: srv.URL + "/v1"}}
	s, err := m.Mint(context.Background(), Request{Model: "gpt-4o-realtime-preview", Voice: "alloy"})
	require.NoError(t, err)

	assert.Equal(t, "sess_1", s.ID)
	assert.Equal(t, "ek_secret", s.ClientSecret)
	assert.Equal(t, time.Unix(1700000000, 0), s.ExpiresAt)
	assert.Equal(t, "/v1/realtime/sessions", c.path)
	assert.Equal(t, "Bearer sk-test", c.auth)
	assert.Equal(t, "gpt-4o-realtime-preview", c.payload["model"])
	assert.Equal(t, "alloy", c.payload["voice"])
	assert.NotContains(t, c.payload, "instructions")
}

func TestMintAzureKey(t *testing.T) {
	var c capture
	srv := sessionServer(t, &c)
	defer srv.Close()

	m := &Minter{Credentials: &realtimews.AzureClient{Endpoint: srv.URL, Key: "azkey", APIVersion: "v1"}}
	_, err := m.Mint(context.Background(), Request{Model: "dep"})
	require.NoError(t, err)

	assert.Equal(t, "/openai/realtimeapi/sessions", c.path)
	assert.Equal(t, "api-version=v1", c.query)
	assert.Equal(t, "azkey", c.apiKey)
	assert.Empty(t, c.auth)
}

func TestMintAzureToken(t *testing.T) {
	var c capture
	srv := sessionServer(t, &c)
	defer srv.Close()

	m := &Minter{Credentials: &realtimews.AzureClient{
		Endpoint:      srv.URL,
		TokenProvider: realtimews.StaticToken("entra"),
	}}
	_, err := m.Mint(context.Background(), Request{Model: "dep"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer entra", c.auth)
	assert.Empty(t, c.apiKey)
}

func TestMintAzureWithoutAuth(t *testing.T) {
	m := &Minter{Credentials: &realtimews.AzureClient{Endpoint: "https://x"}}
	_, err := m.Mint(context.Background(), Request{Model: "dep"})
	assert.ErrorIs(t, err, realtimews.ErrInvalidConfig)
}

func TestMintValidation(t *testing.T) {
	_, err := (&Minter{}).Mint(context.Background(), Request{Model: "m"})
	assert.ErrorIs(t, err, realtimews.ErrInvalidConfig)

	_, err = (&Minter{Credentials: &realtimews.OpenAIClient{Key: "k"}}).Mint(context.Background(), Request{})
	assert.ErrorIs(t, err, realtimews.ErrInvalidConfig)
}

func TestMintAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid key"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	m := &Minter{Credentials: &realtimews.OpenAIClient{Key: "bad", BaseEndpoint: srv.URL}}
	_, err := m.Mint(context.Background(), Request{Model: "m"})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "invalid key")
}

func TestMintMissingSecret(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"sess_1"}`))
	}))
	defer srv.Close()

	m := &Minter{Credentials: &realtimews.OpenAIClient{Key: "k", BaseEndpoint: srv.URL}}
	_, err := m.Mint(context.Background(), Request{Model: "m"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client_secret")
}
