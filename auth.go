package realtimews

import (
	"os"
	"strings"
)

const (
	// DefaultBaseURL is the OpenAI API base used when none is configured.
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultAzureAPIVersion is used when AzureClient.APIVersion is empty.
	DefaultAzureAPIVersion = "2024-10-01-preview"

	// EphemeralKeyPrefix marks short-lived session tokens that are safe to
	// hand to a browser.
	EphemeralKeyPrefix = "ek_"
)

// Credentials is the authorization-capable client a Conn authenticates with.
// OpenAIClient and AzureClient are the two supported variants.
type Credentials interface {
	// APIKey returns the static key, or "" when none is configured.
	APIKey() string
	// BaseURL returns the HTTP(S) API base the realtime path is appended to.
	BaseURL() string
	// AllowsBrowser reports whether the client itself opted into browser use.
	AllowsBrowser() bool
}

// OpenAIClient authenticates directly against the OpenAI API with a key.
// The key travels inside a WebSocket subprotocol, not the URL.
type OpenAIClient struct {
	Key                     string
	BaseEndpoint            string // Defaults to DefaultBaseURL
	DangerouslyAllowBrowser bool
}

func (c *OpenAIClient) APIKey() string { return c.Key }

func (c *OpenAIClient) BaseURL() string {
	if c.BaseEndpoint == "" {
		return DefaultBaseURL
	}
	return c.BaseEndpoint
}

func (c *OpenAIClient) AllowsBrowser() bool { return c.DangerouslyAllowBrowser }

// NewOpenAIClientFromEnv reads OPENAI_API_KEY and OPENAI_BASE_URL.
func NewOpenAIClientFromEnv() (*OpenAIClient, error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil, NewConfigError("OPENAI_API_KEY", "", "environment variable is missing or empty")
	}
	return &OpenAIClient{Key: key, BaseEndpoint: os.Getenv("OPENAI_BASE_URL")}, nil
}

// AzureClient authenticates against an Azure OpenAI resource, either with a
// static api-key or with Entra ID bearer tokens from TokenProvider. Both are
// passed as query parameters on the realtime URL.
type AzureClient struct {
	// Endpoint is the resource URL, e.g. https://my-resource.openai.azure.com
	Endpoint string

	// APIVersion defaults to DefaultAzureAPIVersion.
	APIVersion string

	// Key is the static api-key. When empty, TokenProvider is consulted.
	Key string

	// TokenProvider supplies managed-identity bearer tokens.
	TokenProvider TokenProvider

	DangerouslyAllowBrowser bool
}

func (c *AzureClient) APIKey() string { return c.Key }

func (c *AzureClient) BaseURL() string {
	return strings.TrimRight(c.Endpoint, "/") + "/openai"
}

func (c *AzureClient) AllowsBrowser() bool { return c.DangerouslyAllowBrowser }

func (c *AzureClient) apiVersion() string {
	if c.APIVersion == "" {
		return DefaultAzureAPIVersion
	}
	return c.APIVersion
}

// NewAzureClientFromEnv reads AZURE_OPENAI_ENDPOINT, AZURE_OPENAI_API_KEY and
// OPENAI_API_VERSION. Without a key it falls back to a client-credentials token
// provider built from AZURE_TENANT_ID, AZURE_CLIENT_ID and AZURE_CLIENT_SECRET;
// if those are missing too, the client is still returned and Open reports the
// misconfiguration.
func NewAzureClientFromEnv() (*AzureClient, error) {
	endpoint := os.Getenv("AZURE_OPENAI_ENDPOINT")
	if endpoint == "" {
		return nil, NewConfigError("AZURE_OPENAI_ENDPOINT", "", "environment variable is missing or empty")
	}
	c := &AzureClient{
		Endpoint:   endpoint,
		APIVersion: os.Getenv("OPENAI_API_VERSION"),
		Key:        os.Getenv("AZURE_OPENAI_API_KEY"),
	}
	if c.Key == "" {
		tenant, id, secret := os.Getenv("AZURE_TENANT_ID"), os.Getenv("AZURE_CLIENT_ID"), os.Getenv("AZURE_CLIENT_SECRET")
		if tenant != "" && id != "" && secret != "" {
			c.TokenProvider = NewCachedTokenProvider(ClientCredentialsTokenProvider(tenant, id, secret), DefaultTokenSkew)
		}
	}
	return c, nil
}
