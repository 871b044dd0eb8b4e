package realtimews

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	// CognitiveServicesScope is the Entra ID scope accepted by Azure OpenAI.
	CognitiveServicesScope = "https://cognitiveservices.azure.com/.default"

	// DefaultTokenSkew refreshes cached tokens this long before they expire.
	DefaultTokenSkew = 2 * time.Minute
)

// TokenProvider fetches bearer tokens for managed-identity authentication.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// TokenProviderFunc adapts a function to TokenProvider.
type TokenProviderFunc func(ctx context.Context) (string, error)

// Token calls f(ctx).
func (f TokenProviderFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// StaticToken always returns the same token.
func StaticToken(token string) TokenProvider {
	return TokenProviderFunc(func(context.Context) (string, error) { return token, nil })
}

// OAuth2TokenProvider adapts an oauth2.TokenSource. The source is wrapped in
// oauth2.ReuseTokenSource so valid tokens are not re-fetched.
func OAuth2TokenProvider(ts oauth2.TokenSource) TokenProvider {
	ts = oauth2.ReuseTokenSource(nil, ts)
	return TokenProviderFunc(func(ctx context.Context) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		tok, err := ts.Token()
		if err != nil {
			return "", err
		}
		return tok.AccessToken, nil
	})
}

// ClientCredentialsTokenProvider authenticates a service principal against
// Entra ID using the OAuth2 client credentials flow.
func ClientCredentialsTokenProvider(tenantID, clientID, clientSecret string) TokenProvider {
	cfg := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", tenantID),
		Scopes:       []string{CognitiveServicesScope},
	}
	return clientCredentialsProvider{cfg: cfg}
}

type clientCredentialsProvider struct {
	cfg *clientcredentials.Config
}

func (p clientCredentialsProvider) Token(ctx context.Context) (string, error) {
	tok, err := p.cfg.Token(ctx)
	if err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}

// CachedTokenProvider reuses a JWT bearer token until shortly before it expires.
// The expiry is read from the token's "exp" claim without verifying the
// signature; tokens that are not JWTs or carry no exp are never cached.
type CachedTokenProvider struct {
	next TokenProvider
	skew time.Duration
	now  func() time.Time

	mu      sync.Mutex
	token   string
	expires time.Time
}

// NewCachedTokenProvider wraps next. Tokens are refreshed skew before expiry.
func NewCachedTokenProvider(next TokenProvider, skew time.Duration) *CachedTokenProvider {
	return &CachedTokenProvider{next: next, skew: skew, now: time.Now}
}

// Token returns the cached token or fetches a new one.
func (c *CachedTokenProvider) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Add(c.skew).Before(c.expires) {
		return c.token, nil
	}

	tok, err := c.next.Token(ctx)
	if err != nil {
		return "", err
	}
	c.token, c.expires = "", time.Time{}
	if exp, err := tokenExpiry(tok); err == nil {
		c.token, c.expires = tok, exp
	}
	return tok, nil
}

var errNoExpiry = errors.New("token has no exp claim")

func tokenExpiry(raw string) (time.Time, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, errNoExpiry
	}
	return claims.ExpiresAt.Time, nil
}
