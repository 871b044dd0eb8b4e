package realtimews

import (
	"net/url"
	"strings"
)

// BuildRealtimeURL returns the WebSocket URL for model on the API described by
// creds. An http base maps to ws (useful against local test servers); anything
// else maps to wss. Azure resources take the model as the deployment name.
func BuildRealtimeURL(creds Credentials, model string) (*url.URL, error) {
	base := creds.BaseURL()
	u, err := url.Parse(base)
	if err != nil {
		return nil, NewConfigError("BaseURL", base, "invalid URL format")
	}
	if u.Host == "" {
		return nil, NewConfigError("BaseURL", base, "missing host")
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/realtime"
	u.RawPath = ""

	if u.Scheme == "http" || u.Scheme == "ws" {
		u.Scheme = "ws"
	} else {
		u.Scheme = "wss"
	}

	q := u.Query()
	if az, ok := creds.(*AzureClient); ok {
		q.Set("api-version", az.apiVersion())
		q.Set("deployment", model)
	} else {
		q.Set("model", model)
	}
	u.RawQuery = q.Encode()
	return u, nil
}

// redactURL hides credentials that Open attaches to Azure URLs so the URL can
// be logged or returned inside errors.
func redactURL(u *url.URL) string {
	q := u.Query()
	for _, k := range []string{"api-key", "Authorization"} {
		if q.Has(k) {
			q.Set(k, "REDACTED")
		}
	}
	c := *u
	c.RawQuery = q.Encode()
	return c.String()
}
