// Command ephemeral-issuer mints short-lived "ek_" realtime keys for browser
// clients, keeping the long-lived OpenAI or Azure credentials server-side.
// Callers may be required to present an OIDC ID token or JWT access token.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	oidc "github.com/coreos/go-oidc/v3/oidc"

	"github.com/enesunal-m/realtimews"
	"github.com/enesunal-m/realtimews/sessions"
	"github.com/enesunal-m/realtimews/webrtc"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "ephemeral-issuer:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := realtimews.NewLogger(realtimews.ParseLogLevel(cfg.LogLevel)).
		WithContext(map[string]any{"service": "ephemeral-issuer"})

	creds, err := credentialsFromEnv()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := newServer(&sessions.Minter{Credentials: creds}, cfg, logger)
	s.rtcURL = webrtc.DefaultURL
	if cfg.Region != "" {
		s.rtcURL = webrtc.RegionURL(cfg.Region)
	}

	if cfg.OIDCIssuer != "" {
		jwks, err := s.configureOIDC(ctx, cfg)
		if err != nil {
			return err
		}
		if jwks != nil {
			defer jwks.EndBackground()
		}
	} else {
		logger.Info("oidc_disabled", nil)
	}
	if len(cfg.CORSOrigins) > 0 {
		logger.Info("cors_origins", map[string]any{"origins": cfg.CORSOrigins})
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", map[string]any{"addr": cfg.Addr})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting_down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// credentialsFromEnv prefers Azure when AZURE_OPENAI_ENDPOINT is set.
func credentialsFromEnv() (realtimews.Credentials, error) {
	if os.Getenv("AZURE_OPENAI_ENDPOINT") != "" {
		return realtimews.NewAzureClientFromEnv()
	}
	return realtimews.NewOpenAIClientFromEnv()
}

// configureOIDC discovers the issuer and installs an ID token verifier or a
// JWKS-backed access token keyfunc. The returned JWKS, if any, must be stopped.
func (s *server) configureOIDC(ctx context.Context, cfg *config) (*keyfunc.JWKS, error) {
	prov, err := oidc.NewProvider(ctx, cfg.OIDCIssuer)
	if err != nil {
		return nil, fmt.Errorf("oidc provider: %w", err)
	}
	s.issuer = cfg.OIDCIssuer
	s.audience = cfg.OIDCAudience

	if cfg.OIDCToken == "id" {
		s.verifier = prov.Verifier(&oidc.Config{ClientID: cfg.OIDCAudience})
		s.logger.Info("oidc_enabled", map[string]any{"issuer": s.issuer, "audience": s.audience, "token": "id"})
		return nil, nil
	}

	var disc struct {
		JWKSURI string `json:"jwks_uri"`
	}
	if err := prov.Claims(&disc); err != nil || disc.JWKSURI == "" {
		return nil, fmt.Errorf("failed to discover jwks_uri: %v", err)
	}
	jwks, err := keyfunc.Get(disc.JWKSURI, keyfunc.Options{
		Ctx:             ctx,
		RefreshInterval: time.Hour,
		RefreshTimeout:  10 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("jwks: %w", err)
	}
	s.keyfunc = jwks.Keyfunc
	s.logger.Info("oidc_enabled", map[string]any{"issuer": s.issuer, "audience": s.audience, "token": "access"})
	return jwks, nil
}
