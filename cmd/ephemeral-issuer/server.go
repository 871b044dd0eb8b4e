package main

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"strings"
	"time"

	oidc "github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/enesunal-m/realtimews"
	"github.com/enesunal-m/realtimews/sessions"
)

type tokenResponse struct {
	SessionID string    `json:"session_id"`
	Ephemeral string    `json:"ephemeral"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
	RTCURL    string    `json:"rtc_url"`
	Model     string    `json:"model"`
}

type minter interface {
	Mint(ctx context.Context, req sessions.Request) (*sessions.Session, error)
}

type server struct {
	minter      minter
	model       string
	voice       string
	rtcURL      string
	mintTimeout time.Duration
	logger      *realtimews.Logger

	// Caller verification. Exactly one of verifier and keyfunc is set when
	// issuer is non-empty.
	issuer   string
	audience string
	verifier *oidc.IDTokenVerifier
	keyfunc  jwt.Keyfunc

	allowedOrigins []string

	registry *prometheus.Registry
	minted   *prometheus.CounterVec
}

func newServer(m minter, cfg *config, logger *realtimews.Logger) *server {
	reg := prometheus.NewRegistry()
	return &server{
		minter:         m,
		model:          cfg.Model,
		voice:          cfg.Voice,
		mintTimeout:    cfg.MintTimeout,
		logger:         logger,
		allowedOrigins: cfg.CORSOrigins,
		registry:       reg,
		minted: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "ephemeral_issuer",
			Name:      "tokens_total",
			Help:      "Token requests by result.",
		}, []string{"result"}),
	}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/token", s.cors(s.auth(http.HandlerFunc(s.handleToken))))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return mux
}

func (s *server) handleToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	timeout := s.mintTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	sess, err := s.minter.Mint(ctx, sessions.Request{Model: s.model, Voice: s.voice})
	if err != nil {
		s.minted.WithLabelValues("error").Inc()
		s.logger.Error("mint_failed", map[string]any{"err": err.Error()})
		http.Error(w, "mint failed", http.StatusBadGateway)
		return
	}
	s.minted.WithLabelValues("ok").Inc()
	s.logger.Info("minted", map[string]any{"session_id": sess.ID})

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(tokenResponse{
		SessionID: sess.ID,
		Ephemeral: sess.ClientSecret,
		ExpiresAt: sess.ExpiresAt,
		RTCURL:    s.rtcURL,
		Model:     s.model,
	}); err != nil {
		s.logger.Warn("encode_failed", map[string]any{"err": err.Error()})
	}
}

// auth verifies the caller's bearer token when an issuer is configured.
func (s *server) auth(next http.Handler) http.Handler {
	if s.issuer == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			s.minted.WithLabelValues("unauthorized").Inc()
			http.Error(w, "missing bearer", http.StatusUnauthorized)
			return
		}
		raw := strings.TrimSpace(header[len("Bearer "):])

		var err error
		switch {
		case s.verifier != nil:
			_, err = s.verifier.Verify(r.Context(), raw)
		case s.keyfunc != nil:
			_, err = jwt.Parse(raw, s.keyfunc, jwt.WithAudience(s.audience), jwt.WithIssuer(s.issuer))
		default:
			http.Error(w, "verifier not initialized", http.StatusInternalServerError)
			return
		}
		if err != nil {
			s.minted.WithLabelValues("unauthorized").Inc()
			s.logger.Debug("caller_rejected", map[string]any{"err": err.Error()})
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// cors reflects allowed origins. An empty allow list admits every origin.
func (s *server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && (len(s.allowedOrigins) == 0 ||
			slices.Contains(s.allowedOrigins, origin) || slices.Contains(s.allowedOrigins, "*")) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
