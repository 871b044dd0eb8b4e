package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type config struct {
	Addr         string        `mapstructure:"addr"`
	Model        string        `mapstructure:"realtime_model"`
	Voice        string        `mapstructure:"realtime_voice"`
	Region       string        `mapstructure:"azure_openai_region"`
	MintTimeout  time.Duration `mapstructure:"mint_timeout"`
	LogLevel     string        `mapstructure:"log_level"`
	OIDCIssuer   string        `mapstructure:"oidc_issuer"`
	OIDCAudience string        `mapstructure:"oidc_audience"`
	OIDCToken    string        `mapstructure:"oidc_token_type"`
	CORSOrigins  []string      `mapstructure:"cors_allowed_origins"`
}

var configKeys = []string{
	"addr", "realtime_model", "realtime_voice", "azure_openai_region", "mint_timeout",
	"log_level", "oidc_issuer", "oidc_audience", "oidc_token_type", "cors_allowed_origins",
}

// loadConfig reads the environment. Credentials are resolved separately by
// realtimews from the OPENAI_* and AZURE_* variables.
func loadConfig() (*config, error) {
	v := viper.New()
	v.SetDefault("addr", ":8080")
	v.SetDefault("realtime_voice", "verse")
	v.SetDefault("mint_timeout", "10s")
	v.SetDefault("log_level", "info")
	v.SetDefault("oidc_token_type", "access")
	v.AutomaticEnv()
	for _, k := range configKeys {
		_ = v.BindEnv(k, strings.ToUpper(k))
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.CORSOrigins = splitCSV(v.GetString("cors_allowed_origins"))

	if cfg.Model == "" {
		return nil, fmt.Errorf("missing env REALTIME_MODEL")
	}
	if cfg.OIDCIssuer != "" && cfg.OIDCAudience == "" {
		return nil, fmt.Errorf("OIDC_AUDIENCE is required when OIDC_ISSUER is set")
	}
	if t := cfg.OIDCToken; t != "id" && t != "access" {
		return nil, fmt.Errorf("OIDC_TOKEN_TYPE must be \"id\" or \"access\", got %q", t)
	}
	return &cfg, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
