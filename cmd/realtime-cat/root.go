package main

import (
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "realtime-cat",
	Short: "Stream JSON client events to a realtime session and print server events",
	Long: `realtime-cat opens one realtime connection and relays events:

  stdin   one JSON client event per line; event_id is filled in when missing
  stdout  one JSON server event per line
  stderr  errors, and assembled response text with --text

Credentials come from OPENAI_API_KEY (and OPENAI_BASE_URL), or with --azure from
AZURE_OPENAI_ENDPOINT plus AZURE_OPENAI_API_KEY or AZURE_TENANT_ID,
AZURE_CLIENT_ID and AZURE_CLIENT_SECRET.`,
	SilenceUsage: true,
	RunE:         runCat,
}

type stringFlag struct {
	name, shorthand, defaultValue, description string
}

type boolFlag struct {
	name, shorthand string
	defaultValue    bool
	description     string
}

var stringFlags = []stringFlag{
	{"model", "m", "", "Realtime model, or deployment name with --azure (env: REALTIME_MODEL)"},
	{"log-level", "", "warn", "Library log level: debug, info, warn, error, off"},
	{"wav-dir", "", "", "Write each response's audio to <dir>/<response_id>.wav"},
	{"region", "", "", "Azure region for the WebRTC endpoint (with --webrtc and --azure)"},
}

var boolFlags = []boolFlag{
	{"azure", "", false, "Use Azure OpenAI credentials from the environment"},
	{"text", "t", false, "Print assembled response text to stderr"},
	{"webrtc", "", false, "Mint an ephemeral key and connect over a WebRTC data channel"},
}

func init() {
	for _, f := range stringFlags {
		rootCmd.Flags().StringP(f.name, f.shorthand, f.defaultValue, f.description)
		_ = viper.BindPFlag(f.name, rootCmd.Flags().Lookup(f.name))
	}
	for _, f := range boolFlags {
		rootCmd.Flags().BoolP(f.name, f.shorthand, f.defaultValue, f.description)
		_ = viper.BindPFlag(f.name, rootCmd.Flags().Lookup(f.name))
	}
	rootCmd.Flags().Duration("linger", 10*time.Second, "How long to keep reading after stdin ends")
	_ = viper.BindPFlag("linger", rootCmd.Flags().Lookup("linger"))

	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.SetEnvPrefix("REALTIME")
	viper.AutomaticEnv()
}

func runCat(cmd *cobra.Command, _ []string) error {
	opts := catOptions{
		Model:    viper.GetString("model"),
		Azure:    viper.GetBool("azure"),
		LogLevel: viper.GetString("log-level"),
		WAVDir:   viper.GetString("wav-dir"),
		Region:   viper.GetString("region"),
		Text:     viper.GetBool("text"),
		WebRTC:   viper.GetBool("webrtc"),
		Linger:   viper.GetDuration("linger"),
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return run(ctx, opts, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
}
