// Package commands provides CLI commands for collegechat.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rvrjc/collegechat/internal/api"
	"github.com/rvrjc/collegechat/internal/chat"
	"github.com/rvrjc/collegechat/internal/config"
	"github.com/rvrjc/collegechat/internal/logging"
	"github.com/rvrjc/collegechat/internal/models"
)

// Version info (set at build time)
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootFlags are the persistent flags shared by every command
type rootFlags struct {
	endpoint string
	theme    string
	logLevel string
	noDelay  bool
}

// app carries what PersistentPreRunE prepared for the running command
type app struct {
	deps      *Dependencies
	flags     rootFlags
	cfg       config.Config
	logCloser io.Closer
}

// NewRootCmd builds the command tree
func NewRootCmd(deps *Dependencies) *cobra.Command {
	a := &app{deps: deps}

	rootCmd := &cobra.Command{
		Use:   "collegechat",
		Short: "Chat with the college enquiry bot",
		Long: `collegechat is a terminal client for the college enquiry chatbot.
Ask about courses, fees, results and placements.

Examples:
  collegechat                           Start the chat window
  collegechat ask "What is the fee for CSE?"
  echo "Placements" | collegechat ask   Read the question from stdin
  collegechat themes                    List colour themes
  collegechat config                    Open the settings menu`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.prepare()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(deps.Out, "collegechat %s (built %s)\n", Version, BuildTime)
				return nil
			}
			return a.runChat(cmd.Context())
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.flags.endpoint, "endpoint", "", "Chatbot endpoint URL")
	pf.StringVar(&a.flags.theme, "theme", "", "Colour theme (light, dark, college)")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "Log level (debug, info, warn, error, off)")
	pf.BoolVar(&a.flags.noDelay, "no-delay", false, "Show replies as soon as they arrive")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	rootCmd.SetIn(deps.In)
	rootCmd.SetOut(deps.Out)
	rootCmd.SetErr(deps.ErrOut)

	rootCmd.AddCommand(
		newChatCmd(a),
		newAskCmd(a),
		newThemesCmd(a),
		newConfigCmd(a),
	)

	return rootCmd
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	deps := NewDependencies()
	if err := NewRootCmd(deps).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(deps.ErrOut, formatErrorMessage(err, "Error"))
		stop()
		os.Exit(1)
	}
}

// prepare loads configuration, applies flag overrides and starts logging
func (a *app) prepare() error {
	cfg, err := a.deps.LoadConfig()
	if err != nil {
		return err
	}

	if a.flags.endpoint != "" {
		cfg.Endpoint = a.flags.endpoint
	}
	if a.flags.theme != "" {
		theme, ok := models.ParseTheme(a.flags.theme)
		if !ok {
			return fmt.Errorf("unknown theme %q (choose light, dark or college)", a.flags.theme)
		}
		cfg.Theme = string(theme)
	}
	if a.flags.logLevel != "" {
		cfg.LogLevel = a.flags.logLevel
	}
	if a.flags.noDelay {
		cfg.ReplyDelay = 0
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	closer, sessionID, err := logging.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logCloser = closer

	log.Debug().
		Str("session_id", sessionID).
		Str("endpoint", cfg.Endpoint).
		Str("theme", cfg.Theme).
		Dur("reply_delay", cfg.ReplyDelay).
		Msg("collegechat starting")
	return nil
}

func (a *app) close() {
	if a.logCloser != nil {
		_ = a.logCloser.Close()
		a.logCloser = nil
	}
}

// newFetcher builds the reply fetcher; the returned func releases the client
func (a *app) newFetcher() (*chat.Fetcher, func(), error) {
	fetcherOpts := []chat.FetcherOption{
		chat.WithDelay(a.cfg.ReplyDelay),
		chat.WithLogger(log.Logger),
	}

	if a.deps.Client != nil {
		return chat.NewFetcher(a.deps.Client, fetcherOpts...), func() {}, nil
	}

	client, err := api.NewClient(
		api.WithEndpoint(a.cfg.Endpoint),
		api.WithTimeout(a.cfg.RequestTimeout),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create client: %w", err)
	}
	return chat.NewFetcher(client, fetcherOpts...), client.Close, nil
}
