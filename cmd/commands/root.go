// Package commands implements the gifts_buyer CLI.
package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"gifts_buyer/internal/config"
	"gifts_buyer/internal/i18n"
	"gifts_buyer/pkg/contextx"
	"gifts_buyer/pkg/logx"
)

// Version is set at build time via ldflags.
var Version = "dev" //nolint:gochecknoglobals

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "gifts_buyer",
		Short:         "Buy newly listed Telegram gifts automatically",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCommand,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Start the detection loop (default)",
			RunE:  runCommand,
		},
		checkCommand(),
		versionCommand(),
	)

	return root
}

// Execute runs the CLI until SIGINT or SIGTERM.
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log := logx.NewConsoleLogger(os.Stdout, logx.ParseLevel(os.Getenv("LOG_LEVEL")))
	slog.SetDefault(log)

	ctx = contextx.WithLogger(ctx, log)

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		log.Error("application failed", logx.Error(err))
		return err
	}

	return nil
}

// loadConfig loads the configuration and logs every problem found.
func loadConfig(ctx context.Context) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		if fields := config.MissingFields(err); len(fields) > 0 {
			tr, trErr := i18n.New(os.Getenv("LANGUAGE"))
			if trErr == nil {
				contextx.LoggerFromContextOrDefault(ctx).Error(tr.T("errors.missing_config", i18n.Args{
					"fields": "- " + strings.Join(fields, "\n- "),
				}))
			}
		}

		return config.Config{}, err
	}

	for _, rejected := range cfg.Gifts.Rejected() {
		contextx.LoggerFromContextOrDefault(ctx).Warn("invalid gift range skipped", logx.Error(rejected))
	}

	return cfg, nil
}
