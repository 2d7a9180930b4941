package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"gifts_buyer/internal/application"
	"gifts_buyer/pkg/contextx"
	"gifts_buyer/pkg/logx"
)

func runCommand(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	log := logx.NewConsoleLogger(os.Stdout, logx.ParseLevel(cfg.Observability.LogLevel)).
		With(slog.String(logx.FieldAppName, application.Name), slog.String(logx.FieldAppVersion, Version))
	slog.SetDefault(log)

	ctx = contextx.WithLogger(ctx, log)

	if err := application.Run(ctx, cfg, Version); err != nil {
		return err
	}

	log.Info("application stopped")

	return nil
}
