package commands

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"gifts_buyer/internal/config"
	"gifts_buyer/internal/i18n"
	"gifts_buyer/internal/infrastructure/notifier"
	"gifts_buyer/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

func checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration and print the parsed ranges",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}

			return printConfig(cmd, cfg)
		},
	}
}

func printConfig(cmd *cobra.Command, cfg config.Config) error {
	raw, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent: %w", err)
	}

	out := cmd.OutOrStdout()

	fmt.Fprintln(out, string(logx.NewSensitiveDataMasker().Mask(raw)))

	tr, err := i18n.New(cfg.Gifts.Language)
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, notifier.RangeLines(tr, cfg.Gifts.Ranges()))

	for _, rejected := range cfg.Gifts.Rejected() {
		fmt.Fprintln(out, "skipped:", rejected.Error())
	}

	channel, ok := cfg.Notifications.Channel()
	if !ok {
		fmt.Fprintln(out, "notifications: disabled")
		return nil
	}

	fmt.Fprintln(out, "notifications:", channel.String())

	return nil
}
