package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/goseal/internal/config"
	"github.com/idelchi/goseal/internal/logic"
)

// NewOpenCommand creates a new cobra command for the open subcommand.
func NewOpenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "open [flags] files...",
		Short: "Open packet streams back into files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var cfg config.Config
			if err := viper.Unmarshal(&cfg); err != nil {
				return fmt.Errorf("parsing config: %w", err)
			}

			cfg.Files = args
			cfg.Open = true

			if err := cfg.Validate(); err != nil {
				return err
			}

			return logic.Run(&cfg)
		},
	}
}
