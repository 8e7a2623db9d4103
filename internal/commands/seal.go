package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/goseal/internal/config"
	"github.com/idelchi/goseal/internal/logic"
)

// NewSealCommand creates a new cobra command for the seal subcommand.
func NewSealCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seal [flags] files...",
		Short: "Seal files into encrypted packet streams",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Unmarshal all config (from env vars and flags) into struct
			var cfg config.Config
			if err := viper.Unmarshal(&cfg); err != nil {
				return fmt.Errorf("parsing config: %w", err)
			}

			cfg.Files = args

			if err := cfg.Validate(); err != nil {
				return err
			}

			return logic.Run(&cfg)
		},
	}
}
