package commands

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "goseal [flags] command [flags]",
		Short: "Secure record layer utility",
		Long: `A secure record layer utility that seals data into authenticated, encrypted
packet streams and recovers payloads from fragmented or corrupted input.
Provides commands for key generation, sealing, and opening.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			viper.SetEnvPrefix("goseal")
			viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
			viper.AutomaticEnv()

			if err := viper.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
				return fmt.Errorf("binding persistent flags: %w", err)
			}

			if err := viper.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("binding flags: %w", err)
			}

			return nil
		},
	}

	root.PersistentFlags().StringP("key", "k", "", "Session key (32 bytes, hex-encoded)")
	root.PersistentFlags().StringP("key-file", "f", "", "Path to a file with the hex-encoded session key")
	root.PersistentFlags().StringP("passphrase", "p", "", "Derive the session key from a passphrase")
	root.PersistentFlags().IntP("max-packet", "m", 4096, "Maximum packet size in bytes (64-65024)")
	root.PersistentFlags().IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	root.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")
	root.PersistentFlags().Bool("stats", false, "Print processing statistics")
	root.PersistentFlags().BoolP("delete", "d", false, "Delete the original file after successful processing")
	root.PersistentFlags().String("suffix", ".sealed", "Suffix appended to sealed files and stripped when opening")
	root.PersistentFlags().Bool("preserve-timestamps", false, "Preserve the input file's timestamps on the output")

	root.AddCommand(NewSealCommand(), NewOpenCommand(), NewKeygenCommand())

	return root
}
