package commands

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/goseal/internal/logic"
	"github.com/idelchi/goseal/pkg/seal"
)

// NewKeygenCommand creates a new cobra command for generating session keys.
func NewKeygenCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "keygen",
		Aliases: []string{"gen"},
		Short:   "Generate a session key",
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if passphrase := viper.GetString("passphrase"); passphrase != "" {
				sessionKey, err := logic.FromPassphrase(passphrase)
				if err != nil {
					return err
				}

				fmt.Println(hex.EncodeToString(sessionKey)) //nolint:forbidigo

				return nil
			}

			sessionKey := make([]byte, seal.KeySize)
			if _, err := rand.Read(sessionKey); err != nil {
				return fmt.Errorf("generating key: %w", err)
			}

			fmt.Println(hex.EncodeToString(sessionKey)) //nolint:forbidigo

			return nil
		},
	}
}
