// Package config holds the runtime configuration for the goseal tool and
// its validation rules.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Config is the runtime configuration, populated from flags and environment
// variables.
type Config struct {
	// Common flags
	Key        string `validate:"omitempty,len=64"` // hex encoded, so 32 bytes = 64 chars
	KeyFile    string `mapstructure:"key-file"`
	Passphrase string
	MaxPacket  int `mapstructure:"max-packet" validate:"min=64,max=65024"`
	Parallel   int `validate:"min=1"`
	Quiet      bool
	Stats      bool
	Delete     bool
	Suffix     string

	PreserveTimestamps bool `mapstructure:"preserve-timestamps"`

	// Command-specific flags
	Open bool

	// Positional arguments
	Files []string `validate:"min=1"`
}

// Validate validates the configuration against the struct tags and checks
// that exactly one key source is configured.
func (c Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	sources := 0

	for _, set := range []bool{c.Key != "", c.KeyFile != "", c.Passphrase != ""} {
		if set {
			sources++
		}
	}

	if sources == 0 {
		return errors.New("one of --key, --key-file or --passphrase is required")
	}

	if sources > 1 {
		return errors.New("--key, --key-file and --passphrase are mutually exclusive")
	}

	if c.Key != "" {
		if _, err := hex.DecodeString(c.Key); err != nil {
			return fmt.Errorf("invalid key format: %w", err)
		}
	}

	return nil
}
