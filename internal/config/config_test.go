package config_test

import (
	"strings"
	"testing"

	"github.com/idelchi/goseal/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Key:       strings.Repeat("ab", 32),
		MaxPacket: 4096,
		Parallel:  4,
		Files:     []string{"file.txt"},
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{
			name:   "valid with key",
			mutate: func(*config.Config) {},
		},
		{
			name: "valid with passphrase",
			mutate: func(c *config.Config) {
				c.Key = ""
				c.Passphrase = "hunter2"
			},
		},
		{
			name: "valid with key file",
			mutate: func(c *config.Config) {
				c.Key = ""
				c.KeyFile = "key.hex"
			},
		},
		{
			name: "no key source",
			mutate: func(c *config.Config) {
				c.Key = ""
			},
			wantErr: true,
		},
		{
			name: "multiple key sources",
			mutate: func(c *config.Config) {
				c.Passphrase = "hunter2"
			},
			wantErr: true,
		},
		{
			name: "key wrong length",
			mutate: func(c *config.Config) {
				c.Key = "abcd"
			},
			wantErr: true,
		},
		{
			name: "key not hex",
			mutate: func(c *config.Config) {
				c.Key = strings.Repeat("zz", 32)
			},
			wantErr: true,
		},
		{
			name: "max packet too small",
			mutate: func(c *config.Config) {
				c.MaxPacket = 32
			},
			wantErr: true,
		},
		{
			name: "max packet too large",
			mutate: func(c *config.Config) {
				c.MaxPacket = 70000
			},
			wantErr: true,
		},
		{
			name: "parallel zero",
			mutate: func(c *config.Config) {
				c.Parallel = 0
			},
			wantErr: true,
		},
		{
			name: "no files",
			mutate: func(c *config.Config) {
				c.Files = nil
			},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()

			if tc.wantErr && err == nil {
				t.Error("Validate = nil, want error")
			}

			if !tc.wantErr && err != nil {
				t.Errorf("Validate = %v, want nil", err)
			}
		})
	}
}
