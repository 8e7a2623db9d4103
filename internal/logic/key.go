package logic

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/hkdf"

	"github.com/idelchi/gogen/pkg/key"
	"github.com/idelchi/goseal/internal/config"
	"github.com/idelchi/goseal/pkg/seal"
)

// fingerprintSize is the number of key-digest bytes carried in each frame
// header for key lookup.
const fingerprintSize = 8

// ResolveKey produces the raw session key from whichever source the
// configuration names: an inline hex key, a hex key file, or a passphrase.
func ResolveKey(cfg *config.Config) ([]byte, error) {
	var (
		sessionKey []byte
		err        error
	)

	switch {
	case cfg.Key != "":
		sessionKey, err = key.FromHex(cfg.Key)
	case cfg.KeyFile != "":
		data, readErr := os.ReadFile(cfg.KeyFile)
		if readErr != nil {
			return nil, fmt.Errorf("reading key file: %w", readErr)
		}

		sessionKey, err = key.FromHex(strings.TrimSpace(string(data)))
	case cfg.Passphrase != "":
		sessionKey, err = FromPassphrase(cfg.Passphrase)
	}

	if err != nil {
		return nil, fmt.Errorf("reading key: %w", err)
	}

	if len(sessionKey) != seal.KeySize {
		return nil, fmt.Errorf("key must be %d bytes (%d hex characters)", seal.KeySize, 2*seal.KeySize)
	}

	return sessionKey, nil
}

// FromPassphrase derives a session key from a passphrase via HKDF-SHA256.
func FromPassphrase(passphrase string) ([]byte, error) {
	reader := hkdf.New(sha256.New, []byte(passphrase), nil, []byte("goseal/key"))

	derived := make([]byte, seal.KeySize)
	if _, err := io.ReadFull(reader, derived); err != nil {
		return nil, fmt.Errorf("deriving key: %w", err)
	}

	return derived, nil
}

// Fingerprint returns the key-digest bytes carried in frame headers so the
// opening side can recognize frames sealed under its key.
func Fingerprint(sessionKey []byte) []byte {
	sum := sha256.Sum256(sessionKey)

	return sum[:fingerprintSize]
}
