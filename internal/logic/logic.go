// Package logic implements the core business logic for sealing and opening
// packet streams stored in files.
package logic

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/goseal/internal/config"
)

// Run is the main logic of the application.
func Run(cfg *config.Config) error {
	start := time.Now()

	sessionKey, err := ResolveKey(cfg)
	if err != nil {
		return err
	}

	proc := NewProcessor(cfg, sessionKey)

	processed, errored, totalSize, err := proc.ProcessFiles()

	if cfg.Stats {
		printStats(processed, errored, totalSize, time.Since(start))
	}

	if err != nil {
		return fmt.Errorf("running logic: %w", err)
	}

	return nil
}

// outputPath generates the output file path: sealing appends the configured
// suffix, opening strips it. An opened file that would collide with its
// input gets an ".opened" suffix instead.
func (p *Processor) outputPath(filename string) string {
	if !p.cfg.Open {
		return filepath.Join(filepath.Dir(filename), filepath.Base(filename)+p.cfg.Suffix)
	}

	stripped := strings.TrimSuffix(filename, p.cfg.Suffix)
	if stripped == filename {
		stripped += ".opened"
	}

	return filepath.Join(filepath.Dir(stripped), filepath.Base(stripped))
}

func printStats(processed, errored int, totalSize int64, duration time.Duration) {
	fmt.Fprintf(os.Stderr, "\nStats\n")
	fmt.Fprintf(os.Stderr, "  Processed: %d\n", processed)
	fmt.Fprintf(os.Stderr, "  Errors:    %d\n", errored)
	//nolint:gosec // totalSize is always non-negative (sum of file sizes)
	fmt.Fprintf(os.Stderr, "  Size:      %s\n", humanize.IBytes(uint64(max(0, totalSize))))
	fmt.Fprintf(os.Stderr, "  Duration:  %s\n", duration.Round(time.Millisecond))
}
