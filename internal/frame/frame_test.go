package frame_test

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/idelchi/goseal/internal/frame"
)

// Case is a single preamble layout case from a YAML golden file.
type Case struct {
	Checksum    uint16 `yaml:"checksum"`
	Total       int    `yaml:"total"`
	Hdr         int    `yaml:"hdr"`
	Wire        string `yaml:"wire"`
	Description string `yaml:"description,omitempty"`
}

// Group is a named collection of test cases.
type Group struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Cases       []Case `yaml:"cases"`
}

func loadSpecs(t *testing.T) map[string][]Group {
	t.Helper()

	files, err := filepath.Glob("testdata/*.yml")
	if err != nil {
		t.Fatalf("globbing testdata: %v", err)
	}

	if len(files) == 0 {
		t.Fatal("no testdata/*.yml files found")
	}

	specs := make(map[string][]Group)

	for _, f := range files {
		data, err := os.ReadFile(f) //nolint:gosec // test helper reads known testdata files
		if err != nil {
			t.Fatalf("reading %s: %v", f, err)
		}

		var groups []Group
		if err := yaml.Unmarshal(data, &groups); err != nil {
			t.Fatalf("parsing %s: %v", f, err)
		}

		specs[filepath.Base(f)] = groups
	}

	return specs
}

// forEachCase iterates file→group→case from the golden specs and calls fn per case.
func forEachCase(t *testing.T, fn func(t *testing.T, tc Case)) {
	t.Helper()

	for file, groups := range loadSpecs(t) {
		t.Run(file, func(t *testing.T) {
			t.Parallel()

			for _, g := range groups {
				t.Run(g.Name, func(t *testing.T) {
					t.Parallel()

					for i, tc := range g.Cases {
						desc := tc.Description
						if desc == "" {
							desc = fmt.Sprintf("case_%d", i)
						}

						t.Run(desc, func(t *testing.T) {
							t.Parallel()
							fn(t, tc)
						})
					}
				})
			}
		})
	}
}

// TestPutPreamble checks the serialized layout against golden wire bytes.
func TestPutPreamble(t *testing.T) {
	t.Parallel()

	forEachCase(t, func(t *testing.T, tc Case) {
		t.Helper()

		want, err := hex.DecodeString(tc.Wire)
		if err != nil {
			t.Fatalf("decoding wire hex: %v", err)
		}

		got := make([]byte, frame.PreambleSize)
		frame.PutPreamble(got, frame.Preamble{
			Checksum: tc.Checksum,
			TotalLen: tc.Total,
			HdrLen:   tc.Hdr,
		})

		if !bytes.Equal(got, want) {
			t.Errorf("PutPreamble = %x, want %x", got, want)
		}
	})
}

// TestParsePreamble checks that golden wire bytes parse back into the
// original fields.
func TestParsePreamble(t *testing.T) {
	t.Parallel()

	forEachCase(t, func(t *testing.T, tc Case) {
		t.Helper()

		wire, err := hex.DecodeString(tc.Wire)
		if err != nil {
			t.Fatalf("decoding wire hex: %v", err)
		}

		got := frame.ParsePreamble(wire)

		if got.Checksum != tc.Checksum || got.TotalLen != tc.Total || got.HdrLen != tc.Hdr {
			t.Errorf("ParsePreamble = %+v, want {Checksum:%#04x TotalLen:%d HdrLen:%d}",
				got, tc.Checksum, tc.Total, tc.Hdr)
		}
	})
}

// TestPaddedLen verifies rounding up to the block size.
func TestPaddedLen(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int
		want int
	}{
		{0, 0},
		{1, 16},
		{15, 16},
		{16, 16},
		{17, 32},
		{32, 32},
		{33, 48},
	}

	for _, tc := range tests {
		if got := frame.PaddedLen(tc.in); got != tc.want {
			t.Errorf("PaddedLen(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
