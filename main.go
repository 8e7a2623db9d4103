// goseal seals application data into authenticated, encrypted packet streams
// and recovers it from fragmented or corrupted input.
package main

import (
	"os"

	"github.com/idelchi/goseal/internal/commands"
)

// version is set at build time.
var version = "dev"

func main() {
	if err := commands.NewRootCommand(version).Execute(); err != nil {
		os.Exit(1)
	}
}
