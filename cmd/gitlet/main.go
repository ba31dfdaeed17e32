// Command gitlet is a minimal local version-control system.
package main

import (
	"os"

	"github.com/kilupskalvis/gitlet/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
