// ABOUTME: Entry point for migration-assessor CLI
// ABOUTME: Command-line tool for scoring inventories and querying the API

package main

import (
	"fmt"
	"os"

	"github.com/markalston/migration-assessor/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
