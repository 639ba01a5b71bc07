// ABOUTME: Root command for migration-assessor CLI
// ABOUTME: Handles global flags and configuration

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	apiURL     string
	jsonOutput bool
)

const defaultAPIURL = "http://localhost:8080"

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "migration-assessor",
	Short: "CLI for the Migration Assessor",
	Long: `migration-assessor scores server inventories against four cloud migration
strategies (lift_and_shift, refactor, rebuild, hybrid) and estimates a blended
migration cost for each server.

  assess   score a local inventory file offline; nothing is stored
  submit   send records to the API, which stores each assessment
  get      fetch a stored assessment by server name
  ingest   have the API bulk-ingest an inventory object from its object store

Inventory files hold one JSON object or an array of objects. Pass "-" to read
from stdin.

Environment Variables:
  MIGRATION_API_URL  Assessor API URL for submit, get, ingest, and health
                     (default: http://localhost:8080)`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides MIGRATION_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("MIGRATION_API_URL"); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}
