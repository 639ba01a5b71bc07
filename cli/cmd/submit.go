// ABOUTME: Submit command for migration-assessor CLI
// ABOUTME: Posts each record in a local file to the API for assessment and storage

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/markalston/migration-assessor/cli/internal/client"
	"github.com/markalston/migration-assessor/cli/internal/styles"
)

var submitCmd = &cobra.Command{
	Use:   "submit <file>",
	Short: "Submit server records to the API",
	Long: `Submit every server record in a JSON file to the API, one request per record.
Submission stops at the first rejected record. Use "-" to read from stdin.

Exit codes:
  0 - All records stored
  2 - Error (unreadable file, connectivity, rejected record)`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runSubmit(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(submitCmd)
}

func runSubmit(ctx context.Context, w io.Writer, path string) int {
	records, err := readRecords(path)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	c := client.New(GetAPIURL())
	summaries := make([]client.Summary, 0, len(records))
	for i, r := range records {
		body, err := recordJSON(r)
		if err != nil {
			fmt.Fprintf(w, "Error: record %d: %v\n", i+1, err)
			return 2
		}
		resp, err := c.SubmitServer(ctx, body)
		if err != nil {
			fmt.Fprintf(w, "Error: record %d (%s): %v\n", i+1, r.Name(), err)
			return 2
		}
		summaries = append(summaries, resp.Details)

		if !IsJSONOutput() {
			fmt.Fprintf(w, "%s %s  %s  %s\n",
				styles.StatusOK.Render("stored"),
				resp.Details.ServerName,
				styles.Strategy(resp.Details.PrimaryStrategy),
				resp.Details.EstimatedCost)
		}
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(summaries, "", "  ")
		fmt.Fprintln(w, string(data))
	}
	return 0
}
