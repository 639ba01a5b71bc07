// ABOUTME: Ingest command for migration-assessor CLI
// ABOUTME: Asks the API to bulk-ingest one stored inventory object

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

var (
	ingestBucket string
	ingestKey    string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Bulk-ingest a stored inventory object",
	Long: `Ask the API to read a JSON inventory object from the configured object
store and assess every record in it.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runIngest(ctx, os.Stdout, ingestBucket, ingestKey)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().StringVar(&ingestBucket, "bucket", "", "Bucket holding the inventory object")
	ingestCmd.Flags().StringVar(&ingestKey, "key", "", "Object key of the inventory document")
	ingestCmd.MarkFlagRequired("bucket")
	ingestCmd.MarkFlagRequired("key")
}

func runIngest(ctx context.Context, w io.Writer, bucket, key string) int {
	if bucket == "" || key == "" {
		fmt.Fprintln(w, "Error: --bucket and --key are required")
		return 2
	}

	resp, err := client.New(GetAPIURL()).Ingest(ctx, bucket, key)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "%s %d record(s) from %s/%s\n",
			styles.StatusOK.Render("processed"), resp.RecordsProcessed, bucket, key)
	}
	return 0
}
