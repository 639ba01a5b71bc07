// ABOUTME: Get command for migration-assessor CLI
// ABOUTME: Fetches a stored assessment by server name

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/markalston/migration-assessor/cli/internal/client"
	"github.com/markalston/migration-assessor/cli/internal/styles"
)

var getCmd = &cobra.Command{
	Use:   "get <server_id>",
	Short: "Fetch a stored assessment",
	Long: `Fetch the stored assessment for one server.

Exit codes:
  0 - Assessment found
  1 - No assessment for this server
  2 - Error (connectivity, backend failure)`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runGet(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(ctx context.Context, w io.Writer, serverID string) int {
	resp, err := client.New(GetAPIURL()).GetServer(ctx, serverID)
	if errors.Is(err, client.ErrNotFound) {
		fmt.Fprintf(w, "%s server %q\n", styles.StatusCritical.Render("not found"), serverID)
		return 1
	}
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(resp.Server, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatAssessmentHuman(resp.Server))
	}
	return 0
}

func formatAssessmentHuman(a client.Assessment) string {
	rows := [][2]string{
		{"Instance", a.InstanceType},
		{"CPU", a.CPUUtilization + "%"},
		{"Memory", a.MemoryUtilization + "%"},
		{"Network", a.NetworkUtilization + "%"},
		{"Strategy", styles.Strategy(a.PrimaryStrategy)},
		{"Scores", a.StrategyScores},
		{"Cost", a.Cost},
		{"Storage", a.Storage},
		{"Software", a.Software},
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render(a.ServerName))
	for _, row := range rows {
		fmt.Fprintf(&b, "\n%s %s", styles.Label.Render(fmt.Sprintf("%-9s", row[0]+":")), row[1])
	}
	return b.String()
}
