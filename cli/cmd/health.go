// ABOUTME: Health command for migration-assessor CLI
// ABOUTME: Checks backend connectivity and configured backends

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/markalston/migration-assessor/cli/internal/client"
	"github.com/markalston/migration-assessor/cli/internal/styles"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend connectivity",
	Long:  `Check connectivity to the Migration Assessor API and show its configured backends.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runHealth(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

// runHealth executes the health check and returns exit code
func runHealth(ctx context.Context, w io.Writer) int {
	url := GetAPIURL()
	resp, err := client.New(url).Health(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatHealthJSON(url, resp))
	} else {
		fmt.Fprintln(w, formatHealthHuman(url, resp))
	}
	return 0
}

func formatHealthHuman(url string, resp *client.HealthResponse) string {
	status := styles.StatusOK.Render(resp.Status)
	if resp.Status != "ok" {
		status = styles.StatusCritical.Render(resp.Status)
	}

	rows := [][2]string{
		{"Backend", url},
		{"Status", status},
		{"Store", resp.StoreBackend},
		{"Objects", resp.ObjectBackend},
	}
	if resp.Table != "" {
		rows = append(rows, [2]string{"Table", resp.Table})
	}
	rows = append(rows, [2]string{"Uptime", (time.Duration(resp.UptimeSeconds) * time.Second).String()})

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("%-9s %s", row[0]+":", row[1]))
	}
	return strings.Join(lines, "\n")
}

func formatHealthJSON(url string, resp *client.HealthResponse) string {
	output := map[string]interface{}{
		"backend":        url,
		"status":         resp.Status,
		"store_backend":  resp.StoreBackend,
		"object_backend": resp.ObjectBackend,
		"uptime_seconds": resp.UptimeSeconds,
	}
	if resp.Table != "" {
		output["table"] = resp.Table
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
