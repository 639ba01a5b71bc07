// ABOUTME: Assess command for migration-assessor CLI
// ABOUTME: Scores server records from a local file without contacting the API

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/markalston/migration-assessor/cli/internal/styles"
	"github.com/markalston/migration-assessor/models"
	"github.com/markalston/migration-assessor/services"
)

var assessCmd = &cobra.Command{
	Use:   "assess <file>",
	Short: "Score server records locally",
	Long: `Score every server record in a JSON file (a single object or an array of
objects) and print the recommended strategy and estimated cost for each.
Nothing is stored. Use "-" to read from stdin.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runAssess(os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(assessCmd)
}

// assessment is one scored record as printed by the CLI.
type assessment struct {
	ServerName      string                `json:"server_name"`
	InstanceType    string                `json:"instance_type"`
	CPU             string                `json:"cpu_utilization"`
	Memory          string                `json:"memory_utilization"`
	Network         string                `json:"network_utilization"`
	PrimaryStrategy models.Strategy       `json:"primary_strategy"`
	StrategyScores  models.StrategyScores `json:"strategy_scores"`
	EstimatedCost   models.Cents          `json:"estimated_cost"`
}

func runAssess(w io.Writer, path string) int {
	records, err := readRecords(path)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	results, err := assessRecords(records)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(results, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatAssessTable(results))
	}
	return 0
}

func assessRecords(records []models.ServerRecord) ([]assessment, error) {
	processor := services.NewProcessor(nil, nil)
	results := make([]assessment, 0, len(records))
	for i, r := range records {
		a, err := processor.Assess(r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		results = append(results, assessment{
			ServerName:      a.Item.ServerName,
			InstanceType:    a.Item.InstanceType,
			CPU:             a.Item.CPUUtilization,
			Memory:          a.Item.MemoryUtilization,
			Network:         a.Item.NetworkUtilization,
			PrimaryStrategy: a.Summary.PrimaryStrategy,
			StrategyScores:  a.Scores,
			EstimatedCost:   a.Summary.EstimatedCost,
		})
	}
	return results, nil
}

func formatAssessTable(results []assessment) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.Muted)).
		Headers("SERVER", "INSTANCE", "CPU", "MEM", "NET", "STRATEGY", "L/R/RB/H", "COST").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Header
			}
			return styles.Cell
		})

	for _, a := range results {
		t.Row(
			a.ServerName,
			a.InstanceType,
			a.CPU,
			a.Memory,
			a.Network,
			styles.Strategy(string(a.PrimaryStrategy)),
			formatScores(a.StrategyScores),
			a.EstimatedCost.String(),
		)
	}

	summary := styles.Label.Render(fmt.Sprintf("%d server(s) assessed", len(results)))
	return t.String() + "\n" + summary
}

func formatScores(s models.StrategyScores) string {
	return strconv.Itoa(s.LiftAndShift) + "/" +
		strconv.Itoa(s.Refactor) + "/" +
		strconv.Itoa(s.Rebuild) + "/" +
		strconv.Itoa(s.Hybrid)
}
