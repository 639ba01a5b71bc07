// ABOUTME: Shared lipgloss styles for CLI output
// ABOUTME: Defines colors and text styles for tables and status lines

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors - Core palette
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Danger    = lipgloss.Color("#EF4444") // Red
	Muted     = lipgloss.Color("#6B7280") // Gray
	Info      = lipgloss.Color("#3B82F6") // Blue

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Label = lipgloss.NewStyle().
		Foreground(Muted)

	Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Padding(0, 1)

	Cell = lipgloss.NewStyle().
		Padding(0, 1)

	StatusOK = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	StatusCritical = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)
)

// strategyColors tints each migration strategy by disruption level.
var strategyColors = map[string]lipgloss.Color{
	"lift_and_shift": Secondary,
	"refactor":       Info,
	"hybrid":         Warning,
	"rebuild":        Danger,
}

// Strategy renders a strategy name in its color. Display forms such as
// "Lift_And_Shift" are matched case-insensitively.
func Strategy(name string) string {
	color, ok := strategyColors[strings.ToLower(name)]
	if !ok {
		return name
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(name)
}
