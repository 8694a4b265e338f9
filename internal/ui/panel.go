package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// progressBar shows done out of total as width cells and a percentage.
func progressBar(done, total, width int) string {
	width = max(width, 5)
	pct := 0
	if total > 0 {
		pct = min(done*100/total, 100)
	}
	filled := width * pct / 100
	return current.Success.Render(strings.Repeat("█", filled)) +
		current.Muted.Render(strings.Repeat("░", width-filled)) +
		fmt.Sprintf(" %3d%%", pct)
}

// Panel frames lines in a box using the current theme.
func Panel(lines []string) string {
	box := lipgloss.NewStyle().
		Border(current.Border).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return box.Render(strings.Join(lines, "\n"))
}
