package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending, Urgent lipgloss.Style
	BoxUnchecked, BoxChecked                               string
	Border                                                 lipgloss.Border
	SymDone, SymPending, SymFail                           string
}

var current = classicTheme()

func classicTheme() Theme {
	return Theme{
		Title:        lipgloss.NewStyle().Bold(true),
		Muted:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pending:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Urgent:       lipgloss.NewStyle().Bold(true).Italic(true),
		BoxUnchecked: "☐", BoxChecked: "☑",
		Border:  lipgloss.NormalBorder(),
		SymDone: "✔", SymPending: "•", SymFail: "✖",
	}
}

// SetTheme switches the active theme: classic, neon or mono.
func SetTheme(name string) error {
	switch strings.ToLower(name) {
	case "", "classic":
		current = classicTheme()
	case "neon":
		t := classicTheme()
		t.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
		t.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		t.Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
		t.Urgent = lipgloss.NewStyle().Bold(true).Italic(true).Foreground(lipgloss.Color("13"))
		t.BoxUnchecked, t.BoxChecked = "◻", "◼"
		t.Border = lipgloss.RoundedBorder()
		current = t
	case "mono":
		plain := lipgloss.NewStyle()
		current = Theme{
			Title: plain, Muted: plain, Accent: plain, Success: plain,
			Error: plain, Pending: plain, Urgent: plain,
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			Border:  lipgloss.ASCIIBorder(),
			SymDone: "x", SymPending: "-", SymFail: "!",
		}
	default:
		return fmt.Errorf("unknown theme %q (want classic|neon|mono)", name)
	}
	return nil
}
