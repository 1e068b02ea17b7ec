package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Style definitions.
var (
	// TitleStyle for the run header.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// SuccessStyle for the per-ticker success lines.
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	// FailureStyle for the per-ticker failure lines.
	FailureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	// SummaryStyle for the closing summary line.
	SummaryStyle = lipgloss.NewStyle().Bold(true)
)

// FormatSummary renders the closing successes/attempts line.
func FormatSummary(successes, attempts int) string {
	line := fmt.Sprintf("Downloaded %d/%d tickers", successes, attempts)
	if successes == attempts {
		return SuccessStyle.Render(line)
	}

	if successes == 0 {
		return FailureStyle.Render(line)
	}

	return SummaryStyle.Render(line)
}
