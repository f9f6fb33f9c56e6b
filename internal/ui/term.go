package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Full-day bars: bold cyan
	colorFullDay = color.New(color.FgCyan, color.Bold)

	// Timed records: plain white
	colorTimed = color.New(color.FgWhite)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Stats: green for counts and summaries
	colorStats = color.New(color.FgGreen)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// formatFullDay formats text for a full-day record.
func formatFullDay(s string) string {
	return colorFullDay.Sprint(s)
}

// formatTimed formats text for a timed record.
func formatTimed(s string) string {
	return colorTimed.Sprint(s)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatStats formats text for statistics.
func formatStats(s string) string {
	return colorStats.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
