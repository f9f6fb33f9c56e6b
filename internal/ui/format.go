package ui

import (
	"fmt"
	"time"

	"timegrid/internal/record"
)

// FormatSpan renders a record's time span for list output in the viewer's
// local clock. Full-day spans show dates only; timed spans show the clock
// range, collapsing the date when both ends fall on the same day.
func FormatSpan(n record.Normalized) string {
	start := time.Unix(n.Start, 0).In(time.Local)
	end := time.Unix(n.End, 0).In(time.Local)

	if n.FullDay || n.IsFullDay() {
		if start.Equal(end) {
			return start.Format("2006-01-02")
		}
		return fmt.Sprintf("%s..%s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	if start.Year() == end.Year() && start.YearDay() == end.YearDay() {
		return fmt.Sprintf("%s %s-%s",
			start.Format("2006-01-02"), start.Format("15:04"), end.Format("15:04"))
	}
	return fmt.Sprintf("%s - %s",
		start.Format("2006-01-02 15:04"), end.Format("2006-01-02 15:04"))
}

// PrintRecordRow prints a single record row with consistent formatting.
func PrintRecordRow(n record.Normalized, maxTitleWidth int) {
	title := n.Title
	if len(title) > maxTitleWidth {
		title = title[:maxTitleWidth-3] + "..."
	}

	var kind string
	if n.FullDay || n.IsFullDay() {
		kind = formatFullDay("[day]")
	} else {
		kind = formatTimed("[   ]")
	}

	group := ""
	if n.GroupKey != "" {
		group = formatMuted("  (" + n.GroupKey + ")")
	}

	fmt.Printf("  #%-4d %s  %-24s %s%s\n", n.ID, kind, FormatSpan(n), title, group)
}

// FormatDuration formats a span in seconds as a human-readable duration.
func FormatDuration(seconds int64) string {
	if seconds <= 0 {
		return "0m"
	}
	d := time.Duration(seconds) * time.Second
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	mins := int(d.Minutes()) % 60

	switch {
	case days > 0 && hours == 0:
		return fmt.Sprintf("%dd", days)
	case days > 0:
		return fmt.Sprintf("%dd%dh", days, hours)
	case hours > 0 && mins == 0:
		return fmt.Sprintf("%dh", hours)
	case hours > 0:
		return fmt.Sprintf("%dh%dm", hours, mins)
	default:
		return fmt.Sprintf("%dm", mins)
	}
}
