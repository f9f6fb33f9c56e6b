package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"timegrid/internal/config"
	"timegrid/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  timegrid config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive()
		},
	}
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(cfg)

	// Ask if user wants to edit
	if !promptYesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	// Interactive editing
	reader := bufio.NewReader(os.Stdin)

	cfg.View.Mode = promptValue(reader, "View mode (month, day, hour, gantt)", cfg.View.Mode)
	cfg.View.WeekStartsMonday = promptBool(reader, "Week starts Monday", cfg.View.WeekStartsMonday)
	cfg.View.OverlapMode = promptValue(reader, "Overlap mode (strict, touch)", cfg.View.OverlapMode)
	cfg.View.DaysVisible = promptInt(reader, "Days visible in day/hour view", cfg.View.DaysVisible)
	cfg.View.Timezone = promptValue(reader, "Timezone (empty for system local)", cfg.View.Timezone)
	cfg.Gantt.Step = promptValue(reader, "Gantt step (hour, day)", cfg.Gantt.Step)
	cfg.Gantt.StepCount = promptInt(reader, "Gantt steps per page", cfg.Gantt.StepCount)
	cfg.Storage.DBPath = promptValue(reader, "Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = promptTheme(reader, cfg.UI.Theme)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Save
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\nConfiguration saved!")
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Println("Current configuration:")
	fmt.Println("──────────────────────")
	fmt.Println("[view]")
	fmt.Printf("  mode               = %s\n", cfg.View.Mode)
	fmt.Printf("  week_starts_monday = %t\n", cfg.View.WeekStartsMonday)
	fmt.Printf("  overlap_mode       = %s\n", cfg.View.OverlapMode)
	fmt.Printf("  days_visible       = %d\n", cfg.View.DaysVisible)
	if cfg.View.Timezone != "" {
		fmt.Printf("  timezone           = %s\n", cfg.View.Timezone)
	}
	fmt.Println("\n[layout]")
	fmt.Printf("  cell_width         = %g\n", cfg.Layout.CellWidth)
	fmt.Printf("  row_height         = %g\n", cfg.Layout.RowHeight)
	fmt.Printf("  pixels_per_hour    = %g\n", cfg.Layout.PixelsPerHour)
	fmt.Printf("  bar_gutter         = %g\n", cfg.Layout.BarGutter)
	fmt.Println("\n[gantt]")
	fmt.Printf("  step               = %s\n", cfg.Gantt.Step)
	fmt.Printf("  step_count         = %d\n", cfg.Gantt.StepCount)
	fmt.Printf("  zoom_factor        = %g\n", cfg.Gantt.ZoomFactor)
	fmt.Println("\n[storage]")
	fmt.Printf("  db_path            = %s\n", cfg.Storage.DBPath)
	fmt.Println("\n[ui]")
	fmt.Printf("  theme              = %s\n", cfg.UI.Theme)
}

func promptYesNo(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Printf("  %s: ", label)
	} else {
		fmt.Printf("  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptBool(reader *bufio.Reader, label string, current bool) bool {
	value := promptValue(reader, label, strconv.FormatBool(current))
	b, err := strconv.ParseBool(strings.ToLower(value))
	if err != nil {
		return current
	}
	return b
}

func promptInt(reader *bufio.Reader, label string, current int) int {
	value := promptValue(reader, label, strconv.Itoa(current))
	n, err := strconv.Atoi(value)
	if err != nil {
		return current
	}
	return n
}

func promptTheme(reader *bufio.Reader, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Printf("  Invalid theme %q. Available: %s\n", value, options)
	}
}
