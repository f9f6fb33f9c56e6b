package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"timegrid/internal/importer"
	"timegrid/internal/record"
)

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import records from a YAML or iCalendar file",
		Long: `Import records from a file into the database.

The format is picked by extension: .yaml/.yml files use the record
list format, .ics files use iCalendar. Recurring iCalendar events
are skipped.

Example:
  timegrid import schedule.yaml
  timegrid import calendar.ics`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening import file: %w", err)
			}
			defer func() { _ = f.Close() }()

			var recs []*record.Record
			switch strings.ToLower(filepath.Ext(path)) {
			case ".yaml", ".yml":
				recs, err = importer.ReadYAML(f)
			case ".ics":
				recs, err = importer.ReadICS(f)
			default:
				return fmt.Errorf("unsupported import format %q (want .yaml, .yml or .ics)", filepath.Ext(path))
			}
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}

			if len(recs) == 0 {
				fmt.Println("No records found in the import file.")
				return nil
			}

			if err := a.repo.CreateRecords(context.Background(), recs); err != nil {
				return fmt.Errorf("importing records: %w", err)
			}

			fmt.Printf("Imported %d records from %s\n", len(recs), path)
			return nil
		},
	}

	return cmd
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
