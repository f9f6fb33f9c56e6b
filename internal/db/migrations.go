package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS records (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			title      TEXT NOT NULL,
			start_ts   INTEGER NOT NULL,
			end_ts     INTEGER NOT NULL,
			color      TEXT,
			group_key  TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_records_start ON records(start_ts);
		CREATE INDEX IF NOT EXISTS idx_records_end ON records(end_ts);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating records table: %w", err)
	}

	return nil
}
