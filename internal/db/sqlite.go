// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"timegrid/internal/record"
)

// SQLite implements record.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// CreateRecord adds a new record to the repository.
func (s *SQLite) CreateRecord(ctx context.Context, r *record.Record) error {
	if err := validate(r); err != nil {
		return err
	}

	query := `
		INSERT INTO records (title, start_ts, end_ts, color, group_key, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		r.Title,
		r.Start,
		r.End,
		nullString(r.Color),
		nullString(r.GroupKey),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	r.ID = id

	return nil
}

// CreateRecords adds multiple records in a batch using a transaction.
func (s *SQLite) CreateRecords(ctx context.Context, recs []*record.Record) error {
	if len(recs) == 0 {
		return nil
	}

	for _, r := range recs {
		if err := validate(r); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO records (title, start_ts, end_ts, color, group_key, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, r := range recs {
		result, err := stmt.ExecContext(ctx,
			r.Title,
			r.Start,
			r.End,
			nullString(r.Color),
			nullString(r.GroupKey),
			now,
		)
		if err != nil {
			return fmt.Errorf("inserting record %q: %w", r.Title, err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("getting last insert id: %w", err)
		}
		r.ID = id
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// GetRecord retrieves a record by ID. Returns nil, nil when not found.
func (s *SQLite) GetRecord(ctx context.Context, id int64) (*record.Record, error) {
	query := `
		SELECT id, title, start_ts, end_ts, color, group_key
		FROM records
		WHERE id = ?
	`

	var (
		r        record.Record
		color    sql.NullString
		groupKey sql.NullString
	)

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&r.ID,
		&r.Title,
		&r.Start,
		&r.End,
		&color,
		&groupKey,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying record: %w", err)
	}

	r.Color = color.String
	r.GroupKey = groupKey.String

	return &r, nil
}

// DeleteRecord removes a record by ID.
func (s *SQLite) DeleteRecord(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("record %d not found", id)
	}

	return nil
}

// ListByRange returns the records intersecting the half-open epoch range
// [start, end), sorted by start ascending. Zero-length records sitting
// exactly on an instant inside the range are included.
func (s *SQLite) ListByRange(ctx context.Context, start, end int64) ([]record.Record, error) {
	query := `
		SELECT id, title, start_ts, end_ts, color, group_key
		FROM records
		WHERE start_ts < ? AND (end_ts > ? OR (start_ts = end_ts AND start_ts >= ?))
		ORDER BY start_ts, id
	`

	rows, err := s.db.QueryContext(ctx, query, end, start, start)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var recs []record.Record
	for rows.Next() {
		var (
			r        record.Record
			color    sql.NullString
			groupKey sql.NullString
		)

		err := rows.Scan(&r.ID, &r.Title, &r.Start, &r.End, &color, &groupKey)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}

		r.Color = color.String
		r.GroupKey = groupKey.String
		recs = append(recs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}

	return recs, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func validate(r *record.Record) error {
	if strings.TrimSpace(r.Title) == "" {
		return record.ErrEmptyTitle
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
