package record

import (
	"context"
	"errors"
)

// ErrEmptyTitle is returned when a record is created with a blank title.
var ErrEmptyTitle = errors.New("record title cannot be empty")

// Repository defines the storage interface for time records.
// ListByRange is the engine's data-fetch collaborator: it must return
// records sorted by start time ascending, the order the layout engine
// preserves for lane stability.
type Repository interface {
	// CreateRecord adds a new record and fills in its ID.
	CreateRecord(ctx context.Context, r *Record) error

	// CreateRecords adds multiple records in a batch.
	CreateRecords(ctx context.Context, recs []*Record) error

	// GetRecord retrieves a record by ID. Returns nil if not found.
	GetRecord(ctx context.Context, id int64) (*Record, error)

	// DeleteRecord removes a record by ID.
	DeleteRecord(ctx context.Context, id int64) error

	// ListByRange returns all records whose span intersects
	// [start, end) epoch seconds, sorted by start ascending.
	ListByRange(ctx context.Context, start, end int64) ([]Record, error)

	// Close releases any resources held by the repository.
	Close() error
}
