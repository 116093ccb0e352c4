package caseta

import (
	"context"

	"github.com/shopspring/decimal"
)

// Record is the aggregate row of a named, persisted ledger snapshot.
// Its amounts are the sums at the time of the last save; they are not
// recomputed from the detail rows afterwards.
type Record struct {
	ID          int64           `db:"id"`
	Name        string          `db:"name"`
	CreatedAt   string          `db:"created_at"`
	ModifiedAt  string          `db:"modified_at"`
	TicketCount int             `db:"ticket_count"`
	Total       decimal.Decimal `db:"total"`
	SubTotal    decimal.Decimal `db:"sub_total"`
	Tax         decimal.Decimal `db:"tax"`
}

// RecordStore persists named snapshots of a ledger. Names are matched
// exactly and case-sensitively.
type RecordStore interface {
	// Save creates the record if name is new, otherwise updates it in place:
	// ModifiedAt, the aggregates and the detail rows are replaced while
	// CreatedAt is kept.
	Save(ctx context.Context, name string, tickets []Ticket) (*Record, error)

	// List returns every aggregate row ordered by id.
	List(ctx context.Context) ([]Record, error)

	// Get returns the aggregate row for name, or ErrNotFound.
	Get(ctx context.Context, name string) (*Record, error)

	// Fetch returns the detail rows saved under name in id order, or ErrNotFound.
	Fetch(ctx context.Context, name string) ([]Ticket, error)

	// Delete removes the aggregate row and the detail rows for name.
	// It returns ErrNotFound when no such record exists.
	Delete(ctx context.Context, name string) error

	// Exists reports whether a record named name has been saved.
	Exists(ctx context.Context, name string) (bool, error)

	// Close releases the underlying storage.
	Close() error
}
