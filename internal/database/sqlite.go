package database

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	"casetas-go/internal/caseta"
	"casetas-go/internal/database/migrations"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// detailPrefix namespaces per-record detail tables so a record name can
// never collide with the records table or migration bookkeeping.
const detailPrefix = "record:"

// SQLiteDatabase implements caseta.RecordStore using SQLite.
//
// Aggregates live in the records table. The detail rows of each record are
// kept in their own table, addressed by the record name.
type SQLiteDatabase struct {
	db    *sqlx.DB
	clock caseta.Clock
	path  string
}

// NewSQLiteDatabase opens the database at path, applies pending migrations
// and returns a ready store. path can be a file path or ":memory:".
// A nil clock uses the real time.
func NewSQLiteDatabase(path string, clock caseta.Clock) (*SQLiteDatabase, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	return NewSQLiteDatabaseFromDB(db, path, clock), nil
}

// NewSQLiteDatabaseFromDB wraps an existing, already migrated connection.
func NewSQLiteDatabaseFromDB(db *sql.DB, path string, clock caseta.Clock) *SQLiteDatabase {
	if clock == nil {
		clock = caseta.RealClock{}
	}
	return &SQLiteDatabase{
		db:    sqlx.NewDb(db, "sqlite3"),
		clock: clock,
		path:  path,
	}
}

// OpenConnection opens and configures a SQLite database connection with appropriate PRAGMAs.
// path can be a file path or ":memory:" for in-memory database.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every pooled connection to ":memory:" would be a separate database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return db, nil
}

// detailTable returns the quoted identifier of the detail table for name.
// SQLite folds identifier case, so the name is hex-encoded to keep "R1" and
// "r1" in separate tables.
func detailTable(name string) string {
	return `"` + detailPrefix + hex.EncodeToString([]byte(name)) + `"`
}

// Save creates or updates the record called name in a single transaction.
func (s *SQLiteDatabase) Save(ctx context.Context, name string, tickets []caseta.Ticket) (*caseta.Record, error) {
	if name == "" {
		return nil, &caseta.ValidationError{Field: "record name", Reason: "must not be empty"}
	}

	sum := caseta.Summarize(tickets)
	now := s.clock.Now().Format(caseta.DateFormat)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	rec := caseta.Record{
		Name:        name,
		CreatedAt:   now,
		ModifiedAt:  now,
		TicketCount: len(tickets),
		Total:       sum.Total,
		SubTotal:    sum.SubTotal,
		Tax:         sum.Tax,
	}

	var id int64
	err = tx.GetContext(ctx, &id, "SELECT id FROM records WHERE name = ?", name)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		res, err := tx.NamedExecContext(ctx, `
			INSERT INTO records (name, created_at, modified_at, ticket_count, total, sub_total, tax)
			VALUES (:name, :created_at, :modified_at, :ticket_count, :total, :sub_total, :tax)`, &rec)
		if err != nil {
			return nil, fmt.Errorf("inserting record: %w", err)
		}
		if rec.ID, err = res.LastInsertId(); err != nil {
			return nil, fmt.Errorf("reading record id: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("finding record: %w", err)
	default:
		rec.ID = id
		_, err := tx.NamedExecContext(ctx, `
			UPDATE records
			SET modified_at = :modified_at, ticket_count = :ticket_count,
			    total = :total, sub_total = :sub_total, tax = :tax
			WHERE id = :id`, &rec)
		if err != nil {
			return nil, fmt.Errorf("updating record: %w", err)
		}
	}

	if err := replaceDetail(ctx, tx, name, tickets); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return s.Get(ctx, name)
}

// replaceDetail drops and recreates the detail table of name with tickets.
func replaceDetail(ctx context.Context, tx *sqlx.Tx, name string, tickets []caseta.Ticket) error {
	table := detailTable(name)

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
		return fmt.Errorf("dropping detail table: %w", err)
	}
	_, err := tx.ExecContext(ctx, `CREATE TABLE `+table+` (
		id        INTEGER PRIMARY KEY,
		name      TEXT NOT NULL,
		total     REAL NOT NULL,
		sub_total REAL NOT NULL,
		tax       REAL NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("creating detail table: %w", err)
	}

	// Positional arguments: the quoted table name may contain ':'.
	stmt, err := tx.PreparexContext(ctx, "INSERT INTO "+table+" (id, name, total, sub_total, tax) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing detail insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range tickets {
		if _, err := stmt.ExecContext(ctx, t.ID, t.Name, t.Total, t.SubTotal, t.Tax); err != nil {
			return fmt.Errorf("inserting ticket %d: %w", t.ID, err)
		}
	}
	return nil
}

// List returns all aggregate rows ordered by id.
func (s *SQLiteDatabase) List(ctx context.Context) ([]caseta.Record, error) {
	var recs []caseta.Record
	err := s.db.SelectContext(ctx, &recs, `
		SELECT id, name, created_at, modified_at, ticket_count, total, sub_total, tax
		FROM records ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	for i := range recs {
		roundRecord(&recs[i])
	}
	return recs, nil
}

// Get returns the aggregate row for name.
func (s *SQLiteDatabase) Get(ctx context.Context, name string) (*caseta.Record, error) {
	var rec caseta.Record
	err := s.db.GetContext(ctx, &rec, `
		SELECT id, name, created_at, modified_at, ticket_count, total, sub_total, tax
		FROM records WHERE name = ?`, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("record %q: %w", name, caseta.ErrNotFound)
		}
		return nil, fmt.Errorf("finding record: %w", err)
	}
	roundRecord(&rec)
	return &rec, nil
}

// Fetch returns the detail rows saved under name in id order.
func (s *SQLiteDatabase) Fetch(ctx context.Context, name string) ([]caseta.Ticket, error) {
	ok, err := s.Exists(ctx, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("record %q: %w", name, caseta.ErrNotFound)
	}

	var tickets []caseta.Ticket
	err = s.db.SelectContext(ctx, &tickets,
		"SELECT id, name, total, sub_total, tax FROM "+detailTable(name)+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("reading tickets of record %q: %w", name, err)
	}
	for i := range tickets {
		t := &tickets[i]
		t.Total, t.SubTotal, t.Tax = t.Total.Round(2), t.SubTotal.Round(2), t.Tax.Round(2)
	}
	return tickets, nil
}

// Delete removes the aggregate row and detail table for name.
func (s *SQLiteDatabase) Delete(ctx context.Context, name string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "DELETE FROM records WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("record %q: %w", name, caseta.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+detailTable(name)); err != nil {
		return fmt.Errorf("dropping detail table: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Exists reports whether a record called name exists.
func (s *SQLiteDatabase) Exists(ctx context.Context, name string) (bool, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM records WHERE name = ?", name); err != nil {
		return false, fmt.Errorf("checking record: %w", err)
	}
	return n > 0, nil
}

// roundRecord normalizes REAL columns read back as floats to cents.
func roundRecord(r *caseta.Record) {
	r.Total, r.SubTotal, r.Tax = r.Total.Round(2), r.SubTotal.Round(2), r.Tax.Round(2)
}

// Path returns the database file path (or ":memory:" for in-memory databases).
func (s *SQLiteDatabase) Path() string {
	return s.path
}

// CheckMigrations verifies the database schema is up-to-date.
func (s *SQLiteDatabase) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(s.db.DB)
}

// BackupTo creates a complete copy of the database at destPath using VACUUM INTO.
func (s *SQLiteDatabase) BackupTo(destPath string) error {
	_, err := s.db.Exec("VACUUM INTO ?", destPath)
	if err != nil {
		return fmt.Errorf("backing up database: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteDatabase) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Compile-time check that SQLiteDatabase implements caseta.RecordStore.
var _ caseta.RecordStore = (*SQLiteDatabase)(nil)
