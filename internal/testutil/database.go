package testutil

import (
	"testing"

	"casetas-go/internal/caseta"
	"casetas-go/internal/database"
)

// NewTestStore creates a new in-memory, migrated record store using clock
// for its date stamps. The store is closed when the test completes.
func NewTestStore(t *testing.T, clock caseta.Clock) *database.SQLiteDatabase {
	t.Helper()

	db, err := database.NewSQLiteDatabase(":memory:", clock)
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}
