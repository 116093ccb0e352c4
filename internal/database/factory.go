package database

import (
	"fmt"
	"path/filepath"

	"casetas-go/internal/caseta"
	"casetas-go/internal/config"
)

// DatabaseFile is the name of the records database inside data_dir.
const DatabaseFile = "casetas.db"

// NewDatabaseFromConfig creates a RecordStore based on the database config type.
func NewDatabaseFromConfig(cfg config.DatabaseConfig, clock caseta.Clock) (*SQLiteDatabase, error) {
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite database")
		}
		return NewSQLiteDatabase(filepath.Join(cfg.DataDir, DatabaseFile), clock)
	case "memory":
		return NewSQLiteDatabase(":memory:", clock)
	default:
		return nil, fmt.Errorf("unknown database type: %s", cfg.Type)
	}
}
