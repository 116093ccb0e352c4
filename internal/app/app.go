package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"casetas-go/internal/caseta"
	"casetas-go/internal/config"
	"casetas-go/internal/database"
	"casetas-go/internal/export"
	"casetas-go/internal/session"
)

// CasetasApp is the application layer between the CLI and caseta.Service.
// It constructs all dependencies from config, restores the working ledger
// from the session draft, and writes the draft back on Close when the
// operation changed it.
type CasetasApp struct {
	cfg       *config.Config
	db        *database.SQLiteDatabase
	service   *caseta.Service
	exportDir *config.ExportDirSetting
	draft     *session.Draft
	op        *Operation
	logger    caseta.Logger
	logFile   *os.File
}

// NewCasetasApp creates a fully wired CasetasApp from the config stored at
// configPath. operation identifies the CLI command being run (e.g.
// "AddTicket", "SaveRecord"). The caller must call Close when done.
func NewCasetasApp(configPath string, operation string) (*CasetasApp, error) {
	cfg, err := config.ReadFromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	db, err := database.NewDatabaseFromConfig(cfg.Database, caseta.RealClock{})
	if err != nil {
		return nil, fmt.Errorf("creating database: %w", err)
	}

	if err := db.CheckMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database schema out of date: %w", err)
	}

	draft, err := session.Load(cfg.SessionFile)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("loading session: %w", err)
	}

	runID := uuid.New().String()
	slogger, logFile, err := newLogger(cfg.LogDir, runID)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: slogger}

	ledger := caseta.NewLedger()
	ledger.ReplaceAll(draft.Tickets)

	svc := caseta.NewService(ledger, db, export.NewFileExporter(), logger)
	op := NewOperation(operation)
	logger.Debug("operation started", "operation", op.Name, "tickets", ledger.Count())

	return &CasetasApp{
		cfg:       cfg,
		db:        db,
		service:   svc,
		exportDir: config.NewExportDirSetting(configPath),
		draft:     draft,
		op:        op,
		logger:    logger,
		logFile:   logFile,
	}, nil
}

// track marks the operation as failed when err is non-nil and passes err
// through.
func (a *CasetasApp) track(err error) error {
	if err != nil {
		a.op.Fail()
	}
	return err
}

// CurrentRecord returns the name of the record the session was opened
// from, or "" for a fresh session.
func (a *CasetasApp) CurrentRecord() string {
	return a.draft.Record
}

// AddTicket appends a ticket to the session.
func (a *CasetasApp) AddTicket(name, rawTotal string) (caseta.Ticket, error) {
	t, err := a.service.AddTicket(name, rawTotal)
	if err != nil {
		return caseta.Ticket{}, a.track(err)
	}
	a.op.MarkSessionChanged()
	return t, nil
}

// EditTicket replaces the name and total of ticket id.
func (a *CasetasApp) EditTicket(id int, name, rawTotal string) (caseta.Ticket, error) {
	t, err := a.service.EditTicket(id, name, rawTotal)
	if err != nil {
		return caseta.Ticket{}, a.track(err)
	}
	a.op.MarkSessionChanged()
	return t, nil
}

// RemoveTicket removes ticket id from the session.
func (a *CasetasApp) RemoveTicket(id int) error {
	if err := a.service.RemoveTicket(id); err != nil {
		return a.track(err)
	}
	a.op.MarkSessionChanged()
	return nil
}

// Table returns the session's tickets and summary row.
func (a *CasetasApp) Table() caseta.Table {
	return a.service.Table()
}

// ClearSession discards the session's tickets and forgets the record it was
// opened from.
func (a *CasetasApp) ClearSession() {
	a.service.NewSession()
	a.draft.Record = ""
	a.op.MarkSessionChanged()
}

// SaveRecord stores the session under name. An empty name falls back to the
// record the session was opened from. Unless keep is set, the session is
// cleared after a successful save.
func (a *CasetasApp) SaveRecord(ctx context.Context, name string, keep bool) (*caseta.Record, error) {
	if strings.TrimSpace(name) == "" {
		name = a.draft.Record
	}
	rec, err := a.service.SaveRecord(ctx, name, !keep)
	if err != nil {
		return nil, a.track(err)
	}
	if keep {
		a.draft.Record = rec.Name
	} else {
		a.draft.Record = ""
	}
	a.op.MarkSessionChanged()
	return rec, nil
}

// OpenRecord loads a saved record into the session, replacing its tickets.
func (a *CasetasApp) OpenRecord(ctx context.Context, name string) (int, error) {
	if err := a.service.OpenRecord(ctx, name); err != nil {
		return 0, a.track(err)
	}
	a.draft.Record = name
	a.op.MarkSessionChanged()
	return a.service.Ledger().Count(), nil
}

// ListRecords returns every saved record's aggregate row.
func (a *CasetasApp) ListRecords(ctx context.Context) ([]caseta.Record, error) {
	recs, err := a.service.ListRecords(ctx)
	return recs, a.track(err)
}

// ShowRecord returns a saved record and its detail table.
func (a *CasetasApp) ShowRecord(ctx context.Context, name string) (*caseta.Record, caseta.Table, error) {
	rec, table, err := a.service.RecordDetail(ctx, name)
	return rec, table, a.track(err)
}

// DeleteRecord removes a saved record. If the session was opened from it,
// the session keeps its tickets but is detached from the record name.
func (a *CasetasApp) DeleteRecord(ctx context.Context, name string) error {
	if err := a.service.DeleteRecord(ctx, name); err != nil {
		return a.track(err)
	}
	if a.draft.Record == name {
		a.draft.Record = ""
		a.op.MarkSessionChanged()
	}
	return nil
}

// Export writes a table to the export directory, or to dir when given.
// With record set, the saved record is exported instead of the session.
func (a *CasetasApp) Export(ctx context.Context, baseName, rawFormat, record, dir string) (string, error) {
	format, err := caseta.ParseExportFormat(rawFormat)
	if err != nil {
		return "", a.track(err)
	}

	if dir == "" {
		dir, err = a.exportDir.Get()
		if err != nil {
			return "", a.track(err)
		}
	}
	dir, err = filepath.Abs(dir)
	if err != nil {
		return "", a.track(fmt.Errorf("resolving export directory: %w", err))
	}

	var path string
	if record != "" {
		path, err = a.service.ExportRecord(ctx, record, dir, baseName, format)
	} else {
		path, err = a.service.Export(dir, baseName, format)
	}
	return path, a.track(err)
}

// ExportDir returns the configured export directory, initializing it to
// the default on first use.
func (a *CasetasApp) ExportDir() (string, error) {
	dir, err := a.exportDir.Get()
	return dir, a.track(err)
}

// SetExportDir stores a new export directory.
func (a *CasetasApp) SetExportDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", a.track(fmt.Errorf("resolving export directory: %w", err))
	}
	if err := a.exportDir.Set(abs); err != nil {
		return "", a.track(err)
	}
	a.logger.Info("export directory changed", "dir", abs)
	return abs, nil
}

// Backup writes a consistent copy of the records database to destPath.
func (a *CasetasApp) Backup(destPath string) (string, error) {
	abs, err := filepath.Abs(destPath)
	if err != nil {
		return "", a.track(fmt.Errorf("resolving backup path: %w", err))
	}
	if _, err := os.Stat(abs); err == nil {
		return "", a.track(fmt.Errorf("backup destination already exists: %s", abs))
	}
	if err := a.db.BackupTo(abs); err != nil {
		return "", a.track(err)
	}
	a.logger.Info("database backed up", "path", abs)
	return abs, nil
}

// Close finalizes the operation and closes all resources.
// The session draft is written back only when the operation changed it.
func (a *CasetasApp) Close() error {
	var firstErr error

	if a.op.SessionChanged {
		a.draft.Tickets = a.service.Ledger().Snapshot()
		if err := session.Save(a.cfg.SessionFile, a.draft); err != nil {
			a.op.Fail()
			firstErr = fmt.Errorf("saving session: %w", err)
		}
	}

	a.logger.Debug("operation finished", "operation", a.op.Name, "status", a.op.Status)

	if err := a.db.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("closing database: %w", err)
	}

	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}
