package caseta

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Service is the orchestration layer the front end talks to. It owns no
// global state: the ledger, store and exporter it operates on are passed in.
type Service struct {
	ledger   *Ledger
	store    RecordStore
	exporter Exporter
	logger   Logger
}

// NewService creates a Service over the given ledger and collaborators.
func NewService(ledger *Ledger, store RecordStore, exporter Exporter, logger Logger) *Service {
	return &Service{
		ledger:   ledger,
		store:    store,
		exporter: exporter,
		logger:   logger,
	}
}

// Ledger exposes the ledger the service mutates.
func (s *Service) Ledger() *Ledger {
	return s.ledger
}

// AddTicket parses rawTotal and appends a ticket to the ledger.
func (s *Service) AddTicket(name, rawTotal string) (Ticket, error) {
	total, err := ParseAmount(rawTotal)
	if err != nil {
		return Ticket{}, err
	}
	t, err := s.ledger.Add(name, total)
	if err != nil {
		return Ticket{}, err
	}
	s.logger.Debug("ticket added", "id", t.ID, "name", t.Name, "total", t.Total.StringFixed(2))
	return t, nil
}

// EditTicket parses rawTotal and replaces the ticket with the given id.
func (s *Service) EditTicket(id int, name, rawTotal string) (Ticket, error) {
	total, err := ParseAmount(rawTotal)
	if err != nil {
		return Ticket{}, err
	}
	t, err := s.ledger.Edit(id, name, total)
	if err != nil {
		return Ticket{}, err
	}
	s.logger.Debug("ticket edited", "id", t.ID, "name", t.Name, "total", t.Total.StringFixed(2))
	return t, nil
}

// RemoveTicket removes a ticket; later tickets are renumbered.
func (s *Service) RemoveTicket(id int) error {
	if err := s.ledger.Remove(id); err != nil {
		return err
	}
	s.logger.Debug("ticket removed", "id", id, "remaining", s.ledger.Count())
	return nil
}

// Table returns the current tickets plus their summary row.
func (s *Service) Table() Table {
	return s.ledger.Table()
}

// NewSession discards the current tickets.
func (s *Service) NewSession() {
	s.ledger.Clear()
	s.logger.Debug("session cleared")
}

// SaveRecord persists the current ledger under name. When reset is true the
// ledger is cleared after a successful save.
func (s *Service) SaveRecord(ctx context.Context, name string, reset bool) (*Record, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "record name", Reason: "must not be empty"}
	}
	if s.ledger.Count() == 0 {
		return nil, &ValidationError{Field: "tickets", Reason: "nothing to save"}
	}

	rec, err := s.store.Save(ctx, name, s.ledger.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("saving record %q: %w", name, err)
	}
	s.logger.Info("record saved", "name", rec.Name, "tickets", rec.TicketCount, "total", rec.Total.StringFixed(2))

	if reset {
		s.ledger.Clear()
	}
	return rec, nil
}

// OpenRecord replaces the ledger with the detail rows of a saved record.
// The ledger is left untouched if the record cannot be fetched.
func (s *Service) OpenRecord(ctx context.Context, name string) error {
	tickets, err := s.store.Fetch(ctx, name)
	if err != nil {
		return fmt.Errorf("opening record: %w", err)
	}
	s.ledger.ReplaceAll(tickets)
	s.logger.Info("record opened", "name", name, "tickets", len(tickets))
	return nil
}

// ListRecords returns the aggregate rows of all saved records.
func (s *Service) ListRecords(ctx context.Context) ([]Record, error) {
	recs, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	return recs, nil
}

// RecordDetail returns a saved record's aggregate row and its detail table.
func (s *Service) RecordDetail(ctx context.Context, name string) (*Record, Table, error) {
	rec, err := s.store.Get(ctx, name)
	if err != nil {
		return nil, Table{}, fmt.Errorf("loading record: %w", err)
	}
	tickets, err := s.store.Fetch(ctx, name)
	if err != nil {
		return nil, Table{}, fmt.Errorf("loading record tickets: %w", err)
	}
	return rec, NewTable(tickets), nil
}

// DeleteRecord removes a saved record. Deleting an unknown name returns
// ErrNotFound.
func (s *Service) DeleteRecord(ctx context.Context, name string) error {
	if err := s.store.Delete(ctx, name); err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}
	s.logger.Info("record deleted", "name", name)
	return nil
}

// Export writes the current ledger to dir/baseName in the given format.
func (s *Service) Export(dir, baseName string, format ExportFormat) (string, error) {
	if s.ledger.Count() == 0 {
		return "", &ValidationError{Field: "tickets", Reason: "nothing to export"}
	}
	return s.export(s.ledger.Table(), dir, baseName, format)
}

// ExportRecord writes a saved record to dir/baseName without touching the
// ledger.
func (s *Service) ExportRecord(ctx context.Context, name, dir, baseName string, format ExportFormat) (string, error) {
	tickets, err := s.store.Fetch(ctx, name)
	if err != nil {
		return "", fmt.Errorf("loading record: %w", err)
	}
	return s.export(NewTable(tickets), dir, baseName, format)
}

func (s *Service) export(table Table, dir, baseName string, format ExportFormat) (string, error) {
	baseName = strings.TrimSpace(baseName)
	if baseName == "" {
		return "", &ValidationError{Field: "file name", Reason: "must not be empty"}
	}
	if baseName == "." || baseName == ".." || filepath.Base(baseName) != baseName {
		return "", &ValidationError{Field: "file name", Reason: fmt.Sprintf("%q must not contain a directory", baseName)}
	}
	path, err := s.exporter.Export(table, dir, baseName, format)
	if err != nil {
		return "", fmt.Errorf("exporting %s: %w", format, err)
	}
	s.logger.Info("table exported", "path", path, "format", string(format), "rows", len(table.Rows))
	return path, nil
}
