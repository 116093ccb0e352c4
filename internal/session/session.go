// Package session persists the working ledger between CLI invocations.
//
// The draft is a small TOML file holding the tickets being edited and the
// name of the record they were opened from, if any.
package session

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"casetas-go/internal/caseta"
)

// Draft is the persisted state of the working ledger.
type Draft struct {
	Record  string          `toml:"record,omitempty"`
	Tickets []caseta.Ticket `toml:"tickets"`
}

// Read decodes a Draft from r. Amounts are re-derived from each ticket's
// total so a hand-edited file cannot carry an inconsistent breakdown.
func Read(r io.Reader) (*Draft, error) {
	var d Draft
	if _, err := toml.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	for i, t := range d.Tickets {
		d.Tickets[i] = caseta.NewTicket(i+1, t.Name, t.Total)
	}
	return &d, nil
}

// Write encodes d to w.
func Write(w io.Writer, d *Draft) error {
	if err := toml.NewEncoder(w).Encode(d); err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return nil
}

// Load reads the draft at path. A missing file yields an empty draft.
func Load(path string) (*Draft, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Draft{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening session file: %w", err)
	}
	defer f.Close()

	d, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading session from %s: %w", path, err)
	}
	return d, nil
}

// Save writes d to path, replacing any previous draft.
func Save(path string, d *Draft) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating session file: %w", err)
	}
	if err := Write(f, d); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing session to %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing session file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing session file: %w", err)
	}
	return nil
}
