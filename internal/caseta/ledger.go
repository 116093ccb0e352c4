package caseta

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Ledger is the ordered, unsaved set of tickets of the current session.
// Ticket ids are dense: the ticket at index i always has ID i+1.
type Ledger struct {
	tickets []Ticket
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Add appends a ticket with the next id and returns it.
func (l *Ledger) Add(name string, total decimal.Decimal) (Ticket, error) {
	if err := validateTicket(name, total); err != nil {
		return Ticket{}, err
	}
	t := NewTicket(len(l.tickets)+1, strings.TrimSpace(name), total)
	l.tickets = append(l.tickets, t)
	return t, nil
}

// Remove deletes the ticket with the given id and renumbers every ticket
// after it, so ids stay 1..Count() in their original relative order.
// The renumber pass is O(n) and runs once per removal.
func (l *Ledger) Remove(id int) error {
	idx, err := l.index(id)
	if err != nil {
		return err
	}
	l.tickets = append(l.tickets[:idx], l.tickets[idx+1:]...)
	l.renumber(idx)
	return nil
}

// Edit replaces the name and total of a ticket, recomputing its tax
// breakdown. The id and position are unchanged.
func (l *Ledger) Edit(id int, name string, total decimal.Decimal) (Ticket, error) {
	idx, err := l.index(id)
	if err != nil {
		return Ticket{}, err
	}
	if err := validateTicket(name, total); err != nil {
		return Ticket{}, err
	}
	l.tickets[idx] = NewTicket(id, strings.TrimSpace(name), total)
	return l.tickets[idx], nil
}

// Get returns the ticket with the given id.
func (l *Ledger) Get(id int) (Ticket, error) {
	idx, err := l.index(id)
	if err != nil {
		return Ticket{}, err
	}
	return l.tickets[idx], nil
}

// Summary returns the total row over the current tickets. It is zero for an
// empty ledger.
func (l *Ledger) Summary() Summary {
	return Summarize(l.tickets)
}

// Clear empties the ledger; the next Add starts again at id 1.
func (l *Ledger) Clear() {
	l.tickets = nil
}

// ReplaceAll overwrites the ledger with tickets as given, typically the
// detail rows of a fetched record. Ids are taken verbatim.
func (l *Ledger) ReplaceAll(tickets []Ticket) {
	l.tickets = make([]Ticket, len(tickets))
	copy(l.tickets, tickets)
}

// Count returns the number of tickets.
func (l *Ledger) Count() int {
	return len(l.tickets)
}

// Snapshot returns a copy of the tickets in id order.
func (l *Ledger) Snapshot() []Ticket {
	out := make([]Ticket, len(l.tickets))
	copy(out, l.tickets)
	return out
}

// Table returns the tickets together with their summary row.
func (l *Ledger) Table() Table {
	return NewTable(l.tickets)
}

func (l *Ledger) index(id int) (int, error) {
	if id >= 1 && id <= len(l.tickets) && l.tickets[id-1].ID == id {
		return id - 1, nil
	}
	// ReplaceAll trusts stored ids, so fall back to a scan.
	for i, t := range l.tickets {
		if t.ID == id {
			return i, nil
		}
	}
	return 0, fmt.Errorf("ticket %d: %w", id, ErrNotFound)
}

// renumber reassigns ids from position from onwards.
func (l *Ledger) renumber(from int) {
	for i := from; i < len(l.tickets); i++ {
		l.tickets[i].ID = i + 1
	}
}

func validateTicket(name string, total decimal.Decimal) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if total.IsNegative() {
		return &ValidationError{Field: "total", Reason: "must not be negative"}
	}
	return nil
}
