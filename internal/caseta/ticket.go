package caseta

import "github.com/shopspring/decimal"

// SummaryLabel replaces the ticket name on the synthetic total row.
const SummaryLabel = "TOTAL"

// Ticket is one toll expense in a ledger. ID is always the ticket's 1-based
// position; SubTotal and Tax are derived from Total.
type Ticket struct {
	ID       int             `db:"id" toml:"id"`
	Name     string          `db:"name" toml:"name"`
	Total    decimal.Decimal `db:"total" toml:"total"`
	SubTotal decimal.Decimal `db:"sub_total" toml:"sub_total"`
	Tax      decimal.Decimal `db:"tax" toml:"tax"`
}

// NewTicket builds a ticket at the given position, rounding the total to
// cents and deriving its tax breakdown.
func NewTicket(id int, name string, total decimal.Decimal) Ticket {
	total = total.Round(2)
	sub, tax := Decompose(total)
	return Ticket{
		ID:       id,
		Name:     name,
		Total:    total,
		SubTotal: sub,
		Tax:      tax,
	}
}

// Summary is the aggregate row over a set of tickets. It is never stored
// and has no id.
type Summary struct {
	Name     string
	Total    decimal.Decimal
	SubTotal decimal.Decimal
	Tax      decimal.Decimal
}

// Summarize adds up the amounts of tickets, rounding each column to cents.
func Summarize(tickets []Ticket) Summary {
	total, sub, tax := decimal.Zero, decimal.Zero, decimal.Zero
	for _, t := range tickets {
		total = total.Add(t.Total)
		sub = sub.Add(t.SubTotal)
		tax = tax.Add(t.Tax)
	}
	return Summary{
		Name:     SummaryLabel,
		Total:    total.Round(2),
		SubTotal: sub.Round(2),
		Tax:      tax.Round(2),
	}
}

// Table is a finalized tabular snapshot: ticket rows followed by their summary.
// It is what exporters consume.
type Table struct {
	Rows    []Ticket
	Summary Summary
}

// NewTable copies tickets into a Table and computes its summary.
func NewTable(tickets []Ticket) Table {
	rows := make([]Ticket, len(tickets))
	copy(rows, tickets)
	return Table{Rows: rows, Summary: Summarize(rows)}
}
