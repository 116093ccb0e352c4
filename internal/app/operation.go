package app

// Operation tracks the CLI command being run. SessionChanged is set by
// commands that modify the working ledger so Close knows to write the
// session draft back.
type Operation struct {
	Name           string
	Status         string // "success" or "error"
	SessionChanged bool
}

// NewOperation creates a new operation that has not touched the session.
func NewOperation(name string) *Operation {
	return &Operation{
		Name:   name,
		Status: "success",
	}
}

// MarkSessionChanged records that the working ledger was modified.
func (op *Operation) MarkSessionChanged() {
	op.SessionChanged = true
}

// Fail marks the operation as failed.
func (op *Operation) Fail() {
	op.Status = "error"
}
