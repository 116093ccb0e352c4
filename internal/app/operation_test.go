package app

import "testing"

func TestNewOperation(t *testing.T) {
	tests := []struct {
		name      string
		operation string
	}{
		{name: "mutating command", operation: "AddTicket"},
		{name: "read-only command", operation: "ListRecords"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := NewOperation(tt.operation)

			if op.Name != tt.operation {
				t.Errorf("Name = %q, want %q", op.Name, tt.operation)
			}
			if op.Status != "success" {
				t.Errorf("Status = %q, want %q", op.Status, "success")
			}
			if op.SessionChanged {
				t.Error("SessionChanged = true, want false")
			}
		})
	}
}

func TestOperation_MarkSessionChanged(t *testing.T) {
	op := NewOperation("RemoveTicket")
	op.MarkSessionChanged()
	op.MarkSessionChanged()

	if !op.SessionChanged {
		t.Error("SessionChanged = false, want true")
	}
}

func TestOperation_Fail(t *testing.T) {
	op := NewOperation("SaveRecord")
	op.Fail()

	if op.Status != "error" {
		t.Errorf("Status = %q, want %q", op.Status, "error")
	}
}
