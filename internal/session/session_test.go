package session

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"casetas-go/internal/caseta"
)

func sampleDraft() *Draft {
	return &Draft{
		Record: "Enero",
		Tickets: []caseta.Ticket{
			caseta.NewTicket(1, "Peaje A", decimal.RequireFromString("100")),
			caseta.NewTicket(2, "Peaje B", decimal.RequireFromString("50.25")),
		},
	}
}

func TestReadWrite_RoundTrip(t *testing.T) {
	want := sampleDraft()

	var buf bytes.Buffer
	if err := Write(&buf, want); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.Record != want.Record {
		t.Errorf("Record = %q, want %q", got.Record, want.Record)
	}
	if len(got.Tickets) != len(want.Tickets) {
		t.Fatalf("len(Tickets) = %d, want %d", len(got.Tickets), len(want.Tickets))
	}
	for i := range want.Tickets {
		g, w := got.Tickets[i], want.Tickets[i]
		if g.ID != w.ID || g.Name != w.Name || !g.Total.Equal(w.Total) ||
			!g.SubTotal.Equal(w.SubTotal) || !g.Tax.Equal(w.Tax) {
			t.Errorf("Tickets[%d] = %+v, want %+v", i, g, w)
		}
	}
}

func TestRead_RederivesAmounts(t *testing.T) {
	const doc = `
[[tickets]]
id = 7
name = "Peaje A"
total = "116"
sub_total = "1"
tax = "1"
`
	d, err := Read(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(d.Tickets) != 1 {
		t.Fatalf("len(Tickets) = %d, want 1", len(d.Tickets))
	}

	tk := d.Tickets[0]
	if tk.ID != 1 {
		t.Errorf("ID = %d, want 1", tk.ID)
	}
	if tk.SubTotal.StringFixed(2) != "100.00" || tk.Tax.StringFixed(2) != "16.00" {
		t.Errorf("breakdown = %s / %s, want 100.00 / 16.00", tk.SubTotal, tk.Tax)
	}
}

func TestRead_Invalid(t *testing.T) {
	if _, err := Read(strings.NewReader("tickets = 3 = 4")); err == nil {
		t.Fatal("Read() expected error for malformed document")
	}
}

func TestLoad(t *testing.T) {
	t.Run("missing file is an empty draft", func(t *testing.T) {
		d, err := Load(filepath.Join(t.TempDir(), "session.toml"))
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if d.Record != "" || len(d.Tickets) != 0 {
			t.Errorf("Load() = %+v, want empty draft", d)
		}
	})

	t.Run("reads saved draft", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "session.toml")
		if err := Save(path, sampleDraft()); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		d, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if d.Record != "Enero" || len(d.Tickets) != 2 {
			t.Errorf("Load() = %+v", d)
		}
	})
}

func TestSave_ReplacesPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	if err := Save(path, sampleDraft()); err != nil {
		t.Fatalf("first Save() error = %v", err)
	}
	if err := Save(path, &Draft{}); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if d.Record != "" || len(d.Tickets) != 0 {
		t.Errorf("Load() = %+v, want empty draft", d)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temporary file left behind: %v", err)
	}
}
