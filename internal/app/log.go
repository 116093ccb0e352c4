package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
)

// LogFile is the name of the log file inside the configured log directory.
const LogFile = "casetas.log"

// casetasHandler is a slog.Handler that formats log records as:
//
//	<timestamp>\t<level>\t<runID>\t<message>\t<key=value ...>
//
// Decimal amounts are written with two decimals.
type casetasHandler struct {
	w     io.Writer
	runID string
	attrs []slog.Attr
}

func (h *casetasHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (h *casetasHandler) Handle(_ context.Context, r slog.Record) error {
	ts := r.Time.UTC().Format("2006-01-02T15:04:05Z")

	_, err := fmt.Fprintf(h.w, "%s\t%s\t%s\t%s", ts, r.Level.String(), h.runID, r.Message)
	if err != nil {
		return err
	}

	for _, a := range h.attrs {
		writeAttr(h.w, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(h.w, a)
		return true
	})

	_, err = fmt.Fprintln(h.w)
	return err
}

func writeAttr(w io.Writer, a slog.Attr) {
	v := a.Value.Resolve()
	if v.Kind() == slog.KindAny {
		if d, ok := v.Any().(decimal.Decimal); ok {
			fmt.Fprintf(w, "\t%s=%s", a.Key, d.StringFixed(2))
			return
		}
	}
	fmt.Fprintf(w, "\t%s=%v", a.Key, v)
}

func (h *casetasHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &casetasHandler{
		w:     h.w,
		runID: h.runID,
		attrs: append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

func (h *casetasHandler) WithGroup(string) slog.Handler { return h }

// newLogger creates a structured logger that appends to logDir/casetas.log.
// Command output goes to stdout, so the log is kept out of the terminal.
// It returns the slog.Logger, the open log file (for cleanup), and any error.
func newLogger(logDir string, runID string) (*slog.Logger, *os.File, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}

	logPath := filepath.Join(logDir, LogFile)
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	return slog.New(&casetasHandler{w: f, runID: runID}), f, nil
}

// slogAdapter wraps *slog.Logger to satisfy the caseta.Logger interface.
type slogAdapter struct {
	l *slog.Logger
}

func (a *slogAdapter) Debug(msg string, args ...any) { a.l.Debug(msg, args...) }
func (a *slogAdapter) Info(msg string, args ...any)  { a.l.Info(msg, args...) }
func (a *slogAdapter) Warn(msg string, args ...any)  { a.l.Warn(msg, args...) }
func (a *slogAdapter) Error(msg string, args ...any) { a.l.Error(msg, args...) }
