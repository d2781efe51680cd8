// Package diag collects the lexical and syntax errors reported while scanning
// and parsing, so that a whole source unit can be checked in one pass.
package diag

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"go.creack.net/benglang/lexer"
)

// Diagnostic is a single reported error.
type Diagnostic struct {
	Line    int
	Where   string // "", " at end" or " at 'lexeme'".
	Message string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", d.Line, d.Where, d.Message)
}

// Handler records diagnostics. It satisfies both lexer.ErrorReporter and
// parser.Reporter and is safe to share between goroutines.
type Handler struct {
	mu          sync.Mutex
	diagnostics []Diagnostic

	logger *slog.Logger
}

// NewHandler returns an empty Handler. A nil logger disables logging.
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// Error records an error attached to a line.
func (h *Handler) Error(line int, message string) {
	h.add(Diagnostic{Line: line, Message: message})
}

// ErrorAt records an error attached to a token.
func (h *Handler) ErrorAt(tok lexer.Token, message string) {
	where := " at end"
	if tok.Type != lexer.TokEOF {
		where = fmt.Sprintf(" at '%s'", tok.Value)
	}
	h.add(Diagnostic{Line: tok.Line, Where: where, Message: message})
}

func (h *Handler) add(d Diagnostic) {
	h.mu.Lock()
	h.diagnostics = append(h.diagnostics, d)
	h.mu.Unlock()

	if h.logger != nil {
		h.logger.LogAttrs(context.Background(), slog.LevelDebug, "diagnostic",
			slog.Int("line", d.Line),
			slog.String("where", d.Where),
			slog.String("message", d.Message),
		)
	}
}

// Count returns the number of recorded diagnostics.
func (h *Handler) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.diagnostics)
}

// HadError reports whether anything was recorded.
func (h *Handler) HadError() bool {
	return h.Count() > 0
}

// Diagnostics returns a copy of the recorded diagnostics in report order.
func (h *Handler) Diagnostics() []Diagnostic {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Diagnostic(nil), h.diagnostics...)
}

// Err joins all diagnostics into one error, nil if there are none.
func (h *Handler) Err() error {
	diagnostics := h.Diagnostics()
	errs := make([]error, 0, len(diagnostics))
	for _, d := range diagnostics {
		errs = append(errs, d)
	}
	return errors.Join(errs...)
}

// WriteTo writes one diagnostic per line.
func (h *Handler) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, d := range h.Diagnostics() {
		n, err := fmt.Fprintln(w, d.Error())
		total += int64(n)
		if err != nil {
			return total, fmt.Errorf("write diagnostic: %w", err)
		}
	}
	return total, nil
}
