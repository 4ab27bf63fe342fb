package phrase

import (
	"io"
	"strings"
	"sync"
)

// LineWriter implements ports.Emitter over an io.Writer. Each batch is written
// with a single Write call under a mutex so lines from different workers never
// interleave.
type LineWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewLineWriter wraps w.
func NewLineWriter(w io.Writer) *LineWriter {
	return &LineWriter{w: w}
}

// Emit writes every line followed by a newline.
func (lw *LineWriter) Emit(lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}

	lw.mu.Lock()
	defer lw.mu.Unlock()
	_, err := io.WriteString(lw.w, b.String())
	return err
}
