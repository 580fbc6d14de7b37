// Package utils holds small helpers shared by the CLI entrypoint.
package utils

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// DeferredWriter buffers writes until Flush is called. It holds log output
// while the TUI owns the terminal.
type DeferredWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// Write appends p to the buffer.
func (w *DeferredWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

// Len returns the number of buffered bytes.
func (w *DeferredWriter) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Len()
}

// Flush writes the buffered output to out one line at a time and resets the
// buffer. Line writes keep zerolog.ConsoleWriter parsing one event per call.
func (w *DeferredWriter) Flush(out io.Writer) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for w.buf.Len() > 0 {
		line, err := w.buf.ReadBytes('\n')
		if len(line) > 0 {
			if _, werr := out.Write(line); werr != nil {
				w.buf.Reset()
				return fmt.Errorf("flush deferred output: %w", werr)
			}
		}
		if err != nil {
			break
		}
	}

	w.buf.Reset()
	return nil
}
