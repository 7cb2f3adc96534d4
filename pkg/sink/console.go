package sink

import (
	"fmt"
	"io"
	"os"
	"sync"

	"log/slog"

	"tracelog/pkg/fault"
)

// Console writes formatted lines to a writer, stdout by default.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsole() *Console {
	return &Console{w: os.Stdout}
}

// NewConsoleWriter writes to the given writer instead of stdout.
func NewConsoleWriter(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Emit(level slog.Level, eventID int, message string, f fault.Fault) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintf(c.w, "[%s] (%d) %s\n", level, eventID, message)
	return err
}

func (c *Console) Close() error { return nil }
