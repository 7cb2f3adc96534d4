// Package sink provides trace listener implementations: destinations that
// receive formatted diagnostic output from the logging core.
package sink

import (
	"log/slog"

	"tracelog/pkg/fault"
)

// Listener receives a formatted message (and the original failure object, if
// any) at a mapped level. Implementations must be callable from any thread.
// Emit errors are not masked by the core; they propagate to the log caller.
type Listener interface {
	Emit(level slog.Level, eventID int, message string, f fault.Fault) error
	Close() error
}
