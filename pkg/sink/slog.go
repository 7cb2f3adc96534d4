package sink

import (
	"context"

	"log/slog"

	"tracelog/pkg/fault"
)

// Slog adapts a slog.Logger to the optional structured-logger capability
// consumed by the logging core: level gating plus structured emission with
// the original failure object attached.
type Slog struct {
	l *slog.Logger
}

func NewSlog(l *slog.Logger) *Slog {
	if l == nil {
		l = slog.Default()
	}
	return &Slog{l: l}
}

func (s *Slog) Enabled(level slog.Level) bool {
	return s.l.Enabled(context.Background(), level)
}

func (s *Slog) Log(level slog.Level, eventID int, f fault.Fault, message string) {
	attrs := []any{slog.Int("event_id", eventID)}
	if f != nil {
		attrs = append(attrs,
			slog.String("fault_kind", fault.TypeName(f)),
			slog.String("fault", f.Error()),
		)
	}
	s.l.Log(context.Background(), level, message, attrs...)
}
