package sink

import (
	"strings"

	"log/slog"

	"tracelog/pkg/fault"
)

// Redacting masks occurrences of a target substring before delegating to the
// wrapped listener. Diagnostic dumps carry raw service responses, which may
// embed credentials or tenant identifiers the sink must never see.
type Redacting struct {
	next   Listener
	target string
	mask   string
}

func NewRedacting(next Listener, target, mask string) *Redacting {
	return &Redacting{
		next:   next,
		target: target,
		mask:   mask,
	}
}

func (r *Redacting) Emit(level slog.Level, eventID int, message string, f fault.Fault) error {
	if r.target != "" && strings.Contains(message, r.target) {
		message = strings.ReplaceAll(message, r.target, r.mask)
	}
	return r.next.Emit(level, eventID, message, f)
}

func (r *Redacting) Close() error {
	return r.next.Close()
}
