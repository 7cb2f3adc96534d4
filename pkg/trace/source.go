package trace

import (
	"sync"
	"sync/atomic"

	"log/slog"

	"github.com/cockroachdb/errors"

	"tracelog/pkg/fault"
	"tracelog/pkg/sink"
)

// Source is the explicit trace-source configuration: a name, a minimum
// severity threshold, and the named sink listeners. Registration and close
// are expected at process start/stop; the hot logging path only reads.
type Source struct {
	name  string
	level atomic.Int32

	mu        sync.Mutex
	listeners map[string]sink.Listener
}

func NewSource(name string, level Severity) *Source {
	s := &Source{
		name:      name,
		listeners: make(map[string]sink.Listener),
	}
	s.level.Store(int32(level))
	return s
}

func (s *Source) Name() string {
	return s.name
}

// SetLevel changes the minimum severity threshold.
func (s *Source) SetLevel(level Severity) {
	s.level.Store(int32(level))
}

func (s *Source) Level() Severity {
	return Severity(s.level.Load())
}

// Enabled reports whether the given severity clears the threshold.
func (s *Source) Enabled(sev Severity) bool {
	return sev >= s.Level()
}

// Register adds a named listener. Names must be unique; registering over an
// existing name is an error so a listener is never silently orphaned.
func (s *Source) Register(name string, l sink.Listener) error {
	if l == nil {
		return errors.New("trace: nil listener")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.listeners[name]; dup {
		return errors.Newf("trace: listener %q already registered", name)
	}
	s.listeners[name] = l
	return nil
}

// CloseListeners closes every registered listener, removes them all, and
// combines any close errors. Safe to call more than once.
func (s *Source) CloseListeners() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var combined error
	for name, l := range s.listeners {
		combined = errors.CombineErrors(combined, errors.Wrapf(l.Close(), "close listener %q", name))
	}
	s.listeners = make(map[string]sink.Listener)
	return combined
}

// emit dispatches to every registered listener. Listener failures are the
// sink's contract, not this core's: they are combined and propagated, never
// swallowed.
func (s *Source) emit(level slog.Level, eventID int, message string, f fault.Fault) error {
	s.mu.Lock()
	snapshot := make([]sink.Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		snapshot = append(snapshot, l)
	}
	s.mu.Unlock()

	var combined error
	for _, l := range snapshot {
		combined = errors.CombineErrors(combined, l.Emit(level, eventID, message, f))
	}
	return combined
}
