package sink

import (
	"sync"

	"log/slog"

	"github.com/cockroachdb/errors"

	"tracelog/pkg/fault"
)

// FanOut emits to multiple listeners in parallel.
type FanOut struct {
	listeners []Listener
}

func NewFanOut(listeners ...Listener) *FanOut {
	return &FanOut{
		listeners: listeners,
	}
}

func (fo *FanOut) Emit(level slog.Level, eventID int, message string, f fault.Fault) error {
	var wg sync.WaitGroup
	errs := make([]error, len(fo.listeners))

	for i, l := range fo.listeners {
		wg.Add(1)
		go func(idx int, l Listener) {
			defer wg.Done()
			errs[idx] = l.Emit(level, eventID, message, f)
		}(i, l)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Close closes every listener and combines their errors.
func (fo *FanOut) Close() error {
	var combined error
	for _, l := range fo.listeners {
		combined = errors.CombineErrors(combined, l.Close())
	}
	return combined
}
