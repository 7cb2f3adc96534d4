// Package retain holds recent log lines in a bounded, time-windowed in-memory
// buffer so callers can inspect them post-hoc without external log
// infrastructure.
package retain

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultWindow is the retention window used when none is configured.
const DefaultWindow = 5 * time.Minute

// Buffer is a timestamp-ordered sequence of Records. Appends are wall-clock
// timestamped at call time, so insertion order equals timestamp order and
// eviction is a prefix trim from the head. The buffer is internally
// synchronized and safe for unbounded concurrent callers; there is no
// background sweep — expired heads are trimmed inline on every append,
// amortized O(1) under steady load.
type Buffer struct {
	mu   sync.Mutex
	recs []Record

	window  atomic.Int64 // retention window in nanoseconds
	enabled atomic.Bool
}

// NewBuffer creates a buffer with the given retention window, initially
// disabled. A non-positive window falls back to DefaultWindow.
func NewBuffer(window time.Duration) *Buffer {
	b := &Buffer{}
	b.SetWindow(window)
	return b
}

// SetWindow changes the retention window. Takes effect on the next append.
func (b *Buffer) SetWindow(window time.Duration) {
	if window <= 0 {
		window = DefaultWindow
	}
	b.window.Store(int64(window))
}

// Window returns the current retention window.
func (b *Buffer) Window() time.Duration {
	return time.Duration(b.window.Load())
}

// SetEnabled toggles capture. While disabled, Append is a no-op.
func (b *Buffer) SetEnabled(on bool) {
	b.enabled.Store(on)
}

// Enabled reports whether capture is on.
func (b *Buffer) Enabled() bool {
	return b.enabled.Load()
}

// Append pushes a record to the tail and evicts every expired head. No-op
// when capture is disabled.
func (b *Buffer) Append(now time.Time, line string) {
	if !b.enabled.Load() {
		return
	}
	window := time.Duration(b.window.Load())

	b.mu.Lock()
	b.recs = append(b.recs, Record{Time: now, Line: line})
	b.evictLocked(now, window)
	b.mu.Unlock()
}

// evictLocked trims the expired prefix: heads with Time <= now - window. The
// sequence is timestamp-ordered, so the first fresh head ends the scan.
func (b *Buffer) evictLocked(now time.Time, window time.Duration) {
	cutoff := now.Add(-window)
	i := 0
	for i < len(b.recs) && !b.recs[i].Time.After(cutoff) {
		i++
	}
	if i > 0 {
		// Reslice into a fresh backing array so evicted records are freed
		// and prior snapshots stay untouched.
		kept := make([]Record, len(b.recs)-i)
		copy(kept, b.recs[i:])
		b.recs = kept
	}
}

// Snapshot returns a copy of the current contents, oldest first. The copy is
// consistent even if the buffer is cleared or appended to afterwards.
func (b *Buffer) Snapshot() []Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Record, len(b.recs))
	copy(out, b.recs)
	return out
}

// Len returns the number of retained records.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.recs)
}

// Clear replaces the contents with an empty buffer. Snapshots taken earlier
// keep observing the state they copied.
func (b *Buffer) Clear() {
	b.mu.Lock()
	b.recs = nil
	b.mu.Unlock()
}
