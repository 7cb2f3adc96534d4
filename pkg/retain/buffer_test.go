package retain

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestBuffer_AppendDisabled(t *testing.T) {
	b := NewBuffer(time.Minute)

	b.Append(time.Now(), "dropped")
	if b.Len() != 0 {
		t.Fatalf("Expected no capture while disabled, got %d records", b.Len())
	}

	b.SetEnabled(true)
	b.Append(time.Now(), "kept")
	if b.Len() != 1 {
		t.Fatalf("Expected 1 record, got %d", b.Len())
	}
}

func TestBuffer_EvictionWindow(t *testing.T) {
	const window = 5 * time.Second
	b := NewBuffer(window)
	b.SetEnabled(true)

	t0 := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

	// Entries at t0, t0+1s, ..., t0+9s. After the append at t0+k, the buffer
	// must hold exactly the entries with timestamp > (t0+k) - window.
	for k := 0; k < 10; k++ {
		now := t0.Add(time.Duration(k) * time.Second)
		b.Append(now, fmt.Sprintf("line%d", k))

		cutoff := now.Add(-window)
		for _, rec := range b.Snapshot() {
			if !rec.Time.After(cutoff) {
				t.Fatalf("After append %d: expired record %q (ts %v, cutoff %v) still present",
					k, rec.Line, rec.Time, cutoff)
			}
		}
	}

	// Window 5s, 1s spacing: entries k=5..9 survive (ts > t0+4s).
	snap := b.Snapshot()
	if len(snap) != 5 {
		t.Fatalf("Expected 5 surviving records, got %d", len(snap))
	}
	if snap[0].Line != "line5" || snap[4].Line != "line9" {
		t.Errorf("Order corrupted: head=%q tail=%q", snap[0].Line, snap[4].Line)
	}
}

func TestBuffer_EvictionExactBoundary(t *testing.T) {
	b := NewBuffer(10 * time.Second)
	b.SetEnabled(true)

	t0 := time.Now()
	b.Append(t0, "old")
	// Head with ts == now - window is expired (<= cutoff).
	b.Append(t0.Add(10*time.Second), "new")

	snap := b.Snapshot()
	if len(snap) != 1 || snap[0].Line != "new" {
		t.Fatalf("Expected only %q to survive boundary eviction, got %v", "new", snap)
	}
}

func TestBuffer_Clear(t *testing.T) {
	b := NewBuffer(time.Minute)
	b.SetEnabled(true)

	now := time.Now()
	for i := 0; i < 50; i++ {
		b.Append(now, "line")
	}

	before := b.Snapshot()
	b.Clear()

	if b.Len() != 0 {
		t.Fatalf("Expected empty buffer after Clear, got %d", b.Len())
	}
	// A snapshot taken before Clear keeps its consistent view.
	if len(before) != 50 {
		t.Errorf("Prior snapshot mutated by Clear: %d records", len(before))
	}
}

func TestBuffer_ConcurrentAppend(t *testing.T) {
	b := NewBuffer(time.Hour)
	b.SetEnabled(true)

	const workers = 8
	const perWorker = 200

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				b.Append(time.Now(), fmt.Sprintf("w%d-%d", w, i))
			}
		}(w)
	}
	wg.Wait()

	if got := b.Len(); got != workers*perWorker {
		t.Fatalf("Lost records under concurrent append: expected %d, got %d",
			workers*perWorker, got)
	}
}

func TestBuffer_WindowFallback(t *testing.T) {
	b := NewBuffer(0)
	if b.Window() != DefaultWindow {
		t.Errorf("Expected DefaultWindow for non-positive window, got %v", b.Window())
	}
}
