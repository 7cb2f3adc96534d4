package retain

import "time"

// Record is one captured log line. Immutable once created; owned exclusively
// by the Buffer and discarded only by eviction or Clear.
type Record struct {
	// Time is the wall-clock timestamp assigned at the log call.
	Time time.Time

	// Line is the fully rendered log line.
	Line string
}
