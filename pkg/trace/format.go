package trace

import (
	"fmt"
	"strings"
	"time"

	"tracelog/pkg/fault"
)

// Event ids attached to sink emissions, one per message shape.
const (
	EventGeneral = 1000
	EventRetry   = 1001
	EventFault   = 1002
	EventFailure = 1003
)

// FailureReport carries everything a terminal or intermediate failure notice
// embeds into its single rendered line.
type FailureReport struct {
	RequestName   string
	FallbackLabel string
	TrackingID    string
	SessionID     string

	CrossThreadSafetyDisabled bool
	LockWait                  time.Duration
	Elapsed                   time.Duration

	Fault    fault.Fault
	Context  string
	Terminal bool
}

// requestLabel picks the request name, falling back to the caller-supplied
// label when no structured request is available.
func requestLabel(name, fallback string) string {
	if name != "" {
		return name
	}
	if fallback != "" {
		return fallback
	}
	return fault.NotProvided
}

func boolLabel(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// retryMessage selects the retry notice shape and its severity.
func retryMessage(retryCount int, reqLabel string, delay time.Duration, terminal, throttled bool) (string, Severity) {
	if retryCount == 0 {
		return fmt.Sprintf("No retry attempted for %s.", reqLabel), SeverityVerbose
	}
	if terminal {
		return fmt.Sprintf("Retry completed at Retry No=%d for %s.", retryCount, reqLabel), SeverityVerbose
	}
	return fmt.Sprintf("Retry No=%d Starting for %s, IsThrottle=%s, Delay=%s.",
		retryCount, reqLabel, boolLabel(throttled), delay), SeverityWarning
}

// faultMessage extracts the display message from a failure object. Transport
// faults prefer the first line of the parsed JSON body message, degrading to
// the HTTP status text; body parsing never aborts the notice.
func faultMessage(f fault.Fault) string {
	if f == nil {
		return fault.NotProvided
	}
	return f.Error()
}

// requestFaultMessage builds the request-exception notice.
func requestFaultMessage(reqLabel string, f fault.Fault, contextLabel string) string {
	return fmt.Sprintf("**** %s - %s : %s |=> %s",
		fault.TypeName(f), reqLabel, contextLabel, faultMessage(f))
}

// failureMessage builds the single-line failure notice. Optional segments are
// omitted entirely rather than rendered empty.
func failureMessage(r FailureReport) string {
	var b strings.Builder

	if r.Terminal {
		b.WriteString("[TerminalFailure] ")
	}
	if r.SessionID != "" {
		fmt.Fprintf(&b, "SessionID=%s : ", r.SessionID)
	}
	b.WriteString(requestLabel(r.RequestName, r.FallbackLabel))
	if r.CrossThreadSafetyDisabled {
		b.WriteString(" : DisableCrossThreadSafeties=true :")
	}
	fmt.Fprintf(&b, " RequestID=%s", r.TrackingID)
	if r.LockWait != 0 {
		fmt.Fprintf(&b, " LockWaitDuration=%s", r.LockWait)
	}
	fmt.Fprintf(&b, " duration=%s : %s |=> %s", r.Elapsed, faultMessage(r.Fault), r.Context)

	return b.String()
}
