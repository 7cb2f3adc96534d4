package trace

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tracelog/pkg/fault"
)

func TestRetryMessageSelection(t *testing.T) {
	msg, sev := retryMessage(0, "WhoAmI", time.Second, false, false)
	assert.Equal(t, SeverityVerbose, sev)
	assert.Contains(t, msg, "No retry attempted")
	assert.Contains(t, msg, "WhoAmI")

	msg, sev = retryMessage(3, "WhoAmI", time.Second, true, false)
	assert.Equal(t, SeverityVerbose, sev)
	assert.Contains(t, msg, "Retry completed at Retry No=3")

	msg, sev = retryMessage(3, "WhoAmI", 2*time.Second, false, true)
	assert.Equal(t, SeverityWarning, sev)
	assert.Contains(t, msg, "Retry No=3")
	assert.Contains(t, msg, "IsThrottle=True")
	assert.Contains(t, msg, "2s")

	msg, _ = retryMessage(1, "WhoAmI", time.Second, false, false)
	assert.Contains(t, msg, "IsThrottle=False")
}

func TestRequestLabelFallback(t *testing.T) {
	assert.Equal(t, "CreateAccount", requestLabel("CreateAccount", "request"))
	assert.Equal(t, "request", requestLabel("", "request"))
	assert.Equal(t, fault.NotProvided, requestLabel("", ""))
}

func TestRequestFaultMessageShape(t *testing.T) {
	f := &fault.GenericFault{Message: "boom"}
	msg := requestFaultMessage("WhoAmI", f, "initial connect")
	assert.Equal(t, "**** GenericFault - WhoAmI : initial connect |=> boom", msg)
}

func TestRequestFaultMessageTransportBody(t *testing.T) {
	f := &fault.TransportFault{
		StatusCode: http.StatusBadRequest,
		Body:       []byte(`{"error":{"message":"Invalid query\nsecond line"}}`),
	}
	msg := requestFaultMessage("Retrieve", f, "query")
	assert.Contains(t, msg, "|=> Invalid query")
	assert.NotContains(t, msg, "second line")

	// Unparseable body degrades to the HTTP status text without aborting.
	f = &fault.TransportFault{StatusCode: http.StatusBadGateway, Body: []byte("not json")}
	msg = requestFaultMessage("Retrieve", f, "query")
	assert.Contains(t, msg, "|=> Bad Gateway")
}

func TestFailureMessageAllSegments(t *testing.T) {
	msg := failureMessage(FailureReport{
		RequestName:               "CreateAccount",
		TrackingID:                "track-1",
		SessionID:                 "sess-9",
		CrossThreadSafetyDisabled: true,
		LockWait:                  15 * time.Millisecond,
		Elapsed:                   420 * time.Millisecond,
		Fault:                     &fault.GenericFault{Message: "boom"},
		Context:                   "account sync",
		Terminal:                  true,
	})

	assert.Contains(t, msg, "[TerminalFailure]")
	assert.Contains(t, msg, "SessionID=sess-9")
	assert.Contains(t, msg, "CreateAccount")
	assert.Contains(t, msg, "DisableCrossThreadSafeties=true")
	assert.Contains(t, msg, "RequestID=track-1")
	assert.Contains(t, msg, "LockWaitDuration=15ms")
	assert.Contains(t, msg, "duration=420ms")
	assert.Contains(t, msg, "boom")
	assert.Contains(t, msg, "account sync")
}

func TestFailureMessageOptionalSegmentsOmitted(t *testing.T) {
	msg := failureMessage(FailureReport{
		FallbackLabel: "request",
		TrackingID:    "track-2",
		Elapsed:       time.Second,
		Fault:         &fault.GenericFault{Message: "boom"},
		Context:       "ctx",
	})

	assert.NotContains(t, msg, "[TerminalFailure]")
	assert.NotContains(t, msg, "SessionID=")
	assert.NotContains(t, msg, "DisableCrossThreadSafeties")
	assert.NotContains(t, msg, "LockWaitDuration")
	assert.Contains(t, msg, "request")
	assert.Contains(t, msg, "RequestID=track-2")
}

func TestSeverityTranslation(t *testing.T) {
	assert.Equal(t, "DEBUG", SeverityVerbose.Level().String())
	assert.Equal(t, "INFO", SeverityInfo.Level().String())
	assert.Equal(t, "WARN", SeverityWarning.Level().String())
	assert.Equal(t, "ERROR", SeverityError.Level().String())
	assert.Greater(t, int(SeverityCritical.Level()), int(SeverityError.Level()))
}

func TestParseSeverity(t *testing.T) {
	assert.Equal(t, SeverityVerbose, ParseSeverity("verbose"))
	assert.Equal(t, SeverityWarning, ParseSeverity("warn"))
	assert.Equal(t, SeverityCritical, ParseSeverity("critical"))
	assert.Equal(t, SeverityInfo, ParseSeverity("bogus"))
}
