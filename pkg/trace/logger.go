package trace

import (
	"time"

	"log/slog"

	"tracelog/pkg/fault"
	"tracelog/pkg/retain"
)

// StructuredLogger is the optional structured-logging capability. When set,
// every emission is mirrored to it after the sink listeners.
type StructuredLogger interface {
	Enabled(level slog.Level) bool
	Log(level slog.Level, eventID int, f fault.Fault, message string)
}

// Logger is the diagnostic logging core. It formats events, flattens failure
// chains, routes to the source's listeners at the translated level, tracks
// the accumulated last-error state, and captures lines into the retention
// buffer when enabled.
//
// The last-error state is two fields updated without synchronization:
// concurrent error logging from multiple goroutines can interleave the
// accumulated text and momentarily pair text from one failure with the fault
// of another. That race is part of the original contract, kept deliberately;
// it is documented behavior, not a defect.
type Logger struct {
	source     *Source
	structured StructuredLogger
	cache      *retain.Buffer

	lastErrorText string
	lastFault     fault.Fault
}

// NewLogger creates a logger bound to a source. Retention starts disabled
// with the default window.
func NewLogger(source *Source) *Logger {
	return &Logger{
		source: source,
		cache:  retain.NewBuffer(retain.DefaultWindow),
	}
}

// SetStructured attaches the optional structured logger. Expected before
// logging traffic begins.
func (l *Logger) SetStructured(sl StructuredLogger) {
	l.structured = sl
}

// EnableRetention toggles in-memory capture of rendered lines.
func (l *Logger) EnableRetention(on bool) {
	l.cache.SetEnabled(on)
}

// RetentionEnabled reports whether capture is on.
func (l *Logger) RetentionEnabled() bool {
	return l.cache.Enabled()
}

// SetRetentionWindow changes the maximum age of retained lines.
func (l *Logger) SetRetentionWindow(window time.Duration) {
	l.cache.SetWindow(window)
}

// RetentionWindow returns the current window.
func (l *Logger) RetentionWindow() time.Duration {
	return l.cache.Window()
}

// Log records a plain message at info severity.
func (l *Logger) Log(message string) error {
	return l.LogAt(SeverityInfo, message)
}

// LogAt records a plain message at the given severity. Error and above with
// no explicit failure object synthesizes one from the message text so the
// flattener has something to render.
func (l *Logger) LogAt(sev Severity, message string) error {
	if sev >= SeverityError {
		return l.logError(sev, EventGeneral, message, fault.FromMessage(message))
	}
	return l.logPlain(sev, EventGeneral, message)
}

// LogFaultAt records a message with an associated failure object.
func (l *Logger) LogFaultAt(sev Severity, message string, f fault.Fault) error {
	if sev < SeverityError {
		return l.logPlain(sev, EventGeneral, message)
	}
	if f == nil {
		f = fault.FromMessage(message)
	}
	return l.logError(sev, EventGeneral, message, f)
}

// LogFault records a failure object at error severity, using its own message.
func (l *Logger) LogFault(f fault.Fault) error {
	if f == nil {
		return nil
	}
	return l.logError(SeverityError, EventGeneral, f.Error(), f)
}

// LogRetry records a retry notice. Severity is verbose for the no-retry and
// retry-completed cases, warning for an in-flight retry.
func (l *Logger) LogRetry(retryCount int, requestName string, delay time.Duration, terminal, throttled bool, fallbackLabel string) error {
	msg, sev := retryMessage(retryCount, requestLabel(requestName, fallbackLabel), delay, terminal, throttled)
	return l.logPlain(sev, EventRetry, msg)
}

// LogRequestFault records a request-exception notice at error severity.
func (l *Logger) LogRequestFault(requestName string, f fault.Fault, contextLabel, fallbackLabel string) error {
	msg := requestFaultMessage(requestLabel(requestName, fallbackLabel), f, contextLabel)
	if f == nil {
		f = fault.FromMessage(msg)
	}
	return l.logError(SeverityError, EventFault, msg, f)
}

// LogFailure records a terminal or intermediate failure notice at error
// severity.
func (l *Logger) LogFailure(r FailureReport) error {
	msg := failureMessage(r)
	f := r.Fault
	if f == nil {
		f = fault.FromMessage(msg)
	}
	return l.logError(SeverityError, EventFailure, msg, f)
}

// LastError returns the accumulated condensed summaries of every error
// logged since the last reset.
func (l *Logger) LastError() string {
	return l.lastErrorText
}

// LastFault returns the failure object from the most recent error emission.
func (l *Logger) LastFault() fault.Fault {
	return l.lastFault
}

// ResetLastError clears the accumulated last-error state. Idempotent.
func (l *Logger) ResetLastError() {
	l.lastErrorText = ""
	l.lastFault = nil
}

// CachedRecords returns a consistent snapshot of the retention buffer,
// oldest first.
func (l *Logger) CachedRecords() []retain.Record {
	return l.cache.Snapshot()
}

// ClearCache discards every retained line.
func (l *Logger) ClearCache() {
	l.cache.Clear()
}

// logPlain is the non-error path: no flattening, no last-error update.
func (l *Logger) logPlain(sev Severity, eventID int, message string) error {
	if !l.source.Enabled(sev) {
		return nil
	}
	level := sev.Level()
	err := l.source.emit(level, eventID, message, nil)
	if l.structured != nil && l.structured.Enabled(level) {
		l.structured.Log(level, eventID, nil, message)
	}
	l.capture(sev, message)
	return err
}

// logError is the error path: flatten the chain, dispatch the detail dump
// with the original fault, then fold the condensed summary into the
// last-error state.
func (l *Logger) logError(sev Severity, eventID int, message string, f fault.Fault) error {
	if !l.source.Enabled(sev) {
		return nil
	}
	detail, summary := fault.Flatten(f)
	level := sev.Level()

	err := l.source.emit(level, eventID, message+"\n"+detail, f)
	if l.structured != nil && l.structured.Enabled(level) {
		l.structured.Log(level, eventID, f, message)
	}

	if l.lastErrorText == "" {
		l.lastErrorText = summary
	} else {
		l.lastErrorText += "\n" + summary
	}
	l.lastFault = f

	l.capture(sev, message)
	return err
}

func (l *Logger) capture(sev Severity, message string) {
	l.cache.Append(time.Now(), "["+sev.String()+"] "+message)
}
