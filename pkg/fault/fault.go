// Package fault defines the closed set of failure shapes produced by the
// remote-call path, and the flattener that renders a cause chain into a
// multi-block detail dump plus a condensed one-line summary.
package fault

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// NotProvided is the literal rendered for any absent or empty field.
const NotProvided = "Not Provided"

// Kind tags the concrete variant of a Fault.
type Kind uint8

const (
	KindService Kind = iota
	KindTransport
	KindOperation
	KindGeneric
)

func (k Kind) String() string {
	switch k {
	case KindService:
		return "ServiceFault"
	case KindTransport:
		return "TransportFault"
	case KindOperation:
		return "OperationFault"
	case KindGeneric:
		return "GenericFault"
	default:
		return "UnknownFault"
	}
}

// Fault is the common contract of the four failure variants. Each variant may
// reference a cause of any variant, forming a singly-linked chain. The chain
// is read-only from this package's point of view.
type Fault interface {
	error
	Kind() Kind
	// Cause returns the next failure in the chain, or nil at the end.
	Cause() Fault
}

// ServiceFault is a structured fault returned by the remote service itself.
// Nesting is homogeneous: an inner fault is always another ServiceFault.
type ServiceFault struct {
	Message    string
	ErrorCode  int
	TraceText  string
	ActivityID uuid.UUID
	Details    map[string]string
	Timestamp  time.Time // time reported by the service, zero if absent
	HelpLink   string
	Inner      *ServiceFault
}

func (f *ServiceFault) Error() string { return f.Message }
func (f *ServiceFault) Kind() Kind    { return KindService }

func (f *ServiceFault) Cause() Fault {
	if f.Inner == nil {
		return nil
	}
	return f.Inner
}

// TransportFault is an HTTP-level fault. The JSON body, when parseable,
// carries error.message / error.stacktrace and at most one error.innererror
// level. The inner error is a plain blob, not a recursive TransportFault, so
// Cause always returns nil; the flattener synthesizes the single inner block
// from the body instead.
type TransportFault struct {
	StatusCode    int
	Status        string // status text, derived from StatusCode when empty
	Body          []byte
	CorrelationID string
	Source        string
	Method        string
	HelpLink      string
}

func (f *TransportFault) Error() string {
	if msg := parseBody(f.Body).Message; msg != NotProvided {
		return msg
	}
	return f.StatusText()
}

func (f *TransportFault) Kind() Kind   { return KindTransport }
func (f *TransportFault) Cause() Fault { return nil }

// StatusText returns the explicit status text, falling back to the standard
// text for the status code.
func (f *TransportFault) StatusText() string {
	if f.Status != "" {
		return f.Status
	}
	if txt := http.StatusText(f.StatusCode); txt != "" {
		return txt
	}
	return NotProvided
}

// OperationFault wraps a failed client operation: a message, a numeric result
// code, and a free-form data dictionary. Its cause may be any variant.
type OperationFault struct {
	Message    string
	Source     string
	ResultCode int // 0 means unset
	Data       map[string]string
	HelpLink   string
	Inner      Fault
}

func (f *OperationFault) Error() string { return f.Message }
func (f *OperationFault) Kind() Kind    { return KindOperation }
func (f *OperationFault) Cause() Fault  { return f.Inner }

// GenericFault is the catch-all runtime failure shape. Its cause may be any
// variant.
type GenericFault struct {
	Message    string
	Source     string
	Method     string
	HelpLink   string
	StackTrace string
	Inner      Fault
}

func (f *GenericFault) Error() string { return f.Message }
func (f *GenericFault) Kind() Kind    { return KindGeneric }
func (f *GenericFault) Cause() Fault  { return f.Inner }

// FromMessage synthesizes a GenericFault from bare message text, used when an
// error-severity log call supplies no failure object.
func FromMessage(msg string) *GenericFault {
	return &GenericFault{Message: msg}
}

// TypeName returns the variant name used in formatted notices.
func TypeName(f Fault) string {
	if f == nil {
		return "UnknownFault"
	}
	return f.Kind().String()
}
