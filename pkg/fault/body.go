package fault

import (
	"strings"

	"github.com/tidwall/gjson"
)

// bodyError is the parsed view of a transport fault's JSON body. Every field
// is pre-degraded to NotProvided so renderers never need to re-check.
type bodyError struct {
	Message    string
	StackTrace string
	HelpLink   string
	HasInner   bool
	Inner      struct {
		Message    string
		StackTrace string
		HelpLink   string
	}
}

// parseBody extracts error.message / error.stacktrace and the optional
// one-level error.innererror blob from a transport fault body. A malformed or
// absent body degrades every field to NotProvided; parsing never fails.
func parseBody(body []byte) bodyError {
	var out bodyError
	out.Message = NotProvided
	out.StackTrace = NotProvided
	out.HelpLink = NotProvided
	out.Inner.Message = NotProvided
	out.Inner.StackTrace = NotProvided
	out.Inner.HelpLink = NotProvided

	if len(body) == 0 || !gjson.ValidBytes(body) {
		return out
	}

	if msg := gjson.GetBytes(body, "error.message"); msg.Exists() && msg.String() != "" {
		out.Message = firstLine(msg.String())
	}
	if st := gjson.GetBytes(body, "error.stacktrace"); st.Exists() && st.String() != "" {
		out.StackTrace = st.String()
	}
	if hl := gjson.GetBytes(body, "error.helplink"); hl.Exists() && hl.String() != "" {
		out.HelpLink = hl.String()
	}

	// The wire format nests exactly once: innererror is a flat blob.
	inner := gjson.GetBytes(body, "error.innererror")
	if inner.Exists() && inner.IsObject() {
		out.HasInner = true
		if msg := inner.Get("message"); msg.Exists() && msg.String() != "" {
			out.Inner.Message = firstLine(msg.String())
		}
		if st := inner.Get("stacktrace"); st.Exists() && st.String() != "" {
			out.Inner.StackTrace = st.String()
		}
		if hl := inner.Get("helplink"); hl.Exists() && hl.String() != "" {
			out.Inner.HelpLink = hl.String()
		}
	}
	return out
}

// firstLine truncates a multi-line message to its first line. The wire format
// uses "\n" separators; a trailing "\r" from CRLF input is trimmed too.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimRight(s, "\r")
}
