package fault

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxDepth caps chain recursion. The failure objects come from outside and
// are not contractually acyclic; past the cap flattening stops silently.
const maxDepth = 32

const summarySep = " => "

var blockSep = strings.Repeat("=", 80)

// renderContext carries the two accumulating buffers through the recursive
// walk, so nested calls contribute to the same detail dump and summary.
type renderContext struct {
	detail  strings.Builder
	summary strings.Builder
}

// Flatten walks a cause chain depth-first (outermost first) and returns the
// multi-block detail dump and the condensed " => "-joined summary.
// Each block is stamped with the wall-clock UTC time of rendering, not the
// time of the original failure.
func Flatten(f Fault) (detail, summary string) {
	rc := &renderContext{}
	rc.flatten(f, 0)
	return rc.detail.String(), rc.summary.String()
}

func (rc *renderContext) flatten(f Fault, level int) {
	if f == nil || level >= maxDepth {
		return
	}
	switch v := f.(type) {
	case *ServiceFault:
		rc.serviceBlock(v, level)
		rc.summary.WriteString(v.Message)
		if v.Inner != nil {
			rc.summary.WriteString(summarySep)
			rc.flatten(v.Inner, level+1)
		}
	case *TransportFault:
		rc.transportBlocks(v, level)
	case *OperationFault:
		rc.operationBlock(v, level)
		rc.summary.WriteString(v.Message)
		if v.Inner != nil {
			rc.summary.WriteString(summarySep)
			rc.flatten(v.Inner, level+1)
		}
	case *GenericFault:
		rc.genericBlock(v, level)
		rc.summary.WriteString(v.Message)
		if v.Inner != nil {
			rc.summary.WriteString(summarySep)
			rc.flatten(v.Inner, level+1)
		}
	}
}

func (rc *renderContext) serviceBlock(f *ServiceFault, level int) {
	rc.header(level, "ServiceFault Info")
	rc.field("Error", f.Message)
	if !f.Timestamp.IsZero() {
		rc.field("Time", f.Timestamp.UTC().Format(time.RFC3339))
	}
	fmt.Fprintf(&rc.detail, "ErrorCode: %d\n", f.ErrorCode)
	rc.stamp()
	rc.field("HelpLink", f.HelpLink)
	rc.field("Trace", f.TraceText)
	if f.ActivityID != uuid.Nil {
		rc.field("ActivityId", f.ActivityID.String())
	}
	if len(f.Details) > 0 {
		rc.detail.WriteString("Details:\n")
		rc.kvLines(f.Details)
	}
	rc.footer()
}

// transportBlocks renders the outer HTTP fault block and, when the JSON body
// carries an innererror blob, one synthetic inner block at level+1. The wire
// format does not nest further, so no recursion happens past that level.
func (rc *renderContext) transportBlocks(f *TransportFault, level int) {
	parsed := parseBody(f.Body)

	rc.header(level, "Exception")
	rc.field("Source", f.Source)
	rc.field("Method", f.Method)
	rc.stamp()
	rc.field("Message", parsed.Message)
	rc.field("HelpLink", f.HelpLink)
	if f.CorrelationID != "" {
		rc.field("CorrelationId", f.CorrelationID)
	}
	rc.field("Stack Trace", parsed.StackTrace)
	rc.footer()

	if parsed.Message != NotProvided {
		rc.summary.WriteString(parsed.Message)
	} else {
		rc.summary.WriteString(f.StatusText())
	}

	if parsed.HasInner {
		rc.header(level+1, "Exception")
		rc.field("Source", f.Source)
		rc.field("Method", f.Method)
		rc.stamp()
		rc.field("Message", parsed.Inner.Message)
		rc.field("HelpLink", parsed.Inner.HelpLink)
		rc.field("Stack Trace", parsed.Inner.StackTrace)
		rc.footer()

		rc.summary.WriteString(summarySep)
		rc.summary.WriteString(parsed.Inner.Message)
	}
}

func (rc *renderContext) operationBlock(f *OperationFault, level int) {
	rc.header(level, "OperationException Info")
	rc.field("Source", f.Source)
	rc.field("Error", f.Message)
	if f.ResultCode != 0 {
		fmt.Fprintf(&rc.detail, "ErrorCode: %d\n", f.ResultCode)
	} else {
		rc.field("ErrorCode", "")
	}
	rc.stamp()
	rc.field("HelpLink", f.HelpLink)
	if len(f.Data) > 0 {
		rc.detail.WriteString("Data:\n")
		rc.kvLines(f.Data)
	}
	rc.footer()
}

func (rc *renderContext) genericBlock(f *GenericFault, level int) {
	rc.header(level, "Exception")
	rc.field("Source", f.Source)
	rc.field("Method", f.Method)
	rc.stamp()
	rc.field("Error", f.Message)
	rc.field("HelpLink", f.HelpLink)
	rc.field("Stack Trace", f.StackTrace)
	rc.footer()
}

func (rc *renderContext) header(level int, title string) {
	rc.detail.WriteString(blockSep)
	rc.detail.WriteByte('\n')
	if level > 0 {
		fmt.Fprintf(&rc.detail, "Inner Exception Level %d: ", level)
	}
	rc.detail.WriteString(title)
	rc.detail.WriteByte('\n')
}

func (rc *renderContext) footer() {
	rc.detail.WriteString(blockSep)
	rc.detail.WriteByte('\n')
}

// field writes a single "Name: value" line, degrading empty values to the
// NotProvided literal.
func (rc *renderContext) field(name, value string) {
	if value == "" {
		value = NotProvided
	}
	rc.detail.WriteString(name)
	rc.detail.WriteString(": ")
	rc.detail.WriteString(value)
	rc.detail.WriteByte('\n')
}

// stamp writes the current UTC wall clock. Deliberately "when this was
// logged", not when the failure happened; the original failure's own Time and
// Trace fields are rendered inline where present.
func (rc *renderContext) stamp() {
	now := time.Now().UTC()
	fmt.Fprintf(&rc.detail, "Date(UTC): %s Time(UTC): %s\n",
		now.Format("2006-01-02"), now.Format("15:04:05"))
}

// kvLines writes indented key/value lines in sorted key order so output is
// stable across runs.
func (rc *renderContext) kvLines(kv map[string]string) {
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&rc.detail, "  %s: %s\n", k, kv[k])
	}
}
