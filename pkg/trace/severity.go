// Package trace implements the diagnostic logging core: severity routing,
// event formatting, the trace source listener registry, and the logger that
// ties them to the exception flattener and the retention buffer.
package trace

import "log/slog"

// Severity is the abstract trace severity used by callers. It is translated
// to the sink's slog level at emission time.
type Severity int

const (
	SeverityVerbose Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityVerbose:
		return "VERBOSE"
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "INFO"
	}
}

// ParseSeverity maps a config string to a Severity. Unknown input maps to
// SeverityInfo.
func ParseSeverity(s string) Severity {
	switch s {
	case "verbose", "debug":
		return SeverityVerbose
	case "info":
		return SeverityInfo
	case "warning", "warn":
		return SeverityWarning
	case "error":
		return SeverityError
	case "critical":
		return SeverityCritical
	default:
		return SeverityInfo
	}
}

// Level translates the trace severity to the sink's level enum. Critical has
// no slog counterpart and maps above LevelError.
func (s Severity) Level() slog.Level {
	switch s {
	case SeverityVerbose:
		return slog.LevelDebug
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	case SeverityError:
		return slog.LevelError
	case SeverityCritical:
		return slog.LevelError + 4
	default:
		return slog.LevelInfo
	}
}
