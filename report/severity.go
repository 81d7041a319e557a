// Package report defines the validator's output domain model:
// severities, statuses, individual findings (TestResult), and the
// top-level ValidationReport the orchestrator assembles.
package report

import "strings"

// Severity is a totally ordered finding level: INFO < WARN < ERROR.
type Severity int

const (
	Info Severity = iota
	Warn
	Error
)

// String renders Severity using the wire vocabulary the JSON output and
// the original Python validator both use.
func (s Severity) String() string {
	switch s {
	case Info:
		return "Info"
	case Warn:
		return "Warn"
	case Error:
		return "Error"
	default:
		return "Info"
	}
}

// MarshalJSON renders Severity as its wire string.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON parses Severity case-insensitively.
func (s *Severity) UnmarshalJSON(data []byte) error {
	str := strings.Trim(string(data), `"`)
	switch strings.ToLower(str) {
	case "info":
		*s = Info
	case "warn":
		*s = Warn
	case "error":
		*s = Error
	default:
		*s = Info
	}
	return nil
}
