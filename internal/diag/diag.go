package diag

import (
	"encoding/json"
	"fmt"
)

// Severity represents the severity level of a diagnostic
type Severity int

const (
	Info Severity = iota
	Warning
	Error
	Fatal
)

// String returns the string representation of the severity
func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for Severity
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for Severity
func (s *Severity) UnmarshalJSON(data []byte) error {
	str := string(data)
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}

	switch str {
	case "info":
		*s = Info
	case "warning":
		*s = Warning
	case "error":
		*s = Error
	case "fatal":
		*s = Fatal
	default:
		*s = Error
	}
	return nil
}

// Location represents a position in a declaration file
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Length int    `json:"length"` // For multi-character tokens
}

// Diagnostic is a generator diagnostic tied to a stage and location.
// It implements the error interface so extraction and wiring failures
// can flow through ordinary error returns.
type Diagnostic struct {
	Stage    string   // "extract", "plan", "write", "wiring", "batch"
	Code     string   // "GEN001", "GEN002", etc.
	Message  string   // Human-readable message
	Location Location // File, line, column
	Severity Severity
}

// Error implements the error interface
func (d Diagnostic) Error() string {
	if d.Location.File == "" {
		return fmt.Sprintf("%s: %s", d.Code, d.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s",
		d.Location.File,
		d.Location.Line,
		d.Location.Column,
		d.Code,
		d.Message)
}

// New creates a Diagnostic
func New(stage, code, message string, location Location, severity Severity) Diagnostic {
	return Diagnostic{
		Stage:    stage,
		Code:     code,
		Message:  message,
		Location: location,
		Severity: severity,
	}
}

// MarshalJSON implements json.Marshaler
func (d Diagnostic) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Stage    string   `json:"stage"`
		Code     string   `json:"code"`
		Message  string   `json:"message"`
		Severity Severity `json:"severity"`
		Location Location `json:"location"`
	}{
		Stage:    d.Stage,
		Code:     d.Code,
		Message:  d.Message,
		Severity: d.Severity,
		Location: d.Location,
	})
}

// IsError returns true if the diagnostic is at Error or Fatal severity
func (d Diagnostic) IsError() bool {
	return d.Severity == Error || d.Severity == Fatal
}

// IsWarning returns true if the diagnostic is at Warning severity
func (d Diagnostic) IsWarning() bool {
	return d.Severity == Warning
}
