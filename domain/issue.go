package domain

import "fmt"

// Severity represents the severity of a normalized finding
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Letter returns the single-letter form used by the compact encoding
func (s Severity) Letter() string {
	switch s {
	case SeverityError:
		return "E"
	case SeverityWarning:
		return "W"
	default:
		return "I"
	}
}

// SeverityFromLetter maps a compact-encoding letter back to a Severity
func SeverityFromLetter(letter string) Severity {
	switch letter {
	case "E":
		return SeverityError
	case "W":
		return SeverityWarning
	default:
		return SeverityInfo
	}
}

// Issue represents one normalized finding produced by exactly one
// adapter or heuristic. Issues are never mutated after creation.
type Issue struct {
	// Severity of the finding
	Severity Severity `json:"severity" yaml:"severity"`

	// File is the affected file path, empty when unknown
	File string `json:"file,omitempty" yaml:"file,omitempty"`

	// Line is the 1-based line number, 0 when unknown
	Line int `json:"line,omitempty" yaml:"line,omitempty"`

	// Message is the human-readable description
	Message string `json:"message" yaml:"message"`

	// RuleID identifies the originating rule, empty when unknown
	RuleID string `json:"rule_id,omitempty" yaml:"rule_id,omitempty"`

	// SuggestedFix is an optional remediation hint
	SuggestedFix string `json:"suggested_fix,omitempty" yaml:"suggested_fix,omitempty"`
}

// Location returns "file:line", "file", or "" depending on what is known
func (i Issue) Location() string {
	if i.File == "" {
		return ""
	}
	if i.Line <= 0 {
		return i.File
	}
	return fmt.Sprintf("%s:%d", i.File, i.Line)
}
