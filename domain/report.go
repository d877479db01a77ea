package domain

// CheckStatus represents the outcome of one quality check
type CheckStatus string

const (
	CheckStatusPass CheckStatus = "pass"
	CheckStatusWarn CheckStatus = "warn"
	CheckStatusFail CheckStatus = "fail"
	CheckStatusSkip CheckStatus = "skip"
)

// CheckResult represents the result of a single named analysis pass
type CheckResult struct {
	// Name identifies the check (lint, typecheck, deadcode, ...)
	Name string `json:"name" yaml:"name"`

	// Status is derived from the issues except for skip, which is set
	// only when the check was deliberately not run
	Status CheckStatus `json:"status" yaml:"status"`

	// DurationMs is the wall-clock execution time
	DurationMs int64 `json:"duration_ms" yaml:"duration_ms"`

	// Issues are the normalized findings, in emission order
	Issues []Issue `json:"issues" yaml:"issues"`

	// Summary is a one-line human-readable description of the outcome
	Summary string `json:"summary" yaml:"summary"`

	// RawOutput preserves the upstream tool output when fallback
	// parsing reduced fidelity
	RawOutput string `json:"raw_output,omitempty" yaml:"raw_output,omitempty"`
}

// DeriveStatus computes the status implied by a set of issues:
// fail if any error, else warn if any warning, else pass.
// Skip is never derived; the driver assigns it explicitly.
func DeriveStatus(issues []Issue) CheckStatus {
	status := CheckStatusPass
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			return CheckStatusFail
		case SeverityWarning:
			status = CheckStatusWarn
		}
	}
	return status
}

// Totals holds the elementwise sum of issue severities across checks
type Totals struct {
	Errors   int `json:"errors" yaml:"errors"`
	Warnings int `json:"warnings" yaml:"warnings"`
	Infos    int `json:"infos" yaml:"infos"`
}

// SumIssues computes report totals. This is the only way totals are
// ever produced; they are never counted independently elsewhere.
func SumIssues(checks []CheckResult) Totals {
	var t Totals
	for _, check := range checks {
		for _, issue := range check.Issues {
			switch issue.Severity {
			case SeverityError:
				t.Errors++
			case SeverityWarning:
				t.Warnings++
			case SeverityInfo:
				t.Infos++
			}
		}
	}
	return t
}

// Grade is the single letter summarizing a run's error/warning totals
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// GradeFor assigns a letter grade from fixed thresholds, evaluated
// top to bottom with first match winning. Informational findings do
// not affect the grade.
func GradeFor(errors, warnings int) Grade {
	switch {
	case errors == 0 && warnings == 0:
		return GradeA
	case errors == 0 && warnings <= 5:
		return GradeB
	case errors <= 2 && warnings <= 15:
		return GradeC
	case errors <= 5:
		return GradeD
	default:
		return GradeF
	}
}

// HealthReport represents the complete result of one pipeline run.
// All entities live in memory only; the rendered artifacts are fully
// overwritten each run.
type HealthReport struct {
	RunID           string        `json:"run_id" yaml:"run_id"`
	GeneratedAt     string        `json:"generated_at" yaml:"generated_at"`
	TotalDurationMs int64         `json:"total_duration_ms" yaml:"total_duration_ms"`
	Checks          []CheckResult `json:"checks" yaml:"checks"`
	Totals          Totals        `json:"totals" yaml:"totals"`
	Grade           Grade         `json:"grade" yaml:"grade"`
}

// ExitCode returns the process exit status for the report: non-zero
// iff any error-severity issue was found, regardless of grade.
func (r *HealthReport) ExitCode() int {
	if r.Totals.Errors > 0 {
		return 1
	}
	return 0
}
