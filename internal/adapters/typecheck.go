package adapters

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fescan-dev/fescan/domain"
)

// tsc has no JSON reporter; its output is consumed as opaque text.
// Tier 1 parses the documented "--pretty false" diagnostic shape,
// tier 2 falls back to any line mentioning a TS diagnostic code.

// "src/App.tsx(12,5): error TS2322: Type 'string' is not ..."
var tscDiagnosticRe = regexp.MustCompile(`^(.+?)\((\d+),\d+\): (error|warning) (TS\d+): (.+)$`)

var tscLooseRe = regexp.MustCompile(`error TS\d+:`)

var tscMarkerRe = regexp.MustCompile(`error TS\d+`)

// ParseTypecheck converts raw tsc output into issues
func ParseTypecheck(stdout, stderr string) ([]domain.Issue, Outcome) {
	combined := StripANSI(stdout)
	if strings.TrimSpace(combined) == "" {
		combined = StripANSI(stderr)
	}

	var issues []domain.Issue
	for _, line := range nonEmptyLines(combined) {
		m := tscDiagnosticRe.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		lineNo, _ := strconv.Atoi(m[2])
		severity := domain.SeverityError
		if m[3] == "warning" {
			severity = domain.SeverityWarning
		}
		issues = append(issues, domain.Issue{
			Severity: severity,
			File:     m[1],
			Line:     lineNo,
			Message:  m[5],
			RuleID:   m[4],
		})
	}
	if len(issues) > 0 {
		return issues, Structured("pretty-false")
	}

	// Looser scan: diagnostics wrapped or reformatted by a wrapper tool
	for _, line := range nonEmptyLines(combined) {
		if !tscLooseRe.MatchString(line) {
			continue
		}
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityError,
			Message:  strings.TrimSpace(line),
			RuleID:   "tsc",
		})
	}
	if len(issues) > 0 {
		return issues, TextFallback()
	}

	if markers := len(tscMarkerRe.FindAllString(combined, -1)); markers > 0 {
		return []domain.Issue{syntheticIssue("tsc", markers, combined)}, TextFallback()
	}

	return nil, Empty()
}
