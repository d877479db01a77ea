// Package report renders a HealthReport into its two output
// artifacts: a human-readable markdown document and a compact JSON
// document for downstream machine consumption.
package report

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/fescan-dev/fescan/domain"
)

// EncodeIssue flattens an issue to the delimited form
// <severityLetter>|<file>[:<line>]|<message>|<ruleId>. Backslashes and
// pipes inside segments are escaped so the encoding round-trips
// losslessly.
func EncodeIssue(issue domain.Issue) string {
	loc := escapeSegment(issue.File)
	if issue.Line > 0 {
		loc += ":" + strconv.Itoa(issue.Line)
	}
	return issue.Severity.Letter() + "|" + loc + "|" +
		escapeSegment(issue.Message) + "|" + escapeSegment(issue.RuleID)
}

// DecodeIssue parses the delimited form back into the four logical
// fields. The suggested-fix field is not part of the compact contract
// and decodes as empty.
func DecodeIssue(encoded string) (domain.Issue, error) {
	segments := splitSegments(encoded)
	if len(segments) != 4 {
		return domain.Issue{}, fmt.Errorf("compact issue has %d segments, want 4: %q", len(segments), encoded)
	}

	issue := domain.Issue{
		Severity: domain.SeverityFromLetter(segments[0]),
		Message:  segments[2],
		RuleID:   segments[3],
	}

	loc := segments[1]
	if idx := strings.LastIndex(loc, ":"); idx >= 0 {
		if line, err := strconv.Atoi(loc[idx+1:]); err == nil && line > 0 {
			issue.File = loc[:idx]
			issue.Line = line
			return issue, nil
		}
	}
	issue.File = loc
	return issue, nil
}

func escapeSegment(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "|", `\|`)
}

// splitSegments splits on unescaped pipes and unescapes each segment.
func splitSegments(s string) []string {
	var segments []string
	var current strings.Builder
	escaped := false
	for _, r := range s {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '|':
			segments = append(segments, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	segments = append(segments, current.String())
	return segments
}

// compactCheck mirrors CheckResult with shortened field names and each
// issue flattened to its delimited string form.
type compactCheck struct {
	Name     string   `json:"n"`
	Status   string   `json:"s"`
	Duration int64    `json:"d"`
	Issues   []string `json:"i"`
	Summary  string   `json:"m,omitempty"`
}

type compactReport struct {
	RunID    string         `json:"id"`
	TS       string         `json:"ts"`
	Duration int64          `json:"d"`
	Checks   []compactCheck `json:"c"`
	Totals   [3]int         `json:"t"`
	Grade    string         `json:"g"`
}

// MarshalCompact serializes the report in its compact JSON form.
func MarshalCompact(r *domain.HealthReport) ([]byte, error) {
	out := compactReport{
		RunID:    r.RunID,
		TS:       r.GeneratedAt,
		Duration: r.TotalDurationMs,
		Totals:   [3]int{r.Totals.Errors, r.Totals.Warnings, r.Totals.Infos},
		Grade:    string(r.Grade),
	}
	for _, check := range r.Checks {
		cc := compactCheck{
			Name:     check.Name,
			Status:   string(check.Status),
			Duration: check.DurationMs,
			Issues:   make([]string, 0, len(check.Issues)),
			Summary:  check.Summary,
		}
		for _, issue := range check.Issues {
			cc.Issues = append(cc.Issues, EncodeIssue(issue))
		}
		out.Checks = append(out.Checks, cc)
	}
	return json.Marshal(out)
}

// UnmarshalCompact restores a report from its compact JSON form.
// RawOutput and suggested fixes are not carried by the compact
// contract and come back empty.
func UnmarshalCompact(data []byte) (*domain.HealthReport, error) {
	var in compactReport
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to parse compact report: %w", err)
	}

	report := &domain.HealthReport{
		RunID:           in.RunID,
		GeneratedAt:     in.TS,
		TotalDurationMs: in.Duration,
		Totals:          domain.Totals{Errors: in.Totals[0], Warnings: in.Totals[1], Infos: in.Totals[2]},
		Grade:           domain.Grade(in.Grade),
	}
	for _, cc := range in.Checks {
		check := domain.CheckResult{
			Name:       cc.Name,
			Status:     domain.CheckStatus(cc.Status),
			DurationMs: cc.Duration,
			Summary:    cc.Summary,
		}
		for _, encoded := range cc.Issues {
			issue, err := DecodeIssue(encoded)
			if err != nil {
				return nil, err
			}
			check.Issues = append(check.Issues, issue)
		}
		report.Checks = append(report.Checks, check)
	}
	return report, nil
}
