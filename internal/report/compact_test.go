package report

import (
	"strings"
	"testing"

	"github.com/fescan-dev/fescan/domain"
)

func TestCompactIssueRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		issue domain.Issue
	}{
		{
			name: "all fields",
			issue: domain.Issue{
				Severity: domain.SeverityError,
				File:     "src/App.tsx",
				Line:     42,
				Message:  "Type mismatch",
				RuleID:   "TS2322",
			},
		},
		{
			name: "file without line",
			issue: domain.Issue{
				Severity: domain.SeverityWarning,
				File:     "src/utils.ts",
				Message:  "Unused export 'helper'",
				RuleID:   "knip/exports",
			},
		},
		{
			name: "no location",
			issue: domain.Issue{
				Severity: domain.SeverityInfo,
				Message:  "analysis skipped",
			},
		},
		{
			name: "no rule",
			issue: domain.Issue{
				Severity: domain.SeverityWarning,
				File:     "src/a.ts",
				Line:     7,
				Message:  "something odd",
			},
		},
		{
			name: "message with delimiter and escapes",
			issue: domain.Issue{
				Severity: domain.SeverityError,
				File:     "src/a.ts",
				Line:     3,
				Message:  `expected "a | b" but got "a \ b"`,
				RuleID:   "lint/union",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := EncodeIssue(tt.issue)
			decoded, err := DecodeIssue(encoded)
			if err != nil {
				t.Fatalf("DecodeIssue(%q) error: %v", encoded, err)
			}
			if decoded != tt.issue {
				t.Errorf("round trip mismatch:\n  in:  %+v\n  enc: %q\n  out: %+v", tt.issue, encoded, decoded)
			}
		})
	}
}

func TestEncodeIssueSegmentShape(t *testing.T) {
	encoded := EncodeIssue(domain.Issue{
		Severity: domain.SeverityError,
		File:     "src/App.tsx",
		Line:     42,
		Message:  "boom",
		RuleID:   "TS1",
	})
	if encoded != "E|src/App.tsx:42|boom|TS1" {
		t.Errorf("unexpected encoding: %q", encoded)
	}

	noLoc := EncodeIssue(domain.Issue{Severity: domain.SeverityInfo, Message: "note"})
	if noLoc != "I||note|" {
		t.Errorf("absent fields must encode as empty segments: %q", noLoc)
	}
}

func TestDecodeIssueRejectsMalformedInput(t *testing.T) {
	if _, err := DecodeIssue("E|only|three"); err == nil {
		t.Error("expected error for wrong segment count")
	}
}

func TestCompactReportRoundTrip(t *testing.T) {
	in := &domain.HealthReport{
		RunID:           "run-1",
		GeneratedAt:     "2026-08-23T10:00:00Z",
		TotalDurationMs: 4200,
		Checks: []domain.CheckResult{
			{
				Name:       "lint",
				Status:     domain.CheckStatusFail,
				DurationMs: 900,
				Summary:    "2 problems",
				Issues: []domain.Issue{
					{Severity: domain.SeverityError, File: "a.ts", Line: 1, Message: "x", RuleID: "r"},
					{Severity: domain.SeverityWarning, File: "b.ts", Message: "y"},
				},
			},
			{Name: "typecheck", Status: domain.CheckStatusPass, DurationMs: 3300, Summary: "clean"},
		},
		Totals: domain.Totals{Errors: 1, Warnings: 1},
		Grade:  domain.GradeC,
	}

	data, err := MarshalCompact(in)
	if err != nil {
		t.Fatalf("MarshalCompact() error: %v", err)
	}
	if !strings.Contains(string(data), `"g":"C"`) {
		t.Errorf("compact JSON must use shortened names: %s", data)
	}

	out, err := UnmarshalCompact(data)
	if err != nil {
		t.Fatalf("UnmarshalCompact() error: %v", err)
	}
	if out.RunID != in.RunID || out.Grade != in.Grade || out.Totals != in.Totals {
		t.Errorf("header fields lost: %+v", out)
	}
	if len(out.Checks) != 2 || len(out.Checks[0].Issues) != 2 {
		t.Fatalf("checks lost: %+v", out.Checks)
	}
	if out.Checks[0].Issues[0] != in.Checks[0].Issues[0] {
		t.Errorf("issue round trip mismatch: %+v", out.Checks[0].Issues[0])
	}
}
