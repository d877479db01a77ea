package service

import (
	"strings"
	"testing"
	"time"

	"github.com/fescan-dev/fescan/domain"
)

func TestAggregateCleanRun(t *testing.T) {
	checks := []domain.CheckResult{
		{Name: "lint", Status: domain.CheckStatusPass},
		{Name: "typecheck", Status: domain.CheckStatusPass},
	}

	r := Aggregate(checks, time.Now(), 2*time.Second)
	if r.Grade != domain.GradeA {
		t.Errorf("zero issues must grade A, got %v", r.Grade)
	}
	if r.ExitCode() != 0 {
		t.Errorf("clean run exit code = %d, want 0", r.ExitCode())
	}
	if r.RunID == "" {
		t.Error("run id must be assigned")
	}

	items := BuildActionItems(r)
	if len(items) != 1 || items[0] != NoCriticalIssuesItem {
		t.Errorf("clean run must produce only the no-critical-issues item, got %v", items)
	}
}

func TestAggregateErrorsDominateGrade(t *testing.T) {
	var issues []domain.Issue
	for i := 0; i < 6; i++ {
		issues = append(issues, domain.Issue{Severity: domain.SeverityError, Message: "e", RuleID: "TS1"})
	}
	for i := 0; i < 20; i++ {
		issues = append(issues, domain.Issue{Severity: domain.SeverityWarning, Message: "w", RuleID: "no-x"})
	}
	checks := []domain.CheckResult{{Name: "lint", Status: domain.CheckStatusFail, Issues: issues}}

	r := Aggregate(checks, time.Now(), time.Second)
	if r.Totals.Errors != 6 || r.Totals.Warnings != 20 {
		t.Fatalf("totals = %+v, want 6 errors and 20 warnings", r.Totals)
	}
	if r.Grade != domain.GradeF {
		t.Errorf("6 errors must grade F, got %v", r.Grade)
	}
	if r.ExitCode() != 1 {
		t.Errorf("exit code = %d, want 1", r.ExitCode())
	}
}

func TestAggregateTotalsSumAcrossChecks(t *testing.T) {
	checks := []domain.CheckResult{
		{Name: "lint", Issues: []domain.Issue{
			{Severity: domain.SeverityError},
			{Severity: domain.SeverityInfo},
		}},
		{Name: "source", Issues: []domain.Issue{
			{Severity: domain.SeverityWarning},
			{Severity: domain.SeverityWarning},
		}},
	}

	r := Aggregate(checks, time.Now(), time.Second)
	want := domain.Totals{Errors: 1, Warnings: 2, Infos: 1}
	if r.Totals != want {
		t.Errorf("totals = %+v, want %+v", r.Totals, want)
	}
}

func TestBuildActionItemsFixedCategoryOrder(t *testing.T) {
	checks := []domain.CheckResult{
		{Name: "circular", Issues: []domain.Issue{
			{Severity: domain.SeverityError, RuleID: "madge/circular"},
		}},
		{Name: "duplication", Issues: []domain.Issue{
			{Severity: domain.SeverityWarning, RuleID: "jscpd/clone"},
			{Severity: domain.SeverityWarning, RuleID: "jscpd/clone"},
		}},
		{Name: "source", Issues: []domain.Issue{
			{Severity: domain.SeverityError, RuleID: "source/file-size"},
		}},
	}

	items := BuildActionItems(Aggregate(checks, time.Now(), time.Second))
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d: %v", len(items), items)
	}
	// Source first, then duplicates, then circular, regardless of
	// which check found more issues.
	if !strings.Contains(items[0], "source") && !strings.Contains(items[0], "oversized") {
		t.Errorf("first item must be the source category: %q", items[0])
	}
	if !strings.Contains(items[1], "2 repeated code blocks") {
		t.Errorf("second item must be duplication with its count: %q", items[1])
	}
	if !strings.Contains(items[2], "circular") {
		t.Errorf("third item must be circular dependencies: %q", items[2])
	}
}

func TestBuildActionItemsIgnoresInfos(t *testing.T) {
	checks := []domain.CheckResult{
		{Name: "boundaries", Status: domain.CheckStatusSkip, Issues: []domain.Issue{
			{Severity: domain.SeverityInfo, Message: "policy file missing"},
		}},
		{Name: "source", Issues: []domain.Issue{
			{Severity: domain.SeverityInfo, RuleID: "source/inline-error-boundary"},
		}},
	}

	items := BuildActionItems(Aggregate(checks, time.Now(), time.Second))
	if len(items) != 1 || items[0] != NoCriticalIssuesItem {
		t.Errorf("informational findings must not create action items, got %v", items)
	}
}
