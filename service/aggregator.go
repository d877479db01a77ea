package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/fescan-dev/fescan/domain"
	"github.com/google/uuid"
)

// Aggregate merges all check results into the final report. Totals are
// always the elementwise sum over every check's issues; the grade
// follows from the totals and ignores informational findings.
func Aggregate(checks []domain.CheckResult, startedAt time.Time, totalDuration time.Duration) *domain.HealthReport {
	totals := domain.SumIssues(checks)
	return &domain.HealthReport{
		RunID:           uuid.NewString(),
		GeneratedAt:     startedAt.UTC().Format(time.RFC3339),
		TotalDurationMs: totalDuration.Milliseconds(),
		Checks:          checks,
		Totals:          totals,
		Grade:           domain.GradeFor(totals.Errors, totals.Warnings),
	}
}

// actionCategory selects the issues one action item summarizes
type actionCategory struct {
	rulePrefix string
	render     func(count int) string
}

// Categories are emitted in a fixed priority order, not sorted by
// count. Numbering is the item's position in the final list, so the
// counter runs across categories.
var actionCategories = []actionCategory{
	{"source/", func(n int) string {
		return fmt.Sprintf("Refactor %d oversized or over-complex source %s", n, plural(n, "file", "files"))
	}},
	{"structure/", func(n int) string {
		return fmt.Sprintf("Reorganize %d %s flagged for depth, crowding or mixed content", n, plural(n, "folder", "folders"))
	}},
	{"boundaries/", func(n int) string {
		return fmt.Sprintf("Resolve %d architecture boundary %s", n, plural(n, "violation", "violations"))
	}},
	{"jscpd/", func(n int) string {
		return fmt.Sprintf("Deduplicate %d repeated code %s", n, plural(n, "block", "blocks"))
	}},
	{"knip/", func(n int) string {
		return fmt.Sprintf("Remove %d dead %s", n, plural(n, "file or export", "files or exports"))
	}},
	{"madge/", func(n int) string {
		return fmt.Sprintf("Break %d circular %s", n, plural(n, "dependency", "dependencies"))
	}},
}

// NoCriticalIssuesItem is the single action item emitted when no
// category has any finding
const NoCriticalIssuesItem = "✅ No critical issues found"

// BuildActionItems derives the prioritized action list from the
// report. Informational findings never produce action items.
func BuildActionItems(r *domain.HealthReport) []string {
	counts := make(map[string]int)
	for _, check := range r.Checks {
		for _, issue := range check.Issues {
			if issue.Severity == domain.SeverityInfo {
				continue
			}
			for _, cat := range actionCategories {
				if strings.HasPrefix(issue.RuleID, cat.rulePrefix) {
					counts[cat.rulePrefix]++
					break
				}
			}
		}
	}

	var items []string
	for _, cat := range actionCategories {
		if n := counts[cat.rulePrefix]; n > 0 {
			items = append(items, cat.render(n))
		}
	}
	if len(items) == 0 {
		items = []string{NoCriticalIssuesItem}
	}
	return items
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}
