package report

import (
	"fmt"
	"strings"

	"github.com/fescan-dev/fescan/domain"
	"github.com/fescan-dev/fescan/internal/constants"
)

var statusGlyphs = map[domain.CheckStatus]string{
	domain.CheckStatusPass: "✅",
	domain.CheckStatusWarn: "⚠️",
	domain.CheckStatusFail: "❌",
	domain.CheckStatusSkip: "⏭️",
}

// RenderMarkdown produces the primary report artifact: a summary
// table, totals, per-check issue detail and the prioritized action
// items. Output is deterministic for a given report.
func RenderMarkdown(r *domain.HealthReport, actionItems []string) string {
	var b strings.Builder

	b.WriteString("# Frontend Health Report\n\n")
	fmt.Fprintf(&b, "- **Grade**: %s\n", r.Grade)
	fmt.Fprintf(&b, "- **Generated**: %s\n", r.GeneratedAt)
	fmt.Fprintf(&b, "- **Run**: `%s`\n", r.RunID)
	fmt.Fprintf(&b, "- **Duration**: %s\n\n", formatDuration(r.TotalDurationMs))

	b.WriteString("## Summary\n\n")
	b.WriteString("| Check | Status | Duration | Summary |\n")
	b.WriteString("|-------|--------|----------|---------|\n")
	for _, check := range r.Checks {
		fmt.Fprintf(&b, "| %s | %s %s | %s | %s |\n",
			check.Name,
			statusGlyphs[check.Status], check.Status,
			formatDuration(check.DurationMs),
			escapeTableCell(check.Summary))
	}
	fmt.Fprintf(&b, "\n**Totals**: %d errors, %d warnings, %d infos\n\n",
		r.Totals.Errors, r.Totals.Warnings, r.Totals.Infos)

	b.WriteString("## Details\n\n")
	for _, check := range r.Checks {
		renderCheckDetail(&b, check)
	}

	b.WriteString("## Action Items\n\n")
	for i, item := range actionItems {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item)
	}

	return b.String()
}

func renderCheckDetail(b *strings.Builder, check domain.CheckResult) {
	fmt.Fprintf(b, "### %s %s\n\n", statusGlyphs[check.Status], check.Name)
	if check.Summary != "" {
		fmt.Fprintf(b, "%s\n\n", check.Summary)
	}
	if len(check.Issues) == 0 {
		return
	}

	// Errors first, then warnings, then a capped info section.
	for _, issue := range check.Issues {
		if issue.Severity == domain.SeverityError {
			writeIssueLine(b, issue)
		}
	}
	for _, issue := range check.Issues {
		if issue.Severity == domain.SeverityWarning {
			writeIssueLine(b, issue)
		}
	}
	infos := 0
	for _, issue := range check.Issues {
		if issue.Severity != domain.SeverityInfo {
			continue
		}
		infos++
		if infos <= constants.MaxInfoIssuesRendered {
			writeIssueLine(b, issue)
		}
	}
	if infos > constants.MaxInfoIssuesRendered {
		fmt.Fprintf(b, "- … and %d more informational findings\n", infos-constants.MaxInfoIssuesRendered)
	}
	b.WriteString("\n")
}

func writeIssueLine(b *strings.Builder, issue domain.Issue) {
	fmt.Fprintf(b, "- **%s**", issue.Severity)
	if loc := issue.Location(); loc != "" {
		fmt.Fprintf(b, " `%s`", loc)
	}
	fmt.Fprintf(b, " %s", issue.Message)
	if issue.RuleID != "" {
		fmt.Fprintf(b, " _(%s)_", issue.RuleID)
	}
	if issue.SuggestedFix != "" {
		fmt.Fprintf(b, " (fix: %s)", issue.SuggestedFix)
	}
	b.WriteString("\n")
}

func formatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	return fmt.Sprintf("%.1fs", float64(ms)/1000)
}

func escapeTableCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
