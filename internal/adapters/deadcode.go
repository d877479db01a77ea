package adapters

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/fescan-dev/fescan/domain"
)

// knip changed its JSON reporter shape between major versions; both
// shapes must be tolerated.

// knipV2JSON is the current object shape
type knipV2JSON struct {
	Files  []string `json:"files"`
	Issues []struct {
		File    string `json:"file"`
		Exports []struct {
			Name string `json:"name"`
			Line int    `json:"line"`
		} `json:"exports"`
		Types []struct {
			Name string `json:"name"`
			Line int    `json:"line"`
		} `json:"types"`
	} `json:"issues"`
}

// knipV1JSON is the legacy array shape with bare identifier lists
type knipV1JSON []struct {
	File    string   `json:"file"`
	Exports []string `json:"exports"`
	Types   []string `json:"types"`
}

// text reporter block headers, e.g. "Unused files (3)"
var knipHeaderRe = regexp.MustCompile(`^Unused (files|exports|exported types) \((\d+)\)`)

var knipMarkerRe = regexp.MustCompile(`(?i)\bunused\b`)

// ParseDeadCode converts raw knip output into issues
func ParseDeadCode(stdout, stderr string) ([]domain.Issue, Outcome) {
	stdout = StripANSI(stdout)
	trimmed := strings.TrimSpace(stdout)

	var v2 knipV2JSON
	if err := json.Unmarshal([]byte(trimmed), &v2); err == nil && (len(v2.Files) > 0 || v2.Issues != nil) {
		return deadCodeIssuesFromV2(v2), Structured("v2")
	}

	var v1 knipV1JSON
	if err := json.Unmarshal([]byte(trimmed), &v1); err == nil && len(v1) > 0 {
		return deadCodeIssuesFromV1(v1), Structured("v1")
	}

	// Neither schema matched: scan the text reporter's block headers
	issues := parseDeadCodeText(stdout)
	if len(issues) > 0 {
		return issues, TextFallback()
	}

	combined := stdout + "\n" + StripANSI(stderr)
	if markers := len(knipMarkerRe.FindAllString(combined, -1)); markers > 0 {
		return []domain.Issue{syntheticIssue("knip", markers, stdout)}, TextFallback()
	}

	return nil, Empty()
}

func deadCodeIssuesFromV2(doc knipV2JSON) []domain.Issue {
	var issues []domain.Issue
	for _, file := range doc.Files {
		issues = append(issues, domain.Issue{
			Severity:     domain.SeverityWarning,
			File:         file,
			Message:      "Unused file",
			RuleID:       "knip/files",
			SuggestedFix: "delete the file or add it to knip's entry points",
		})
	}
	for _, entry := range doc.Issues {
		for _, export := range entry.Exports {
			issues = append(issues, domain.Issue{
				Severity: domain.SeverityWarning,
				File:     entry.File,
				Line:     export.Line,
				Message:  fmt.Sprintf("Unused export '%s'", export.Name),
				RuleID:   "knip/exports",
			})
		}
		for _, typ := range entry.Types {
			issues = append(issues, domain.Issue{
				Severity: domain.SeverityWarning,
				File:     entry.File,
				Line:     typ.Line,
				Message:  fmt.Sprintf("Unused exported type '%s'", typ.Name),
				RuleID:   "knip/types",
			})
		}
	}
	return issues
}

func deadCodeIssuesFromV1(doc knipV1JSON) []domain.Issue {
	var issues []domain.Issue
	for _, entry := range doc {
		for _, name := range entry.Exports {
			issues = append(issues, domain.Issue{
				Severity: domain.SeverityWarning,
				File:     entry.File,
				Message:  fmt.Sprintf("Unused export '%s'", name),
				RuleID:   "knip/exports",
			})
		}
		for _, name := range entry.Types {
			issues = append(issues, domain.Issue{
				Severity: domain.SeverityWarning,
				File:     entry.File,
				Message:  fmt.Sprintf("Unused exported type '%s'", name),
				RuleID:   "knip/types",
			})
		}
	}
	return issues
}

// parseDeadCodeText scans the console reporter: a block header
// followed by indented entries until the next header or blank line.
func parseDeadCodeText(output string) []domain.Issue {
	var issues []domain.Issue
	currentKind := ""

	for _, line := range strings.Split(output, "\n") {
		if m := knipHeaderRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			currentKind = m[1]
			continue
		}
		if strings.TrimSpace(line) == "" {
			currentKind = ""
			continue
		}
		if currentKind == "" {
			continue
		}

		entry := strings.TrimSpace(line)
		switch currentKind {
		case "files":
			issues = append(issues, domain.Issue{
				Severity: domain.SeverityWarning,
				File:     entry,
				Message:  "Unused file",
				RuleID:   "knip/files",
			})
		default:
			// Export entries carry "name  file:line"; keep the whole
			// line as the message since the shape varies by version
			issues = append(issues, domain.Issue{
				Severity: domain.SeverityWarning,
				Message:  "Unused export: " + entry,
				RuleID:   "knip/exports",
			})
		}
	}

	return issues
}
