package adapters

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/fescan-dev/fescan/domain"
)

// eslintJSON is the documented --format json shape
type eslintJSON []struct {
	FilePath string `json:"filePath"`
	Messages []struct {
		RuleID   string `json:"ruleId"`
		Severity int    `json:"severity"` // 2=error, 1=warning
		Message  string `json:"message"`
		Line     int    `json:"line"`
		Column   int    `json:"column"`
		Fix      any    `json:"fix,omitempty"`
	} `json:"messages"`
}

// eslintSeverity maps ESLint's numeric severity vocabulary
func eslintSeverity(n int) domain.Severity {
	switch n {
	case 2:
		return domain.SeverityError
	case 1:
		return domain.SeverityWarning
	default:
		return domain.SeverityInfo
	}
}

// stylish-format detail lines: "  12:3  error  Message text  rule-id"
var eslintStylishRe = regexp.MustCompile(`^\s+(\d+):\d+\s+(error|warning)\s+(.+?)(?:\s{2,}(\S+))?$`)

// problem summary marker, e.g. "✖ 3 problems (1 error, 2 warnings)"
var eslintProblemRe = regexp.MustCompile(`\d+\s+problems?|\berror\b|\bwarning\b`)

// ParseESLint converts raw ESLint output into issues
func ParseESLint(stdout, stderr string) ([]domain.Issue, Outcome) {
	stdout = StripANSI(stdout)

	var doc eslintJSON
	if err := json.Unmarshal([]byte(strings.TrimSpace(stdout)), &doc); err == nil {
		var issues []domain.Issue
		for _, file := range doc {
			for _, msg := range file.Messages {
				issue := domain.Issue{
					Severity: eslintSeverity(msg.Severity),
					File:     file.FilePath,
					Line:     msg.Line,
					Message:  msg.Message,
					RuleID:   msg.RuleID,
				}
				if msg.Fix != nil {
					issue.SuggestedFix = "auto-fixable: run with --fix"
				}
				issues = append(issues, issue)
			}
		}
		return issues, Structured("json")
	}

	// Structured parse failed: scan stylish-format lines
	issues := parseESLintStylish(stdout)
	if len(issues) > 0 {
		return issues, TextFallback()
	}

	// No findings extracted; check for evidence before reporting clean
	combined := stdout + "\n" + StripANSI(stderr)
	if markers := len(eslintProblemRe.FindAllString(combined, -1)); markers > 0 && strings.TrimSpace(stdout) != "" {
		return []domain.Issue{syntheticIssue("eslint", markers, stdout)}, TextFallback()
	}

	return nil, Empty()
}

// parseESLintStylish scans the human-readable reporter format. File
// paths appear unindented; findings are indented beneath them.
func parseESLintStylish(output string) []domain.Issue {
	var issues []domain.Issue
	currentFile := ""

	for _, line := range strings.Split(output, "\n") {
		if m := eslintStylishRe.FindStringSubmatch(line); m != nil {
			lineNo, _ := strconv.Atoi(m[1])
			severity := domain.SeverityWarning
			if m[2] == "error" {
				severity = domain.SeverityError
			}
			issues = append(issues, domain.Issue{
				Severity: severity,
				File:     currentFile,
				Line:     lineNo,
				Message:  strings.TrimSpace(m[3]),
				RuleID:   m[4],
			})
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(line, " ") && !strings.HasPrefix(trimmed, "✖") {
			currentFile = trimmed
		}
	}

	return issues
}
