package adapters

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/fescan-dev/fescan/domain"
)

// madge --circular --json emits an array of cycles, each an ordered
// list of module paths.

// text reporter cycle lines: "1) a.ts > b.ts > a.ts"
var madgeCycleRe = regexp.MustCompile(`^\s*\d+\)\s*(.+)$`)

var madgeMarkerRe = regexp.MustCompile(`(?i)circular`)

// ParseCircular converts raw madge output into issues
func ParseCircular(stdout, stderr string) ([]domain.Issue, Outcome) {
	stdout = StripANSI(stdout)

	var cycles [][]string
	if err := json.Unmarshal([]byte(strings.TrimSpace(stdout)), &cycles); err == nil {
		var issues []domain.Issue
		for _, cycle := range cycles {
			if len(cycle) == 0 {
				continue
			}
			issues = append(issues, cycleIssue(cycle))
		}
		return issues, Structured("json")
	}

	var issues []domain.Issue
	for _, line := range nonEmptyLines(stdout) {
		m := madgeCycleRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		parts := splitCyclePath(m[1])
		if len(parts) < 2 {
			continue
		}
		issues = append(issues, cycleIssue(parts))
	}
	if len(issues) > 0 {
		return issues, TextFallback()
	}

	combined := stdout + "\n" + StripANSI(stderr)
	if markers := len(madgeMarkerRe.FindAllString(combined, -1)); markers > 0 && strings.TrimSpace(stdout) != "" {
		return []domain.Issue{syntheticIssue("madge", markers, stdout)}, TextFallback()
	}

	return nil, Empty()
}

func cycleIssue(cycle []string) domain.Issue {
	// Close the loop for readability when the tool does not repeat
	// the first module
	path := cycle
	if path[0] != path[len(path)-1] {
		path = append(append([]string{}, cycle...), cycle[0])
	}
	return domain.Issue{
		Severity:     domain.SeverityError,
		File:         cycle[0],
		Message:      "Circular dependency: " + strings.Join(path, " -> "),
		RuleID:       "madge/circular",
		SuggestedFix: "break the cycle by extracting the shared pieces into a separate module",
	}
}

func splitCyclePath(s string) []string {
	var parts []string
	for _, sep := range []string{" > ", " -> ", " → "} {
		if strings.Contains(s, sep) {
			for _, part := range strings.Split(s, sep) {
				if trimmed := strings.TrimSpace(part); trimmed != "" {
					parts = append(parts, trimmed)
				}
			}
			return parts
		}
	}
	return nil
}
