package adapters

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/fescan-dev/fescan/domain"
	"gopkg.in/yaml.v3"
)

// The architecture-boundary check wraps dependency-cruiser. It is the
// one check that requires an external configuration artifact; the
// driver skips the check when the artifact is missing.

// BoundariesPolicy is the on-disk .boundaries.yaml artifact
type BoundariesPolicy struct {
	// AllowRules lists violation rule names to suppress
	AllowRules []string `yaml:"allow_rules"`

	// Layers documents the intended layering; informational for now,
	// the actual rules live in the dependency-cruiser config
	Layers []string `yaml:"layers"`
}

// LoadBoundariesPolicy reads and parses the policy artifact
func LoadBoundariesPolicy(path string) (*BoundariesPolicy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var policy BoundariesPolicy
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return nil, fmt.Errorf("failed to parse boundaries policy %s: %w", path, err)
	}
	return &policy, nil
}

// depcruiseJSON is dependency-cruiser's --output-type json shape
type depcruiseJSON struct {
	Summary struct {
		Violations []struct {
			From string `json:"from"`
			To   string `json:"to"`
			Rule struct {
				Name     string `json:"name"`
				Severity string `json:"severity"` // error|warn|info
			} `json:"rule"`
		} `json:"violations"`
		Error int `json:"error"`
		Warn  int `json:"warn"`
		Info  int `json:"info"`
	} `json:"summary"`
}

// depcruiseSeverity maps dependency-cruiser's severity vocabulary
func depcruiseSeverity(s string) domain.Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return domain.SeverityError
	case "warn", "warning":
		return domain.SeverityWarning
	default:
		return domain.SeverityInfo
	}
}

// text reporter lines: "error no-cross-feature: src/a.ts → src/b.ts"
var depcruiseTextRe = regexp.MustCompile(`^\s*(error|warn|info)\s+([\w-]+):\s*(\S+)\s*(?:→|->)\s*(\S+)`)

// ParseBoundaries converts raw dependency-cruiser output into issues,
// dropping violations whose rule name the policy allowlists
func ParseBoundaries(stdout, stderr string, policy *BoundariesPolicy) ([]domain.Issue, Outcome) {
	stdout = StripANSI(stdout)

	allowed := map[string]bool{}
	if policy != nil {
		for _, rule := range policy.AllowRules {
			allowed[rule] = true
		}
	}

	var doc depcruiseJSON
	if err := json.Unmarshal([]byte(strings.TrimSpace(stdout)), &doc); err == nil && (doc.Summary.Violations != nil || doc.Summary.Error+doc.Summary.Warn+doc.Summary.Info > 0) {
		var issues []domain.Issue
		for _, v := range doc.Summary.Violations {
			if allowed[v.Rule.Name] {
				continue
			}
			issues = append(issues, domain.Issue{
				Severity: depcruiseSeverity(v.Rule.Severity),
				File:     v.From,
				Message:  fmt.Sprintf("Dependency violates boundary rule '%s': %s -> %s", v.Rule.Name, v.From, v.To),
				RuleID:   "boundaries/" + v.Rule.Name,
			})
		}
		return issues, Structured("json")
	}

	var issues []domain.Issue
	for _, line := range nonEmptyLines(stdout) {
		m := depcruiseTextRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if allowed[m[2]] {
			continue
		}
		issues = append(issues, domain.Issue{
			Severity: depcruiseSeverity(m[1]),
			File:     m[3],
			Message:  fmt.Sprintf("Dependency violates boundary rule '%s': %s -> %s", m[2], m[3], m[4]),
			RuleID:   "boundaries/" + m[2],
		})
	}
	if len(issues) > 0 {
		return issues, TextFallback()
	}

	combined := stdout + "\n" + StripANSI(stderr)
	if strings.Contains(combined, "violation") && strings.TrimSpace(stdout) != "" {
		markers := strings.Count(combined, "violation")
		return []domain.Issue{syntheticIssue("depcruise", markers, stdout)}, TextFallback()
	}

	return nil, Empty()
}
