package analyzer

import (
	"strings"
	"testing"

	"github.com/fescan-dev/fescan/domain"
	"github.com/fescan-dev/fescan/internal/config"
)

func TestAnalyzeFileCountsMarkers(t *testing.T) {
	content := `import { useState, useEffect } from 'react';

export function Cart() {
  const [items, setItems] = useState([]);
  const [open, setOpen] = useState(false);
  useEffect(() => { load(); }, []);
  const totals = useCartTotals(items);
  return <div>{totals}</div>;
}
`
	a := AnalyzeFile("src/Cart.tsx", content, 80)

	if got := a.MarkerCounts[domain.MarkerState]; got != 2 {
		t.Errorf("state markers = %d, want 2", got)
	}
	if got := a.MarkerCounts[domain.MarkerEffect]; got != 1 {
		t.Errorf("effect markers = %d, want 1", got)
	}
	if got := a.MarkerCounts[domain.MarkerOtherCustom]; got != 1 {
		t.Errorf("other custom markers = %d, want 1 (useCartTotals)", got)
	}
	if got := a.TotalMarkers(); got != 4 {
		t.Errorf("total markers = %d, want 4", got)
	}
}

func TestFileIssuesOversizedFile(t *testing.T) {
	content := strings.TrimSuffix(strings.Repeat("const x = 1;\n", 600), "\n")
	a := AnalyzeFile("src/huge.ts", content, 80)
	if a.LineCount != 600 {
		t.Fatalf("line count = %d, want 600", a.LineCount)
	}

	cfg := config.DefaultConfig().Source
	issues := FileIssues(a, &cfg)
	if len(issues) != 1 {
		t.Fatalf("expected exactly 1 issue, got %d: %+v", len(issues), issues)
	}
	issue := issues[0]
	if issue.Severity != domain.SeverityError {
		t.Errorf("oversized file must be an error, got %v", issue.Severity)
	}
	if !strings.Contains(issue.Message, "600") || !strings.Contains(issue.Message, "500") {
		t.Errorf("message must name the count and the limit: %q", issue.Message)
	}
}

func TestFileIssuesMarkerThresholds(t *testing.T) {
	tests := []struct {
		name       string
		markers    map[domain.MarkerKind]int
		wantRules  []string
		wantSevers []domain.Severity
	}{
		{
			name:       "total at warning boundary",
			markers:    map[domain.MarkerKind]int{domain.MarkerState: 6},
			wantRules:  []string{"source/marker-total"},
			wantSevers: []domain.Severity{domain.SeverityWarning},
		},
		{
			name:       "total at error boundary",
			markers:    map[domain.MarkerKind]int{domain.MarkerState: 10},
			wantRules:  []string{"source/marker-total"},
			wantSevers: []domain.Severity{domain.SeverityError},
		},
		{
			name:       "effects at boundary",
			markers:    map[domain.MarkerKind]int{domain.MarkerEffect: 4},
			wantRules:  []string{"source/effects"},
			wantSevers: []domain.Severity{domain.SeverityWarning},
		},
		{
			name: "memo and callback combined",
			markers: map[domain.MarkerKind]int{
				domain.MarkerMemo:     3,
				domain.MarkerCallback: 3,
			},
			wantRules:  []string{"source/marker-total", "source/memo-callback"},
			wantSevers: []domain.Severity{domain.SeverityWarning, domain.SeverityWarning},
		},
	}

	cfg := config.DefaultConfig().Source
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &domain.FileAnalysis{
				Path:         "src/C.tsx",
				LineCount:    50,
				MarkerCounts: tt.markers,
				Patterns:     map[domain.PatternKind]bool{},
			}
			issues := FileIssues(a, &cfg)
			if len(issues) != len(tt.wantRules) {
				t.Fatalf("expected %d issues, got %d: %+v", len(tt.wantRules), len(issues), issues)
			}
			for i := range issues {
				if issues[i].RuleID != tt.wantRules[i] {
					t.Errorf("issue %d rule = %q, want %q", i, issues[i].RuleID, tt.wantRules[i])
				}
				if issues[i].Severity != tt.wantSevers[i] {
					t.Errorf("issue %d severity = %v, want %v", i, issues[i].Severity, tt.wantSevers[i])
				}
			}
		})
	}
}

func TestClassifyMixedConcernsGrouping(t *testing.T) {
	manyIfs := strings.Repeat("if (cond) { act(); }\n", 11)
	mapsOnly := strings.Repeat("items.map(f);\n", 4)
	mapsAndFilters := mapsOnly + strings.Repeat("items.filter(g);\n", 3)

	tests := []struct {
		name    string
		content string
		want    bool
	}{
		// (markup AND maps AND filters) OR ifs: the markup requirement
		// binds only to the map/filter clause.
		{"ifs alone with markup", "<div>\n" + manyIfs, true},
		{"ifs alone without markup", manyIfs, true},
		{"maps without filters", "<div>\n" + mapsOnly, false},
		{"maps and filters", "<div>\n" + mapsAndFilters, true},
		{"maps and filters without markup", mapsAndFilters, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patterns := classifyPatterns(tt.content)
			if patterns[domain.PatternMixedConcerns] != tt.want {
				t.Errorf("mixed concerns = %v, want %v", patterns[domain.PatternMixedConcerns], tt.want)
			}
		})
	}
}

func TestClassifyMultipleComponents(t *testing.T) {
	content := `export function Header() { return <div/>; }
export const Footer = () => <div/>;
export default function Page() { return <div/>; }
`
	patterns := classifyPatterns(content)
	if !patterns[domain.PatternMultipleComponents] {
		t.Error("three exported components must be flagged")
	}

	two := `export function Header() { return <div/>; }
export const Footer = () => <div/>;
`
	if classifyPatterns(two)[domain.PatternMultipleComponents] {
		t.Error("two exported components must not be flagged")
	}
}

func TestClassifyInlineErrorBoundary(t *testing.T) {
	content := `export function Page() { return <Boundary/>; }

class Boundary extends React.Component {
  componentDidCatch(err) { report(err); }
  render() { return this.props.children; }
}
`
	patterns := classifyPatterns(content)
	if !patterns[domain.PatternInlineErrorBoundary] {
		t.Error("class boundary beside a function component must be flagged")
	}

	classOnly := `class Boundary extends React.Component {
  componentDidCatch(err) { report(err); }
}
`
	if classifyPatterns(classOnly)[domain.PatternInlineErrorBoundary] {
		t.Error("a file that is entirely class-based must not be flagged")
	}
}

func TestClassifyDeepNesting(t *testing.T) {
	nested := strings.Repeat("<Wrapper><Inner\n", 5)
	if !classifyPatterns(nested)[domain.PatternDeepNesting] {
		t.Error("five adjacent opening-tag pairs must be flagged")
	}

	shallow := "<Wrapper><Inner\n"
	if classifyPatterns(shallow)[domain.PatternDeepNesting] {
		t.Error("one adjacent pair must not be flagged")
	}
}
