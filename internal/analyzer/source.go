package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fescan-dev/fescan/domain"
	"github.com/fescan-dev/fescan/internal/config"
	"github.com/fescan-dev/fescan/internal/constants"
)

// Marker patterns are matched independently per category. The generic
// pattern matches every use<Capitalized> call, so the named categories
// are a subset of it; the "other custom" count is the difference.
var (
	markerRes = map[domain.MarkerKind]*regexp.Regexp{
		domain.MarkerState:    regexp.MustCompile(`\buseState\s*[(<]`),
		domain.MarkerEffect:   regexp.MustCompile(`\buseEffect\s*\(`),
		domain.MarkerMemo:     regexp.MustCompile(`\buseMemo\s*\(`),
		domain.MarkerCallback: regexp.MustCompile(`\buseCallback\s*\(`),
		domain.MarkerRef:      regexp.MustCompile(`\buseRef\s*[(<]`),
		domain.MarkerQuery:    regexp.MustCompile(`\buseQuery\s*[(<]`),
		domain.MarkerMutation: regexp.MustCompile(`\buseMutation\s*[(<]`),
	}
	genericMarkerRe = regexp.MustCompile(`\buse[A-Z]\w*\s*[(<]`)

	exportedComponentRe = regexp.MustCompile(`(?m)^export\s+(?:default\s+)?(?:function|const)\s+[A-Z]\w*`)
	classBoundaryRe     = regexp.MustCompile(`class\s+\w+\s+extends\s+(?:React\.)?(?:Pure)?Component`)
	didCatchRe          = regexp.MustCompile(`\bcomponentDidCatch\b|\bgetDerivedStateFromError\b`)
	adjacentTagsRe      = regexp.MustCompile(`<[A-Za-z][\w.]*[^>\n]*>\s*<[A-Za-z]`)
	jsxTagRe            = regexp.MustCompile(`<[A-Za-z][\w.]*(?:\s|>|/)`)
	mapCallRe           = regexp.MustCompile(`\.map\s*\(`)
	filterCallRe        = regexp.MustCompile(`\.filter\s*\(`)
	ifStmtRe            = regexp.MustCompile(`\bif\s*\(`)
)

// AnalyzeFile classifies one source file's raw text. It never fails:
// unreadable files are the caller's concern, empty text yields an
// empty analysis.
func AnalyzeFile(path string, content string, maxFunctionLines int) *domain.FileAnalysis {
	lines := strings.Split(content, "\n")

	analysis := &domain.FileAnalysis{
		Path:          path,
		LineCount:     len(lines),
		MarkerCounts:  countMarkers(content),
		Patterns:      classifyPatterns(content),
		LongFunctions: ScanFunctions(lines, maxFunctionLines),
	}
	return analysis
}

func countMarkers(content string) map[domain.MarkerKind]int {
	counts := make(map[domain.MarkerKind]int, len(markerRes)+1)
	namedTotal := 0
	for kind, re := range markerRes {
		n := len(re.FindAllStringIndex(content, -1))
		counts[kind] = n
		namedTotal += n
	}
	generic := len(genericMarkerRe.FindAllStringIndex(content, -1))
	// Can only go negative if the generic pattern undercounts the
	// named ones, which the patterns above rule out.
	counts[domain.MarkerOtherCustom] = generic - namedTotal
	return counts
}

func classifyPatterns(content string) map[domain.PatternKind]bool {
	patterns := make(map[domain.PatternKind]bool)

	// A class error boundary in a file that is otherwise built from
	// function components.
	if classBoundaryRe.MatchString(content) && didCatchRe.MatchString(content) {
		if m := exportedComponentRe.FindAllString(content, -1); len(m) > 0 {
			patterns[domain.PatternInlineErrorBoundary] = true
		}
	}

	if len(exportedComponentRe.FindAllString(content, -1)) > constants.MaxExportedComponents {
		patterns[domain.PatternMultipleComponents] = true
	}

	if len(adjacentTagsRe.FindAllStringIndex(content, -1)) > constants.DeepNestingThreshold {
		patterns[domain.PatternDeepNesting] = true
	}

	// Precedence here is (markup AND maps AND filters) OR ifs: heavy
	// branching flags the file even without any tag-like construct.
	// Changing the grouping changes which files get flagged, so it
	// stays as is.
	hasJSX := jsxTagRe.MatchString(content)
	maps := len(mapCallRe.FindAllStringIndex(content, -1))
	filters := len(filterCallRe.FindAllStringIndex(content, -1))
	ifs := len(ifStmtRe.FindAllStringIndex(content, -1))
	if (hasJSX && maps > 3 && filters > 2) || ifs > 10 {
		patterns[domain.PatternMixedConcerns] = true
	}

	return patterns
}

// FileIssues turns one file's analysis into normalized issues. Each
// threshold breach emits exactly one issue; the error threshold
// supersedes the warning threshold for the same measure.
func FileIssues(a *domain.FileAnalysis, cfg *config.SourceConfig) []domain.Issue {
	var issues []domain.Issue

	switch {
	case a.LineCount >= cfg.FileLinesError:
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityError,
			File:     a.Path,
			Message: fmt.Sprintf("File has %d lines (limit %d): split it into smaller modules",
				a.LineCount, cfg.FileLinesError),
			RuleID:       "source/file-size",
			SuggestedFix: "extract cohesive sections into separate files",
		})
	case a.LineCount >= cfg.FileLinesWarn:
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityWarning,
			File:     a.Path,
			Message: fmt.Sprintf("File has %d lines (recommended max %d)",
				a.LineCount, cfg.FileLinesWarn),
			RuleID: "source/file-size",
		})
	}

	total := a.TotalMarkers()
	switch {
	case total >= cfg.MarkerTotalError:
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityError,
			File:     a.Path,
			Message: fmt.Sprintf("Component uses %d hooks (limit %d): extract custom hooks or split the component",
				total, cfg.MarkerTotalError),
			RuleID: "source/marker-total",
		})
	case total >= cfg.MarkerTotalWarn:
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityWarning,
			File:     a.Path,
			Message: fmt.Sprintf("Component uses %d hooks (recommended max %d)",
				total, cfg.MarkerTotalWarn),
			RuleID: "source/marker-total",
		})
	}

	if effects := a.MarkerCounts[domain.MarkerEffect]; effects >= cfg.EffectMarkersWarn {
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityWarning,
			File:     a.Path,
			Message: fmt.Sprintf("Component has %d effects: consider consolidating related effects or moving logic into custom hooks",
				effects),
			RuleID: "source/effects",
		})
	}

	if mc := a.MarkerCounts[domain.MarkerMemo] + a.MarkerCounts[domain.MarkerCallback]; mc >= cfg.MemoCallbackWarn {
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityWarning,
			File:     a.Path,
			Message: fmt.Sprintf("Component has %d memo/callback wrappers: heavy memoization often signals a component doing too much",
				mc),
			RuleID: "source/memo-callback",
		})
	}

	for _, fn := range a.LongFunctions {
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityWarning,
			File:     a.Path,
			Line:     fn.StartLine,
			Message: fmt.Sprintf("Function '%s' spans %d lines (recommended max %d)",
				fn.Name, fn.LengthInLines, cfg.MaxFunctionLines),
			RuleID: "source/long-function",
		})
	}

	issues = append(issues, patternIssues(a)...)
	return issues
}

// patternIssues renders the anti-pattern flags in a fixed order so
// repeated runs produce identical reports.

func patternIssues(a *domain.FileAnalysis) []domain.Issue {
	var issues []domain.Issue
	if a.Patterns[domain.PatternInlineErrorBoundary] {
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityInfo,
			File:     a.Path,
			Message:  "Inline class error boundary in a function-component file: move it to a shared module",
			RuleID:   "source/inline-error-boundary",
		})
	}
	if a.Patterns[domain.PatternMultipleComponents] {
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityWarning,
			File:     a.Path,
			Message:  "More than two exported components in one file: give each component its own file",
			RuleID:   "source/multiple-components",
		})
	}
	if a.Patterns[domain.PatternDeepNesting] {
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityWarning,
			File:     a.Path,
			Message:  "Deeply nested markup: extract intermediate components",
			RuleID:   "source/deep-nesting",
		})
	}
	if a.Patterns[domain.PatternMixedConcerns] {
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityWarning,
			File:     a.Path,
			Message:  "Rendering mixed with heavy data transformation or branching: move the logic into hooks or helpers",
			RuleID:   "source/mixed-concerns",
		})
	}
	return issues
}
