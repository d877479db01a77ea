// Package adapters converts the raw output of each upstream analysis
// tool into the canonical issue model. Every adapter is a pure
// function over captured output text and implements the same fallback
// chain: structured parse, then a line-oriented text scan, then a
// single synthetic summary issue when the raw text shows evidence of
// findings that neither tier could extract. A parse failure is never
// allowed to masquerade as a clean result.
package adapters

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fescan-dev/fescan/domain"
)

// Tier identifies which strategy of the fallback chain produced the
// adapter's issues
type Tier string

const (
	// TierStructured means the tool's documented structured format
	// parsed cleanly
	TierStructured Tier = "structured"

	// TierTextFallback means issues were synthesized from a
	// line-oriented scan with reduced fidelity
	TierTextFallback Tier = "text_fallback"

	// TierEmpty means no findings were extracted and the raw text
	// carries no evidence of any
	TierEmpty Tier = "empty"
)

// Outcome is the tagged result of one adapter's parse attempt
type Outcome struct {
	Tier Tier

	// SchemaVersion names the structured shape that matched, for
	// tools with more than one known major-version schema
	SchemaVersion string
}

// Structured builds a structured outcome for the given schema version
func Structured(schemaVersion string) Outcome {
	return Outcome{Tier: TierStructured, SchemaVersion: schemaVersion}
}

// TextFallback builds a text-fallback outcome
func TextFallback() Outcome {
	return Outcome{Tier: TierTextFallback}
}

// Empty builds an empty outcome
func Empty() Outcome {
	return Outcome{Tier: TierEmpty}
}

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

// StripANSI removes ANSI color escape sequences from tool output.
// Several tools color their console reporters even when piped.
func StripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

// syntheticIssue builds the single summary issue emitted when marker
// patterns prove findings exist but neither parse tier extracted them
func syntheticIssue(tool string, markerCount int, raw string) domain.Issue {
	excerpt := strings.TrimSpace(raw)
	if len(excerpt) > 200 {
		excerpt = excerpt[:200] + "..."
	}
	return domain.Issue{
		Severity: domain.SeverityWarning,
		Message: fmt.Sprintf("%s reported %d finding marker(s) but its output could not be parsed; raw output: %s",
			tool, markerCount, excerpt),
		RuleID: tool + "/unparsed-output",
	}
}

// nonEmptyLines splits text into lines, dropping blank ones
func nonEmptyLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
