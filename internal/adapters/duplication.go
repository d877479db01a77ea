package adapters

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/fescan-dev/fescan/domain"
)

// jscpd's console reporter prints clone reports as repeated text
// blocks:
//
//	Clone found (typescript):
//	 - src/a.ts [10:1 - 45:2] (35 lines, 210 tokens)
//	   src/b.ts [100:1 - 135:2]
//
// The stream may carry ANSI color escapes and, with some log levels,
// unrelated log lines between the header and its span lines.

// CloneBlock is one duplicate-code finding spanning two files
type CloneBlock struct {
	Language  string
	FirstFile string
	FirstSpan [2]int // start line, end line
	OtherFile string
	OtherSpan [2]int
	Lines     int
}

var cloneHeaderRe = regexp.MustCompile(`Clone found \(([^)]+)\)`)

// span lines: optional leading dash, file path, bracketed line:col range,
// optional "(N lines, ...)" suffix on the first span
var cloneSpanRe = regexp.MustCompile(`^\s*-?\s*(\S+)\s+\[(\d+):\d+\s*-\s*(\d+):\d+\](?:\s*\((\d+)\s+lines[^)]*\))?`)

// ParseDuplication converts raw jscpd console output into issues
func ParseDuplication(stdout, stderr string) ([]domain.Issue, Outcome) {
	text := StripANSI(stdout)
	lines := strings.Split(text, "\n")

	headerCount := 0
	for _, line := range lines {
		if cloneHeaderRe.MatchString(line) {
			headerCount++
		}
	}
	if headerCount == 0 {
		if strings.Contains(StripANSI(stderr), "Clone found") {
			// Some versions log to stderr
			return ParseDuplication(stderr, "")
		}
		return nil, Empty()
	}

	// Primary pattern: both span lines immediately follow the header
	blocks := scanCloneBlocks(lines, false)
	outcome := Structured("console")

	// Coarser per-block scan: allow intervening log lines
	if len(blocks) < headerCount {
		blocks = scanCloneBlocks(lines, true)
		outcome = TextFallback()
	}

	if len(blocks) == 0 {
		return []domain.Issue{syntheticIssue("jscpd", headerCount, text)}, TextFallback()
	}

	issues := make([]domain.Issue, 0, len(blocks))
	for _, block := range blocks {
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityWarning,
			File:     block.FirstFile,
			Line:     block.FirstSpan[0],
			Message: fmt.Sprintf("Duplicate code (%d lines): %s [%d-%d] and %s [%d-%d]",
				block.Lines,
				block.FirstFile, block.FirstSpan[0], block.FirstSpan[1],
				block.OtherFile, block.OtherSpan[0], block.OtherSpan[1]),
			RuleID:       "jscpd/clone",
			SuggestedFix: "extract the shared block into a common module",
		})
	}
	return issues, outcome
}

// scanCloneBlocks walks the lines collecting clone blocks. In strict
// mode the two span lines must directly follow their header; in loose
// mode any non-span lines between them are skipped.
func scanCloneBlocks(lines []string, loose bool) []CloneBlock {
	var blocks []CloneBlock

	for i := 0; i < len(lines); i++ {
		m := cloneHeaderRe.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		block := CloneBlock{Language: m[1]}

		spans := 0
		for j := i + 1; j < len(lines) && spans < 2; j++ {
			if cloneHeaderRe.MatchString(lines[j]) {
				break
			}
			sm := cloneSpanRe.FindStringSubmatch(lines[j])
			if sm == nil {
				if loose {
					continue
				}
				break
			}
			start, _ := strconv.Atoi(sm[2])
			end, _ := strconv.Atoi(sm[3])
			if spans == 0 {
				block.FirstFile = sm[1]
				block.FirstSpan = [2]int{start, end}
				if sm[4] != "" {
					block.Lines, _ = strconv.Atoi(sm[4])
				}
			} else {
				block.OtherFile = sm[1]
				block.OtherSpan = [2]int{start, end}
			}
			spans++
		}

		if spans == 2 {
			if block.Lines == 0 {
				block.Lines = block.FirstSpan[1] - block.FirstSpan[0]
			}
			blocks = append(blocks, block)
		}
	}

	return blocks
}
