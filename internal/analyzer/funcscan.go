package analyzer

import (
	"regexp"
	"strings"

	"github.com/fescan-dev/fescan/domain"
)

// funcScanState is the state of the function-length tracker.
type funcScanState int

const (
	stateIdle funcScanState = iota
	stateInFunction
)

// Function introduction patterns: a named declaration, an arrow
// assigned to a const, or a memoized wrapper around either.
var (
	namedFuncRe = regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s+([A-Za-z_$][\w$]*)`)
	arrowFuncRe = regexp.MustCompile(`^\s*(?:export\s+)?const\s+([A-Za-z_$][\w$]*)\s*(?::[^=]+)?=\s*(?:async\s*)?\(`)
	memoFuncRe  = regexp.MustCompile(`^\s*(?:export\s+)?const\s+([A-Za-z_$][\w$]*)\s*=\s*(?:React\.)?(?:memo|forwardRef)\s*\(`)
)

// FuncScanner tracks one function body at a time over a line stream.
// A function-introduction line seen while already inside a body is
// ignored, so only the outermost function is measured. That means a
// short outer function hiding a long inner one is under-reported.
// Intentional simplification; callers rely on it being cheap, not
// exact.
type FuncScanner struct {
	maxLines int

	state      funcScanState
	name       string
	startLine  int
	braceDepth int

	long []domain.LongFunction
}

// NewFuncScanner returns a scanner reporting functions whose line span
// strictly exceeds maxLines.
func NewFuncScanner(maxLines int) *FuncScanner {
	return &FuncScanner{maxLines: maxLines, state: stateIdle}
}

// Feed advances the state machine by one line. lineNo is 1-based.
func (s *FuncScanner) Feed(lineNo int, line string) {
	switch s.state {
	case stateIdle:
		name, ok := matchFunctionIntro(line)
		if !ok {
			return
		}
		s.state = stateInFunction
		s.name = name
		s.startLine = lineNo
		s.braceDepth = 0
		s.braceDepth += strings.Count(line, "{") - strings.Count(line, "}")

	case stateInFunction:
		s.braceDepth += strings.Count(line, "{") - strings.Count(line, "}")
		if s.braceDepth <= 0 && lineNo > s.startLine {
			span := lineNo - s.startLine
			if span > s.maxLines {
				s.long = append(s.long, domain.LongFunction{
					Name:          s.name,
					StartLine:     s.startLine,
					LengthInLines: span,
				})
			}
			s.state = stateIdle
		}
	}
}

// LongFunctions returns the functions recorded so far, in file order.
func (s *FuncScanner) LongFunctions() []domain.LongFunction {
	return s.long
}

func matchFunctionIntro(line string) (string, bool) {
	if m := namedFuncRe.FindStringSubmatch(line); m != nil {
		return m[1], true
	}
	if m := memoFuncRe.FindStringSubmatch(line); m != nil {
		return m[1], true
	}
	if m := arrowFuncRe.FindStringSubmatch(line); m != nil {
		return m[1], true
	}
	return "", false
}

// ScanFunctions runs the tracker over a whole file and returns the
// functions longer than maxLines.
func ScanFunctions(lines []string, maxLines int) []domain.LongFunction {
	scanner := NewFuncScanner(maxLines)
	for i, line := range lines {
		scanner.Feed(i+1, line)
	}
	return scanner.LongFunctions()
}
