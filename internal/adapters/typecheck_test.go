package adapters

import (
	"testing"

	"github.com/fescan-dev/fescan/domain"
)

func TestParseTypecheckDiagnostics(t *testing.T) {
	stdout := `src/App.tsx(12,5): error TS2322: Type 'string' is not assignable to type 'number'.
src/api/client.ts(40,13): error TS2345: Argument of type 'Foo' is not assignable.
`

	issues, outcome := ParseTypecheck(stdout, "")
	if outcome.Tier != TierStructured {
		t.Fatalf("expected structured outcome, got %v", outcome.Tier)
	}
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(issues))
	}
	if issues[0].File != "src/App.tsx" || issues[0].Line != 12 || issues[0].RuleID != "TS2322" {
		t.Errorf("unexpected issue: %+v", issues[0])
	}
	if issues[0].Severity != domain.SeverityError {
		t.Errorf("tsc diagnostics are errors, got %v", issues[0].Severity)
	}
}

func TestParseTypecheckReadsStderrWhenStdoutEmpty(t *testing.T) {
	stderr := "src/App.tsx(3,1): error TS1005: ';' expected.\n"

	issues, _ := ParseTypecheck("", stderr)
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue from stderr, got %d", len(issues))
	}
}

func TestParseTypecheckLooseFallback(t *testing.T) {
	stdout := "[build] step failed -- error TS2304: Cannot find name 'foo'\n"

	issues, outcome := ParseTypecheck(stdout, "")
	if outcome.Tier != TierTextFallback {
		t.Fatalf("expected text fallback, got %v", outcome.Tier)
	}
	if len(issues) != 1 || issues[0].Severity != domain.SeverityError {
		t.Fatalf("unexpected issues: %+v", issues)
	}
}

func TestParseTypecheckCleanOutput(t *testing.T) {
	issues, outcome := ParseTypecheck("", "")
	if len(issues) != 0 || outcome.Tier != TierEmpty {
		t.Errorf("clean run misreported: %d issues, tier %v", len(issues), outcome.Tier)
	}
}
