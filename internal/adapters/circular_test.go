package adapters

import (
	"strings"
	"testing"

	"github.com/fescan-dev/fescan/domain"
)

func TestParseCircularStructured(t *testing.T) {
	stdout := `[["src/a.ts", "src/b.ts"], ["src/x.ts", "src/y.ts", "src/z.ts"]]`

	issues, outcome := ParseCircular(stdout, "")
	if outcome.Tier != TierStructured {
		t.Fatalf("expected structured outcome, got %v", outcome.Tier)
	}
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(issues))
	}
	if issues[0].Severity != domain.SeverityError {
		t.Errorf("cycles are errors, got %v", issues[0].Severity)
	}
	if !strings.Contains(issues[0].Message, "src/a.ts -> src/b.ts -> src/a.ts") {
		t.Errorf("cycle path not closed: %q", issues[0].Message)
	}
}

func TestParseCircularNoCycles(t *testing.T) {
	issues, outcome := ParseCircular("[]", "")
	if len(issues) != 0 || outcome.Tier != TierStructured {
		t.Errorf("empty cycle list must be clean structured, got %d issues, tier %v",
			len(issues), outcome.Tier)
	}
}

func TestParseCircularTextFallback(t *testing.T) {
	stdout := `Found 1 circular dependency!

1) src/a.ts > src/b.ts > src/a.ts
`

	issues, outcome := ParseCircular(stdout, "")
	if outcome.Tier != TierTextFallback {
		t.Fatalf("expected text fallback, got %v", outcome.Tier)
	}
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(issues))
	}
	if issues[0].File != "src/a.ts" {
		t.Errorf("cycle origin lost: %+v", issues[0])
	}
}

func TestParseCircularSyntheticOnEvidence(t *testing.T) {
	stdout := "madge blew up: circular structure detected somewhere"

	issues, _ := ParseCircular(stdout, "")
	if len(issues) != 1 || issues[0].RuleID != "madge/unparsed-output" {
		t.Fatalf("expected one synthetic issue, got %+v", issues)
	}
}
