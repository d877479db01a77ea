package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fescan-dev/fescan/domain"
	"github.com/fescan-dev/fescan/internal/adapters"
	"github.com/fescan-dev/fescan/internal/config"
	"github.com/fescan-dev/fescan/internal/constants"
	"github.com/fescan-dev/fescan/internal/logging"
	"github.com/fescan-dev/fescan/internal/toolrunner"
)

// ToolCheckService runs the external-tool checks: each one invokes its
// upstream tool, normalizes the output through the matching adapter
// and derives the check status from the issues.
type ToolCheckService struct {
	runner toolrunner.Runner
	cfg    *config.Config
}

// NewToolCheckService creates a tool check service
func NewToolCheckService(runner toolrunner.Runner, cfg *config.Config) *ToolCheckService {
	return &ToolCheckService{runner: runner, cfg: cfg}
}

// parseFunc normalizes one tool invocation's raw output
type parseFunc func(stdout, stderr string) ([]domain.Issue, adapters.Outcome)

// RunLint executes the linter. With fix enabled an auto-fix directive
// is appended to the tool command; the lint adapter is the only one
// that supports it.
func (s *ToolCheckService) RunLint(ctx context.Context, dir string, fix bool) domain.CheckResult {
	argv := s.cfg.Checks.LintCommand
	if fix {
		argv = append(append([]string{}, argv...), "--fix")
	}
	return s.runTool(ctx, constants.CheckLint, argv, dir, adapters.ParseESLint)
}

// RunTypecheck executes the type checker. Its output is consumed as
// opaque diagnostic text.
func (s *ToolCheckService) RunTypecheck(ctx context.Context, dir string) domain.CheckResult {
	return s.runTool(ctx, constants.CheckTypecheck, s.cfg.Checks.TypecheckCommand, dir, adapters.ParseTypecheck)
}

// RunDeadCode executes the dead-code detector
func (s *ToolCheckService) RunDeadCode(ctx context.Context, dir string) domain.CheckResult {
	return s.runTool(ctx, constants.CheckDeadCode, s.cfg.Checks.DeadCodeCommand, dir, adapters.ParseDeadCode)
}

// RunDuplication executes the duplicate-code detector
func (s *ToolCheckService) RunDuplication(ctx context.Context, dir string) domain.CheckResult {
	return s.runTool(ctx, constants.CheckDuplication, s.cfg.Checks.DuplicationCommand, dir, adapters.ParseDuplication)
}

// RunCircular executes the circular-dependency detector
func (s *ToolCheckService) RunCircular(ctx context.Context, dir string) domain.CheckResult {
	return s.runTool(ctx, constants.CheckCircular, s.cfg.Checks.CircularCommand, dir, adapters.ParseCircular)
}

// RunBoundaries executes the architecture-boundary check. The check
// requires an external policy artifact; when it is absent the check is
// skipped with an informational issue instead of running.
func (s *ToolCheckService) RunBoundaries(ctx context.Context, dir string) domain.CheckResult {
	policyPath := filepath.Join(dir, s.cfg.Checks.BoundariesConfig)
	if _, err := os.Stat(policyPath); err != nil {
		return domain.CheckResult{
			Name:    constants.CheckBoundaries,
			Status:  domain.CheckStatusSkip,
			Summary: fmt.Sprintf("skipped: %s not found", s.cfg.Checks.BoundariesConfig),
			Issues: []domain.Issue{{
				Severity: domain.SeverityInfo,
				Message: fmt.Sprintf("Boundary check needs a %s policy file at the project root",
					s.cfg.Checks.BoundariesConfig),
			}},
		}
	}

	policy, err := adapters.LoadBoundariesPolicy(policyPath)
	if err != nil {
		logging.L().Warnw("boundaries policy unreadable, running without allowlist",
			"path", policyPath, "error", err)
		policy = nil
	}
	return s.runTool(ctx, constants.CheckBoundaries, s.cfg.Checks.BoundariesCommand, dir,
		func(stdout, stderr string) ([]domain.Issue, adapters.Outcome) {
			return adapters.ParseBoundaries(stdout, stderr, policy)
		})
}

// runTool invokes one external tool and normalizes its output. A
// non-zero exit code is expected when findings exist and is not an
// error; a failure to start the tool degrades to a fail-status result
// rather than aborting the run.
func (s *ToolCheckService) runTool(ctx context.Context, name string, argv []string, dir string, parse parseFunc) domain.CheckResult {
	if len(argv) == 0 {
		return domain.CheckResult{
			Name:    name,
			Status:  domain.CheckStatusSkip,
			Summary: "skipped: no tool command configured",
		}
	}

	start := time.Now()
	result, err := s.runner.Run(ctx, argv[0], argv[1:], dir)
	duration := time.Since(start).Milliseconds()
	if err != nil {
		logging.L().Warnw("tool invocation failed", "check", name, "tool", argv[0], "error", err)
		issues := []domain.Issue{{
			Severity: domain.SeverityError,
			Message:  fmt.Sprintf("Failed to run %s: %v", argv[0], err),
		}}
		return domain.CheckResult{
			Name:       name,
			Status:     domain.DeriveStatus(issues),
			DurationMs: duration,
			Issues:     issues,
			Summary:    "tool could not be run",
		}
	}

	issues, outcome := parse(result.Stdout, result.Stderr)
	check := domain.CheckResult{
		Name:       name,
		Status:     domain.DeriveStatus(issues),
		DurationMs: duration,
		Issues:     issues,
		Summary:    summarizeIssues(issues),
	}
	// Keep the raw text around when fidelity was reduced.
	if outcome.Tier != adapters.TierStructured && len(issues) > 0 {
		check.RawOutput = result.Stdout
	}
	return check
}

// summarizeIssues renders the one-line summary used in the report table
func summarizeIssues(issues []domain.Issue) string {
	errors, warnings, infos := 0, 0, 0
	for _, issue := range issues {
		switch issue.Severity {
		case domain.SeverityError:
			errors++
		case domain.SeverityWarning:
			warnings++
		default:
			infos++
		}
	}
	if errors == 0 && warnings == 0 && infos == 0 {
		return "no issues"
	}
	return fmt.Sprintf("%d errors, %d warnings, %d infos", errors, warnings, infos)
}

// SkippedCheck builds the result for a check deliberately not run
func SkippedCheck(name, reason string) domain.CheckResult {
	return domain.CheckResult{
		Name:    name,
		Status:  domain.CheckStatusSkip,
		Summary: reason,
	}
}

// GuardCheck runs one check behind a recover boundary so an unexpected
// panic degrades to a failing result instead of killing the run.
func GuardCheck(name string, run func() domain.CheckResult) (result domain.CheckResult) {
	defer func() {
		if r := recover(); r != nil {
			logging.L().Errorw("check panicked", "check", name, "panic", r)
			issues := []domain.Issue{{
				Severity: domain.SeverityError,
				Message:  fmt.Sprintf("Check crashed: %v", r),
			}}
			result = domain.CheckResult{
				Name:    name,
				Status:  domain.DeriveStatus(issues),
				Issues:  issues,
				Summary: "check crashed",
			}
		}
	}()
	return run()
}
