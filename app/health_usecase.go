package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fescan-dev/fescan/domain"
	"github.com/fescan-dev/fescan/internal/config"
	"github.com/fescan-dev/fescan/internal/constants"
	"github.com/fescan-dev/fescan/internal/logging"
	"github.com/fescan-dev/fescan/internal/report"
	"github.com/fescan-dev/fescan/internal/toolrunner"
	"github.com/fescan-dev/fescan/service"
)

// HealthUseCase drives one full pipeline run: every check executes
// sequentially and to completion before the next starts, each behind
// its own recover boundary, so one failing check never silences the
// others. There is no per-check timeout; a hung tool blocks the run.
type HealthUseCase struct {
	cfg        *config.Config
	tools      *service.ToolCheckService
	source     *service.SourceCheckService
	structure  *service.StructureCheckService
	fileHelper *FileHelper
	progress   domain.ProgressManager
}

// NewHealthUseCase wires the use case from its collaborators
func NewHealthUseCase(cfg *config.Config, runner toolrunner.Runner, progress domain.ProgressManager) *HealthUseCase {
	return &HealthUseCase{
		cfg:        cfg,
		tools:      service.NewToolCheckService(runner, cfg),
		source:     service.NewSourceCheckService(cfg, progress),
		structure:  service.NewStructureCheckService(cfg),
		fileHelper: NewFileHelper(),
		progress:   progress,
	}
}

// Execute runs all checks and returns the aggregated report with its
// prioritized action items. The returned error is non-nil only for
// failures that prevent producing a report at all.
func (uc *HealthUseCase) Execute(ctx context.Context, req domain.HealthRequest) (*domain.HealthReport, []string, error) {
	startedAt := time.Now()
	dir := req.Path
	if dir == "" {
		dir = "."
	}

	checks := []domain.CheckResult{
		service.GuardCheck(constants.CheckLint, func() domain.CheckResult {
			return uc.tools.RunLint(ctx, dir, req.Fix)
		}),
		service.GuardCheck(constants.CheckTypecheck, func() domain.CheckResult {
			return uc.tools.RunTypecheck(ctx, dir)
		}),
		service.GuardCheck(constants.CheckDeadCode, func() domain.CheckResult {
			return uc.tools.RunDeadCode(ctx, dir)
		}),
	}

	if req.Quick {
		checks = append(checks,
			service.SkippedCheck(constants.CheckDuplication, constants.SkipReasonQuickMode),
			service.SkippedCheck(constants.CheckCircular, constants.SkipReasonQuickMode),
			service.SkippedCheck(constants.CheckBoundaries, constants.SkipReasonQuickMode),
		)
	} else {
		checks = append(checks,
			service.GuardCheck(constants.CheckDuplication, func() domain.CheckResult {
				return uc.tools.RunDuplication(ctx, dir)
			}),
			service.GuardCheck(constants.CheckCircular, func() domain.CheckResult {
				return uc.tools.RunCircular(ctx, dir)
			}),
			service.GuardCheck(constants.CheckBoundaries, func() domain.CheckResult {
				return uc.tools.RunBoundaries(ctx, dir)
			}),
		)
	}

	checks = append(checks,
		service.GuardCheck(constants.CheckSource, func() domain.CheckResult {
			return uc.runSourceCheck(ctx, dir)
		}),
		service.GuardCheck(constants.CheckStructure, func() domain.CheckResult {
			return uc.structure.Run(dir)
		}),
	)

	healthReport := service.Aggregate(checks, startedAt, time.Since(startedAt))
	actionItems := service.BuildActionItems(healthReport)

	outputDir := req.OutputDir
	if outputDir == "" {
		outputDir = filepath.Join(dir, uc.cfg.Output.Directory)
	}
	if err := uc.writeArtifacts(healthReport, actionItems, outputDir); err != nil {
		return nil, nil, err
	}

	logging.L().Debugw("run complete",
		"run_id", healthReport.RunID,
		"grade", healthReport.Grade,
		"errors", healthReport.Totals.Errors,
		"warnings", healthReport.Totals.Warnings)

	return healthReport, actionItems, nil
}

func (uc *HealthUseCase) runSourceCheck(ctx context.Context, dir string) domain.CheckResult {
	files, err := uc.fileHelper.CollectSourceFiles(dir, &uc.cfg.Analysis)
	if err != nil {
		issues := []domain.Issue{{
			Severity: domain.SeverityError,
			Message:  fmt.Sprintf("Failed to collect source files: %v", err),
		}}
		return domain.CheckResult{
			Name:    constants.CheckSource,
			Status:  domain.DeriveStatus(issues),
			Issues:  issues,
			Summary: "file collection failed",
		}
	}
	return uc.source.Run(ctx, files)
}

// writeArtifacts overwrites the two report files. This is the only
// failure that aborts a run.
func (uc *HealthUseCase) writeArtifacts(r *domain.HealthReport, actionItems []string, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	markdown := report.RenderMarkdown(r, actionItems)
	markdownPath := filepath.Join(outputDir, constants.MarkdownReportName)
	if err := os.WriteFile(markdownPath, []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", markdownPath, err)
	}

	compact, err := report.MarshalCompact(r)
	if err != nil {
		return fmt.Errorf("failed to encode compact report: %w", err)
	}
	compactPath := filepath.Join(outputDir, constants.CompactReportName)
	if err := os.WriteFile(compactPath, compact, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", compactPath, err)
	}
	return nil
}
