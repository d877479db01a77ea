package service

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/fescan-dev/fescan/domain"
	"github.com/fescan-dev/fescan/internal/analyzer"
	"github.com/fescan-dev/fescan/internal/config"
	"github.com/fescan-dev/fescan/internal/constants"
	"golang.org/x/sync/errgroup"
)

// SourceCheckService runs the heuristic per-file source analysis.
// Files are independent, so they are analyzed in parallel; each file
// produces an immutable analysis that a final fold step combines, so
// no state is shared across files.
type SourceCheckService struct {
	cfg      *config.Config
	progress domain.ProgressManager
}

// NewSourceCheckService creates a source check service
func NewSourceCheckService(cfg *config.Config, progress domain.ProgressManager) *SourceCheckService {
	return &SourceCheckService{cfg: cfg, progress: progress}
}

// Run analyzes the given files and folds the results into one check.
// Unreadable files are skipped without emitting an issue.
func (s *SourceCheckService) Run(ctx context.Context, files []string) domain.CheckResult {
	start := time.Now()

	task := s.progress.StartTask("Analyzing source files", len(files))
	defer task.Complete()

	analyses := make([]*domain.FileAnalysis, len(files))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			default:
			}

			content, err := os.ReadFile(path)
			if err == nil {
				analyses[i] = analyzer.AnalyzeFile(path, string(content), s.cfg.Source.MaxFunctionLines)
			}
			task.Increment(1)
			return nil
		})
	}
	_ = g.Wait()

	// Fold step: issue emission stays in file order regardless of
	// which goroutine finished first.
	var issues []domain.Issue
	analyzed := 0
	for _, a := range analyses {
		if a == nil {
			continue
		}
		analyzed++
		issues = append(issues, analyzer.FileIssues(a, &s.cfg.Source)...)
	}

	return domain.CheckResult{
		Name:       constants.CheckSource,
		Status:     domain.DeriveStatus(issues),
		DurationMs: time.Since(start).Milliseconds(),
		Issues:     issues,
		Summary:    fmt.Sprintf("%d files analyzed, %s", analyzed, summarizeIssues(issues)),
	}
}
