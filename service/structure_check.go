package service

import (
	"fmt"
	"time"

	"github.com/fescan-dev/fescan/domain"
	"github.com/fescan-dev/fescan/internal/analyzer"
	"github.com/fescan-dev/fescan/internal/config"
	"github.com/fescan-dev/fescan/internal/constants"
)

// StructureCheckService runs the recursive folder structure analysis
type StructureCheckService struct {
	cfg *config.Config
}

// NewStructureCheckService creates a structure check service
func NewStructureCheckService(cfg *config.Config) *StructureCheckService {
	return &StructureCheckService{cfg: cfg}
}

// Run walks the tree under root and folds the per-folder analyses and
// the features-subtree scan into one check
func (s *StructureCheckService) Run(root string) domain.CheckResult {
	start := time.Now()

	analyses, err := analyzer.AnalyzeFolders(root, s.cfg.Analysis.ExcludePatterns, s.cfg.Analysis.RespectGitignore)
	if err != nil {
		issues := []domain.Issue{{
			Severity: domain.SeverityError,
			Message:  fmt.Sprintf("Failed to walk project tree: %v", err),
		}}
		return domain.CheckResult{
			Name:       constants.CheckStructure,
			Status:     domain.DeriveStatus(issues),
			DurationMs: time.Since(start).Milliseconds(),
			Issues:     issues,
			Summary:    "folder walk failed",
		}
	}

	issues := analyzer.FolderIssues(analyses, &s.cfg.Structure)
	issues = append(issues, analyzer.FeatureComponentIssues(root, &s.cfg.Structure)...)

	return domain.CheckResult{
		Name:       constants.CheckStructure,
		Status:     domain.DeriveStatus(issues),
		DurationMs: time.Since(start).Milliseconds(),
		Issues:     issues,
		Summary:    fmt.Sprintf("%d folders inspected, %s", len(analyses), summarizeIssues(issues)),
	}
}
