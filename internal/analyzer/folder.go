package analyzer

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/fescan-dev/fescan/domain"
	"github.com/fescan-dev/fescan/internal/config"
	"github.com/fescan-dev/fescan/internal/constants"
	ignore "github.com/sabhiram/go-gitignore"
)

var (
	componentFileRe = regexp.MustCompile(`^[A-Z]\w*\.(?:tsx|jsx)$`)
	utilityFileRe   = regexp.MustCompile(`(?i)(?:util|helper|service)s?\.\w+$`)
	hookFileRe      = regexp.MustCompile(`^use[A-Z]\w*\.\w+$`)
	indexFileRe     = regexp.MustCompile(`^index\.(?:ts|tsx|js|jsx)$`)
)

// AnalyzeFolders walks the tree under base and returns one analysis
// per non-root directory. Excluded directory names and, when enabled,
// directories matching the project's .gitignore are not descended
// into. Depth is the number of path separators between the directory
// and base.
func AnalyzeFolders(base string, excludeDirs []string, respectGitignore bool) ([]domain.FolderAnalysis, error) {
	excluded := make(map[string]bool, len(excludeDirs))
	for _, name := range excludeDirs {
		if !strings.ContainsAny(name, "*?[") {
			excluded[name] = true
		}
	}

	var gi *ignore.GitIgnore
	if respectGitignore {
		// A missing or unreadable .gitignore just disables the filter.
		gi, _ = ignore.CompileIgnoreFile(filepath.Join(base, ".gitignore"))
	}

	var analyses []domain.FolderAnalysis
	err := filepath.WalkDir(base, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal.
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if excluded[d.Name()] {
			return filepath.SkipDir
		}
		if path == base {
			return nil
		}
		if gi != nil {
			if rel, relErr := filepath.Rel(base, path); relErr == nil && gi.MatchesPath(rel) {
				return filepath.SkipDir
			}
		}

		analysis, err := analyzeOneFolder(base, path)
		if err != nil {
			return nil
		}
		analyses = append(analyses, *analysis)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", base, err)
	}

	sort.Slice(analyses, func(i, j int) bool { return analyses[i].Path < analyses[j].Path })
	return analyses, nil
}

func analyzeOneFolder(base, path string) (*domain.FolderAnalysis, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	rel, err := filepath.Rel(base, path)
	if err != nil {
		rel = path
	}
	depth := strings.Count(rel, string(filepath.Separator)) + 1

	analysis := &domain.FolderAnalysis{
		Path:  rel,
		Depth: depth,
	}

	hasComponents := false
	hasUtilities := false
	for _, entry := range entries {
		if entry.IsDir() {
			analysis.SubdirCount++
			continue
		}
		analysis.FileCount++
		name := entry.Name()
		if indexFileRe.MatchString(name) {
			analysis.HasIndexFile = true
		}
		if componentFileRe.MatchString(name) {
			hasComponents = true
		}
		if utilityFileRe.MatchString(name) || hookFileRe.MatchString(name) {
			hasUtilities = true
		}
	}

	// Flat folders blending components with utilities or hooks are
	// flagged; folders that subdivide are not.
	analysis.MixedContentFlag = hasComponents && hasUtilities &&
		analysis.SubdirCount == 0 &&
		analysis.FileCount > constants.MixedContentMinFiles

	return analysis, nil
}

// FolderIssues turns folder analyses into normalized issues. Depth and
// population are judged independently; the error threshold supersedes
// the warning threshold for the same measure.
func FolderIssues(analyses []domain.FolderAnalysis, cfg *config.StructureConfig) []domain.Issue {
	var issues []domain.Issue
	for _, a := range analyses {
		switch {
		case a.Depth >= cfg.DepthError:
			issues = append(issues, domain.Issue{
				Severity: domain.SeverityError,
				File:     a.Path,
				Message: fmt.Sprintf("Folder nested %d levels deep (limit %d): flatten the hierarchy",
					a.Depth, cfg.DepthError),
				RuleID: "structure/depth",
			})
		case a.Depth >= cfg.DepthWarn:
			issues = append(issues, domain.Issue{
				Severity: domain.SeverityWarning,
				File:     a.Path,
				Message: fmt.Sprintf("Folder nested %d levels deep (recommended max %d)",
					a.Depth, cfg.DepthWarn),
				RuleID: "structure/depth",
			})
		}

		switch {
		case a.FileCount >= cfg.FilesError:
			issues = append(issues, domain.Issue{
				Severity: domain.SeverityError,
				File:     a.Path,
				Message: fmt.Sprintf("Folder holds %d files (limit %d): group them into subfolders",
					a.FileCount, cfg.FilesError),
				RuleID: "structure/crowded",
			})
		case a.FileCount >= cfg.FilesWarn:
			issues = append(issues, domain.Issue{
				Severity: domain.SeverityWarning,
				File:     a.Path,
				Message: fmt.Sprintf("Folder holds %d files (recommended max %d)",
					a.FileCount, cfg.FilesWarn),
				RuleID: "structure/crowded",
			})
		}

		if a.MixedContentFlag {
			issues = append(issues, domain.Issue{
				Severity: domain.SeverityWarning,
				File:     a.Path,
				Message:  "Folder mixes components with utilities or hooks: separate them into subfolders",
				RuleID:   "structure/mixed-content",
			})
		}
	}
	return issues
}

// FeatureComponentIssues inspects the configured features subtree: a
// feature's components folder holding more than the allowed number of
// component files needs further sub-grouping.
func FeatureComponentIssues(base string, cfg *config.StructureConfig) []domain.Issue {
	featuresRoot := filepath.Join(base, cfg.FeaturesDir)
	features, err := os.ReadDir(featuresRoot)
	if err != nil {
		// No features subtree is not a finding.
		return nil
	}

	var issues []domain.Issue
	for _, feature := range features {
		if !feature.IsDir() {
			continue
		}
		componentsDir := filepath.Join(featuresRoot, feature.Name(), "components")
		entries, err := os.ReadDir(componentsDir)
		if err != nil {
			continue
		}

		count := 0
		for _, entry := range entries {
			if !entry.IsDir() && componentFileRe.MatchString(entry.Name()) {
				count++
			}
		}
		if count > cfg.FeatureComponentsMax {
			rel, relErr := filepath.Rel(base, componentsDir)
			if relErr != nil {
				rel = componentsDir
			}
			issues = append(issues, domain.Issue{
				Severity: domain.SeverityWarning,
				File:     rel,
				Message: fmt.Sprintf("Feature '%s' has %d components (recommended max %d): split it into sub-features",
					feature.Name(), count, cfg.FeatureComponentsMax),
				RuleID: "structure/feature-components",
			})
		}
	}
	return issues
}
