package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fescan-dev/fescan/internal/config"
	ignore "github.com/sabhiram/go-gitignore"
)

// FileHelper collects the source files fed to the heuristic analyzer
type FileHelper struct{}

// NewFileHelper creates a new FileHelper
func NewFileHelper() *FileHelper {
	return &FileHelper{}
}

// CollectSourceFiles walks root and returns every JavaScript/TypeScript
// file that is not excluded. Exclusions come from the configured
// patterns and, when enabled, the project's .gitignore.
func (h *FileHelper) CollectSourceFiles(root string, cfg *config.AnalysisConfig) ([]string, error) {
	var gi *ignore.GitIgnore
	if cfg.RespectGitignore {
		// A missing or unreadable .gitignore just disables the filter.
		gi, _ = ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	}

	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}

		if info.IsDir() {
			if path == root {
				return nil
			}
			if h.isExcludedDir(info.Name(), cfg.ExcludePatterns) {
				return filepath.SkipDir
			}
			if gi != nil && gi.MatchesPath(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if !h.isSourceFile(path) || h.isExcluded(path, cfg.ExcludePatterns) {
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// FileExists checks if a file exists
func (h *FileHelper) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// isSourceFile checks the extension against the analyzed languages
func (h *FileHelper) isSourceFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".js" || ext == ".ts" || ext == ".jsx" || ext == ".tsx" ||
		ext == ".mjs" || ext == ".cjs" || ext == ".mts" || ext == ".cts"
}

// isExcludedDir matches a directory name against the exclude patterns
func (h *FileHelper) isExcludedDir(name string, excludePatterns []string) bool {
	for _, pattern := range excludePatterns {
		if pattern == name {
			return true
		}
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

// isExcluded matches a file path against the exclude patterns
func (h *FileHelper) isExcluded(path string, excludePatterns []string) bool {
	base := filepath.Base(path)
	for _, pattern := range excludePatterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}
	return false
}
