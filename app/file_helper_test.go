package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fescan-dev/fescan/internal/config"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestCollectSourceFilesFiltersByExtension(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/App.tsx":   "export const App = () => null;",
		"src/util.ts":   "export const u = 1;",
		"README.md":     "docs",
		"styles.css":    "body {}",
		"src/legacy.js": "var x;",
	})

	helper := NewFileHelper()
	cfg := config.DefaultConfig().Analysis
	files, err := helper.CollectSourceFiles(root, &cfg)
	if err != nil {
		t.Fatalf("CollectSourceFiles() error: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 source files, got %d: %v", len(files), files)
	}
	for _, f := range files {
		if strings.HasSuffix(f, ".md") || strings.HasSuffix(f, ".css") {
			t.Errorf("non-source file collected: %s", f)
		}
	}
}

func TestCollectSourceFilesSkipsExcludedDirs(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/App.tsx":               "x",
		"node_modules/pkg/index.js": "x",
		"dist/bundle.js":            "x",
		"src/app.min.js":            "x",
	})

	helper := NewFileHelper()
	cfg := config.DefaultConfig().Analysis
	files, err := helper.CollectSourceFiles(root, &cfg)
	if err != nil {
		t.Fatalf("CollectSourceFiles() error: %v", err)
	}
	if len(files) != 1 || !strings.HasSuffix(files[0], "App.tsx") {
		t.Errorf("exclusions not applied: %v", files)
	}
}

func TestCollectSourceFilesRespectsGitignore(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".gitignore":       "generated/\n",
		"src/App.tsx":      "x",
		"generated/api.ts": "x",
	})

	helper := NewFileHelper()
	cfg := config.DefaultConfig().Analysis
	files, err := helper.CollectSourceFiles(root, &cfg)
	if err != nil {
		t.Fatalf("CollectSourceFiles() error: %v", err)
	}
	for _, f := range files {
		if strings.Contains(f, "generated") {
			t.Errorf("gitignored file collected: %s", f)
		}
	}

	cfg.RespectGitignore = false
	files, err = helper.CollectSourceFiles(root, &cfg)
	if err != nil {
		t.Fatalf("CollectSourceFiles() error: %v", err)
	}
	found := false
	for _, f := range files {
		if strings.Contains(f, "generated") {
			found = true
		}
	}
	if !found {
		t.Error("gitignore must be inert when disabled")
	}
}
