package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Source.FileLinesWarn != 300 || cfg.Source.FileLinesError != 500 {
		t.Errorf("unexpected file line thresholds: %d/%d",
			cfg.Source.FileLinesWarn, cfg.Source.FileLinesError)
	}
	if cfg.Source.MaxFunctionLines != 80 {
		t.Errorf("unexpected max function lines: %d", cfg.Source.MaxFunctionLines)
	}
	if cfg.Structure.FilesError != 25 {
		t.Errorf("unexpected folder files error threshold: %d", cfg.Structure.FilesError)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestLoadConfigFromYAMLFile(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "fescan.yaml")
	content := `source:
  file_lines_warn: 200
  file_lines_error: 400
structure:
  files_warn: 10
  files_error: 20
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config fixture: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Source.FileLinesWarn != 200 || cfg.Source.FileLinesError != 400 {
		t.Errorf("file thresholds not applied: %d/%d",
			cfg.Source.FileLinesWarn, cfg.Source.FileLinesError)
	}
	// Untouched sections keep defaults
	if cfg.Source.MaxFunctionLines != 80 {
		t.Errorf("defaults lost during merge: max_function_lines = %d", cfg.Source.MaxFunctionLines)
	}
	if cfg.Structure.FilesError != 20 {
		t.Errorf("structure thresholds not applied: %d", cfg.Structure.FilesError)
	}
}

func TestLoadConfigRejectsInvalidThresholds(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "fescan.yaml")
	content := `source:
  file_lines_warn: 500
  file_lines_error: 300
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config fixture: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected validation error for inverted thresholds")
	}
}

func TestFullConfigTemplateIsValidYAML(t *testing.T) {
	for _, strictness := range []Strictness{StrictnessRelaxed, StrictnessStandard, StrictnessStrict} {
		t.Run(string(strictness), func(t *testing.T) {
			content := GetFullConfigTemplate(ProjectTypeReact, strictness)

			var parsed map[string]any
			if err := yaml.Unmarshal([]byte(content), &parsed); err != nil {
				t.Fatalf("template is not valid YAML: %v", err)
			}
			if _, ok := parsed["source"]; !ok {
				t.Error("template missing source section")
			}
			if !strings.Contains(content, "features_dir") {
				t.Error("template missing features_dir")
			}
		})
	}
}

func TestFindDefaultConfigSearchesUpward(t *testing.T) {
	tempDir := t.TempDir()
	nested := filepath.Join(tempDir, "src", "components")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("failed to create nested dirs: %v", err)
	}
	configPath := filepath.Join(tempDir, "fescan.yaml")
	if err := os.WriteFile(configPath, []byte("output:\n  directory: .fescan\n"), 0o644); err != nil {
		t.Fatalf("failed to write config fixture: %v", err)
	}

	found := findDefaultConfig(nested)
	if found != configPath {
		t.Errorf("findDefaultConfig() = %q, want %q", found, configPath)
	}
}
