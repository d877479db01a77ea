package config

import (
	"encoding/json"
	"fmt"
)

// ProjectType represents the type of frontend project
type ProjectType string

const (
	ProjectTypeGeneric ProjectType = "generic"
	ProjectTypeReact   ProjectType = "react"
	ProjectTypeNext    ProjectType = "next"
)

// Strictness represents the analysis strictness level
type Strictness string

const (
	StrictnessRelaxed  Strictness = "relaxed"
	StrictnessStandard Strictness = "standard"
	StrictnessStrict   Strictness = "strict"
)

// StrictnessPreset holds threshold values for a strictness level
type StrictnessPreset struct {
	FileLinesWarn    int
	FileLinesError   int
	MaxFunctionLines int
}

// GetStrictnessPresets returns threshold presets per strictness level
func GetStrictnessPresets() map[Strictness]StrictnessPreset {
	return map[Strictness]StrictnessPreset{
		StrictnessRelaxed: {
			FileLinesWarn:    400,
			FileLinesError:   700,
			MaxFunctionLines: 120,
		},
		StrictnessStandard: {
			FileLinesWarn:    300,
			FileLinesError:   500,
			MaxFunctionLines: 80,
		},
		StrictnessStrict: {
			FileLinesWarn:    200,
			FileLinesError:   350,
			MaxFunctionLines: 50,
		},
	}
}

// featuresDirFor returns the features subtree root for a project type
func featuresDirFor(projectType ProjectType) string {
	switch projectType {
	case ProjectTypeNext:
		return "app/features"
	default:
		return "src/features"
	}
}

// GetFullConfigTemplate generates a documented YAML configuration file
// for the given project type and strictness level
func GetFullConfigTemplate(projectType ProjectType, strictness Strictness) string {
	preset, ok := GetStrictnessPresets()[strictness]
	if !ok {
		preset = GetStrictnessPresets()[StrictnessStandard]
	}

	return fmt.Sprintf(`# fescan configuration (project type: %s, strictness: %s)
# Thresholds are inclusive at the boundary unless noted otherwise.

source:
  # File size thresholds (lines)
  file_lines_warn: %d
  file_lines_error: %d

  # Combined structural-marker (hook) thresholds per file
  marker_total_warn: 6
  marker_total_error: 10
  effect_markers_warn: 4
  memo_callback_warn: 6

  # Function bodies longer than this (exclusive) are reported
  max_function_lines: %d

structure:
  depth_warn: 5
  depth_error: 7
  files_warn: 15
  files_error: 25
  features_dir: %s
  feature_components_max: 20

output:
  directory: .fescan
`,
		projectType, strictness,
		preset.FileLinesWarn, preset.FileLinesError,
		preset.MaxFunctionLines,
		featuresDirFor(projectType),
	)
}

// GetMinimalConfigTemplate generates a minimal JSON configuration file
func GetMinimalConfigTemplate() string {
	cfg := map[string]any{
		"source": map[string]any{
			"file_lines_warn":  300,
			"file_lines_error": 500,
		},
		"output": map[string]any{
			"directory": ".fescan",
		},
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data) + "\n"
}
