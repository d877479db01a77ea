package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fescan-dev/fescan/internal/constants"
	"github.com/spf13/viper"
)

// Config represents the main configuration structure
type Config struct {
	// Source holds heuristic source analyzer thresholds
	Source SourceConfig `json:"source" mapstructure:"source" yaml:"source"`

	// Structure holds folder structure analyzer thresholds
	Structure StructureConfig `json:"structure" mapstructure:"structure" yaml:"structure"`

	// Checks holds per-check enablement and tool invocation settings
	Checks ChecksConfig `json:"checks" mapstructure:"checks" yaml:"checks"`

	// Output holds report output configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`

	// Analysis holds general file collection configuration
	Analysis AnalysisConfig `json:"analysis,omitempty" mapstructure:"analysis" yaml:"analysis"`
}

// SourceConfig holds thresholds for the heuristic source analyzer
type SourceConfig struct {
	// FileLinesWarn is the inclusive line count at which a file is
	// flagged as a warning
	FileLinesWarn int `json:"fileLinesWarn" mapstructure:"file_lines_warn" yaml:"file_lines_warn"`

	// FileLinesError is the inclusive line count at which a file is
	// flagged as an error
	FileLinesError int `json:"fileLinesError" mapstructure:"file_lines_error" yaml:"file_lines_error"`

	// MarkerTotalWarn / MarkerTotalError bound the combined
	// structural-marker count of one file
	MarkerTotalWarn  int `json:"markerTotalWarn" mapstructure:"marker_total_warn" yaml:"marker_total_warn"`
	MarkerTotalError int `json:"markerTotalError" mapstructure:"marker_total_error" yaml:"marker_total_error"`

	// EffectMarkersWarn bounds the effect-marker count
	EffectMarkersWarn int `json:"effectMarkersWarn" mapstructure:"effect_markers_warn" yaml:"effect_markers_warn"`

	// MemoCallbackWarn bounds the combined memo+callback count
	MemoCallbackWarn int `json:"memoCallbackWarn" mapstructure:"memo_callback_warn" yaml:"memo_callback_warn"`

	// MaxFunctionLines is the exclusive upper bound on a function
	// body's line span
	MaxFunctionLines int `json:"maxFunctionLines" mapstructure:"max_function_lines" yaml:"max_function_lines"`
}

// StructureConfig holds thresholds for the folder structure analyzer
type StructureConfig struct {
	DepthWarn  int `json:"depthWarn" mapstructure:"depth_warn" yaml:"depth_warn"`
	DepthError int `json:"depthError" mapstructure:"depth_error" yaml:"depth_error"`

	FilesWarn  int `json:"filesWarn" mapstructure:"files_warn" yaml:"files_warn"`
	FilesError int `json:"filesError" mapstructure:"files_error" yaml:"files_error"`

	// FeaturesDir is the root of the narrower "features" scan
	FeaturesDir string `json:"featuresDir" mapstructure:"features_dir" yaml:"features_dir"`

	// FeatureComponentsMax is the exclusive upper bound on component
	// files in one feature's components folder
	FeatureComponentsMax int `json:"featureComponentsMax" mapstructure:"feature_components_max" yaml:"feature_components_max"`
}

// ChecksConfig holds per-check tool commands. Commands are split into
// argv form; the first element is the executable.
type ChecksConfig struct {
	LintCommand        []string `json:"lintCommand" mapstructure:"lint_command" yaml:"lint_command"`
	TypecheckCommand   []string `json:"typecheckCommand" mapstructure:"typecheck_command" yaml:"typecheck_command"`
	DeadCodeCommand    []string `json:"deadcodeCommand" mapstructure:"deadcode_command" yaml:"deadcode_command"`
	DuplicationCommand []string `json:"duplicationCommand" mapstructure:"duplication_command" yaml:"duplication_command"`
	CircularCommand    []string `json:"circularCommand" mapstructure:"circular_command" yaml:"circular_command"`
	BoundariesCommand  []string `json:"boundariesCommand" mapstructure:"boundaries_command" yaml:"boundaries_command"`

	// BoundariesConfig is the external artifact the boundary check
	// requires; the check is skipped when it is absent
	BoundariesConfig string `json:"boundariesConfig" mapstructure:"boundaries_config" yaml:"boundaries_config"`
}

// OutputConfig holds configuration for report output
type OutputConfig struct {
	// Directory is where the markdown and compact JSON artifacts are
	// written
	Directory string `json:"directory" mapstructure:"directory" yaml:"directory"`

	// Verbose enables debug logging
	Verbose bool `json:"verbose" mapstructure:"verbose" yaml:"verbose"`
}

// AnalysisConfig holds general file collection configuration
type AnalysisConfig struct {
	// IncludePatterns specifies file patterns to include
	IncludePatterns []string `json:"include_patterns" mapstructure:"include_patterns" yaml:"include_patterns"`

	// ExcludePatterns specifies directory/file patterns to exclude
	ExcludePatterns []string `json:"exclude_patterns" mapstructure:"exclude_patterns" yaml:"exclude_patterns"`

	// RespectGitignore controls whether .gitignore entries are honored
	RespectGitignore bool `json:"respect_gitignore" mapstructure:"respect_gitignore" yaml:"respect_gitignore"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			FileLinesWarn:     constants.FileLinesWarn,
			FileLinesError:    constants.FileLinesError,
			MarkerTotalWarn:   constants.MarkerTotalWarn,
			MarkerTotalError:  constants.MarkerTotalError,
			EffectMarkersWarn: constants.EffectMarkersWarn,
			MemoCallbackWarn:  constants.MemoCallbackWarn,
			MaxFunctionLines:  constants.MaxFunctionLines,
		},
		Structure: StructureConfig{
			DepthWarn:            constants.FolderDepthWarn,
			DepthError:           constants.FolderDepthError,
			FilesWarn:            constants.FolderFilesWarn,
			FilesError:           constants.FolderFilesError,
			FeaturesDir:          filepath.Join("src", "features"),
			FeatureComponentsMax: constants.FeatureComponentsMax,
		},
		Checks: ChecksConfig{
			LintCommand:        []string{"npx", "eslint", "--format", "json", "."},
			TypecheckCommand:   []string{"npx", "tsc", "--noEmit", "--pretty", "false"},
			DeadCodeCommand:    []string{"npx", "knip", "--reporter", "json"},
			DuplicationCommand: []string{"npx", "jscpd", "--reporters", "console", "."},
			CircularCommand:    []string{"npx", "madge", "--circular", "--json", "src"},
			BoundariesCommand:  []string{"npx", "depcruise", "--output-type", "json", "src"},
			BoundariesConfig:   constants.BoundariesConfigName,
		},
		Output: OutputConfig{
			Directory: constants.DefaultOutputDir,
		},
		Analysis: AnalysisConfig{
			IncludePatterns: []string{
				"**/*.js", "**/*.ts", "**/*.jsx", "**/*.tsx",
				"**/*.mjs", "**/*.cjs", "**/*.mts", "**/*.cts",
			},
			ExcludePatterns: []string{
				// Package managers and dependencies
				"node_modules",
				"vendor",
				// Build outputs
				"dist",
				"build",
				"out",
				".output",
				// Framework-specific
				".next",
				".nuxt",
				".vercel",
				// Cache directories
				".cache",
				".turbo",
				"coverage",
				// Version control
				".git",
				// Minified and bundled files
				"*.min.js",
				"*.bundle.js",
				// Source maps
				"*.map",
			},
			RespectGitignore: true,
		},
	}
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration with target path context.
// If no config path is given, one is discovered from the target path
// upward, then the current directory.
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// loadConfigFromFile reads and parses a configuration file
func loadConfigFromFile(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	// New viper instance per load to avoid shared state
	v := viper.New()
	config := DefaultConfig()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// searchConfigInDirectory searches for configuration files in a directory
func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findDefaultConfig looks for default configuration files, searching
// from the target path upward, then the working directory, then the
// user's config directory.
func findDefaultConfig(targetPath string) string {
	candidates := []string{
		constants.ConfigFileName,
		".fescanrc.json",
		"fescan.yaml",
		"fescan.yml",
		".fescan.yaml",
		".fescan.yml",
		".fescan.json",
	}

	if targetPath != "" {
		absPath, err := filepath.Abs(targetPath)
		if err == nil {
			info, err := os.Stat(absPath)
			if err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			for dir := absPath; ; dir = filepath.Dir(dir) {
				if config := searchConfigInDirectory(dir, candidates); config != "" {
					return config
				}
				if parent := filepath.Dir(dir); parent == dir {
					break
				}
			}
		}
	}

	if config := searchConfigInDirectory(".", candidates); config != "" {
		return config
	}

	if home, err := os.UserHomeDir(); err == nil {
		configDir := filepath.Join(home, ".config", constants.ToolName)
		if config := searchConfigInDirectory(configDir, candidates); config != "" {
			return config
		}
	}

	if envConfig := os.Getenv(constants.EnvVarPrefix + "_CONFIG"); envConfig != "" {
		if _, err := os.Stat(envConfig); err == nil {
			return envConfig
		}
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.Source.FileLinesWarn < 1 {
		return fmt.Errorf("source.file_lines_warn must be >= 1, got %d", c.Source.FileLinesWarn)
	}
	if c.Source.FileLinesError <= c.Source.FileLinesWarn {
		return fmt.Errorf("source.file_lines_error (%d) must be > file_lines_warn (%d)",
			c.Source.FileLinesError, c.Source.FileLinesWarn)
	}
	if c.Source.MarkerTotalError <= c.Source.MarkerTotalWarn {
		return fmt.Errorf("source.marker_total_error (%d) must be > marker_total_warn (%d)",
			c.Source.MarkerTotalError, c.Source.MarkerTotalWarn)
	}
	if c.Source.MaxFunctionLines < 1 {
		return fmt.Errorf("source.max_function_lines must be >= 1, got %d", c.Source.MaxFunctionLines)
	}
	if c.Structure.DepthError <= c.Structure.DepthWarn {
		return fmt.Errorf("structure.depth_error (%d) must be > depth_warn (%d)",
			c.Structure.DepthError, c.Structure.DepthWarn)
	}
	if c.Structure.FilesError <= c.Structure.FilesWarn {
		return fmt.Errorf("structure.files_error (%d) must be > files_warn (%d)",
			c.Structure.FilesError, c.Structure.FilesWarn)
	}
	return nil
}
