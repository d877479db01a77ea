package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "fescan"

	// ConfigFileName is the default config file name
	ConfigFileName = "fescan.config.json"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "FESCAN"

	// DefaultOutputDir is where report artifacts are written
	DefaultOutputDir = ".fescan"
)

// Check name constants
const (
	CheckLint        = "lint"
	CheckTypecheck   = "typecheck"
	CheckDeadCode    = "deadcode"
	CheckDuplication = "duplication"
	CheckCircular    = "circular"
	CheckBoundaries  = "boundaries"
	CheckSource      = "source"
	CheckStructure   = "structure"
)

// SkipReasonQuickMode is the fixed reason attached to checks skipped
// in quick mode
const SkipReasonQuickMode = "skipped in quick mode"

// Source analyzer thresholds. All boundaries are inclusive.
const (
	// FileLinesWarn and FileLinesError bound the per-file line count
	FileLinesWarn  = 300
	FileLinesError = 500

	// MarkerTotalWarn and MarkerTotalError bound the combined
	// structural-marker count of one component file
	MarkerTotalWarn  = 6
	MarkerTotalError = 10

	// EffectMarkersWarn bounds the effect-marker count
	EffectMarkersWarn = 4

	// MemoCallbackWarn bounds the combined memo+callback count
	MemoCallbackWarn = 6

	// MaxFunctionLines is the exclusive upper bound on function body
	// line span; spans strictly greater are reported
	MaxFunctionLines = 80

	// DeepNestingThreshold is the number of adjacent opening-tag
	// pairs above which a file is flagged for deep nesting
	DeepNestingThreshold = 4

	// MaxExportedComponents bounds top-level exported component-shaped
	// declarations per file; more are flagged
	MaxExportedComponents = 2
)

// Folder structure thresholds. All boundaries are inclusive.
const (
	FolderDepthWarn  = 5
	FolderDepthError = 7

	FolderFilesWarn  = 15
	FolderFilesError = 25

	// MixedContentMinFiles is the exclusive lower bound on immediate
	// files before a flat mixed-responsibility folder is flagged
	MixedContentMinFiles = 5

	// FeatureComponentsMax is the exclusive upper bound on component
	// files in one feature's components folder
	FeatureComponentsMax = 20
)

// Report rendering constants
const (
	// MaxInfoIssuesRendered caps the per-check info section in the
	// markdown report
	MaxInfoIssuesRendered = 10

	// MarkdownReportName and CompactReportName are the two artifacts
	// overwritten on every run
	MarkdownReportName = "health-report.md"
	CompactReportName  = "health-report.json"
)

// BoundariesConfigName is the external configuration artifact required
// by the architecture-boundary check
const BoundariesConfigName = ".boundaries.yaml"
