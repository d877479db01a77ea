package domain

// MarkerKind identifies one category of structural call-like markers
// counted by the heuristic source analyzer
type MarkerKind string

const (
	MarkerState       MarkerKind = "state"
	MarkerEffect      MarkerKind = "effect"
	MarkerMemo        MarkerKind = "memo"
	MarkerCallback    MarkerKind = "callback"
	MarkerRef         MarkerKind = "ref"
	MarkerQuery       MarkerKind = "query"
	MarkerMutation    MarkerKind = "mutation"
	MarkerOtherCustom MarkerKind = "other_custom"
)

// NamedMarkerKinds lists the explicitly matched marker categories.
// MarkerOtherCustom is derived, not matched directly.
var NamedMarkerKinds = []MarkerKind{
	MarkerState,
	MarkerEffect,
	MarkerMemo,
	MarkerCallback,
	MarkerRef,
	MarkerQuery,
	MarkerMutation,
}

// PatternKind identifies an anti-pattern detected in a single file
type PatternKind string

const (
	PatternInlineErrorBoundary PatternKind = "inline_error_boundary"
	PatternMultipleComponents  PatternKind = "multiple_components"
	PatternDeepNesting         PatternKind = "deep_nesting"
	PatternMixedConcerns       PatternKind = "mixed_concerns"
)

// LongFunction records one function body whose line span exceeded the
// configured limit
type LongFunction struct {
	Name          string `json:"name" yaml:"name"`
	StartLine     int    `json:"start_line" yaml:"start_line"`
	LengthInLines int    `json:"length_in_lines" yaml:"length_in_lines"`
}

// FileAnalysis is the per-file output of the heuristic source
// analyzer. Intermediate only; it is folded into a CheckResult and
// never persisted.
type FileAnalysis struct {
	Path          string               `json:"path" yaml:"path"`
	LineCount     int                  `json:"line_count" yaml:"line_count"`
	MarkerCounts  map[MarkerKind]int   `json:"marker_counts" yaml:"marker_counts"`
	Patterns      map[PatternKind]bool `json:"patterns" yaml:"patterns"`
	LongFunctions []LongFunction       `json:"long_functions" yaml:"long_functions"`
}

// TotalMarkers returns the sum of all marker category counts
func (a *FileAnalysis) TotalMarkers() int {
	total := 0
	for _, n := range a.MarkerCounts {
		total += n
	}
	return total
}

// FolderAnalysis is the per-directory output of the folder structure
// analyzer. Intermediate only.
type FolderAnalysis struct {
	Path             string `json:"path" yaml:"path"`
	Depth            int    `json:"depth" yaml:"depth"`
	FileCount        int    `json:"file_count" yaml:"file_count"`
	SubdirCount      int    `json:"subdir_count" yaml:"subdir_count"`
	HasIndexFile     bool   `json:"has_index_file" yaml:"has_index_file"`
	MixedContentFlag bool   `json:"mixed_content_flag" yaml:"mixed_content_flag"`
}
