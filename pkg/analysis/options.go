package analysis

// SortField orders the ByFile and ByKind views.
type SortField string

const (
	SortByCount    SortField = "count"
	SortByAlpha    SortField = "alpha"
	SortByProblems SortField = "problems" // unterminated first, then unknown
)

// IsValid reports whether s names a known ordering.
func (s SortField) IsValid() bool {
	return s == SortByCount || s == SortByAlpha || s == SortByProblems
}

// Options selects which views Analyze builds and how they are ordered.
type Options struct {
	IncludeProblems bool
	IncludeByFile   bool
	IncludeByKind   bool

	SortBy   SortField
	SortDesc bool

	// WorkingDir, when set, makes report paths relative to it.
	WorkingDir string
}

// DefaultOptions builds every view, largest counts first.
func DefaultOptions() Options {
	opts := Options{SortBy: SortByCount, SortDesc: true}
	opts.IncludeProblems, opts.IncludeByFile, opts.IncludeByKind = true, true, true
	return opts
}
