// Package runner tokenizes many inputs concurrently and collects the
// results in a deterministic order.
package runner

import (
	"io"

	"github.com/yaklabco/gotok/pkg/config"
)

// Options controls a multi-file run.
type Options struct {
	// Paths are the user-specified files or directories. "-" reads stdin.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions limits directory walks to these extensions (lowercase,
	// with leading dot). Empty accepts every file. Files named explicitly
	// in Paths are always accepted.
	Extensions []string

	// IncludeGlobs restricts discovered files to these patterns, relative to
	// WorkingDir. Empty means everything.
	IncludeGlobs []string

	// ExcludeGlobs skips files or directories matching these patterns.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Stdin is read for the "-" path. Defaults to os.Stdin.
	Stdin io.Reader

	// MaxStdinBytes caps stdin reads (0 = unlimited).
	MaxStdinBytes int64

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

// effectiveConfig returns Config or the defaults.
func (o Options) effectiveConfig() *config.Config {
	if o.Config == nil {
		return config.NewConfig()
	}
	return o.Config
}
