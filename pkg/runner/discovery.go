package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/gotok/pkg/fsutil"
)

// matcher holds compiled include/exclude patterns.
type matcher struct {
	extensions []string
	include    []glob.Glob
	exclude    []glob.Glob
}

func newMatcher(opts Options) (*matcher, error) {
	include, err := compileGlobs(opts.IncludeGlobs)
	if err != nil {
		return nil, err
	}
	exclude, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	extensions := make([]string, 0, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		ext = strings.ToLower(ext)
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extensions = append(extensions, ext)
	}

	return &matcher{extensions: extensions, include: include, exclude: exclude}, nil
}

// compileGlobs compiles patterns with '/' as separator. A pattern without a
// separator also matches base names, and "dir/**" also matches "dir".
func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		variants := []string{pattern}
		if !strings.Contains(pattern, "/") {
			variants = append(variants, "**/"+pattern)
		}
		if trimmed, ok := strings.CutSuffix(pattern, "/**"); ok {
			variants = append(variants, trimmed)
		}
		for _, variant := range variants {
			g, err := glob.Compile(variant, '/')
			if err != nil {
				return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
			}
			globs = append(globs, g)
		}
	}
	return globs, nil
}

func matchAny(globs []glob.Glob, relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	for _, g := range globs {
		if g.Match(relPath) {
			return true
		}
	}
	return false
}

// Discover finds the inputs named by opts. Directories are walked; files
// given explicitly are kept even when their extension does not match.
// The result is sorted and deduplicated, with "-" (stdin) first if present.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	match, err := newMatcher(opts)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string
	stdin := false

	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		if inputPath == fsutil.StdinPath {
			stdin = true
			continue
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", fsutil.ErrNotFound, inputPath)
			}
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			if !match.excluded(absPath, workDir) {
				add(absPath)
			}
			continue
		}

		discovered, err := walkDirectory(ctx, absPath, workDir, match, opts.FollowSymlinks)
		if err != nil {
			return nil, err
		}
		for _, f := range discovered {
			add(f)
		}
	}

	slices.Sort(files)
	if stdin {
		files = append([]string{fsutil.StdinPath}, files...)
	}

	return files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// walkDirectory recursively walks root and returns matching files.
// Hidden files and directories below root are skipped.
func walkDirectory(ctx context.Context, root, workDir string, match *matcher, followSymlinks bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			if path != root && match.excluded(path, workDir) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil //nolint:nilerr // broken symlinks are skipped
			}
			info, err := os.Stat(realPath)
			if err != nil {
				return nil //nolint:nilerr // inaccessible targets are skipped
			}
			if info.IsDir() {
				if !followSymlinks {
					return nil
				}
				// Walk the target so WalkDir's Lstat does not stop at the link.
				sub, err := walkDirectory(ctx, realPath, workDir, match, followSymlinks)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if match.accepts(path, workDir) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

func relative(path, workDir string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return rel
}

// excluded reports whether path matches an exclude pattern.
func (m *matcher) excluded(path, workDir string) bool {
	return matchAny(m.exclude, relative(path, workDir))
}

// accepts applies extension, exclude and include filters to a walked file.
func (m *matcher) accepts(path, workDir string) bool {
	if len(m.extensions) > 0 && !slices.Contains(m.extensions, strings.ToLower(filepath.Ext(path))) {
		return false
	}
	rel := relative(path, workDir)
	if matchAny(m.exclude, rel) {
		return false
	}
	if len(m.include) > 0 && !matchAny(m.include, rel) {
		return false
	}
	return true
}
