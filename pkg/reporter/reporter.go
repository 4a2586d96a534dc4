// Package reporter writes tokenizer results as text, tables, JSON or summaries.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/gotok/pkg/analysis"
	"github.com/yaklabco/gotok/pkg/runner"
)

// Reporter writes a run result and returns the number of problems it
// reported: unknown tokens plus unterminated branches.
type Reporter interface {
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New returns the Reporter for opts.Format.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.Format == "" {
		opts.Format = FormatText
	}

	switch opts.Format {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatSummary:
		return newRendererFacade(NewSummaryRenderer(opts), opts), nil
	}
	return nil, fmt.Errorf("unsupported format: %s", opts.Format)
}

var _ Reporter = (*rendererFacade)(nil)

// rendererFacade analyzes a result before handing it to a Renderer.
type rendererFacade struct {
	renderer Renderer
	opts     analysis.Options
}

func newRendererFacade(renderer Renderer, opts Options) *rendererFacade {
	aopts := analysis.DefaultOptions()
	aopts.WorkingDir = opts.WorkingDir
	return &rendererFacade{renderer: renderer, opts: aopts}
}

func (f *rendererFacade) Report(ctx context.Context, result *runner.Result) (int, error) {
	if err := f.renderer.Render(ctx, analysis.Analyze(result, f.opts)); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return problemCount(result), nil
}

func problemCount(result *runner.Result) int {
	if result == nil {
		return 0
	}
	return result.Stats.Unknown + result.Stats.Unterminated
}

// relativize returns a shallow copy of result whose file paths are
// relative to workDir.
func relativize(result *runner.Result, workDir string) *runner.Result {
	if result == nil || workDir == "" {
		return result
	}
	out := *result
	out.Files = make([]runner.FileOutcome, len(result.Files))
	for i, file := range result.Files {
		file.Path = analysis.RelativePath(file.Path, workDir)
		out.Files[i] = file
	}
	return &out
}
