package runner

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/yaklabco/gotok/internal/logging"
	"github.com/yaklabco/gotok/pkg/config"
	"github.com/yaklabco/gotok/pkg/fsutil"
	"github.com/yaklabco/gotok/pkg/langdetect"
	"github.com/yaklabco/gotok/pkg/source"
	"github.com/yaklabco/gotok/pkg/token"
	"github.com/yaklabco/gotok/pkg/tokenizer"
)

// Runner tokenizes inputs with tables chosen by a Resolver.
type Runner struct {
	// Resolver picks the rule table for each input.
	Resolver *Resolver
}

// New creates a Runner with the given resolver.
func New(resolver *Resolver) *Runner {
	return &Runner{Resolver: resolver}
}

// Run discovers inputs under opts.Paths and tokenizes them concurrently.
// Outcomes are returned in discovery order whatever order workers finish in.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	started := time.Now()
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)
	logger.Debug("discovered inputs", logging.FieldFilesDiscovered, len(files))

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	cfg := opts.effectiveConfig()

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, cfg, opts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}
	result.Duration = time.Since(started)

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldTokens, result.Stats.Tokens,
		logging.FieldDuration, result.Duration,
	)

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker processes paths from workCh and sends outcomes to outCh.
func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, cfg *config.Config, opts Options) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := r.ProcessFile(ctx, path, cfg, opts)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// ProcessFile reads and tokenizes a single input.
func (r *Runner) ProcessFile(ctx context.Context, path string, cfg *config.Config, opts Options) FileOutcome {
	started := time.Now()
	outcome := FileOutcome{Path: path}
	logger := logging.FromContext(logging.WithFields(ctx, logging.FieldPath, path))

	stdin := opts.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}

	content, info, err := fsutil.ReadInput(ctx, path, stdin, opts.MaxStdinBytes)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Info = info
	outcome.Source = content

	units := source.Whole(content)
	if cfg.CodeBlocks && source.IsMarkdown(path) {
		units, err = source.CodeBlocks(ctx, content)
		if err != nil {
			outcome.Error = fmt.Errorf("%s: %w", path, err)
			return outcome
		}
	}

	for _, unit := range units {
		hint := langdetect.FromFence(unit.Info)
		if cfg.CodeBlocks && source.IsMarkdown(path) && hint == "" {
			hint = langdetect.Detect([]byte(unit.Content))
		}

		sel, err := r.Resolver.Resolve(path, content, hint)
		if err != nil {
			outcome.Error = fmt.Errorf("%s: %w", path, err)
			return outcome
		}

		res := Tokenize(sel, unit, cfg)
		outcome.Units = append(outcome.Units, res)

		logger.Debug("tokenized",
			logging.FieldPreset, sel.Name,
			logging.FieldLanguage, sel.Language,
			logging.FieldTokens, len(res.Tokens),
		)
	}

	outcome.Duration = time.Since(started)
	return outcome
}

// Tokenize runs the tokenizer over one unit and relocates the results to
// file coordinates.
func Tokenize(sel *Selection, unit source.Unit, cfg *config.Config) UnitResult {
	res := UnitResult{
		Language:   sel.Language,
		Preset:     sel.Name,
		LineOffset: unit.LineOffset,
	}

	tk := tokenizer.New(sel.Table, unit.Content, tokenizer.Options{
		MaxDepth: cfg.MaxDepth,
		Close:    sel.Close,
	})

	// Branch end tokens closed by text may carry the fallback kind; they are
	// not unknown text, so tree units count unknown leaves only.
	if cfg.Mode == config.ModeFlat {
		res.Tokens = tk.Stream()
		if unit.Embedded() {
			for i := range res.Tokens {
				res.Tokens[i] = res.Tokens[i].Relocate(unit)
			}
		}
	} else {
		res.Nodes = tk.Tree()
		if unit.Embedded() {
			token.Relocate(res.Nodes, unit)
		}
		res.Tokens = token.Flatten(res.Nodes)
		res.Depth = token.Depth(res.Nodes)
		//nolint:errcheck,revive // the callback never fails
		token.Walk(res.Nodes, func(n *token.Node[config.Kind], _ int) error {
			switch {
			case n.IsBranch():
				res.Branches++
				if !n.HasEnd {
					res.Unterminated++
				}
			case n.Kind().IsInvalid():
				res.Unknown++
			}
			return nil
		})
		return res
	}

	for _, tok := range res.Tokens {
		if tok.Kind.IsInvalid() {
			res.Unknown++
		}
	}

	return res
}
