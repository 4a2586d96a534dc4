package runner

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/yaklabco/gotok/pkg/config"
	"github.com/yaklabco/gotok/pkg/langdetect"
	"github.com/yaklabco/gotok/pkg/presets"
	"github.com/yaklabco/gotok/pkg/rules"
	"github.com/yaklabco/gotok/pkg/tokenizer"
)

// Selection is the rule table chosen for one input.
type Selection struct {
	// Name is the preset or rule set name.
	Name string

	// Language is the detected language, empty when detection was skipped.
	Language string

	// Table is the compiled rule table. Tables are shared between workers.
	Table *rules.Table[config.Kind]

	// Close is the close policy to use with Table.
	Close tokenizer.ClosePolicy
}

// Resolver picks and compiles rule tables. Compiled tables are cached, so a
// Resolver should live for a whole run. It is safe for concurrent use.
type Resolver struct {
	cfg *config.Config

	// custom is the table from an inline rule set or rules file.
	custom *Selection

	group singleflight.Group
	mu    sync.RWMutex
	cache map[string]*Selection
}

// NewResolver prepares a resolver. Inline rules and rule files are compiled
// immediately so configuration errors surface before any input is read.
func NewResolver(cfg *config.Config) (*Resolver, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	r := &Resolver{cfg: cfg, cache: make(map[string]*Selection)}

	var set *config.RuleSet
	switch {
	case cfg.Rules != nil:
		set = cfg.Rules
		if set.Name == "" {
			set = set.Clone()
			set.Name = "inline"
		}
	case cfg.RulesFile != "":
		loaded, err := config.LoadRuleSet(cfg.RulesFile)
		if err != nil {
			return nil, err
		}
		set = loaded
	}

	if set != nil {
		sel, err := r.compile(set)
		if err != nil {
			return nil, err
		}
		r.custom = sel
		return r, nil
	}

	if cfg.Preset != "" && cfg.Preset != config.PresetAuto {
		if _, err := r.preset(cfg.Preset); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Resolve returns the table for an input. hint is a language name from the
// input itself (a fence info string) and takes priority over detection.
func (r *Resolver) Resolve(path string, content []byte, hint string) (*Selection, error) {
	if r.custom != nil {
		return r.custom, nil
	}

	if r.cfg.Preset != "" && r.cfg.Preset != config.PresetAuto {
		return r.preset(r.cfg.Preset)
	}

	lang := hint
	if lang == "" {
		lang = langdetect.DetectFile(path, content)
	}

	name, ok := presets.ForLanguage(lang)
	if !ok {
		name = presets.Fallback
	}

	sel, err := r.preset(name)
	if err != nil {
		return nil, err
	}

	out := *sel
	out.Language = lang
	return &out, nil
}

// preset returns the cached compiled preset, compiling it once.
func (r *Resolver) preset(name string) (*Selection, error) {
	r.mu.RLock()
	sel, ok := r.cache[name]
	r.mu.RUnlock()
	if ok {
		return sel, nil
	}

	v, err, _ := r.group.Do(name, func() (any, error) {
		set, err := presets.Get(name)
		if err != nil {
			return nil, err
		}
		sel, err := r.compile(set)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.cache[name] = sel
		r.mu.Unlock()
		return sel, nil
	})
	if err != nil {
		return nil, err //nolint:wrapcheck // already wrapped by presets/config
	}
	return v.(*Selection), nil //nolint:forcetypeassert // group only stores *Selection
}

// compile builds a selection, applying the configured close policy over the
// rule set's own preference.
func (r *Resolver) compile(set *config.RuleSet) (*Selection, error) {
	table, err := set.Compile()
	if err != nil {
		return nil, fmt.Errorf("rule set %s: %w", set.Name, err)
	}

	closeName := set.Close
	if r.cfg.Close != "" {
		closeName = r.cfg.Close
	}
	policy, err := tokenizer.ParseClosePolicy(closeName)
	if err != nil {
		return nil, fmt.Errorf("rule set %s: %w", set.Name, err)
	}

	return &Selection{Name: set.Name, Table: table, Close: policy}, nil
}
