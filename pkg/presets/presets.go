// Package presets provides the built-in rule sets shipped with gotok.
package presets

import (
	"embed"
	"errors"
	"fmt"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/yaklabco/gotok/pkg/config"
	"github.com/yaklabco/gotok/pkg/rules"
)

// ErrUnknownPreset is returned when a preset name is not registered.
var ErrUnknownPreset = errors.New("unknown preset")

// Fallback is the preset used when language detection finds no match.
const Fallback = "c"

//go:embed data/*.yaml
var data embed.FS

//nolint:gochecknoglobals // Parsed once from embedded data.
var (
	loadOnce sync.Once
	registry map[string]*config.RuleSet
	loadErr  error
)

func load() {
	registry = make(map[string]*config.RuleSet)

	entries, err := data.ReadDir("data")
	if err != nil {
		loadErr = fmt.Errorf("read presets: %w", err)
		return
	}

	for _, entry := range entries {
		raw, err := data.ReadFile(path.Join("data", entry.Name()))
		if err != nil {
			loadErr = fmt.Errorf("read preset %s: %w", entry.Name(), err)
			return
		}
		set, err := config.ParseRuleSet(raw)
		if err != nil {
			loadErr = fmt.Errorf("preset %s: %w", entry.Name(), err)
			return
		}
		registry[set.Name] = set
	}
}

func sets() (map[string]*config.RuleSet, error) {
	loadOnce.Do(load)
	return registry, loadErr
}

// Names returns the sorted names of all built-in presets.
func Names() []string {
	reg, err := sets()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(reg))
	for name := range reg {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Get returns a copy of the named preset.
func Get(name string) (*config.RuleSet, error) {
	reg, err := sets()
	if err != nil {
		return nil, err
	}
	set, ok := reg[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownPreset, name, strings.Join(Names(), ", "))
	}
	return set.Clone(), nil
}

// Table compiles the named preset.
func Table(name string) (*rules.Table[config.Kind], error) {
	set, err := Get(name)
	if err != nil {
		return nil, err
	}
	return set.Compile()
}

// All returns copies of every preset in name order.
func All() []*config.RuleSet {
	names := Names()
	out := make([]*config.RuleSet, 0, len(names))
	for _, name := range names {
		if set, err := Get(name); err == nil {
			out = append(out, set)
		}
	}
	return out
}

// ForLanguage returns the preset declaring the given language, matched
// case-insensitively.
func ForLanguage(lang string) (string, bool) {
	if lang == "" {
		return "", false
	}
	lang = strings.ToLower(lang)

	for _, set := range All() {
		for _, l := range set.Languages {
			if strings.ToLower(l) == lang {
				return set.Name, true
			}
		}
		if set.Name == lang {
			return set.Name, true
		}
	}
	return "", false
}
