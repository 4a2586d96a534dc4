package configloader

import "github.com/yaklabco/gotok/pkg/config"

// merge layers override on top of base and returns a new Config. Zero
// scalars and nil slices in override leave base untouched, so a layer only
// changes what it mentions. Booleans can therefore be switched on by a
// higher layer but never off.
func merge(base, override *config.Config) *config.Config {
	switch {
	case base == nil:
		return override
	case override == nil:
		return base
	}

	out := *base
	replace(&out.Mode, override.Mode)
	replace(&out.Close, override.Close)
	replace(&out.MaxDepth, override.MaxDepth)
	replace(&out.Format, override.Format)
	replace(&out.Jobs, override.Jobs)
	replace(&out.CodeBlocks, override.CodeBlocks)
	replace(&out.Strict, override.Strict)
	mergeRuleSource(&out, override)

	if override.Extensions != nil {
		out.Extensions = override.Extensions
	}
	if override.Ignore != nil {
		out.Ignore = override.Ignore
	}
	return &out
}

// replace sets *dst to v unless v is the zero value.
func replace[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}

// mergeRuleSource applies the rule source of override. Within one layer
// inline rules beat rules_file which beats preset, and a layer naming any
// source clears the lower-ranked sources inherited from below. A preset
// given alongside rules or a file is still recorded.
func mergeRuleSource(out, override *config.Config) {
	switch {
	case override.Rules != nil:
		out.Rules, out.RulesFile = override.Rules, ""
	case override.RulesFile != "":
		out.Rules, out.RulesFile = nil, override.RulesFile
	case override.Preset != "":
		out.Rules, out.RulesFile = nil, ""
	default:
		return
	}
	replace(&out.Preset, override.Preset)
}

// MergeAll folds configs left to right; later configs win.
func MergeAll(configs ...*config.Config) *config.Config {
	var out *config.Config
	for i, cfg := range configs {
		if i == 0 {
			out = cfg
			continue
		}
		out = merge(out, cfg)
	}
	return out
}
