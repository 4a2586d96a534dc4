package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gotok/pkg/rules"
)

// Rule set errors.
var (
	// ErrInvalidRule is returned for rule specs that do not describe exactly
	// one matching strategy.
	ErrInvalidRule = errors.New("invalid rule")

	// ErrUnknownClass is returned for predicate classes that do not exist.
	ErrUnknownClass = errors.New("unknown character class")
)

// RuleSet is a declarative, ordered list of token rules.
type RuleSet struct {
	// Name identifies the rule set in listings.
	Name string `yaml:"name"`

	// Description is a one-line summary.
	Description string `yaml:"description,omitempty"`

	// Languages lists language names this rule set suits, used by
	// language detection.
	Languages []string `yaml:"languages,omitempty"`

	// Close is the preferred branch close policy for this rule set.
	Close string `yaml:"close,omitempty"`

	// Rules are tried in order; the first match wins.
	Rules []RuleSpec `yaml:"rules"`
}

// RuleSpec describes one table entry. Exactly one of Class, Chars, Literal,
// Literals or Branch must be set.
type RuleSpec struct {
	// Kind is the token kind produced by this rule.
	Kind string `yaml:"kind"`

	// Class is a predicate character class for the first character.
	Class string `yaml:"class,omitempty"`

	// Continue is the class for every later character. Defaults to Class.
	Continue string `yaml:"continue,omitempty"`

	// Chars is a predicate accepting runs of these characters.
	Chars string `yaml:"chars,omitempty"`

	// MaxLen caps predicate runs (0 = unlimited).
	MaxLen int `yaml:"max_len,omitempty"`

	// Literal is a fixed token text.
	Literal string `yaml:"literal,omitempty"`

	// Literals are several fixed token texts sharing Kind, in order.
	Literals []string `yaml:"literals,omitempty"`

	// Branch is a [start, end] delimiter pair.
	Branch []string `yaml:"branch,omitempty"`
}

// classes maps class names to predicates.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classes = map[string]rules.Predicate{
	"digit":  rules.Digit,
	"letter": rules.Letter,
	"alnum":  rules.Alnum,
	"ident":  rules.Ident,
	"hex":    rules.Hex,
	"upper":  rules.Upper,
	"lower":  rules.Lower,
	"punct":  rules.Punct,
	"space":  rules.Space,
}

// ClassNames returns the known predicate class names in sorted order.
func ClassNames() []string {
	names := make([]string, 0, len(classes))
	for name := range classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseRuleSet parses a rule set from YAML bytes.
func ParseRuleSet(data []byte) (*RuleSet, error) {
	set := &RuleSet{}
	if err := yaml.Unmarshal(data, set); err != nil {
		return nil, fmt.Errorf("parse rule set: %w", err)
	}
	return set, nil
}

// LoadRuleSet reads and parses a rule set file.
func LoadRuleSet(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule set: %w", err)
	}
	set, err := ParseRuleSet(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if set.Name == "" {
		set.Name = path
	}
	return set, nil
}

// Compile validates the rule set and builds the rule table.
// All problems are reported together.
func (s *RuleSet) Compile() (*rules.Table[Kind], error) {
	builder := rules.NewBuilder[Kind]()
	var errs []error

	for i, spec := range s.Rules {
		entries, err := spec.entries()
		if err != nil {
			errs = append(errs, fmt.Errorf("rule %d (%s): %w", i+1, spec.Kind, err))
			continue
		}
		builder.Add(entries...)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	table, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("build table: %w", err)
	}
	return table, nil
}

// entries converts one rule to table entries.
func (r RuleSpec) entries() ([]rules.Entry[Kind], error) {
	if r.Kind == "" {
		return nil, fmt.Errorf("%w: kind is required", ErrInvalidRule)
	}

	set := 0
	for _, present := range []bool{r.Class != "", r.Chars != "", r.Literal != "", len(r.Literals) > 0, len(r.Branch) > 0} {
		if present {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("%w: exactly one of class, chars, literal, literals or branch must be set", ErrInvalidRule)
	}

	kind := Kind(r.Kind)

	switch {
	case r.Class != "" || r.Chars != "":
		pred, err := r.predicate()
		if err != nil {
			return nil, err
		}
		entry := rules.NewPredicate(pred, kind)
		entry.Name = r.Kind
		return []rules.Entry[Kind]{entry}, nil

	case r.Literal != "":
		return []rules.Entry[Kind]{rules.NewLiteral(r.Literal, kind)}, nil

	case len(r.Literals) > 0:
		entries := make([]rules.Entry[Kind], 0, len(r.Literals))
		for _, lit := range r.Literals {
			if lit == "" {
				return nil, fmt.Errorf("%w: empty literal", ErrInvalidRule)
			}
			entries = append(entries, rules.NewLiteral(lit, kind))
		}
		return entries, nil

	default:
		if len(r.Branch) != 2 || r.Branch[0] == "" || r.Branch[1] == "" {
			return nil, fmt.Errorf("%w: branch needs [start, end]", ErrInvalidRule)
		}
		return []rules.Entry[Kind]{rules.NewBranch(r.Branch[0], r.Branch[1], kind)}, nil
	}
}

// predicate builds the predicate for a class or chars rule.
func (r RuleSpec) predicate() (rules.Predicate, error) {
	var first, rest rules.Predicate

	if r.Chars != "" {
		first = rules.OneOf(r.Chars)
		rest = first
	} else {
		var ok bool
		first, ok = classes[r.Class]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownClass, r.Class)
		}
		rest = first
	}

	if r.Continue != "" {
		next, ok := classes[r.Continue]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownClass, r.Continue)
		}
		rest = next
	}

	pred := rules.Sequence(first, rest)
	if r.MaxLen > 0 {
		pred = rules.MaxLen(pred, r.MaxLen)
	}
	return pred, nil
}

// Type returns the matching strategy of the rule: predicate, literal or
// branch. Invalid rules report "invalid".
func (r RuleSpec) Type() string {
	switch {
	case r.Class != "" || r.Chars != "":
		return "predicate"
	case r.Literal != "" || len(r.Literals) > 0:
		return "literal"
	case len(r.Branch) == 2:
		return "branch"
	default:
		return "invalid"
	}
}

// Describe returns a short human-readable form of what the rule matches.
func (r RuleSpec) Describe() string {
	var parts []string
	switch {
	case r.Class != "":
		parts = append(parts, "class "+r.Class)
	case r.Chars != "":
		parts = append(parts, fmt.Sprintf("chars %q", r.Chars))
	case r.Literal != "":
		return fmt.Sprintf("%q", r.Literal)
	case len(r.Literals) > 0:
		quoted := make([]string, len(r.Literals))
		for i, lit := range r.Literals {
			quoted[i] = fmt.Sprintf("%q", lit)
		}
		return strings.Join(quoted, " ")
	case len(r.Branch) == 2:
		return fmt.Sprintf("%q .. %q", r.Branch[0], r.Branch[1])
	default:
		return "?"
	}

	if r.Continue != "" {
		parts = append(parts, "then "+r.Continue)
	}
	if r.MaxLen > 0 {
		parts = append(parts, fmt.Sprintf("max %d", r.MaxLen))
	}
	return strings.Join(parts, ", ")
}
