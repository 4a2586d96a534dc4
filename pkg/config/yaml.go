package config

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

const yamlIndent = 2

// FromYAML decodes a configuration. Keys missing from data leave the
// corresponding fields at their zero values so that layers can be merged.
func FromYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return &cfg, nil
}

// ToYAML encodes the file-backed fields of c. CLI-only fields carry
// yaml:"-" tags and are never written.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)
	err := enc.Encode(c)
	if closeErr := enc.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// ToYAMLWithHeader is ToYAML preceded by header and a blank line.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	body, err := c.ToYAML()
	if err != nil || header == "" {
		return body, err
	}
	return slices.Concat([]byte(strings.TrimSuffix(header, "\n")), []byte("\n\n"), body), nil
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	out.Extensions = slices.Clone(c.Extensions)
	out.Ignore = slices.Clone(c.Ignore)
	out.Rules = c.Rules.Clone()
	return &out
}

// Clone returns a deep copy of s.
func (s *RuleSet) Clone() *RuleSet {
	if s == nil {
		return nil
	}
	out := *s
	out.Languages = slices.Clone(s.Languages)
	if s.Rules != nil {
		out.Rules = lo.Map(s.Rules, func(spec RuleSpec, _ int) RuleSpec {
			spec.Literals = slices.Clone(spec.Literals)
			spec.Branch = slices.Clone(spec.Branch)
			return spec
		})
	}
	return &out
}
