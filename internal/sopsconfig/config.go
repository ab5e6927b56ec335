// Package sopsconfig reads and writes the project's .sops.yaml.
package sopsconfig

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ojsef39/opsops/internal/errs"
)

// DefaultRule is the catch-all rule written by init.
const DefaultRule = ".*"

// New returns an empty in-memory config.
func New() *Config {
	return &Config{CreationRules: []CreationRule{}}
}

// NewDefault returns the minimal config init offers to create: one rule
// matching every file and no reference.
func NewDefault() *Config {
	return &Config{CreationRules: []CreationRule{{PathRegex: DefaultRule}}}
}

// document mirrors Config with a pointer reference so that a file written
// before opsops (no onepassworditem key) can be told apart.
type document struct {
	CreationRules   []CreationRule `yaml:"creation_rules"`
	OnePasswordItem *string        `yaml:"onepassworditem"`
	Extra           map[string]any `yaml:",inline"`
}

// Parse decodes a .sops.yaml document. A document without onepassworditem
// parses with an empty reference. Any other decoding failure wraps
// errs.ErrParse.
func Parse(data []byte) (*Config, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrParse, err)
	}

	cfg := &Config{
		CreationRules: doc.CreationRules,
		Extra:         doc.Extra,
	}
	if cfg.CreationRules == nil {
		cfg.CreationRules = []CreationRule{}
	}
	if doc.OnePasswordItem != nil {
		cfg.OnePasswordItem = *doc.OnePasswordItem
	}
	return cfg, nil
}

// IsLegacy reports whether data is a SOPS config without the opsops
// reference key.
func IsLegacy(data []byte) (bool, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return false, fmt.Errorf("%w: %v", errs.ErrParse, err)
	}
	return doc.OnePasswordItem == nil, nil
}

// Marshal encodes cfg as YAML with two-space indentation.
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrSerialize, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrSerialize, err)
	}
	return buf.Bytes(), nil
}

// HasReference reports whether a credential reference is configured.
func (c *Config) HasReference() bool {
	return strings.TrimSpace(c.OnePasswordItem) != ""
}

// FindPublicKey returns the first place publicKey appears. Each rule's own
// age field is checked before its key groups, and the search stops at the
// first hit.
func (c *Config) FindPublicKey(publicKey string) (Match, bool) {
	for i, rule := range c.CreationRules {
		if rule.Age != "" && rule.Age == publicKey {
			return Match{Kind: DirectMatch, RuleIndex: i, Key: rule.Age}, true
		}
		for _, group := range rule.KeyGroups {
			for _, key := range group.Age {
				if key == publicKey {
					return Match{Kind: GroupMatch, RuleIndex: i, Key: key}, true
				}
			}
		}
	}
	return Match{Kind: NoMatch, RuleIndex: -1}, false
}

// RulesWithoutKeys returns the indexes of rules with no age key at all.
func (c *Config) RulesWithoutKeys() []int {
	var idx []int
	for i, rule := range c.CreationRules {
		if !rule.HasKeys() {
			idx = append(idx, i)
		}
	}
	return idx
}

// HasKeys reports whether the rule names any age key.
func (r CreationRule) HasKeys() bool {
	if r.Age != "" {
		return true
	}
	for _, group := range r.KeyGroups {
		if len(group.Age) > 0 {
			return true
		}
	}
	return false
}

// Keys returns every age key of the rule, direct key first.
func (r CreationRule) Keys() []string {
	var keys []string
	if r.Age != "" {
		keys = append(keys, r.Age)
	}
	for _, group := range r.KeyGroups {
		keys = append(keys, group.Age...)
	}
	return keys
}
