// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/corpus-builder/pkg/types"
)

// Matcher applies a KeywordPolicy to free text. Terms are lowercased once at
// construction; Match lowercases the text and checks each group in turn.
type Matcher struct {
	names  []string
	groups [][]string
}

// NewMatcher builds a Matcher from policy.
func NewMatcher(policy types.KeywordPolicy) *Matcher {
	m := &Matcher{
		names:  make([]string, len(policy.Groups)),
		groups: make([][]string, len(policy.Groups)),
	}
	for i, g := range policy.Groups {
		m.names[i] = g.Name
		terms := make([]string, len(g.Terms))
		for j, t := range g.Terms {
			terms[j] = strings.ToLower(t)
		}
		m.groups[i] = terms
	}
	return m
}

// Match reports whether text contains at least one term of every group.
func (m *Matcher) Match(text string) bool {
	return m.FirstMiss(text) == ""
}

// FirstMiss returns the name of the first group with no term in text, or ""
// when every group matches.
func (m *Matcher) FirstMiss(text string) string {
	lower := strings.ToLower(text)
	for i, terms := range m.groups {
		if !containsAny(lower, terms) {
			return m.names[i]
		}
	}
	return ""
}

// Groups returns the group names in evaluation order.
func (m *Matcher) Groups() []string {
	return append([]string(nil), m.names...)
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

// LoadPolicy reads a keyword policy from a YAML file.
func LoadPolicy(path string) (types.KeywordPolicy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.KeywordPolicy{}, fmt.Errorf("reading policy file: %w", err)
	}
	var p types.KeywordPolicy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return types.KeywordPolicy{}, fmt.Errorf("parsing policy file: %w", err)
	}
	if err := p.Validate(); err != nil {
		return types.KeywordPolicy{}, fmt.Errorf("invalid policy file %s: %w", path, err)
	}
	return p, nil
}
