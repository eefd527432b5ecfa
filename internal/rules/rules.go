package rules

import "github.com/fastsecret/fastsecret/internal/types"

// Rule is a named line pattern used to detect one class of secret.
// Pattern is a regular expression evaluated against single lines.
type Rule struct {
	Name        string         `yaml:"name" json:"name"`
	Pattern     string         `yaml:"pattern" json:"pattern"`
	Severity    types.Severity `yaml:"severity" json:"severity"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
}

// RuleSet is an ordered list of rules. Order is significant: findings on the
// same line are reported in rule order.
type RuleSet []Rule

// Names returns rule names in set order, including duplicates.
func (rs RuleSet) Names() []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Name)
	}
	return out
}

// Without returns the rules whose names are not in skip, preserving order.
func (rs RuleSet) Without(skip map[string]struct{}) RuleSet {
	out := make(RuleSet, 0, len(rs))
	for _, r := range rs {
		if _, ok := skip[r.Name]; ok {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Concat returns a new set holding rs followed by more. Neither input is
// modified and no deduplication happens.
func (rs RuleSet) Concat(more RuleSet) RuleSet {
	out := make(RuleSet, 0, len(rs)+len(more))
	out = append(out, rs...)
	return append(out, more...)
}
