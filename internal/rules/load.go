package rules

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fastsecret/fastsecret/internal/types"
)

// LoadError reports a custom rule document that could not be read or
// decoded. No rules from the document are returned alongside it.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("load custom rules: %v", e.Err)
	}
	return fmt.Sprintf("load custom rules from %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// record is the on-disk shape of one custom rule.
type record struct {
	Name        string         `yaml:"name"`
	Pattern     string         `yaml:"pattern"`
	Severity    types.Severity `yaml:"severity"`
	Description string         `yaml:"description"`
}

type pack struct {
	Rules []record `yaml:"rules"`
}

// LoadCustomRules reads a YAML rule document from path. The document is
// either a list of rules or a mapping with a "rules" key holding that list:
//
//	- name: Internal API Token
//	  pattern: itk_[0-9a-f]{32}
//	  severity: high
//	  description: token for the internal billing API
//
// name and pattern are required; severity defaults to medium. Any bad entry
// fails the whole load.
func LoadCustomRules(path string) (RuleSet, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	rs, err := decode(b)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return rs, nil
}

// ParseCustomRules decodes a rule document held in memory. It accepts the
// same shapes as LoadCustomRules.
func ParseCustomRules(data []byte) (RuleSet, error) {
	rs, err := decode(data)
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	return rs, nil
}

func decode(data []byte) (RuleSet, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	// empty document
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return RuleSet{}, nil
	}
	root := doc.Content[0]

	var recs []record
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&recs); err != nil {
			return nil, fmt.Errorf("parse rules: %w", err)
		}
	case yaml.MappingNode:
		var p pack
		if err := root.Decode(&p); err != nil {
			return nil, fmt.Errorf("parse rules: %w", err)
		}
		if !hasKey(root, "rules") {
			return nil, errors.New(`expected a list of rules or a "rules" key`)
		}
		recs = p.Rules
	default:
		return nil, fmt.Errorf("line %d: expected a list of rules", root.Line)
	}

	out := make(RuleSet, 0, len(recs))
	for i, r := range recs {
		if r.Name == "" {
			return nil, fmt.Errorf("rule %d: missing required field \"name\"", i+1)
		}
		if r.Pattern == "" {
			return nil, fmt.Errorf("rule %d (%s): missing required field \"pattern\"", i+1, r.Name)
		}
		out = append(out, Rule{
			Name:        r.Name,
			Pattern:     r.Pattern,
			Severity:    r.Severity.OrDefault(),
			Description: r.Description,
		})
	}
	return out, nil
}

func hasKey(m *yaml.Node, key string) bool {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return true
		}
	}
	return false
}
