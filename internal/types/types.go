package types

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Severity is a coarse-grained risk level attached to a rule and copied into
// each of its findings. Values are ordered: SevHigh > SevMed > SevLow.
type Severity int

const (
	SevLow Severity = iota + 1
	SevMed
	SevHigh
)

// ParseSeverity converts a case-insensitive token ("high", "Medium", "LOW")
// into a Severity. Unknown tokens are rejected.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return SevHigh, nil
	case "medium":
		return SevMed, nil
	case "low":
		return SevLow, nil
	}
	return 0, fmt.Errorf("unknown severity: %q", s)
}

// String returns the lowercase token for s. The zero value reports as
// medium, which is the default for rules that omit a severity.
func (s Severity) String() string {
	switch s {
	case SevHigh:
		return "high"
	case SevLow:
		return "low"
	default:
		return "medium"
	}
}

// OrDefault returns s, or SevMed when s is unset.
func (s Severity) OrDefault() Severity {
	if s < SevLow || s > SevHigh {
		return SevMed
	}
	return s
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.OrDefault().String()), nil
}

func (s *Severity) UnmarshalText(b []byte) error {
	v, err := ParseSeverity(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (s Severity) MarshalYAML() (interface{}, error) {
	return s.OrDefault().String(), nil
}

func (s *Severity) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: severity must be a string", node.Line)
	}
	v, err := ParseSeverity(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*s = v
	return nil
}

// Finding records one rule match at a file and line. Findings are produced
// by the engine and not modified afterwards.
type Finding struct {
	File     string   `json:"file"`
	Line     int      `json:"line"`
	Snippet  string   `json:"snippet"`
	RuleName string   `json:"rule_name"`
	Severity Severity `json:"severity"`
}
