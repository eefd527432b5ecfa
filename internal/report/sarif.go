package report

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/fastsecret/fastsecret/internal/rules"
	"github.com/fastsecret/fastsecret/internal/types"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
	// fingerprintKey names the partialFingerprints entry; bump the suffix
	// if the hashed fields ever change.
	fingerprintKey = "fastsecret/v1"
)

type sarif struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool       sarifTool      `json:"tool"`
	Results    []sarifResult  `json:"results"`
	Properties map[string]any `json:"properties,omitempty"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID                   string       `json:"id"`
	Name                 string       `json:"name"`
	ShortDescription     sarifMessage `json:"shortDescription"`
	DefaultConfiguration sarifConfig  `json:"defaultConfiguration"`
}

type sarifConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID              string            `json:"ruleId"`
	RuleIndex           int               `json:"ruleIndex"`
	Level               string            `json:"level"`
	Message             sarifMessage      `json:"message"`
	Locations           []sarifLoc        `json:"locations"`
	PartialFingerprints map[string]string `json:"partialFingerprints"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt    `json:"artifactLocation"`
	Region           sarifRegion `json:"region"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int          `json:"startLine"`
	Snippet   sarifMessage `json:"snippet"`
}

// SARIFOptions carries run metadata. Rules, when set, supplies descriptions
// for the driver's rule descriptors.
type SARIFOptions struct {
	ToolVersion  string
	Rules        rules.RuleSet
	FilesScanned int
}

func sevToLevel(s types.Severity) string {
	switch s {
	case types.SevHigh:
		return "error"
	case types.SevMed:
		return "warning"
	default:
		return "note"
	}
}

// ruleID turns a display name into a stable identifier:
// "AWS Access Key ID" -> "aws-access-key-id".
func ruleID(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Fingerprint identifies a finding independently of its line number, so
// code moving within a file keeps the same fingerprint.
func Fingerprint(f types.Finding) string {
	h := xxhash.New()
	_, _ = h.WriteString(f.RuleName)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(filepath.ToSlash(f.File))
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(f.Snippet)
	return fmt.Sprintf("%016x", h.Sum64())
}

// WriteSARIF writes findings as SARIF 2.1.0 to the provided writer. One rule
// descriptor is emitted per distinct rule name, in order of first finding.
func WriteSARIF(w io.Writer, findings []types.Finding, opts SARIFOptions) error {
	desc := make(map[string]string, len(opts.Rules))
	for _, r := range opts.Rules {
		if _, ok := desc[r.Name]; !ok {
			desc[r.Name] = r.Description
		}
	}

	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{
			Name:           "fastsecret",
			Version:        opts.ToolVersion,
			InformationURI: "https://github.com/fastsecret/fastsecret",
			Rules:          []sarifRule{},
		}},
		Results: []sarifResult{},
	}
	if opts.FilesScanned > 0 {
		run.Properties = map[string]any{"filesScanned": opts.FilesScanned}
	}

	index := map[string]int{}
	for _, f := range findings {
		i, ok := index[f.RuleName]
		if !ok {
			text := desc[f.RuleName]
			if text == "" {
				text = f.RuleName
			}
			i = len(run.Tool.Driver.Rules)
			index[f.RuleName] = i
			run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, sarifRule{
				ID:                   ruleID(f.RuleName),
				Name:                 f.RuleName,
				ShortDescription:     sarifMessage{Text: text},
				DefaultConfiguration: sarifConfig{Level: sevToLevel(f.Severity)},
			})
		}
		run.Results = append(run.Results, sarifResult{
			RuleID:    run.Tool.Driver.Rules[i].ID,
			RuleIndex: i,
			Level:     sevToLevel(f.Severity),
			Message:   sarifMessage{Text: f.RuleName + " detected"},
			Locations: []sarifLoc{{
				PhysicalLocation: sarifPhys{
					ArtifactLocation: sarifArt{URI: filepath.ToSlash(f.File)},
					Region:           sarifRegion{StartLine: f.Line, Snippet: sarifMessage{Text: f.Snippet}},
				},
			}},
			PartialFingerprints: map[string]string{fingerprintKey: Fingerprint(f)},
		})
	}
	doc := sarif{Schema: sarifSchema, Version: sarifVersion, Runs: []sarifRun{run}}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// WriteJSON writes findings as an indented JSON array. An empty scan writes
// "[]" rather than "null".
func WriteJSON(w io.Writer, findings []types.Finding) error {
	if findings == nil {
		findings = []types.Finding{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(findings)
}
