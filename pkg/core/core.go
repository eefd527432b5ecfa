package core

import (
	"github.com/fastsecret/fastsecret/internal/engine"
	"github.com/fastsecret/fastsecret/internal/ignore"
	"github.com/fastsecret/fastsecret/internal/logging"
	"github.com/fastsecret/fastsecret/internal/rules"
	"github.com/fastsecret/fastsecret/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
type (
	Config     = engine.Config
	Result     = engine.Result
	ScanError  = engine.ScanError
	RuleError  = engine.RuleError
	LoadError  = rules.LoadError
	Finding    = types.Finding
	Rule       = rules.Rule
	RuleSet    = rules.RuleSet
	Severity   = types.Severity
	IgnoreList = ignore.Set
)

const (
	SevLow  = types.SevLow
	SevMed  = types.SevMed
	SevHigh = types.SevHigh
)

// Scan evaluates every rule in rs not named in ignoreNames against each
// line of each text file under root. A missing root yields no findings and
// no error. When verbose is set, matches and invalid rules are logged to
// stderr; the returned findings are the same either way.
func Scan(root string, rs RuleSet, ignoreNames []string, verbose bool) ([]Finding, error) {
	cfg := Config{
		Root:        root,
		Rules:       rs,
		IgnoreRules: ignore.Of(ignoreNames...),
		Verbose:     verbose,
	}
	if verbose {
		log, err := logging.New(true)
		if err == nil {
			defer func() { _ = log.Sync() }()
			cfg.Logger = log
		}
	}
	return engine.Scan(cfg)
}

// ScanWithConfig runs a scan with full control over scope and logging.
func ScanWithConfig(cfg Config) ([]Finding, error) {
	return engine.Scan(cfg)
}

// ScanWithStats runs a scan and returns findings along with timing, file
// counts and disabled rules.
func ScanWithStats(cfg Config) (Result, error) {
	return engine.ScanWithStats(cfg)
}

// LoadBuiltinRules returns a fresh copy of the built-in catalog.
func LoadBuiltinRules() RuleSet { return rules.LoadBuiltinRules() }

// LoadCustomRules reads a YAML rule document. On any error no rules are
// returned and the error is a *LoadError.
func LoadCustomRules(path string) (RuleSet, error) { return rules.LoadCustomRules(path) }

// ParseSeverity converts "high", "medium" or "low" (any case) to a Severity.
func ParseSeverity(s string) (Severity, error) { return types.ParseSeverity(s) }
