package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/fastsecret/fastsecret/internal/ignore"
	"github.com/fastsecret/fastsecret/internal/logging"
	"github.com/fastsecret/fastsecret/internal/rules"
	"github.com/fastsecret/fastsecret/internal/types"
)

// Config controls a single scan.
type Config struct {
	// Root is the file or directory to scan. Finding paths are reported
	// relative to it exactly as given (joined, not canonicalized).
	Root string
	// Rules are evaluated in order against every line.
	Rules rules.RuleSet
	// IgnoreRules names rules to leave out of evaluation.
	IgnoreRules ignore.Set
	// Verbose logs each match and each disabled rule through Logger.
	Verbose bool
	Logger  *zap.SugaredLogger

	// Optional scope limits.
	IncludeGlobs string
	ExcludeGlobs string
	MaxBytes     int64 // 0 = no limit

	// Progress, when set, is called after each file is evaluated.
	Progress func()
}

// Result contains findings and basic scan statistics.
type Result struct {
	Findings     []types.Finding
	FilesScanned int
	FilesSkipped int
	Duration     time.Duration
	RuleErrors   []*RuleError
}

// ScanError reports a root path that cannot be scanned at all. Missing
// paths, unreadable files and bad rules never produce one.
type ScanError struct {
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan %q: %v", e.Path, e.Err)
}

func (e *ScanError) Unwrap() error { return e.Err }

var errEmptyRoot = errors.New("empty path")

// Scan runs a scan and returns only findings (without stats).
func Scan(cfg Config) ([]types.Finding, error) {
	res, err := ScanWithStats(cfg)
	if err != nil {
		return nil, err
	}
	return res.Findings, nil
}

// ScanWithStats runs a scan and returns findings along with timing and counts.
// Findings are ordered by traversal order, then line, then rule order.
func ScanWithStats(cfg Config) (Result, error) {
	var result Result
	if cfg.Root == "" {
		return result, &ScanError{Path: cfg.Root, Err: errEmptyRoot}
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Nop()
	}
	started := time.Now()

	m, ruleErrs := NewMatcher(cfg.Rules, cfg.IgnoreRules)
	result.RuleErrors = ruleErrs
	if cfg.Verbose {
		for _, e := range ruleErrs {
			log.Warnw("rule disabled: invalid pattern", "rule", e.Rule, "error", e.Err)
		}
	}

	info, err := os.Stat(cfg.Root)
	if err != nil {
		if isNotExist(err) {
			log.Debugw("path does not exist, nothing to scan", "path", cfg.Root)
			result.Duration = time.Since(started)
			return result, nil
		}
		return result, &ScanError{Path: cfg.Root, Err: err}
	}

	scan := func(p string) {
		found, ok := scanFile(m, p)
		if !ok {
			result.FilesSkipped++
			return
		}
		result.FilesScanned++
		if cfg.Verbose {
			for _, f := range found {
				log.Infow("matched", "rule", f.RuleName, "file", f.File, "line", f.Line)
			}
		}
		result.Findings = append(result.Findings, found...)
		if cfg.Progress != nil {
			cfg.Progress()
		}
	}

	switch {
	case info.Mode().IsRegular():
		if isBinaryPath(cfg.Root) || (cfg.MaxBytes > 0 && info.Size() > cfg.MaxBytes) {
			result.FilesSkipped++
			break
		}
		scan(cfg.Root)
	case info.IsDir():
		skipped, err := Walk(cfg, scan)
		result.FilesSkipped += skipped
		if err != nil {
			return result, &ScanError{Path: cfg.Root, Err: err}
		}
	default:
		return result, &ScanError{Path: cfg.Root, Err: fmt.Errorf("not a regular file or directory (mode %s)", info.Mode().Type())}
	}

	result.Duration = time.Since(started)
	log.Debugw("scan complete", "path", cfg.Root, "files", result.FilesScanned, "skipped", result.FilesSkipped, "findings", len(result.Findings), "took", result.Duration)
	return result, nil
}

// scanFile reads p as UTF-8 text and evaluates it. ok is false when the
// file could not be read or is not valid text.
func scanFile(m *Matcher, p string) (findings []types.Finding, ok bool) {
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, false
	}
	if !utf8.Valid(b) {
		return nil, false
	}
	return m.Match(p, string(b)), true
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}
