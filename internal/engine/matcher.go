package engine

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fastsecret/fastsecret/internal/ignore"
	"github.com/fastsecret/fastsecret/internal/rules"
	"github.com/fastsecret/fastsecret/internal/types"
)

const (
	maxSnippetLen = 100
	ellipsis      = "..."
)

// RuleError reports a rule whose pattern failed to compile. The rule is
// disabled for the scan; other rules are unaffected.
type RuleError struct {
	Rule    string
	Pattern string
	Err     error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("invalid pattern in rule %q: %v", e.Rule, e.Err)
}

func (e *RuleError) Unwrap() error { return e.Err }

type compiledRule struct {
	name     string
	severity types.Severity
	re       *regexp.Regexp
}

// Matcher evaluates a fixed list of compiled rules against text. It is
// immutable once built and may be shared.
type Matcher struct {
	rules []compiledRule
}

// NewMatcher compiles every rule in rs whose name is not in ign. Rules that
// fail to compile are left out and reported as RuleErrors, in rule order.
// Identical patterns are compiled once.
func NewMatcher(rs rules.RuleSet, ign ignore.Set) (*Matcher, []*RuleError) {
	m := &Matcher{rules: make([]compiledRule, 0, len(rs))}
	type result struct {
		re  *regexp.Regexp
		err error
	}
	cache := make(map[string]result, len(rs))
	var errs []*RuleError
	for _, r := range rs {
		if ign.Has(r.Name) {
			continue
		}
		res, ok := cache[r.Pattern]
		if !ok {
			re, err := regexp.Compile(r.Pattern)
			res = result{re: re, err: err}
			cache[r.Pattern] = res
		}
		if res.err != nil {
			errs = append(errs, &RuleError{Rule: r.Name, Pattern: r.Pattern, Err: res.err})
			continue
		}
		m.rules = append(m.rules, compiledRule{name: r.Name, severity: r.Severity.OrDefault(), re: res.re})
	}
	return m, errs
}

// Len returns the number of active rules.
func (m *Matcher) Len() int { return len(m.rules) }

// Match evaluates every active rule against every line of text and returns
// one finding per (line, rule) pair that matches, ordered by line then rule.
// Lines are split on \n with a trailing \r removed and numbered from 1.
func (m *Matcher) Match(path, text string) []types.Finding {
	var out []types.Finding
	for n := 1; len(text) > 0; n++ {
		var line string
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			line, text = text[:i], text[i+1:]
		} else {
			line, text = text, ""
		}
		out = m.MatchLine(out, path, n, strings.TrimSuffix(line, "\r"))
	}
	return out
}

// MatchLine appends to out the findings for a single line.
func (m *Matcher) MatchLine(out []types.Finding, path string, n int, line string) []types.Finding {
	var snippet string
	for _, r := range m.rules {
		if !r.re.MatchString(line) {
			continue
		}
		if snippet == "" {
			snippet = makeSnippet(line)
		}
		out = append(out, types.Finding{
			File:     path,
			Line:     n,
			Snippet:  snippet,
			RuleName: r.name,
			Severity: r.severity,
		})
	}
	return out
}

// makeSnippet trims line and bounds it to maxSnippetLen characters,
// replacing the tail with an ellipsis when it is cut.
func makeSnippet(line string) string {
	s := strings.TrimSpace(line)
	if len(s) <= maxSnippetLen || utf8.RuneCountInString(s) <= maxSnippetLen {
		return s
	}
	keep := maxSnippetLen - len(ellipsis)
	i := 0
	for n := 0; n < keep; n++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return s[:i] + ellipsis
}
