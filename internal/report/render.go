package report

import (
	"fmt"
	"io"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/fastsecret/fastsecret/internal/types"
)

// Console snippets are shortened further than the engine's bound so a
// finding fits on one terminal line.
const displaySnippetLen = 80

type PrintOptions struct {
	NoColor      bool
	Duration     time.Duration
	FilesScanned int
	FilesSkipped int
}

type palette struct {
	high, med, low, loc, rule, dim, ok, alert *color.Color
}

func newPalette(noColor bool) palette {
	p := palette{
		high:  color.New(color.FgRed, color.Bold),
		med:   color.New(color.FgYellow, color.Bold),
		low:   color.New(color.FgCyan),
		loc:   color.New(color.FgHiBlue),
		rule:  color.New(color.Bold),
		dim:   color.New(color.Faint),
		ok:    color.New(color.FgGreen, color.Bold),
		alert: color.New(color.FgRed, color.Bold),
	}
	if noColor {
		for _, c := range []*color.Color{p.high, p.med, p.low, p.loc, p.rule, p.dim, p.ok, p.alert} {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s types.Severity) string {
	switch s {
	case types.SevHigh:
		return p.high.Sprint("HIGH")
	case types.SevMed:
		return p.med.Sprint("MEDIUM")
	default:
		return p.low.Sprint("LOW")
	}
}

// PrintText writes one line per finding in scan order:
//
//	[path: line] SEVERITY — Rule Name (snippet)
func PrintText(w io.Writer, findings []types.Finding, opts PrintOptions) {
	p := newPalette(opts.NoColor)
	if len(findings) == 0 {
		fmt.Fprintln(w, p.ok.Sprint("No secrets found ✅"))
	} else {
		fmt.Fprintln(w, p.alert.Sprint("Possible secrets found:"))
		for _, f := range findings {
			fmt.Fprintf(w, "  %s %s %s %s (%s)\n",
				p.loc.Sprintf("[%s: %d]", f.File, f.Line),
				p.severity(f.Severity),
				p.dim.Sprint("—"),
				p.rule.Sprint(f.RuleName),
				p.dim.Sprint(shorten(f.Snippet, displaySnippetLen)),
			)
		}
	}
	printFooter(w, findings, opts)
}

// PrintTable renders findings as a bordered table followed by the summary
// footer.
func PrintTable(w io.Writer, findings []types.Finding, opts PrintOptions) {
	p := newPalette(opts.NoColor)
	if len(findings) == 0 {
		fmt.Fprintln(w, p.ok.Sprint("No secrets found ✅"))
	} else {
		fmt.Fprintf(w, "Findings: %d\n", len(findings))
		table := tablewriter.NewWriter(w)
		table.Header("SEVERITY", "RULE", "FILE", "LINE", "SNIPPET")
		for _, f := range findings {
			_ = table.Append([]string{
				p.severity(f.Severity),
				f.RuleName,
				f.File,
				strconv.Itoa(f.Line),
				shorten(f.Snippet, displaySnippetLen),
			})
		}
		_ = table.Render()
	}
	printFooter(w, findings, opts)
}

func printFooter(w io.Writer, findings []types.Finding, opts PrintOptions) {
	c := Count(findings)
	if len(findings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Found %d potential secret(s) (high: %d, medium: %d, low: %d)\n", len(findings), c.High, c.Med, c.Low)
	}
	// Summary footer (always show if we have stats)
	if opts.Duration > 0 || opts.FilesScanned > 0 {
		if len(findings) == 0 {
			fmt.Fprintln(w)
		}
		if opts.Duration > 0 {
			fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
		}
		if opts.FilesScanned > 0 {
			fmt.Fprintf(w, "Files scanned: %d\n", opts.FilesScanned)
		}
		if opts.FilesSkipped > 0 {
			fmt.Fprintf(w, "Files skipped: %d\n", opts.FilesSkipped)
		}
	}
}

// shorten bounds s to n runes, marking the cut with "...".
func shorten(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}
