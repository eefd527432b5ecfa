package fastsecret

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fastsecret/fastsecret/internal/engine"
	"github.com/fastsecret/fastsecret/internal/logging"
	"github.com/fastsecret/fastsecret/internal/report"
	"github.com/fastsecret/fastsecret/internal/types"
)

var (
	flagPath          string
	flagRules         string
	flagIgnoreRules   string
	flagExitOnSecrets bool
	flagFailOn        string
	flagVerbose       bool
	flagTable         bool
	flagInclude       string
	flagExclude       string
	flagMaxBytes      int64
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a file or directory for secrets",
		Long: `Scan a file or directory for hardcoded secrets.

Dependency, build output, VCS and editor directories are skipped, as are
binary and media files by extension. Rule names listed in a .fastsecretignore
file in the scan root are ignored in addition to --ignore-rules.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "path to scan (a positional path takes precedence)")
	cmd.Flags().StringVar(&flagRules, "rules", "", "YAML file with custom rules, appended to the built-in catalog")
	cmd.Flags().StringVar(&flagIgnoreRules, "ignore-rules", "", "comma-separated rule names to skip")
	cmd.Flags().BoolVar(&flagExitOnSecrets, "exit-on-secrets", false, "exit with status 2 when findings at or above --fail-on exist")
	cmd.Flags().StringVar(&flagFailOn, "fail-on", "", "minimum severity that triggers --exit-on-secrets: low|medium|high (default low)")
	cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "log each match and each invalid rule to stderr")
	cmd.Flags().BoolVar(&flagTable, "table", false, "output in table format with borders")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 0, "skip files larger than this (0 = no limit)")
}

func runScan(cmd *cobra.Command, args []string) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	root := flagPath
	if len(args) == 1 {
		root = args[0]
	}
	if root == "" {
		return fmt.Errorf("empty path")
	}

	// Load configs: CLI > local > global
	lcfg, gcfg := loadFileConfigs(root, stderr)

	failOn := types.SevLow
	if s := pickString(flagFailOn, lcfg.FailOn, gcfg.FailOn); s != "" {
		sev, err := types.ParseSeverity(s)
		if err != nil {
			return fmt.Errorf("--fail-on: %w", err)
		}
		failOn = sev
	}
	verbose := pickBool(flagVerbose, lcfg.Verbose, gcfg.Verbose)
	machine := flagJSON || flagSARIF

	log := logging.NewTo(stderr, verbose)

	dir := root
	if info, err := os.Stat(root); err == nil && !info.IsDir() {
		dir = filepath.Dir(root)
	}

	rs := activeRules(pickString(flagRules, lcfg.Rules, gcfg.Rules), verbose, stderr)
	cfg := engine.Config{
		Root:         root,
		Rules:        rs,
		IgnoreRules:  ignoreSet(pickString(flagIgnoreRules, lcfg.IgnoreRules, gcfg.IgnoreRules), dir, stderr),
		Verbose:      verbose,
		Logger:       log,
		IncludeGlobs: pickString(flagInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs: pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		MaxBytes:     pickInt64(flagMaxBytes, lcfg.MaxBytes, gcfg.MaxBytes),
	}

	// Friendly banner before scanning
	if !machine {
		_, _ = fmt.Fprintf(stderr, "Scanning %s with %d rules...\n", root, len(rs.Without(cfg.IgnoreRules)))
	}

	// Optional progress bar: simple textual bar, only on a terminal
	showProgress := !machine && isTerminal(stderr)
	total := 0
	if showProgress {
		total, _ = engine.CountTargets(cfg)
	}
	progressed := 0
	if total > 0 {
		cfg.Progress = func() {
			progressed++
			if progressed%10 == 0 || progressed == total {
				pct := float64(progressed) / float64(total) * 100
				_, _ = fmt.Fprintf(stderr, "\r[%d/%d] %.0f%%", progressed, total, pct)
			}
		}
	}
	res, err := engine.ScanWithStats(cfg)
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}
	if total > 0 {
		_, _ = fmt.Fprintln(stderr)
	}
	// verbose mode already logged these through the engine
	if !verbose {
		for _, e := range res.RuleErrors {
			_, _ = fmt.Fprintln(stderr, "warning:", e)
		}
	}

	opts := report.PrintOptions{
		NoColor:      colorDisabled(stdout, flagNoColor, lcfg.NoColor, gcfg.NoColor),
		Duration:     res.Duration,
		FilesScanned: res.FilesScanned,
		FilesSkipped: res.FilesSkipped,
	}
	switch {
	case flagSARIF:
		sopts := report.SARIFOptions{ToolVersion: version, Rules: rs, FilesScanned: res.FilesScanned}
		if err := report.WriteSARIF(stdout, res.Findings, sopts); err != nil {
			return fmt.Errorf("sarif error: %w", err)
		}
	case flagJSON:
		if err := report.WriteJSON(stdout, res.Findings); err != nil {
			return err
		}
	case flagTable:
		report.PrintTable(stdout, res.Findings, opts)
	default:
		report.PrintText(stdout, res.Findings, opts)
	}

	if pickBool(flagExitOnSecrets, lcfg.ExitOnSecrets, gcfg.ExitOnSecrets) && report.ShouldFail(res.Findings, failOn) {
		return exitCode(exitSecrets)
	}
	return nil
}
