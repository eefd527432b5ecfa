package fastsecret

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/fastsecret/fastsecret/internal/config"
	"github.com/fastsecret/fastsecret/internal/ignore"
	"github.com/fastsecret/fastsecret/internal/rules"
)

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickInt64(cli int64, local, global *int64) int64 {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// colorDisabled decides whether output to w should be plain.
func colorDisabled(w io.Writer, cli bool, local, global *bool) bool {
	if pickBool(cli, local, global) {
		return true
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return true
	}
	return !isTerminal(w)
}

// loadFileConfigs returns the local and global config files for root. A root
// that is a file uses its directory. Missing files are not an error; files
// that fail to parse are reported on stderr and otherwise ignored.
func loadFileConfigs(root string, stderr io.Writer) (local, global config.FileConfig) {
	dir := root
	if info, err := os.Stat(root); err == nil && !info.IsDir() {
		dir = filepath.Dir(root)
	}
	if c, err := config.LoadGlobal(); err == nil {
		global = c
	} else if !errors.Is(err, config.ErrNotFound) && !errors.Is(err, config.ErrNoConfigDir) {
		fmt.Fprintln(stderr, "warning: ignoring global config:", err)
	}
	if c, err := config.LoadLocal(dir); err == nil {
		local = c
	} else if !errors.Is(err, config.ErrNotFound) {
		fmt.Fprintln(stderr, "warning: ignoring local config:", err)
	}
	return local, global
}

// activeRules assembles the built-in catalog followed by the custom rules at
// rulesPath, if any. A custom file that fails to load is reported and
// skipped, leaving the built-ins in effect.
func activeRules(rulesPath string, verbose bool, stderr io.Writer) rules.RuleSet {
	rs := rules.LoadBuiltinRules()
	if rulesPath == "" {
		return rs
	}
	custom, err := rules.LoadCustomRules(rulesPath)
	if err != nil {
		fmt.Fprintf(stderr, "warning: failed to load custom rules from '%s': %v\n", rulesPath, err)
		return rs
	}
	if verbose {
		fmt.Fprintf(stderr, "Loaded %d custom rules\n", len(custom))
	}
	return rs.Concat(custom)
}

// ignoreSet merges the comma-separated names with the .fastsecretignore file
// in dir, when present.
func ignoreSet(names, dir string, stderr io.Writer) ignore.Set {
	set := ignore.Parse(names)
	fromFile, err := ignore.Load(filepath.Join(dir, ignore.FileName))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(stderr, "warning: could not read", ignore.FileName+":", err)
		}
		return set
	}
	return set.Merge(fromFile)
}

func strPtr(s string) *string { return &s }
func optStrPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool    { return &v }
