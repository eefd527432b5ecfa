package fastsecret

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fastsecret/fastsecret/internal/config"
	"github.com/fastsecret/fastsecret/internal/types"
)

var (
	cfgOutput        string
	cfgGlobal        bool
	cfgForce         bool
	cfgRules         string
	cfgIgnoreRules   string
	cfgInclude       string
	cfgExclude       string
	cfgMaxBytes      int64
	cfgFailOn        string
	cfgExitOnSecrets bool
	cfgNoColor       bool
)

const configHeader = "# fastsecret configuration. Command-line flags take precedence over this\n# file, and a repo-local file takes precedence over the global one.\n"

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .fastsecret.yml with the selected options",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&cfgOutput, "output", config.LocalNames[0], "output file path")
	initCmd.Flags().BoolVar(&cfgGlobal, "global", false, "write the global config file instead")
	initCmd.Flags().BoolVar(&cfgForce, "force", false, "overwrite an existing file")
	initCmd.Flags().StringVar(&cfgRules, "rules", "", "custom rules file")
	initCmd.Flags().StringVar(&cfgIgnoreRules, "ignore-rules", "", "comma-separated rule names to skip")
	initCmd.Flags().StringVar(&cfgInclude, "include", "", "comma-separated include globs")
	initCmd.Flags().StringVar(&cfgExclude, "exclude", "", "comma-separated exclude globs")
	initCmd.Flags().Int64Var(&cfgMaxBytes, "max-bytes", 0, "skip files larger than this (0 = no limit)")
	initCmd.Flags().StringVar(&cfgFailOn, "fail-on", "low", "minimum severity for exit_on_secrets: low|medium|high")
	initCmd.Flags().BoolVar(&cfgExitOnSecrets, "exit-on-secrets", false, "exit with status 2 when findings exist")
	initCmd.Flags().BoolVar(&cfgNoColor, "no-color", false, "disable color output by default")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	sev, err := types.ParseSeverity(cfgFailOn)
	if err != nil {
		return fmt.Errorf("--fail-on: %w", err)
	}
	path := cfgOutput
	if cfgGlobal {
		if path, err = config.GlobalPath(); err != nil {
			return err
		}
	}
	if _, err := os.Stat(path); err == nil && !cfgForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	fc := config.FileConfig{
		Rules:         optStrPtr(cfgRules),
		IgnoreRules:   optStrPtr(cfgIgnoreRules),
		Include:       optStrPtr(cfgInclude),
		Exclude:       optStrPtr(cfgExclude),
		MaxBytes:      int64Ptr(cfgMaxBytes),
		NoColor:       boolPtr(cfgNoColor),
		ExitOnSecrets: boolPtr(cfgExitOnSecrets),
		FailOn:        strPtr(sev.String()),
	}

	var buf bytes.Buffer
	buf.WriteString(configHeader)
	b, err := yaml.Marshal(&fc)
	if err != nil {
		return err
	}
	buf.Write(b)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
	return nil
}
