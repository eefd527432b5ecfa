package fastsecret

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fastsecret/fastsecret/internal/engine"
	"github.com/fastsecret/fastsecret/internal/report"
	"github.com/fastsecret/fastsecret/internal/rules"
)

var flagTestRulesFile string

func init() {
	cmd := &cobra.Command{
		Use:   "test-rules [name...]",
		Short: "Run rules against provided text (stdin)",
		Long: `Evaluate rules against text read from stdin, reported as file "stdin".
With names, only those rules run; otherwise every active rule does.`,
		RunE: runTestRules,
	}
	cmd.Flags().StringVar(&flagTestRulesFile, "rules", "", "YAML file with custom rules to include")
	rootCmd.AddCommand(cmd)
}

func runTestRules(cmd *cobra.Command, args []string) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	rs := activeRules(flagTestRulesFile, false, stderr)
	if len(args) > 0 {
		picked, missing := selectRules(rs, args)
		if len(missing) > 0 {
			names := rs.Names()
			sort.Strings(names)
			fmt.Fprintf(stderr, "unknown rule: %s\n", strings.Join(missing, ", "))
			fmt.Fprintf(stderr, "available: %s\n", strings.Join(names, ", "))
			return exitCode(exitError)
		}
		rs = picked
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return err
	}
	m, ruleErrs := engine.NewMatcher(rs, nil)
	for _, e := range ruleErrs {
		_, _ = fmt.Fprintln(stderr, "warning:", e)
	}
	fs := m.Match("stdin", string(data))

	if flagJSON {
		return report.WriteJSON(stdout, fs)
	}
	report.PrintText(stdout, fs, report.PrintOptions{NoColor: colorDisabled(stdout, flagNoColor, nil, nil)})
	return nil
}

// selectRules keeps the rules named in names, in catalog order.
func selectRules(rs rules.RuleSet, names []string) (rules.RuleSet, []string) {
	want := map[string]bool{}
	for _, n := range names {
		want[n] = false
	}
	var out rules.RuleSet
	for _, r := range rs {
		if _, ok := want[r.Name]; ok {
			want[r.Name] = true
			out = append(out, r)
		}
	}
	var missing []string
	for _, n := range names {
		if !want[n] {
			missing = append(missing, n)
		}
	}
	return out, missing
}
