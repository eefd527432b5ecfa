package fastsecret

import (
	"encoding/json"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fastsecret/fastsecret/internal/ignore"
	"github.com/fastsecret/fastsecret/internal/rules"
)

var (
	flagListRules       string
	flagListIgnoreRules string
	flagListYAML        bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List active rules",
		Long: `List the rules a scan would evaluate: the built-in catalog followed by any
custom rules, minus ignored names. --yaml prints them as a rule file that
--rules accepts.`,
		Args: cobra.NoArgs,
		RunE: runRules,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVar(&flagListRules, "rules", "", "YAML file with custom rules to include")
	cmd.Flags().StringVar(&flagListIgnoreRules, "ignore-rules", "", "comma-separated rule names to leave out")
	cmd.Flags().BoolVar(&flagListYAML, "yaml", false, "emit the rules as a YAML rule file")
}

type rulePack struct {
	Rules rules.RuleSet `yaml:"rules" json:"rules"`
}

func runRules(cmd *cobra.Command, _ []string) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	rs := activeRules(flagListRules, false, stderr).Without(ignore.Parse(flagListIgnoreRules))

	switch {
	case flagListYAML:
		enc := yaml.NewEncoder(stdout)
		enc.SetIndent(2)
		if err := enc.Encode(rulePack{Rules: rs}); err != nil {
			return err
		}
		return enc.Close()
	case flagJSON:
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rulePack{Rules: rs})
	}

	fmt.Fprintf(stdout, "Built-in catalog %s, %d active rules\n", rules.CatalogVersion, len(rs))
	table := tablewriter.NewWriter(stdout)
	table.Header("#", "NAME", "SEVERITY", "DESCRIPTION")
	for i, r := range rs {
		_ = table.Append([]string{fmt.Sprint(i + 1), r.Name, r.Severity.OrDefault().String(), r.Description})
	}
	return table.Render()
}
