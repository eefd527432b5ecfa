package fastsecret

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/spf13/cobra"

	"github.com/fastsecret/fastsecret/internal/rules"
)

var (
	rulesBegin = []byte("<!-- BEGIN:RULES -->")
	rulesEnd   = []byte("<!-- END:RULES -->")
)

// gendocs regenerates the built-in rules table in a markdown file between
// the markers <!-- BEGIN:RULES --> and <!-- END:RULES -->.
func init() {
	cmd := &cobra.Command{
		Use:    "gendocs [file]",
		Short:  "Regenerate the README rules table",
		Hidden: true,
		Args:   cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "README.md"
			if len(args) == 1 {
				path = args[0]
			}
			b, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			nb, err := spliceRulesTable(b, rules.LoadBuiltinRules())
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if err := os.WriteFile(path, nb, 0o644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Updated", path)
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
}

func spliceRulesTable(doc []byte, rs rules.RuleSet) ([]byte, error) {
	i := bytes.Index(doc, rulesBegin)
	j := bytes.Index(doc, rulesEnd)
	if i < 0 || j < 0 || j <= i {
		return nil, fmt.Errorf("markers not found")
	}

	var out strings.Builder
	fmt.Fprintf(&out, "\nBuilt-in catalog %s (%d rules; run `fastsecret rules` for the active set):\n\n", rules.CatalogVersion, len(rs))
	table := tablewriter.NewTable(&out, tablewriter.WithRenderer(renderer.NewMarkdown()))
	table.Header("Rule", "Severity", "Description")
	for _, r := range rs {
		_ = table.Append([]string{r.Name, r.Severity.OrDefault().String(), r.Description})
	}
	if err := table.Render(); err != nil {
		return nil, err
	}
	out.WriteString("\n")

	var nb bytes.Buffer
	nb.Write(doc[:i])
	nb.Write(rulesBegin)
	nb.WriteString("\n")
	nb.WriteString(out.String())
	nb.Write(rulesEnd)
	nb.Write(doc[j+len(rulesEnd):])
	return nb.Bytes(), nil
}
