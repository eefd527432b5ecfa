package fastsecret

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagJSON    bool
	flagSARIF   bool
	flagNoColor bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the fastsecret CLI.
var rootCmd = &cobra.Command{
	Use:           "fastsecret",
	Short:         "Find hardcoded secrets in files and directories",
	Long:          "fastsecret scans a file or directory tree line by line against a catalog of secret patterns and reports each match with file, line and severity.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// exitCode is returned by a command that wants a specific process status
// without printing an error.
type exitCode int

func (c exitCode) Error() string { return fmt.Sprintf("exit status %d", int(c)) }

// Exit codes.
const (
	exitOK      = 0
	exitError   = 1
	exitSecrets = 2
)

// Execute runs the fastsecret CLI. It should be called by the main package.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.Execute(); err != nil {
		var code exitCode
		if errors.As(err, &code) {
			return int(code)
		}
		fmt.Fprintln(stderr, "error:", err)
		return exitError
	}
	return exitOK
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().BoolVar(&flagSARIF, "sarif", false, "emit SARIF 2.1.0")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
}
