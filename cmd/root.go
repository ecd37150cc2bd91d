package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "toolpatch",
	Short: "Locate and hot-patch named definitions in source files",
	Long: `Toolpatch is a CLI tool for inspecting and patching named definitions
(functions, methods, tools) in source files across many programming
languages without a per-language parser.

Languages are grouped into structural families (indentation, braces,
end keywords) so a handful of generic locators covers dozens of file
extensions. Every patch is validated before and after it is applied, and
a backup of the original file is recorded so changes stay reversible.`,
	Version:       Version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// ExitError carries a process exit code out of a command. Commands that
// already rendered their outcome return it with a nil Err so main exits
// without printing anything further.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// rejected signals exit code 1 after the outcome has been rendered.
func rejected() error {
	return &ExitError{Code: 1}
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to config file (default ~/.config/toolpatch/config.yaml)")
	rootCmd.PersistentFlags().Bool("no-ui", false, "disable interactive UI output")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "output format (text, json)")
}
