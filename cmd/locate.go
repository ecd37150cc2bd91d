package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toolpatch/cli/internal/ui"
)

// locateCmd represents the locate command
var locateCmd = &cobra.Command{
	Use:   "locate <file> <name>",
	Short: "Locate a named definition in a source file",
	Long: `Locate finds the definition named <name> in <file> and prints its line
span together with the extracted text, including any decorators,
attributes or doc comments directly above it.

Example usage:
  toolpatch locate server.py handle_request
  toolpatch locate main.go Run --output json`,
	Args: cobra.ExactArgs(2),
	RunE: runLocate,
}

func init() {
	rootCmd.AddCommand(locateCmd)
}

func runLocate(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	absPath, src, ext, err := a.readTarget(args[0])
	if err != nil {
		return err
	}

	res := a.dispatcher.Locate(src, ext, args[1])

	outputFormat, _ := cmd.Flags().GetString("output")
	if outputFormat == "json" {
		if err := outputJSON(res); err != nil {
			return err
		}
	} else {
		fmt.Print(ui.RenderLocateResult(absPath, res))
	}

	if !res.Found {
		return rejected()
	}
	return nil
}
