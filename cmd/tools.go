package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toolpatch/cli/internal/analyzer"
	"github.com/toolpatch/cli/internal/lang"
	"github.com/toolpatch/cli/internal/ui"
)

// toolsCmd represents the tools command
var toolsCmd = &cobra.Command{
	Use:   "tools <file>",
	Short: "List the definitions in a source file",
	Long: `Tools lists every definition found in <file> with its line span,
signature and leading doc comment.

Example usage:
  toolpatch tools server.py
  toolpatch tools main.go --output json`,
	Args: cobra.ExactArgs(1),
	RunE: runTools,
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}

func runTools(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	absPath, src, ext, err := a.readTarget(args[0])
	if err != nil {
		return err
	}

	outputFormat, _ := cmd.Flags().GetString("output")

	tools, err := a.analyzer.List(src, ext)
	if err != nil {
		if outputFormat == "json" {
			if jsonErr := outputJSON(map[string]string{"error": err.Error()}); jsonErr != nil {
				return jsonErr
			}
		} else {
			fmt.Printf("❌ %v\n", err)
		}
		return rejected()
	}

	language := ext
	if p, ok := a.registry.Get(ext); ok {
		language = lang.DetectName(absPath, []byte(src), p.Name)
	}

	if outputFormat == "json" {
		return outputJSON(struct {
			File     string          `json:"file"`
			Language string          `json:"language"`
			Tools    []analyzer.Tool `json:"tools"`
		}{absPath, language, tools})
	}
	fmt.Print(ui.RenderTools(absPath, language, tools))
	return nil
}
