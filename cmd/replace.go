package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toolpatch/cli/internal/logger"
	"github.com/toolpatch/cli/internal/ui"
)

// replaceCmd represents the replace command
var replaceCmd = &cobra.Command{
	Use:   "replace <file> <name>",
	Short: "Replace a definition in a source file",
	Long: `Replace swaps the definition named <name> in <file> for the candidate
code, validated first on its own and again in place. Everything outside
the replaced span is preserved byte for byte.

Example usage:
  toolpatch replace server.py handle_request --code-file fixed.py
  cat fixed.go | toolpatch replace main.go Run --dry-run`,
	Args: cobra.ExactArgs(2),
	RunE: runReplace,
}

func init() {
	rootCmd.AddCommand(replaceCmd)

	replaceCmd.Flags().String("code-file", "", "File containing the replacement definition")
	replaceCmd.Flags().String("code", "", "Replacement definition as a literal string")
	replaceCmd.Flags().Bool("dry-run", false, "Show the resulting diff without writing anything")
}

func runReplace(cmd *cobra.Command, args []string) error {
	file, name := args[0], args[1]

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	candidate, err := readCandidate(cmd)
	if err != nil {
		return err
	}
	absPath, src, ext, err := a.readTarget(file)
	if err != nil {
		return err
	}

	stop := logger.StartTask(a.log, fmt.Sprintf("Replacing %s...", name))
	res := a.dispatcher.Replace(cmd.Context(), src, ext, name, candidate)
	stop()

	outputFormat, _ := cmd.Flags().GetString("output")
	if !res.Applied {
		return renderRejection(outputFormat, absPath, res)
	}

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		return renderDryRun(outputFormat, absPath, src, res)
	}

	info, err := a.persistPatch(absPath, "replace", name, res.NewText)
	if err != nil {
		return err
	}
	res.NeedsCompile = info.NeedsCompile

	if outputFormat == "json" {
		return outputJSON(res)
	}
	fmt.Print(ui.RenderPatchResult(absPath, res))
	if info.NeedsCompile {
		fmt.Print(ui.RenderBuildAdvisory(info))
	}
	return nil
}
