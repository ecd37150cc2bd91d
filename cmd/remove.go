package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toolpatch/cli/internal/logger"
	"github.com/toolpatch/cli/internal/ui"
)

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:   "remove <file> <name>",
	Short: "Remove a definition from a source file",
	Long: `Remove deletes the definition named <name> from <file>, including its
decorators and doc comments, and collapses the blank lines left behind.
The patched file is re-validated; if removal would break the syntax the
file is left untouched.

Example usage:
  toolpatch remove server.py obsolete_handler
  toolpatch remove main.go Run --dry-run`,
	Args: cobra.ExactArgs(2),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)

	removeCmd.Flags().Bool("dry-run", false, "Show the resulting diff without writing anything")
}

func runRemove(cmd *cobra.Command, args []string) error {
	file, name := args[0], args[1]

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	absPath, src, ext, err := a.readTarget(file)
	if err != nil {
		return err
	}

	stop := logger.StartTask(a.log, fmt.Sprintf("Removing %s...", name))
	res := a.dispatcher.Remove(cmd.Context(), src, ext, name)
	stop()

	outputFormat, _ := cmd.Flags().GetString("output")
	if !res.Applied {
		return renderRejection(outputFormat, absPath, res)
	}

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		return renderDryRun(outputFormat, absPath, src, res)
	}

	info, err := a.persistPatch(absPath, "remove", name, res.NewText)
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
