package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toolpatch/cli/internal/dispatch"
	"github.com/toolpatch/cli/internal/logger"
	"github.com/toolpatch/cli/internal/ui"
)

// injectCmd represents the inject command
var injectCmd = &cobra.Command{
	Use:   "inject <file> <name>",
	Short: "Inject a new definition into a source file",
	Long: `Inject validates the candidate code and appends it to <file> under a
provenance comment. The candidate comes from --code-file, --code or
stdin. The original file is snapshotted into the backup registry before
anything is written.

Example usage:
  toolpatch inject server.py health_check --code-file health.py
  toolpatch inject server.py ping --code 'def ping():
      return "pong"'
  cat tool.py | toolpatch inject server.py new_tool --merge-imports`,
	Args: cobra.ExactArgs(2),
	RunE: runInject,
}

func init() {
	rootCmd.AddCommand(injectCmd)

	injectCmd.Flags().String("code-file", "", "File containing the candidate definition")
	injectCmd.Flags().String("code", "", "Candidate definition as a literal string")
	injectCmd.Flags().Bool("merge-imports", false, "Copy the candidate's missing imports into the file")
	injectCmd.Flags().Bool("dry-run", false, "Show the resulting diff without writing anything")
}

func runInject(cmd *cobra.Command, args []string) error {
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

	mergeImports, _ := cmd.Flags().GetBool("merge-imports")
	stop := logger.StartTask(a.log, fmt.Sprintf("Injecting %s...", name))
	res := a.dispatcher.Inject(cmd.Context(), src, ext, name, candidate,
		dispatch.InjectOptions{MergeImports: mergeImports})
	stop()

	outputFormat, _ := cmd.Flags().GetString("output")
	if !res.Applied {
		return renderRejection(outputFormat, absPath, res)
	}

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		return renderDryRun(outputFormat, absPath, src, res)
	}

	info, err := a.persistPatch(absPath, "inject", name, res.NewText)
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

// renderDryRun reports an applied-but-unwritten patch as a unified diff.
func renderDryRun(outputFormat, absPath, src string, res dispatch.PatchResult) error {
	diff, err := unifiedDiff(absPath, src, res.NewText)
	if err != nil {
		return fmt.Errorf("failed to compute diff: %w", err)
	}
	if outputFormat == "json" {
		return outputJSON(map[string]interface{}{
			"result":  res,
			"dry_run": true,
			"diff":    diff,
		})
	}
	fmt.Print(ui.RenderPatchResult(absPath, res))
	fmt.Println("Dry run: nothing was written.")
	if diff != "" {
		fmt.Println()
		fmt.Print(diff)
	}
	return nil
}
