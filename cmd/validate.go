package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/toolpatch/cli/internal/logger"
	"github.com/toolpatch/cli/internal/ui"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate source code without patching anything",
	Long: `Validate runs the two-tier syntax check: a cheap structural pass first,
then the language's own compiler or interpreter when one is installed.

Given a file argument it validates that file's contents. Given --ext it
validates candidate code from --code-file, --code or stdin instead.

Example usage:
  toolpatch validate server.py
  toolpatch validate --ext .py --code 'def f(): pass'
  cat candidate.rb | toolpatch validate --ext .rb`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().String("ext", "", "Language extension to validate as (e.g. .py)")
	validateCmd.Flags().String("code-file", "", "File containing the code to validate")
	validateCmd.Flags().String("code", "", "Code to validate as a literal string")
}

func runValidate(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	var code, ext string
	if len(args) > 0 {
		_, src, fileExt, err := a.readTarget(args[0])
		if err != nil {
			return err
		}
		ext = fileExt
		codeFile, _ := cmd.Flags().GetString("code-file")
		codeFlag, _ := cmd.Flags().GetString("code")
		if codeFile != "" || codeFlag != "" {
			if code, err = readCandidate(cmd); err != nil {
				return err
			}
		} else {
			code = src
		}
	} else {
		if extFlag, _ := cmd.Flags().GetString("ext"); extFlag == "" {
			return fmt.Errorf("no language given: pass a file argument or --ext")
		}
		if code, err = readCandidate(cmd); err != nil {
			return err
		}
	}
	if extFlag, _ := cmd.Flags().GetString("ext"); extFlag != "" {
		ext = extFlag
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
	}
	ext = strings.ToLower(ext)

	stop := logger.StartTask(a.log, "Validating...")
	rep := a.dispatcher.Validate(cmd.Context(), ext, code)
	stop()

	outputFormat, _ := cmd.Flags().GetString("output")
	if outputFormat == "json" {
		if err := outputJSON(rep); err != nil {
			return err
		}
	} else {
		fmt.Print(ui.RenderValidateReport(rep))
	}

	if !rep.Supported || !rep.Valid() {
		return rejected()
	}
	return nil
}
