package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toolpatch/cli/internal/ui"
)

// languagesCmd represents the languages command
var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported languages",
	Long: `Languages lists every supported extension with its structural family
and the command (or built-in parser) used for tier-2 validation.`,
	RunE: runLanguages,
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}

func runLanguages(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	profiles := a.registry.Profiles()

	outputFormat, _ := cmd.Flags().GetString("output")
	if outputFormat == "json" {
		type languageInfo struct {
			Ext    string `json:"ext"`
			Name   string `json:"name"`
			Family string `json:"family"`
			Check  string `json:"check"`
		}
		infos := make([]languageInfo, 0, len(profiles))
		for _, p := range profiles {
			check := "tier 1 only"
			switch {
			case a.native[p.Ext]:
				check = "built-in parser"
			case p.Toolchain != nil && len(p.Toolchain.Candidates) > 0:
				check = p.Toolchain.Candidates[0][0]
			}
			infos = append(infos, languageInfo{
				Ext:    p.Ext,
				Name:   p.Name,
				Family: string(p.Family),
				Check:  check,
			})
		}
		return outputJSON(infos)
	}

	fmt.Print(ui.RenderLanguages(profiles, a.native))
	return nil
}
