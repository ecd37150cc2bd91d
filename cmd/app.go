package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/toolpatch/cli/internal/analyzer"
	"github.com/toolpatch/cli/internal/backup"
	"github.com/toolpatch/cli/internal/buildsys"
	"github.com/toolpatch/cli/internal/commander"
	"github.com/toolpatch/cli/internal/config"
	"github.com/toolpatch/cli/internal/dispatch"
	"github.com/toolpatch/cli/internal/imports"
	"github.com/toolpatch/cli/internal/lang"
	"github.com/toolpatch/cli/internal/locator"
	"github.com/toolpatch/cli/internal/logger"
	"github.com/toolpatch/cli/internal/ui"
	"github.com/toolpatch/cli/internal/validate"
)

// app bundles the wired services every command works against. Commands
// construct it from the persistent flags instead of reaching for globals.
type app struct {
	cfg        *config.Config
	log        logger.Logger
	registry   *lang.Registry
	locator    *locator.Locator
	dispatcher *dispatch.Dispatcher
	analyzer   *analyzer.Analyzer

	// native marks extensions whose tier-2 check runs in process.
	native map[string]bool
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	noUI, _ := cmd.Flags().GetBool("no-ui")
	outputFormat, _ := cmd.Flags().GetString("output")
	var log logger.Logger
	switch {
	case outputFormat == "json":
		// Progress lines must not corrupt the JSON on stdout.
		log = &logger.StderrLogger{}
	case !noUI && logger.IsInteractive():
		log = logger.NewUILogger()
	default:
		log = &logger.StdoutLogger{}
	}

	registry := lang.NewRegistry()

	loc := locator.New()
	loc.RegisterSyntax(".go", locator.NewGoSyntax())
	loc.RegisterSyntax(".py", locator.NewPythonSyntax())

	validator := validate.NewValidator(commander.NewReal())
	validator.Register(".go", validate.NewGoChecker())
	if cfg.Validation.DisableToolchain {
		validator.DisableToolchain()
	}
	validator.SetTimeoutScale(cfg.Validation.TimeoutScale)

	return &app{
		cfg:      cfg,
		log:      log,
		registry: registry,
		locator:  loc,
		dispatcher: dispatch.New(
			registry, validator, loc, imports.NewService(registry), log),
		analyzer: analyzer.New(registry, loc),
		native:   map[string]bool{".go": true},
	}, nil
}

// openBackups opens the backup registry at the configured location.
func (a *app) openBackups() (*backup.Store, error) {
	store, err := backup.Open(a.cfg.BackupDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open backup registry: %w", err)
	}
	return store, nil
}

// readTarget loads the patch target and derives its extension. The path
// is resolved and checked against the allowed root before any read.
func (a *app) readTarget(file string) (absPath, src, ext string, err error) {
	absPath, err = filepath.Abs(file)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to resolve path: %w", err)
	}
	if err = a.cfg.CheckPathAllowed(absPath); err != nil {
		return "", "", "", err
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to read source file: %w", err)
	}
	return absPath, string(data), strings.ToLower(filepath.Ext(absPath)), nil
}

// readCandidate resolves the candidate code from --code-file, --code or
// stdin, in that order of precedence.
func readCandidate(cmd *cobra.Command) (string, error) {
	if codeFile, _ := cmd.Flags().GetString("code-file"); codeFile != "" {
		data, err := os.ReadFile(codeFile)
		if err != nil {
			return "", fmt.Errorf("failed to read code file: %w", err)
		}
		return string(data), nil
	}
	if code, _ := cmd.Flags().GetString("code"); code != "" {
		return code, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read code from stdin: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("no candidate code given: use --code-file, --code or pipe it on stdin")
	}
	return string(data), nil
}

// persistPatch snapshots the target into the backup registry, writes the
// patched text and probes the surrounding project for a build system.
func (a *app) persistPatch(absPath, operation, tool, newText string) (buildsys.Info, error) {
	store, err := a.openBackups()
	if err != nil {
		return buildsys.Info{}, err
	}
	defer store.Close()

	if _, err := store.Snapshot(absPath, operation, tool); err != nil {
		return buildsys.Info{}, fmt.Errorf("failed to record backup: %w", err)
	}
	if err := writeTarget(absPath, newText); err != nil {
		return buildsys.Info{}, err
	}
	return buildsys.Detect(buildsys.ProjectRoot(absPath)), nil
}

// writeTarget writes the patched text back, keeping the file's permissions.
func writeTarget(path, text string) error {
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(text), mode); err != nil {
		return fmt.Errorf("failed to write source file: %w", err)
	}
	return nil
}

// renderRejection reports a patch the dispatcher refused and maps it to
// exit code 1.
func renderRejection(outputFormat, absPath string, res dispatch.PatchResult) error {
	if outputFormat == "json" {
		if err := outputJSON(res); err != nil {
			return err
		}
	} else {
		fmt.Print(ui.RenderPatchResult(absPath, res))
	}
	return rejected()
}

// runWithSpinner animates interactive runs and falls back to running the
// action directly when the output is piped, machine-readable or --no-ui.
func runWithSpinner(cmd *cobra.Command, title string, action func() error) error {
	noUI, _ := cmd.Flags().GetBool("no-ui")
	outputFormat, _ := cmd.Flags().GetString("output")
	if noUI || outputFormat == "json" || !logger.IsInteractive() {
		return action()
	}
	return ui.RunSpinner(cmd.Context(), title, action)
}

func unifiedDiff(path, before, after string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: path,
		ToFile:   path + " (patched)",
		Context:  3,
	})
}

func outputJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
