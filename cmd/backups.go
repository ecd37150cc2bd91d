package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/toolpatch/cli/internal/backup"
	"github.com/toolpatch/cli/internal/ui"
)

// backupsCmd represents the backups command
var backupsCmd = &cobra.Command{
	Use:   "backups [command]",
	Short: "Manage the backup registry",
	Long: `Backups manages the registry of pre-image snapshots recorded before
every applied patch.

Available subcommands:
  list        List recorded backups, optionally for one file
  show        Show one backup entry
  diff        Diff a backup against the file's current contents
  restore     Restore a file from a backup
  prune       Delete old backups
  checkpoint  Create, list and restore multi-file checkpoints`,
	RunE: runBackups,
}

var backupsListCmd = &cobra.Command{
	Use:   "list [file]",
	Short: "List recorded backups, newest first",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBackupsList,
}

var backupsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one backup entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackupsShow,
}

var backupsDiffCmd = &cobra.Command{
	Use:   "diff <id>",
	Short: "Diff a backup against the file's current contents",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackupsDiff,
}

var backupsRestoreCmd = &cobra.Command{
	Use:   "restore <id> [target]",
	Short: "Restore a file from a backup",
	Long: `Restore copies the backup back over its original file, or over [target]
when given. A safety copy of the current contents is written first.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runBackupsRestore,
}

var backupsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old backups",
	Long: `Prune deletes backups older than --older-than, always keeping the
--keep-recent newest entries per file.`,
	RunE: runBackupsPrune,
}

var checkpointCmd = &cobra.Command{
	Use:   "checkpoint [command]",
	Short: "Manage multi-file checkpoints",
	RunE:  runBackups,
}

var checkpointCreateCmd = &cobra.Command{
	Use:   "create <description> <file>...",
	Short: "Snapshot a set of files as one checkpoint",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runCheckpointCreate,
}

var checkpointListCmd = &cobra.Command{
	Use:   "list",
	Short: "List checkpoints, newest first",
	RunE:  runCheckpointList,
}

var checkpointRestoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Restore every file recorded in a checkpoint",
	RunE:  runCheckpointRestore,
	Args:  cobra.ExactArgs(1),
}

func init() {
	backupsCmd.AddCommand(backupsListCmd)
	backupsCmd.AddCommand(backupsShowCmd)
	backupsCmd.AddCommand(backupsDiffCmd)
	backupsCmd.AddCommand(backupsRestoreCmd)
	backupsCmd.AddCommand(backupsPruneCmd)

	checkpointCmd.AddCommand(checkpointCreateCmd)
	checkpointCmd.AddCommand(checkpointListCmd)
	checkpointCmd.AddCommand(checkpointRestoreCmd)
	backupsCmd.AddCommand(checkpointCmd)

	backupsPruneCmd.Flags().Duration("older-than", 30*24*time.Hour, "Age beyond which backups are deleted")
	backupsPruneCmd.Flags().Int("keep-recent", 5, "Newest entries to keep per file regardless of age")

	rootCmd.AddCommand(backupsCmd)
}

func runBackups(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

// withStore opens the registry, runs fn and closes it again.
func withStore(cmd *cobra.Command, fn func(*backup.Store) error) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	store, err := a.openBackups()
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func runBackupsList(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(store *backup.Store) error {
		file := ""
		if len(args) > 0 {
			abs, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("failed to resolve path: %w", err)
			}
			file = abs
		}
		entries, err := store.List(file)
		if err != nil {
			return err
		}
		if outputFormat, _ := cmd.Flags().GetString("output"); outputFormat == "json" {
			return outputJSON(entries)
		}
		fmt.Print(ui.RenderBackups(entries))
		return nil
	})
}

func runBackupsShow(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(store *backup.Store) error {
		entry, err := store.Get(args[0])
		if err != nil {
			return err
		}
		if outputFormat, _ := cmd.Flags().GetString("output"); outputFormat == "json" {
			return outputJSON(entry)
		}
		fmt.Print(ui.RenderBackupEntry(entry))
		return nil
	})
}

func runBackupsDiff(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(store *backup.Store) error {
		diff, err := store.Diff(args[0])
		if err != nil {
			return err
		}
		if diff == "" {
			fmt.Println("No differences.")
			return nil
		}
		fmt.Print(diff)
		return nil
	})
}

func runBackupsRestore(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	store, err := a.openBackups()
	if err != nil {
		return err
	}
	defer store.Close()

	entry, err := store.Get(args[0])
	if err != nil {
		return err
	}
	target := entry.FilePath
	if len(args) > 1 {
		if target, err = filepath.Abs(args[1]); err != nil {
			return fmt.Errorf("failed to resolve path: %w", err)
		}
	}
	if err := a.cfg.CheckPathAllowed(target); err != nil {
		return err
	}

	msg, err := store.Restore(entry.ID, target)
	if err != nil {
		return err
	}
	if outputFormat, _ := cmd.Flags().GetString("output"); outputFormat == "json" {
		return outputJSON(map[string]string{"message": msg, "target": target})
	}
	fmt.Printf("✅ %s\n", msg)
	return nil
}

func runBackupsPrune(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(store *backup.Store) error {
		olderThan, _ := cmd.Flags().GetDuration("older-than")
		keepRecent, _ := cmd.Flags().GetInt("keep-recent")
		removed, kept, err := store.Prune(olderThan, keepRecent)
		if err != nil {
			return err
		}
		if outputFormat, _ := cmd.Flags().GetString("output"); outputFormat == "json" {
			return outputJSON(map[string]int{"removed": removed, "kept": kept})
		}
		fmt.Printf("🧹 Pruned %d backups, kept %d\n", removed, kept)
		return nil
	})
}

func runCheckpointCreate(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(store *backup.Store) error {
		description := args[0]
		files := make([]string, 0, len(args)-1)
		for _, f := range args[1:] {
			abs, err := filepath.Abs(f)
			if err != nil {
				return fmt.Errorf("failed to resolve path: %w", err)
			}
			files = append(files, abs)
		}

		var cp backup.Checkpoint
		err := runWithSpinner(cmd, "Creating checkpoint...", func() error {
			var e error
			cp, e = store.CreateCheckpoint(description, files)
			return e
		})
		if err != nil {
			return err
		}

		if outputFormat, _ := cmd.Flags().GetString("output"); outputFormat == "json" {
			return outputJSON(cp)
		}
		fmt.Printf("✅ Checkpoint '%s' created with %d files\n", cp.ID, len(cp.Files))
		return nil
	})
}

func runCheckpointList(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(store *backup.Store) error {
		cps, err := store.ListCheckpoints()
		if err != nil {
			return err
		}
		if outputFormat, _ := cmd.Flags().GetString("output"); outputFormat == "json" {
			return outputJSON(cps)
		}
		fmt.Print(ui.RenderCheckpoints(cps))
		return nil
	})
}

func runCheckpointRestore(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(store *backup.Store) error {
		var restored int
		err := runWithSpinner(cmd, "Restoring checkpoint...", func() error {
			var e error
			restored, e = store.RestoreCheckpoint(args[0])
			return e
		})
		if err != nil {
			return err
		}
		if outputFormat, _ := cmd.Flags().GetString("output"); outputFormat == "json" {
			return outputJSON(map[string]int{"restored": restored})
		}
		fmt.Printf("✅ Restored %d files from checkpoint '%s'\n", restored, args[0])
		return nil
	})
}
