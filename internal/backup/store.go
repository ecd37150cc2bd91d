// Package backup tracks pre-image snapshots in a persistent registry so
// every applied patch can be reverted. The registry is a bbolt database;
// backup files live next to the originals as "<file>.bak", checkpoint
// copies under the registry directory.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pmezard/go-difflib/difflib"
	bolt "go.etcd.io/bbolt"
)

// ErrNotFound reports an id absent from the registry.
var ErrNotFound = errors.New("backup not found")

var (
	bucketBackups     = []byte("backups")
	bucketCheckpoints = []byte("checkpoints")
)

// Entry is one registered single-file backup.
type Entry struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	FilePath   string    `json:"file_path"`
	BackupPath string    `json:"backup_path"`
	Operation  string    `json:"operation"`
	Tool       string    `json:"tool,omitempty"`
}

// Checkpoint is a named multi-file snapshot taken as a unit.
type Checkpoint struct {
	ID          string           `json:"id"`
	Timestamp   time.Time        `json:"timestamp"`
	Description string           `json:"description"`
	Files       []CheckpointFile `json:"files"`
}

// CheckpointFile maps one original path to its saved copy.
type CheckpointFile struct {
	Original string `json:"original"`
	Saved    string `json:"saved"`
}

// Store is the bbolt-backed backup registry.
type Store struct {
	db  *bolt.DB
	dir string
}

// Open opens or creates the registry database, creating the parent
// directory as needed. The short open timeout keeps a concurrent holder of
// the file lock from hanging the CLI.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open backup registry: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketBackups, bucketCheckpoints} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init backup registry: %w", err)
	}
	return &Store{db: db, dir: dir}, nil
}

// Close releases the database file lock.
func (s *Store) Close() error { return s.db.Close() }

// Snapshot copies file to file+".bak" and registers the pre-image. The
// returned entry id is what restore and diff take.
func (s *Store) Snapshot(file, operation, tool string) (Entry, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return Entry{}, fmt.Errorf("read %s: %w", file, err)
	}
	backupPath := file + ".bak"
	if err := os.WriteFile(backupPath, data, modeOf(file)); err != nil {
		return Entry{}, fmt.Errorf("write backup: %w", err)
	}
	entry := Entry{
		ID:         newID(),
		Timestamp:  time.Now().UTC(),
		FilePath:   file,
		BackupPath: backupPath,
		Operation:  operation,
		Tool:       tool,
	}
	if err := s.putEntry(entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// List returns entries newest first, optionally filtered to one file path.
func (s *Store) List(file string) ([]Entry, error) {
	var out []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketBackups).ForEach(func(_, v []byte) error {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return err
			}
			if file == "" || e.FilePath == file {
				out = append(out, e)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

// Get looks up one entry by id.
func (s *Store) Get(id string) (Entry, error) {
	var e Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketBackups).Get([]byte(id))
		if v == nil {
			return fmt.Errorf("backup '%s': %w", id, ErrNotFound)
		}
		return json.Unmarshal(v, &e)
	})
	if err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Restore copies the backup over target, or over the original path when
// target is empty. The current content is first saved to a
// "<target>.pre-restore.bak" safety copy so a restore is itself reversible.
func (s *Store) Restore(id, target string) (string, error) {
	e, err := s.Get(id)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(e.BackupPath)
	if err != nil {
		return "", fmt.Errorf("backup file missing: %s", e.BackupPath)
	}
	if target == "" {
		target = e.FilePath
	}
	if current, err := os.ReadFile(target); err == nil {
		if err := os.WriteFile(target+".pre-restore.bak", current, modeOf(target)); err != nil {
			return "", fmt.Errorf("write safety copy: %w", err)
		}
	}
	if err := os.WriteFile(target, data, modeOf(target)); err != nil {
		return "", fmt.Errorf("restore %s: %w", target, err)
	}
	return fmt.Sprintf("Restored from backup '%s' to %s", id, target), nil
}

// Diff renders a unified diff from the backup to the file's current text.
func (s *Store) Diff(id string) (string, error) {
	e, err := s.Get(id)
	if err != nil {
		return "", err
	}
	old, err := os.ReadFile(e.BackupPath)
	if err != nil {
		return "", fmt.Errorf("backup file missing: %s", e.BackupPath)
	}
	current, err := os.ReadFile(e.FilePath)
	if err != nil {
		return "", fmt.Errorf("current file missing: %s", e.FilePath)
	}
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(old)),
		B:        difflib.SplitLines(string(current)),
		FromFile: fmt.Sprintf("backup (%s)", e.ID),
		ToFile:   "current",
		Context:  3,
	})
	if err != nil {
		return "", err
	}
	if text == "" {
		return "(no differences)", nil
	}
	return text, nil
}

// Prune drops old entries. Per file the newest keepRecent survive, as does
// anything younger than olderThan; backup files of dropped entries are
// deleted best-effort, so a second prune over the same set is a no-op.
// Returns (removed, kept).
func (s *Store) Prune(olderThan time.Duration, keepRecent int) (int, int, error) {
	entries, err := s.List("")
	if err != nil {
		return 0, 0, err
	}
	cutoff := time.Now().UTC().Add(-olderThan)

	byFile := make(map[string][]Entry)
	for _, e := range entries {
		// List is newest first; grouping preserves that order.
		byFile[e.FilePath] = append(byFile[e.FilePath], e)
	}
	keep := make(map[string]bool)
	for _, group := range byFile {
		for i, e := range group {
			if i < keepRecent || !e.Timestamp.Before(cutoff) {
				keep[e.ID] = true
			}
		}
	}

	removed := 0
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketBackups)
		for _, e := range entries {
			if keep[e.ID] {
				continue
			}
			if err := b.Delete([]byte(e.ID)); err != nil {
				return err
			}
			_ = os.Remove(e.BackupPath)
			removed++
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return removed, len(entries) - removed, nil
}

// CreateCheckpoint saves copies of several files under one id so a
// multi-file change can be reverted as a unit. Unreadable files are
// skipped rather than failing the checkpoint.
func (s *Store) CreateCheckpoint(description string, files []string) (Checkpoint, error) {
	cp := Checkpoint{
		ID:          newID(),
		Timestamp:   time.Now().UTC(),
		Description: description,
	}
	dir := filepath.Join(s.dir, "checkpoints", cp.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Checkpoint{}, fmt.Errorf("create checkpoint dir: %w", err)
	}
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			continue
		}
		saved := filepath.Join(dir, filepath.Base(f))
		if err := os.WriteFile(saved, data, modeOf(f)); err != nil {
			return Checkpoint{}, fmt.Errorf("save %s: %w", f, err)
		}
		cp.Files = append(cp.Files, CheckpointFile{Original: f, Saved: saved})
	}
	data, err := json.Marshal(cp)
	if err != nil {
		return Checkpoint{}, err
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketCheckpoints).Put([]byte(cp.ID), data)
	})
	if err != nil {
		return Checkpoint{}, err
	}
	return cp, nil
}

// ListCheckpoints returns checkpoints newest first.
func (s *Store) ListCheckpoints() ([]Checkpoint, error) {
	var out []Checkpoint
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketCheckpoints).ForEach(func(_, v []byte) error {
			var cp Checkpoint
			if err := json.Unmarshal(v, &cp); err != nil {
				return err
			}
			out = append(out, cp)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

// RestoreCheckpoint writes every saved file back to its original path,
// taking the same safety copies as Restore. Returns the number of files
// restored.
func (s *Store) RestoreCheckpoint(id string) (int, error) {
	var cp Checkpoint
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketCheckpoints).Get([]byte(id))
		if v == nil {
			return fmt.Errorf("checkpoint '%s': %w", id, ErrNotFound)
		}
		return json.Unmarshal(v, &cp)
	})
	if err != nil {
		return 0, err
	}

	restored := 0
	for _, f := range cp.Files {
		data, err := os.ReadFile(f.Saved)
		if err != nil {
			continue
		}
		if current, err := os.ReadFile(f.Original); err == nil {
			if err := os.WriteFile(f.Original+".pre-restore.bak", current, modeOf(f.Original)); err != nil {
				return restored, fmt.Errorf("write safety copy: %w", err)
			}
		}
		if err := os.WriteFile(f.Original, data, modeOf(f.Original)); err != nil {
			return restored, fmt.Errorf("restore %s: %w", f.Original, err)
		}
		restored++
	}
	return restored, nil
}

func (s *Store) putEntry(e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketBackups).Put([]byte(e.ID), data)
	})
}

// newID returns the 8-hex short id used for backups and checkpoints.
func newID() string {
	return uuid.NewString()[:8]
}

// modeOf preserves the original's permissions on copies when it still
// exists.
func modeOf(path string) os.FileMode {
	if info, err := os.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return 0o644
}
