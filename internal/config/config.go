// Package config loads the toolpatch configuration: the allowed patch
// root, the backup location and the validation knobs. A missing file means
// permissive defaults, so the CLI works with zero setup.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// envAllowedRoot overrides allowed_root without touching the file.
const envAllowedRoot = "TOOLPATCH_ALLOWED_ROOT"

// Config represents the toolpatch configuration
type Config struct {
	// Root directory patch targets must live under; empty = unrestricted
	AllowedRoot string `json:"allowed_root" yaml:"allowed_root"`

	// Directory holding the backup registry and checkpoint copies
	BackupDir string `json:"backup_dir" yaml:"backup_dir"`

	// Validation settings
	Validation ValidationConfig `json:"validation" yaml:"validation"`
}

// ValidationConfig tunes the two-tier syntax check
type ValidationConfig struct {
	// Restrict validation to the regex tier
	DisableToolchain bool `json:"disable_toolchain" yaml:"disable_toolchain"`

	// Multiplier applied to the per-language toolchain timeouts
	TimeoutScale float64 `json:"timeout_scale" yaml:"timeout_scale"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		BackupDir:  defaultBackupDir(),
		Validation: ValidationConfig{TimeoutScale: 1.0},
	}
}

// DefaultPath returns the default config file location
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "toolpatch", "config.yaml")
}

// Load reads the configuration from path, or from the default location
// when path is empty. A missing file is not an error; an unknown key is,
// so typos surface instead of silently doing nothing. The
// TOOLPATCH_ALLOWED_ROOT environment variable overrides allowed_root
// either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// Zero setup is fine.
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			dec := yaml.NewDecoder(bytes.NewReader(data))
			dec.KnownFields(true)
			if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	if root := os.Getenv(envAllowedRoot); root != "" {
		cfg.AllowedRoot = root
	}
	cfg.AllowedRoot = expandHome(cfg.AllowedRoot)
	cfg.BackupDir = expandHome(cfg.BackupDir)
	if cfg.BackupDir == "" {
		cfg.BackupDir = defaultBackupDir()
	}
	if cfg.Validation.TimeoutScale <= 0 {
		cfg.Validation.TimeoutScale = 1.0
	}
	return cfg, nil
}

// BackupDBPath is the registry database location under BackupDir.
func (c *Config) BackupDBPath() string {
	return filepath.Join(c.BackupDir, "backups.db")
}

// CheckPathAllowed rejects paths outside AllowedRoot when one is set. Both
// sides resolve through symlinks first, so a link inside the root cannot
// reach files outside it.
func (c *Config) CheckPathAllowed(path string) error {
	if c.AllowedRoot == "" {
		return nil
	}
	root, err := resolve(c.AllowedRoot)
	if err != nil {
		return fmt.Errorf("resolve allowed root: %w", err)
	}
	target, err := resolve(path)
	if err != nil {
		return err
	}
	if target != root && !strings.HasPrefix(target, root+string(filepath.Separator)) {
		return fmt.Errorf("path %s is outside the allowed root %s", path, root)
	}
	return nil
}

// resolve makes the path absolute and follows symlinks. Components that do
// not exist yet resolve against their deepest existing ancestor so new
// files can still be checked.
func resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	suffix := ""
	current := abs
	for {
		if resolved, err := filepath.EvalSymlinks(current); err == nil {
			return filepath.Join(resolved, suffix), nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return abs, nil
		}
		suffix = filepath.Join(filepath.Base(current), suffix)
		current = parent
	}
}

func defaultBackupDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "toolpatch")
	}
	return filepath.Join(home, ".cache", "toolpatch")
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
