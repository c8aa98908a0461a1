// Package config holds environment-driven configuration for ucindex.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// DefaultClassesDir is the preferred per-package source subfolder.
	DefaultClassesDir = "Classes"

	// DefaultSourceExt is the UnrealScript source file extension.
	// Suffix matching is case-sensitive.
	DefaultSourceExt = ".uc"

	// DefaultIgnoreFile is the per-root ignore pattern file.
	DefaultIgnoreFile = ".ucignore"

	// DefaultDebounceMs is the default watcher debounce interval.
	DefaultDebounceMs = 500
)

// ScanConfig controls how the package tree scanner resolves and reads sources.
type ScanConfig struct {
	// ClassesDir is the per-package subfolder holding class sources.
	// When absent the package folder itself is scanned.
	ClassesDir string

	// SourceExt is the source file suffix, matched case-sensitively.
	SourceExt string

	// IgnoreFile names the per-root ignore pattern file (gitignore syntax).
	IgnoreFile string
}

// LoadScanConfigFromEnv loads scanner configuration from environment variables.
// Supports the following variables:
//   - UCINDEX_CLASSES_DIR: per-package source subfolder (default: Classes)
//   - UCINDEX_SOURCE_EXT: source file suffix (default: .uc)
//   - UCINDEX_IGNORE_FILE: ignore pattern file name (default: .ucignore)
func LoadScanConfigFromEnv() ScanConfig {
	cfg := ScanConfig{
		ClassesDir: DefaultClassesDir,
		SourceExt:  DefaultSourceExt,
		IgnoreFile: DefaultIgnoreFile,
	}

	if dir := os.Getenv("UCINDEX_CLASSES_DIR"); dir != "" {
		cfg.ClassesDir = dir
	}
	if ext := os.Getenv("UCINDEX_SOURCE_EXT"); ext != "" {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cfg.SourceExt = ext
	}
	if name := os.Getenv("UCINDEX_IGNORE_FILE"); name != "" {
		cfg.IgnoreFile = name
	}

	return cfg
}

// WatchConfig controls the fsnotify watcher.
type WatchConfig struct {
	// DebounceMs is the quiet period after the last event before a rebuild.
	DebounceMs int
}

// LoadWatchConfigFromEnv loads watcher configuration from UCINDEX_DEBOUNCE_MS.
func LoadWatchConfigFromEnv() WatchConfig {
	cfg := WatchConfig{DebounceMs: DefaultDebounceMs}

	if raw := os.Getenv("UCINDEX_DEBOUNCE_MS"); raw != "" {
		if ms, err := strconv.Atoi(raw); err == nil && ms > 0 {
			cfg.DebounceMs = ms
		}
	}

	return cfg
}

// SnapshotDBPath returns the snapshot database path for a given root.
// UCINDEX_DB_PATH overrides; the default lives under .ucindex/ in the root.
func SnapshotDBPath(root string) string {
	if p := os.Getenv("UCINDEX_DB_PATH"); p != "" {
		return p
	}
	return filepath.Join(root, ".ucindex", "symbols.db")
}
