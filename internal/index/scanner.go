package index

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"ucindex/internal/config"
	"ucindex/internal/logging"
	"ucindex/internal/uclang"
)

// Scanner walks a package tree and builds a symbol table from the
// declaration lines of every class source file it can read.
type Scanner struct {
	cfg    config.ScanConfig
	logger *slog.Logger
}

// NewScanner creates a scanner with the given configuration.
// A nil logger suppresses diagnostics.
func NewScanner(cfg config.ScanConfig, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Scanner{cfg: cfg, logger: logger}
}

// Scan builds a fresh table from the package tree under root.
// An unreadable root is the only hard failure; unreadable packages and
// files are skipped so a partially-readable tree still yields a
// best-effort index.
func (s *Scanner) Scan(root string) (*Table, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading package root %s: %w", root, err)
	}

	gi := LoadIgnore(s.cfg, root)
	table := NewTable()

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		pkg := entry.Name()
		if strings.HasPrefix(pkg, ".") {
			continue
		}
		if gi != nil && gi.MatchesPath(pkg+"/") {
			s.logger.Debug("package ignored", "package", pkg)
			continue
		}
		s.scanPackage(table, root, pkg, gi)
	}

	return table, nil
}

// scanPackage indexes one package folder into the working table.
func (s *Scanner) scanPackage(table *Table, root, pkg string, gi *ignore.GitIgnore) {
	dir := filepath.Join(root, pkg, s.cfg.ClassesDir)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		// Fall back to the package folder itself.
		dir = filepath.Join(root, pkg)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		s.logger.Warn("skipping unreadable package", "package", pkg, "error", err)
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), s.cfg.SourceExt) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if gi != nil {
			if rel, err := filepath.Rel(root, path); err == nil && gi.MatchesPath(rel) {
				s.logger.Debug("file ignored", "path", rel)
				continue
			}
		}

		text, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn("skipping unreadable file", "path", path, "error", err)
			continue
		}

		s.scanFile(table, pkg, string(text))
	}
}

// scanFile feeds one file's lines through the classifier. The
// current-class cursor starts empty for every file, so member lines in a
// file with no class declaration are discarded rather than attributed to
// a class from a previously scanned file.
func (s *Scanner) scanFile(table *Table, pkg, text string) {
	var current *ClassRecord

	for _, line := range uclang.SplitLines(text) {
		m, ok := uclang.Classify(line)
		if !ok {
			continue
		}

		switch m.Kind {
		case uclang.KindClass:
			current = &ClassRecord{Package: pkg, Name: m.Name}
			table.put(current)
		case uclang.KindFunction:
			if current != nil {
				current.Functions = append(current.Functions, m.Name)
			}
		case uclang.KindVariable:
			if current != nil {
				current.Variables = append(current.Variables, m.Name)
			}
		case uclang.KindState:
			// Classified but not indexed.
		}
	}
}

// LoadIgnore compiles ignore patterns from the root's ignore file.
// Returns nil when the file is absent or holds no patterns.
func LoadIgnore(cfg config.ScanConfig, root string) *ignore.GitIgnore {
	content, err := os.ReadFile(filepath.Join(root, cfg.IgnoreFile))
	if err != nil {
		return nil
	}

	var patterns []string
	for _, line := range uclang.SplitLines(string(content)) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if len(patterns) == 0 {
		return nil
	}

	return ignore.CompileIgnoreLines(patterns...)
}
