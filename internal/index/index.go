package index

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"ucindex/internal/config"
	"ucindex/internal/logging"
)

// Index owns the published symbol table. The scanner is its sole
// writer: a rebuild scans into a fresh table off to the side and
// publishes it with a single atomic swap, so readers never observe a
// partially-populated table. Concurrent rebuild requests are serialized.
type Index struct {
	scanner *Scanner
	logger  *slog.Logger

	rebuildMu sync.Mutex
	current   atomic.Pointer[Table]
}

// New creates an index that starts out empty.
func New(cfg config.ScanConfig, logger *slog.Logger) *Index {
	if logger == nil {
		logger = logging.Nop()
	}
	idx := &Index{
		scanner: NewScanner(cfg, logger),
		logger:  logger,
	}
	idx.current.Store(NewTable())
	return idx
}

// Rebuild performs a full scan of root and publishes the result.
// On failure the previously published table is left untouched.
func (idx *Index) Rebuild(root string) (*Table, error) {
	idx.rebuildMu.Lock()
	defer idx.rebuildMu.Unlock()

	start := time.Now()
	table, err := idx.scanner.Scan(root)
	if err != nil {
		idx.logger.Error("rebuild failed", "root", root, "error", err)
		return nil, err
	}

	idx.current.Store(table)
	idx.logger.Info("index rebuilt",
		"root", root,
		"classes", table.Len(),
		"duration", time.Since(start).Round(time.Millisecond))
	return table, nil
}

// Snapshot returns the currently published table. The returned table is
// immutable and safe for concurrent reads.
func (idx *Index) Snapshot() *Table {
	return idx.current.Load()
}
