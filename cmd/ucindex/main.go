package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"ucindex/internal/analyzer"
	"ucindex/internal/config"
	"ucindex/internal/index"
	"ucindex/internal/logging"
	"ucindex/internal/rpc"
	"ucindex/internal/watcher"
)

var logger *slog.Logger

const version = "0.2.0"

func main() {
	logger = logging.Default("ucindex")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "index":
		runIndex(os.Args[2:])

	case "outline":
		runOutline(os.Args[2:])

	case "tokens":
		runTokens(os.Args[2:])

	case "complete":
		runComplete(os.Args[2:])

	case "serve":
		runServe(os.Args[2:])

	case "watch":
		runWatch(os.Args[2:])

	case "stats":
		runStats(os.Args[2:])

	case "version":
		fmt.Printf("ucindex v%s\n", version)

	case "help", "-h", "--help":
		printUsage()

	default:
		logger.Error("unknown command", "command", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// resolveRoot converts the positional path argument to an absolute path.
func resolveRoot(fs *flag.FlagSet) string {
	path := "."
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		logger.Error("invalid path", "error", err)
		os.Exit(1)
	}
	return abs
}

// rebuildAt scans the package tree and returns the index.
func rebuildAt(root string) *index.Index {
	idx := index.New(config.LoadScanConfigFromEnv(), logger)
	if _, err := idx.Rebuild(root); err != nil {
		logger.Error("indexing failed", "error", err)
		os.Exit(1)
	}
	return idx
}

func runIndex(args []string) {
	fs := flag.NewFlagSet("index", flag.ExitOnError)
	saveDB := fs.Bool("db", false, "Save a SQLite snapshot of the index")
	jsonOutput := fs.Bool("json", false, "Output results as JSON")
	fs.Parse(args)

	root := resolveRoot(fs)
	start := time.Now()

	idx := rebuildAt(root)
	table := idx.Snapshot()

	if *saveDB {
		dbPath := config.SnapshotDBPath(root)
		store, err := index.OpenStore(dbPath)
		if err != nil {
			logger.Error("opening snapshot store failed", "error", err)
			os.Exit(1)
		}
		defer store.Close()
		if err := store.Save(table); err != nil {
			logger.Error("saving snapshot failed", "error", err)
			os.Exit(1)
		}
		logger.Info("snapshot saved", "path", dbPath)
	}

	if *jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(table.Classes()); err != nil {
			logger.Error("encoding JSON failed", "error", err)
			os.Exit(1)
		}
		return
	}

	for _, rec := range table.Classes() {
		fmt.Printf("%-30s %-15s %d functions, %d variables\n",
			rec.Name, rec.Package, len(rec.Functions), len(rec.Variables))
	}
	logger.Info("indexing complete",
		"classes", table.Len(),
		"duration", time.Since(start).Round(time.Millisecond))
}

// readDocument loads the document named by the first positional
// argument, or stdin when the argument is absent or "-".
func readDocument(fs *flag.FlagSet) string {
	if fs.NArg() == 0 || fs.Arg(0) == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			logger.Error("reading stdin failed", "error", err)
			os.Exit(1)
		}
		return string(data)
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		logger.Error("reading document failed", "error", err)
		os.Exit(1)
	}
	return string(data)
}

func runOutline(args []string) {
	fs := flag.NewFlagSet("outline", flag.ExitOnError)
	jsonOutput := fs.Bool("json", false, "Output entries as JSON")
	fs.Parse(args)

	entries := analyzer.Outline(readDocument(fs))

	if *jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			logger.Error("encoding JSON failed", "error", err)
			os.Exit(1)
		}
		return
	}

	for _, e := range entries {
		fmt.Printf("%5d  %-10s %s\n", e.Line+1, e.Kind, e.Name)
	}
}

func runTokens(args []string) {
	fs := flag.NewFlagSet("tokens", flag.ExitOnError)
	rootFlag := fs.String("root", "", "Package tree to index before analyzing")
	fs.Parse(args)

	table := index.NewTable()
	if *rootFlag != "" {
		table = rebuildAt(*rootFlag).Snapshot()
	}

	text := readDocument(fs)
	spans := analyzer.Highlights(text, table)
	data := analyzer.EncodeTokens(spans)

	enc := json.NewEncoder(os.Stdout)
	if err := enc.Encode(map[string]any{
		"legend": analyzer.TokenCategories(),
		"data":   data,
	}); err != nil {
		logger.Error("encoding JSON failed", "error", err)
		os.Exit(1)
	}
}

func runComplete(args []string) {
	fs := flag.NewFlagSet("complete", flag.ExitOnError)
	fs.Parse(args)

	table := index.NewTable()
	if fs.NArg() > 0 {
		table = rebuildAt(resolveRoot(fs)).Snapshot()
	}

	for _, item := range analyzer.Completions(table) {
		fmt.Printf("%-10s %s\n", item.Category, item.Label)
	}
}

func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	rootFlag := fs.String("root", "", "Package tree to index at startup")
	fs.Parse(args)

	idx := index.New(config.LoadScanConfigFromEnv(), logger)
	if *rootFlag != "" {
		if _, err := idx.Rebuild(*rootFlag); err != nil {
			logger.Error("startup indexing failed", "error", err)
			os.Exit(1)
		}
	}

	srv := rpc.NewServer("ucindex", version, idx, logger)
	if err := srv.Run(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func runWatch(args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	fs.Parse(args)

	root := resolveRoot(fs)
	cfg := config.LoadScanConfigFromEnv()
	watchCfg := config.LoadWatchConfigFromEnv()

	idx := index.New(cfg, logger)
	if _, err := idx.Rebuild(root); err != nil {
		logger.Error("initial indexing failed", "error", err)
		os.Exit(1)
	}

	w, err := watcher.New(idx, root, cfg,
		time.Duration(watchCfg.DebounceMs)*time.Millisecond, logger)
	if err != nil {
		logger.Error("creating watcher failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("watching", "root", root, "watches", w.WatchCount())
	if err := w.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("watcher failed", "error", err)
		os.Exit(1)
	}
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Parse(args)

	root := resolveRoot(fs)
	dbPath := config.SnapshotDBPath(root)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		logger.Error("no snapshot found, run 'index --db' first", "path", dbPath)
		os.Exit(1)
	}

	store, err := index.OpenStore(dbPath)
	if err != nil {
		logger.Error("opening snapshot store failed", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	classes, members, err := store.Stats()
	if err != nil {
		logger.Error("getting stats failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Snapshot: %s\n", dbPath)
	fmt.Printf("Classes:  %d\n", classes)
	fmt.Printf("Members:  %d\n", members)
}

func printUsage() {
	fmt.Println(`ucindex - UnrealScript package tree indexer

Usage:
  ucindex index [options] [root]      Scan a package tree and print the class table
  ucindex outline [options] [file]    Print the outline of one source file
  ucindex tokens [options] [file]     Print the semantic token stream for one file
  ucindex complete [root]             Print the completion vocabulary
  ucindex serve [options]             Serve JSON-RPC requests on stdio
  ucindex watch [root]                Watch a package tree and reindex on change
  ucindex stats [root]                Show snapshot database statistics
  ucindex version                     Print version
  ucindex help                        Show this help

Index Options:
  --db           Save a SQLite snapshot under <root>/.ucindex/
  --json         Output the class table as JSON

Outline Options:
  --json         Output entries as JSON

Tokens Options:
  --root PATH    Index a package tree first so known class names are highlighted

Serve Options:
  --root PATH    Index a package tree at startup

Environment Variables:
  UCINDEX_CLASSES_DIR    Per-package source subfolder [default: Classes]
  UCINDEX_SOURCE_EXT     Source file suffix [default: .uc]
  UCINDEX_IGNORE_FILE    Ignore pattern file name [default: .ucignore]
  UCINDEX_DB_PATH        Snapshot database path override
  UCINDEX_DEBOUNCE_MS    Watch debounce interval [default: 500]
  UCINDEX_LOG_LEVEL      Log level (debug, info, warn, error) [default: info]
  UCINDEX_LOG_FORMAT     Log format (text, json) [default: text]

Package Trees:
  A root folder contains one subfolder per package. Class sources live
  in <package>/Classes/*.uc, or directly in the package folder when no
  Classes subfolder exists. Patterns in <root>/.ucignore exclude
  packages and files from scans and watches.

Examples:
  ucindex index --db /games/ut/Scripts
  ucindex outline Core/Classes/Actor.uc
  ucindex tokens --root /games/ut/Scripts Core/Classes/Actor.uc
  ucindex serve --root /games/ut/Scripts`)
}
