// Package main is the doctests command: it discovers documents, extracts
// their fenced code blocks, runs each block through its language's runner,
// and prints a report.
//
// The heavy lifting lives in internal/ packages; main only wires them
// together: flags → config → discovery → extraction → engine → report.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/zolinthecow/doctests/internal/apperror"
	"github.com/zolinthecow/doctests/internal/config"
	"github.com/zolinthecow/doctests/internal/discovery"
	"github.com/zolinthecow/doctests/internal/engine"
	"github.com/zolinthecow/doctests/internal/extractor"
	"github.com/zolinthecow/doctests/internal/model"
	"github.com/zolinthecow/doctests/internal/report"
	"github.com/zolinthecow/doctests/internal/repository"
	"github.com/zolinthecow/doctests/internal/repository/sqlite"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "doctests.toml", "path to the config file")
	root := flag.String("root", ".", "project root the documents live under")
	timeout := flag.Duration("timeout", 0, "per-block timeout override (e.g. 10s)")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		// No config file is fine unless the user pointed at one explicitly.
		if errors.Is(err, apperror.ErrNotFound) && !flagWasSet("config") {
			cfg = config.Default()
		} else {
			logger.Error("failed to load config", slog.String("path", *configPath), slog.String("error", err.Error()))
			return 2
		}
	}

	if *timeout > 0 {
		cfg.Timeout = *timeout
	}

	absRoot, err := filepath.Abs(*root)
	if err != nil {
		logger.Error("failed to resolve project root", slog.String("error", err.Error()))
		return 2
	}
	cfg.Root = absRoot

	// Positional args override the configured doc globs.
	if patterns := flag.Args(); len(patterns) > 0 {
		cfg.Docs = patterns
	}

	tempRoot, err := os.MkdirTemp("", "doctests-")
	if err != nil {
		logger.Error("failed to create temp root", slog.String("error", err.Error()))
		return 2
	}
	defer os.RemoveAll(tempRoot)
	cfg.TempRoot = tempRoot

	docs, err := discovery.FindDocs(cfg.Root, cfg.Docs)
	if err != nil {
		logger.Error("document discovery failed", slog.String("error", err.Error()))
		return 2
	}
	logger.Debug("discovered documents", slog.Int("count", len(docs)))

	var blocks []model.CodeBlock
	for _, doc := range docs {
		data, err := os.ReadFile(filepath.Join(cfg.Root, doc))
		if err != nil {
			logger.Error("failed to read document", slog.String("doc", doc), slog.String("error", err.Error()))
			return 2
		}
		blocks = append(blocks, extractor.Extract(doc, string(data))...)
	}
	logger.Debug("extracted blocks", slog.Int("count", len(blocks)))

	start := time.Now()
	results := engine.New(cfg, logger).Run(blocks)

	ok := report.New(os.Stdout).Print(results)

	if cfg.History != "" {
		if err := recordHistory(cfg.History, start, results); err != nil {
			// History is best-effort; a broken store must not flip the verdict.
			logger.Warn("failed to record run history", slog.String("error", err.Error()))
		}
	}

	if !ok {
		return 1
	}
	return 0
}

// recordHistory persists the run into the SQLite history store.
func recordHistory(dbPath string, startedAt time.Time, results []model.ExecutionResult) error {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sqlite.New(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	run := &repository.RunRecord{StartedAt: startedAt}
	records := make([]repository.ResultRecord, 0, len(results))
	for _, res := range results {
		switch res.Status {
		case model.StatusPassed:
			run.Passed++
		case model.StatusFailed:
			run.Failed++
		case model.StatusSkipped:
			run.Skipped++
		case model.StatusTimedOut:
			run.TimedOut++
		}

		rec := repository.ResultRecord{
			Hook:       string(res.Hook),
			Status:     string(res.Status),
			Reason:     res.Reason,
			ExitCode:   res.ExitCode,
			DurationMs: res.Duration.Milliseconds(),
		}
		if res.Block != nil {
			rec.Doc = res.Block.Doc
			rec.Line = res.Block.StartLine
			rec.Lang = res.Block.Lang
		}
		records = append(records, rec)
	}

	return db.RecordRun(context.Background(), run, records)
}

// flagWasSet reports whether the named flag was given on the command line.
func flagWasSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
