package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/tularam-sharma/pdfharvest/internal/batch"
	"github.com/tularam-sharma/pdfharvest/internal/config"
	"github.com/tularam-sharma/pdfharvest/internal/extract"
	"github.com/tularam-sharma/pdfharvest/internal/logging"
	"github.com/tularam-sharma/pdfharvest/internal/template"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if version != "dev" {
		cfg.Version = version
	}

	log, err := logging.New(logging.Config{
		Style: logging.Style(cfg.LogStyle),
		Level: cfg.LogLevel,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.IsDebug() {
		log.Debug("starting", zap.String("config", cfg.String()))
	}

	if err := run(cfg, log); err != nil {
		log.Error("run failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	tmpl, err := template.Load(cfg.TemplatePath)
	if err != nil {
		return fmt.Errorf("load template: %w", err)
	}

	docs, err := collectDocuments(cfg.InputDir)
	if err != nil {
		return fmt.Errorf("scan documents: %w", err)
	}
	if len(docs) == 0 {
		log.Warn("no PDF documents found", zap.String("dir", cfg.InputDir))
		return nil
	}
	log.Info("documents collected", zap.Int("count", len(docs)), zap.String("dir", cfg.InputDir))

	cache := extract.NewResultCache(cfg.CacheCapacity)
	dispatcher := extract.NewDispatcher(extract.DispatcherConfig{
		DividerTolerance: cfg.DividerTolerance,
	}, log, cache)

	runner := batch.NewRunner(tmpl, dispatcher, cache, nil, log, batch.Options{
		BatchSize:      cfg.BatchSize,
		WorkRoot:       cfg.WorkDir,
		MethodOverride: cfg.Method,
		DefaultParams: extract.Params{
			extract.ParamRowTolerance: cfg.RowTolerance,
			extract.ParamLanguage:     cfg.OCRLanguage,
		},
	})

	// Cancellation between documents on SIGINT/SIGTERM; the document in
	// flight still completes.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	results, runErr := runner.Run(ctx, docs)
	printSummary(results, cache.Stats())

	if runErr != nil {
		return runErr
	}
	return nil
}

// collectDocuments walks dir and returns the PDF files under it, sorted.
func collectDocuments(dir string) ([]string, error) {
	var docs []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".pdf") {
			docs = append(docs, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(docs)
	return docs, nil
}

func printSummary(results []batch.DocumentResult, stats extract.CacheStats) {
	counts := make(map[batch.OverallStatus]int)
	for _, res := range results {
		counts[res.Overall]++
		marker := ""
		if res.Inconsistent {
			marker = "  [inconsistent]"
		}
		fmt.Printf("%-10s %s%s\n", res.Overall, res.Path, marker)
	}
	fmt.Printf("\n%d documents: %d success, %d partial, %d failed\n",
		len(results),
		counts[batch.OverallSuccess],
		counts[batch.OverallPartial],
		counts[batch.OverallFailed])
	fmt.Printf("cache: %d hits, %d misses, %d/%d entries\n",
		stats.Hits, stats.Misses, stats.Size, stats.Capacity)
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("pdfharvest\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
