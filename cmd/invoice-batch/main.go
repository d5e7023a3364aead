package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/joseph-ayodele/invoice-extractor/constants"
	"github.com/joseph-ayodele/invoice-extractor/internal/common"
	"github.com/joseph-ayodele/invoice-extractor/internal/export"
	"github.com/joseph-ayodele/invoice-extractor/internal/ingest"
	"github.com/joseph-ayodele/invoice-extractor/internal/parsefields"
	"github.com/joseph-ayodele/invoice-extractor/internal/pdftext"
	"github.com/joseph-ayodele/invoice-extractor/internal/pipeline"
)

const (
	exitRuntime = 1
	exitUsage   = 2
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// .env is optional
	_ = godotenv.Load()

	fs := pflag.NewFlagSet("invoice-batch", pflag.ContinueOnError)
	common.RegisterFlags(fs)
	dir := fs.String("dir", "", "directory to collect invoice PDFs from")
	fs.Usage = func() {
		printError("Usage: invoice-batch [flags] [--dir DIR] [file.pdf ...]\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return exitUsage
	}

	v := common.NewViper()
	if err := common.BindFlags(v, fs); err != nil {
		printError("Error: %v\n", err)
		return exitUsage
	}
	cfg, err := common.LoadConfig(v)
	if err != nil {
		printError("Error: %v\n", err)
		return exitUsage
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Collect documents
	ingestor := ingest.NewFSIngestor(ingest.Options{
		SkipHidden:     cfg.Ingest.SkipHidden,
		CheckStructure: cfg.Ingest.CheckStructure,
	}, logger)

	var docs []ingest.Document
	if *dir != "" {
		found, stats, err := ingestor.IngestDirectory(ctx, *dir)
		if err != nil {
			logger.Error("failed to ingest directory", "dir", *dir, "error", err)
			return exitRuntime
		}
		logger.Info("ingestion complete",
			"dir", *dir,
			"scanned", stats.Scanned,
			"matched", stats.Matched,
			"succeeded", stats.Succeeded,
			"failed", stats.Failed)
		docs = append(docs, found...)
	}
	docs = append(docs, ingestor.IngestPaths(ctx, fs.Args())...)

	// Wire the pipeline
	extractor := pdftext.NewExtractor(pdftext.Config{
		Method:    cfg.PDF.TextMethod,
		Pdftotext: cfg.PDF.PDFToTextPath,
	}, logger)
	processor := pipeline.NewProcessor(logger, extractor, parsefields.Band{
		MinX:          cfg.PDF.BandMinX,
		MaxX:          cfg.PDF.BandMaxX,
		LineTolerance: cfg.PDF.LineTolerance,
	})
	batch := pipeline.NewBatch(processor, logger,
		pipeline.WithWorkers(cfg.Batch.Workers),
		pipeline.WithDocumentTimeout(cfg.Batch.DocumentTimeout),
	)

	res, err := batch.ProcessDocuments(ctx, docs)
	switch {
	case errors.Is(err, common.ErrNoDocuments):
		printError("Error: no documents selected\n")
		return exitUsage
	case errors.Is(err, common.ErrNoEligibleDocuments):
		printError("Error: no valid PDF files among %d selected documents\n", len(docs))
		return exitUsage
	case err != nil:
		logger.Error("batch aborted", "batch_id", res.BatchID, "error", err)
		return exitRuntime
	}

	// Export
	exportService := export.NewService(cfg.Export.SheetName, logger)
	if err := exportService.WriteXLSX(ctx, cfg.Export.OutputPath, res.Rows); err != nil {
		logger.Error("failed to export rows", "output", cfg.Export.OutputPath, "error", err)
		return exitRuntime
	}
	if cfg.Export.JSONPath != "" {
		if err := exportService.WriteJSON(ctx, cfg.Export.JSONPath, res.Rows); err != nil {
			logger.Error("failed to export json", "output", cfg.Export.JSONPath, "error", err)
			return exitRuntime
		}
	}

	for _, o := range res.Outcomes {
		if o.Err != nil {
			printError("Failed: %s: %v\n", o.Document.Path, o.Err)
		}
	}

	fmt.Printf("Batch processing complete!\n")
	fmt.Printf("- Documents: %d\n", len(res.Outcomes))
	fmt.Printf("- Extracted: %d\n", res.Count(constants.DocumentStatusOK))
	fmt.Printf("- Skipped: %d\n", res.Count(constants.DocumentStatusSkipped))
	fmt.Printf("- Failed: %d\n", res.Count(constants.DocumentStatusFailed))
	fmt.Printf("- Rows: %d\n", len(res.Rows))
	fmt.Printf("- Output: %s\n", cfg.Export.OutputPath)
	if cfg.Export.JSONPath != "" {
		fmt.Printf("- JSON: %s\n", cfg.Export.JSONPath)
	}
	return 0
}
