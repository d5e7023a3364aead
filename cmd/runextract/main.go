package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/joseph-ayodele/invoice-extractor/internal/common"
	"github.com/joseph-ayodele/invoice-extractor/internal/entity"
	"github.com/joseph-ayodele/invoice-extractor/internal/parsefields"
	"github.com/joseph-ayodele/invoice-extractor/internal/pdftext"
	"github.com/joseph-ayodele/invoice-extractor/internal/pipeline"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	fs := pflag.NewFlagSet("runextract", pflag.ExitOnError)
	common.RegisterFlags(fs)
	showWords := fs.Bool("words", false, "print every positioned word")
	_ = fs.Parse(os.Args[1:])

	if fs.NArg() != 1 {
		logger.Error("usage", "cmd", "runextract [flags] <file.pdf>")
		os.Exit(2)
	}
	path := fs.Arg(0)

	v := common.NewViper()
	if err := common.BindFlags(v, fs); err != nil {
		logger.Error("bind flags", "error", err)
		os.Exit(2)
	}
	cfg, err := common.LoadConfig(v)
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if info, err := pdftext.Inspect(path); err != nil {
		logger.Warn("structure check failed", "path", path, "error", err)
	} else {
		logger.Info("structure check OK", "path", path, "pages", info.Pages)
	}

	extractor := pdftext.NewExtractor(pdftext.Config{
		Method:    cfg.PDF.TextMethod,
		Pdftotext: cfg.PDF.PDFToTextPath,
	}, logger)
	band := parsefields.Band{
		MinX:          cfg.PDF.BandMinX,
		MaxX:          cfg.PDF.BandMaxX,
		LineTolerance: cfg.PDF.LineTolerance,
	}

	doc, err := extractor.Extract(ctx, path)
	if err != nil {
		logger.Error("text extraction failed", "path", path, "error", err)
		os.Exit(1)
	}
	logger.Info("text extraction OK",
		"method", doc.Method,
		"pages", len(doc.Pages),
		"warnings", len(doc.Warnings),
		"duration_ms", doc.Duration.Milliseconds(),
	)

	for _, page := range doc.Pages {
		fmt.Printf("=== page %d (height %.1f)\n", page.Number, page.Height)
		for i, line := range page.Lines {
			fmt.Printf("%4d | %s\n", i, line)
		}
		for ti, table := range page.Tables {
			fmt.Printf("--- table %d (%d rows)\n", ti, len(table.Rows))
			for _, row := range table.Rows {
				fmt.Printf("  %s\n", strings.Join(row, " | "))
			}
		}
		fmt.Printf("--- band %.0f-%.0f\n", band.MinX, band.MaxX)
		for _, line := range parsefields.BandLines(page, band) {
			fmt.Printf("  %s\n", line)
		}
		if *showWords {
			fmt.Printf("--- words\n")
			for _, w := range page.Words {
				fmt.Printf("  x0=%7.2f x1=%7.2f top=%7.2f  %s\n", w.X0, w.X1, w.Top, w.Text)
			}
		}
	}

	rec := pipeline.AssembleRecord(doc, band)
	out, err := json.MarshalIndent(struct {
		Record any `json:"record"`
		Rows   any `json:"rows"`
	}{rec, pipeline.ExpandRows([]entity.InvoiceRecord{rec})}, "", "  ")
	if err != nil {
		logger.Error("encode record", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
