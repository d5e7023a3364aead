package pdftext

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/joseph-ayodele/invoice-extractor/constants"
	"github.com/joseph-ayodele/invoice-extractor/internal/common"
	"github.com/joseph-ayodele/invoice-extractor/internal/extract"
)

type Config struct {
	Method    string // common.TextMethodNative | common.TextMethodPDFToText
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	MaxPages  int    // 0 = no limit
}

// Extractor reads page lines, positioned words and tables from PDF files.
type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

var _ extract.TextExtractor = (*Extractor)(nil)

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Method == "" {
		cfg.Method = common.TextMethodNative
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	return &Extractor{cfg: cfg, runner: execRunner{logger: logger}, logger: logger}
}

// WithRunner swaps the command runner used for pdftotext.
func (e *Extractor) WithRunner(r Runner) *Extractor {
	e.runner = r
	return e
}

// Extract reads the whole document. Pages whose content cannot be decoded
// come back empty with a warning; a file that cannot be opened at all is an
// error.
func (e *Extractor) Extract(ctx context.Context, path string) (extract.Document, error) {
	start := time.Now()
	doc := extract.Document{Path: path, Method: e.cfg.Method}

	if _, ok := constants.MapExtToFormat(filepath.Ext(path)); !ok {
		return doc, fmt.Errorf("unsupported extension: %q", filepath.Ext(path))
	}
	e.logger.Debug("pdftext.extract.start", "path", path, "method", e.cfg.Method)

	layouts, warns, err := e.readLayouts(ctx, path)
	doc.Warnings = append(doc.Warnings, warns...)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return doc, ctxErr
	}

	switch e.cfg.Method {
	case common.TextMethodPDFToText:
		if err != nil {
			doc.Warnings = append(doc.Warnings, "layout unavailable: "+err.Error())
		}
		texts, err := e.pdfToText(ctx, path)
		if err != nil {
			return doc, err
		}
		doc.Pages = mergePages(layouts, texts)
	default:
		if err != nil {
			return doc, err
		}
		doc.Pages = mergePages(layouts, nil)
	}

	doc.Duration = time.Since(start)
	e.logger.Debug("pdftext.extract.ok",
		"path", path,
		"pages", len(doc.Pages),
		"warnings", len(doc.Warnings),
		"duration_ms", doc.Duration.Milliseconds(),
	)
	return doc, nil
}

func (e *Extractor) readLayouts(ctx context.Context, path string) ([]pageLayout, []string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	total := r.NumPage()
	if e.cfg.MaxPages > 0 && total > e.cfg.MaxPages {
		total = e.cfg.MaxPages
	}

	layouts := make([]pageLayout, 0, total)
	var warns []string
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return layouts, warns, err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			layouts = append(layouts, pageLayout{number: i, height: defaultPageHeight})
			continue
		}
		texts, height, err := readPage(p)
		if err != nil {
			e.logger.Warn("pdftext.page.unreadable", "path", path, "page", i, "error", err)
			warns = append(warns, fmt.Sprintf("page %d: %v", i, err))
			layouts = append(layouts, pageLayout{number: i, height: height})
			continue
		}
		layouts = append(layouts, buildLayout(i, texts, height))
	}
	return layouts, warns, nil
}

// pdfToText runs pdftotext and returns the text of each page.
func (e *Extractor) pdfToText(ctx context.Context, path string) ([]string, error) {
	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w: %s", err, truncate(strings.TrimSpace(string(errb)), 512))
	}
	// A form-feed \f is used as page separator
	pages := strings.Split(string(out), "\f")
	if n := len(pages); n > 1 && strings.TrimSpace(pages[n-1]) == "" {
		pages = pages[:n-1]
	}
	if e.cfg.MaxPages > 0 && len(pages) > e.cfg.MaxPages {
		pages = pages[:e.cfg.MaxPages]
	}
	return pages, nil
}

// mergePages builds document pages from the layout view, taking line text
// from texts when given.
func mergePages(layouts []pageLayout, texts []string) []extract.Page {
	n := len(layouts)
	if texts != nil && len(texts) > n {
		n = len(texts)
	}

	pages := make([]extract.Page, n)
	for i := range pages {
		page := extract.Page{Number: i + 1, Height: defaultPageHeight}
		if i < len(layouts) {
			l := layouts[i]
			page.Height = l.height
			page.Words = l.words()
			page.Tables = detectTables(l.rows)
			page.Lines = SplitLines(strings.Join(l.lines(), "\n"))
		}
		if texts != nil {
			page.Lines = nil
			if i < len(texts) {
				page.Lines = SplitLines(texts[i])
			}
		}
		pages[i] = page
	}
	return pages
}
