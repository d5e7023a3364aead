package extract

import (
	"context"
	"strings"
	"time"
)

// TextExtractor turns one file into its page text and layout view.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (Document, error)
}

// Document is everything the field extractors read from one file. It is
// built once per file and never modified afterwards.
type Document struct {
	Path     string
	Pages    []Page
	Method   string // "native" | "pdftotext"
	Duration time.Duration
	Warnings []string
}

// Page holds one page's text lines, detected tables and positioned words.
type Page struct {
	Number int // 1-based
	Height float64
	Lines  []string
	Tables []Table
	Words  []Word
}

// Table is a rectangular grid of cell strings; Rows[0] is the header when
// the detector found one.
type Table struct {
	Rows [][]string
}

// Word is a run of glyphs with its bounding box in points, origin at the
// top-left corner of the page.
type Word struct {
	Text   string
	X0     float64
	X1     float64
	Top    float64
	Bottom float64
}

// Text returns the page lines joined with newlines.
func (p Page) Text() string {
	return strings.Join(p.Lines, "\n")
}

// Text returns the full document text, pages joined with a newline.
func (d Document) Text() string {
	parts := make([]string, len(d.Pages))
	for i, p := range d.Pages {
		parts[i] = p.Text()
	}
	return strings.Join(parts, "\n")
}

// Lines returns the logical lines of every page in order.
func (d Document) Lines() []string {
	var out []string
	for _, p := range d.Pages {
		out = append(out, p.Lines...)
	}
	return out
}

// Header returns the first row of the table, or nil when it has none.
func (t Table) Header() []string {
	if len(t.Rows) == 0 {
		return nil
	}
	return t.Rows[0]
}
