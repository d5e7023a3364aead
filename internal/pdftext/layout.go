package pdftext

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/joseph-ayodele/invoice-extractor/internal/extract"
)

const (
	// rowTolerance is the baseline distance under which glyphs share a row.
	rowTolerance = 2.0
	// wordGapRatio times the font size is the horizontal gap that ends a word.
	wordGapRatio = 0.2
	minWordGap   = 1.0

	defaultPageHeight = 842.0 // A4
	maxParentDepth    = 32
)

type glyphRow struct {
	y      float64
	glyphs []pdf.Text
}

// pageLayout is the positioned view of one page: its words grouped into
// visual rows, top to bottom.
type pageLayout struct {
	number int
	height float64
	rows   [][]extract.Word
}

// readPage decodes the page content stream. Malformed streams make the
// decoder panic, which is reported as an error for that page.
func readPage(p pdf.Page) (texts []pdf.Text, height float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decode page content: %v", r)
		}
	}()
	height = pageHeight(p)
	texts = p.Content().Text
	return texts, height, nil
}

// pageHeight reads the MediaBox, inherited from the page tree if needed.
func pageHeight(p pdf.Page) float64 {
	v := p.V
	for depth := 0; depth < maxParentDepth && !v.IsNull(); depth++ {
		box := v.Key("MediaBox")
		if box.Len() == 4 {
			if h := box.Index(3).Float64() - box.Index(1).Float64(); h > 0 {
				return h
			}
		}
		v = v.Key("Parent")
	}
	return defaultPageHeight
}

// groupRows buckets glyphs by baseline, rows top to bottom and glyphs left
// to right.
func groupRows(texts []pdf.Text) []glyphRow {
	var rows []glyphRow
	for _, t := range texts {
		if t.S == "" {
			continue
		}
		placed := false
		for i := range rows {
			if math.Abs(rows[i].y-t.Y) < rowTolerance {
				rows[i].glyphs = append(rows[i].glyphs, t)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, glyphRow{y: t.Y, glyphs: []pdf.Text{t}})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].y > rows[j].y })
	for _, row := range rows {
		g := row.glyphs
		sort.SliceStable(g, func(i, j int) bool { return g[i].X < g[j].X })
	}
	return rows
}

// rowWords splits a row into words on blank glyphs and on horizontal gaps.
// Multi-rune text runs are spread evenly over their advance width.
func rowWords(row glyphRow, height float64) []extract.Word {
	var (
		words []extract.Word
		cur   extract.Word
		text  strings.Builder
		open  bool
	)
	flush := func() {
		if open {
			cur.Text = text.String()
			words = append(words, cur)
		}
		text.Reset()
		open = false
	}

	for _, g := range row.glyphs {
		n := utf8.RuneCountInString(g.S)
		step := 0.0
		if n > 0 {
			step = g.W / float64(n)
		}
		top := height - (g.Y + g.FontSize)
		bottom := height - g.Y
		gap := math.Max(g.FontSize*wordGapRatio, minWordGap)

		i := 0
		for _, r := range g.S {
			x0 := g.X + float64(i)*step
			i++
			if r == ' ' || r == '\u00a0' || r == '\t' {
				flush()
				continue
			}
			if open && x0-cur.X1 > gap {
				flush()
			}
			if !open {
				cur = extract.Word{X0: x0, Top: top, Bottom: bottom}
				open = true
			}
			text.WriteRune(r)
			cur.X1 = x0 + step
			cur.Top = math.Min(cur.Top, top)
			cur.Bottom = math.Max(cur.Bottom, bottom)
		}
	}
	flush()
	return words
}

// buildLayout turns raw page glyphs into word rows.
func buildLayout(number int, texts []pdf.Text, height float64) pageLayout {
	layout := pageLayout{number: number, height: height}
	for _, row := range groupRows(texts) {
		if words := rowWords(row, height); len(words) > 0 {
			layout.rows = append(layout.rows, words)
		}
	}
	return layout
}

// lines renders each row as its words joined by single spaces.
func (l pageLayout) lines() []string {
	out := make([]string, 0, len(l.rows))
	for _, row := range l.rows {
		parts := make([]string, len(row))
		for i, w := range row {
			parts[i] = w.Text
		}
		out = append(out, strings.Join(parts, " "))
	}
	return out
}

func (l pageLayout) words() []extract.Word {
	var out []extract.Word
	for _, row := range l.rows {
		out = append(out, row...)
	}
	return out
}
