package pdftext

import (
	"math"
	"regexp"
	"strings"

	"github.com/joseph-ayodele/invoice-extractor/internal/extract"
)

const (
	// cellGap is the horizontal gap, in points, that separates two cells of
	// a row.
	cellGap = 6.0
	// minTableColumns is the cell count a header row needs.
	minTableColumns = 3
	// maxSparseRows single-cell rows end a table.
	maxSparseRows = 2
)

var reNumericCell = regexp.MustCompile(`^[0-9.,/%\-]+$`)

type cell struct {
	text   string
	x0, x1 float64
}

// rowCells merges neighbouring words of a row into cells.
func rowCells(words []extract.Word) []cell {
	var cells []cell
	for _, w := range words {
		if n := len(cells); n > 0 && w.X0-cells[n-1].x1 < cellGap {
			cells[n-1].text += " " + w.Text
			cells[n-1].x1 = w.X1
			continue
		}
		cells = append(cells, cell{text: w.Text, x0: w.X0, x1: w.X1})
	}
	return cells
}

// looksLikeHeader is a wide row with no numeric cell.
func looksLikeHeader(cells []cell) bool {
	if len(cells) < minTableColumns {
		return false
	}
	for _, c := range cells {
		if reNumericCell.MatchString(c.text) {
			return false
		}
	}
	return true
}

// detectTables finds header-led column grids in the page rows. Every row
// below a header is laid onto the header's columns by horizontal overlap.
func detectTables(rows [][]extract.Word) []extract.Table {
	var tables []extract.Table

	i := 0
	for i < len(rows) {
		header := rowCells(rows[i])
		if !looksLikeHeader(header) {
			i++
			continue
		}

		grid := [][]string{cellTexts(header)}
		sparse := 0
		j := i + 1
		for ; j < len(rows); j++ {
			cells := rowCells(rows[j])
			if looksLikeHeader(cells) {
				break
			}
			if len(cells) < 2 {
				sparse++
				if sparse >= maxSparseRows {
					break
				}
				continue
			}
			sparse = 0
			grid = append(grid, assignColumns(header, cells))
		}

		if len(grid) >= 2 {
			tables = append(tables, extract.Table{Rows: grid})
		}
		i = j
	}
	return tables
}

func cellTexts(cells []cell) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.text
	}
	return out
}

func assignColumns(header, cells []cell) []string {
	out := make([]string, len(header))
	for _, c := range cells {
		col := bestColumn(header, c)
		if out[col] != "" {
			out[col] += " "
		}
		out[col] += c.text
	}
	for i := range out {
		out[i] = strings.TrimSpace(out[i])
	}
	return out
}

// bestColumn picks the header cell overlapping c the most, or the nearest
// one by centre when none overlaps.
func bestColumn(header []cell, c cell) int {
	best, bestOverlap := -1, 0.0
	for i, h := range header {
		overlap := math.Min(h.x1, c.x1) - math.Max(h.x0, c.x0)
		if overlap > bestOverlap {
			best, bestOverlap = i, overlap
		}
	}
	if best >= 0 {
		return best
	}

	centre := (c.x0 + c.x1) / 2
	best, bestDist := 0, math.Inf(1)
	for i, h := range header {
		if d := math.Abs((h.x0+h.x1)/2 - centre); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
