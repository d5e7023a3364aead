package parsefields

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/invoice-extractor/constants"
	"github.com/joseph-ayodele/invoice-extractor/internal/extract"
)

const quantityHeader = "quantit"

var (
	reQuantityCell = regexp.MustCompile(`^(?:\d{1,3}(?:\.\d{3})*|\d+)(?:,\d{2})?$`)
	reQuantityLine = regexp.MustCompile(`^(?:\d+|\d{1,3}(?:\.\d{3})+|\d{1,3}(?:\.\d{3})*,\d{2})$`)
)

// Band is the horizontal strip where the quantity column sits on pages whose
// table could not be recovered.
type Band struct {
	MinX float64
	MaxX float64
	// LineTolerance is the vertical bucket, in points, that puts two words on
	// the same visual line.
	LineTolerance float64
}

// DefaultBand matches the quantity column of the supported invoice layouts.
var DefaultBand = Band{MinX: 250, MaxX: 290, LineTolerance: 3}

// QuantityResult is the aggregated quantity tagged with the stage that
// produced it.
type QuantityResult struct {
	Source constants.QuantitySource
	Value  decimal.Decimal
}

// Total is the quantity with any fractional part dropped.
func (r QuantityResult) Total() int {
	return int(r.Value.IntPart())
}

// AggregateQuantity sums the quantity column of every table; when that finds
// nothing positive it falls back to the words inside band.
func AggregateQuantity(pages []extract.Page, band Band) QuantityResult {
	if total := TableQuantity(pages); total.IsPositive() {
		return QuantityResult{Source: constants.QuantityFromTable, Value: total}
	}
	total := PositionalQuantity(pages, band)
	if total.IsZero() {
		return QuantityResult{Source: constants.QuantityNone, Value: total}
	}
	return QuantityResult{Source: constants.QuantityFromPositional, Value: total}
}

// TableQuantity adds up, for every table with a "Quantità" header cell, the
// numeric cells below it in that column.
func TableQuantity(pages []extract.Page) decimal.Decimal {
	total := decimal.Zero
	for _, page := range pages {
		for _, table := range page.Tables {
			col := quantityColumn(table.Header())
			if col < 0 {
				continue
			}
			for _, row := range table.Rows[1:] {
				if col >= len(row) {
					continue
				}
				cell := strings.TrimSpace(row[col])
				if !reQuantityCell.MatchString(cell) {
					continue
				}
				if v, err := ParseDecimal(cell); err == nil {
					total = total.Add(v)
				}
			}
		}
	}
	return total
}

func quantityColumn(header []string) int {
	for i, cell := range header {
		if strings.Contains(strings.ToLower(cell), quantityHeader) {
			return i
		}
	}
	return -1
}

// PositionalQuantity rebuilds the quantity column from word positions: words
// whose left edge falls inside band are grouped into visual lines and every
// line that reads as a number is summed.
func PositionalQuantity(pages []extract.Page, band Band) decimal.Decimal {
	tol := band.LineTolerance
	if tol <= 0 {
		tol = DefaultBand.LineTolerance
	}

	total := decimal.Zero
	for _, page := range pages {
		for _, line := range bandLines(page.Words, band, tol) {
			if !reQuantityLine.MatchString(line) {
				continue
			}
			if v, err := ParseDecimal(line); err == nil {
				total = total.Add(v)
			}
		}
	}
	return total
}

// BandLines returns the visual lines of page that PositionalQuantity reads.
func BandLines(page extract.Page, band Band) []string {
	tol := band.LineTolerance
	if tol <= 0 {
		tol = DefaultBand.LineTolerance
	}
	return bandLines(page.Words, band, tol)
}

// bandLines returns the space-free text of each visual line inside band,
// top to bottom.
func bandLines(words []extract.Word, band Band, tol float64) []string {
	var kept []extract.Word
	for _, w := range words {
		if w.X0 >= band.MinX && w.X0 <= band.MaxX {
			kept = append(kept, w)
		}
	}
	bucket := func(w extract.Word) float64 { return math.Round(w.Top / tol) }
	sort.SliceStable(kept, func(i, j int) bool {
		bi, bj := bucket(kept[i]), bucket(kept[j])
		if bi != bj {
			return bi < bj
		}
		return kept[i].X0 < kept[j].X0
	})

	var lines []string
	var cur strings.Builder
	for i, w := range kept {
		if i > 0 && bucket(w) != bucket(kept[i-1]) {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		cur.WriteString(strings.ReplaceAll(w.Text, " ", ""))
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
