package parsefields

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/invoice-extractor/constants"
	"github.com/joseph-ayodele/invoice-extractor/internal/entity"
)

func TestExtractHeader(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantNumber string
		wantDate   string
	}{
		{
			name:       "standard invoice line",
			text:       "Spett.le Cliente\nTD01 Fattura 123/A 15-10-2025\nPagina 1",
			wantNumber: "25IN_123/A",
			wantDate:   "15-10-2025",
		},
		{
			name:       "deferred invoice",
			text:       "TD24 Fattura differita 00123 01-09-2025",
			wantNumber: "25IN_00123",
			wantDate:   "01-09-2025",
		},
		{
			name:       "first match wins",
			text:       "TD01 Fattura 1 02-01-2025\nTD01 Fattura 2 03-01-2025",
			wantNumber: "25IN_1",
			wantDate:   "02-01-2025",
		},
		{name: "no header", text: "Fattura 123 15-10-2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			number, date := ExtractHeader(tt.text)
			assert.Equal(t, tt.wantNumber, number)
			assert.Equal(t, tt.wantDate, date)
		})
	}
}

func TestExtractPurchaseOrder(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		want         string
		wantStrategy string
	}{
		{name: "vs ord with PO", text: "Vs.Ord. PO 4500123456 del 01-01-2025", want: "4500123456", wantStrategy: "vs-ord"},
		{name: "vs ord lower case", text: "vs.ord 778/2025\naltro", want: "778/2025", wantStrategy: "vs-ord"},
		{name: "bare PO", text: "Rif. PO 12/2025 consegna", want: "12/2025", wantStrategy: "po"},
		{name: "ordine", text: "Ordine 778899 del cliente", want: "778899", wantStrategy: "ordine"},
		{name: "vs ord beats PO", text: "PO 111\nVs.Ord. 222", want: "222", wantStrategy: "vs-ord"},
		{name: "capped at ten digits", text: "PO 123456789012345", want: "1234567890", wantStrategy: "po"},
		{name: "nothing", text: "nessun riferimento"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			po, strategy := MatchPurchaseOrder(tt.text)
			assert.Equal(t, tt.want, po)
			assert.Equal(t, tt.wantStrategy, strategy)
			assert.Equal(t, tt.want, ExtractPurchaseOrder(tt.text))
		})
	}
}

func TestChainOrder(t *testing.T) {
	chain := Chain{
		RegexMatcher{Name: "first", Pattern: regexp.MustCompile(`a(\d)`)},
		RegexMatcher{Name: "second", Pattern: regexp.MustCompile(`b(\d)`)},
	}

	m, ok := chain.TryExtract("b2 a1")
	assert.True(t, ok)
	assert.Equal(t, "first", m.Strategy)
	assert.Equal(t, "1", m.Group(0))
	assert.Equal(t, "", m.Group(3))

	_, ok = chain.TryExtract("c3")
	assert.False(t, ok)
}

func TestExtractDeliveryNotes(t *testing.T) {
	tests := []struct {
		name  string
		lines Lines
		want  entity.DeliveryNotes
	}{
		{
			name:  "date on the same line",
			lines: Lines{"DDT A1-2025-0000415 del 03-10-2025"},
			want:  entity.DeliveryNotes{{Number: "00415", Date: "03/10/2025"}},
		},
		{
			name:  "date split across the line break",
			lines: Lines{"DDT 2025 41 0056596 del 28-", "10-2025 Merce"},
			want:  entity.DeliveryNotes{{Number: "56596", Date: "28/10/2025"}},
		},
		{
			name:  "date spread over three lines",
			lines: Lines{"DDT 00012345 del", "28-10-", "2025"},
			want:  entity.DeliveryNotes{{Number: "12345", Date: "28/10/2025"}},
		},
		{
			name: "duplicates collapse",
			lines: Lines{
				"DDT A1-2025-0000415 del 03-10-2025",
				"articolo",
				"DDT A1-2025-0000415 del 03-10-2025",
			},
			want: entity.DeliveryNotes{{Number: "00415", Date: "03/10/2025"}},
		},
		{
			name: "first-seen order",
			lines: Lines{
				"DDT 0000777 del 05-10-2025",
				"DDT 0000415 del 03-10-2025",
			},
			want: entity.DeliveryNotes{
				{Number: "00777", Date: "05/10/2025"},
				{Number: "00415", Date: "03/10/2025"},
			},
		},
		{name: "too few digits", lines: Lines{"DDT 123 del 01-01-2025"}},
		{name: "no date anywhere", lines: Lines{"DDT 1234567"}},
		{name: "no marker", lines: Lines{"Documento 1234567 del 01-01-2025"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractDeliveryNotes(tt.lines)
			assert.Equal(t, tt.want, got)

			numbers, dates := got.Columns()
			assert.Len(t, dates, len(numbers))
		})
	}
}

func TestExtractSubtotal(t *testing.T) {
	tests := []struct {
		name  string
		lines Lines
		want  string
	}{
		{
			name:  "summary line",
			lines: Lines{"Articolo 2 PZ 10,00 20,00 1,00", "Riepilogo 22,00 1.016,18 223,56"},
			want:  "1.016,18",
		},
		{
			name:  "pairs line always skipped",
			lines: Lines{"Scarpe 2 PAIA 10,00 20,00 4,40"},
			want:  constants.SubtotalReviewSentinel,
		},
		{
			name:  "item number line skipped",
			lines: Lines{"Nr. 3 1,00 2,00 3,00", "Totali 5,00 6,00 7,00"},
			want:  "6,00",
		},
		{
			name:  "needs exactly three amounts",
			lines: Lines{"Totale 10,00 20,00", "Iva 1,00 2,00 3,00 4,00"},
			want:  constants.SubtotalReviewSentinel,
		},
		{name: "empty", want: constants.SubtotalReviewSentinel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSubtotal(tt.lines))
		})
	}
}

func TestLinesAt(t *testing.T) {
	lines := SplitLines("a\nb")
	assert.Equal(t, 2, lines.Len())

	got, ok := lines.At(1)
	assert.True(t, ok)
	assert.Equal(t, "b", got)

	_, ok = lines.At(2)
	assert.False(t, ok)
	_, ok = lines.At(-1)
	assert.False(t, ok)

	assert.Nil(t, SplitLines(""))
}
