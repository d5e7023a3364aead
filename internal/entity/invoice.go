package entity

import "github.com/joseph-ayodele/invoice-extractor/constants"

// DeliveryNote is one shipping document (DDT) referenced by an invoice.
type DeliveryNote struct {
	Number string
	Date   string // dd/mm/yyyy
}

// DeliveryNotes keeps first-seen order.
type DeliveryNotes []DeliveryNote

// Columns splits the notes into two index-aligned sequences.
func (n DeliveryNotes) Columns() (numbers, dates []string) {
	numbers = make([]string, len(n))
	dates = make([]string, len(n))
	for i, note := range n {
		numbers[i] = note.Number
		dates[i] = note.Date
	}
	return numbers, dates
}

// InvoiceRecord is the structured result for one document.
type InvoiceRecord struct {
	SourcePath     string
	DocumentNumber string
	DocumentDate   string
	PurchaseOrder  string
	DeliveryNotes  DeliveryNotes
	Subtotal       string
	TotalQuantity  int
	QuantitySource constants.QuantitySource
}

// OutputRow is one exported spreadsheet row.
type OutputRow struct {
	DocumentNumber     string `json:"document_number"`
	DocumentDate       string `json:"document_date"`
	PurchaseOrder      string `json:"purchase_order"`
	DeliveryNoteNumber string `json:"delivery_note_number"`
	DeliveryNoteDate   string `json:"delivery_note_date"`
	Subtotal           string `json:"subtotal"`
	TotalQuantity      int    `json:"total_quantity"`
}

// Cells returns the row values in constants.Fields order.
func (r OutputRow) Cells() []any {
	return []any{
		r.DocumentNumber,
		r.DocumentDate,
		r.PurchaseOrder,
		r.DeliveryNoteNumber,
		r.DeliveryNoteDate,
		r.Subtotal,
		r.TotalQuantity,
	}
}
