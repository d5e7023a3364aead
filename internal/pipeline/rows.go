package pipeline

import (
	"github.com/joseph-ayodele/invoice-extractor/constants"
	"github.com/joseph-ayodele/invoice-extractor/internal/entity"
)

// ExpandRows flattens records into rows, one per delivery note, and fills
// every empty cell with its column placeholder.
func ExpandRows(records []entity.InvoiceRecord) []entity.OutputRow {
	var rows []entity.OutputRow
	for _, rec := range records {
		for _, row := range ExpandRecord(rec) {
			rows = append(rows, FillPlaceholders(row))
		}
	}
	return rows
}

// ExpandRecord emits one row per delivery note, or a single row with empty
// delivery-note cells when the record has none.
func ExpandRecord(rec entity.InvoiceRecord) []entity.OutputRow {
	base := entity.OutputRow{
		DocumentNumber: rec.DocumentNumber,
		DocumentDate:   rec.DocumentDate,
		PurchaseOrder:  rec.PurchaseOrder,
		Subtotal:       rec.Subtotal,
		TotalQuantity:  rec.TotalQuantity,
	}
	if len(rec.DeliveryNotes) == 0 {
		return []entity.OutputRow{base}
	}

	rows := make([]entity.OutputRow, 0, len(rec.DeliveryNotes))
	for _, note := range rec.DeliveryNotes {
		row := base
		row.DeliveryNoteNumber = note.Number
		row.DeliveryNoteDate = note.Date
		rows = append(rows, row)
	}
	return rows
}

// FillPlaceholders returns row with each empty text cell replaced.
func FillPlaceholders(row entity.OutputRow) entity.OutputRow {
	fill := func(v *string, f constants.Field) {
		if *v == "" {
			*v = f.Placeholder()
		}
	}
	fill(&row.DocumentNumber, constants.FieldDocumentNumber)
	fill(&row.DocumentDate, constants.FieldDocumentDate)
	fill(&row.PurchaseOrder, constants.FieldPurchaseOrder)
	fill(&row.DeliveryNoteNumber, constants.FieldDeliveryNoteNumber)
	fill(&row.DeliveryNoteDate, constants.FieldDeliveryNoteDate)
	fill(&row.Subtotal, constants.FieldSubtotal)
	return row
}
