package constants

// Field identifies one output column.
type Field string

const (
	FieldDocumentNumber     Field = "document_number"
	FieldDocumentDate       Field = "document_date"
	FieldPurchaseOrder      Field = "purchase_order"
	FieldDeliveryNoteNumber Field = "delivery_note_number"
	FieldDeliveryNoteDate   Field = "delivery_note_date"
	FieldSubtotal           Field = "subtotal"
	FieldTotalQuantity      Field = "total_quantity"
)

// DocumentNumberPrefix is prepended to every extracted document number.
const DocumentNumberPrefix = "25IN_"

// SubtotalReviewSentinel marks a subtotal no line could resolve.
const SubtotalReviewSentinel = "needs manual review"

// allFields is the fixed column order of every exported row.
var allFields = []Field{
	FieldDocumentNumber,
	FieldDocumentDate,
	FieldPurchaseOrder,
	FieldDeliveryNoteNumber,
	FieldDeliveryNoteDate,
	FieldSubtotal,
	FieldTotalQuantity,
}

var headers = map[Field]string{
	FieldDocumentNumber:     "Numero documento",
	FieldDocumentDate:       "Data documento",
	FieldPurchaseOrder:      "PO",
	FieldDeliveryNoteNumber: "DDT",
	FieldDeliveryNoteDate:   "Data DDT",
	FieldSubtotal:           "Totale Imponibile",
	FieldTotalQuantity:      "Quantità",
}

var placeholders = map[Field]string{
	FieldDocumentNumber:     "missing document number",
	FieldDocumentDate:       "missing document date",
	FieldPurchaseOrder:      "missing PO",
	FieldDeliveryNoteNumber: "missing DDT",
	FieldDeliveryNoteDate:   "missing DDT date",
	FieldSubtotal:           "missing subtotal",
}

// Fields returns the output columns in order.
func Fields() []Field {
	out := make([]Field, len(allFields))
	copy(out, allFields)
	return out
}

// Headers returns the spreadsheet header labels in column order.
func Headers() []string {
	result := make([]string, len(allFields))
	for i, f := range allFields {
		result[i] = f.Header()
	}
	return result
}

func (f Field) Header() string {
	if h, ok := headers[f]; ok {
		return h
	}
	return string(f)
}

// Placeholder is the text written in place of an empty value. Numeric
// columns have none.
func (f Field) Placeholder() string {
	return placeholders[f]
}
