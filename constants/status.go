package constants

// DocumentStatus is the outcome of one document within a batch.
type DocumentStatus string

const (
	DocumentStatusOK      DocumentStatus = "OK"      // record assembled, rows emitted
	DocumentStatusSkipped DocumentStatus = "SKIPPED" // not an eligible file
	DocumentStatusFailed  DocumentStatus = "FAILED"  // collaborator could not read it
)

// QuantitySource names the stage that produced a document's total quantity.
type QuantitySource string

const (
	QuantityFromTable      QuantitySource = "table"
	QuantityFromPositional QuantitySource = "positional"
	QuantityNone           QuantitySource = "none"
)
