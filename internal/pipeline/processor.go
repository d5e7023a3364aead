package pipeline

import (
	"context"
	"log/slog"

	"github.com/joseph-ayodele/invoice-extractor/internal/common"
	"github.com/joseph-ayodele/invoice-extractor/internal/entity"
	"github.com/joseph-ayodele/invoice-extractor/internal/extract"
	"github.com/joseph-ayodele/invoice-extractor/internal/parsefields"
)

// Processor reads one document and assembles its invoice record.
type Processor struct {
	Logger    *slog.Logger
	Extractor extract.TextExtractor
	Band      parsefields.Band
}

func NewProcessor(logger *slog.Logger, extractor extract.TextExtractor, band parsefields.Band) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if band.LineTolerance <= 0 {
		band.LineTolerance = parsefields.DefaultBand.LineTolerance
	}
	return &Processor{Logger: logger, Extractor: extractor, Band: band}
}

// ProcessFile extracts the document at path and returns its record. Only a
// document the extractor cannot read is an error; missing fields are left
// empty.
func (p *Processor) ProcessFile(ctx context.Context, path string) (entity.InvoiceRecord, error) {
	logger := common.LoggerWithContext(ctx, p.Logger)

	doc, err := p.Extractor.Extract(ctx, path)
	if err != nil {
		logger.Error("processor.extract.failed", "path", path, "err", err)
		return entity.InvoiceRecord{SourcePath: path}, common.UnreadableDocumentError(path, err)
	}
	for _, w := range doc.Warnings {
		logger.Warn("processor.extract.warning", "path", path, "warning", w)
	}
	logger.Info("processor.extract.ok",
		"path", path,
		"method", doc.Method,
		"pages", len(doc.Pages),
		"duration_ms", doc.Duration.Milliseconds(),
	)

	rec, poStrategy := assemble(doc, p.Band)
	logger.Info("processor.record.ok",
		"path", path,
		"document_number", rec.DocumentNumber,
		"po_strategy", poStrategy,
		"delivery_notes", len(rec.DeliveryNotes),
		"subtotal", rec.Subtotal,
		"quantity", rec.TotalQuantity,
		"quantity_source", rec.QuantitySource,
	)
	return rec, nil
}

// AssembleRecord runs every field extractor once over doc.
func AssembleRecord(doc extract.Document, band parsefields.Band) entity.InvoiceRecord {
	rec, _ := assemble(doc, band)
	return rec
}

func assemble(doc extract.Document, band parsefields.Band) (entity.InvoiceRecord, string) {
	text := doc.Text()
	lines := parsefields.Lines(doc.Lines())

	number, date := parsefields.ExtractHeader(text)
	po, poStrategy := parsefields.MatchPurchaseOrder(text)
	qty := parsefields.AggregateQuantity(doc.Pages, band)

	return entity.InvoiceRecord{
		SourcePath:     doc.Path,
		DocumentNumber: number,
		DocumentDate:   date,
		PurchaseOrder:  po,
		DeliveryNotes:  parsefields.ExtractDeliveryNotes(lines),
		Subtotal:       parsefields.ExtractSubtotal(lines),
		TotalQuantity:  qty.Total(),
		QuantitySource: qty.Source,
	}, poStrategy
}
