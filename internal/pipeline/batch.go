package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/joseph-ayodele/invoice-extractor/constants"
	"github.com/joseph-ayodele/invoice-extractor/internal/common"
	"github.com/joseph-ayodele/invoice-extractor/internal/entity"
	"github.com/joseph-ayodele/invoice-extractor/internal/ingest"
)

// DocumentProcessor turns one file into its record.
type DocumentProcessor interface {
	ProcessFile(ctx context.Context, path string) (entity.InvoiceRecord, error)
}

// Outcome is what happened to one input document.
type Outcome struct {
	Document ingest.Document
	Status   constants.DocumentStatus
	Record   entity.InvoiceRecord
	Rows     int
	Err      error
}

// Result is the output of one batch, rows in input order.
type Result struct {
	BatchID  uuid.UUID
	Rows     []entity.OutputRow
	Outcomes []Outcome
	Duration time.Duration
}

// Count returns how many documents ended with status.
func (r Result) Count(status constants.DocumentStatus) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// Records returns the records of the documents that were read, in order.
func (r Result) Records() []entity.InvoiceRecord {
	var out []entity.InvoiceRecord
	for _, o := range r.Outcomes {
		if o.Status == constants.DocumentStatusOK {
			out = append(out, o.Record)
		}
	}
	return out
}

// Batch runs the processor over a document collection.
type Batch struct {
	proc    DocumentProcessor
	logger  *slog.Logger
	workers int
	timeout time.Duration
}

type Option func(*Batch)

func WithWorkers(n int) Option {
	return func(b *Batch) {
		if n > 0 {
			b.workers = n
		}
	}
}

func WithDocumentTimeout(d time.Duration) Option {
	return func(b *Batch) {
		if d > 0 {
			b.timeout = d
		}
	}
}

func NewBatch(proc DocumentProcessor, logger *slog.Logger, opts ...Option) *Batch {
	if logger == nil {
		logger = slog.Default()
	}
	b := &Batch{
		proc:    proc,
		logger:  logger,
		workers: 1,
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// ProcessDocuments extracts every eligible document and returns the
// expanded rows. An empty collection, or one without any eligible document,
// is rejected. A document that cannot be read is reported in its Outcome and
// contributes no rows; the rest of the batch goes on.
func (b *Batch) ProcessDocuments(ctx context.Context, docs []ingest.Document) (Result, error) {
	start := time.Now()
	res := Result{BatchID: uuid.New()}
	ctx = common.WithBatchID(ctx, res.BatchID.String())
	logger := common.LoggerWithContext(ctx, b.logger)

	if len(docs) == 0 {
		logger.Warn("batch.rejected", "reason", common.ErrNoDocuments)
		return res, common.ErrNoDocuments
	}
	eligible := 0
	for _, d := range docs {
		if d.Eligible() {
			eligible++
		}
	}
	if eligible == 0 {
		logger.Warn("batch.rejected", "reason", common.ErrNoEligibleDocuments, "documents", len(docs))
		return res, common.ErrNoEligibleDocuments
	}

	logger.Info("batch.start", "documents", len(docs), "eligible", eligible, "workers", b.workers)

	res.Outcomes = make([]Outcome, len(docs))
	var g errgroup.Group
	g.SetLimit(b.workers)
	for i, doc := range docs {
		res.Outcomes[i] = Outcome{Document: doc}
		if !doc.Eligible() {
			res.Outcomes[i].Status = constants.DocumentStatusSkipped
			logger.Info("batch.document.skipped", "path", doc.Path, "ext", doc.Ext)
			continue
		}
		g.Go(func() error {
			res.Outcomes[i] = b.processOne(ctx, doc)
			return nil
		})
	}
	_ = g.Wait()

	for i := range res.Outcomes {
		o := &res.Outcomes[i]
		if o.Status != constants.DocumentStatusOK {
			continue
		}
		rows := ExpandRows([]entity.InvoiceRecord{o.Record})
		o.Rows = len(rows)
		res.Rows = append(res.Rows, rows...)
	}
	res.Duration = time.Since(start)

	logger.Info("batch.done",
		"ok", res.Count(constants.DocumentStatusOK),
		"skipped", res.Count(constants.DocumentStatusSkipped),
		"failed", res.Count(constants.DocumentStatusFailed),
		"rows", len(res.Rows),
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	if err := ctx.Err(); err != nil {
		return res, err
	}
	return res, nil
}

func (b *Batch) processOne(ctx context.Context, doc ingest.Document) Outcome {
	out := Outcome{Document: doc}
	ctx = common.WithDocumentID(ctx, doc.ID.String())
	logger := common.LoggerWithContext(ctx, b.logger)

	if doc.Err != nil {
		out.Status = constants.DocumentStatusFailed
		out.Err = common.UnreadableDocumentError(doc.Path, doc.Err)
		logger.Error("batch.document.failed", "path", doc.Path, "err", out.Err)
		return out
	}
	if err := ctx.Err(); err != nil {
		out.Status = constants.DocumentStatusFailed
		out.Err = err
		return out
	}

	dctx, cancel := common.WithTimeout(ctx, b.timeout)
	defer cancel()

	rec, err := b.proc.ProcessFile(dctx, doc.Path)
	if err != nil {
		out.Status = constants.DocumentStatusFailed
		out.Err = err
		logger.Error("batch.document.failed", "path", doc.Path, "err", err)
		return out
	}
	out.Status = constants.DocumentStatusOK
	out.Record = rec
	logger.Info("batch.document.ok", "path", doc.Path, "delivery_notes", len(rec.DeliveryNotes))
	return out
}
