package ingest

import (
	"context"

	"github.com/google/uuid"
)

// Document is one selected file of a batch.
type Document struct {
	ID      uuid.UUID
	Name    string // base name as selected
	Path    string // absolute path
	Ext     string // lowercased, no dot
	Size    int64
	HashHex string
	Pages   int   // from the structure check; 0 when not checked
	Err     error // set when the file could not be read or failed the structure check
}

// Eligible reports whether the document carries an accepted extension.
func (d Document) Eligible() bool {
	return AllowedExt(d.Ext)
}

// DirStats summarizes a directory ingest.
type DirStats struct {
	Scanned   uint32
	Matched   uint32
	Succeeded uint32
	Failed    uint32
}

// Ingestor collects batch documents.
type Ingestor interface {
	// IngestPaths ingests an explicit selection, ineligible files included.
	IngestPaths(ctx context.Context, paths []string) []Document
	// IngestDirectory ingests all eligible files under root.
	IngestDirectory(ctx context.Context, root string) ([]Document, DirStats, error)
}
