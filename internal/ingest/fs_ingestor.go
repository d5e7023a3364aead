package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/invoice-extractor/constants"
	"github.com/joseph-ayodele/invoice-extractor/internal/pdftext"
)

// Options controls how files are collected.
type Options struct {
	SkipHidden     bool
	CheckStructure bool
}

// FSIngestor reads from the local filesystem.
type FSIngestor struct {
	opts    Options
	logger  *slog.Logger
	inspect func(path string) (pdftext.Info, error)
}

var _ Ingestor = (*FSIngestor)(nil)

func NewFSIngestor(opts Options, logger *slog.Logger) *FSIngestor {
	if logger == nil {
		logger = slog.Default()
	}
	return &FSIngestor{opts: opts, logger: logger, inspect: pdftext.Inspect}
}

// IngestPath hashes and, when enabled, structure-checks one file. Failures
// are recorded on the returned Document rather than returned.
func (i *FSIngestor) IngestPath(ctx context.Context, path string) Document {
	doc := Document{
		ID:   uuid.New(),
		Name: filepath.Base(path),
		Path: path,
		Ext:  constants.NormalizeExt(filepath.Ext(path)),
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		doc.Err = fmt.Errorf("abs path: %w", err)
		return doc
	}
	doc.Path = abs

	if !doc.Eligible() {
		i.logger.Debug("ingest.skip.extension", "path", abs, "ext", doc.Ext)
		return doc
	}
	if err := ctx.Err(); err != nil {
		doc.Err = err
		return doc
	}

	size, sum, err := hashFile(abs)
	if err != nil {
		i.logger.Warn("ingest.hash.failed", "path", abs, "error", err)
		doc.Err = err
		return doc
	}
	doc.Size = size
	doc.HashHex = sum

	if i.opts.CheckStructure {
		info, err := i.inspect(abs)
		if err != nil {
			i.logger.Warn("ingest.structure.failed", "path", abs, "error", err)
			doc.Err = err
			return doc
		}
		doc.Pages = info.Pages
	}

	i.logger.Debug("ingest.ok", "path", abs, "doc_id", doc.ID, "size", doc.Size, "pages", doc.Pages)
	return doc
}

// IngestPaths ingests an explicit selection in the given order.
func (i *FSIngestor) IngestPaths(ctx context.Context, paths []string) []Document {
	docs := make([]Document, 0, len(paths))
	for _, p := range paths {
		docs = append(docs, i.IngestPath(ctx, p))
	}
	return docs
}

// IngestDirectory walks root in lexical order, skips hidden entries if
// requested, and ingests every eligible file.
func (i *FSIngestor) IngestDirectory(ctx context.Context, root string) ([]Document, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root path is required")
	}

	var docs []Document
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		stats.Scanned++
		if walkErr != nil {
			docs = append(docs, Document{ID: uuid.New(), Name: filepath.Base(path), Path: path, Err: walkErr})
			stats.Failed++
			return nil
		}
		if i.opts.SkipHidden && path != root && IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !AllowedExt(filepath.Ext(path)) {
			return nil
		}
		stats.Matched++

		doc := i.IngestPath(ctx, path)
		docs = append(docs, doc)
		if doc.Err != nil {
			stats.Failed++
		} else {
			stats.Succeeded++
		}
		return nil
	})

	if err != nil {
		return docs, stats, fmt.Errorf("walk: %w", err)
	}
	return docs, stats, nil
}

func hashFile(path string) (int64, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, "", fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return 0, "", fmt.Errorf("hash: %w", err)
	}
	return n, hex.EncodeToString(h.Sum(nil)), nil
}
