package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/invoice-extractor/internal/pdftext"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return root
}

func TestIngestDirectory(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.pdf":         "alpha",
		"b.PDF":         "bravo",
		"notes.txt":     "skip me",
		".hidden/c.pdf": "hidden",
		"sub/d.pdf":     "delta",
	})

	ing := NewFSIngestor(Options{SkipHidden: true}, nil)
	docs, stats, err := ing.IngestDirectory(context.Background(), root)
	require.NoError(t, err)

	require.Len(t, docs, 3)
	assert.Equal(t, "a.pdf", docs[0].Name)
	assert.Equal(t, "b.PDF", docs[1].Name)
	assert.Equal(t, "d.pdf", docs[2].Name)
	for _, d := range docs {
		assert.NoError(t, d.Err)
		assert.True(t, d.Eligible())
		assert.True(t, filepath.IsAbs(d.Path))
	}

	sum := sha256.Sum256([]byte("alpha"))
	assert.Equal(t, hex.EncodeToString(sum[:]), docs[0].HashHex)
	assert.Equal(t, int64(5), docs[0].Size)

	assert.Equal(t, uint32(3), stats.Matched)
	assert.Equal(t, uint32(3), stats.Succeeded)
	assert.Zero(t, stats.Failed)
}

func TestIngestDirectoryRequiresRoot(t *testing.T) {
	_, _, err := NewFSIngestor(Options{}, nil).IngestDirectory(context.Background(), " ")
	assert.Error(t, err)
}

func TestIngestPathStructureCheck(t *testing.T) {
	root := writeTree(t, map[string]string{"ok.pdf": "ok", "bad.pdf": "bad"})

	ing := NewFSIngestor(Options{CheckStructure: true}, nil)
	ing.inspect = func(path string) (pdftext.Info, error) {
		if filepath.Base(path) == "bad.pdf" {
			return pdftext.Info{}, errors.New("broken xref")
		}
		return pdftext.Info{Pages: 2}, nil
	}

	docs := ing.IngestPaths(context.Background(), []string{
		filepath.Join(root, "ok.pdf"),
		filepath.Join(root, "bad.pdf"),
		filepath.Join(root, "readme.txt"),
		filepath.Join(root, "missing.pdf"),
	})
	require.Len(t, docs, 4)

	assert.NoError(t, docs[0].Err)
	assert.Equal(t, 2, docs[0].Pages)

	assert.EqualError(t, docs[1].Err, "broken xref")

	assert.False(t, docs[2].Eligible())
	assert.NoError(t, docs[2].Err)

	assert.Error(t, docs[3].Err)
	assert.True(t, docs[3].Eligible())
}

func TestIsHidden(t *testing.T) {
	assert.True(t, IsHidden("/tmp/.git"))
	assert.False(t, IsHidden("/tmp/a.pdf"))
	assert.False(t, IsHidden("."))
}
