package pdftext

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/invoice-extractor/internal/common"
)

type fakeRunner struct {
	stdout []byte
	err    error
	calls  [][]string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.stdout, []byte("boom"), f.err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestExtractPDFToTextSplitsPages(t *testing.T) {
	path := writeFile(t, "fattura.pdf", "not really a pdf")
	runner := &fakeRunner{stdout: []byte("TD01 Fattura 7 01-02-2025\r\n\n\tDDT 0000415 del 03-10-2025\fPagina  2\n\f")}

	ext := NewExtractor(Config{Method: common.TextMethodPDFToText, Pdftotext: "/usr/bin/pdftotext"}, nil).WithRunner(runner)
	doc, err := ext.Extract(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, doc.Pages, 2)
	assert.Equal(t, []string{"TD01 Fattura 7 01-02-2025", " DDT 0000415 del 03-10-2025"}, doc.Pages[0].Lines)
	assert.Equal(t, []string{"Pagina 2"}, doc.Pages[1].Lines)
	assert.Equal(t, 2, doc.Pages[1].Number)
	assert.NotEmpty(t, doc.Warnings, "layout failure is reported as a warning")

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"/usr/bin/pdftotext", "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-"}, runner.calls[0])
}

func TestExtractPDFToTextFailure(t *testing.T) {
	path := writeFile(t, "fattura.pdf", "this is not a pdf document")
	runner := &fakeRunner{err: errors.New("exit status 1")}

	_, err := NewExtractor(Config{Method: common.TextMethodPDFToText}, nil).WithRunner(runner).Extract(context.Background(), path)
	assert.Error(t, err)
}

func TestExtractNativeRejectsGarbage(t *testing.T) {
	path := writeFile(t, "fattura.pdf", "this is not a pdf document")

	_, err := NewExtractor(Config{}, nil).Extract(context.Background(), path)
	assert.Error(t, err)
}

func TestExtractRejectsOtherExtensions(t *testing.T) {
	path := writeFile(t, "fattura.txt", "TD01")

	_, err := NewExtractor(Config{}, nil).Extract(context.Background(), path)
	assert.Error(t, err)
}

func TestExtractHonoursCancelledContext(t *testing.T) {
	path := writeFile(t, "fattura.pdf", "this is not a pdf document")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExtractor(Config{Method: common.TextMethodPDFToText}, nil).WithRunner(&fakeRunner{}).Extract(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInspectRejectsGarbage(t *testing.T) {
	_, err := Inspect(writeFile(t, "fattura.pdf", "this is not a pdf document"))
	assert.Error(t, err)

	_, err = Inspect(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "fine 10,00\nriga", Normalize("ﬁne\t10,00   \r\nriga"))
	assert.Equal(t, []string{"a", "b"}, SplitLines("a\n\n  \nb\n"))
	assert.Empty(t, Normalize(""))
}
