package pdftext

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Info is the structural summary of a PDF file.
type Info struct {
	Pages int
}

// Inspect parses the cross-reference table and page tree with relaxed
// validation. Files it rejects cannot be decoded further either.
func Inspect(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(f, conf)
	if err != nil {
		return Info{}, fmt.Errorf("read pdf structure: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return Info{}, fmt.Errorf("count pages: %w", err)
	}
	if ctx.PageCount == 0 {
		return Info{}, fmt.Errorf("pdf has no pages")
	}
	return Info{Pages: ctx.PageCount}, nil
}
