package extract

import (
	"bytes"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/validate"
)

// ProbePageCount reads the document's cross-reference table to learn the
// true page count without extracting anything. Returns 0 when the bytes do
// not parse as a PDF (malformed, encrypted without password, truncated).
func ProbePageCount(pdfBytes []byte) int {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadContext(bytes.NewReader(pdfBytes), conf)
	if err != nil {
		return 0
	}
	if err := validate.XRefTable(ctx); err != nil {
		return 0
	}
	return ctx.PageCount
}
