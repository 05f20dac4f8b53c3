package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"coatrans/internal/util"
)

// StructuredTextBackend reads the PDF's internal text layer page by page and
// additionally serializes table-like rows as pipe-delimited lines, which is
// where the analytical results of a COA usually live.
type StructuredTextBackend struct{}

func (b *StructuredTextBackend) Name() string   { return "structured-text" }
func (b *StructuredTextBackend) Method() Method { return MethodStructuredText }

func (b *StructuredTextBackend) Extract(ctx context.Context, pdfBytes []byte) (text string, pageCount int, err error) {
	// The pdf library panics on some malformed documents; a panic here is
	// just a failed backend, never a failed extraction call.
	defer func() {
		if r := recover(); r != nil {
			text, pageCount, err = "", 0, fmt.Errorf("structured text parse panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(pdfBytes), int64(len(pdfBytes)))
	if err != nil {
		return "", 0, fmt.Errorf("open pdf: %w", err)
	}

	pageCount = reader.NumPage()
	parts := make([]string, 0, pageCount)
	for i := 1; i <= pageCount; i++ {
		select {
		case <-ctx.Done():
			return "", pageCount, ctx.Err()
		default:
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pageText = util.SanitizeText(pageText)
		if pageText != "" {
			parts = append(parts, fmt.Sprintf("--- Page %d ---\n%s", i, pageText))
		}

		if table := serializeTableRows(page); table != "" {
			parts = append(parts, table)
		}
	}

	return strings.TrimSpace(strings.Join(parts, "\n\n")), pageCount, nil
}

// minTableCells is the number of horizontally separated cells a row needs
// before it is treated as tabular rather than prose.
const minTableCells = 3

func serializeTableRows(page pdf.Page) string {
	rows, err := page.GetTextByRow()
	if err != nil {
		return ""
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		cells := clusterRowCells(row.Content)
		if len(cells) < minTableCells {
			continue
		}
		lines = append(lines, strings.Join(cells, " | "))
	}
	return strings.Join(lines, "\n")
}

// clusterRowCells groups a row's text fragments into cells, splitting where
// the horizontal gap between fragments exceeds twice the font size.
func clusterRowCells(texts []pdf.Text) []string {
	cells := make([]string, 0, 4)
	var cell strings.Builder
	var prevEnd float64
	for i, t := range texts {
		gapLimit := t.FontSize * 2
		if gapLimit <= 0 {
			gapLimit = 12
		}
		if i > 0 && t.X-prevEnd > gapLimit {
			if s := strings.TrimSpace(cell.String()); s != "" {
				cells = append(cells, s)
			}
			cell.Reset()
		}
		cell.WriteString(t.S)
		prevEnd = t.X + t.W
	}
	if s := strings.TrimSpace(cell.String()); s != "" {
		cells = append(cells, s)
	}
	return cells
}
