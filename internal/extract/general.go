package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"

	"coatrans/internal/util"
)

// GeneralTextBackend extracts the text layer through MuPDF. It is an
// independent second parser: some documents the structured backend handles
// poorly come out clean here.
type GeneralTextBackend struct{}

func (b *GeneralTextBackend) Name() string   { return "general-text" }
func (b *GeneralTextBackend) Method() Method { return MethodGeneralText }

func (b *GeneralTextBackend) Extract(ctx context.Context, pdfBytes []byte) (string, int, error) {
	doc, err := fitz.NewFromMemory(pdfBytes)
	if err != nil {
		return "", 0, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	parts := make([]string, 0, pageCount)
	for i := 0; i < pageCount; i++ {
		select {
		case <-ctx.Done():
			return "", pageCount, ctx.Err()
		default:
		}

		pageText, err := doc.Text(i)
		if err != nil {
			continue
		}
		pageText = util.SanitizeText(pageText)
		if pageText != "" {
			parts = append(parts, fmt.Sprintf("--- Page %d ---\n%s", i+1, pageText))
		}
	}

	return strings.TrimSpace(strings.Join(parts, "\n\n")), pageCount, nil
}
