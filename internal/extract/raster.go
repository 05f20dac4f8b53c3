package extract

import (
	"context"
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// Rasterizer turns PDF bytes into one raster image per page.
type Rasterizer interface {
	Rasterize(ctx context.Context, pdfBytes []byte, dpi int) ([]image.Image, error)
}

// FitzRasterizer renders pages through MuPDF at the requested DPI.
type FitzRasterizer struct{}

func (FitzRasterizer) Rasterize(ctx context.Context, pdfBytes []byte, dpi int) ([]image.Image, error) {
	doc, err := fitz.NewFromMemory(pdfBytes)
	if err != nil {
		return nil, fmt.Errorf("open pdf for rasterization: %w", err)
	}
	defer doc.Close()

	n := doc.NumPage()
	images := make([]image.Image, 0, n)
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		img, err := doc.ImageDPI(i, float64(dpi))
		if err != nil {
			return nil, fmt.Errorf("render page %d: %w", i+1, err)
		}
		images = append(images, img)
	}
	return images, nil
}
