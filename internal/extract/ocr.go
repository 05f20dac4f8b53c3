package extract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os/exec"
	"strings"

	log "github.com/sirupsen/logrus"

	"coatrans/internal/util"
)

// ocrMinAlnum is the per-page quality gate: recognized text with fewer
// alphanumeric characters than this is treated as noise and dropped.
const ocrMinAlnum = 10

// Recognizer runs a text-recognition pass over one page image.
type Recognizer interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
	Available() bool
}

// TesseractRecognizer shells out to the tesseract binary, feeding the page
// image over stdin. PSM 6 assumes a single uniform block of text, which fits
// the form-like layout of COA documents; OEM 3 selects the default LSTM
// engine.
type TesseractRecognizer struct {
	Path     string
	Language string
}

func NewTesseractRecognizer(path, lang string) *TesseractRecognizer {
	if path == "" {
		path = "tesseract"
	}
	if lang == "" {
		lang = "eng"
	}
	return &TesseractRecognizer{Path: path, Language: lang}
}

func (t *TesseractRecognizer) Available() bool {
	_, err := exec.LookPath(t.Path)
	return err == nil
}

func (t *TesseractRecognizer) Recognize(ctx context.Context, img image.Image) (string, error) {
	var in bytes.Buffer
	if err := png.Encode(&in, img); err != nil {
		return "", fmt.Errorf("encode page image: %w", err)
	}

	cmd := exec.CommandContext(ctx, t.Path, "-", "stdout",
		"-l", t.Language,
		"--psm", "6",
		"--oem", "3")
	cmd.Stdin = &in

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("tesseract failed: %w: %s", err, msg)
		}
		return "", fmt.Errorf("tesseract failed: %w", err)
	}
	return stdout.String(), nil
}

// OCRBackend rasterizes every page at the configured DPI and recognizes
// them one at a time. With Preprocess set, each page goes through the image
// preprocessing pipeline first; the raw variant exists because thresholding
// can destroy information on scans that are already clean.
type OCRBackend struct {
	Raster     Rasterizer
	Recognizer Recognizer
	Preprocess bool
	DPI        int
}

func (b *OCRBackend) Name() string {
	if b.Preprocess {
		return "ocr"
	}
	return "ocr-no-preprocess"
}

func (b *OCRBackend) Method() Method {
	if b.Preprocess {
		return MethodOCR
	}
	return MethodOCRRaw
}

func (b *OCRBackend) Extract(ctx context.Context, pdfBytes []byte) (string, int, error) {
	dpi := b.DPI
	if dpi <= 0 {
		dpi = 300
	}
	images, err := b.Raster.Rasterize(ctx, pdfBytes, dpi)
	if err != nil {
		return "", 0, err
	}
	pageCount := len(images)
	if pageCount == 0 {
		return "", 0, nil
	}

	parts := make([]string, 0, pageCount)
	for i, img := range images {
		if b.Preprocess {
			img = PreprocessForOCR(img)
		}
		pageText, err := b.Recognizer.Recognize(ctx, img)
		if err != nil {
			log.WithField("page", i+1).WithError(err).Warn("ocr failed on page")
			continue
		}
		if n := util.CountAlnum(pageText); n < ocrMinAlnum {
			log.WithField("page", i+1).WithField("alnum_chars", n).Debug("ocr output below quality gate, skipping page")
			continue
		}
		parts = append(parts, fmt.Sprintf("--- Page %d (OCR) ---\n%s", i+1, strings.TrimSpace(pageText)))
	}

	return strings.TrimSpace(strings.Join(parts, "\n\n")), pageCount, nil
}
