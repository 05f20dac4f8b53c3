package extract

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"coatrans/internal/config"
	"coatrans/internal/util"
)

// Backend is one extraction strategy. Empty text with a nil error means the
// document parsed but yielded nothing extractable.
type Backend interface {
	Name() string
	Method() Method
	Extract(ctx context.Context, pdfBytes []byte) (text string, pageCount int, err error)
}

type strategy struct {
	backend  Backend
	minChars int
}

// Coordinator tries extraction strategies in fixed priority order and
// returns the first result clearing its minimum-length gate. Text-layer
// parsing is near-instant and lossless when it works, so it goes first; OCR
// is slow and lossy and only pays off for scanned input. The strategy list
// is fixed at construction: unavailable backends are filtered out once, not
// branched on per call.
type Coordinator struct {
	strategies []strategy
}

// NewCoordinator probes available capabilities and builds the default
// strategy order: structured text, general text, preprocessed OCR, raw OCR.
func NewCoordinator(cfg config.Config) *Coordinator {
	strategies := []strategy{
		{&StructuredTextBackend{}, cfg.TextGateChars},
		{&GeneralTextBackend{}, cfg.TextGateChars},
	}

	rec := NewTesseractRecognizer(cfg.TesseractPath, cfg.OCRLanguage)
	if rec.Available() {
		raster := FitzRasterizer{}
		strategies = append(strategies,
			strategy{&OCRBackend{Raster: raster, Recognizer: rec, Preprocess: true, DPI: cfg.OCRDPI}, cfg.OCRGateChars},
			strategy{&OCRBackend{Raster: raster, Recognizer: rec, Preprocess: false, DPI: cfg.OCRDPI}, cfg.OCRGateChars},
		)
	} else {
		log.WithField("path", cfg.TesseractPath).Warn("tesseract not found, OCR strategies disabled")
	}

	return &Coordinator{strategies: strategies}
}

// NewCoordinatorWithStrategies builds a coordinator over an explicit backend
// list, preserving each backend's gate.
func NewCoordinatorWithStrategies(backends []Backend, gates []int) *Coordinator {
	c := &Coordinator{}
	for i, b := range backends {
		c.strategies = append(c.strategies, strategy{b, gates[i]})
	}
	return c
}

// Extract runs the cascade. Backend errors are demoted to log lines: the
// only failure mode visible to callers is Success=false with MethodNone.
func (c *Coordinator) Extract(ctx context.Context, pdfBytes []byte) Result {
	pageCount := ProbePageCount(pdfBytes)

	for _, s := range c.strategies {
		text, pc, err := s.backend.Extract(ctx, pdfBytes)
		if pc > 0 {
			pageCount = pc
		}
		if err != nil {
			log.WithField("backend", s.backend.Name()).WithError(err).Warn("extraction backend failed")
			continue
		}
		text = strings.TrimSpace(text)
		if len(text) <= s.minChars {
			continue
		}
		log.WithField("backend", s.backend.Name()).WithField("pages", pageCount).WithField("chars", len(text)).Info("extraction succeeded")
		log.WithField("preview", util.Snippet(text, 120)).Debug("extracted text")
		return Result{
			Text:      util.SanitizeText(text),
			Method:    s.backend.Method(),
			Success:   true,
			PageCount: pageCount,
		}
	}

	return Result{Text: "", Method: MethodNone, Success: false, PageCount: pageCount}
}
