package translate

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"coatrans/internal/config"
	"coatrans/internal/providers"
	"coatrans/internal/util"
)

// Translator drives the completion provider through one of two modes:
// structured (single request, fixed JSON schema) or plain (chunked free
// text). Requests within a run are sequential; there is no retry, a failed
// request fails the whole run.
type Translator struct {
	provider        providers.CompletionProvider
	maxChunkSize    int
	temperature     float64
	maxOutputTokens int
}

func New(p providers.CompletionProvider, cfg config.Config) *Translator {
	return &Translator{
		provider:        p,
		maxChunkSize:    cfg.MaxChunkSize,
		temperature:     cfg.Temperature,
		maxOutputTokens: cfg.MaxOutputTokens,
	}
}

// TranslatePlain translates the text chunk by chunk and reassembles the
// pieces in order. Any chunk failure aborts the run and discards partial
// output: a COA with silently missing chunks is worse than no translation.
func (t *Translator) TranslatePlain(ctx context.Context, text, model string, progress ProgressFunc) Result {
	if strings.TrimSpace(text) == "" {
		return errorResult(util.ErrEmptyInput.Error())
	}

	chunks := ChunkText(text, t.maxChunkSize)
	system := PlainSystemPrompt()
	parts := make([]string, 0, len(chunks))

	for i, chunk := range chunks {
		if progress != nil {
			progress(i+1, len(chunks))
		}
		resp, info, err := t.provider.Complete(ctx, providers.CompletionRequest{
			System:      system,
			User:        plainUserPreamble + chunk,
			Model:       model,
			Temperature: t.temperature,
		})
		if err != nil {
			log.WithField("chunk", i+1).WithField("provider", info.Name).WithError(err).Error("chunk translation failed")
			return errorResult(fmt.Sprintf("translation failed on chunk %d/%d: %v", i+1, len(chunks), err))
		}
		if out := strings.TrimSpace(resp.Content); out != "" {
			parts = append(parts, out)
		}
	}

	return Result{
		Success:          true,
		ModelUsed:        model,
		TranslatedText:   strings.Join(parts, "\n\n"),
		ChunksTranslated: len(chunks),
	}
}
