package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"coatrans/internal/coa"
	"coatrans/internal/providers"
	"coatrans/internal/util"
)

// TranslateStructured asks for the whole document in one request as a fixed
// JSON object and maps it onto the COA schema. If the model response cannot
// be parsed as JSON, the run degrades to plain mode and the full plain
// translation lands in the fallback section, so the caller always gets a
// usable result when the provider is reachable.
func (t *Translator) TranslateStructured(ctx context.Context, text, model string, progress ProgressFunc) Result {
	if strings.TrimSpace(text) == "" {
		return errorResult(util.ErrEmptyInput.Error())
	}

	if progress != nil {
		progress(1, 2)
	}
	resp, info, err := t.provider.Complete(ctx, providers.CompletionRequest{
		System:      StructuredSystemPrompt(),
		User:        structuredUserPreamble + text,
		Model:       model,
		Temperature: t.temperature,
		MaxTokens:   t.maxOutputTokens,
	})
	if err != nil {
		log.WithField("provider", info.Name).WithError(err).Error("structured translation failed")
		return errorResult(fmt.Sprintf("translation failed: %v", err))
	}
	if progress != nil {
		progress(2, 2)
	}

	// The model occasionally ignores the "no markdown" instruction, so the
	// payload is parsed defensively: fences stripped, then an untyped parse
	// with per-key coercion instead of trusting the shape.
	cleaned := stripCodeFence(resp.Content)
	var raw map[string]any
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		log.WithError(err).Warn("structured response is not valid JSON, falling back to plain translation")
		plain := t.TranslatePlain(ctx, text, model, progress)
		if plain.Success {
			sections := coa.NewSectionMap()
			sections[coa.FallbackKey] = coa.Value{Text: plain.TranslatedText}
			plain.Sections = sections
		}
		return plain
	}

	sections := sectionsFromJSON(raw)
	return Result{
		Success:          true,
		ModelUsed:        model,
		TranslatedText:   sections.Preview(),
		Sections:         sections,
		ChunksTranslated: 1,
	}
}

// stripCodeFence drops every markdown fence line so a response wrapped in
// ```json ... ``` still parses.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "```") {
		return s
	}
	var kept []string
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// sectionsFromJSON coerces an untyped JSON object onto the schema. Unknown
// keys are dropped, missing keys become empty values, and values of an
// unexpected type degrade to their string form rather than failing the run.
func sectionsFromJSON(raw map[string]any) coa.SectionMap {
	m := make(coa.SectionMap, len(coa.Sections))
	for _, key := range coa.Keys() {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		m[key] = coerceValue(key, v)
	}
	m.FillMissing()
	return m
}

func coerceValue(key string, v any) coa.Value {
	if coa.IsTableKey(key) {
		rows, ok := v.([]any)
		if !ok {
			return coa.Value{Text: stringify(v)}
		}
		out := make([][]string, 0, len(rows))
		for _, r := range rows {
			cells, ok := r.([]any)
			if !ok {
				out = append(out, []string{stringify(r)})
				continue
			}
			row := make([]string, 0, len(cells))
			for _, c := range cells {
				row = append(row, stringify(c))
			}
			out = append(out, row)
		}
		return coa.Value{Rows: out}
	}
	if items, ok := v.([]any); ok {
		lines := make([]string, 0, len(items))
		for _, it := range items {
			lines = append(lines, stringify(it))
		}
		return coa.Value{Text: strings.Join(lines, "\n")}
	}
	return coa.Value{Text: stringify(v)}
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprintf("%v", x)
	}
}
