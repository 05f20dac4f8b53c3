package translate

import "coatrans/internal/coa"

// Result is the outcome of one translation run. Sections is non-nil only in
// structured mode, where it is total over the COA schema keys.
type Result struct {
	Success          bool           `json:"success"`
	Error            string         `json:"error,omitempty"`
	ModelUsed        string         `json:"model_used,omitempty"`
	TranslatedText   string         `json:"translated_text,omitempty"`
	Sections         coa.SectionMap `json:"sections,omitempty"`
	ChunksTranslated int            `json:"chunks_translated"`
}

// ProgressFunc reports coarse progress as (current, total) steps. Structured
// mode reports (1,2) before the request and (2,2) after it; plain mode
// reports (i+1, chunks) before each chunk.
type ProgressFunc func(current, total int)

func errorResult(msg string) Result {
	return Result{Success: false, Error: msg}
}
