package translate

import (
	"coatrans/internal/coa"
)

const translationRules = `You are a professional pharmaceutical translator specializing in Certificates of Analysis (COA).
Translate from English to Russian following these rules:
- Use official Russian pharmaceutical terminology (GOST, State Pharmacopoeia of the Russian Federation)
- Keep all numeric values, units, batch numbers, dates and codes exactly as in the source
- Do not translate trade names, CAS numbers, chemical formulas or pharmacopoeia codes (USP, EP, BP, JP)
- Translate test names and specifications using the glossary below when a term matches
- Preserve the meaning precisely; never add, omit or reinterpret information`

const plainUserPreamble = "Translate the following pharmaceutical COA text from English to Russian. " +
	"Output ONLY the translation, nothing else.\n\n"

const structuredUserPreamble = "Extract and translate the following pharmaceutical COA text from English to Russian. " +
	"Respond with the JSON object only.\n\n"

// PlainSystemPrompt instructs the model to return free-text Russian output.
func PlainSystemPrompt() string {
	return translationRules + "\n\nGlossary (English -> Russian):\n" + coa.GlossaryPromptBlock()
}

// StructuredSystemPrompt additionally pins the response to a fixed JSON
// schema so the output can be placed into the COA section layout.
func StructuredSystemPrompt() string {
	return translationRules + `

Glossary (English -> Russian):
` + coa.GlossaryPromptBlock() + `

Respond with valid JSON only, no markdown, no commentary. Use exactly these keys:
{
` + coa.JSONKeyTemplate() + `
}

Field contents:
` + coa.SectionDescriptionsForPrompt() + `

The "test_results" value must be a JSON array of rows, each row an array of translated cell strings, for example:
  "test_results": [["Показатель", "Метод", "Критерии приемлемости", "Результат"], ["Описание", "Визуальный", "Белый порошок", "Соответствует"]]
If a section is absent from the source document, use an empty string (or an empty array for "test_results").`
}
