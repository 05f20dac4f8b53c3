package coa

import "strings"

// Section describes one fixed field of the translated COA document.
// Order in Sections determines both the JSON schema requested from the
// translation model and the section order of the rendered document.
type Section struct {
	Key         string
	Label       string
	Description string
	IsTable     bool
}

var Sections = []Section{
	{
		Key:         "document_title",
		Label:       "Наименование документа",
		Description: "The document title, e.g. 'Certificate of Analysis'",
	},
	{
		Key:         "company_info",
		Label:       "Информация о компании",
		Description: "Manufacturer/supplier company name, address, logo text, contact info",
	},
	{
		Key:         "product_name",
		Label:       "Наименование продукта",
		Description: "Product name, trade name, INN/generic name",
	},
	{
		Key:   "product_details",
		Label: "Сведения о продукте",
		Description: "CAS number, molecular formula, molecular weight, structural description, " +
			"grade, pharmacopoeia reference, dosage form",
	},
	{
		Key:   "batch_info",
		Label: "Информация о серии",
		Description: "Batch/Lot number, manufacturing date, expiry/retest date, batch size, " +
			"package configuration",
	},
	{
		Key:   "storage_conditions",
		Label: "Условия хранения",
		Description: "Storage conditions, temperature requirements, special precautions " +
			"(protect from light, moisture, etc.)",
	},
	{
		Key:   "test_results",
		Label: "Результаты испытаний",
		Description: "The main analytical results table with columns: Test/Parameter, " +
			"Method, Acceptance Criteria/Specification, Result. " +
			"This is typically the largest section of a COA. " +
			"Include ALL tests: appearance, identification, assay, purity, " +
			"impurities, water content, residual solvents, heavy metals, " +
			"dissolution, microbial limits, endotoxins, etc. " +
			"Return this as a list of rows, each row being a list of cell values.",
		IsTable: true,
	},
	{
		Key:   "conclusion",
		Label: "Заключение",
		Description: "Overall conclusion/disposition statement, e.g. 'The product complies " +
			"with the specification', release decision",
	},
	{
		Key:   "signatures",
		Label: "Подписи",
		Description: "Authorized signatory names, titles, QC/QA approval, dates of " +
			"approval/release",
	},
	{
		Key:   "notes",
		Label: "Примечания",
		Description: "Any additional notes, footnotes, legends, abbreviation explanations, " +
			"or supplementary information",
	},
}

// FallbackKey receives the whole plain translation when structured output
// cannot be parsed.
const FallbackKey = "notes"

func Keys() []string {
	keys := make([]string, 0, len(Sections))
	for _, s := range Sections {
		keys = append(keys, s.Key)
	}
	return keys
}

func LabelFor(key string) string {
	for _, s := range Sections {
		if s.Key == key {
			return s.Label
		}
	}
	return key
}

func IsTableKey(key string) bool {
	for _, s := range Sections {
		if s.Key == key {
			return s.IsTable
		}
	}
	return false
}

// SectionDescriptionsForPrompt lists every section with its type hint so the
// model knows exactly what belongs in each field.
func SectionDescriptionsForPrompt() string {
	var b strings.Builder
	for _, s := range Sections {
		typeHint := "TEXT (string)"
		if s.IsTable {
			typeHint = "TABLE (list of rows)"
		}
		b.WriteString("  \"" + s.Key + "\" (" + s.Label + ") [" + typeHint + "]: " + s.Description + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// JSONKeyTemplate renders the skeleton JSON object included in the structured
// system prompt.
func JSONKeyTemplate() string {
	lines := make([]string, 0, len(Sections))
	for _, s := range Sections {
		lines = append(lines, "  \""+s.Key+"\": \"...\"")
	}
	return strings.Join(lines, ",\n")
}
