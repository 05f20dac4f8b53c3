package coa

import (
	"strings"
	"testing"
)

func TestSchemaKeysUniqueAndOrdered(t *testing.T) {
	keys := Keys()
	if len(keys) != len(Sections) {
		t.Fatalf("expected %d keys, got %d", len(Sections), len(keys))
	}
	seen := map[string]struct{}{}
	for _, k := range keys {
		if _, dup := seen[k]; dup {
			t.Fatalf("duplicate schema key %q", k)
		}
		seen[k] = struct{}{}
	}
	if keys[0] != "document_title" || keys[len(keys)-1] != "notes" {
		t.Fatalf("schema order changed: %v", keys)
	}
}

func TestFallbackKeyExists(t *testing.T) {
	if _, ok := NewSectionMap()[FallbackKey]; !ok {
		t.Fatalf("fallback key %q missing from schema", FallbackKey)
	}
}

func TestJSONKeyTemplateCoversAllKeys(t *testing.T) {
	tpl := JSONKeyTemplate()
	for _, k := range Keys() {
		if !strings.Contains(tpl, "\""+k+"\"") {
			t.Fatalf("template missing key %q", k)
		}
	}
}

func TestSectionMapFillMissing(t *testing.T) {
	m := SectionMap{"product_name": {Text: "Парацетамол"}}
	m.FillMissing()
	if len(m) != len(Sections) {
		t.Fatalf("expected total map, got %d keys", len(m))
	}
	if m["product_name"].Text != "Парацетамол" {
		t.Fatalf("existing value overwritten")
	}
}

func TestSectionMapPreviewOrderAndTables(t *testing.T) {
	m := NewSectionMap()
	m["test_results"] = Value{Rows: [][]string{
		{"Испытание", "Метод", "Критерии приемлемости", "Результат"},
		{"Внешний вид", "Визуальный", "Белый порошок", "Соответствует"},
	}}
	m["document_title"] = Value{Text: "Сертификат анализа"}

	out := m.Preview()
	titleIdx := strings.Index(out, "[Наименование документа]")
	tableIdx := strings.Index(out, "[Результаты испытаний]")
	if titleIdx < 0 || tableIdx < 0 || titleIdx > tableIdx {
		t.Fatalf("preview order wrong:\n%s", out)
	}
	if !strings.Contains(out, "Внешний вид | Визуальный | Белый порошок | Соответствует") {
		t.Fatalf("table rows not pipe-delimited:\n%s", out)
	}
}

func TestGlossaryPromptBlock(t *testing.T) {
	block := GlossaryPromptBlock()
	if !strings.Contains(block, "certificate of analysis → сертификат анализа") {
		t.Fatalf("glossary block missing core term:\n%s", block)
	}
	if GlossarySize() < 50 {
		t.Fatalf("glossary unexpectedly small: %d", GlossarySize())
	}
}
