package render

import (
	"strings"
	"time"

	"coatrans/internal/coa"
)

// Meta is the provenance block stamped onto every rendered document.
type Meta struct {
	OriginalFilename string
	ExtractionMethod string
	ModelUsed        string
	TranslatedAt     time.Time
}

// Renderer turns a finished translation into downloadable bytes. The section
// map may be nil for plain-mode runs; FallbackText then carries the whole
// translation.
type Renderer interface {
	ContentType() string
	FileExtension() string
	Render(sections coa.SectionMap, fallbackText string, meta Meta) ([]byte, error)
}

const documentTitle = "ПЕРЕВОД СЕРТИФИКАТА АНАЛИЗА"

const disclaimer = "Настоящий документ является автоматизированным переводом и предоставляется " +
	"исключительно в справочных целях. Перед использованием в регуляторных или " +
	"производственных целях перевод должен быть проверен квалифицированным специалистом. " +
	"Юридическую силу имеет только оригинал документа."

// TextRenderer writes a fixed-layout UTF-8 text document: title, provenance
// header, sections in schema order, disclaimer footer.
type TextRenderer struct{}

func (TextRenderer) ContentType() string   { return "text/plain; charset=utf-8" }
func (TextRenderer) FileExtension() string { return ".txt" }

func (TextRenderer) Render(sections coa.SectionMap, fallbackText string, meta Meta) ([]byte, error) {
	var b strings.Builder

	b.WriteString(documentTitle + "\n")
	b.WriteString(strings.Repeat("=", len([]rune(documentTitle))) + "\n\n")

	writeMetaLine(&b, "Исходный файл", meta.OriginalFilename)
	writeMetaLine(&b, "Метод извлечения текста", meta.ExtractionMethod)
	writeMetaLine(&b, "Модель перевода", meta.ModelUsed)
	if !meta.TranslatedAt.IsZero() {
		writeMetaLine(&b, "Дата перевода", meta.TranslatedAt.Format("02.01.2006 15:04 MST"))
	}
	b.WriteString("\n")

	if sections != nil {
		for _, s := range coa.Sections {
			v := sections[s.Key]
			if v.Empty() {
				continue
			}
			b.WriteString(s.Label + "\n")
			b.WriteString(strings.Repeat("-", len([]rune(s.Label))) + "\n")
			if v.IsTable() {
				b.WriteString(formatTable(v.Rows))
			} else {
				b.WriteString(v.Text)
			}
			b.WriteString("\n\n")
		}
	} else {
		b.WriteString(strings.TrimSpace(fallbackText))
		b.WriteString("\n\n")
	}

	b.WriteString("---\n")
	b.WriteString(disclaimer + "\n")
	return []byte(b.String()), nil
}

func writeMetaLine(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	b.WriteString(label + ": " + value + "\n")
}

// formatTable pads every column to its widest cell so the rows line up in a
// monospace viewer.
func formatTable(rows [][]string) string {
	widths := make([]int, 0)
	for _, row := range rows {
		for i, cell := range row {
			w := len([]rune(cell))
			if i >= len(widths) {
				widths = append(widths, w)
			} else if w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			pad := widths[i] - len([]rune(cell))
			cells[i] = cell + strings.Repeat(" ", pad)
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, " | "), " "))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
