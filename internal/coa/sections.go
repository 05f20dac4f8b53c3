package coa

import "strings"

// Value is one translated section: either free text or, for table sections,
// ordered rows of cells. Exactly one of Text/Rows is meaningful.
type Value struct {
	Text string     `json:"text,omitempty"`
	Rows [][]string `json:"rows,omitempty"`
}

func (v Value) IsTable() bool { return v.Rows != nil }

func (v Value) Empty() bool { return v.Text == "" && len(v.Rows) == 0 }

// Flatten renders the value as plain text, tables as pipe-delimited rows.
func (v Value) Flatten() string {
	if v.Rows == nil {
		return v.Text
	}
	lines := make([]string, 0, len(v.Rows))
	for _, row := range v.Rows {
		lines = append(lines, strings.Join(row, " | "))
	}
	return strings.Join(lines, "\n")
}

// SectionMap maps every schema key to its translated value. A SectionMap
// produced by the translation layer is always total over Keys().
type SectionMap map[string]Value

// NewSectionMap returns a map with every schema key present and empty.
func NewSectionMap() SectionMap {
	m := make(SectionMap, len(Sections))
	for _, s := range Sections {
		m[s.Key] = Value{}
	}
	return m
}

// FillMissing inserts an empty value for every schema key absent from m.
func (m SectionMap) FillMissing() {
	for _, s := range Sections {
		if _, ok := m[s.Key]; !ok {
			m[s.Key] = Value{}
		}
	}
}

// Preview concatenates non-empty sections in schema order, each prefixed
// with its Russian label.
func (m SectionMap) Preview() string {
	parts := make([]string, 0, len(Sections))
	for _, s := range Sections {
		v := m[s.Key]
		if v.Empty() {
			continue
		}
		parts = append(parts, "["+s.Label+"]\n"+v.Flatten())
	}
	return strings.Join(parts, "\n\n")
}
