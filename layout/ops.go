package layout

// Tree operations. Every operation returns a new section list and leaves
// its input untouched; callers persist the result explicitly. Operations
// addressing a node that no longer exists return the input unchanged.

// Clone returns a deep copy of the module. The id is kept; use
// DuplicateSection or AddModule when fresh ids are needed.
func (m Module) Clone() Module {
	out := m
	if m.Tags != nil {
		out.Tags = append([]string(nil), m.Tags...)
	}
	if m.Props != nil {
		out.Props = make(map[string]any, len(m.Props))
		for k, v := range m.Props {
			out.Props[k] = v
		}
	}
	return out
}

// Clone returns a deep copy of the column and its modules.
func (c Column) Clone() Column {
	out := c
	out.Modules = make([]Module, len(c.Modules))
	for i, m := range c.Modules {
		out.Modules[i] = m.Clone()
	}
	return out
}

// Clone returns a deep copy of the row and its columns.
func (r Row) Clone() Row {
	out := r
	if r.Settings != nil {
		settings := *r.Settings
		out.Settings = &settings
	}
	out.Columns = make([]Column, len(r.Columns))
	for i, c := range r.Columns {
		out.Columns[i] = c.Clone()
	}
	return out
}

// Clone returns a deep copy of the section and everything below it.
func (s Section) Clone() Section {
	out := s
	out.Rows = make([]Row, len(s.Rows))
	for i, r := range s.Rows {
		out.Rows[i] = r.Clone()
	}
	return out
}

// CloneSections deep-copies a whole section list.
func CloneSections(sections []Section) []Section {
	out := make([]Section, len(sections))
	for i, s := range sections {
		out[i] = s.Clone()
	}
	return out
}

// NewSection builds a section of the given type from its template and
// assigns fresh ids to every node. Header, content and footer start with
// one full-width column; custom starts with two half-width columns.
// Headers are capped at one row and cannot be deleted.
func NewSection(g *Generator, t SectionType) Section {
	s := Section{
		ID:             g.Next("section"),
		Type:           t,
		IsDeletable:    t != SectionHeader,
		IsDuplicatable: true,
	}
	widths := []float64{100}
	switch t {
	case SectionHeader:
		s.Name = "Header"
		s.MaxRows = 1
	case SectionContent:
		s.Name = "Content"
	case SectionFooter:
		s.Name = "Footer"
	default:
		s.Name = "Custom Section"
		s.Type = SectionCustom
		widths = []float64{50, 50}
	}
	s.Rows = []Row{newRow(g, widths)}
	return s
}

func newRow(g *Generator, widths []float64) Row {
	row := Row{ID: g.Next("row"), Columns: make([]Column, len(widths))}
	for i, w := range widths {
		row.Columns[i] = Column{ID: g.Next("column"), Width: w, Modules: []Module{}}
	}
	return row
}

// DefaultSections returns the empty-page starting layout: header, content
// and footer, each with a single full-width column.
func DefaultSections(g *Generator) []Section {
	return []Section{
		NewSection(g, SectionHeader),
		NewSection(g, SectionContent),
		NewSection(g, SectionFooter),
	}
}

// AddSection appends a new section of the given type and returns both the
// new list and the created section, so the caller can select it in the UI.
func AddSection(sections []Section, g *Generator, t SectionType) ([]Section, Section) {
	out := CloneSections(sections)
	s := NewSection(g, t)
	return append(out, s), s
}

// DuplicateSection deep-clones the addressed section with fresh ids for
// every cloned node, appends " Copy" to its name, and inserts the clone
// immediately after the original. Unknown ids and non-duplicatable
// sections are a no-op.
func DuplicateSection(sections []Section, g *Generator, sectionID string) []Section {
	idx := sectionIndex(sections, sectionID)
	if idx < 0 || !sections[idx].IsDuplicatable {
		return sections
	}
	out := CloneSections(sections)
	clone := out[idx].Clone()
	reassignIDs(g, &clone)
	clone.Name += " Copy"
	out = append(out, Section{})
	copy(out[idx+2:], out[idx+1:])
	out[idx+1] = clone
	return out
}

// reassignIDs gives the section and every descendant a fresh id.
func reassignIDs(g *Generator, s *Section) {
	s.ID = g.Next("section")
	for i := range s.Rows {
		s.Rows[i].ID = g.Next("row")
		for j := range s.Rows[i].Columns {
			s.Rows[i].Columns[j].ID = g.Next("column")
			for k := range s.Rows[i].Columns[j].Modules {
				s.Rows[i].Columns[j].Modules[k].ID = g.Next("module")
			}
		}
	}
}

// RemoveSection deletes the addressed section. Sections marked
// non-deletable (headers) and unknown ids are a no-op.
func RemoveSection(sections []Section, sectionID string) []Section {
	idx := sectionIndex(sections, sectionID)
	if idx < 0 || !sections[idx].IsDeletable {
		return sections
	}
	out := CloneSections(sections)
	return append(out[:idx], out[idx+1:]...)
}

// AddRow appends a single full-width row to the addressed section. The
// section's MaxRows cap is enforced; at the cap this is a no-op.
func AddRow(sections []Section, g *Generator, sectionID string) []Section {
	idx := sectionIndex(sections, sectionID)
	if idx < 0 {
		return sections
	}
	s := sections[idx]
	if s.MaxRows > 0 && len(s.Rows) >= s.MaxRows {
		return sections
	}
	out := CloneSections(sections)
	out[idx].Rows = append(out[idx].Rows, newRow(g, []float64{100}))
	return out
}

// RemoveRow deletes the row with the given id from whichever section
// contains it.
func RemoveRow(sections []Section, rowID string) []Section {
	for si, s := range sections {
		for ri, r := range s.Rows {
			if r.ID != rowID {
				continue
			}
			out := CloneSections(sections)
			out[si].Rows = append(out[si].Rows[:ri], out[si].Rows[ri+1:]...)
			return out
		}
	}
	return sections
}

// AddModule appends a module to the addressed column, assigning it a fresh
// id if it has none. An unresolvable (section, row, column) triple is a
// no-op.
func AddModule(sections []Section, g *Generator, sectionID, rowID, columnID string, m Module) []Section {
	si, ri, ci := columnPath(sections, sectionID, rowID, columnID)
	if si < 0 {
		return sections
	}
	out := CloneSections(sections)
	placed := m.Clone()
	if placed.ID == "" {
		placed.ID = g.Next("module")
	}
	col := &out[si].Rows[ri].Columns[ci]
	col.Modules = append(col.Modules, placed)
	return out
}

// RemoveModule deletes the first module matching moduleID from whichever
// column contains it.
func RemoveModule(sections []Section, moduleID string) []Section {
	for si, s := range sections {
		for ri, r := range s.Rows {
			for ci, c := range r.Columns {
				for mi, m := range c.Modules {
					if m.ID != moduleID {
						continue
					}
					out := CloneSections(sections)
					col := &out[si].Rows[ri].Columns[ci]
					col.Modules = append(col.Modules[:mi], col.Modules[mi+1:]...)
					return out
				}
			}
		}
	}
	return sections
}

// ReorderSections moves the section at from to index to, shifting the
// sections in between. Equal or out-of-range indices are a no-op.
func ReorderSections(sections []Section, from, to int) []Section {
	if from == to || from < 0 || to < 0 || from >= len(sections) || to >= len(sections) {
		return sections
	}
	out := CloneSections(sections)
	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out, Section{})
	copy(out[to+1:], out[to:])
	out[to] = moved
	return out
}

// NormalizeWidths rescales the addressed row's column widths to sum to
// 100. Width sums are otherwise advisory; this is only applied when the
// editing surface asks for it explicitly.
func NormalizeWidths(sections []Section, sectionID, rowID string) []Section {
	for si, s := range sections {
		if s.ID != sectionID {
			continue
		}
		for ri, r := range s.Rows {
			if r.ID != rowID {
				continue
			}
			var sum float64
			for _, c := range r.Columns {
				sum += c.Width
			}
			if sum == 0 || len(r.Columns) == 0 {
				return sections
			}
			out := CloneSections(sections)
			cols := out[si].Rows[ri].Columns
			for i := range cols {
				cols[i].Width = cols[i].Width / sum * 100
			}
			return out
		}
	}
	return sections
}

func sectionIndex(sections []Section, id string) int {
	for i, s := range sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// columnPath resolves a (section, row, column) triple to indices, or
// (-1, -1, -1) when any link is missing.
func columnPath(sections []Section, sectionID, rowID, columnID string) (int, int, int) {
	si := sectionIndex(sections, sectionID)
	if si < 0 {
		return -1, -1, -1
	}
	for ri, r := range sections[si].Rows {
		if r.ID != rowID {
			continue
		}
		for ci, c := range r.Columns {
			if c.ID == columnID {
				return si, ri, ci
			}
		}
	}
	return -1, -1, -1
}
