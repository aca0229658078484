package layout

import (
	"reflect"
	"testing"
)

// collectIDs returns every node id in the tree, in document order.
func collectIDs(sections []Section) []string {
	var ids []string
	for _, s := range sections {
		ids = append(ids, s.ID)
		for _, r := range s.Rows {
			ids = append(ids, r.ID)
			for _, c := range r.Columns {
				ids = append(ids, c.ID)
				for _, m := range c.Modules {
					ids = append(ids, m.ID)
				}
			}
		}
	}
	return ids
}

func assertUniqueIDs(t *testing.T, sections []Section) {
	t.Helper()
	seen := make(map[string]bool)
	for _, id := range collectIDs(sections) {
		if id == "" {
			t.Error("empty node id")
		}
		if seen[id] {
			t.Errorf("duplicate node id %q", id)
		}
		seen[id] = true
	}
}

func TestDefaultSections(t *testing.T) {
	g := NewGenerator()
	sections := DefaultSections(g)

	if len(sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(sections))
	}
	wantTypes := []SectionType{SectionHeader, SectionContent, SectionFooter}
	for i, s := range sections {
		if s.Type != wantTypes[i] {
			t.Errorf("section %d type = %q, want %q", i, s.Type, wantTypes[i])
		}
		if len(s.Rows) != 1 {
			t.Fatalf("section %d has %d rows, want 1", i, len(s.Rows))
		}
		if len(s.Rows[0].Columns) != 1 {
			t.Fatalf("section %d has %d columns, want 1", i, len(s.Rows[0].Columns))
		}
		if w := s.Rows[0].Columns[0].Width; w != 100 {
			t.Errorf("section %d column width = %v, want 100", i, w)
		}
	}
	if sections[0].IsDeletable {
		t.Error("header should not be deletable")
	}
	if sections[0].MaxRows != 1 {
		t.Errorf("header MaxRows = %d, want 1", sections[0].MaxRows)
	}
	if sections[1].MaxRows != 0 {
		t.Errorf("content MaxRows = %d, want 0", sections[1].MaxRows)
	}
	assertUniqueIDs(t, sections)
}

func TestAddCustomSection(t *testing.T) {
	g := NewGenerator()
	sections := DefaultSections(g)

	out, created := AddSection(sections, g, SectionCustom)

	if len(out) != 4 {
		t.Fatalf("got %d sections, want 4", len(out))
	}
	if out[3].ID != created.ID {
		t.Errorf("new section not appended last")
	}
	if len(created.Rows) != 1 {
		t.Fatalf("custom section has %d rows, want 1", len(created.Rows))
	}
	cols := created.Rows[0].Columns
	if len(cols) != 2 {
		t.Fatalf("custom section has %d columns, want 2", len(cols))
	}
	for i, c := range cols {
		if c.Width != 50 {
			t.Errorf("column %d width = %v, want 50", i, c.Width)
		}
	}
	if !created.IsDeletable || !created.IsDuplicatable {
		t.Error("custom section should be deletable and duplicatable")
	}
	assertUniqueIDs(t, out)

	// input untouched
	if len(sections) != 3 {
		t.Errorf("input mutated: now %d sections", len(sections))
	}
}

func TestDuplicateSection(t *testing.T) {
	g := NewGenerator()
	sections := DefaultSections(g)
	target := sections[1]

	out := DuplicateSection(sections, g, target.ID)

	if len(out) != 4 {
		t.Fatalf("got %d sections, want 4", len(out))
	}
	clone := out[2]
	if clone.ID == target.ID {
		t.Error("clone reuses the original section id")
	}
	if clone.Name != target.Name+" Copy" {
		t.Errorf("clone name = %q, want %q", clone.Name, target.Name+" Copy")
	}
	// inserted immediately after the original
	if out[1].ID != target.ID {
		t.Errorf("original moved: index 1 is %q", out[1].ID)
	}
	if out[3].ID != sections[2].ID {
		t.Errorf("footer not shifted to index 3")
	}
	assertUniqueIDs(t, out)
}

func TestDuplicateSectionIndependence(t *testing.T) {
	g := NewGenerator()
	sections := DefaultSections(g)
	content := sections[1]
	col := content.Rows[0].Columns[0]
	sections = AddModule(sections, g, content.ID, content.Rows[0].ID, col.ID, Module{
		Kind: KindText, Name: "Text", Props: map[string]any{"text": "original"},
	})

	out := DuplicateSection(sections, g, content.ID)

	// mutate the clone's module props; the original must not change
	out[2].Rows[0].Columns[0].Modules[0].Props["text"] = "changed"
	got := out[1].Rows[0].Columns[0].Modules[0].Props["text"]
	if got != "original" {
		t.Errorf("original module props mutated through clone: %v", got)
	}
}

func TestDuplicateSectionUnknownID(t *testing.T) {
	g := NewGenerator()
	sections := DefaultSections(g)
	out := DuplicateSection(sections, g, "section-9999")
	if !reflect.DeepEqual(out, sections) {
		t.Error("duplicate of unknown section should be a no-op")
	}
}

func TestRemoveSection(t *testing.T) {
	g := NewGenerator()
	sections := DefaultSections(g)

	out := RemoveSection(sections, sections[1].ID)
	if len(out) != 2 {
		t.Fatalf("got %d sections, want 2", len(out))
	}

	// header is not deletable
	out = RemoveSection(sections, sections[0].ID)
	if len(out) != 3 {
		t.Error("header section was deleted")
	}
}

func TestAddRowRespectsMaxRows(t *testing.T) {
	g := NewGenerator()
	sections := DefaultSections(g)
	header, content := sections[0], sections[1]

	out := AddRow(sections, g, header.ID)
	if got := len(out[0].Rows); got != 1 {
		t.Errorf("header rows = %d, want 1 (maxRows cap)", got)
	}

	out = AddRow(sections, g, content.ID)
	if got := len(out[1].Rows); got != 2 {
		t.Errorf("content rows = %d, want 2", got)
	}
	assertUniqueIDs(t, out)
}

func TestAddModuleUnresolvableIsNoop(t *testing.T) {
	g := NewGenerator()
	sections := DefaultSections(g)
	content := sections[1]
	mod := Module{Kind: KindText, Name: "Text"}

	tests := []struct {
		name                     string
		section, row, column     string
	}{
		{"missing section", "missing-section", content.Rows[0].ID, content.Rows[0].Columns[0].ID},
		{"missing row", content.ID, "row-9999", content.Rows[0].Columns[0].ID},
		{"missing column", content.ID, content.Rows[0].ID, "column-9999"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := AddModule(sections, g, tt.section, tt.row, tt.column, mod)
			if !reflect.DeepEqual(out, sections) {
				t.Error("unresolvable add should leave the tree deep-equal to input")
			}
		})
	}
}

func TestAddAndRemoveModule(t *testing.T) {
	g := NewGenerator()
	sections := DefaultSections(g)
	content := sections[1]
	rowID := content.Rows[0].ID
	colID := content.Rows[0].Columns[0].ID

	out := AddModule(sections, g, content.ID, rowID, colID, Module{Kind: KindText, Name: "Text"})
	mods := out[1].Rows[0].Columns[0].Modules
	if len(mods) != 1 {
		t.Fatalf("got %d modules, want 1", len(mods))
	}
	if mods[0].ID == "" {
		t.Error("placed module has no id")
	}
	assertUniqueIDs(t, out)

	out = RemoveModule(out, mods[0].ID)
	if got := len(out[1].Rows[0].Columns[0].Modules); got != 0 {
		t.Errorf("got %d modules after remove, want 0", got)
	}

	// removing an unknown module is a no-op
	out2 := RemoveModule(out, "module-9999")
	if !reflect.DeepEqual(out2, out) {
		t.Error("remove of unknown module should be a no-op")
	}
}

func TestReorderSections(t *testing.T) {
	g := NewGenerator()
	sections := DefaultSections(g)

	out := ReorderSections(sections, 0, 2)
	want := []string{sections[1].ID, sections[2].ID, sections[0].ID}
	for i, s := range out {
		if s.ID != want[i] {
			t.Errorf("section %d = %q, want %q", i, s.ID, want[i])
		}
	}

	out = ReorderSections(sections, 2, 0)
	want = []string{sections[2].ID, sections[0].ID, sections[1].ID}
	for i, s := range out {
		if s.ID != want[i] {
			t.Errorf("section %d = %q, want %q", i, s.ID, want[i])
		}
	}
}

func TestReorderSectionsNoop(t *testing.T) {
	g := NewGenerator()
	sections := DefaultSections(g)

	tests := []struct {
		name     string
		from, to int
	}{
		{"same index", 1, 1},
		{"negative from", -1, 1},
		{"from out of range", 3, 1},
		{"to out of range", 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ReorderSections(sections, tt.from, tt.to)
			if !reflect.DeepEqual(out, sections) {
				t.Error("reorder should be a no-op deep-equal to input")
			}
		})
	}
}

func TestIDUniquenessAcrossOperations(t *testing.T) {
	g := NewGenerator()
	sections := DefaultSections(g)

	var custom Section
	sections, custom = AddSection(sections, g, SectionCustom)
	sections = DuplicateSection(sections, g, custom.ID)
	sections = AddModule(sections, g, custom.ID, custom.Rows[0].ID, custom.Rows[0].Columns[0].ID,
		Module{Kind: KindBanner, Name: "Banner"})
	sections = DuplicateSection(sections, g, custom.ID)
	sections = AddRow(sections, g, custom.ID)
	sections, _ = AddSection(sections, g, SectionContent)

	assertUniqueIDs(t, sections)
}

func TestNormalizeWidths(t *testing.T) {
	g := NewGenerator()
	sections := DefaultSections(g)
	content := sections[1]

	// widen the single column off-scale, then normalize back to 100
	sections[1].Rows[0].Columns[0].Width = 40
	out := NormalizeWidths(sections, content.ID, content.Rows[0].ID)
	if w := out[1].Rows[0].Columns[0].Width; w != 100 {
		t.Errorf("normalized width = %v, want 100", w)
	}
	// input untouched
	if w := sections[1].Rows[0].Columns[0].Width; w != 40 {
		t.Errorf("input mutated: width = %v", w)
	}
}
