package layout

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func buildTestSections(t *testing.T) []Section {
	t.Helper()
	g := NewGenerator()
	sections := DefaultSections(g)
	var custom Section
	sections, custom = AddSection(sections, g, SectionCustom)
	sections = AddModule(sections, g, custom.ID, custom.Rows[0].ID, custom.Rows[0].Columns[0].ID, Module{
		Kind:  KindText,
		Name:  "Text",
		Props: map[string]any{"text": "hello **world**"},
	})
	sections[0].Style = Style{BackgroundColor: "#0a0a0a", Padding: "1rem"}
	sections[3].Rows[0].Style = Style{MinHeight: "320px", VerticalAlign: "middle"}
	sections[3].Rows[0].Columns[1].Style = Style{TextAlign: "center"}
	return sections
}

func TestSerializeParseRoundTrip(t *testing.T) {
	sections := buildTestSections(t)

	raw, err := Serialize(Document{Sections: sections, Meta: Meta{IsHomeLayout: true}})
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	doc, err := ParseDocument(raw)
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if doc.Meta.Version != Version {
		t.Errorf("version = %q, want %q", doc.Meta.Version, Version)
	}
	if !doc.Meta.IsHomeLayout {
		t.Error("isHomeLayout not round-tripped")
	}
	if !reflect.DeepEqual(doc.Sections, sections) {
		t.Errorf("sections did not round-trip:\ngot  %+v\nwant %+v", doc.Sections, sections)
	}
}

func TestParseLegacyBareArray(t *testing.T) {
	sections := buildTestSections(t)
	arr, err := json.Marshal(sections)
	if err != nil {
		t.Fatal(err)
	}
	envelope, err := json.Marshal(Document{Sections: sections, Meta: Meta{Version: Version}})
	if err != nil {
		t.Fatal(err)
	}

	fromArray, err := Parse(string(arr))
	if err != nil {
		t.Fatalf("Parse bare array failed: %v", err)
	}
	fromEnvelope, err := Parse(string(envelope))
	if err != nil {
		t.Fatalf("Parse envelope failed: %v", err)
	}
	if !reflect.DeepEqual(fromArray, fromEnvelope) {
		t.Error("bare array and wrapped form should parse to the same section list")
	}
}

func TestParseDoubleEncoded(t *testing.T) {
	sections := buildTestSections(t)
	raw, err := Serialize(Document{Sections: sections})
	if err != nil {
		t.Fatal(err)
	}
	double, err := json.Marshal(raw)
	if err != nil {
		t.Fatal(err)
	}

	got, err := Parse(string(double))
	if err != nil {
		t.Fatalf("Parse double-encoded failed: %v", err)
	}
	if !reflect.DeepEqual(got, sections) {
		t.Error("double-encoded document should parse to the same sections")
	}
}

func TestParseBadInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"garbage", "not json at all"},
		{"truncated envelope", `{"sections": [`},
		{"truncated array", `[{"id":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sections, err := Parse(tt.raw)
			if err == nil {
				t.Fatal("expected an error")
			}
			if len(sections) != 0 {
				t.Errorf("bad input should yield an empty section list, got %d", len(sections))
			}
		})
	}
}

func TestParseTripleEncodedFails(t *testing.T) {
	raw, err := Serialize(Document{})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		b, err := json.Marshal(raw)
		if err != nil {
			t.Fatal(err)
		}
		raw = string(b)
	}
	if _, err := Parse(raw); err == nil {
		t.Fatal("triple-encoded document should be rejected, not unwrapped forever")
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n"} {
		doc, err := ParseDocument(raw)
		if err != nil {
			t.Fatalf("ParseDocument(%q) failed: %v", raw, err)
		}
		if len(doc.Sections) != 0 {
			t.Errorf("ParseDocument(%q) returned %d sections", raw, len(doc.Sections))
		}
	}
}

func TestNormalizeSettingsMigration(t *testing.T) {
	raw := `[{
		"id": "section-1001",
		"name": "Content",
		"type": "content",
		"rows": [{
			"id": "row-1002",
			"settings": {"backgroundColor": "#fff"},
			"columns": [{"id": "column-1003", "width": 100, "modules": []}]
		}]
	}]`
	sections, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	row := sections[0].Rows[0]
	if row.Style.BackgroundColor != "#fff" {
		t.Errorf("settings not migrated: backgroundColor = %q", row.Style.BackgroundColor)
	}
	if row.Settings != nil {
		t.Error("settings should be cleared after migration")
	}
}

func TestNormalizeSettingsDoesNotClobberStyle(t *testing.T) {
	raw := `[{
		"id": "section-1001",
		"rows": [{
			"id": "row-1002",
			"style": {"backgroundColor": "#111"},
			"settings": {"backgroundColor": "#fff"},
			"columns": []
		}]
	}]`
	sections, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := sections[0].Rows[0].Style.BackgroundColor; got != "#111" {
		t.Errorf("populated style was clobbered by settings: %q", got)
	}
}

func TestNormalizeDerivesModuleKind(t *testing.T) {
	tests := []struct {
		name string
		mod  string
		want ModuleKind
	}{
		{"from known category", `{"id": "m1", "name": "Text", "category": "text"}`, KindText},
		{"from id prefix", `{"id": "banner-1042", "name": "Banner"}`, KindBanner},
		{"unknown stays empty", `{"id": "m2", "name": "Mystery", "category": "widgets"}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := `[{"id":"s1","rows":[{"id":"r1","columns":[{"id":"c1","width":100,"modules":[` + tt.mod + `]}]}]}]`
			sections, err := Parse(raw)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			got := sections[0].Rows[0].Columns[0].Modules[0].Kind
			if got != tt.want {
				t.Errorf("kind = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSerializeEmitsEnvelope(t *testing.T) {
	raw, err := Serialize(Document{})
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if !strings.Contains(raw, `"sections":[]`) {
		t.Errorf("empty document should serialize an empty sections array: %s", raw)
	}
	if !strings.Contains(raw, `"version":"`+Version+`"`) {
		t.Errorf("envelope missing version: %s", raw)
	}
}
