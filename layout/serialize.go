package layout

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Version is the envelope version written by Serialize. Documents without
// an envelope (bare section arrays) predate versioning and parse as "1.0".
const Version = "2.0"

// Meta is the envelope metadata persisted alongside the section tree.
type Meta struct {
	IsHomeLayout bool      `json:"isHomeLayout"`
	IsCustomPage bool      `json:"isCustomPage,omitempty"`
	PageType     string    `json:"pageType,omitempty"`
	Version      string    `json:"version"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Document is the unit of persistence: one page's section tree plus meta.
// It is stored as a JSON string in the page record's layout_json field.
type Document struct {
	Sections []Section `json:"sections"`
	Meta     Meta      `json:"meta"`
}

// Serialize encodes the document into its persisted string form, stamping
// the current envelope version and the UpdatedAt timestamp.
func Serialize(doc Document) (string, error) {
	doc.Meta.Version = Version
	doc.Meta.UpdatedAt = time.Now().UTC()
	if doc.Meta.CreatedAt.IsZero() {
		doc.Meta.CreatedAt = doc.Meta.UpdatedAt
	}
	if doc.Sections == nil {
		doc.Sections = []Section{}
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("serialize layout: %w", err)
	}
	return string(b), nil
}

// Parse returns the normalized section list from a persisted layout
// string. On error the section list is empty; callers log the error as a
// warning and render the empty list rather than failing the page.
func Parse(raw string) ([]Section, error) {
	doc, err := ParseDocument(raw)
	if err != nil {
		return nil, err
	}
	return doc.Sections, nil
}

// ParseDocument decodes any of the three historical layout shapes:
//
//	(a) a bare JSON array of sections (oldest documents),
//	(b) the versioned {"sections": [...], "meta": {...}} envelope,
//	(c) either of the above double-encoded as a JSON string.
//
// The result is normalized (see Normalize). An empty input is a valid
// empty document, not an error.
func ParseDocument(raw string) (Document, error) {
	return parseDocument(raw, 0)
}

func parseDocument(raw string, depth int) (Document, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Document{Sections: []Section{}, Meta: Meta{Version: Version}}, nil
	}
	switch raw[0] {
	case '"':
		// Double-encoded: a JSON string containing the real document.
		// Legacy save paths stringified twice; one level is expected,
		// anything deeper is corrupt.
		if depth >= 2 {
			return Document{}, fmt.Errorf("parse layout: string nested more than twice")
		}
		var inner string
		if err := json.Unmarshal([]byte(raw), &inner); err != nil {
			return Document{}, fmt.Errorf("parse layout: unwrap string: %w", err)
		}
		return parseDocument(inner, depth+1)
	case '[':
		var sections []Section
		if err := json.Unmarshal([]byte(raw), &sections); err != nil {
			return Document{}, fmt.Errorf("parse layout: section array: %w", err)
		}
		return Document{Sections: Normalize(sections), Meta: Meta{Version: "1.0"}}, nil
	case '{':
		var doc Document
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return Document{}, fmt.Errorf("parse layout: envelope: %w", err)
		}
		if doc.Meta.Version == "" {
			doc.Meta.Version = "1.0"
		}
		doc.Sections = Normalize(doc.Sections)
		return doc, nil
	default:
		return Document{}, fmt.Errorf("parse layout: unrecognized leading byte %q", raw[0])
	}
}

// Normalize repairs legacy documents in place-of-omission: nil child lists
// become empty, a row styled through the old settings field has it copied
// forward into style, and modules predating the kind field get one derived
// from their category or id prefix.
func Normalize(sections []Section) []Section {
	if sections == nil {
		return []Section{}
	}
	for si := range sections {
		s := &sections[si]
		if s.Type == "" {
			s.Type = SectionContent
		}
		if s.Rows == nil {
			s.Rows = []Row{}
		}
		for ri := range s.Rows {
			r := &s.Rows[ri]
			if r.Settings != nil {
				if r.Style.IsZero() {
					r.Style = *r.Settings
				}
				r.Settings = nil
			}
			if r.Columns == nil {
				r.Columns = []Column{}
			}
			for ci := range r.Columns {
				c := &r.Columns[ci]
				if c.Modules == nil {
					c.Modules = []Module{}
				}
				for mi := range c.Modules {
					normalizeModule(&c.Modules[mi])
				}
			}
		}
	}
	return sections
}

func normalizeModule(m *Module) {
	if m.Kind != "" {
		return
	}
	if k := ModuleKind(m.Category); knownKinds[k] {
		m.Kind = k
		return
	}
	if i := strings.IndexByte(m.ID, '-'); i > 0 {
		if k := ModuleKind(m.ID[:i]); knownKinds[k] {
			m.Kind = k
		}
	}
}
