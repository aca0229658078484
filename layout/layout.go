// Package layout implements the page-builder document model: a nested
// section→row→column→module tree, pure operations that produce new trees,
// and the versioned JSON serialization the store persists.
//
// Nothing in this package touches HTTP or the database. Operations take the
// current section list plus an explicit *Generator and return a new list,
// so callers decide when a mutation becomes a persisted save.
package layout

// SectionType identifies the role of a top-level page region.
type SectionType string

const (
	SectionHeader  SectionType = "header"
	SectionContent SectionType = "content"
	SectionFooter  SectionType = "footer"
	SectionCustom  SectionType = "custom"
)

// ModuleKind is the typed variant tag a renderer registry dispatches on.
// A kind with no registered renderer is a typed not-found and renders nothing.
type ModuleKind string

const (
	KindText   ModuleKind = "text"
	KindBanner ModuleKind = "banner"
	KindImage  ModuleKind = "image"
	KindSlider ModuleKind = "slider"
	KindBlock  ModuleKind = "block"
	KindHTML   ModuleKind = "html"
	KindSpacer ModuleKind = "spacer"
)

// knownKinds is used when normalizing legacy documents that predate the
// kind field.
var knownKinds = map[ModuleKind]bool{
	KindText:   true,
	KindBanner: true,
	KindImage:  true,
	KindSlider: true,
	KindBlock:  true,
	KindHTML:   true,
	KindSpacer: true,
}

// Module is a leaf content unit placed in a column. Once placed only
// Props is edited; everything else is fixed by the catalog entry it was
// created from.
type Module struct {
	ID          string         `json:"id"`
	Kind        ModuleKind     `json:"kind,omitempty"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Icon        string         `json:"icon,omitempty"`
	Category    string         `json:"category,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	BlockID     string         `json:"blockId,omitempty"`
	Props       map[string]any `json:"defaultProps,omitempty"`
}

// Column is a vertical slot inside a row. Width is a percentage; sibling
// widths are advisory and not forced to sum to 100 (see NormalizeWidths).
type Column struct {
	ID      string   `json:"id"`
	Width   float64  `json:"width"`
	Style   Style    `json:"style,omitzero"`
	Modules []Module `json:"modules"`
}

// Row is a horizontal band inside a section. Settings is the pre-versioned
// home of row styling and is migrated into Style during normalization.
type Row struct {
	ID       string   `json:"id"`
	Style    Style    `json:"style,omitzero"`
	Settings *Style   `json:"settings,omitempty"`
	Columns  []Column `json:"columns"`
}

// Section is a top-level page region.
type Section struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Type           SectionType `json:"type"`
	Style          Style       `json:"style,omitzero"`
	Rows           []Row       `json:"rows"`
	IsDeletable    bool        `json:"isDeletable"`
	IsDuplicatable bool        `json:"isDuplicatable"`
	MaxRows        int         `json:"maxRows,omitempty"`
}

// Catalog returns the built-in placeable modules shown in the module
// picker. Entries carry no id; AddModule assigns one on placement.
func Catalog() []Module {
	return []Module{
		{
			Kind:        KindText,
			Name:        "Text",
			Description: "Markdown text block",
			Icon:        "text",
			Category:    "content",
			Tags:        []string{"text", "markdown"},
			Props:       map[string]any{"text": ""},
		},
		{
			Kind:        KindBanner,
			Name:        "Banner",
			Description: "Full-width banner with heading and image",
			Icon:        "banner",
			Category:    "media",
			Tags:        []string{"banner", "hero"},
			Props:       map[string]any{"heading": "", "subheading": "", "image": ""},
		},
		{
			Kind:        KindImage,
			Name:        "Image",
			Description: "Single image with optional caption",
			Icon:        "image",
			Category:    "media",
			Tags:        []string{"image"},
			Props:       map[string]any{"src": "", "alt": "", "caption": ""},
		},
		{
			Kind:        KindSlider,
			Name:        "Slider",
			Description: "Rotating set of images",
			Icon:        "slider",
			Category:    "media",
			Tags:        []string{"slider", "carousel"},
			Props:       map[string]any{"images": []any{}, "interval": 5},
		},
		{
			Kind:        KindBlock,
			Name:        "Content Block",
			Description: "Reusable saved block referenced by id",
			Icon:        "block",
			Category:    "content",
			Tags:        []string{"block", "reusable"},
		},
		{
			Kind:        KindHTML,
			Name:        "HTML",
			Description: "Raw HTML for power users",
			Icon:        "code",
			Category:    "advanced",
			Tags:        []string{"html", "embed"},
			Props:       map[string]any{"html": ""},
		},
		{
			Kind:        KindSpacer,
			Name:        "Spacer",
			Description: "Vertical whitespace",
			Icon:        "spacer",
			Category:    "structure",
			Tags:        []string{"spacing"},
			Props:       map[string]any{"height": "2rem"},
		},
	}
}

// CatalogModule returns the catalog entry for kind.
func CatalogModule(kind ModuleKind) (Module, bool) {
	for _, m := range Catalog() {
		if m.Kind == kind {
			return m, true
		}
	}
	return Module{}, false
}
