package pageforge

// Page is the persisted page document: the settings fields edited in the
// builder sidebar plus the serialized layout (see the layout package).
// The layout is stored as an opaque string; only the layout package reads
// or writes its contents.
type Page struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Path        string `json:"path"`   // public URL path, e.g. "/about"
	Status      string `json:"status"` // "draft" or "published"
	IsHome      bool   `json:"isHome"`
	LayoutJSON  string `json:"-"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// Page status values.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Published reports whether the page is publicly visible.
func (p Page) Published() bool {
	return p.Status == StatusPublished
}

// Block is a named, reusable content snippet stored outside any page and
// referenced by block modules through their blockId.
type Block struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Content   string `json:"content"` // HTML
	UpdatedAt string `json:"updatedAt"`
}

// Image is an uploaded asset used by banner modules and style backgrounds.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}
