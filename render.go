package pageforge

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/pageforge/layout"
	"github.com/eringen/pageforge/markdown"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// ModuleRenderer turns a placed module into markup. Renderers receive the
// module by value and must not depend on render order.
type ModuleRenderer func(m layout.Module) templ.Component

// registration is a deferred renderer override from WithModuleRenderer.
type registration struct {
	kind layout.ModuleKind
	fn   ModuleRenderer
}

// Registry dispatches modules to renderers by kind. A kind without a
// registered renderer is a typed not-found: Lookup reports it and the page
// renderer emits nothing for that module, so a partially configured page
// still displays its known content.
type Registry struct {
	byKind map[layout.ModuleKind]ModuleRenderer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byKind: make(map[layout.ModuleKind]ModuleRenderer)}
}

// Register sets the renderer for a kind, replacing any previous one.
func (r *Registry) Register(kind layout.ModuleKind, fn ModuleRenderer) {
	r.byKind[kind] = fn
}

// Lookup returns the renderer for a kind.
func (r *Registry) Lookup(kind layout.ModuleKind) (ModuleRenderer, bool) {
	fn, ok := r.byKind[kind]
	return fn, ok
}

// BlockResolver resolves a blockId to its stored block at render time.
type BlockResolver func(id string) (Block, bool)

// DefaultRenderers returns the registry of built-in module renderers.
// Block modules need the resolver to fetch their referenced content.
func DefaultRenderers(blocks BlockResolver) *Registry {
	r := NewRegistry()
	r.Register(layout.KindText, renderTextModule)
	r.Register(layout.KindHTML, renderHTMLModule)
	r.Register(layout.KindImage, renderImageModule)
	r.Register(layout.KindBanner, renderBannerModule)
	r.Register(layout.KindSlider, renderSliderModule)
	r.Register(layout.KindSpacer, renderSpacerModule)
	r.Register(layout.KindBlock, func(m layout.Module) templ.Component {
		if m.BlockID == "" {
			return empty()
		}
		b, ok := blocks(m.BlockID)
		if !ok {
			// dangling reference: show less, not an error page
			return empty()
		}
		return raw(`<div class="pf-block" data-block-id="` + html.EscapeString(b.ID) + `">` + b.Content + `</div>`)
	})
	return r
}

// RenderSections renders a parsed section tree read-only: Section → Row →
// Column → Module, applying each node's resolved style inline. This is the
// single renderer shared by the public page and the builder preview.
func RenderSections(sections []layout.Section, reg *Registry) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, s := range sections {
			if err := renderSection(ctx, w, s, reg); err != nil {
				return err
			}
		}
		return nil
	})
}

func renderSection(ctx context.Context, w io.Writer, s layout.Section, reg *Registry) error {
	open := `<section id="` + html.EscapeString(s.ID) + `" class="pf-section pf-section-` + html.EscapeString(string(s.Type)) + `"`
	if css := s.Style.CSS(); css != "" {
		open += ` style="` + html.EscapeString(css) + `"`
	}
	if _, err := io.WriteString(w, open+">"); err != nil {
		return err
	}
	for _, r := range s.Rows {
		if err := renderRow(ctx, w, r, reg); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</section>")
	return err
}

func renderRow(ctx context.Context, w io.Writer, r layout.Row, reg *Registry) error {
	// rows are flex containers so column widths and vertical alignment work
	style := "display:flex"
	if css := r.Style.CSS(); css != "" {
		style += ";" + css
	}
	open := `<div id="` + html.EscapeString(r.ID) + `" class="pf-row" style="` + html.EscapeString(style) + `">`
	if _, err := io.WriteString(w, open); err != nil {
		return err
	}
	for _, c := range r.Columns {
		if err := renderColumn(ctx, w, c, reg); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</div>")
	return err
}

func renderColumn(ctx context.Context, w io.Writer, c layout.Column, reg *Registry) error {
	style := "width:" + strconv.FormatFloat(c.Width, 'f', -1, 64) + "%"
	if css := c.Style.CSS(); css != "" {
		style += ";" + css
	}
	open := `<div id="` + html.EscapeString(c.ID) + `" class="pf-column" style="` + html.EscapeString(style) + `">`
	if _, err := io.WriteString(w, open); err != nil {
		return err
	}
	for _, m := range c.Modules {
		fn, ok := reg.Lookup(m.Kind)
		if !ok {
			continue
		}
		if err := fn(m).Render(ctx, w); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</div>")
	return err
}

// empty renders nothing.
func empty() templ.Component {
	return templ.ComponentFunc(func(context.Context, io.Writer) error { return nil })
}

// raw emits pre-built markup verbatim.
func raw(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func propString(m layout.Module, key string) string {
	v, ok := m.Props[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func renderTextModule(m layout.Module) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="pf-module pf-text">`); err != nil {
			return err
		}
		if err := markdown.Markdown(propString(m, "text")).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</div>")
		return err
	})
}

// renderHTMLModule emits the stored markup verbatim: the html kind is the
// power-user escape hatch and is only editable by authenticated admins.
func renderHTMLModule(m layout.Module) templ.Component {
	return raw(`<div class="pf-module pf-html">` + propString(m, "html") + `</div>`)
}

func renderImageModule(m layout.Module) templ.Component {
	src := propString(m, "src")
	if src == "" {
		return empty()
	}
	out := `<figure class="pf-module pf-image"><img src="` + html.EscapeString(src) +
		`" alt="` + html.EscapeString(propString(m, "alt")) + `"/>`
	if caption := propString(m, "caption"); caption != "" {
		out += "<figcaption>" + html.EscapeString(caption) + "</figcaption>"
	}
	return raw(out + "</figure>")
}

func renderBannerModule(m layout.Module) templ.Component {
	out := `<div class="pf-module pf-banner"`
	if img := propString(m, "image"); img != "" {
		out += ` style="background-image:url('` + html.EscapeString(img) + `')"`
	}
	out += ">"
	if h := propString(m, "heading"); h != "" {
		out += "<h1>" + html.EscapeString(h) + "</h1>"
	}
	if sub := propString(m, "subheading"); sub != "" {
		out += "<p>" + html.EscapeString(sub) + "</p>"
	}
	return raw(out + "</div>")
}

func renderSliderModule(m layout.Module) templ.Component {
	imgs, _ := m.Props["images"].([]any)
	if len(imgs) == 0 {
		return empty()
	}
	interval := 5
	switch v := m.Props["interval"].(type) {
	case float64:
		interval = int(v)
	case int:
		interval = v
	}
	out := fmt.Sprintf(`<div class="pf-module pf-slider" data-interval="%d">`, interval)
	for i, img := range imgs {
		src, _ := img.(string)
		if src == "" {
			continue
		}
		cls := "pf-slide"
		if i == 0 {
			cls += " active"
		}
		out += `<img class="` + cls + `" src="` + html.EscapeString(src) + `" alt=""/>`
	}
	return raw(out + "</div>")
}

func renderSpacerModule(m layout.Module) templ.Component {
	height := propString(m, "height")
	if height == "" {
		height = "2rem"
	}
	height = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`;{}<>"'`, r) {
			return -1
		}
		return r
	}, height)
	return raw(`<div class="pf-module pf-spacer" style="height:` + html.EscapeString(height) + `"></div>`)
}
