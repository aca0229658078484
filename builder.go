package pageforge

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/pageforge/layout"
)

// The builder API. Every gesture on the canvas is one endpoint here:
// load the page document, parse it, seed a generator from it, apply one
// pure tree operation, serialize, persist. Operations addressing nodes
// that no longer exist are no-ops, so a stale client cannot corrupt a
// document — it just gets the current tree back.

// layoutResponse is what every mutating endpoint returns: the tree after
// the operation, for the client to re-render, plus op-specific extras.
type layoutResponse struct {
	Sections []layout.Section `json:"sections"`
	Created  *layout.Section  `json:"created,omitempty"`
}

// applyLayoutOp runs one tree operation against the addressed page's
// document and persists the result.
func (a *App) applyLayoutOp(c echo.Context, op func(doc *layout.Document, g *layout.Generator) *layout.Section) error {
	slug := c.Param("slug")
	page, err := a.Store.GetPage(slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "page not found"})
		}
		return err
	}
	doc, err := layout.ParseDocument(page.LayoutJSON)
	if err != nil {
		c.Logger().Warnf("page %s: layout parse failed, starting from empty document: %v", slug, err)
		doc = layout.Document{Sections: []layout.Section{}}
	}
	g := layout.NewSeededGenerator(doc.Sections)

	created := op(&doc, g)

	raw, err := layout.Serialize(doc)
	if err != nil {
		return err
	}
	if err := a.Store.SaveLayout(slug, raw); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return c.JSON(http.StatusOK, layoutResponse{Sections: doc.Sections, Created: created})
}

func (a *App) handleModuleCatalog(c echo.Context) error {
	return c.JSON(http.StatusOK, layout.Catalog())
}

func (a *App) handlePageListAPI(c echo.Context) error {
	pages, err := a.Store.ListPages()
	if err != nil {
		return err
	}
	if pages == nil {
		pages = []Page{}
	}
	return c.JSON(http.StatusOK, pages)
}

type pageRequest struct {
	Title       *string `json:"title"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Path        *string `json:"path"`
	Status      *string `json:"status"`
	IsHome      *bool   `json:"isHome"`
}

func (a *App) handlePageCreate(c echo.Context) error {
	var req pageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	title := ""
	if req.Title != nil {
		title = strings.TrimSpace(*req.Title)
	}
	slug := ""
	if req.Slug != nil {
		slug = strings.TrimSpace(*req.Slug)
	}
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "slug is required; provide a title or slug"})
	}
	if _, err := a.Store.GetPage(slug); err == nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": "a page with this slug already exists"})
	}

	// New pages start with the default header/content/footer layout.
	g := layout.NewGenerator()
	raw, err := layout.Serialize(layout.Document{Sections: layout.DefaultSections(g)})
	if err != nil {
		return err
	}
	page := Page{
		Slug:       slug,
		Title:      title,
		Status:     StatusDraft,
		Path:       "/" + slug,
		LayoutJSON: raw,
	}
	if req.Description != nil {
		page.Description = *req.Description
	}
	if req.Path != nil && strings.TrimSpace(*req.Path) != "" {
		page.Path = normalizePath(*req.Path)
	}
	if req.Status != nil {
		page.Status = *req.Status
	}
	if req.IsHome != nil {
		page.IsHome = *req.IsHome
	}
	saved, err := a.Store.SavePage(page)
	if err != nil {
		return err
	}
	a.Cache.Invalidate()
	return c.JSON(http.StatusCreated, saved)
}

func (a *App) handlePageGet(c echo.Context) error {
	page, err := a.Store.GetPage(c.Param("slug"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "page not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// handlePageUpdate patches the page-setting fields edited in the builder
// sidebar (title, slug, path, status, meta). The layout itself is saved
// through the layout endpoints only.
func (a *App) handlePageUpdate(c echo.Context) error {
	page, err := a.Store.GetPage(c.Param("slug"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "page not found"})
		}
		return err
	}
	var req pageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if req.Title != nil {
		page.Title = strings.TrimSpace(*req.Title)
	}
	if req.Slug != nil && strings.TrimSpace(*req.Slug) != "" {
		page.Slug = Slugify(*req.Slug)
	}
	if req.Description != nil {
		page.Description = *req.Description
	}
	if req.Path != nil && strings.TrimSpace(*req.Path) != "" {
		page.Path = normalizePath(*req.Path)
	}
	if req.Status != nil {
		if *req.Status != StatusDraft && *req.Status != StatusPublished {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "status must be draft or published"})
		}
		page.Status = *req.Status
	}
	if req.IsHome != nil {
		page.IsHome = *req.IsHome
	}
	saved, err := a.Store.SavePage(page)
	if err != nil {
		return err
	}
	a.Cache.Invalidate()
	return c.JSON(http.StatusOK, saved)
}

func (a *App) handlePageDelete(c echo.Context) error {
	if err := a.Store.DeletePage(c.Param("slug")); err != nil {
		return err
	}
	a.Cache.Invalidate()
	// the client navigates here after a successful delete
	return c.JSON(http.StatusOK, map[string]string{"redirect": "/admin/"})
}

func (a *App) handleLayoutGet(c echo.Context) error {
	page, err := a.Store.GetPage(c.Param("slug"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "page not found"})
		}
		return err
	}
	doc, err := layout.ParseDocument(page.LayoutJSON)
	if err != nil {
		c.Logger().Warnf("page %s: layout parse failed, returning empty document: %v", page.Slug, err)
		doc = layout.Document{Sections: []layout.Section{}}
	}
	return c.JSON(http.StatusOK, doc)
}

// handleLayoutSave is the explicit whole-document save: the client sends
// the full tree plus meta and it replaces the stored layout.
func (a *App) handleLayoutSave(c echo.Context) error {
	var doc layout.Document
	if err := c.Bind(&doc); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid layout document"})
	}
	doc.Sections = layout.Normalize(doc.Sections)
	raw, err := layout.Serialize(doc)
	if err != nil {
		return err
	}
	if err := a.Store.SaveLayout(c.Param("slug"), raw); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "page not found"})
		}
		return err
	}
	a.Cache.Invalidate()
	return c.JSON(http.StatusOK, map[string]string{"status": "saved"})
}

type sectionRequest struct {
	Type layout.SectionType `json:"type"`
}

func (a *App) handleSectionAdd(c echo.Context) error {
	var req sectionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	return a.applyLayoutOp(c, func(doc *layout.Document, g *layout.Generator) *layout.Section {
		sections, created := layout.AddSection(doc.Sections, g, req.Type)
		doc.Sections = sections
		return &created
	})
}

func (a *App) handleSectionDuplicate(c echo.Context) error {
	id := c.Param("id")
	return a.applyLayoutOp(c, func(doc *layout.Document, g *layout.Generator) *layout.Section {
		doc.Sections = layout.DuplicateSection(doc.Sections, g, id)
		return nil
	})
}

func (a *App) handleSectionDelete(c echo.Context) error {
	id := c.Param("id")
	return a.applyLayoutOp(c, func(doc *layout.Document, g *layout.Generator) *layout.Section {
		doc.Sections = layout.RemoveSection(doc.Sections, id)
		return nil
	})
}

func (a *App) handleRowAdd(c echo.Context) error {
	id := c.Param("id")
	return a.applyLayoutOp(c, func(doc *layout.Document, g *layout.Generator) *layout.Section {
		doc.Sections = layout.AddRow(doc.Sections, g, id)
		return nil
	})
}

func (a *App) handleRowDelete(c echo.Context) error {
	id := c.Param("id")
	return a.applyLayoutOp(c, func(doc *layout.Document, g *layout.Generator) *layout.Section {
		doc.Sections = layout.RemoveRow(doc.Sections, id)
		return nil
	})
}

type dropRequest struct {
	DragID   string `json:"dragId"`
	TargetID string `json:"targetId"`
}

// handleSectionDrop applies a section drag-end: the dragged section lands
// at the target's index (array-move). Self-drops and stale ids are silent
// no-ops and return the unchanged tree.
func (a *App) handleSectionDrop(c echo.Context) error {
	var req dropRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	return a.applyLayoutOp(c, func(doc *layout.Document, g *layout.Generator) *layout.Section {
		doc.Sections = layout.DropSection(doc.Sections, req.DragID, req.TargetID)
		return nil
	})
}

type moduleAddRequest struct {
	Target  layout.TargetColumn `json:"target"`
	Kind    layout.ModuleKind   `json:"kind"`
	BlockID string              `json:"blockId"`
	Props   map[string]any      `json:"props"`
}

// handleModuleAdd places a picked module into the target column recorded
// when the picker was opened. The module is built from its catalog entry;
// block picks carry the chosen blockId.
func (a *App) handleModuleAdd(c echo.Context) error {
	var req moduleAddRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	mod, ok := layout.CatalogModule(req.Kind)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown module kind"})
	}
	mod.BlockID = req.BlockID
	for k, v := range req.Props {
		if mod.Props == nil {
			mod.Props = map[string]any{}
		}
		mod.Props[k] = v
	}
	return a.applyLayoutOp(c, func(doc *layout.Document, g *layout.Generator) *layout.Section {
		doc.Sections = req.Target.Place(doc.Sections, g, mod)
		return nil
	})
}

func (a *App) handleModuleRemove(c echo.Context) error {
	id := c.Param("id")
	return a.applyLayoutOp(c, func(doc *layout.Document, g *layout.Generator) *layout.Section {
		doc.Sections = layout.RemoveModule(doc.Sections, id)
		return nil
	})
}
