package pageforge

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Reusable content blocks: named HTML snippets referenced by block
// modules. The admin page lists them; the JSON endpoints back both the
// block-picker in the builder and the block management UI.

func (a *App) handleBlockList(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	blocks, err := a.Store.ListBlocks()
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminBlocks(blocks, CsrfToken(c)))
}

func (a *App) handleBlockListAPI(c echo.Context) error {
	blocks, err := a.Store.ListBlocks()
	if err != nil {
		return err
	}
	if blocks == nil {
		blocks = []Block{}
	}
	return c.JSON(http.StatusOK, blocks)
}

type blockRequest struct {
	Name    *string `json:"name"`
	Content *string `json:"content"`
}

func (a *App) handleBlockCreate(c echo.Context) error {
	var req blockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}
	b := Block{Name: strings.TrimSpace(*req.Name)}
	if req.Content != nil {
		b.Content = *req.Content
	}
	saved, err := a.Store.SaveBlock(b)
	if err != nil {
		return err
	}
	a.Cache.Invalidate()
	return c.JSON(http.StatusCreated, saved)
}

func (a *App) handleBlockUpdate(c echo.Context) error {
	b, err := a.Store.GetBlock(c.Param("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "block not found"})
		}
		return err
	}
	var req blockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		b.Name = strings.TrimSpace(*req.Name)
	}
	if req.Content != nil {
		b.Content = *req.Content
	}
	saved, err := a.Store.SaveBlock(b)
	if err != nil {
		return err
	}
	// published pages referencing this block render its new content
	a.Cache.Invalidate()
	return c.JSON(http.StatusOK, saved)
}

func (a *App) handleBlockDelete(c echo.Context) error {
	if err := a.Store.DeleteBlock(c.Param("id")); err != nil {
		return err
	}
	// modules still referencing the block become dangling and render nothing
	a.Cache.Invalidate()
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}
