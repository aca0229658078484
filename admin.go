package pageforge

import (
	"crypto/subtle"
	"database/sql"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/pageforge/layout"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Check(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(c.RealIP())
	return Render(c, a.Views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

// handleBuilder renders the editing canvas for one page: the parsed
// section tree rendered through the same registry as the public page,
// wrapped in the user's Builder chrome with the module catalog and the
// saved-block library for the two pickers.
func (a *App) handleBuilder(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	page, err := a.Store.GetPage(c.Param("slug"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	sections, err := layout.Parse(page.LayoutJSON)
	if err != nil {
		c.Logger().Warnf("page %s: layout parse failed, opening empty canvas: %v", page.Slug, err)
		sections = []layout.Section{}
	}
	blocks, err := a.Store.ListBlocks()
	if err != nil {
		return err
	}
	canvas := RenderSections(sections, a.Renderers)
	return Render(c, a.Views.Builder(page, canvas, layout.Catalog(), blocks, CsrfToken(c)))
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	pages, err := a.Store.ListPages()
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminDashboard(pages, msg, CsrfToken(c)))
}
