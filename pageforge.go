// Package pageforge is a page-builder engine built with Go, Echo, and templ.
// It provides a drag-and-drop page builder, reusable content blocks, an
// image library, and a public renderer for the resulting layouts.
//
// Users provide their own templ templates via the ViewFuncs struct, and
// pageforge handles the layout model, handler logic, middleware, and
// database operations. The layout tree itself lives in the layout package.
package pageforge

import (
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/pageforge/analytics"
	"github.com/eringen/pageforge/layout"
)

// ViewFuncs holds user-provided templ components that the framework calls
// when rendering pages. This is the inversion-of-control mechanism that
// lets users own and customize all templates. Rendered page content (the
// canvas) is passed in as a ready-made component; views decide only the
// chrome around it.
type ViewFuncs struct {
	Page           func(p Page, content templ.Component, cfg SiteConfig) templ.Component
	AdminLogin     func(showError bool, csrfToken string) templ.Component
	AdminDashboard func(pages []Page, message string, csrfToken string) templ.Component
	Builder        func(p Page, canvas templ.Component, catalog []layout.Module, blocks []Block, csrfToken string) templ.Component
	AdminBlocks    func(blocks []Block, csrfToken string) templ.Component
	AdminImages    func(images []Image, csrfToken string) templ.Component
	NotFound       func() templ.Component
	ServerError    func() templ.Component
}

// App is the central pageforge application. It wires together the store,
// cache, renderer registry, handlers, middleware, and user-provided
// templates.
type App struct {
	Config    SiteConfig
	Echo      *echo.Echo
	Store     *Store
	Cache     *PageCache
	Views     ViewFuncs
	Renderers *Registry

	loginLimiter   *LoginLimiter
	analyticsStore *analytics.Store
	customRoutes   []func(*App)
	extraRenderers []registration
	staticDir      string
}

// New creates a new pageforge App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the database, cache, middleware, routes, and starts the server.
func (a *App) Start() error {
	// Validate required config
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("pageforge: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("pageforge: SessionSecret is required")
	}

	// Initialize store
	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("pageforge: init store: %w", err)
	}
	a.Store = store

	// Initialize cache; layout parse failures surface as warnings, never
	// as render errors.
	a.Cache = NewPageCache(a.Store, a.Config.PageCacheTTL)
	a.Cache.warn = func(slug string, err error) {
		a.Echo.Logger.Warnf("page %s: layout parse failed, rendering empty: %v", slug, err)
	}

	// Module renderer registry: built-ins plus user overrides.
	a.Renderers = DefaultRenderers(func(id string) (Block, bool) {
		b, err := a.Store.GetBlock(id)
		if err != nil {
			return Block{}, false
		}
		return b, true
	})
	for _, reg := range a.extraRenderers {
		a.Renderers.Register(reg.kind, reg.fn)
	}

	// Initialize login limiter
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	// Initialize analytics if enabled
	if a.Config.AnalyticsEnabled {
		analyticsStore, err := analytics.NewStore(a.Config.AnalyticsDatabasePath)
		if err != nil {
			return fmt.Errorf("pageforge: init analytics: %w", err)
		}
		a.analyticsStore = analyticsStore
		if err := analytics.InitSalt(analyticsStore); err != nil {
			return fmt.Errorf("pageforge: init analytics salt: %w", err)
		}
		stopCleanup := analyticsStore.StartCleanupScheduler(365, 24*time.Hour)
		defer stopCleanup()
	}

	// Setup middleware
	a.setupMiddleware()

	// Setup routes
	a.setupRoutes()

	// Apply custom routes
	for _, fn := range a.customRoutes {
		fn(a)
	}

	// Start server
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Serve embedded framework assets (builder.js, builder.css) under
	// /public/; everything else falls through to the user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/builder.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.GET("/public/builder.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	// User's static assets
	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	// Public routes
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)

	// Admin routes
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.GET("/admin/builder/:slug/", a.handleBuilder)
	e.GET("/admin/blocks/", a.handleBlockList)
	e.GET("/admin/images/", a.handleImageList)
	e.POST("/admin/images/upload/", a.handleImageUpload)
	e.DELETE("/admin/images/:filename/", a.handleImageDelete)

	// Builder JSON API (consumed by the embedded builder.js client)
	api := e.Group("/admin/api", a.requireAdminAPI)
	api.GET("/modules", a.handleModuleCatalog)
	api.GET("/pages", a.handlePageListAPI)
	api.POST("/pages", a.handlePageCreate)
	api.GET("/pages/:slug", a.handlePageGet)
	api.PATCH("/pages/:slug", a.handlePageUpdate)
	api.DELETE("/pages/:slug", a.handlePageDelete)
	api.GET("/pages/:slug/layout", a.handleLayoutGet)
	api.PUT("/pages/:slug/layout", a.handleLayoutSave)
	api.POST("/pages/:slug/sections", a.handleSectionAdd)
	api.POST("/pages/:slug/sections/:id/duplicate", a.handleSectionDuplicate)
	api.DELETE("/pages/:slug/sections/:id", a.handleSectionDelete)
	api.POST("/pages/:slug/sections/:id/rows", a.handleRowAdd)
	api.DELETE("/pages/:slug/rows/:id", a.handleRowDelete)
	api.POST("/pages/:slug/reorder", a.handleSectionDrop)
	api.POST("/pages/:slug/modules", a.handleModuleAdd)
	api.DELETE("/pages/:slug/modules/:id", a.handleModuleRemove)
	api.GET("/blocks", a.handleBlockListAPI)
	api.POST("/blocks", a.handleBlockCreate)
	api.PATCH("/blocks/:id", a.handleBlockUpdate)
	api.DELETE("/blocks/:id", a.handleBlockDelete)

	// Analytics routes
	if a.Config.AnalyticsEnabled && a.analyticsStore != nil {
		analyticsHandler := analytics.NewHandler(a.analyticsStore)
		e.POST("/api/analytics/collect", analyticsHandler.Collect)
		e.GET("/admin/api/analytics/stats", analyticsHandler.Stats, a.requireAdminAPI)
	}

	// Public pages resolve last: any path not claimed above is looked up
	// in the published-page cache.
	e.GET("/*", a.handlePage)
}

// requireAdminAPI guards the builder API: JSON callers get a 401 rather
// than the login redirect the HTML admin pages use.
func (a *App) requireAdminAPI(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !IsAdmin(c) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		}
		return next(c)
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		a.Store.Close()
	}
	if a.analyticsStore != nil {
		a.analyticsStore.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
// This is a convenience function for use in scaffolded main.go files.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("pageforge: required environment variable %s is not set", key)
	}
	return v
}
