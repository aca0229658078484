package pageforge

import (
	"time"

	"github.com/eringen/pageforge/layout"
)

// SiteConfig holds all configuration for a pageforge site.
type SiteConfig struct {
	Name        string // Site name (default "Site")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for feeds and meta tags
	Author      string // Author name for JSON-LD

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/site.db")

	AnalyticsEnabled      bool   // Enable page-view analytics (default false)
	AnalyticsDatabasePath string // Analytics SQLite path (default "data/analytics.db")

	AdminPassword string // Required: admin login password
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	PageCacheTTL time.Duration // Published-page cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Site"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/site.db"
	}
	if c.AnalyticsDatabasePath == "" {
		c.AnalyticsDatabasePath = "data/analytics.db"
	}
	if c.PageCacheTTL == 0 {
		c.PageCacheTTL = 5 * time.Minute
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithModuleRenderer overrides or extends the module renderer registry.
// Call it once per kind; later registrations win.
func WithModuleRenderer(kind layout.ModuleKind, fn ModuleRenderer) Option {
	return func(a *App) {
		a.extraRenderers = append(a.extraRenderers, registration{kind: kind, fn: fn})
	}
}
