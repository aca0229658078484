package pageforge

import (
	"database/sql"
	"strings"
	"sync"
	"time"

	"github.com/eringen/pageforge/layout"
)

// ErrNotFound is returned when a requested page or block does not exist.
var ErrNotFound = sql.ErrNoRows

// cachedPage pairs a published page with its parsed section tree so the
// public renderer never re-parses layout_json per request.
type cachedPage struct {
	page     Page
	sections []layout.Section
}

// PageCache is an in-memory cache of published pages with TTL. Parse
// failures are tolerated: a page whose layout cannot be parsed is cached
// with an empty section list (it renders empty, it does not 500).
type PageCache struct {
	mu      sync.RWMutex
	pages   []cachedPage
	fetched time.Time
	ttl     time.Duration
	store   *Store

	// warn receives parse failures during reload; the App routes it to
	// the echo logger.
	warn func(slug string, err error)
}

// NewPageCache creates a PageCache backed by the given Store.
func NewPageCache(s *Store, ttl time.Duration) *PageCache {
	return &PageCache{store: s, ttl: ttl, warn: func(string, error) {}}
}

func (c *PageCache) valid() bool {
	return c.pages != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PageCache) Invalidate() {
	c.mu.Lock()
	c.pages = nil
	c.mu.Unlock()
}

func (c *PageCache) load() error {
	if c.valid() {
		return nil
	}
	published, err := c.store.ListPublishedPages()
	if err != nil {
		return err
	}
	pages := make([]cachedPage, 0, len(published))
	for _, p := range published {
		sections, err := layout.Parse(p.LayoutJSON)
		if err != nil {
			c.warn(p.Slug, err)
			sections = []layout.Section{}
		}
		pages = append(pages, cachedPage{page: p, sections: sections})
	}
	c.pages = pages
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns the cached pages after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PageCache) ensureLoaded() ([]cachedPage, error) {
	c.mu.RLock()
	if c.valid() {
		pages := c.pages
		c.mu.RUnlock()
		return pages, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, err
	}
	return c.pages, nil
}

// ListPages returns all published pages.
func (c *PageCache) ListPages() ([]Page, error) {
	cached, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	pages := make([]Page, len(cached))
	for i, cp := range cached {
		pages[i] = cp.page
	}
	return pages, nil
}

// GetByPath returns a published page and its parsed sections by public path.
func (c *PageCache) GetByPath(path string) (Page, []layout.Section, error) {
	cached, err := c.ensureLoaded()
	if err != nil {
		return Page{}, nil, err
	}
	path = normalizePath(path)
	for _, cp := range cached {
		if normalizePath(cp.page.Path) == path {
			return cp.page, cp.sections, nil
		}
	}
	return Page{}, nil, ErrNotFound
}

// GetHome returns the published page marked as the home layout.
func (c *PageCache) GetHome() (Page, []layout.Section, error) {
	cached, err := c.ensureLoaded()
	if err != nil {
		return Page{}, nil, err
	}
	for _, cp := range cached {
		if cp.page.IsHome {
			return cp.page, cp.sections, nil
		}
	}
	return Page{}, nil, ErrNotFound
}

// normalizePath strips trailing slashes and guarantees a leading one, so
// "/about", "about" and "/about/" address the same page.
func normalizePath(p string) string {
	p = "/" + strings.Trim(strings.TrimSpace(p), "/")
	return p
}
