package pageforge

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store wraps a SQLite database and provides CRUD operations for pages,
// blocks and uploaded images.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Enable WAL mode for concurrent read/write access, set a busy timeout
	// so writers wait instead of returning SQLITE_BUSY immediately, and tune
	// performance: synchronous=NORMAL is safe with WAL and avoids an fsync
	// per transaction; larger cache and mmap reduce disk I/O.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
		PRAGMA mmap_size=268435456;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS pages (
    id TEXT PRIMARY KEY,
    slug TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    path TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'draft',
    is_home INTEGER NOT NULL DEFAULT 0,
    layout_json TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS blocks (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    content TEXT NOT NULL DEFAULT '',
    updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS images (
    filename TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_pages_path ON pages(path);
CREATE INDEX IF NOT EXISTS idx_pages_status ON pages(status);
`)
	if err != nil {
		return err
	}
	// Pre-versioned installs stored pages without a path column.
	if _, err := s.db.Exec(`ALTER TABLE pages ADD COLUMN path TEXT NOT NULL DEFAULT '';`); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate column") {
			return nil
		}
		return err
	}
	return nil
}

func scanPage(scan func(...any) error) (Page, error) {
	var p Page
	var isHome int
	err := scan(&p.ID, &p.Slug, &p.Title, &p.Description, &p.Path, &p.Status,
		&isHome, &p.LayoutJSON, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Page{}, err
	}
	p.IsHome = isHome == 1
	return p, nil
}

const pageColumns = `id, slug, title, description, path, status, is_home, layout_json, created_at, updated_at`

// ListPages returns every page ordered by title (for the admin dashboard).
func (s *Store) ListPages() ([]Page, error) {
	rows, err := s.db.Query(`SELECT ` + pageColumns + ` FROM pages ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []Page
	for rows.Next() {
		p, err := scanPage(rows.Scan)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// ListPublishedPages returns every published page.
func (s *Store) ListPublishedPages() ([]Page, error) {
	rows, err := s.db.Query(`SELECT `+pageColumns+` FROM pages WHERE status = ? ORDER BY updated_at DESC`, StatusPublished)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []Page
	for rows.Next() {
		p, err := scanPage(rows.Scan)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// GetPage returns a page by slug regardless of status (for the builder).
func (s *Store) GetPage(slug string) (Page, error) {
	row := s.db.QueryRow(`SELECT `+pageColumns+` FROM pages WHERE slug = ?`, slug)
	return scanPage(row.Scan)
}

// GetPageByPath returns a published page by its public path.
func (s *Store) GetPageByPath(path string) (Page, error) {
	row := s.db.QueryRow(`SELECT `+pageColumns+` FROM pages WHERE path = ? AND status = ?`, path, StatusPublished)
	return scanPage(row.Scan)
}

// GetHomePage returns the published page marked as the home layout.
func (s *Store) GetHomePage() (Page, error) {
	row := s.db.QueryRow(`SELECT `+pageColumns+` FROM pages WHERE is_home = 1 AND status = ? LIMIT 1`, StatusPublished)
	return scanPage(row.Scan)
}

// SavePage upserts a page. A page without an id gets a fresh one, and
// timestamps are maintained here so every caller behaves the same.
func (s *Store) SavePage(p Page) (Page, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	if p.ID == "" {
		p.ID = uuid.NewString()
		p.CreatedAt = now
	}
	if p.CreatedAt == "" {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = StatusDraft
	}
	isHome := 0
	if p.IsHome {
		isHome = 1
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO pages (`+pageColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Slug, p.Title, p.Description, p.Path, p.Status, isHome, p.LayoutJSON, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return Page{}, err
	}
	if p.IsHome {
		// Only one page can be the home layout.
		if _, err := s.db.Exec(`UPDATE pages SET is_home = 0 WHERE id != ?`, p.ID); err != nil {
			return Page{}, err
		}
	}
	return p, nil
}

// SaveLayout replaces only the layout_json of the addressed page. A single
// UPDATE, so a failed save leaves the stored document untouched.
func (s *Store) SaveLayout(slug, layoutJSON string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(`UPDATE pages SET layout_json = ?, updated_at = ? WHERE slug = ?`, layoutJSON, now, slug)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeletePage removes a page by slug.
func (s *Store) DeletePage(slug string) error {
	_, err := s.db.Exec(`DELETE FROM pages WHERE slug = ?`, slug)
	return err
}

// ListBlocks returns all reusable blocks ordered by name.
func (s *Store) ListBlocks() ([]Block, error) {
	rows, err := s.db.Query(`SELECT id, name, content, updated_at FROM blocks ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []Block
	for rows.Next() {
		var b Block
		if err := rows.Scan(&b.ID, &b.Name, &b.Content, &b.UpdatedAt); err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

// GetBlock returns a block by id.
func (s *Store) GetBlock(id string) (Block, error) {
	var b Block
	err := s.db.QueryRow(`SELECT id, name, content, updated_at FROM blocks WHERE id = ?`, id).
		Scan(&b.ID, &b.Name, &b.Content, &b.UpdatedAt)
	return b, err
}

// SaveBlock upserts a block, assigning an id when absent.
func (s *Store) SaveBlock(b Block) (Block, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(`INSERT OR REPLACE INTO blocks (id, name, content, updated_at) VALUES (?, ?, ?, ?)`,
		b.ID, b.Name, b.Content, b.UpdatedAt)
	if err != nil {
		return Block{}, err
	}
	return b, nil
}

// DeleteBlock removes a block by id.
func (s *Store) DeleteBlock(id string) error {
	_, err := s.db.Exec(`DELETE FROM blocks WHERE id = ?`, id)
	return err
}

// ListImages returns all uploaded images, newest first.
func (s *Store) ListImages() ([]Image, error) {
	rows, err := s.db.Query(`SELECT filename, original_name, width, height, size, uploaded_at FROM images ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// SaveImage records an uploaded image's metadata.
func (s *Store) SaveImage(img Image) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO images (filename, original_name, width, height, size, uploaded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		img.Filename, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt)
	return err
}

// DeleteImage removes an image record by filename.
func (s *Store) DeleteImage(filename string) error {
	_, err := s.db.Exec(`DELETE FROM images WHERE filename = ?`, filename)
	return err
}
