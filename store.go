package pagecraft

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store wraps a SQLite database and provides CRUD operations for companies.
// It is the concrete CompanyRepository the composition pipeline reads from.
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
CREATE TABLE IF NOT EXISTS companies (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    slug TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    address TEXT NOT NULL DEFAULT '',
    phone TEXT NOT NULL DEFAULT '',
    logo TEXT NOT NULL DEFAULT '',
    theme TEXT NOT NULL DEFAULT '{}',
    sections TEXT NOT NULL DEFAULT '[]',
    published INTEGER NOT NULL DEFAULT 1,
    updated_at TEXT NOT NULL DEFAULT ''
);
`)
	return err
}

const companyColumns = `id, slug, name, address, phone, logo, theme, sections, published, updated_at`

// scanCompany materializes one row, decoding the theme and sections JSON
// columns. A company saved with no sections comes back with a nil slice.
func scanCompany(scan func(dest ...any) error) (Company, error) {
	var c Company
	var theme, sections string
	var published int
	if err := scan(&c.ID, &c.Slug, &c.Name, &c.Address, &c.Phone, &c.LogoURL,
		&theme, &sections, &published, &c.UpdatedAt); err != nil {
		return Company{}, err
	}
	if err := json.Unmarshal([]byte(theme), &c.Theme); err != nil {
		return Company{}, fmt.Errorf("decode theme for %s: %w", c.Slug, err)
	}
	if err := json.Unmarshal([]byte(sections), &c.Sections); err != nil {
		return Company{}, fmt.Errorf("decode sections for %s: %w", c.Slug, err)
	}
	c.Published = published == 1
	return c, nil
}

// GetCompany returns a single published company by slug.
func (s *Store) GetCompany(slug string) (Company, error) {
	row := s.db.QueryRow(`SELECT `+companyColumns+` FROM companies WHERE slug = ? AND published = 1`, slug)
	return scanCompany(row.Scan)
}

// GetCompanyByID returns a single published company by numeric id.
func (s *Store) GetCompanyByID(id int64) (Company, error) {
	row := s.db.QueryRow(`SELECT `+companyColumns+` FROM companies WHERE id = ? AND published = 1`, id)
	return scanCompany(row.Scan)
}

// GetCompanyAny returns a company by slug regardless of published status (for admin).
func (s *Store) GetCompanyAny(slug string) (Company, error) {
	row := s.db.QueryRow(`SELECT `+companyColumns+` FROM companies WHERE slug = ?`, slug)
	return scanCompany(row.Scan)
}

// ListCompanies returns all published companies ordered by most recently updated.
func (s *Store) ListCompanies() ([]Company, error) {
	return s.list(`SELECT ` + companyColumns + ` FROM companies WHERE published = 1 ORDER BY updated_at DESC, slug ASC`)
}

// ListAllCompanies returns every company (published and drafts) for the admin dashboard.
func (s *Store) ListAllCompanies() ([]Company, error) {
	return s.list(`SELECT ` + companyColumns + ` FROM companies ORDER BY updated_at DESC, slug ASC`)
}

func (s *Store) list(query string) ([]Company, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []Company
	for rows.Next() {
		c, err := scanCompany(rows.Scan)
		if err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

// SaveCompany upserts a company keyed by slug. Theme and sections are stored
// as JSON columns; section order values are kept exactly as given (ordering
// is the resolver's concern, not the store's).
func (s *Store) SaveCompany(c Company) error {
	theme, err := json.Marshal(c.Theme)
	if err != nil {
		return fmt.Errorf("encode theme: %w", err)
	}
	sections := c.Sections
	if sections == nil {
		sections = []Section{}
	}
	sectionsJSON, err := json.Marshal(sections)
	if err != nil {
		return fmt.Errorf("encode sections: %w", err)
	}
	published := 0
	if c.Published {
		published = 1
	}
	_, err = s.db.Exec(`
INSERT INTO companies (slug, name, address, phone, logo, theme, sections, published, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(slug) DO UPDATE SET
    name = excluded.name,
    address = excluded.address,
    phone = excluded.phone,
    logo = excluded.logo,
    theme = excluded.theme,
    sections = excluded.sections,
    published = excluded.published,
    updated_at = excluded.updated_at`,
		c.Slug, c.Name, c.Address, c.Phone, c.LogoURL,
		string(theme), string(sectionsJSON), published, c.UpdatedAt)
	return err
}

// DeleteCompany removes a company by slug.
func (s *Store) DeleteCompany(slug string) error {
	_, err := s.db.Exec(`DELETE FROM companies WHERE slug = ?`, slug)
	return err
}
