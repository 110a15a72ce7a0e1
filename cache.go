package pagecraft

import (
	"database/sql"
	"sync"
	"time"
)

// ErrNotFound is returned when a requested company does not exist.
var ErrNotFound = sql.ErrNoRows

// CompanyCache is an in-memory cache of published companies with TTL.
type CompanyCache struct {
	mu        sync.RWMutex
	companies []Company
	fetched   time.Time
	ttl       time.Duration
	store     *Store
}

// NewCompanyCache creates a CompanyCache backed by the given Store.
func NewCompanyCache(s *Store, ttl time.Duration) *CompanyCache {
	return &CompanyCache{store: s, ttl: ttl}
}

func (c *CompanyCache) valid() bool {
	return c.companies != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *CompanyCache) Invalidate() {
	c.mu.Lock()
	c.companies = nil
	c.mu.Unlock()
}

func (c *CompanyCache) load() error {
	if c.valid() {
		return nil
	}
	companies, err := c.store.ListCompanies()
	if err != nil {
		return err
	}
	if companies == nil {
		companies = []Company{}
	}
	c.companies = companies
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached companies after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *CompanyCache) ensureLoaded() ([]Company, error) {
	c.mu.RLock()
	if c.valid() {
		companies := c.companies
		c.mu.RUnlock()
		return companies, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, err
	}
	return c.companies, nil
}

// ListCompanies returns all published companies.
func (c *CompanyCache) ListCompanies() ([]Company, error) {
	return c.ensureLoaded()
}

// GetCompany returns a single published company by slug from the cache.
func (c *CompanyCache) GetCompany(slug string) (Company, error) {
	companies, err := c.ensureLoaded()
	if err != nil {
		return Company{}, err
	}
	for _, co := range companies {
		if co.Slug == slug {
			return co, nil
		}
	}
	return Company{}, ErrNotFound
}

// GetCompanyByID returns a single published company by id from the cache.
func (c *CompanyCache) GetCompanyByID(id int64) (Company, error) {
	companies, err := c.ensureLoaded()
	if err != nil {
		return Company{}, err
	}
	for _, co := range companies {
		if co.ID == id {
			return co, nil
		}
	}
	return Company{}, ErrNotFound
}
