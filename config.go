package pagecraft

import "time"

// SiteConfig holds all configuration for a pagecraft site.
type SiteConfig struct {
	Name        string // Site name (default "Directory")
	URL         string // Canonical URL prefix (default "http://localhost:3000")
	Description string // Site description for the feed and meta tags

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/companies.db")

	AnalyticsEnabled      bool   // Enable page-view analytics (default false)
	AnalyticsDatabasePath string // Analytics SQLite path (default "data/analytics.db")

	AdminPassword string // Required: admin login password
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	CompanyCacheTTL time.Duration // Company cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Directory"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/companies.db"
	}
	if c.AnalyticsDatabasePath == "" {
		c.AnalyticsDatabasePath = "data/analytics.db"
	}
	if c.CompanyCacheTTL == 0 {
		c.CompanyCacheTTL = 5 * time.Minute
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

// WithRegistry replaces the default template registry with the host
// project's own label→partial mapping.
func WithRegistry(partials map[string]string) Option {
	return func(a *App) {
		a.Registry = NewTemplateRegistry(partials)
	}
}
