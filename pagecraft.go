// Package pagecraft is a company page engine built with Go, Echo, and templ.
// Operators define company records whose visible pages are assembled at
// request time from an ordered list of reusable template sections, each
// carrying its own data payload, plus a per-company theme.
//
// Users provide their own templ templates via the ViewFuncs struct, and
// pagecraft handles the composition pipeline, handler logic, middleware,
// and database operations.
package pagecraft

import (
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/pagecraft/analytics"
)

// ViewFuncs holds user-provided templ components that the framework calls
// when rendering pages. This is the inversion-of-control mechanism that
// lets users own and customize all templates. CompanyPage receives the
// composed RenderContext with the label-keyed SectionMap populated;
// CompanyDirect receives a context whose plan was built from composite
// category/template_name paths.
type ViewFuncs struct {
	Home             func(companies []Company, siteURL string) templ.Component
	CompanyPage      func(ctx RenderContext, siteURL string) templ.Component
	CompanyDirect    func(ctx RenderContext, siteURL string) templ.Component
	AdminLogin       func(showError bool, csrfToken string) templ.Component
	AdminDashboard   func(companies []Company, message string, csrfToken string) templ.Component
	AdminFormPartial func(company Company, csrfToken string) templ.Component
	NotFound         func() templ.Component
	ServerError      func() templ.Component
}

// App is the central pagecraft application. It wires together the store,
// cache, registry, handlers, middleware, and user-provided templates.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Store    *Store
	Cache    *CompanyCache
	Registry *TemplateRegistry
	Views    ViewFuncs

	loginLimiter   *LoginLimiter
	analyticsStore *analytics.Store
	customRoutes   []func(*App)
	staticDir      string
}

// New creates a new pagecraft App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Registry:  DefaultRegistry(),
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
		return fmt.Errorf("pagecraft: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("pagecraft: SessionSecret is required")
	}

	// Initialize store
	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("pagecraft: init store: %w", err)
	}
	a.Store = store

	// Initialize cache
	a.Cache = NewCompanyCache(a.Store, a.Config.CompanyCacheTTL)

	// Initialize login limiter
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	// Initialize analytics if enabled
	if a.Config.AnalyticsEnabled {
		analyticsStore, err := analytics.NewStore(a.Config.AnalyticsDatabasePath)
		if err != nil {
			return fmt.Errorf("pagecraft: init analytics: %w", err)
		}
		a.analyticsStore = analyticsStore
		if err := analytics.InitSalt(analyticsStore); err != nil {
			return fmt.Errorf("pagecraft: init analytics salt: %w", err)
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

	// Serve embedded framework assets; these fall through to the user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/analytics.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.GET("/public/dashboard.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	// User's static assets
	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	// Public routes
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/co/:id/", a.handleCompanyByID)

	// Admin routes
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.GET("/admin/company/:slug/", a.handleAdminCompany)
	e.POST("/admin/save/", a.handleAdminSave)
	e.DELETE("/admin/company/:slug/", a.handleAdminDelete)

	// Analytics routes
	if a.Config.AnalyticsEnabled && a.analyticsStore != nil {
		analyticsHandler := analytics.NewHandler(a.analyticsStore)
		analyticsAuthMiddleware := func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				if !IsAdmin(c) {
					return c.Redirect(http.StatusSeeOther, "/admin/")
				}
				return next(c)
			}
		}
		analyticsHandler.RegisterRoutes(e, analyticsAuthMiddleware)
	}

	// Company pages by slug. Registered last so fixed routes take priority.
	e.GET("/:slug/", a.handleCompanyPage)
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
		log.Fatalf("pagecraft: required environment variable %s is not set", key)
	}
	return v
}
