package pagecraft

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (a *App) handleHome(c echo.Context) error {
	companies, err := a.Cache.ListCompanies()
	if err != nil {
		return err
	}
	return Render(c, a.Views.Home(companies, a.Config.URL))
}

// handleCompanyPage serves the slug route in layout mode: each section's
// label is resolved through the template registry.
func (a *App) handleCompanyPage(c echo.Context) error {
	slug := c.Param("slug")
	company, err := a.Cache.GetCompany(slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	plan, sectionMap, diags := ResolveLayout(company.Sections, a.Registry)
	a.logDiagnostics(c, company.Slug, diags)
	ctx := Compose(company, plan, sectionMap, a.Config.URL, c.Request().URL.Path)
	return Render(c, a.Views.CompanyPage(ctx, a.Config.URL))
}

// handleCompanyByID serves the id route in direct mode: partial paths are
// composed from each section's category and template name.
func (a *App) handleCompanyByID(c echo.Context) error {
	var id int64
	if err := echo.PathParamsBinder(c).Int64("id", &id).BindError(); err != nil {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}
	company, err := a.Cache.GetCompanyByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	plan, diags := ResolveComposite(company.Sections)
	a.logDiagnostics(c, company.Slug, diags)
	ctx := Compose(company, plan, nil, a.Config.URL, c.Request().URL.Path)
	return Render(c, a.Views.CompanyDirect(ctx, a.Config.URL))
}

// logDiagnostics reports sections dropped from a render plan. Dropped
// sections degrade the page, never fail it, so they are logged and the
// request continues.
func (a *App) logDiagnostics(c echo.Context, slug string, diags []Diagnostic) {
	for _, d := range diags {
		c.Logger().Warnf("company %s: section %d skipped (label=%q, template=%s/%s): %s",
			slug, d.Index, d.Label, d.Category, d.TemplateName, d.Reason)
	}
}

func (a *App) handleSitemap(c echo.Context) error {
	companies, err := a.Cache.ListCompanies()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, companies)
}

func (a *App) handleFeed(c echo.Context) error {
	companies, err := a.Cache.ListCompanies()
	if err != nil {
		return err
	}
	return a.renderFeed(c, companies)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	return c.File(a.staticDir + "/robots.txt")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
