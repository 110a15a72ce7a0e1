package pagecraft

import (
	"crypto/subtle"
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminCompany(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	slug := c.Param("slug")
	company, err := a.Store.GetCompanyAny(slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return Render(c, a.Views.AdminFormPartial(company, CsrfToken(c)))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return Render(c, a.Views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleAdminSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := c.Request().ParseForm(); err != nil {
		return err
	}
	name := strings.TrimSpace(c.FormValue("name"))
	slug := strings.TrimSpace(c.FormValue("slug"))
	if slug == "" {
		slug = Slugify(name)
	}
	if slug == "" {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Slug+is+required.+Add+a+name+or+slug.")
	}

	var theme Theme
	if raw := strings.TrimSpace(c.FormValue("theme")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &theme); err != nil {
			return c.Redirect(http.StatusSeeOther, "/admin/?msg=Theme+must+be+valid+JSON.")
		}
	}

	var sections []Section
	if raw := strings.TrimSpace(c.FormValue("sections")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &sections); err != nil {
			return c.Redirect(http.StatusSeeOther, "/admin/?msg=Sections+must+be+valid+JSON.")
		}
	}
	// Validate known section payloads; unknown categories pass through as opaque.
	for _, s := range sections {
		if _, err := DecodeSectionData(s.Template.Category, s.Data); err != nil {
			c.Logger().Warnf("company %s: %v", slug, err)
			return c.Redirect(http.StatusSeeOther, "/admin/?msg=Section+payload+does+not+match+its+category.")
		}
	}

	company := Company{
		Slug:      slug,
		Name:      name,
		Address:   strings.TrimSpace(c.FormValue("address")),
		Phone:     strings.TrimSpace(c.FormValue("phone")),
		LogoURL:   strings.TrimSpace(c.FormValue("logo")),
		Theme:     theme,
		Sections:  sections,
		Published: c.FormValue("published") != "",
		UpdatedAt: time.Now().Format("2006-01-02"),
	}
	if err := a.Store.SaveCompany(company); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return a.renderAdminDashboard(c, "saved")
}

func (a *App) handleAdminDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	slug := c.Param("slug")
	if err := a.Store.DeleteCompany(slug); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return a.renderAdminDashboard(c, "deleted")
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	companies, err := a.Store.ListAllCompanies()
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminDashboard(companies, msg, CsrfToken(c)))
}
