package pagecraft

import (
	"os"
	"testing"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()
	path := "data/test_companies.db"
	os.Remove(path) // clean up any existing test db

	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	cleanup := func() {
		s.Close()
		os.Remove(path)
	}

	return s, cleanup
}

func testCompany() Company {
	return Company{
		Slug:    "acme",
		Name:    "Acme Corp",
		Address: "1 Main St, Springfield",
		Phone:   "555-0100",
		LogoURL: "/public/acme.svg",
		Theme: Theme{
			Colors: map[string]string{"primary": "#112233", "accent": "#ffaa00"},
			Fonts:  map[string]string{"body": "Inter", "heading": "Georgia"},
		},
		Sections: []Section{
			{Label: "footer 1", Template: TemplateSpec{Category: "footer", TemplateName: "footer1"}, Order: 2},
			{Label: "header 1", Template: TemplateSpec{Category: "header", TemplateName: "header1"}, Data: map[string]any{"title": "Acme"}, Order: 1},
		},
		Published: true,
		UpdatedAt: "2026-08-01",
	}
}

func TestNewStore(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	if s == nil {
		t.Fatal("store should not be nil")
	}
	if s.db == nil {
		t.Fatal("db should not be nil")
	}
}

func TestSaveAndGetCompany(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	company := testCompany()
	if err := s.SaveCompany(company); err != nil {
		t.Fatalf("SaveCompany failed: %v", err)
	}

	got, err := s.GetCompany("acme")
	if err != nil {
		t.Fatalf("GetCompany failed: %v", err)
	}

	if got.Slug != company.Slug {
		t.Errorf("Slug = %q, want %q", got.Slug, company.Slug)
	}
	if got.Name != company.Name {
		t.Errorf("Name = %q, want %q", got.Name, company.Name)
	}
	if got.Address != company.Address {
		t.Errorf("Address = %q, want %q", got.Address, company.Address)
	}
	if got.Phone != company.Phone {
		t.Errorf("Phone = %q, want %q", got.Phone, company.Phone)
	}
	if got.LogoURL != company.LogoURL {
		t.Errorf("LogoURL = %q, want %q", got.LogoURL, company.LogoURL)
	}
	if got.UpdatedAt != "2026-08-01" {
		t.Errorf("UpdatedAt = %q, want %q", got.UpdatedAt, "2026-08-01")
	}
	if !got.Published {
		t.Error("Published should be true")
	}
	if got.ID == 0 {
		t.Error("ID should be assigned by the store")
	}
	if got.Theme.Colors["primary"] != "#112233" {
		t.Errorf("Theme.Colors = %v", got.Theme.Colors)
	}
	if got.Theme.Fonts["heading"] != "Georgia" {
		t.Errorf("Theme.Fonts = %v", got.Theme.Fonts)
	}
	if len(got.Sections) != 2 {
		t.Fatalf("Sections length = %d, want 2", len(got.Sections))
	}
	// Stored order is preserved; sorting happens in the resolver.
	if got.Sections[0].Label != "footer 1" || got.Sections[1].Label != "header 1" {
		t.Errorf("Sections = %v, want stored order preserved", got.Sections)
	}
	if got.Sections[1].Data["title"] != "Acme" {
		t.Errorf("section data = %v, want title=Acme", got.Sections[1].Data)
	}
}

func TestSaveCompanyUpdate(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	company := testCompany()
	if err := s.SaveCompany(company); err != nil {
		t.Fatalf("SaveCompany failed: %v", err)
	}

	company.Name = "Acme Corporation"
	company.Sections = company.Sections[:1]
	if err := s.SaveCompany(company); err != nil {
		t.Fatalf("SaveCompany update failed: %v", err)
	}

	got, err := s.GetCompany("acme")
	if err != nil {
		t.Fatalf("GetCompany failed: %v", err)
	}
	if got.Name != "Acme Corporation" {
		t.Errorf("Name = %q, want updated name", got.Name)
	}
	if len(got.Sections) != 1 {
		t.Errorf("Sections length = %d, want 1", len(got.Sections))
	}
}

func TestGetCompanyNotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	if _, err := s.GetCompany("ghost"); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestGetCompanyExcludesDrafts(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	company := testCompany()
	company.Published = false
	if err := s.SaveCompany(company); err != nil {
		t.Fatalf("SaveCompany failed: %v", err)
	}

	if _, err := s.GetCompany("acme"); err != ErrNotFound {
		t.Errorf("draft visible via GetCompany: err = %v, want ErrNotFound", err)
	}
	got, err := s.GetCompanyAny("acme")
	if err != nil {
		t.Fatalf("GetCompanyAny failed: %v", err)
	}
	if got.Published {
		t.Error("Published should be false")
	}
}

func TestGetCompanyByID(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	if err := s.SaveCompany(testCompany()); err != nil {
		t.Fatalf("SaveCompany failed: %v", err)
	}
	saved, err := s.GetCompany("acme")
	if err != nil {
		t.Fatalf("GetCompany failed: %v", err)
	}

	got, err := s.GetCompanyByID(saved.ID)
	if err != nil {
		t.Fatalf("GetCompanyByID failed: %v", err)
	}
	if got.Slug != "acme" {
		t.Errorf("Slug = %q, want acme", got.Slug)
	}

	if _, err := s.GetCompanyByID(saved.ID + 100); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListCompanies(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	first := testCompany()
	second := testCompany()
	second.Slug = "globex"
	second.Name = "Globex"
	second.UpdatedAt = "2026-08-20"
	draft := testCompany()
	draft.Slug = "hidden"
	draft.Published = false

	for _, c := range []Company{first, second, draft} {
		if err := s.SaveCompany(c); err != nil {
			t.Fatalf("SaveCompany failed: %v", err)
		}
	}

	published, err := s.ListCompanies()
	if err != nil {
		t.Fatalf("ListCompanies failed: %v", err)
	}
	if len(published) != 2 {
		t.Fatalf("published length = %d, want 2", len(published))
	}
	if published[0].Slug != "globex" {
		t.Errorf("first listed = %q, want most recently updated", published[0].Slug)
	}

	all, err := s.ListAllCompanies()
	if err != nil {
		t.Fatalf("ListAllCompanies failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("all length = %d, want 3", len(all))
	}
}

func TestDeleteCompany(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	if err := s.SaveCompany(testCompany()); err != nil {
		t.Fatalf("SaveCompany failed: %v", err)
	}
	if err := s.DeleteCompany("acme"); err != nil {
		t.Fatalf("DeleteCompany failed: %v", err)
	}
	if _, err := s.GetCompanyAny("acme"); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound after delete", err)
	}
}

func TestSaveCompanyNilSections(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	company := Company{Slug: "bare", Name: "Bare LLC", Published: true, UpdatedAt: "2026-08-01"}
	if err := s.SaveCompany(company); err != nil {
		t.Fatalf("SaveCompany failed: %v", err)
	}

	got, err := s.GetCompany("bare")
	if err != nil {
		t.Fatalf("GetCompany failed: %v", err)
	}
	if len(got.Sections) != 0 {
		t.Errorf("Sections = %v, want empty", got.Sections)
	}

	// A company with zero sections still composes successfully.
	plan, diags := ResolveComposite(got.Sections)
	ctx := Compose(got, plan, nil, "https://example.com", "/bare/")
	if len(ctx.Sections) != 0 || len(diags) != 0 {
		t.Errorf("zero-section company: plan=%v diags=%v, want empty", plan, diags)
	}
}
