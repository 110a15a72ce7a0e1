package pagecraft

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Acme Corp":         "acme-corp",
		"  Globex,  Inc.  ": "globex-inc",
		"Café Müller":       "caf-m-ller",
		"123 Industries":    "123-industries",
		"---":               "",
		"already-slugged":   "already-slugged",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuildURL(t *testing.T) {
	if got := BuildURL("https://example.com", "acme"); got != "https://example.com/acme/" {
		t.Errorf("BuildURL = %q", got)
	}
	if got := BuildURL("https://example.com/base", "co", "7"); got != "https://example.com/base/co/7/" {
		t.Errorf("BuildURL = %q", got)
	}
	if got := BuildURL("https://example.com"); got != "https://example.com" {
		t.Errorf("BuildURL with no segments = %q", got)
	}
}

func TestFilterEmpty(t *testing.T) {
	got := FilterEmpty([]string{"a", " ", "", "b"})
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("FilterEmpty = %v", got)
	}
}

func TestOrganizationJsonLD(t *testing.T) {
	cfg := SiteConfig{Name: "Directory", URL: "https://example.com"}
	company := Company{Slug: "acme", Name: "Acme Corp", Phone: "555-0100", Address: "1 Main St", LogoURL: "/public/acme.svg"}

	got := OrganizationJsonLD(company, cfg)
	for _, want := range []string{`"@type":"Organization"`, `"name":"Acme Corp"`, `"telephone":"555-0100"`, "https://example.com/acme/"} {
		if !strings.Contains(got, want) {
			t.Errorf("OrganizationJsonLD missing %s in %s", want, got)
		}
	}
}
