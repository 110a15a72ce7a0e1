package pagecraft

// Company is the core record stored in SQLite and rendered into a page.
// Its visible page is assembled at request time from the ordered Sections.
type Company struct {
	ID        int64
	Slug      string
	Name      string
	Address   string
	Phone     string
	LogoURL   string
	Theme     Theme
	Sections  []Section
	Published bool
	UpdatedAt string // YYYY-MM-DD
}

// Theme carries per-company colors and fonts. The composition engine treats
// it as opaque and passes it through to templates unmodified.
type Theme struct {
	Colors map[string]string `json:"colors"`
	Fonts  map[string]string `json:"fonts"`
}

// TemplateSpec identifies a partial by category and template name,
// e.g. {Category: "header", TemplateName: "header1"}.
type TemplateSpec struct {
	Category     string `json:"category"`
	TemplateName string `json:"template_name"`
}

// Section is a positioned content block on a company page. Label is the
// free-text key used by the registry-based layout renderer ("header 1");
// Template is used by the direct composite-path renderer. Data is the
// section's payload, arbitrary in shape.
type Section struct {
	Label    string         `json:"label"`
	Template TemplateSpec   `json:"template"`
	Data     map[string]any `json:"data"`
	Order    int            `json:"order"`
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "profile"
}
