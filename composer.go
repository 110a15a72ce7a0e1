package pagecraft

// RenderContext is the single context object handed to the view layer for a
// company page: the company's own attributes, the canonical URL of the
// request, and the resolved render plan. SectionMap is populated in layout
// mode only (label→path, for partial includes); it is nil for direct renders.
type RenderContext struct {
	Company      Company
	CanonicalURL string
	Sections     RenderPlan
	SectionMap   map[string]string
}

// Compose merges a company record with its resolved render plan into the
// final render context. It is a pure transformation: the caller has already
// resolved the company (a missing company never reaches Compose) and the
// actual HTML generation is delegated to the templ components in ViewFuncs.
// The canonical URL is the configured site URL joined with the original
// request path.
func Compose(company Company, plan RenderPlan, sectionMap map[string]string, baseURL, requestPath string) RenderContext {
	return RenderContext{
		Company:      company,
		CanonicalURL: BuildURL(baseURL, requestPath),
		Sections:     plan,
		SectionMap:   sectionMap,
	}
}
