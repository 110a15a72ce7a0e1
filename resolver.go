package pagecraft

import "sort"

// RenderDescriptor is one resolved entry of a render plan: a partial path
// plus the section's data payload, ready for hand-off to the view layer.
type RenderDescriptor struct {
	Path string
	Data map[string]any
}

// RenderPlan is an ordered sequence of resolved render descriptors.
type RenderPlan []RenderDescriptor

// Diagnostic records a section that was dropped from a render plan and why.
// Dropped sections never fail the page; handlers log these instead.
type Diagnostic struct {
	Index        int // position in the sorted section sequence
	Label        string
	Category     string
	TemplateName string
	Reason       string
}

// sortSections returns the sections stable-sorted by Order ascending.
// Equal orders keep their stored relative position. The input is not mutated.
func sortSections(sections []Section) []Section {
	sorted := make([]Section, len(sections))
	copy(sorted, sections)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})
	return sorted
}

// ResolveComposite builds a render plan in direct composite-path mode:
// each section's path is category + "/" + template_name. Sections missing
// either part are skipped and reported in the diagnostics, so a page with
// partially bad data still renders everything that resolves.
func ResolveComposite(sections []Section) (RenderPlan, []Diagnostic) {
	sorted := sortSections(sections)
	plan := make(RenderPlan, 0, len(sorted))
	var diags []Diagnostic
	for i, s := range sorted {
		if s.Template.Category == "" || s.Template.TemplateName == "" {
			diags = append(diags, Diagnostic{
				Index:        i,
				Label:        s.Label,
				Category:     s.Template.Category,
				TemplateName: s.Template.TemplateName,
				Reason:       "incomplete composite path",
			})
			continue
		}
		plan = append(plan, RenderDescriptor{
			Path: s.Template.Category + "/" + s.Template.TemplateName,
			Data: s.Data,
		})
	}
	return plan, diags
}

// ResolveLayout builds a render plan in layout mode: each section's label is
// looked up in the registry. It also returns the label→path section map that
// layout templates use for partial includes. Unknown labels are skipped and
// reported in the diagnostics.
func ResolveLayout(sections []Section, registry *TemplateRegistry) (RenderPlan, map[string]string, []Diagnostic) {
	sorted := sortSections(sections)
	plan := make(RenderPlan, 0, len(sorted))
	sectionMap := make(map[string]string)
	var diags []Diagnostic
	for i, s := range sorted {
		path, ok := registry.Resolve(s.Label)
		if !ok {
			diags = append(diags, Diagnostic{
				Index:        i,
				Label:        s.Label,
				Category:     s.Template.Category,
				TemplateName: s.Template.TemplateName,
				Reason:       "label not in registry",
			})
			continue
		}
		sectionMap[s.Label] = path
		plan = append(plan, RenderDescriptor{Path: path, Data: s.Data})
	}
	return plan, sectionMap, diags
}
