package pagecraft

// TemplateRegistry maps a human-readable section label (e.g. "header 1") to
// a physical partial path (e.g. "header/header1"). The mapping is a closed
// set fixed at construction time; it is never mutated after Start, so
// concurrent lookups need no locking.
type TemplateRegistry struct {
	partials map[string]string
}

// NewTemplateRegistry builds a registry from the given label→path mapping.
// The mapping is copied, so later changes to the argument have no effect.
func NewTemplateRegistry(partials map[string]string) *TemplateRegistry {
	m := make(map[string]string, len(partials))
	for label, path := range partials {
		m[label] = path
	}
	return &TemplateRegistry{partials: m}
}

// DefaultRegistry returns the partial set shipped with the framework.
// Host projects usually replace it via WithRegistry.
func DefaultRegistry() *TemplateRegistry {
	return NewTemplateRegistry(map[string]string{
		"header 1":  "header/header1",
		"header 2":  "header/header2",
		"hero 1":    "hero/hero1",
		"gallery 1": "gallery/gallery1",
		"text 1":    "text/text1",
		"contact 1": "contact/contact1",
		"footer 1":  "footer/footer1",
		"footer 2":  "footer/footer2",
	})
}

// Resolve returns the partial path registered for label. The second return
// is false when the label is unknown; unknown labels are never an error.
func (r *TemplateRegistry) Resolve(label string) (string, bool) {
	path, ok := r.partials[label]
	return path, ok
}

// Len returns the number of registered labels.
func (r *TemplateRegistry) Len() int {
	return len(r.partials)
}
