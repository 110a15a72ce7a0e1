package pagecraft

import "testing"

func TestRegistryResolveKnownLabel(t *testing.T) {
	r := NewTemplateRegistry(map[string]string{"header 1": "header/header1"})

	path, ok := r.Resolve("header 1")
	if !ok {
		t.Fatal("expected known label to resolve")
	}
	if path != "header/header1" {
		t.Errorf("path = %q, want %q", path, "header/header1")
	}
}

func TestRegistryResolveUnknownLabel(t *testing.T) {
	r := DefaultRegistry()

	path, ok := r.Resolve("lightbox 7")
	if ok {
		t.Errorf("unknown label resolved to %q, want absent", path)
	}
}

func TestRegistryCopiesMapping(t *testing.T) {
	partials := map[string]string{"header 1": "header/header1"}
	r := NewTemplateRegistry(partials)
	partials["header 1"] = "tampered"

	path, _ := r.Resolve("header 1")
	if path != "header/header1" {
		t.Errorf("path = %q, registry must not observe mutations of the source map", path)
	}
}

func TestDefaultRegistryHasLabels(t *testing.T) {
	r := DefaultRegistry()
	if r.Len() == 0 {
		t.Fatal("default registry should not be empty")
	}
	for _, label := range []string{"header 1", "footer 1"} {
		if _, ok := r.Resolve(label); !ok {
			t.Errorf("default registry missing %q", label)
		}
	}
}
