package pagecraft

import (
	"encoding/json"
	"fmt"
)

// SectionData is the decoded, typed form of a section payload. Known
// categories decode to concrete structs; anything else becomes an
// OpaqueSection so unknown payloads survive round-trips untouched.
type SectionData interface {
	// Kind returns the payload kind, matching the template category for
	// known kinds and "opaque" otherwise.
	Kind() string
}

// HeroSection is the payload for "hero" category templates.
type HeroSection struct {
	Heading    string `json:"heading"`
	Subheading string `json:"subheading"`
	ImageURL   string `json:"image_url"`
}

func (HeroSection) Kind() string { return "hero" }

// ContactSection is the payload for "contact" category templates.
type ContactSection struct {
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	MapURL string `json:"map_url"`
}

func (ContactSection) Kind() string { return "contact" }

// GallerySection is the payload for "gallery" category templates.
type GallerySection struct {
	Title  string   `json:"title"`
	Images []string `json:"images"`
}

func (GallerySection) Kind() string { return "gallery" }

// TextSection is the payload for "text" category templates.
type TextSection struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (TextSection) Kind() string { return "text" }

// OpaqueSection preserves a payload whose category has no typed form.
type OpaqueSection struct {
	Raw map[string]any
}

func (OpaqueSection) Kind() string { return "opaque" }

// DecodeSectionData decodes a raw section payload into its typed form based
// on the template category. Unknown categories fall back to OpaqueSection;
// an error is returned only when a known category's payload has the wrong
// shape (e.g. a gallery whose images field is not a list). Render plans
// always carry the raw map regardless; this is used to validate payloads at
// save time.
func DecodeSectionData(category string, raw map[string]any) (SectionData, error) {
	switch category {
	case "hero":
		return decodeInto[HeroSection](category, raw)
	case "contact":
		return decodeInto[ContactSection](category, raw)
	case "gallery":
		return decodeInto[GallerySection](category, raw)
	case "text":
		return decodeInto[TextSection](category, raw)
	default:
		return OpaqueSection{Raw: raw}, nil
	}
}

func decodeInto[T SectionData](category string, raw map[string]any) (SectionData, error) {
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", category, err)
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", category, err)
	}
	return v, nil
}
