package backend

import (
	"context"
)

// Provider converts a single document into markdown-ish text.
//
// Implementations must be safe for concurrent use: any long-lived clients
// are created once and treated as read-only afterwards. Cancellation and
// timeouts flow through the context.
type Provider interface {
	Convert(ctx context.Context, file File, options *ConvertOptions) (*Result, error)
}

type File struct {
	Name string

	Content     []byte
	ContentType string
}

type ConvertOptions struct {
	// Model overrides the adapter's default model or parsing mode.
	Model string

	// Languages hints the document languages to OCR backends.
	Languages []string
}

// Result is an adapter's native output before normalization. Adapters that
// have no page boundary signal return a single page.
type Result struct {
	Pages []Page

	Warnings []string
	Metadata map[string]any
}

type Page struct {
	Number int

	Text string
}

// Document is the canonical, normalized output returned to callers.
type Document struct {
	Text string

	Backend   string
	PageCount int

	Warnings []string
	Metadata map[string]any
}

type Category string

const (
	CategoryLocalLight      Category = "local-light"
	CategoryLocalMedium     Category = "local-medium"
	CategoryLocalHeavy      Category = "local-heavy"
	CategoryCommercialCloud Category = "commercial-cloud"
	CategoryFrontierLLM     Category = "frontier-llm"
)

// weight orders categories for auto-selection. Higher wins. Local structure-
// preserving models first, paid APIs as fallback, lightweight parsers last.
func (c Category) weight() int {
	switch c {
	case CategoryLocalHeavy:
		return 5
	case CategoryLocalMedium:
		return 4
	case CategoryCommercialCloud:
		return 3
	case CategoryFrontierLLM:
		return 2
	case CategoryLocalLight:
		return 1
	}

	return 0
}

// Less reports whether c is preferred over other during auto-selection.
func (c Category) Less(other Category) bool {
	return c.weight() > other.weight()
}

type Capability string

const (
	CapabilityOCR       Capability = "ocr"
	CapabilityTables    Capability = "tables"
	CapabilityMultiPage Capability = "multi-page"
	CapabilityAsync     Capability = "async"
)

// Descriptor is the static metadata of one backend. Descriptors are
// immutable after registration.
type Descriptor struct {
	Name        string
	Description string

	Category Category
	Model    string

	Capabilities []Capability

	// CostPerPage in USD. Zero for local backends.
	CostPerPage float64

	// MaxPages and MaxFileSize are enforced before the backend is invoked.
	// Zero means unlimited.
	MaxPages    int
	MaxFileSize int64
}

func (d Descriptor) Supports(c Capability) bool {
	for _, capability := range d.Capabilities {
		if capability == c {
			return true
		}
	}

	return false
}
