package dispatch

import (
	"github.com/adrianliechti/docsmith/pkg/backend"
	"github.com/adrianliechti/docsmith/pkg/text"
)

// normalize converts an adapter's native result into the canonical document
// shape: pages joined with one blank line, control artifacts stripped, page
// count taken from the backend's page signal and warnings passed through
// verbatim.
func normalize(d backend.Descriptor, result *backend.Result) *backend.Document {
	pages := make([]string, 0, len(result.Pages))

	for _, page := range result.Pages {
		pages = append(pages, text.Clean(page.Text))
	}

	count := len(result.Pages)

	if count == 0 && !d.Supports(backend.CapabilityMultiPage) {
		count = 1
	}

	return &backend.Document{
		Text: text.Join(pages),

		Backend:   d.Name,
		PageCount: count,

		Warnings: result.Warnings,
		Metadata: result.Metadata,
	}
}
