// Package plaintext is the last-resort local backend. It passes text-like
// documents through unchanged and rejects binary input, so auto-selection
// always has a working fallback that needs no external service.
package plaintext

import (
	"context"
	"unicode"

	"github.com/adrianliechti/docsmith/pkg/backend"
	"github.com/adrianliechti/docsmith/pkg/pdf"
	"github.com/adrianliechti/docsmith/pkg/text"
)

const Name = "text"

var _ backend.Provider = (*Extractor)(nil)

type Extractor struct {
}

func New() (*Extractor, error) {
	return &Extractor{}, nil
}

func Descriptor() backend.Descriptor {
	return backend.Descriptor{
		Name:        Name,
		Description: "Plain text passthrough, last-resort fallback",

		Category: backend.CategoryLocalLight,

		MaxPages: 1,
	}
}

func (e *Extractor) Convert(ctx context.Context, file backend.File, options *backend.ConvertOptions) (*backend.Result, error) {
	if options == nil {
		options = new(backend.ConvertOptions)
	}

	if pdf.IsPDF(file.Content) || !isText(file.Content) {
		return nil, backend.NewError(backend.ErrorUnsupported, "not a text document")
	}

	content := string(file.Content)

	result := &backend.Result{
		Pages: []backend.Page{
			{
				Number: 1,

				Text: content,
			},
		},

		Metadata: map[string]any{
			"markdown": text.IsMarkdown(content),
		},
	}

	return result, nil
}

func isText(data []byte) bool {
	if len(data) == 0 {
		return false
	}

	var printable int

	for _, b := range data {
		if b == 0 {
			return false
		}

		if unicode.IsPrint(rune(b)) || b == '\n' || b == '\r' || b == '\t' {
			printable++
		}
	}

	return printable > (len(data) * 90 / 100)
}
