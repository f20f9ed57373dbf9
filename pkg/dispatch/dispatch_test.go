package dispatch_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/adrianliechti/docsmith/pkg/backend"
	"github.com/adrianliechti/docsmith/pkg/backend/registry"
	"github.com/adrianliechti/docsmith/pkg/dispatch"

	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	calls atomic.Int64

	result *backend.Result
	err    error
}

func (p *stubProvider) Convert(ctx context.Context, file backend.File, options *backend.ConvertOptions) (*backend.Result, error) {
	p.calls.Add(1)

	if p.err != nil {
		return nil, p.err
	}

	return p.result, nil
}

func pdfWithPages(n int) []byte {
	doc := []byte("%PDF-1.4\n2 0 obj << /Type /Pages /Count 2 >> endobj\n")

	for range n {
		doc = append(doc, []byte("obj << /Type /Page >> endobj\n")...)
	}

	return doc
}

func singleBackend(t *testing.T, descriptor backend.Descriptor, provider backend.Provider) *dispatch.Engine {
	t.Helper()

	r := registry.New()
	require.NoError(t, r.Register(descriptor, provider, nil))

	return dispatch.New(r)
}

func TestParseRequiresInput(t *testing.T) {
	e := dispatch.New(registry.New())

	_, err := e.Parse(t.Context(), dispatch.Request{})
	require.Equal(t, backend.ErrorInvalidRequest, backend.KindOf(err))

	_, err = e.Parse(t.Context(), dispatch.Request{Path: "doc.pdf", Content: []byte("data")})
	require.Equal(t, backend.ErrorInvalidRequest, backend.KindOf(err))
}

func TestParse(t *testing.T) {
	provider := &stubProvider{
		result: &backend.Result{
			Pages: []backend.Page{
				{Number: 1, Text: "# Title\r\n\r\n\r\nBody​"},
				{Number: 2, Text: "Second page"},
			},
		},
	}

	e := singleBackend(t, backend.Descriptor{
		Name:     "stub",
		Category: backend.CategoryLocalMedium,
	}, provider)

	document, err := e.Parse(t.Context(), dispatch.Request{
		Content: []byte("%PDF-1.4 data"),
	})

	require.NoError(t, err)
	require.Equal(t, "stub", document.Backend)
	require.Equal(t, 2, document.PageCount)
	require.Equal(t, "# Title\n\nBody\n\nSecond page", document.Text)
}

func TestParseUnknownBackendNoFallback(t *testing.T) {
	provider := &stubProvider{result: &backend.Result{}}

	e := singleBackend(t, backend.Descriptor{
		Name:     "stub",
		Category: backend.CategoryLocalMedium,
	}, provider)

	_, err := e.Parse(t.Context(), dispatch.Request{
		Content: []byte("data"),
		Backend: "nope",
	})

	require.Equal(t, backend.ErrorUnknownBackend, backend.KindOf(err))
	require.Zero(t, provider.calls.Load())
}

func TestParseFileSizeLimit(t *testing.T) {
	provider := &stubProvider{result: &backend.Result{}}

	e := singleBackend(t, backend.Descriptor{
		Name:        "stub",
		Category:    backend.CategoryLocalMedium,
		MaxFileSize: 8,
	}, provider)

	_, err := e.Parse(t.Context(), dispatch.Request{
		Content: []byte("way more than eight bytes"),
	})

	require.Equal(t, backend.ErrorTooLarge, backend.KindOf(err))
	require.Zero(t, provider.calls.Load())
}

func TestParsePageLimit(t *testing.T) {
	provider := &stubProvider{result: &backend.Result{}}

	e := singleBackend(t, backend.Descriptor{
		Name:     "stub",
		Category: backend.CategoryLocalMedium,
		MaxPages: 2,
	}, provider)

	_, err := e.Parse(t.Context(), dispatch.Request{
		Content: pdfWithPages(3),
	})

	require.Equal(t, backend.ErrorTooLarge, backend.KindOf(err))
	require.Zero(t, provider.calls.Load())
}

func TestParseSinglePageOnly(t *testing.T) {
	provider := &stubProvider{result: &backend.Result{}}

	e := singleBackend(t, backend.Descriptor{
		Name:     "stub",
		Category: backend.CategoryCommercialCloud,
		MaxPages: 1,
	}, provider)

	_, err := e.Parse(t.Context(), dispatch.Request{
		Content: pdfWithPages(2),
	})

	// Single-page backends reject multi-page documents outright.
	require.Equal(t, backend.ErrorUnsupported, backend.KindOf(err))
	require.Zero(t, provider.calls.Load())
}

func TestParsePassesWarnings(t *testing.T) {
	provider := &stubProvider{
		result: &backend.Result{
			Pages:    []backend.Page{{Number: 1, Text: "text"}},
			Warnings: []string{"low confidence on page 1"},
		},
	}

	e := singleBackend(t, backend.Descriptor{
		Name:     "stub",
		Category: backend.CategoryLocalMedium,
	}, provider)

	document, err := e.Parse(t.Context(), dispatch.Request{
		Content: []byte("data"),
	})

	require.NoError(t, err)
	require.Equal(t, []string{"low confidence on page 1"}, document.Warnings)
}

func TestParseWrapsBackendErrors(t *testing.T) {
	provider := &stubProvider{err: backend.NewError(backend.ErrorAuthentication, "bad key")}

	e := singleBackend(t, backend.Descriptor{
		Name:     "stub",
		Category: backend.CategoryLocalMedium,
	}, provider)

	_, err := e.Parse(t.Context(), dispatch.Request{
		Content: []byte("data"),
	})

	require.Equal(t, backend.ErrorAuthentication, backend.KindOf(err))
	require.Contains(t, err.Error(), "stub")
	require.EqualValues(t, 1, provider.calls.Load())
}
