package unstructured_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adrianliechti/docsmith/pkg/backend"
	"github.com/adrianliechti/docsmith/pkg/backend/unstructured"

	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))

		require.Equal(t, "fast", r.FormValue("strategy"))
		require.Equal(t, "true", r.FormValue("include_page_breaks"))
		require.Equal(t, []string{"deu", "eng"}, r.MultipartForm.Value["languages"])
		require.Equal(t, "secret", r.Header.Get("unstructured-api-key"))

		_, header, err := r.FormFile("files")
		require.NoError(t, err)
		require.Equal(t, "report.pdf", header.Filename)

		json.NewEncoder(w).Encode([]map[string]any{
			{"type": "Title", "text": "Heading", "metadata": map[string]any{"page_number": 1}},
			{"type": "NarrativeText", "text": "Body text", "metadata": map[string]any{"page_number": 1}},
			{"type": "NarrativeText", "text": "", "metadata": map[string]any{"page_number": 1}},
			{"type": "NarrativeText", "text": "Second page", "metadata": map[string]any{"page_number": 2}},
		})
	}))

	defer server.Close()

	c, err := unstructured.New(unstructured.WithURL(server.URL), unstructured.WithToken("secret"))
	require.NoError(t, err)

	result, err := c.Convert(t.Context(), backend.File{
		Name:    "report.pdf",
		Content: []byte("%PDF-1.4"),
	}, &backend.ConvertOptions{
		Languages: []string{"deu", "eng"},
	})

	require.NoError(t, err)
	require.Len(t, result.Pages, 2)
	require.Equal(t, "Heading\n\nBody text", result.Pages[0].Text)
	require.Equal(t, "Second page", result.Pages[1].Text)
}

func TestConvertQuota(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
	}))

	defer server.Close()

	c, err := unstructured.New(unstructured.WithURL(server.URL))
	require.NoError(t, err)

	_, err = c.Convert(t.Context(), backend.File{Content: []byte("%PDF-1.4")}, nil)

	require.Equal(t, backend.ErrorQuota, backend.KindOf(err))
}
