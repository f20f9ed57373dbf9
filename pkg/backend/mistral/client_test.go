package mistral_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adrianliechti/docsmith/pkg/backend"
	"github.com/adrianliechti/docsmith/pkg/backend/mistral"

	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/ocr", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "mistral-ocr-latest", body["model"])

		document := body["document"].(map[string]any)
		require.Equal(t, "document_url", document["type"])
		require.Equal(t, "report.pdf", document["document_name"])
		require.Contains(t, document["document_url"], "data:application/pdf;base64,")

		json.NewEncoder(w).Encode(map[string]any{
			"model": "mistral-ocr-latest",
			"pages": []map[string]any{
				{"index": 0, "markdown": "# Page One"},
				{"index": 1, "markdown": "Page Two"},
			},
			"usage_info": map[string]any{
				"pages_processed": 2,
				"doc_size_bytes":  1024,
			},
		})
	}))

	defer server.Close()

	c, err := mistral.New(mistral.WithURL(server.URL), mistral.WithToken("test-key"))
	require.NoError(t, err)

	result, err := c.Convert(t.Context(), backend.File{
		Name:        "report.pdf",
		Content:     []byte("%PDF-1.4"),
		ContentType: "application/pdf",
	}, nil)

	require.NoError(t, err)
	require.Len(t, result.Pages, 2)
	require.Equal(t, 1, result.Pages[0].Number)
	require.Equal(t, "# Page One", result.Pages[0].Text)
	require.Equal(t, 2, result.Metadata["pages_processed"])
}

func TestConvertUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))

	defer server.Close()

	c, err := mistral.New(mistral.WithURL(server.URL), mistral.WithToken("bad-key"))
	require.NoError(t, err)

	_, err = c.Convert(t.Context(), backend.File{Content: []byte("%PDF-1.4")}, nil)

	require.Equal(t, backend.ErrorAuthentication, backend.KindOf(err))
}

func TestConvertServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))

	defer server.Close()

	c, err := mistral.New(mistral.WithURL(server.URL))
	require.NoError(t, err)

	_, err = c.Convert(t.Context(), backend.File{Content: []byte("%PDF-1.4")}, nil)

	require.True(t, backend.IsTransient(err))
}
