package documentai_test

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adrianliechti/docsmith/pkg/backend"
	"github.com/adrianliechti/docsmith/pkg/backend/documentai"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestConvert(t *testing.T) {
	text := "First page text.Second page text."

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/v1/projects/acme/locations/eu/processors/ocr-1:process", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var request documentai.ProcessRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))

		require.Equal(t, "application/pdf", request.RawDocument.MimeType)

		content, err := base64.StdEncoding.DecodeString(request.RawDocument.Content)
		require.NoError(t, err)
		require.Equal(t, []byte("%PDF-1.4"), content)

		json.NewEncoder(w).Encode(map[string]any{
			"document": map[string]any{
				"text": text,
				"pages": []map[string]any{
					{
						"pageNumber": 1,
						"layout": map[string]any{
							"textAnchor": map[string]any{
								"textSegments": []map[string]any{
									{"endIndex": "16"},
								},
							},
						},
					},
					{
						"pageNumber": 2,
						"layout": map[string]any{
							"textAnchor": map[string]any{
								"textSegments": []map[string]any{
									{"startIndex": "16", "endIndex": "33"},
								},
							},
						},
					},
				},
			},
		})
	}))

	defer server.Close()

	c, err := documentai.New(
		documentai.WithURL(server.URL),
		documentai.WithProject("acme"),
		documentai.WithLocation("eu"),
		documentai.WithProcessor("ocr-1"),
		documentai.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"})),
	)

	require.NoError(t, err)

	result, err := c.Convert(t.Context(), backend.File{
		Content:     []byte("%PDF-1.4"),
		ContentType: "application/pdf",
	}, nil)

	require.NoError(t, err)
	require.Len(t, result.Pages, 2)
	require.Equal(t, "First page text.", result.Pages[0].Text)
	require.Equal(t, "Second page text.", result.Pages[1].Text)
}

func TestConvertNotConfigured(t *testing.T) {
	c, err := documentai.New()
	require.NoError(t, err)

	_, err = c.Convert(t.Context(), backend.File{Content: []byte("data")}, nil)

	require.Equal(t, backend.ErrorUnavailable, backend.KindOf(err))
}

func TestConvertQuota(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	defer server.Close()

	c, err := documentai.New(
		documentai.WithURL(server.URL),
		documentai.WithProject("acme"),
		documentai.WithProcessor("ocr-1"),
		documentai.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"})),
	)

	require.NoError(t, err)

	_, err = c.Convert(t.Context(), backend.File{Content: []byte("%PDF-1.4")}, nil)

	require.Equal(t, backend.ErrorQuota, backend.KindOf(err))
}
