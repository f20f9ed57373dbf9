package azure_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/adrianliechti/docsmith/pkg/backend"
	"github.com/adrianliechti/docsmith/pkg/backend/azure"

	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	var polls atomic.Int64

	mux := http.NewServeMux()

	var serverURL string

	mux.HandleFunc("POST /documentintelligence/documentModels/prebuilt-layout:analyze", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "2024-11-30", r.URL.Query().Get("api-version"))
		require.Equal(t, "markdown", r.URL.Query().Get("outputContentFormat"))
		require.Equal(t, "secret", r.Header.Get("Ocp-Apim-Subscription-Key"))

		w.Header().Set("Operation-Location", serverURL+"/operations/op-1")
		w.WriteHeader(http.StatusAccepted)
	})

	mux.HandleFunc("GET /operations/op-1", func(w http.ResponseWriter, r *http.Request) {
		if polls.Add(1) < 2 {
			json.NewEncoder(w).Encode(map[string]any{"status": "running"})
			return
		}

		json.NewEncoder(w).Encode(map[string]any{
			"status": "succeeded",
			"analyzeResult": map[string]any{
				"modelId": "prebuilt-layout",
				"content": "# Page One\n<!-- PageBreak -->\n# Page Two",
				"warnings": []map[string]any{
					{"code": "ocrQuality", "message": "low scan quality"},
				},
			},
		})
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	serverURL = server.URL

	c, err := azure.New(azure.WithURL(server.URL), azure.WithToken("secret"), azure.WithInterval(time.Millisecond))
	require.NoError(t, err)

	result, err := c.Convert(t.Context(), backend.File{Content: []byte("%PDF-1.4")}, nil)

	require.NoError(t, err)
	require.Len(t, result.Pages, 2)
	require.Equal(t, "# Page One", result.Pages[0].Text)
	require.Equal(t, "# Page Two", result.Pages[1].Text)
	require.Equal(t, []string{"low scan quality"}, result.Warnings)
}

func TestConvertRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "access denied", http.StatusForbidden)
	}))

	defer server.Close()

	c, err := azure.New(azure.WithURL(server.URL), azure.WithToken("bad"))
	require.NoError(t, err)

	_, err = c.Convert(t.Context(), backend.File{Content: []byte("%PDF-1.4")}, nil)

	require.Equal(t, backend.ErrorAuthentication, backend.KindOf(err))
}

func TestConvertOperationFailed(t *testing.T) {
	mux := http.NewServeMux()

	var serverURL string

	mux.HandleFunc("POST /documentintelligence/documentModels/prebuilt-layout:analyze", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Operation-Location", serverURL+"/operations/op-2")
		w.WriteHeader(http.StatusAccepted)
	})

	mux.HandleFunc("GET /operations/op-2", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": "failed"})
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	serverURL = server.URL

	c, err := azure.New(azure.WithURL(server.URL), azure.WithToken("secret"), azure.WithInterval(time.Millisecond))
	require.NoError(t, err)

	_, err = c.Convert(t.Context(), backend.File{Content: []byte("%PDF-1.4")}, nil)

	require.Equal(t, backend.ErrorPermanent, backend.KindOf(err))
}
