package databricks_test

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/adrianliechti/docsmith/pkg/backend"
	"github.com/adrianliechti/docsmith/pkg/backend/databricks"

	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	document := map[string]any{
		"document": map[string]any{
			"elements": []map[string]any{
				{"content": "# Heading", "page_id": 0},
				{"content": "Body", "page_id": 0},
				{"content": "Second page", "page_id": 1},
			},
		},
		"metadata": map[string]any{
			"warnings": []map[string]any{
				{"message": "blurry region on page 2"},
			},
		},
	}

	payload, err := json.Marshal(document)
	require.NoError(t, err)

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/2.0/sql/statements", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer dapi-token", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "warehouse-1", body["warehouse_id"])
		require.Contains(t, body["statement"], "ai_parse_document")

		parameters := body["parameters"].([]any)
		require.Len(t, parameters, 1)

		value := parameters[0].(map[string]any)["value"].(string)
		decoded, err := base64.StdEncoding.DecodeString(value)
		require.NoError(t, err)
		require.Equal(t, []byte("%PDF-1.4"), decoded)

		json.NewEncoder(w).Encode(map[string]any{
			"statement_id": "stmt-1",
			"status":       map[string]any{"state": "PENDING"},
		})
	})

	mux.HandleFunc("GET /api/2.0/sql/statements/stmt-1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"statement_id": "stmt-1",
			"status":       map[string]any{"state": "SUCCEEDED"},
			"result": map[string]any{
				"data_array": [][]string{{string(payload)}},
			},
		})
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	c, err := databricks.New(
		databricks.WithURL(server.URL),
		databricks.WithToken("dapi-token"),
		databricks.WithWarehouse("warehouse-1"),
		databricks.WithInterval(time.Millisecond),
	)
	require.NoError(t, err)

	result, err := c.Convert(t.Context(), backend.File{Content: []byte("%PDF-1.4")}, nil)

	require.NoError(t, err)
	require.Len(t, result.Pages, 2)
	require.Equal(t, "# Heading\n\nBody", result.Pages[0].Text)
	require.Equal(t, 2, result.Pages[1].Number)
	require.Equal(t, []string{"blurry region on page 2"}, result.Warnings)
}

func TestConvertStatementFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"statement_id": "stmt-2",
			"status": map[string]any{
				"state": "FAILED",
				"error": map[string]any{"message": "warehouse is stopped"},
			},
		})
	}))

	defer server.Close()

	c, err := databricks.New(
		databricks.WithURL(server.URL),
		databricks.WithToken("dapi-token"),
		databricks.WithWarehouse("warehouse-1"),
	)
	require.NoError(t, err)

	_, err = c.Convert(t.Context(), backend.File{Content: []byte("%PDF-1.4")}, nil)

	require.Equal(t, backend.ErrorPermanent, backend.KindOf(err))
	require.Contains(t, err.Error(), "warehouse is stopped")
}

func TestConvertNotConfigured(t *testing.T) {
	c, err := databricks.New()
	require.NoError(t, err)

	_, err = c.Convert(t.Context(), backend.File{Content: []byte("%PDF-1.4")}, nil)

	require.Equal(t, backend.ErrorUnavailable, backend.KindOf(err))
}
