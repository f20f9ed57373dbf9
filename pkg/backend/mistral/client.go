package mistral

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/adrianliechti/docsmith/pkg/backend"
)

var _ backend.Provider = (*Client)(nil)

type Client struct {
	client *http.Client

	url   string
	token string

	model string
}

func New(options ...Option) (*Client, error) {
	c := &Client{
		client: http.DefaultClient,

		url: "https://api.mistral.ai/v1/",

		model: "mistral-ocr-latest",
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

func (c *Client) Convert(ctx context.Context, file backend.File, options *backend.ConvertOptions) (*backend.Result, error) {
	if options == nil {
		options = new(backend.ConvertOptions)
	}

	model := c.model

	if options.Model != "" {
		model = options.Model
	}

	name := file.Name

	if name == "" {
		name = "document.pdf"
	}

	dataurl := "data:" + file.ContentType + ";base64," + base64.StdEncoding.EncodeToString(file.Content)

	body := map[string]any{
		"model": model,

		"document": map[string]any{
			"type":          "document_url",
			"document_name": name,
			"document_url":  dataurl,
		},
	}

	data, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(ctx, "POST", strings.TrimRight(c.url, "/")+"/ocr", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, backend.TransientError(Name, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, backend.ErrorFromResponse(Name, resp)
	}

	var response Response

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, err
	}

	return convertResult(&response), nil
}

func convertResult(response *Response) *backend.Result {
	result := &backend.Result{
		Metadata: map[string]any{
			"model": response.Model,
		},
	}

	for _, p := range response.Pages {
		result.Pages = append(result.Pages, backend.Page{
			Number: p.Index + 1,

			Text: p.Markdown,
		})
	}

	if response.UsageInfo != nil {
		result.Metadata["pages_processed"] = response.UsageInfo.PagesProcessed
		result.Metadata["doc_size_bytes"] = response.UsageInfo.DocSizeBytes
	}

	return result
}
