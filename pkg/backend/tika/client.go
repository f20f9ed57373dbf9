package tika

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/adrianliechti/docsmith/pkg/backend"
)

var _ backend.Provider = (*Client)(nil)

type Client struct {
	client *http.Client

	url string
}

func New(options ...Option) (*Client, error) {
	c := &Client{
		client: http.DefaultClient,
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

	if c.url == "" {
		return nil, backend.NewError(backend.ErrorUnavailable, "tika url not configured")
	}

	u, _ := url.JoinPath(c.url, "/tika/text")

	req, _ := http.NewRequestWithContext(ctx, "PUT", u, bytes.NewReader(file.Content))

	if file.ContentType != "" {
		req.Header.Set("Content-Type", file.ContentType)
	}

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, backend.TransientError(Name, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, backend.ErrorFromResponse(Name, resp)
	}

	var response map[string]any

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, err
	}

	content, _ := response["X-TIKA:content"].(string)
	delete(response, "X-TIKA:content")

	result := &backend.Result{
		Pages: []backend.Page{
			{
				Number: 1,

				Text: content,
			},
		},
	}

	if len(response) > 0 {
		result.Metadata = response
	}

	return result, nil
}
