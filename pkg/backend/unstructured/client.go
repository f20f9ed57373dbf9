package unstructured

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"

	"github.com/adrianliechti/docsmith/pkg/backend"
)

var _ backend.Provider = (*Client)(nil)

type Client struct {
	client *http.Client

	url   string
	token string

	strategy Strategy
}

func New(options ...Option) (*Client, error) {
	c := &Client{
		client: http.DefaultClient,

		url: "https://api.unstructured.io/general/v0/general",

		strategy: StrategyFast,
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

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	w.WriteField("strategy", string(c.strategy))
	w.WriteField("include_page_breaks", "true")

	for _, lang := range options.Languages {
		w.WriteField("languages", lang)
	}

	f, err := w.CreateFormFile("files", file.Name)

	if err != nil {
		return nil, err
	}

	if _, err := f.Write(file.Content); err != nil {
		return nil, err
	}

	w.Close()

	req, _ := http.NewRequestWithContext(ctx, "POST", c.url, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	if c.token != "" {
		req.Header.Set("unstructured-api-key", c.token)
	}

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, backend.TransientError(Name, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, backend.ErrorFromResponse(Name, resp)
	}

	var elements []Element

	if err := json.NewDecoder(resp.Body).Decode(&elements); err != nil {
		return nil, err
	}

	return convertResult(elements), nil
}

func convertResult(elements []Element) *backend.Result {
	result := &backend.Result{}

	var pages []backend.Page

	for _, e := range elements {
		if e.Text == "" {
			continue
		}

		number := e.Metadata.PageNumber

		if number < 1 {
			number = 1
		}

		if len(pages) > 0 && pages[len(pages)-1].Number == number {
			pages[len(pages)-1].Text += "\n\n" + e.Text
			continue
		}

		pages = append(pages, backend.Page{
			Number: number,

			Text: e.Text,
		})
	}

	result.Pages = pages

	return result
}
