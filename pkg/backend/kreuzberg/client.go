package kreuzberg

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/adrianliechti/docsmith/pkg/backend"

	"github.com/google/uuid"
)

var _ backend.Provider = (*Client)(nil)

type Client struct {
	client *http.Client

	url   string
	token string
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
		return nil, backend.NewError(backend.ErrorUnavailable, "kreuzberg url not configured")
	}

	if file.ContentType == "" {
		file.ContentType = "application/octet-stream"
	}

	if file.Name == "" {
		file.Name = uuid.New().String() + ".pdf"
	}

	var body bytes.Buffer

	w := multipart.NewWriter(&body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", multipart.FileContentDisposition("files", file.Name))
	h.Set("Content-Type", file.ContentType)

	f, err := w.CreatePart(h)

	if err != nil {
		return nil, err
	}

	if _, err := f.Write(file.Content); err != nil {
		return nil, err
	}

	w.Close()

	req, _ := http.NewRequestWithContext(ctx, "POST", strings.TrimRight(c.url, "/")+"/extract", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())

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

	var results []ExtractionResult

	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, backend.NewError(backend.ErrorPermanent, "empty extraction result")
	}

	return convertResult(&results[0]), nil
}

func convertResult(r *ExtractionResult) *backend.Result {
	result := &backend.Result{
		Pages: []backend.Page{
			{
				Number: 1,

				Text: r.Content,
			},
		},

		Metadata: map[string]any{
			"mime_type": r.MimeType,
		},
	}

	for _, chunk := range r.Chunks {
		if chunk.Metadata.PageNumber > 0 {
			result.Pages = pagesFromChunks(r.Chunks)
			break
		}
	}

	return result
}

func pagesFromChunks(chunks []Chunk) []backend.Page {
	var pages []backend.Page

	for _, chunk := range chunks {
		number := chunk.Metadata.PageNumber

		if len(pages) > 0 && pages[len(pages)-1].Number == number {
			pages[len(pages)-1].Text += "\n" + chunk.Content
			continue
		}

		pages = append(pages, backend.Page{
			Number: number,

			Text: chunk.Content,
		})
	}

	return pages
}
