package llamaparse

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/adrianliechti/docsmith/pkg/backend"
)

var _ backend.Provider = (*Client)(nil)

type Client struct {
	client *http.Client

	url   string
	token string

	mode string

	interval time.Duration
}

func New(options ...Option) (*Client, error) {
	c := &Client{
		client: http.DefaultClient,

		url:  "https://api.cloud.llamaindex.ai",
		mode: "cost_effective",

		interval: 2 * time.Second,
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

	if c.token == "" {
		return nil, backend.NewError(backend.ErrorUnavailable, "llamaparse api key not configured")
	}

	mode := c.mode

	if options.Model != "" {
		mode = options.Model
	}

	var data bytes.Buffer
	w := multipart.NewWriter(&data)

	f, err := w.CreateFormFile("file", file.Name)

	if err != nil {
		return nil, err
	}

	if _, err := io.Copy(f, bytes.NewReader(file.Content)); err != nil {
		return nil, err
	}

	w.WriteField("parse_mode", mode)

	if len(options.Languages) > 0 {
		w.WriteField("language", strings.Join(options.Languages, ","))
	}

	w.Close()

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.url, "/")+"/api/v1/parsing/upload", &data)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, backend.TransientError(Name, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, backend.ErrorFromResponse(Name, resp)
	}

	var job Job

	if err := json.NewDecoder(resp.Body).Decode(&job); err != nil {
		return nil, err
	}

	if err := c.awaitJob(ctx, job.ID); err != nil {
		return nil, err
	}

	return c.readResult(ctx, job.ID)
}

func (c *Client) awaitJob(ctx context.Context, jobID string) error {
	for {
		req, _ := http.NewRequestWithContext(ctx, "GET", strings.TrimRight(c.url, "/")+"/api/v1/parsing/job/"+jobID, nil)
		req.Header.Set("Authorization", "Bearer "+c.token)

		resp, err := c.client.Do(req)

		if err != nil {
			return backend.TransientError(Name, err)
		}

		var job Job
		err = json.NewDecoder(resp.Body).Decode(&job)
		resp.Body.Close()

		if err != nil {
			return err
		}

		switch job.Status {
		case JobStatusSuccess:
			return nil

		case JobStatusPending:
			select {
			case <-ctx.Done():
				return ctx.Err()

			case <-time.After(c.interval):
			}

		default:
			return backend.NewError(backend.ErrorPermanent, "job %s", job.Status)
		}
	}
}

func (c *Client) readResult(ctx context.Context, jobID string) (*backend.Result, error) {
	req, _ := http.NewRequestWithContext(ctx, "GET", strings.TrimRight(c.url, "/")+"/api/v1/parsing/job/"+jobID+"/result/json", nil)
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, backend.TransientError(Name, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, backend.ErrorFromResponse(Name, resp)
	}

	var data JobResult

	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}

	result := &backend.Result{
		Metadata: map[string]any{
			"credits": data.Metadata.Credits,
		},
	}

	for _, page := range data.Pages {
		text := page.Markdown

		if text == "" {
			text = page.Text
		}

		result.Pages = append(result.Pages, backend.Page{
			Number: page.Page,

			Text: text,
		})
	}

	if len(result.Pages) == 0 {
		return nil, backend.NewError(backend.ErrorPermanent, "empty result")
	}

	return result, nil
}
