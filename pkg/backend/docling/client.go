package docling

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

	interval time.Duration
}

func New(options ...Option) (*Client, error) {
	c := &Client{
		client: http.DefaultClient,

		interval: 4 * time.Second,
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
		return nil, backend.NewError(backend.ErrorUnavailable, "docling url not configured")
	}

	var data bytes.Buffer
	w := multipart.NewWriter(&data)

	f, err := w.CreateFormFile("files", file.Name)

	if err != nil {
		return nil, err
	}

	if _, err := io.Copy(f, bytes.NewReader(file.Content)); err != nil {
		return nil, err
	}

	w.Close()

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.url, "/")+"/v1/convert/file/async", &data)
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

	var task TaskResult

	if err := json.NewDecoder(resp.Body).Decode(&task); err != nil {
		return nil, err
	}

	if err := c.awaitTask(ctx, task.TaskID); err != nil {
		return nil, err
	}

	return c.readResult(ctx, task.TaskID)
}

func (c *Client) awaitTask(ctx context.Context, taskID string) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-time.After(c.interval):
		}

		req, _ := http.NewRequestWithContext(ctx, "GET", strings.TrimRight(c.url, "/")+"/v1/status/poll/"+taskID, nil)

		resp, err := c.client.Do(req)

		if err != nil {
			return backend.TransientError(Name, err)
		}

		var task TaskResult
		err = json.NewDecoder(resp.Body).Decode(&task)
		resp.Body.Close()

		if err != nil {
			return err
		}

		switch task.TaskStatus {
		case TaskStatusStarted, TaskStatusPending:
			continue

		case TaskStatusSuccess:
			return nil

		default:
			return backend.NewError(backend.ErrorPermanent, "task %s", task.TaskStatus)
		}
	}
}

func (c *Client) readResult(ctx context.Context, taskID string) (*backend.Result, error) {
	req, _ := http.NewRequestWithContext(ctx, "GET", strings.TrimRight(c.url, "/")+"/v1/result/"+taskID, nil)

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, backend.TransientError(Name, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, backend.ErrorFromResponse(Name, resp)
	}

	var task TaskResult

	if err := json.NewDecoder(resp.Body).Decode(&task); err != nil {
		return nil, err
	}

	if task.Document == nil {
		return nil, backend.NewError(backend.ErrorPermanent, "no document in task result")
	}

	content := task.Document.Markdown

	if content == "" {
		content = task.Document.Text
	}

	if content == "" {
		return nil, backend.NewError(backend.ErrorPermanent, "no content")
	}

	result := &backend.Result{
		Metadata: map[string]any{
			"filename": task.Document.Filename,
		},
	}

	// docling-serve emits form feeds between pages in markdown output
	for i, page := range strings.Split(content, "\f") {
		result.Pages = append(result.Pages, backend.Page{
			Number: i + 1,

			Text: page,
		})
	}

	for _, e := range task.Errors {
		result.Warnings = append(result.Warnings, e)
	}

	return result, nil
}
