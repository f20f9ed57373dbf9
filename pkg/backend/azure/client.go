package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
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

		interval: 5 * time.Second,
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
		return nil, backend.NewError(backend.ErrorUnavailable, "azure endpoint not configured")
	}

	u, _ := url.Parse(strings.TrimRight(c.url, "/") + "/documentintelligence/documentModels/prebuilt-layout:analyze")

	query := u.Query()
	query.Set("api-version", "2024-11-30")
	query.Set("outputContentFormat", "markdown")

	u.RawQuery = query.Encode()

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(file.Content))
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.token)

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, backend.TransientError(Name, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		return nil, backend.ErrorFromResponse(Name, resp)
	}

	operationURL := resp.Header.Get("Operation-Location")

	if operationURL == "" {
		return nil, errors.New("missing operation location")
	}

	operation, err := c.awaitOperation(ctx, operationURL)

	if err != nil {
		return nil, err
	}

	return convertResult(operation), nil
}

func (c *Client) awaitOperation(ctx context.Context, operationURL string) (*AnalyzeOperation, error) {
	for {
		req, _ := http.NewRequestWithContext(ctx, "GET", operationURL, nil)
		req.Header.Set("Ocp-Apim-Subscription-Key", c.token)

		resp, err := c.client.Do(req)

		if err != nil {
			return nil, backend.TransientError(Name, err)
		}

		var operation AnalyzeOperation

		if resp.StatusCode != http.StatusOK {
			err := backend.ErrorFromResponse(Name, resp)
			resp.Body.Close()

			return nil, err
		}

		if err := json.NewDecoder(resp.Body).Decode(&operation); err != nil {
			resp.Body.Close()
			return nil, err
		}

		resp.Body.Close()

		if operation.Status == OperationStatusRunning || operation.Status == OperationStatusNotStarted {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()

			case <-time.After(c.interval):
			}

			continue
		}

		if operation.Status != OperationStatusSucceeded {
			return nil, backend.NewError(backend.ErrorPermanent, "operation %s", operation.Status)
		}

		return &operation, nil
	}
}

func convertResult(operation *AnalyzeOperation) *backend.Result {
	result := &backend.Result{
		Metadata: map[string]any{
			"model": operation.Result.ModelID,
		},
	}

	// The analyze result is one markdown string with explicit page break
	// comments; page metadata carries the boundaries.
	content := operation.Result.Content

	parts := strings.Split(content, "<!-- PageBreak -->")

	for i, part := range parts {
		result.Pages = append(result.Pages, backend.Page{
			Number: i + 1,

			Text: strings.TrimSpace(part),
		})
	}

	for _, w := range operation.Result.Warnings {
		result.Warnings = append(result.Warnings, w.Message)
	}

	return result
}
