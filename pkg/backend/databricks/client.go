package databricks

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
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

	warehouse string

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

	if c.url == "" || c.warehouse == "" {
		return nil, backend.NewError(backend.ErrorUnavailable, "databricks workspace not configured")
	}

	statement := StatementRequest{
		WarehouseID: c.warehouse,

		Statement: "SELECT ai_parse_document(:doc, 'base64') AS result",

		Parameters: []StatementParameter{
			{
				Name:  "doc",
				Value: base64.StdEncoding.EncodeToString(file.Content),
				Type:  "STRING",
			},
		},

		WaitTimeout:   "30s",
		OnWaitTimeout: "CONTINUE",
	}

	data, _ := json.Marshal(statement)

	req, _ := http.NewRequestWithContext(ctx, "POST", strings.TrimRight(c.url, "/")+"/api/2.0/sql/statements", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, backend.TransientError(Name, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, backend.ErrorFromResponse(Name, resp)
	}

	var response StatementResponse

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, err
	}

	final, err := c.awaitStatement(ctx, &response)

	if err != nil {
		return nil, err
	}

	return convertResult(final)
}

func (c *Client) awaitStatement(ctx context.Context, response *StatementResponse) (*StatementResponse, error) {
	for {
		switch response.Status.State {
		case StatementStateSucceeded:
			return response, nil

		case StatementStatePending, StatementStateRunning:

		default:
			msg := "statement " + strings.ToLower(string(response.Status.State))

			if response.Status.Error != nil {
				msg = response.Status.Error.Message
			}

			return nil, backend.NewError(backend.ErrorPermanent, "%s", msg)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case <-time.After(c.interval):
		}

		req, _ := http.NewRequestWithContext(ctx, "GET", strings.TrimRight(c.url, "/")+"/api/2.0/sql/statements/"+response.StatementID, nil)
		req.Header.Set("Authorization", "Bearer "+c.token)

		resp, err := c.client.Do(req)

		if err != nil {
			return nil, backend.TransientError(Name, err)
		}

		if resp.StatusCode != http.StatusOK {
			err := backend.ErrorFromResponse(Name, resp)
			resp.Body.Close()

			return nil, err
		}

		var next StatementResponse
		err = json.NewDecoder(resp.Body).Decode(&next)
		resp.Body.Close()

		if err != nil {
			return nil, err
		}

		response = &next
	}
}

func convertResult(response *StatementResponse) (*backend.Result, error) {
	if response.Result == nil || len(response.Result.DataArray) == 0 || len(response.Result.DataArray[0]) == 0 {
		return &backend.Result{}, nil
	}

	payload := response.Result.DataArray[0][0]

	var parsed ParseDocumentResult

	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		// Not the structured shape; treat the payload as plain text.
		return &backend.Result{
			Pages: []backend.Page{
				{
					Number: 1,

					Text: payload,
				},
			},
		}, nil
	}

	result := &backend.Result{}

	var pages []backend.Page

	for _, element := range parsed.Document.Elements {
		if element.Text == "" {
			continue
		}

		number := element.PageID + 1

		if len(pages) > 0 && pages[len(pages)-1].Number == number {
			pages[len(pages)-1].Text += "\n\n" + element.Text
			continue
		}

		pages = append(pages, backend.Page{
			Number: number,

			Text: element.Text,
		})
	}

	result.Pages = pages

	for _, warning := range parsed.Metadata.Warnings {
		result.Warnings = append(result.Warnings, warning.Message)
	}

	return result, nil
}
