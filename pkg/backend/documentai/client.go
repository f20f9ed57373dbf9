package documentai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/adrianliechti/docsmith/pkg/backend"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var _ backend.Provider = (*Client)(nil)

type Client struct {
	client *http.Client

	url string

	project   string
	location  string
	processor string

	once   sync.Once
	tokens oauth2.TokenSource
	err    error
}

func New(options ...Option) (*Client, error) {
	c := &Client{
		client: http.DefaultClient,

		location: "us",
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

func (c *Client) load(ctx context.Context) (oauth2.TokenSource, error) {
	c.once.Do(func() {
		if c.tokens != nil {
			return
		}

		c.tokens, c.err = google.DefaultTokenSource(ctx, "https://www.googleapis.com/auth/cloud-platform")
	})

	return c.tokens, c.err
}

func (c *Client) Convert(ctx context.Context, file backend.File, options *backend.ConvertOptions) (*backend.Result, error) {
	if options == nil {
		options = new(backend.ConvertOptions)
	}

	if c.project == "" || c.processor == "" {
		return nil, backend.NewError(backend.ErrorUnavailable, "documentai project or processor not configured")
	}

	tokens, err := c.load(ctx)

	if err != nil {
		return nil, backend.WrapError(Name, backend.ErrorAuthentication, err)
	}

	token, err := tokens.Token()

	if err != nil {
		return nil, backend.WrapError(Name, backend.ErrorAuthentication, err)
	}

	contentType := file.ContentType

	if contentType == "" {
		contentType = "application/pdf"
	}

	body, _ := json.Marshal(ProcessRequest{
		RawDocument: RawDocument{
			Content:  base64.StdEncoding.EncodeToString(file.Content),
			MimeType: contentType,
		},
	})

	url := c.url

	if url == "" {
		url = "https://" + c.location + "-documentai.googleapis.com"
	}

	name := fmt.Sprintf("projects/%s/locations/%s/processors/%s", c.project, c.location, c.processor)

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(url, "/")+"/v1/"+name+":process", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, backend.TransientError(Name, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, backend.ErrorFromResponse(Name, resp)
	}

	var response ProcessResponse

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, err
	}

	return convertDocument(response.Document), nil
}

func convertDocument(document Document) *backend.Result {
	result := new(backend.Result)

	for i, page := range document.Pages {
		number := page.PageNumber

		if number == 0 {
			number = i + 1
		}

		result.Pages = append(result.Pages, backend.Page{
			Number: number,

			Text: anchorText(document.Text, page.Layout.TextAnchor),
		})
	}

	if len(result.Pages) == 0 {
		result.Pages = []backend.Page{
			{
				Number: 1,

				Text: document.Text,
			},
		}
	}

	return result
}

// anchorText resolves a text anchor against the document's full text. Byte
// offsets are clamped; a missing start index means offset zero.
func anchorText(text string, anchor TextAnchor) string {
	var parts []string

	for _, segment := range anchor.TextSegments {
		start, _ := strconv.Atoi(segment.StartIndex)
		end, _ := strconv.Atoi(segment.EndIndex)

		if end == 0 || end > len(text) {
			end = len(text)
		}

		if start < 0 || start > end {
			continue
		}

		parts = append(parts, text[start:end])
	}

	return strings.TrimSpace(strings.Join(parts, ""))
}
