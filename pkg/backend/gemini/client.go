package gemini

import (
	"context"
	"errors"

	"github.com/adrianliechti/docsmith/pkg/backend"

	"google.golang.org/genai"
)

var _ backend.Provider = (*Client)(nil)

type Client struct {
	*Config
}

func New(options ...Option) (*Client, error) {
	cfg := &Config{
		model: "gemini-2.0-flash",
	}

	for _, option := range options {
		option(cfg)
	}

	return &Client{
		Config: cfg,
	}, nil
}

func (c *Client) Convert(ctx context.Context, file backend.File, options *backend.ConvertOptions) (*backend.Result, error) {
	if options == nil {
		options = new(backend.ConvertOptions)
	}

	model := c.model

	if options.Model != "" {
		model = options.Model
	}

	client, err := c.newClient(ctx)

	if err != nil {
		return nil, err
	}

	contents := []*genai.Content{
		{
			Parts: []*genai.Part{
				{
					InlineData: &genai.Blob{
						MIMEType: "application/pdf",

						Data: file.Content,
					},
				},
				{
					Text: backend.MarkdownPrompt,
				},
			},
		},
	}

	response, err := client.Models.GenerateContent(ctx, model, contents, nil)

	if err != nil {
		return nil, convertError(err)
	}

	result := &backend.Result{
		Pages: []backend.Page{
			{
				Number: 1,

				Text: response.Text(),
			},
		},

		Metadata: map[string]any{
			"model": model,
		},
	}

	if usage := response.UsageMetadata; usage != nil {
		result.Metadata["input_tokens"] = usage.PromptTokenCount
		result.Metadata["output_tokens"] = usage.CandidatesTokenCount
	}

	return result, nil
}

func convertError(err error) error {
	var apierr genai.APIError

	if errors.As(err, &apierr) {
		return backend.ErrorFromStatus(Name, apierr.Code, err)
	}

	return backend.TransientError(Name, err)
}
