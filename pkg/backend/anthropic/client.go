package anthropic

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/adrianliechti/docsmith/pkg/backend"

	"github.com/anthropics/anthropic-sdk-go"
)

var _ backend.Provider = (*Client)(nil)

type Client struct {
	*Config

	messages anthropic.MessageService
}

func New(options ...Option) (*Client, error) {
	cfg := &Config{
		model: "claude-3-5-haiku-latest",
	}

	for _, option := range options {
		option(cfg)
	}

	return &Client{
		Config: cfg,

		messages: anthropic.NewMessageService(cfg.Options()...),
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

	content := base64.StdEncoding.EncodeToString(file.Content)

	blocks := []anthropic.ContentBlockParamUnion{
		anthropic.NewDocumentBlock(anthropic.Base64PDFSourceParam{
			Data: content,
		}),
		anthropic.NewTextBlock(backend.MarkdownPrompt),
	}

	message, err := c.messages.New(ctx, anthropic.MessageNewParams{
		Model: anthropic.Model(model),

		MaxTokens: 8192,

		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(blocks...),
		},
	})

	if err != nil {
		return nil, convertError(err)
	}

	var builder strings.Builder

	for _, block := range message.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			builder.WriteString(variant.Text)
		}
	}

	result := &backend.Result{
		Pages: []backend.Page{
			{
				Number: 1,

				Text: builder.String(),
			},
		},

		Metadata: map[string]any{
			"model": string(message.Model),

			"input_tokens":  message.Usage.InputTokens,
			"output_tokens": message.Usage.OutputTokens,
		},
	}

	return result, nil
}

func convertError(err error) error {
	var apierr *anthropic.Error

	if errors.As(err, &apierr) {
		return backend.ErrorFromStatus(Name, apierr.StatusCode, err)
	}

	return backend.TransientError(Name, err)
}
