package openai

import (
	"context"
	"encoding/base64"
	"errors"

	"github.com/adrianliechti/docsmith/pkg/backend"

	"github.com/openai/openai-go/v3"
)

var _ backend.Provider = (*Client)(nil)

type Client struct {
	*Config

	completions openai.ChatCompletionService
}

func New(options ...Option) (*Client, error) {
	cfg := &Config{
		model: "gpt-4o-mini",
	}

	for _, option := range options {
		option(cfg)
	}

	return &Client{
		Config: cfg,

		completions: openai.NewChatCompletionService(cfg.Options()...),
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

	name := file.Name

	if name == "" {
		name = "document.pdf"
	}

	content := base64.StdEncoding.EncodeToString(file.Content)

	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.FileContentPart(openai.ChatCompletionContentPartFileFileParam{
			FileData: openai.String("data:application/pdf;base64," + content),
			Filename: openai.String(name),
		}),
		openai.TextContentPart(backend.MarkdownPrompt),
	}

	completion, err := c.completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),

		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(parts),
		},
	})

	if err != nil {
		return nil, convertError(err)
	}

	if len(completion.Choices) == 0 {
		return nil, backend.NewError(backend.ErrorPermanent, "no completion choices")
	}

	result := &backend.Result{
		Pages: []backend.Page{
			{
				Number: 1,

				Text: completion.Choices[0].Message.Content,
			},
		},

		Metadata: map[string]any{
			"model": completion.Model,

			"input_tokens":  completion.Usage.PromptTokens,
			"output_tokens": completion.Usage.CompletionTokens,
		},
	}

	return result, nil
}

func convertError(err error) error {
	var apierr *openai.Error

	if errors.As(err, &apierr) {
		return backend.ErrorFromStatus(Name, apierr.StatusCode, err)
	}

	return backend.TransientError(Name, err)
}
