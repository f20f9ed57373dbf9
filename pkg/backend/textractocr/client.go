package textractocr

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/adrianliechti/docsmith/pkg/backend"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
	"github.com/aws/smithy-go"
)

var _ backend.Provider = (*Client)(nil)

type Client struct {
	region string

	once   sync.Once
	client *textract.Client
	err    error
}

func New(options ...Option) (*Client, error) {
	c := &Client{}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

func (c *Client) load(ctx context.Context) (*textract.Client, error) {
	c.once.Do(func() {
		var options []func(*awsconfig.LoadOptions) error

		if c.region != "" {
			options = append(options, awsconfig.WithRegion(c.region))
		}

		cfg, err := awsconfig.LoadDefaultConfig(ctx, options...)

		if err != nil {
			c.err = err
			return
		}

		c.client = textract.NewFromConfig(cfg)
	})

	return c.client, c.err
}

func (c *Client) Convert(ctx context.Context, file backend.File, options *backend.ConvertOptions) (*backend.Result, error) {
	if options == nil {
		options = new(backend.ConvertOptions)
	}

	client, err := c.load(ctx)

	if err != nil {
		return nil, backend.WrapError(Name, backend.ErrorAuthentication, err)
	}

	output, err := client.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
		Document: &types.Document{
			Bytes: file.Content,
		},
	})

	if err != nil {
		return nil, convertError(err)
	}

	var lines []string

	for _, block := range output.Blocks {
		if block.BlockType != types.BlockTypeLine {
			continue
		}

		lines = append(lines, aws.ToString(block.Text))
	}

	result := &backend.Result{
		Pages: []backend.Page{
			{
				Number: 1,

				Text: strings.Join(lines, "\n"),
			},
		},
	}

	if meta := output.DocumentMetadata; meta != nil && meta.Pages != nil {
		result.Metadata = map[string]any{
			"pages": aws.ToInt32(meta.Pages),
		}
	}

	return result, nil
}

func convertError(err error) error {
	var apierr smithy.APIError

	if errors.As(err, &apierr) {
		switch apierr.ErrorCode() {
		case "AccessDeniedException", "UnrecognizedClientException", "MissingAuthenticationToken":
			return backend.WrapError(Name, backend.ErrorAuthentication, err)

		case "ThrottlingException", "ProvisionedThroughputExceededException", "LimitExceededException":
			return backend.WrapError(Name, backend.ErrorQuota, err)

		case "DocumentTooLargeException":
			return backend.WrapError(Name, backend.ErrorTooLarge, err)

		case "UnsupportedDocumentException", "BadDocumentException":
			return backend.WrapError(Name, backend.ErrorUnsupported, err)

		case "InternalServerError":
			return backend.WrapError(Name, backend.ErrorTransient, err)

		default:
			return backend.WrapError(Name, backend.ErrorPermanent, err)
		}
	}

	return backend.TransientError(Name, err)
}
