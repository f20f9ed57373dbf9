package textractocr

import (
	"github.com/adrianliechti/docsmith/pkg/backend"
)

const Name = "textract"

func Descriptor() backend.Descriptor {
	return backend.Descriptor{
		Name:        Name,
		Description: "AWS Textract, commercial OCR via DetectDocumentText",

		Category: backend.CategoryCommercialCloud,

		Capabilities: []backend.Capability{
			backend.CapabilityOCR,
		},

		CostPerPage: 0.0015,

		// The synchronous DetectDocumentText API takes single-page
		// documents only; multi-page requires the async S3 flow.
		MaxPages:    1,
		MaxFileSize: 10 << 20,
	}
}

type Option func(*Client)

func WithRegion(region string) Option {
	return func(c *Client) {
		c.region = region
	}
}
