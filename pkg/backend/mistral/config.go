package mistral

import (
	"net/http"

	"github.com/adrianliechti/docsmith/pkg/backend"
)

const Name = "mistral"

func Descriptor() backend.Descriptor {
	return backend.Descriptor{
		Name:        Name,
		Description: "Mistral OCR, commercial document understanding API",

		Category: backend.CategoryCommercialCloud,
		Model:    "mistral-ocr-latest",

		Capabilities: []backend.Capability{
			backend.CapabilityOCR,
			backend.CapabilityTables,
			backend.CapabilityMultiPage,
		},

		CostPerPage: 0.001,

		MaxPages:    1000,
		MaxFileSize: 50 << 20,
	}
}

type Option func(*Client)

func WithClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

func WithURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.url = url
		}
	}
}

func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}
