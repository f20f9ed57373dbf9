package kreuzberg

import (
	"net/http"

	"github.com/adrianliechti/docsmith/pkg/backend"
)

const Name = "kreuzberg"

func Descriptor() backend.Descriptor {
	return backend.Descriptor{
		Name:        Name,
		Description: "Kreuzberg, fast Rust-based extraction with OCR",

		Category: backend.CategoryLocalMedium,

		Capabilities: []backend.Capability{
			backend.CapabilityOCR,
			backend.CapabilityMultiPage,
		},
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
		c.url = url
	}
}

func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}
