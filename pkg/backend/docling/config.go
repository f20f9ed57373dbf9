package docling

import (
	"net/http"
	"time"

	"github.com/adrianliechti/docsmith/pkg/backend"
)

const Name = "docling"

func Descriptor() backend.Descriptor {
	return backend.Descriptor{
		Name:        Name,
		Description: "IBM Docling, structure-preserving document understanding",

		Category: backend.CategoryLocalHeavy,

		Capabilities: []backend.Capability{
			backend.CapabilityOCR,
			backend.CapabilityTables,
			backend.CapabilityMultiPage,
			backend.CapabilityAsync,
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

func WithInterval(interval time.Duration) Option {
	return func(c *Client) {
		if interval > 0 {
			c.interval = interval
		}
	}
}
