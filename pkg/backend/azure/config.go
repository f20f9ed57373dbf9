package azure

import (
	"net/http"
	"time"

	"github.com/adrianliechti/docsmith/pkg/backend"
)

const Name = "azure"

func Descriptor() backend.Descriptor {
	return backend.Descriptor{
		Name:        Name,
		Description: "Azure Document Intelligence, high-accuracy layout OCR",

		Category: backend.CategoryCommercialCloud,
		Model:    "prebuilt-layout",

		Capabilities: []backend.Capability{
			backend.CapabilityOCR,
			backend.CapabilityTables,
			backend.CapabilityMultiPage,
			backend.CapabilityAsync,
		},

		CostPerPage: 0.01,

		MaxFileSize: 500 << 20,
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
