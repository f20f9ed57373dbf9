package tika

import (
	"net/http"

	"github.com/adrianliechti/docsmith/pkg/backend"
)

const Name = "tika"

func Descriptor() backend.Descriptor {
	return backend.Descriptor{
		Name:        Name,
		Description: "Apache Tika, mature general-purpose text extraction",

		Category: backend.CategoryLocalMedium,

		Capabilities: []backend.Capability{
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
