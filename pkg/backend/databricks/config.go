package databricks

import (
	"net/http"
	"time"

	"github.com/adrianliechti/docsmith/pkg/backend"
)

const Name = "databricks"

func Descriptor() backend.Descriptor {
	return backend.Descriptor{
		Name:        Name,
		Description: "Databricks ai_parse_document via SQL warehouse",

		Category: backend.CategoryCommercialCloud,

		Capabilities: []backend.Capability{
			backend.CapabilityOCR,
			backend.CapabilityTables,
			backend.CapabilityMultiPage,
			backend.CapabilityAsync,
		},

		CostPerPage: 0.003,
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

func WithWarehouse(warehouse string) Option {
	return func(c *Client) {
		c.warehouse = warehouse
	}
}

func WithInterval(interval time.Duration) Option {
	return func(c *Client) {
		if interval > 0 {
			c.interval = interval
		}
	}
}
