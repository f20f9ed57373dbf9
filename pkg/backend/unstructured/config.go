package unstructured

import (
	"net/http"

	"github.com/adrianliechti/docsmith/pkg/backend"
)

const Name = "unstructured"

type Strategy string

const (
	StrategyFast  Strategy = "fast"
	StrategyHiRes Strategy = "hi_res"
	StrategyOCR   Strategy = "ocr_only"
)

type Element struct {
	Type string `json:"type"`
	Text string `json:"text"`

	Metadata ElementMetadata `json:"metadata"`
}

type ElementMetadata struct {
	PageNumber int `json:"page_number"`
}

func Descriptor() backend.Descriptor {
	return backend.Descriptor{
		Name:        Name,
		Description: "Unstructured, versatile document partitioning",

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

func WithStrategy(strategy Strategy) Option {
	return func(c *Client) {
		if strategy != "" {
			c.strategy = strategy
		}
	}
}
