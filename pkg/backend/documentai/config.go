package documentai

import (
	"net/http"

	"github.com/adrianliechti/docsmith/pkg/backend"

	"golang.org/x/oauth2"
)

const Name = "documentai"

type ProcessRequest struct {
	RawDocument RawDocument `json:"rawDocument"`
}

type RawDocument struct {
	Content  string `json:"content"`
	MimeType string `json:"mimeType"`
}

type ProcessResponse struct {
	Document Document `json:"document"`
}

type Document struct {
	Text string `json:"text"`

	Pages []Page `json:"pages"`
}

type Page struct {
	PageNumber int `json:"pageNumber"`

	Layout Layout `json:"layout"`
}

type Layout struct {
	TextAnchor TextAnchor `json:"textAnchor"`
}

type TextAnchor struct {
	TextSegments []TextSegment `json:"textSegments"`
}

// Segment indexes arrive as decimal strings, the REST encoding of int64.
type TextSegment struct {
	StartIndex string `json:"startIndex"`
	EndIndex   string `json:"endIndex"`
}

func Descriptor() backend.Descriptor {
	return backend.Descriptor{
		Name:        Name,
		Description: "Google Document AI, commercial OCR processing",

		Category: backend.CategoryCommercialCloud,

		Capabilities: []backend.Capability{
			backend.CapabilityOCR,
			backend.CapabilityMultiPage,
		},

		CostPerPage: 0.0015,

		// Synchronous processing limits.
		MaxPages:    15,
		MaxFileSize: 20 << 20,
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

func WithProject(project string) Option {
	return func(c *Client) {
		c.project = project
	}
}

func WithLocation(location string) Option {
	return func(c *Client) {
		if location != "" {
			c.location = location
		}
	}
}

func WithProcessor(processor string) Option {
	return func(c *Client) {
		c.processor = processor
	}
}

func WithTokenSource(tokens oauth2.TokenSource) Option {
	return func(c *Client) {
		c.tokens = tokens
	}
}
