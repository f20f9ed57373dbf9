package llamaparse

import (
	"net/http"
	"time"

	"github.com/adrianliechti/docsmith/pkg/backend"
)

const Name = "llamaparse"

type JobStatus string

const (
	JobStatusPending JobStatus = "PENDING"
	JobStatusSuccess JobStatus = "SUCCESS"
	JobStatusError   JobStatus = "ERROR"
)

type Job struct {
	ID string `json:"id"`

	Status JobStatus `json:"status"`
}

type JobResult struct {
	Pages []JobPage `json:"pages"`

	Metadata JobMetadata `json:"job_metadata"`
}

type JobPage struct {
	Page int `json:"page"`

	Markdown string `json:"md"`
	Text     string `json:"text"`
}

type JobMetadata struct {
	Credits float64 `json:"job_credits_usage"`
	Pages   int     `json:"job_pages"`
}

func Descriptor() backend.Descriptor {
	return backend.Descriptor{
		Name:        Name,
		Description: "LlamaParse, GenAI-native document parsing",

		Category: backend.CategoryCommercialCloud,
		Model:    "cost_effective",

		Capabilities: []backend.Capability{
			backend.CapabilityOCR,
			backend.CapabilityTables,
			backend.CapabilityMultiPage,
			backend.CapabilityAsync,
		},

		CostPerPage: 0.003,

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

func WithMode(mode string) Option {
	return func(c *Client) {
		if mode != "" {
			c.mode = mode
		}
	}
}

func WithInterval(interval time.Duration) Option {
	return func(c *Client) {
		if interval > 0 {
			c.interval = interval
		}
	}
}
