package gemini

import (
	"context"
	"net/http"

	"github.com/adrianliechti/docsmith/pkg/backend"

	"google.golang.org/genai"
)

const Name = "gemini"

func Descriptor() backend.Descriptor {
	return backend.Descriptor{
		Name:        Name,
		Description: "Google Gemini, frontier multimodal PDF parsing",

		Category: backend.CategoryFrontierLLM,
		Model:    "gemini-2.0-flash",

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

type Config struct {
	token string
	model string

	client *http.Client
}

type Option func(*Config)

func WithClient(client *http.Client) Option {
	return func(c *Config) {
		c.client = client
	}
}

func WithToken(token string) Option {
	return func(c *Config) {
		c.token = token
	}
}

func WithModel(model string) Option {
	return func(c *Config) {
		if model != "" {
			c.model = model
		}
	}
}

func (c *Config) newClient(ctx context.Context) (*genai.Client, error) {
	config := &genai.ClientConfig{
		APIKey:  c.token,
		Backend: genai.BackendGeminiAPI,

		HTTPClient: c.client,
	}

	return genai.NewClient(ctx, config)
}
