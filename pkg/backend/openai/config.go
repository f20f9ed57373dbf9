package openai

import (
	"net/http"
	"strings"

	"github.com/adrianliechti/docsmith/pkg/backend"

	"github.com/openai/openai-go/v3/option"
)

const Name = "openai"

func Descriptor() backend.Descriptor {
	return backend.Descriptor{
		Name:        Name,
		Description: "OpenAI GPT, frontier multimodal PDF parsing",

		Category: backend.CategoryFrontierLLM,
		Model:    "gpt-4o-mini",

		Capabilities: []backend.Capability{
			backend.CapabilityOCR,
			backend.CapabilityTables,
			backend.CapabilityMultiPage,
		},

		CostPerPage: 0.003,

		MaxPages:    100,
		MaxFileSize: 32 << 20,
	}
}

type Config struct {
	url string

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

func WithURL(url string) Option {
	return func(c *Config) {
		c.url = url
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

func (cfg *Config) Options() []option.RequestOption {
	var options []option.RequestOption

	if cfg.url != "" {
		options = append(options, option.WithBaseURL(strings.TrimRight(cfg.url, "/")+"/"))
	}

	if cfg.client != nil {
		options = append(options, option.WithHTTPClient(cfg.client))
	}

	if cfg.token != "" {
		options = append(options, option.WithAPIKey(cfg.token))
	}

	return options
}
