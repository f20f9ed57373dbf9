package anthropic

import (
	"net/http"
	"strings"

	"github.com/adrianliechti/docsmith/pkg/backend"

	"github.com/anthropics/anthropic-sdk-go/option"
)

const Name = "anthropic"

func Descriptor() backend.Descriptor {
	return backend.Descriptor{
		Name:        Name,
		Description: "Anthropic Claude, frontier multimodal PDF parsing",

		Category: backend.CategoryFrontierLLM,
		Model:    "claude-3-5-haiku-latest",

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
	url := cfg.url

	if url == "" {
		url = "https://api.anthropic.com/"
	}

	url = strings.TrimRight(url, "/") + "/"

	options := []option.RequestOption{
		option.WithBaseURL(url),
	}

	if cfg.client != nil {
		options = append(options, option.WithHTTPClient(cfg.client))
	}

	if cfg.token != "" {
		options = append(options, option.WithAPIKey(cfg.token))
	}

	return options
}
