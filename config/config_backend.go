package config

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/adrianliechti/docsmith/pkg/backend"
	"github.com/adrianliechti/docsmith/pkg/backend/anthropic"
	"github.com/adrianliechti/docsmith/pkg/backend/azure"
	"github.com/adrianliechti/docsmith/pkg/backend/databricks"
	"github.com/adrianliechti/docsmith/pkg/backend/docling"
	"github.com/adrianliechti/docsmith/pkg/backend/documentai"
	"github.com/adrianliechti/docsmith/pkg/backend/gemini"
	"github.com/adrianliechti/docsmith/pkg/backend/kreuzberg"
	"github.com/adrianliechti/docsmith/pkg/backend/llamaparse"
	"github.com/adrianliechti/docsmith/pkg/backend/mistral"
	"github.com/adrianliechti/docsmith/pkg/backend/openai"
	"github.com/adrianliechti/docsmith/pkg/backend/plaintext"
	"github.com/adrianliechti/docsmith/pkg/backend/registry"
	"github.com/adrianliechti/docsmith/pkg/backend/textractocr"
	"github.com/adrianliechti/docsmith/pkg/backend/tika"
	"github.com/adrianliechti/docsmith/pkg/backend/unstructured"
	"github.com/adrianliechti/docsmith/pkg/limiter"
	"github.com/adrianliechti/docsmith/pkg/otel"

	"golang.org/x/time/rate"
)

type backendConfig struct {
	Type string `yaml:"type"`

	URL   string `yaml:"url"`
	Token string `yaml:"token"`
	Model string `yaml:"model"`

	Region    string `yaml:"region"`
	Warehouse string `yaml:"warehouse"`

	Project   string `yaml:"project"`
	Location  string `yaml:"location"`
	Processor string `yaml:"processor"`

	Limit *int `yaml:"limit"`
}

// defaultOrder is the declaration order used when no config file names the
// backends. It mirrors the auto-selection preference: structure-preserving
// local backends first, then paid APIs, then the plain-text fallback.
var defaultOrder = []string{
	docling.Name,
	kreuzberg.Name,
	tika.Name,
	unstructured.Name,
	azure.Name,
	mistral.Name,
	textractocr.Name,
	databricks.Name,
	llamaparse.Name,
	documentai.Name,
	anthropic.Name,
	openai.Name,
	gemini.Name,
	plaintext.Name,
}

func (cfg *Config) registerBackends(f *configFile) error {
	if f.Backends.Kind == 0 {
		return cfg.registerDefaults()
	}

	var configs map[string]backendConfig

	if err := f.Backends.Decode(&configs); err != nil {
		return err
	}

	for _, node := range f.Backends.Content {
		id := node.Value

		config, ok := configs[id]

		if !ok {
			continue
		}

		if config.Type == "" {
			config.Type = id
		}

		descriptor, provider, probe, err := createBackend(config)

		if err != nil {
			return err
		}

		descriptor.Name = id

		if config.Model != "" {
			descriptor.Model = config.Model
		}

		provider = wrapProvider(id, provider, config.Limit)

		if err := cfg.Registry.Register(descriptor, provider, probe); err != nil {
			return err
		}
	}

	return nil
}

func (cfg *Config) registerDefaults() error {
	for _, name := range defaultOrder {
		config := backendConfig{
			Type: name,

			URL:       envBackendURL(name),
			Token:     envBackendToken(name),
			Region:    os.Getenv("AWS_REGION"),
			Warehouse: os.Getenv("DATABRICKS_WAREHOUSE_ID"),
			Project:   os.Getenv("GOOGLE_CLOUD_PROJECT"),
			Location:  os.Getenv("GOOGLE_CLOUD_LOCATION"),
			Processor: os.Getenv("GOOGLE_DOCUMENT_AI_PROCESSOR_ID"),
		}

		descriptor, provider, probe, err := createBackend(config)

		if err != nil {
			return err
		}

		provider = wrapProvider(name, provider, nil)

		if err := cfg.Registry.Register(descriptor, provider, probe); err != nil {
			return err
		}
	}

	return nil
}

func createBackend(config backendConfig) (backend.Descriptor, backend.Provider, registry.Probe, error) {
	switch strings.ToLower(config.Type) {
	case docling.Name:
		c, err := docling.New(docling.WithURL(config.URL), docling.WithToken(config.Token))
		return docling.Descriptor(), c, requireValue("docling url", config.URL == "", "DOCLING_URL"), err

	case kreuzberg.Name:
		c, err := kreuzberg.New(kreuzberg.WithURL(config.URL), kreuzberg.WithToken(config.Token))
		return kreuzberg.Descriptor(), c, requireValue("kreuzberg url", config.URL == "", "KREUZBERG_URL"), err

	case tika.Name:
		c, err := tika.New(tika.WithURL(config.URL))
		return tika.Descriptor(), c, requireValue("tika url", config.URL == "", "TIKA_URL"), err

	case unstructured.Name:
		c, err := unstructured.New(unstructured.WithURL(config.URL), unstructured.WithToken(config.Token))
		return unstructured.Descriptor(), c, requireValue("unstructured url", config.URL == "", "UNSTRUCTURED_URL"), err

	case azure.Name:
		c, err := azure.New(azure.WithURL(config.URL), azure.WithToken(config.Token))
		return azure.Descriptor(), c, requireValue("azure credentials", config.URL == "" || config.Token == "", "AZURE_DOCUMENT_URL", "AZURE_DOCUMENT_KEY"), err

	case mistral.Name:
		c, err := mistral.New(mistral.WithURL(config.URL), mistral.WithToken(config.Token), mistral.WithModel(config.Model))
		return mistral.Descriptor(), c, requireValue("mistral api key", config.Token == "", "MISTRAL_API_KEY"), err

	case textractocr.Name:
		c, err := textractocr.New(textractocr.WithRegion(config.Region))
		return textractocr.Descriptor(), c, probeTextract, err

	case databricks.Name:
		c, err := databricks.New(databricks.WithURL(config.URL), databricks.WithToken(config.Token), databricks.WithWarehouse(config.Warehouse))
		return databricks.Descriptor(), c, requireValue("databricks workspace", config.URL == "" || config.Token == "" || config.Warehouse == "", "DATABRICKS_HOST", "DATABRICKS_TOKEN", "DATABRICKS_WAREHOUSE_ID"), err

	case llamaparse.Name:
		c, err := llamaparse.New(llamaparse.WithURL(config.URL), llamaparse.WithToken(config.Token), llamaparse.WithMode(config.Model))
		return llamaparse.Descriptor(), c, requireValue("llamaparse api key", config.Token == "", "LLAMA_CLOUD_API_KEY"), err

	case documentai.Name:
		c, err := documentai.New(documentai.WithProject(config.Project), documentai.WithLocation(config.Location), documentai.WithProcessor(config.Processor))
		return documentai.Descriptor(), c, requireValue("documentai processor", config.Project == "" || config.Processor == "", "GOOGLE_APPLICATION_CREDENTIALS", "GOOGLE_CLOUD_PROJECT", "GOOGLE_DOCUMENT_AI_PROCESSOR_ID"), err

	case anthropic.Name:
		c, err := anthropic.New(anthropic.WithURL(config.URL), anthropic.WithToken(config.Token), anthropic.WithModel(config.Model))
		return anthropic.Descriptor(), c, requireValue("anthropic api key", config.Token == "", "ANTHROPIC_API_KEY"), err

	case openai.Name:
		c, err := openai.New(openai.WithURL(config.URL), openai.WithToken(config.Token), openai.WithModel(config.Model))
		return openai.Descriptor(), c, requireValue("openai api key", config.Token == "", "OPENAI_API_KEY"), err

	case gemini.Name:
		c, err := gemini.New(gemini.WithToken(config.Token), gemini.WithModel(config.Model))
		return gemini.Descriptor(), c, requireAnyValue("gemini api key", config.Token == "", "GOOGLE_API_KEY", "GEMINI_API_KEY"), err

	case plaintext.Name:
		c, err := plaintext.New()
		return plaintext.Descriptor(), c, nil, err

	default:
		return backend.Descriptor{}, nil, nil, errors.New("invalid backend type: " + config.Type)
	}
}

func wrapProvider(name string, p backend.Provider, limit *int) backend.Provider {
	if limit != nil && *limit > 0 {
		p = limiter.New(rate.NewLimiter(rate.Limit(*limit), *limit), p)
	}

	if _, ok := p.(otel.Provider); !ok {
		p = otel.New(name, p)
	}

	return p
}

// requireValue builds a probe that fails while a configured value is
// missing. When the value was absent at construction time the probe
// re-checks the named environment variables on every query, since
// credentials can appear or disappear between calls.
func requireValue(what string, missing bool, envKeys ...string) registry.Probe {
	if !missing {
		return nil
	}

	return func(ctx context.Context) error {
		for _, key := range envKeys {
			if os.Getenv(key) == "" {
				return backend.NewError(backend.ErrorUnavailable, "%s not configured (set %s)", what, strings.Join(envKeys, ", "))
			}
		}

		// Values appeared after startup; clients are built once, so a
		// restart is needed to pick them up.
		return backend.NewError(backend.ErrorUnavailable, "%s was configured after startup; restart required", what)
	}
}

// requireAnyValue is like requireValue but is satisfied by any one of the
// named environment variables.
func requireAnyValue(what string, missing bool, envKeys ...string) registry.Probe {
	if !missing {
		return nil
	}

	return func(ctx context.Context) error {
		for _, key := range envKeys {
			if os.Getenv(key) != "" {
				return backend.NewError(backend.ErrorUnavailable, "%s was configured after startup; restart required", what)
			}
		}

		return backend.NewError(backend.ErrorUnavailable, "%s not configured (set one of %s)", what, strings.Join(envKeys, ", "))
	}
}

func probeTextract(ctx context.Context) error {
	if os.Getenv("AWS_ACCESS_KEY_ID") != "" || os.Getenv("AWS_PROFILE") != "" {
		return nil
	}

	return backend.NewError(backend.ErrorUnavailable, "aws credentials not configured (set AWS_ACCESS_KEY_ID or AWS_PROFILE)")
}

func envBackendURL(name string) string {
	switch name {
	case docling.Name:
		return os.Getenv("DOCLING_URL")
	case kreuzberg.Name:
		return os.Getenv("KREUZBERG_URL")
	case tika.Name:
		return os.Getenv("TIKA_URL")
	case unstructured.Name:
		return os.Getenv("UNSTRUCTURED_URL")
	case azure.Name:
		return os.Getenv("AZURE_DOCUMENT_URL")
	case databricks.Name:
		return os.Getenv("DATABRICKS_HOST")
	}

	return ""
}

func envBackendToken(name string) string {
	switch name {
	case kreuzberg.Name:
		return os.Getenv("KREUZBERG_TOKEN")
	case unstructured.Name:
		return os.Getenv("UNSTRUCTURED_API_KEY")
	case azure.Name:
		return os.Getenv("AZURE_DOCUMENT_KEY")
	case mistral.Name:
		return os.Getenv("MISTRAL_API_KEY")
	case databricks.Name:
		return os.Getenv("DATABRICKS_TOKEN")
	case llamaparse.Name:
		return os.Getenv("LLAMA_CLOUD_API_KEY")
	case anthropic.Name:
		return os.Getenv("ANTHROPIC_API_KEY")
	case openai.Name:
		return os.Getenv("OPENAI_API_KEY")
	case gemini.Name:
		if token := os.Getenv("GOOGLE_API_KEY"); token != "" {
			return token
		}

		return os.Getenv("GEMINI_API_KEY")
	}

	return ""
}
