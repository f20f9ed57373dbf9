package config

import (
	"os"
	"time"

	"github.com/adrianliechti/docsmith/pkg/backend/registry"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Address string

	Attempts int
	Delay    time.Duration
	Timeout  time.Duration

	Registry *registry.Registry
}

type configFile struct {
	Address string `yaml:"address"`

	Retry struct {
		Attempts int           `yaml:"attempts"`
		Delay    time.Duration `yaml:"delay"`
	} `yaml:"retry"`

	Timeout time.Duration `yaml:"timeout"`

	Backends yaml.Node `yaml:"backends"`
}

// Parse loads a YAML config file and builds the backend registry from it.
// Backend declaration order in the file is preserved so auto-selection
// tie-breaks stay deterministic.
func Parse(path string) (*Config, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	var file configFile

	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	c := newConfig()

	if file.Address != "" {
		c.Address = file.Address
	}

	if file.Retry.Attempts > 0 {
		c.Attempts = file.Retry.Attempts
	}

	if file.Retry.Delay > 0 {
		c.Delay = file.Retry.Delay
	}

	if file.Timeout > 0 {
		c.Timeout = file.Timeout
	}

	if err := c.registerBackends(&file); err != nil {
		return nil, err
	}

	return c, nil
}

// FromEnvironment builds the default configuration: every known backend is
// registered in the fixed preference order, guarded by a probe on its
// credential environment variables. The core packages never read the
// environment themselves.
func FromEnvironment() (*Config, error) {
	c := newConfig()

	if err := c.registerDefaults(); err != nil {
		return nil, err
	}

	return c, nil
}

func newConfig() *Config {
	return &Config{
		Address: ":8080",

		Attempts: 3,
		Delay:    time.Second,
		Timeout:  5 * time.Minute,

		Registry: registry.New(),
	}
}
