package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrianliechti/docsmith/config"
	"github.com/adrianliechti/docsmith/pkg/backend/registry"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "docsmith.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	return path
}

func TestParse(t *testing.T) {
	path := writeConfig(t, `
address: ":9090"

retry:
  attempts: 5
  delay: 2s

timeout: 10m

backends:
  tika:
    url: http://localhost:9998

  ocr:
    type: mistral
    token: test-key
    limit: 10

  text: {}
`)

	cfg, err := config.Parse(path)
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.Address)
	require.Equal(t, 5, cfg.Attempts)
	require.Equal(t, 2*time.Second, cfg.Delay)
	require.Equal(t, 10*time.Minute, cfg.Timeout)

	var names []string

	for _, d := range cfg.Registry.List(registry.Filter{}) {
		names = append(names, d.Name)
	}

	// Declaration order from the file is preserved.
	require.Equal(t, []string{"tika", "ocr", "text"}, names)
}

func TestParseCustomName(t *testing.T) {
	path := writeConfig(t, `
backends:
  ocr:
    type: mistral
    token: test-key
    model: mistral-ocr-2505
`)

	cfg, err := config.Parse(path)
	require.NoError(t, err)

	h, err := cfg.Registry.Resolve(t.Context(), "ocr")
	require.NoError(t, err)

	require.Equal(t, "ocr", h.Descriptor.Name)
	require.Equal(t, "mistral-ocr-2505", h.Descriptor.Model)
}

func TestParseUnknownType(t *testing.T) {
	path := writeConfig(t, `
backends:
  something:
    type: nonsense
`)

	_, err := config.Parse(path)
	require.Error(t, err)
}

func TestFromEnvironment(t *testing.T) {
	cfg, err := config.FromEnvironment()
	require.NoError(t, err)

	descriptors := cfg.Registry.List(registry.Filter{})
	require.Len(t, descriptors, 14)

	// The plain text fallback needs no credentials and is always usable.
	h, err := cfg.Registry.Resolve(t.Context(), "text")
	require.NoError(t, err)
	require.Equal(t, "text", h.Descriptor.Name)
}
