package config_test

import (
	"os"
	"testing"

	"github.com/adrianliechti/docsmith/config"
	"github.com/adrianliechti/docsmith/pkg/backend"
	"github.com/adrianliechti/docsmith/pkg/dispatch"

	"github.com/stretchr/testify/require"
)

// TestLiveBackends exercises every configured backend against its real
// service. Calls to cloud backends are billable, so the test only runs
// when DOCSMITH_LIVE_TESTS is set. DOCSMITH_LIVE_FILE points to the
// sample document to convert.
func TestLiveBackends(t *testing.T) {
	if os.Getenv("DOCSMITH_LIVE_TESTS") == "" {
		t.Skip("set DOCSMITH_LIVE_TESTS to run billable backend calls")
	}

	path := os.Getenv("DOCSMITH_LIVE_FILE")

	if path == "" {
		t.Skip("set DOCSMITH_LIVE_FILE to a sample document")
	}

	cfg, err := config.FromEnvironment()
	require.NoError(t, err)

	engine := dispatch.New(cfg.Registry,
		dispatch.WithAttempts(cfg.Attempts),
		dispatch.WithDelay(cfg.Delay),
		dispatch.WithTimeout(cfg.Timeout),
	)

	for _, report := range cfg.Registry.Inspect(t.Context()) {
		t.Run(report.Descriptor.Name, func(t *testing.T) {
			if !report.Available {
				t.Skipf("unavailable: %s", report.Reason)
			}

			document, err := engine.Parse(t.Context(), dispatch.Request{
				Path: path,

				Backend: report.Descriptor.Name,
			})

			switch backend.KindOf(err) {
			case backend.ErrorUnsupported, backend.ErrorTooLarge:
				t.Skipf("backend cannot handle sample: %v", err)
			}

			require.NoError(t, err)
			require.NotEmpty(t, document.Text)
			require.Equal(t, report.Descriptor.Name, document.Backend)
		})
	}
}
