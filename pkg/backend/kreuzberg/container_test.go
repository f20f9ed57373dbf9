package kreuzberg_test

import (
	"context"
	"testing"

	"github.com/adrianliechti/docsmith/pkg/backend"
	"github.com/adrianliechti/docsmith/pkg/backend/kreuzberg"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
)

func TestConvertContainer(t *testing.T) {
	ctx := context.Background()

	server, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		Started: true,

		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "goldziher/kreuzberg:4.0.0-core",
			ExposedPorts: []string{"8000/tcp"},
		},
	})

	require.NoError(t, err)

	defer server.Terminate(ctx)

	url, err := server.Endpoint(ctx, "")
	require.NoError(t, err)

	c, err := kreuzberg.New(kreuzberg.WithURL("http://" + url))
	require.NoError(t, err)

	input := backend.File{
		Name: "notes.txt",

		Content:     []byte("Quarterly report\n\nRevenue grew in all regions."),
		ContentType: "text/plain",
	}

	result, err := c.Convert(ctx, input, nil)
	require.NoError(t, err)

	require.NotEmpty(t, result.Pages)
	require.Contains(t, result.Pages[0].Text, "Quarterly report")
}
