package otel

import (
	"context"

	"github.com/adrianliechti/docsmith/pkg/backend"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const instrumentationName = "github.com/adrianliechti/docsmith"

type Provider interface {
	Observable
	backend.Provider
}

type Observable interface {
	otelSetup()
}

type observableProvider struct {
	name string

	provider backend.Provider
}

// New wraps a backend so every conversion runs inside a trace span named
// after the backend.
func New(name string, p backend.Provider) Provider {
	return &observableProvider{
		name: name,

		provider: p,
	}
}

func (p *observableProvider) otelSetup() {
}

func (p *observableProvider) Convert(ctx context.Context, file backend.File, options *backend.ConvertOptions) (*backend.Result, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "convert "+p.name)
	defer span.End()

	span.SetAttributes(
		attribute.String("backend", p.name),
		attribute.Int("document.size", len(file.Content)),
	)

	result, err := p.provider.Convert(ctx, file, options)

	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}

	return result, err
}
