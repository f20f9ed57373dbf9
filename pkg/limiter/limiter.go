package limiter

import (
	"context"

	"github.com/adrianliechti/docsmith/pkg/backend"

	"golang.org/x/time/rate"
)

type Provider interface {
	Limiter
	backend.Provider
}

type Limiter interface {
	limiterSetup()
}

type limitedProvider struct {
	limiter  *rate.Limiter
	provider backend.Provider
}

// New wraps a backend with a rate limiter. A nil limiter passes through.
func New(l *rate.Limiter, p backend.Provider) Provider {
	return &limitedProvider{
		limiter:  l,
		provider: p,
	}
}

func (p *limitedProvider) limiterSetup() {
}

func (p *limitedProvider) Convert(ctx context.Context, file backend.File, options *backend.ConvertOptions) (*backend.Result, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	return p.provider.Convert(ctx, file, options)
}
