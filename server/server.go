package server

import (
	"context"
	"net/http"

	"github.com/adrianliechti/docsmith/config"
	"github.com/adrianliechti/docsmith/pkg/dispatch"
	"github.com/adrianliechti/docsmith/server/api"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type Server struct {
	*config.Config

	handler http.Handler
}

func New(cfg *config.Config) (*Server, error) {
	engine := dispatch.New(cfg.Registry,
		dispatch.WithAttempts(cfg.Attempts),
		dispatch.WithDelay(cfg.Delay),
		dispatch.WithTimeout(cfg.Timeout),
	)

	h, err := api.New(engine)

	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Route("/v1", h.Attach)

	return &Server{
		Config: cfg,

		handler: r,
	}, nil
}

func (s *Server) ListenAndServe(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.Address,
		Handler: s.handler,
	}

	go func() {
		<-ctx.Done()
		server.Shutdown(context.Background())
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
