package api

import (
	"encoding/json"
	"net/http"

	"github.com/adrianliechti/docsmith/pkg/backend"
	"github.com/adrianliechti/docsmith/pkg/dispatch"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	*dispatch.Engine
}

func New(engine *dispatch.Engine) (*Handler, error) {
	h := &Handler{
		Engine: engine,
	}

	return h, nil
}

func (h *Handler) Attach(r chi.Router) {
	r.Post("/parse", h.handleParse)
	r.Post("/compare", h.handleCompare)

	r.Get("/backends", h.handleBackends)
}

func writeJson(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	enc.Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := statusCode(err)

	w.WriteHeader(code)

	text := http.StatusText(code)

	if err != nil {
		text = err.Error()
	}

	w.Write([]byte(text))
}

func statusCode(err error) int {
	switch backend.KindOf(err) {
	case backend.ErrorInvalidRequest:
		return http.StatusBadRequest

	case backend.ErrorUnknownBackend:
		return http.StatusNotFound

	case backend.ErrorUnavailable:
		return http.StatusServiceUnavailable

	case backend.ErrorTooLarge:
		return http.StatusRequestEntityTooLarge

	case backend.ErrorUnsupported:
		return http.StatusUnsupportedMediaType

	case backend.ErrorAuthentication:
		return http.StatusBadGateway

	case backend.ErrorQuota:
		return http.StatusTooManyRequests

	default:
		return http.StatusBadGateway
	}
}
