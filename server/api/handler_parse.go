package api

import (
	"log/slog"
	"net/http"

	"github.com/adrianliechti/docsmith/pkg/backend"
	"github.com/adrianliechti/docsmith/pkg/dispatch"
)

func (h *Handler) handleParse(w http.ResponseWriter, r *http.Request) {
	file, err := readFile(r)

	if err != nil {
		writeError(w, err)
		return
	}

	req := dispatch.Request{
		Name:        file.Name,
		Content:     file.Content,
		ContentType: file.ContentType,

		Backend: valueBackend(r),

		Options: &backend.ConvertOptions{
			Model:     valueModel(r),
			Languages: valueLanguages(r),
		},
	}

	document, err := h.Parse(r.Context(), req)

	if err != nil {
		slog.Error("parse failed", "backend", req.Backend, "kind", backend.KindOf(err), "error", err)

		writeError(w, err)
		return
	}

	writeJson(w, Document{
		Content: document.Text,

		Backend:   document.Backend,
		PageCount: document.PageCount,

		Warnings: document.Warnings,
		Metadata: document.Metadata,
	})
}
