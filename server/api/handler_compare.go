package api

import (
	"net/http"
	"strings"

	"github.com/adrianliechti/docsmith/pkg/backend"
	"github.com/adrianliechti/docsmith/pkg/dispatch"
)

func (h *Handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	file, err := readFile(r)

	if err != nil {
		writeError(w, err)
		return
	}

	req := dispatch.Request{
		Name:        file.Name,
		Content:     file.Content,
		ContentType: file.ContentType,

		Options: &backend.ConvertOptions{
			Model:     valueModel(r),
			Languages: valueLanguages(r),
		},
	}

	var names []string

	if val := r.FormValue("backends"); val != "" {
		for _, name := range strings.Split(val, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
	}

	comparison, err := h.Compare(r.Context(), req, names...)

	if err != nil {
		writeError(w, err)
		return
	}

	result := Comparison{}

	for _, outcome := range comparison.Outcomes {
		o := Outcome{
			Backend: outcome.Backend,
		}

		if outcome.Err != nil {
			o.Error = outcome.Err.Error()
		}

		if outcome.Document != nil {
			o.Document = &Document{
				Content: outcome.Document.Text,

				Backend:   outcome.Document.Backend,
				PageCount: outcome.Document.PageCount,

				Warnings: outcome.Document.Warnings,
				Metadata: outcome.Document.Metadata,
			}
		}

		result.Outcomes = append(result.Outcomes, o)
	}

	for _, similarity := range comparison.Similarities {
		result.Similarities = append(result.Similarities, Similarity{
			A: similarity.A,
			B: similarity.B,

			Score: similarity.Score,
		})
	}

	writeJson(w, result)
}
