package api

import (
	"net/http"
)

func (h *Handler) handleBackends(w http.ResponseWriter, r *http.Request) {
	var result []Backend

	for _, report := range h.Registry().Inspect(r.Context()) {
		d := report.Descriptor

		var capabilities []string

		for _, c := range d.Capabilities {
			capabilities = append(capabilities, string(c))
		}

		result = append(result, Backend{
			Name:        d.Name,
			Description: d.Description,

			Category: string(d.Category),
			Model:    d.Model,

			Capabilities: capabilities,

			CostPerPage: d.CostPerPage,

			MaxPages:    d.MaxPages,
			MaxFileSize: d.MaxFileSize,

			Available: report.Available,
			Reason:    report.Reason,
		})
	}

	writeJson(w, result)
}
