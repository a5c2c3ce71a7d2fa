package report

import (
	"encoding/json"
	"net/http"

	"LinearPanel/internal/calc/plan"
	"LinearPanel/internal/metrics"
)

type Handler struct {
	Version string
}

// Generate renders the full session plan as a print-ready PDF. The body is
// the same plan input the calc endpoint takes; the report carries no
// algorithmic content of its own.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input plan.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := plan.Calculate(input)
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}

	pdf := build(input, res, h.Version)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"report.pdf\"")
	if err := pdf.Output(w); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	metrics.Reports.Inc()
}
