package archive

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"LinearPanel/internal/calc/plan"
	"LinearPanel/internal/metrics"
)

type Handler struct {
	Version string
	Log     *slog.Logger
}

type ImportResult struct {
	Input  plan.Input  `json:"input"`
	Result plan.Result `json:"result"`
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
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
	f, err := Build(input, res, h.Version)
	if err != nil {
		h.Log.Error("archive build failed", "err", err)
		http.Error(w, "Archive generation error", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	name := input.Experiment
	if name == "" {
		name = "linear-dilution"
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s_%s.xlsx\"", name, time.Now().Format("1504")))
	if err := f.Write(w); err != nil {
		h.Log.Error("archive write failed", "err", err)
		return
	}
	metrics.ArchiveExports.Inc()
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	input, err := Parse(file)
	if err != nil {
		h.Log.Warn("archive import rejected", "err", err)
		http.Error(w, "Invalid archive", http.StatusBadRequest)
		return
	}
	res, err := plan.Calculate(input)
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	metrics.ArchiveImports.Inc()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ImportResult{Input: input, Result: res})
}
