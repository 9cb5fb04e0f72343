package bills

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/billy/internal/bill"
	"github.com/MrJamesThe3rd/billy/internal/datafile"
)

// Handler serves the bills document: a thin echo endpoint over the JSON
// data file, plus read-only analytics computed from it.
type Handler struct {
	data *datafile.Store
}

func NewHandler(data *datafile.Store) *Handler {
	return &Handler{data: data}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Post("/", h.save)
	r.Put("/", h.save)
	r.Get("/analytics/categories", h.spendingByCategory)
	r.Get("/analytics/monthly", h.monthlySummary)
}

type billsDocument struct {
	Bills []bill.Bill `json:"bills"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	bills, err := h.data.Read()
	if err != nil {
		slog.Error("failed to read bills", "error", err)
		http.Error(w, "failed to read bills data", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, billsDocument{Bills: bills})
}

type saveRequest struct {
	// Pointer so an absent bills key can be told apart from an empty list.
	Bills *[]bill.Bill `json:"bills"`
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.Bills == nil {
		http.Error(w, "bills array is required", http.StatusBadRequest)
		return
	}

	if err := h.data.Write(*req.Bills); err != nil {
		slog.Error("failed to save bills", "error", err)
		http.Error(w, "failed to save bills data", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) spendingByCategory(w http.ResponseWriter, r *http.Request) {
	bills, err := h.data.Read()
	if err != nil {
		slog.Error("failed to read bills", "error", err)
		http.Error(w, "failed to read bills data", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, bill.SpendingByCategory(bills))
}

func (h *Handler) monthlySummary(w http.ResponseWriter, r *http.Request) {
	bills, err := h.data.Read()
	if err != nil {
		slog.Error("failed to read bills", "error", err)
		http.Error(w, "failed to read bills data", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, bill.MonthlySummary(bills))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
