package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/billy/internal/bill"
	"github.com/MrJamesThe3rd/billy/internal/datafile"
	"github.com/MrJamesThe3rd/billy/internal/importer"
)

// Handler accepts CSV uploads and merges the parsed bills into the
// stored collection.
type Handler struct {
	importSvc *importer.Service
	data      *datafile.Store
}

func NewHandler(importSvc *importer.Service, data *datafile.Store) *Handler {
	return &Handler{importSvc: importSvc, data: data}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type importResponse struct {
	Imported int         `json:"imported"`
	Bills    []bill.Bill `json:"bills"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	forms, err := h.importSvc.Import(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	existing, err := h.data.Read()
	if err != nil {
		slog.Error("failed to read bills", "error", err)
		http.Error(w, "failed to read bills data", http.StatusInternalServerError)

		return
	}

	imported := make([]bill.Bill, 0, len(forms))
	for _, f := range forms {
		imported = append(imported, bill.New(f))
	}

	merged := bill.SortByDate(append(existing, imported...))

	if err := h.data.Write(merged); err != nil {
		slog.Error("failed to save bills", "error", err)
		http.Error(w, "failed to save bills data", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(importResponse{
		Imported: len(imported),
		Bills:    imported,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
