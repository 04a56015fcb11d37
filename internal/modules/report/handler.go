package report

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/georgemunganga/salesboard/internal/apperr"
)

// Handler exposes the aggregate report endpoints used by the dashboard.
type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/statistics", h.statistics)  // ?month=&year=
	r.Get("/bar-chart", h.barChart)     // ?month=
	r.Get("/pie-chart", h.pieChart)     // ?month=
	r.Get("/combined-data", h.combined) // ?month=&year=
}

func (h *Handler) statistics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	stats, err := h.service.Statistics(r.Context(), q.Get("month"), q.Get("year"))
	if err != nil {
		h.fail(w, err, "Error retrieving statistics")
		return
	}
	respond(w, http.StatusOK, stats)
}

func (h *Handler) barChart(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.BarChart(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		h.fail(w, err, "Error retrieving bar chart data")
		return
	}
	respond(w, http.StatusOK, counts)
}

func (h *Handler) pieChart(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.PieChart(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		h.fail(w, err, "Error retrieving pie chart data")
		return
	}
	respond(w, http.StatusOK, counts)
}

func (h *Handler) combined(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := h.service.Combined(r.Context(), q.Get("month"), q.Get("year"))
	if err != nil {
		h.fail(w, err, "Error retrieving combined data")
		return
	}
	respond(w, http.StatusOK, out)
}

func (h *Handler) fail(w http.ResponseWriter, err error, generic string) {
	status := apperr.Status(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(generic, zap.Error(err))
	}
	respond(w, status, map[string]string{"error": apperr.Message(err, generic)})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
