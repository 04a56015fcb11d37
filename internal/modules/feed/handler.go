package feed

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler exposes the bulk import endpoint.
type Handler struct {
	importer *Importer
	logger   *zap.Logger
}

func NewHandler(importer *Importer, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{importer: importer, logger: logger}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/init-db", h.initDB)
}

func (h *Handler) initDB(w http.ResponseWriter, r *http.Request) {
	// The import runs to completion even if the caller goes away.
	res, err := h.importer.Import(context.WithoutCancel(r.Context()))
	w.Header().Set("X-Import-Id", res.ID.String())
	if err != nil {
		h.logger.Error("Error initializing database",
			zap.String("import_id", res.ID.String()),
			zap.Int("imported", res.Imported),
			zap.Error(err))
		respond(w, http.StatusInternalServerError, map[string]string{"error": "Error initializing database"})
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"message":  "Database initialized successfully",
		"imported": res.Imported,
	})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
