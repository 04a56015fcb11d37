package product

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/georgemunganga/salesboard/internal/apperr"
)

// Handler exposes product CRUD and paginated search endpoints.
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
	r.Route("/products", func(r chi.Router) {
		r.Post("/", h.createProduct)
		r.Get("/", h.listProducts)
		r.Get("/{id}", h.getProduct)
		r.Put("/{id}", h.updateProduct)
		r.Delete("/{id}", h.deleteProduct)
	})
	r.Get("/page", h.page) // ?page=&perPage=&search=&month=
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	p, err := h.service.CreateProduct(r.Context(), req)
	if err != nil {
		h.fail(w, err, "Error creating product")
		return
	}
	respond(w, http.StatusCreated, p)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		h.fail(w, err, "Error retrieving products")
		return
	}
	respond(w, http.StatusOK, products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err, "Error retrieving product")
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	p, err := h.service.UpdateProduct(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.fail(w, err, "Error updating product")
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, err, "Error deleting product")
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.service.Page(r.Context(), PageQuery{
		Page:    q.Get("page"),
		PerPage: q.Get("perPage"),
		Search:  q.Get("search"),
		Month:   q.Get("month"),
	})
	if err != nil {
		h.fail(w, err, "Error retrieving transactions")
		return
	}
	respond(w, http.StatusOK, result)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (ProductRequest, bool) {
	var req ProductRequest
	if r.Body == nil || r.ContentLength == 0 {
		respond(w, http.StatusBadRequest, map[string]string{"error": "Request body is empty"})
		return req, false
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "Request body is not valid JSON"})
		return req, false
	}
	return req, true
}

// fail writes the client-facing error and logs internal causes.
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
