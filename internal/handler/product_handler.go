package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"stockwatch/internal/service"

	"github.com/rs/zerolog"
)

// DelayRequest is the body of POST /api/products/{id}/delay.
type DelayRequest struct {
	LeadTime *int `json:"leadTime"`
}

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// ServeHTTP dispatches /api/products and its sub-paths.
func (h *ProductHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	parts := pathTail(r.URL.Path, "/api/products")

	switch {
	case len(parts) == 0:
		h.GetAll(w, r)
	case len(parts) == 1:
		h.GetByID(w, r)
	case len(parts) == 2 && parts[1] == "handle":
		h.Handle(w, r)
	case len(parts) == 2 && parts[1] == "delay":
		h.Delay(w, r)
	default:
		writeError(w, http.StatusNotFound, "not found", h.logger)
	}
}

// GetAll handles GET /api/products requests with pagination.
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")

	limit := 10
	if limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit parameter", h.logger)
			return
		}
	}

	offset := 0
	if offsetStr != "" {
		var err error
		offset, err = strconv.Atoi(offsetStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid offset parameter", h.logger)
			return
		}
	}

	products, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve products", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// GetByID handles GET /api/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "failed to retrieve product", h.logger)
		return
	}

	if product == nil {
		writeError(w, http.StatusNotFound, "product not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Handle handles POST /api/products/{id}/handle requests by running the
// product's lifecycle rules.
func (h *ProductHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	product, err := h.service.HandleByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "failed to handle product", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Delay handles POST /api/products/{id}/delay requests.
func (h *ProductHandler) Delay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	var req DelayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if req.LeadTime == nil {
		writeError(w, http.StatusBadRequest, "leadTime is required", h.logger)
		return
	}

	product, err := h.service.NotifyDelayByID(r.Context(), id, *req.LeadTime)
	if err != nil {
		writeDomainError(w, err, "failed to notify delay", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// productID parses the {id} segment. It writes a 400 and returns false when
// the segment is not a positive integer.
func (h *ProductHandler) productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	parts := pathTail(r.URL.Path, "/api/products")
	if len(parts) == 0 {
		writeError(w, http.StatusBadRequest, "product ID is required", h.logger)
		return 0, false
	}

	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid product ID", h.logger)
		return 0, false
	}

	return id, true
}
