package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// ShippingHandler handles shipping method requests.
type ShippingHandler struct {
	service service.ShippingService
	logger  zerolog.Logger
}

// NewShippingHandler creates a new shipping method handler.
func NewShippingHandler(service service.ShippingService, logger zerolog.Logger) *ShippingHandler {
	return &ShippingHandler{
		service: service,
		logger:  logger.With().Str("handler", "shipping").Logger(),
	}
}

// List handles GET /api/shipping-methods. ?active=true hides inactive methods.
func (h *ShippingHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	methods, err := h.service.List(r.Context(), activeOnly)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, methods)
}

func (h *ShippingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateShippingMethodRequest
	if !decode(w, r, &req, h.logger) {
		return
	}

	m, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

// Update handles PATCH /api/shipping-methods/{methodID}.
func (h *ShippingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "methodID", h.logger)
	if !ok {
		return
	}

	var req model.UpdateShippingMethodRequest
	if !decode(w, r, &req, h.logger) {
		return
	}

	m, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, m)
}
