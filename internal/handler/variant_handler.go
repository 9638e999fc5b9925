package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// VariantHandler handles variant and discount writes. Both trigger the
// propagation chain inside the service.
type VariantHandler struct {
	variants  service.VariantService
	discounts service.DiscountService
	logger    zerolog.Logger
}

// NewVariantHandler creates a new variant handler.
func NewVariantHandler(variants service.VariantService, discounts service.DiscountService, logger zerolog.Logger) *VariantHandler {
	return &VariantHandler{
		variants:  variants,
		discounts: discounts,
		logger:    logger.With().Str("handler", "variant").Logger(),
	}
}

// Create handles POST /api/variants.
func (h *VariantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateVariantRequest
	if !decode(w, r, &req, h.logger) {
		return
	}

	v, err := h.variants.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

// GetByID handles GET /api/variants/{variantID}.
func (h *VariantHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "variantID", h.logger)
	if !ok {
		return
	}

	v, err := h.variants.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// Update handles PATCH /api/variants/{variantID}.
func (h *VariantHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "variantID", h.logger)
	if !ok {
		return
	}

	var req model.UpdateVariantRequest
	if !decode(w, r, &req, h.logger) {
		return
	}

	v, err := h.variants.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// Delete handles DELETE /api/variants/{variantID}.
func (h *VariantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "variantID", h.logger)
	if !ok {
		return
	}

	if err := h.variants.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateDiscount handles POST /api/discounts.
func (h *VariantHandler) CreateDiscount(w http.ResponseWriter, r *http.Request) {
	var req model.CreateDiscountRequest
	if !decode(w, r, &req, h.logger) {
		return
	}

	d, err := h.discounts.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

// GetDiscount handles GET /api/discounts/{discountID}.
func (h *VariantHandler) GetDiscount(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "discountID", h.logger)
	if !ok {
		return
	}

	d, err := h.discounts.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// UpdateDiscount handles PATCH /api/discounts/{discountID}.
func (h *VariantHandler) UpdateDiscount(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "discountID", h.logger)
	if !ok {
		return
	}

	var req model.UpdateDiscountRequest
	if !decode(w, r, &req, h.logger) {
		return
	}

	d, err := h.discounts.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
