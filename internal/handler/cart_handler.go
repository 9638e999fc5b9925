package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CartHandler handles cart requests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

func (h *CartHandler) cartID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "cartID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidIdentifier, "invalid cart ID format", h.logger)
		return uuid.Nil, false
	}
	return id, true
}

// Create handles POST /api/carts.
func (h *CartHandler) Create(w http.ResponseWriter, r *http.Request) {
	cart, err := h.service.Create(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, cart)
}

// Get handles GET /api/carts/{cartID}.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.cartID(w, r)
	if !ok {
		return
	}

	cart, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// Delete handles DELETE /api/carts/{cartID}.
func (h *CartHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.cartID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddItem handles POST /api/carts/{cartID}/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.cartID(w, r)
	if !ok {
		return
	}

	var req model.AddCartItemRequest
	if !decode(w, r, &req, h.logger) {
		return
	}

	cart, err := h.service.AddItem(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// UpdateItem handles PATCH /api/carts/{cartID}/items/{itemID}.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.cartID(w, r)
	if !ok {
		return
	}
	itemID, ok := idParam(w, r, "itemID", h.logger)
	if !ok {
		return
	}

	var req model.UpdateQuantityRequest
	if !decode(w, r, &req, h.logger) {
		return
	}

	cart, err := h.service.UpdateItemQuantity(r.Context(), id, itemID, req.Quantity)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// RemoveItem handles DELETE /api/carts/{cartID}/items/{itemID}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.cartID(w, r)
	if !ok {
		return
	}
	itemID, ok := idParam(w, r, "itemID", h.logger)
	if !ok {
		return
	}

	if err := h.service.RemoveItem(r.Context(), id, itemID); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
