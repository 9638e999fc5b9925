package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// WishlistHandler handles wishlist requests.
type WishlistHandler struct {
	service service.WishlistService
	logger  zerolog.Logger
}

// NewWishlistHandler creates a new wishlist handler.
func NewWishlistHandler(service service.WishlistService, logger zerolog.Logger) *WishlistHandler {
	return &WishlistHandler{
		service: service,
		logger:  logger.With().Str("handler", "wishlist").Logger(),
	}
}

func (h *WishlistHandler) wishlistID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "wishlistID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidIdentifier, "invalid wishlist ID format", h.logger)
		return uuid.Nil, false
	}
	return id, true
}

// Create handles POST /api/wishlists.
func (h *WishlistHandler) Create(w http.ResponseWriter, r *http.Request) {
	wl, err := h.service.Create(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, wl)
}

// Get handles GET /api/wishlists/{wishlistID}.
func (h *WishlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.wishlistID(w, r)
	if !ok {
		return
	}

	wl, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, wl)
}

// Delete handles DELETE /api/wishlists/{wishlistID}.
func (h *WishlistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.wishlistID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddItem handles POST /api/wishlists/{wishlistID}/items.
func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.wishlistID(w, r)
	if !ok {
		return
	}

	var req model.AddWishlistItemRequest
	if !decode(w, r, &req, h.logger) {
		return
	}

	wl, err := h.service.AddItem(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, wl)
}

// RemoveItem handles DELETE /api/wishlists/{wishlistID}/items/{productID}.
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.wishlistID(w, r)
	if !ok {
		return
	}
	productID, ok := idParam(w, r, "productID", h.logger)
	if !ok {
		return
	}

	if err := h.service.RemoveItem(r.Context(), id, productID); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
