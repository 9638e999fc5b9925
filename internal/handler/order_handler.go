package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

type statusRequest struct {
	Status model.OrderStatus `json:"status" validate:"required,oneof=nd d c"`
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.OrderRequest
	if !decode(w, r, &req, h.logger) {
		return
	}

	order, err := h.service.CreateFromCart(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

// GetByID handles GET /api/orders/{orderID}.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "orderID", h.logger)
	if !ok {
		return
	}

	order, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// UpdateStatus handles PATCH /api/orders/{orderID}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "orderID", h.logger)
	if !ok {
		return
	}

	var req statusRequest
	if !decode(w, r, &req, h.logger) {
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// Pay handles POST /api/orders/{orderID}/pay.
func (h *OrderHandler) Pay(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "orderID", h.logger)
	if !ok {
		return
	}

	order, err := h.service.MarkPaid(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// UpdateItem handles PATCH /api/orders/{orderID}/items/{itemID}.
func (h *OrderHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "orderID", h.logger)
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

	order, err := h.service.UpdateItemQuantity(r.Context(), id, itemID, req.Quantity)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, order)
}
