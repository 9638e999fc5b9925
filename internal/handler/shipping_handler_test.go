package handler

import (
	"net/http"
	"testing"

	"storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestShippingHandler_List(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		activeOnly bool
	}{
		{name: "All methods", query: "", activeOnly: false},
		{name: "Active only", query: "?active=true", activeOnly: true},
		{name: "Other value lists all", query: "?active=yes", activeOnly: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockShippingService)
			svc.On("List", mock.Anything, tt.activeOnly).Return([]model.ShippingMethod{}, nil)
			h := NewShippingHandler(svc, zerolog.Nop())

			w := serve(http.MethodGet, "/api/shipping-methods", h.List, "/api/shipping-methods"+tt.query, "")

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `[]`, w.Body.String())
			svc.AssertExpectations(t)
		})
	}
}

func TestShippingHandler_Update(t *testing.T) {
	t.Run("Price change", func(t *testing.T) {
		price := int64(200)
		svc := new(MockShippingService)
		svc.On("Update", mock.Anything, int64(4), mock.MatchedBy(func(r *model.UpdateShippingMethodRequest) bool {
			return r.Price != nil && *r.Price == 200 && !r.ClearPrice
		})).Return(&model.ShippingMethod{ID: 4, Price: &price, Active: true}, nil)
		h := NewShippingHandler(svc, zerolog.Nop())

		w := serve(http.MethodPatch, "/api/shipping-methods/{methodID}", h.Update, "/api/shipping-methods/4", `{"price":200}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"price":200`)
		svc.AssertExpectations(t)
	})

	t.Run("Negative price", func(t *testing.T) {
		svc := new(MockShippingService)
		h := NewShippingHandler(svc, zerolog.Nop())

		w := serve(http.MethodPatch, "/api/shipping-methods/{methodID}", h.Update, "/api/shipping-methods/4", `{"price":-5}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Price", decodeError(t, w).Field)
	})

	t.Run("Not found", func(t *testing.T) {
		svc := new(MockShippingService)
		svc.On("Update", mock.Anything, int64(4), mock.Anything).Return(nil, model.ErrShippingNotFound)
		h := NewShippingHandler(svc, zerolog.Nop())

		w := serve(http.MethodPatch, "/api/shipping-methods/{methodID}", h.Update, "/api/shipping-methods/4", `{"name":"Post"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestShippingHandler_Create(t *testing.T) {
	svc := new(MockShippingService)
	svc.On("Create", mock.Anything, mock.MatchedBy(func(r *model.CreateShippingMethodRequest) bool {
		return r.Name == "Express" && r.Price == nil
	})).Return(&model.ShippingMethod{ID: 5, Name: "Express", Active: true}, nil)
	h := NewShippingHandler(svc, zerolog.Nop())

	w := serve(http.MethodPost, "/api/shipping-methods", h.Create, "/api/shipping-methods", `{"name":"Express","deliveryTimeHours":24}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}
