package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestVariantHandler() (*VariantHandler, *MockVariantService, *MockDiscountService) {
	variants := new(MockVariantService)
	discounts := new(MockDiscountService)
	return NewVariantHandler(variants, discounts, zerolog.Nop()), variants, discounts
}

func TestVariantHandler_Update(t *testing.T) {
	t.Run("Price change", func(t *testing.T) {
		h, variants, _ := newTestVariantHandler()
		discounted := int64(749)
		variants.On("Update", mock.Anything, int64(3), mock.MatchedBy(func(r *model.UpdateVariantRequest) bool {
			return r.Price != nil && *r.Price == 999 && r.Quantity == nil
		})).Return(&model.Variant{ID: 3, Price: 999, DiscountedPrice: &discounted}, nil)

		w := serve(http.MethodPatch, "/api/variants/{variantID}", h.Update, "/api/variants/3", `{"price":999}`)

		require.Equal(t, http.StatusOK, w.Code)
		var got model.Variant
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		require.NotNil(t, got.DiscountedPrice)
		assert.Equal(t, int64(749), *got.DiscountedPrice)
		variants.AssertExpectations(t)
	})

	t.Run("Negative quantity rejected before the service", func(t *testing.T) {
		h, variants, _ := newTestVariantHandler()

		w := serve(http.MethodPatch, "/api/variants/{variantID}", h.Update, "/api/variants/3", `{"quantity":-1}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Quantity", decodeError(t, w).Field)
		variants.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown discount", func(t *testing.T) {
		h, variants, _ := newTestVariantHandler()
		variants.On("Update", mock.Anything, int64(3), mock.Anything).Return(nil, model.ErrDiscountNotFound)

		w := serve(http.MethodPatch, "/api/variants/{variantID}", h.Update, "/api/variants/3", `{"discountId":40}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, model.ErrCodeDiscountNotFound, decodeError(t, w).Error)
	})
}

func TestVariantHandler_Create(t *testing.T) {
	h, variants, _ := newTestVariantHandler()
	variants.On("Create", mock.Anything, mock.MatchedBy(func(r *model.CreateVariantRequest) bool {
		return r.ProductID == 1 && r.Price == 1000 && r.Quantity == 5
	})).Return(&model.Variant{ID: 9, ProductID: 1, Price: 1000, Quantity: 5}, nil)

	w := serve(http.MethodPost, "/api/variants", h.Create, "/api/variants", `{"productId":1,"price":1000,"quantity":5}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	variants.AssertExpectations(t)
}

func TestVariantHandler_Create_UnknownVariable(t *testing.T) {
	h, variants, _ := newTestVariantHandler()
	variants.On("Create", mock.Anything, mock.Anything).Return(nil, model.ErrVariableNotFound)

	w := serve(http.MethodPost, "/api/variants", h.Create, "/api/variants", `{"productId":1,"variableId":99,"price":1000}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, model.ErrCodeVariableNotFound, decodeError(t, w).Error)
}

func TestVariantHandler_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		h, variants, _ := newTestVariantHandler()
		variants.On("Delete", mock.Anything, int64(3)).Return(nil)

		w := serve(http.MethodDelete, "/api/variants/{variantID}", h.Delete, "/api/variants/3", "")

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("Not found", func(t *testing.T) {
		h, variants, _ := newTestVariantHandler()
		variants.On("Delete", mock.Anything, int64(3)).Return(model.ErrVariantNotFound)

		w := serve(http.MethodDelete, "/api/variants/{variantID}", h.Delete, "/api/variants/3", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestVariantHandler_Discounts(t *testing.T) {
	t.Run("Create rejects percent above 100", func(t *testing.T) {
		h, _, discounts := newTestVariantHandler()

		w := serve(http.MethodPost, "/api/discounts", h.CreateDiscount, "/api/discounts", `{"percent":120}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Percent", decodeError(t, w).Field)
		discounts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Update", func(t *testing.T) {
		h, _, discounts := newTestVariantHandler()
		discounts.On("Update", mock.Anything, int64(2), &model.UpdateDiscountRequest{Percent: 30}).
			Return(&model.Discount{ID: 2, Percent: 30}, nil)

		w := serve(http.MethodPatch, "/api/discounts/{discountID}", h.UpdateDiscount, "/api/discounts/2", `{"percent":30}`)

		assert.Equal(t, http.StatusOK, w.Code)
		discounts.AssertExpectations(t)
	})

	t.Run("Get not found", func(t *testing.T) {
		h, _, discounts := newTestVariantHandler()
		discounts.On("GetByID", mock.Anything, int64(2)).Return(nil, model.ErrDiscountNotFound)

		w := serve(http.MethodGet, "/api/discounts/{discountID}", h.GetDiscount, "/api/discounts/2", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
