package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ProductHandler handles product and taxonomy requests.
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

// List handles GET /api/products and the nested category and subcategory
// product listings.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 10
	offset := 0

	if s := r.URL.Query().Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid limit parameter", h.logger)
			return
		}
		limit = v
	}
	if s := r.URL.Query().Get("offset"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid offset parameter", h.logger)
			return
		}
		offset = v
	}

	filter, ok := h.productFilter(w, r)
	if !ok {
		return
	}

	products, err := h.service.List(r.Context(), filter, limit, offset)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// productFilter reads the category and subcategory from the route, falling
// back to the categoryId and subCategoryId query parameters.
func (h *ProductHandler) productFilter(w http.ResponseWriter, r *http.Request) (model.ProductFilter, bool) {
	var filter model.ProductFilter
	for _, f := range []struct {
		route, query string
		dst          **int64
	}{
		{"categoryID", "categoryId", &filter.CategoryID},
		{"subCategoryID", "subCategoryId", &filter.SubCategoryID},
	} {
		raw := chi.URLParam(r, f.route)
		if raw == "" {
			raw = r.URL.Query().Get(f.query)
		}
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidIdentifier, "invalid "+f.query, h.logger)
			return model.ProductFilter{}, false
		}
		*f.dst = &id
	}
	return filter, true
}

// Create handles POST /api/products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateProductRequest
	if !decode(w, r, &req, h.logger) {
		return
	}

	product, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

// GetByID handles GET /api/products/{productID}.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "productID", h.logger)
	if !ok {
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Recompute handles POST /api/products/{productID}/recompute.
func (h *ProductHandler) Recompute(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "productID", h.logger)
	if !ok {
		return
	}

	product, err := h.service.Recompute(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// ListReviews handles GET /api/products/{productID}/reviews.
func (h *ProductHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "productID", h.logger)
	if !ok {
		return
	}

	reviews, err := h.service.ListReviews(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if reviews == nil {
		reviews = []model.Review{}
	}
	writeJSON(w, http.StatusOK, reviews)
}

// AddReview handles POST /api/products/{productID}/reviews.
func (h *ProductHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "productID", h.logger)
	if !ok {
		return
	}

	var req model.AddReviewRequest
	if !decode(w, r, &req, h.logger) {
		return
	}

	review, err := h.service.AddReview(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

// ListComments handles GET /api/products/{productID}/comments. The optional
// status query parameter filters by moderation state.
func (h *ProductHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "productID", h.logger)
	if !ok {
		return
	}

	status := model.CommentStatus(r.URL.Query().Get("status"))
	comments, err := h.service.ListComments(r.Context(), id, status)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	writeJSON(w, http.StatusOK, comments)
}

// AddComment handles POST /api/products/{productID}/comments.
func (h *ProductHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "productID", h.logger)
	if !ok {
		return
	}

	var req model.AddCommentRequest
	if !decode(w, r, &req, h.logger) {
		return
	}

	c, err := h.service.AddComment(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// ModerateComment handles PATCH /api/comments/{commentID}.
func (h *ProductHandler) ModerateComment(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "commentID", h.logger)
	if !ok {
		return
	}

	var req model.ModerateCommentRequest
	if !decode(w, r, &req, h.logger) {
		return
	}

	c, err := h.service.ModerateComment(r.Context(), id, req.Status)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// DeleteComment handles DELETE /api/comments/{commentID}.
func (h *ProductHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "commentID", h.logger)
	if !ok {
		return
	}

	if err := h.service.DeleteComment(r.Context(), id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if categories == nil {
		categories = []model.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *ProductHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCategoryRequest
	if !decode(w, r, &req, h.logger) {
		return
	}

	c, err := h.service.CreateCategory(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *ProductHandler) CreateSubCategory(w http.ResponseWriter, r *http.Request) {
	var req model.CreateSubCategoryRequest
	if !decode(w, r, &req, h.logger) {
		return
	}

	sub, err := h.service.CreateSubCategory(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

func (h *ProductHandler) CreateVariable(w http.ResponseWriter, r *http.Request) {
	var req model.CreateVariableRequest
	if !decode(w, r, &req, h.logger) {
		return
	}

	v, err := h.service.CreateVariable(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}
