package service

import (
	"context"
	"fmt"

	"storefront/internal/events"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	db         repository.Querier
	txr        repository.Transactor
	catalog    repository.CatalogRepository
	propagator Propagator
	publisher  events.Publisher
	logger     zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	db repository.Querier,
	txr repository.Transactor,
	catalog repository.CatalogRepository,
	propagator Propagator,
	publisher events.Publisher,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		db:         db,
		txr:        txr,
		catalog:    catalog,
		propagator: propagator,
		publisher:  publisher,
		logger:     logger.With().Str("service", "product").Logger(),
	}
}

// Create inserts a product. A subcategory must belong to the given category.
func (s *productService) Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	if req.SubCategoryID != nil {
		sub, err := s.catalog.GetSubCategory(ctx, s.db, *req.SubCategoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to create product: %w", err)
		}
		if sub == nil || (req.CategoryID != nil && sub.CategoryID != *req.CategoryID) {
			return nil, model.ErrSubCategoryMismatch
		}
		if req.CategoryID == nil {
			categoryID := sub.CategoryID
			req.CategoryID = &categoryID
		}
	}

	p := &model.Product{
		Title:         req.Title,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		SubCategoryID: req.SubCategoryID,
	}
	if err := s.catalog.CreateProduct(ctx, s.db, p); err != nil {
		s.logger.Error().Err(err).Str("title", req.Title).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().Int64("product_id", p.ID).Msg("product created")
	return p, nil
}

// GetByID retrieves a product with its price view and variants.
func (s *productService) GetByID(ctx context.Context, id int64) (*model.ProductResponse, error) {
	product, err := s.catalog.GetProduct(ctx, s.db, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Int64("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	variants, err := s.catalog.ListVariantsByProduct(ctx, s.db, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product variants")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &model.ProductResponse{
		Product:   *product,
		PriceView: model.PriceViewOf(product.ProductDerived),
		Variants:  variants,
	}, nil
}

// List retrieves products matching filter with pagination.
func (s *productService) List(ctx context.Context, filter model.ProductFilter, limit, offset int) ([]model.ProductResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	products, err := s.catalog.ListProducts(ctx, s.db, filter, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to list products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	resp := make([]model.ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, model.ProductResponse{Product: p, PriceView: model.PriceViewOf(p.ProductDerived)})
	}

	s.logger.Debug().
		Int("count", len(resp)).
		Int("limit", limit).
		Int("offset", offset).
		Msg("retrieved products")

	return resp, nil
}

// Recompute rebuilds the derived fields of a product.
func (s *productService) Recompute(ctx context.Context, id int64) (*model.Product, error) {
	var derived *model.ProductDerived
	err := runInTx(ctx, s.txr, s.logger, func(tx pgx.Tx) error {
		product, err := s.catalog.GetProductForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return model.ErrProductNotFound
		}
		derived, err = s.propagator.RecomputeProduct(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, s.logger, []events.Event{events.New(events.ProductRecomputed, events.ID(id), derived)})

	product, err := s.catalog.GetProduct(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

// AddReview stores a rating and refreshes the product's review statistics.
func (s *productService) AddReview(ctx context.Context, productID int64, req *model.AddReviewRequest) (*model.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, model.ErrInvalidRating
	}

	review := &model.Review{
		ProductID: productID,
		Author:    req.Author,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	var derived *model.ProductDerived
	err := runInTx(ctx, s.txr, s.logger, func(tx pgx.Tx) error {
		product, err := s.catalog.GetProductForUpdate(ctx, tx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return model.ErrProductNotFound
		}
		if err := s.catalog.CreateReview(ctx, tx, review); err != nil {
			return err
		}
		derived, err = s.propagator.RecomputeProduct(ctx, tx, productID)
		return err
	})
	if err != nil {
		s.logger.Warn().Err(err).Int64("product_id", productID).Msg("failed to add review")
		return nil, err
	}

	publish(ctx, s.publisher, s.logger, []events.Event{events.New(events.ProductRecomputed, events.ID(productID), derived)})
	return review, nil
}

func (s *productService) ListReviews(ctx context.Context, productID int64) ([]model.Review, error) {
	product, err := s.catalog.GetProduct(ctx, s.db, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	reviews, err := s.catalog.ListReviews(ctx, s.db, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// AddComment stores a comment waiting for moderation.
func (s *productService) AddComment(ctx context.Context, productID int64, req *model.AddCommentRequest) (*model.Comment, error) {
	product, err := s.catalog.GetProduct(ctx, s.db, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	c := &model.Comment{
		ProductID: productID,
		Author:    req.Author,
		Body:      req.Body,
		Status:    model.CommentWaiting,
	}
	if err := s.catalog.CreateComment(ctx, s.db, c); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	s.logger.Info().Int64("comment_id", c.ID).Int64("product_id", productID).Msg("comment added")
	return c, nil
}

// ListComments lists a product's comments. An empty status lists all of them.
func (s *productService) ListComments(ctx context.Context, productID int64, status model.CommentStatus) ([]model.Comment, error) {
	if status != "" && !status.Valid() {
		return nil, model.ErrInvalidCommentState
	}

	product, err := s.catalog.GetProduct(ctx, s.db, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	comments, err := s.catalog.ListComments(ctx, s.db, productID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// ModerateComment moves a comment to another moderation state.
func (s *productService) ModerateComment(ctx context.Context, id int64, status model.CommentStatus) (*model.Comment, error) {
	if !status.Valid() {
		return nil, model.ErrInvalidCommentState
	}

	c, err := s.catalog.UpdateCommentStatus(ctx, s.db, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to moderate comment: %w", err)
	}
	if c == nil {
		return nil, model.ErrCommentNotFound
	}

	s.logger.Info().Int64("comment_id", id).Str("status", string(status)).Msg("comment moderated")
	return c, nil
}

func (s *productService) DeleteComment(ctx context.Context, id int64) error {
	deleted, err := s.catalog.DeleteComment(ctx, s.db, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if !deleted {
		return model.ErrCommentNotFound
	}
	return nil
}

func (s *productService) CreateCategory(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error) {
	c := &model.Category{Title: req.Title}
	if err := s.catalog.CreateCategory(ctx, s.db, c); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return c, nil
}

func (s *productService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.catalog.ListCategories(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *productService) CreateSubCategory(ctx context.Context, req *model.CreateSubCategoryRequest) (*model.SubCategory, error) {
	sub := &model.SubCategory{CategoryID: req.CategoryID, Title: req.Title}
	if err := s.catalog.CreateSubCategory(ctx, s.db, sub); err != nil {
		return nil, fmt.Errorf("failed to create subcategory: %w", err)
	}
	return sub, nil
}

func (s *productService) CreateVariable(ctx context.Context, req *model.CreateVariableRequest) (*model.Variable, error) {
	v := &model.Variable{Type: req.Type, Title: req.Title, ColorCode: req.ColorCode}
	if err := s.catalog.CreateVariable(ctx, s.db, v); err != nil {
		return nil, fmt.Errorf("failed to create variable: %w", err)
	}
	return v, nil
}
