package service

import (
	"context"
	"fmt"

	"storefront/internal/events"
	"storefront/internal/model"
	"storefront/internal/pricing"
	"storefront/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// variantService implements VariantService.
type variantService struct {
	db         repository.Querier
	txr        repository.Transactor
	catalog    repository.CatalogRepository
	propagator Propagator
	publisher  events.Publisher
	logger     zerolog.Logger
}

// NewVariantService creates a new variant service.
func NewVariantService(
	db repository.Querier,
	txr repository.Transactor,
	catalog repository.CatalogRepository,
	propagator Propagator,
	publisher events.Publisher,
	logger zerolog.Logger,
) VariantService {
	return &variantService{
		db:         db,
		txr:        txr,
		catalog:    catalog,
		propagator: propagator,
		publisher:  publisher,
		logger:     logger.With().Str("service", "variant").Logger(),
	}
}

// Create inserts a variant with its discount resolved and recomputes the product.
func (s *variantService) Create(ctx context.Context, req *model.CreateVariantRequest) (*model.Variant, error) {
	if err := validateVariantValues(req.Price, req.Quantity, 0); err != nil {
		return nil, err
	}

	v := &model.Variant{
		ProductID:      req.ProductID,
		VariableID:     req.VariableID,
		Title:          req.Title,
		Price:          req.Price,
		Quantity:       req.Quantity,
		DiscountID:     req.DiscountID,
		DiscountActive: req.DiscountActive,
	}

	var evs []events.Event
	err := runInTx(ctx, s.txr, s.logger, func(tx pgx.Tx) error {
		discount, err := s.shareDiscount(ctx, tx, v.DiscountID)
		if err != nil {
			return err
		}
		if err := s.checkVariable(ctx, tx, v.VariableID); err != nil {
			return err
		}

		product, err := s.catalog.GetProductForUpdate(ctx, tx, v.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return model.ErrProductNotFound
		}

		pricing.ApplyDiscount(v, discount)
		if err := s.catalog.CreateVariant(ctx, tx, v); err != nil {
			return err
		}

		derived, err := s.propagator.RecomputeProduct(ctx, tx, v.ProductID)
		if err != nil {
			return err
		}
		evs = append(evs, events.New(events.ProductRecomputed, events.ID(v.ProductID), derived))
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Int64("product_id", req.ProductID).Msg("failed to create variant")
		return nil, err
	}

	publish(ctx, s.publisher, s.logger, evs)

	s.logger.Info().
		Int64("variant_id", v.ID).
		Int64("product_id", v.ProductID).
		Msg("variant created")

	return v, nil
}

// GetByID retrieves a variant by its ID.
func (s *variantService) GetByID(ctx context.Context, id int64) (*model.Variant, error) {
	v, err := s.catalog.GetVariant(ctx, s.db, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("variant_id", id).Msg("failed to get variant")
		return nil, fmt.Errorf("failed to get variant: %w", err)
	}
	if v == nil {
		return nil, model.ErrVariantNotFound
	}
	return v, nil
}

// Update applies a partial change and propagates it to the product, carts
// and unpaid orders in the same transaction.
func (s *variantService) Update(ctx context.Context, id int64, req *model.UpdateVariantRequest) (*model.Variant, error) {
	if err := validateVariantUpdate(req); err != nil {
		return nil, err
	}

	var (
		updated *model.Variant
		evs     []events.Event
	)
	err := runInTx(ctx, s.txr, s.logger, func(tx pgx.Tx) error {
		current, err := s.catalog.GetVariant(ctx, tx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return model.ErrVariantNotFound
		}

		// Lock order: discount, product, variant.
		discountID := effectiveDiscountID(current.DiscountID, req)
		discount, err := s.shareDiscount(ctx, tx, discountID)
		if err != nil {
			return err
		}

		product, err := s.catalog.GetProductForUpdate(ctx, tx, current.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return model.ErrProductNotFound
		}

		v, err := s.catalog.GetVariantForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if v == nil {
			return model.ErrVariantNotFound
		}

		applyVariantUpdate(v, req)
		if !sameID(v.DiscountID, discountID) {
			// The reference moved between the first read and the lock.
			if discount, err = s.shareDiscount(ctx, tx, v.DiscountID); err != nil {
				return err
			}
		}
		pricing.ApplyDiscount(v, discount)

		if err := s.catalog.UpdateVariant(ctx, tx, v); err != nil {
			return err
		}

		evs, err = s.propagator.VariantChanged(ctx, tx, v.ProductID, v.ID, v)
		if err != nil {
			return err
		}
		updated = v
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Int64("variant_id", id).Msg("failed to update variant")
		return nil, err
	}

	publish(ctx, s.publisher, s.logger, evs)

	s.logger.Info().
		Int64("variant_id", updated.ID).
		Int64("price", updated.Price).
		Int("quantity", updated.Quantity).
		Int("events", len(evs)).
		Msg("variant updated")

	return updated, nil
}

// Delete removes a variant. Its cart lines and unpaid order lines go with
// it; paid order lines keep their snapshot.
func (s *variantService) Delete(ctx context.Context, id int64) error {
	var evs []events.Event
	err := runInTx(ctx, s.txr, s.logger, func(tx pgx.Tx) error {
		current, err := s.catalog.GetVariant(ctx, tx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return model.ErrVariantNotFound
		}

		if _, err := s.catalog.GetProductForUpdate(ctx, tx, current.ProductID); err != nil {
			return err
		}
		v, err := s.catalog.GetVariantForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if v == nil {
			return model.ErrVariantNotFound
		}

		lineEvs, err := s.propagator.VariantChanged(ctx, tx, v.ProductID, v.ID, nil)
		if err != nil {
			return err
		}

		if err := s.catalog.DeleteVariant(ctx, tx, v.ID); err != nil {
			return err
		}

		derived, err := s.propagator.RecomputeProduct(ctx, tx, v.ProductID)
		if err != nil {
			return err
		}
		evs = append([]events.Event{events.New(events.ProductRecomputed, events.ID(v.ProductID), derived)}, lineEvs...)
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Int64("variant_id", id).Msg("failed to delete variant")
		return err
	}

	publish(ctx, s.publisher, s.logger, evs)
	s.logger.Info().Int64("variant_id", id).Msg("variant deleted")
	return nil
}

// shareDiscount loads and share-locks the referenced discount. A nil id
// yields a nil discount.
func (s *variantService) shareDiscount(ctx context.Context, q repository.Querier, id *int64) (*model.Discount, error) {
	if id == nil {
		return nil, nil
	}
	d, err := s.catalog.GetDiscountForShare(ctx, q, *id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, model.ErrDiscountNotFound
	}
	return d, nil
}

// checkVariable reports ErrVariableNotFound for a dangling variable
// reference. A nil id is allowed.
func (s *variantService) checkVariable(ctx context.Context, q repository.Querier, id *int64) error {
	if id == nil {
		return nil
	}
	vr, err := s.catalog.GetVariable(ctx, q, *id)
	if err != nil {
		return err
	}
	if vr == nil {
		return model.ErrVariableNotFound
	}
	return nil
}

func validateVariantValues(price int64, quantity, totalSold int) error {
	if price < 0 {
		return model.ErrInvalidPrice
	}
	if quantity < 0 {
		return model.ErrNegativeStock
	}
	if totalSold < 0 {
		return model.ErrInvalidQuantity
	}
	return nil
}

func validateVariantUpdate(req *model.UpdateVariantRequest) error {
	if req.Price != nil && *req.Price < 0 {
		return model.ErrInvalidPrice
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		return model.ErrNegativeStock
	}
	if req.TotalSold != nil && *req.TotalSold < 0 {
		return model.ErrInvalidQuantity
	}
	return nil
}

func effectiveDiscountID(current *int64, req *model.UpdateVariantRequest) *int64 {
	switch {
	case req.ClearDiscount:
		return nil
	case req.DiscountID != nil:
		return req.DiscountID
	default:
		return current
	}
}

func applyVariantUpdate(v *model.Variant, req *model.UpdateVariantRequest) {
	if req.Title != nil {
		v.Title = *req.Title
	}
	if req.Price != nil {
		v.Price = *req.Price
	}
	if req.Quantity != nil {
		v.Quantity = *req.Quantity
	}
	if req.TotalSold != nil {
		v.TotalSold = *req.TotalSold
	}
	if req.DiscountActive != nil {
		v.DiscountActive = *req.DiscountActive
	}
	v.DiscountID = effectiveDiscountID(v.DiscountID, req)
}

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
