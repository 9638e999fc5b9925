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

type discountService struct {
	db         repository.Querier
	txr        repository.Transactor
	catalog    repository.CatalogRepository
	propagator Propagator
	publisher  events.Publisher
	logger     zerolog.Logger
}

// NewDiscountService creates a new discount service.
func NewDiscountService(
	db repository.Querier,
	txr repository.Transactor,
	catalog repository.CatalogRepository,
	propagator Propagator,
	publisher events.Publisher,
	logger zerolog.Logger,
) DiscountService {
	return &discountService{
		db:         db,
		txr:        txr,
		catalog:    catalog,
		propagator: propagator,
		publisher:  publisher,
		logger:     logger.With().Str("service", "discount").Logger(),
	}
}

func (s *discountService) Create(ctx context.Context, req *model.CreateDiscountRequest) (*model.Discount, error) {
	if err := pricing.ValidatePercent(req.Percent); err != nil {
		return nil, err
	}

	d := &model.Discount{Percent: req.Percent, Description: req.Description}
	if err := s.catalog.CreateDiscount(ctx, s.db, d); err != nil {
		return nil, fmt.Errorf("failed to create discount: %w", err)
	}

	s.logger.Info().Int64("discount_id", d.ID).Int("percent", d.Percent).Msg("discount created")
	return d, nil
}

func (s *discountService) GetByID(ctx context.Context, id int64) (*model.Discount, error) {
	d, err := s.catalog.GetDiscount(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get discount: %w", err)
	}
	if d == nil {
		return nil, model.ErrDiscountNotFound
	}
	return d, nil
}

// Update changes the percentage, re-resolves every variant referencing the
// discount and propagates each of them.
func (s *discountService) Update(ctx context.Context, id int64, req *model.UpdateDiscountRequest) (*model.Discount, error) {
	if err := pricing.ValidatePercent(req.Percent); err != nil {
		return nil, err
	}

	var (
		updated  *model.Discount
		evs      []events.Event
		affected int
	)
	err := runInTx(ctx, s.txr, s.logger, func(tx pgx.Tx) error {
		d, err := s.catalog.GetDiscountForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if d == nil {
			return model.ErrDiscountNotFound
		}

		d.Percent = req.Percent
		if req.Description != nil {
			d.Description = *req.Description
		}
		if err := s.catalog.UpdateDiscount(ctx, tx, d); err != nil {
			return err
		}

		productIDs, err := s.catalog.ProductIDsByDiscount(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.catalog.LockProducts(ctx, tx, productIDs); err != nil {
			return err
		}

		variants, err := s.catalog.ListVariantsByDiscount(ctx, tx, id)
		if err != nil {
			return err
		}
		for i := range variants {
			pricing.ApplyDiscount(&variants[i], d)
		}
		if err := s.catalog.UpdateVariantDiscounts(ctx, tx, variants); err != nil {
			return err
		}

		for i := range variants {
			v := &variants[i]
			vEvs, err := s.propagator.VariantChanged(ctx, tx, v.ProductID, v.ID, v)
			if err != nil {
				return err
			}
			evs = append(evs, vEvs...)
		}

		updated = d
		affected = len(variants)
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Int64("discount_id", id).Msg("failed to update discount")
		return nil, err
	}

	publish(ctx, s.publisher, s.logger, evs)

	s.logger.Info().
		Int64("discount_id", id).
		Int("percent", updated.Percent).
		Int("variants", affected).
		Msg("discount updated")

	return updated, nil
}
