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

type shippingService struct {
	db         repository.Querier
	txr        repository.Transactor
	shipping   repository.ShippingRepository
	propagator Propagator
	publisher  events.Publisher
	logger     zerolog.Logger
}

// NewShippingService creates a new shipping method service.
func NewShippingService(
	db repository.Querier,
	txr repository.Transactor,
	shipping repository.ShippingRepository,
	propagator Propagator,
	publisher events.Publisher,
	logger zerolog.Logger,
) ShippingService {
	return &shippingService{
		db:         db,
		txr:        txr,
		shipping:   shipping,
		propagator: propagator,
		publisher:  publisher,
		logger:     logger.With().Str("service", "shipping").Logger(),
	}
}

func (s *shippingService) Create(ctx context.Context, req *model.CreateShippingMethodRequest) (*model.ShippingMethod, error) {
	if req.Price != nil && *req.Price < 0 {
		return nil, model.ErrInvalidPrice
	}

	m := &model.ShippingMethod{
		Name:              req.Name,
		Price:             req.Price,
		DeliveryTimeHours: req.DeliveryTimeHours,
		Active:            true,
	}
	if req.Active != nil {
		m.Active = *req.Active
	}

	if err := s.shipping.Create(ctx, s.db, m); err != nil {
		return nil, fmt.Errorf("failed to create shipping method: %w", err)
	}
	return m, nil
}

// Update writes the method. When the price changes every unpaid order using
// it is repriced in the same transaction; paid orders keep their price.
func (s *shippingService) Update(ctx context.Context, id int64, req *model.UpdateShippingMethodRequest) (*model.ShippingMethod, error) {
	if req.Price != nil && *req.Price < 0 {
		return nil, model.ErrInvalidPrice
	}

	var (
		updated *model.ShippingMethod
		evs     []events.Event
	)
	err := runInTx(ctx, s.txr, s.logger, func(tx pgx.Tx) error {
		m, err := s.shipping.GetForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return model.ErrShippingNotFound
		}

		oldPrice := m.Price
		if req.Name != nil {
			m.Name = *req.Name
		}
		switch {
		case req.ClearPrice:
			m.Price = nil
		case req.Price != nil:
			price := *req.Price
			m.Price = &price
		}
		if req.DeliveryTimeHours != nil {
			m.DeliveryTimeHours = *req.DeliveryTimeHours
		}
		if req.Active != nil {
			m.Active = *req.Active
		}

		if err := s.shipping.Update(ctx, tx, m); err != nil {
			return err
		}

		if !sameID(oldPrice, m.Price) {
			if evs, err = s.propagator.ShippingMethodChanged(ctx, tx, m); err != nil {
				return err
			}
		}
		updated = m
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Int64("shipping_method_id", id).Msg("failed to update shipping method")
		return nil, err
	}

	publish(ctx, s.publisher, s.logger, evs)

	s.logger.Info().
		Int64("shipping_method_id", id).
		Int("orders_repriced", len(evs)).
		Msg("shipping method updated")

	return updated, nil
}

func (s *shippingService) List(ctx context.Context, activeOnly bool) ([]model.ShippingMethod, error) {
	methods, err := s.shipping.List(ctx, s.db, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list shipping methods: %w", err)
	}
	if methods == nil {
		methods = []model.ShippingMethod{}
	}
	return methods, nil
}
